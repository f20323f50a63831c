package mail

import (
	"context"

	"techstore/internal/domain"
)

type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *domain.Order) error
}

var _ Mailer = (*SMTPMailer)(nil)
