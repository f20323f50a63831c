package paygate

import "context"

type ClientInterface interface {
	CreatePayment(ctx context.Context, charge ChargeRequest) (*ChargeResult, error)
	GetPayment(ctx context.Context, paymentID string) (*ChargeResult, error)
}

var _ ClientInterface = (*Client)(nil)
