package services

import (
	"context"
	"log"
	"time"

	"techstore/internal/domain"
	"techstore/internal/infra/mail"
	"techstore/internal/infra/paygate"
	rabbit "techstore/internal/infra/rabbitmq"
	"techstore/internal/repository"
)

type ProcessPaymentInput struct {
	OrderID         string
	Token           string
	PaymentMethodID string
	Installments    int
	PayerEmail      string
	PayerIDType     string
	PayerIDNumber   string
}

type PaymentResult struct {
	Approved     bool          `json:"success"`
	Status       string        `json:"status"`
	StatusDetail string        `json:"statusDetail"`
	PaymentID    string        `json:"paymentId"`
	Order        *domain.Order `json:"order"`
}

type PaymentService struct {
	orders    repository.OrderRepository
	gateway   paygate.ClientInterface
	mailer    mail.Mailer
	publisher rabbit.PublisherInterface
}

func NewPaymentService(orders repository.OrderRepository, gateway paygate.ClientInterface, mailer mail.Mailer, pub rabbit.PublisherInterface) *PaymentService {
	return &PaymentService{
		orders:    orders,
		gateway:   gateway,
		mailer:    mailer,
		publisher: pub,
	}
}

// Process charges the order's total through the gateway and records the
// outcome. An approved payment confirms the order and, post-commit,
// triggers the confirmation email and an order.paid event; neither can
// fail the payment.
func (s *PaymentService) Process(ctx context.Context, in ProcessPaymentInput) (*PaymentResult, error) {
	order, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, &domain.NotFoundError{Resource: "order"}
	}

	charge, err := s.gateway.CreatePayment(ctx, paygate.ChargeRequest{
		TransactionAmount: order.TotalAmount.InexactFloat64(),
		Token:             in.Token,
		Description:       "Order #" + order.OrderNumber,
		Installments:      in.Installments,
		PaymentMethodID:   in.PaymentMethodID,
		Payer: paygate.Payer{
			Email: in.PayerEmail,
			Identification: paygate.PayerIdentification{
				Type:   in.PayerIDType,
				Number: in.PayerIDNumber,
			},
		},
	})
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "payment gateway", Err: err}
	}

	approved := charge.Status == "approved"
	paymentStatus := domain.PaymentStatusFromGateway(charge.Status)
	orderStatus := order.Status
	if approved {
		orderStatus = domain.StatusConfirmed
	}

	var paymentID *string
	if charge.ID != "" {
		paymentID = &charge.ID
	}

	if err := s.orders.SetPayment(ctx, order.ID, paymentID, in.PaymentMethodID, paymentStatus, orderStatus); err != nil {
		return nil, err
	}

	updated, err := s.orders.FindByID(ctx, order.ID)
	if err != nil || updated == nil {
		// Payment is recorded; fall back to the stale copy for the response.
		updated = order
		updated.Status = orderStatus
		updated.PaymentStatus = paymentStatus
		updated.PaymentID = paymentID
		updated.PaymentMethod = in.PaymentMethodID
	}

	if approved {
		s.sendConfirmation(ctx, updated)
		go s.publishEvent(context.Background(), domain.EventOrderPaid, domain.OrderPaidEvent{
			OrderID:       updated.ID,
			OrderNumber:   updated.OrderNumber,
			PaymentID:     charge.ID,
			PaymentStatus: paymentStatus,
			PaidAt:        time.Now().UTC(),
		})
	}

	return &PaymentResult{
		Approved:     approved,
		Status:       charge.Status,
		StatusDetail: charge.StatusDetail,
		PaymentID:    charge.ID,
		Order:        updated,
	}, nil
}

// GetStatus looks a payment up at the gateway.
func (s *PaymentService) GetStatus(ctx context.Context, paymentID string) (*paygate.ChargeResult, error) {
	charge, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "payment gateway", Err: err}
	}
	if charge == nil {
		return nil, &domain.NotFoundError{Resource: "payment"}
	}
	return charge, nil
}

func (s *PaymentService) sendConfirmation(ctx context.Context, order *domain.Order) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendOrderConfirmation(ctx, order); err != nil {
		log.Printf("payment succeeded but confirmation email failed for order %s: %v", order.OrderNumber, err)
	}
}

func (s *PaymentService) publishEvent(ctx context.Context, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		log.Printf("failed to publish %s event: %v", eventType, err)
	}
}
