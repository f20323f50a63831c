package services

import (
	"context"
	"errors"
	"testing"

	"techstore/internal/domain"
	"techstore/internal/infra/paygate"
	"techstore/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func paymentInput() ProcessPaymentInput {
	return ProcessPaymentInput{
		OrderID:         testOrderID,
		Token:           "card-token",
		PaymentMethodID: "visa",
		Installments:    1,
		PayerEmail:      "ana@example.com",
		PayerIDType:     "DNI",
		PayerIDNumber:   "12345678",
	}
}

func TestPaymentService_Process(t *testing.T) {
	t.Run("approved charge confirms the order and notifies", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		gateway := new(mocks.MockPaymentGateway)
		mailer := new(mocks.MockMailer)
		publisher := new(mocks.MockPublisher)

		pending := newTestOrder(testOrderID, domain.StatusPending,
			newTestItem(testProductA, "Laptop", 999.99, 1))
		confirmed := newTestOrder(testOrderID, domain.StatusConfirmed,
			newTestItem(testProductA, "Laptop", 999.99, 1))
		confirmed.PaymentStatus = domain.PaymentApproved

		orders.On("FindByID", mock.Anything, testOrderID).Return(pending, nil).Once()
		gateway.On("CreatePayment", mock.Anything, mock.MatchedBy(func(c paygate.ChargeRequest) bool {
			return c.TransactionAmount == 999.99 && c.PaymentMethodID == "visa"
		})).Return(&paygate.ChargeResult{ID: "pay_123", Status: "approved", StatusDetail: "accredited"}, nil)
		orders.On("SetPayment", mock.Anything, testOrderID, mock.AnythingOfType("*string"),
			"visa", domain.PaymentApproved, domain.StatusConfirmed).Return(nil)
		orders.On("FindByID", mock.Anything, testOrderID).Return(confirmed, nil).Once()
		mailer.On("SendOrderConfirmation", mock.Anything, confirmed).Return(nil)
		publisher.On("Publish", mock.Anything, domain.EventOrderPaid, mock.Anything).Return(nil).Maybe()

		service := NewPaymentService(orders, gateway, mailer, publisher)
		result, err := service.Process(context.Background(), paymentInput())

		require.NoError(t, err)
		assert.True(t, result.Approved)
		assert.Equal(t, "pay_123", result.PaymentID)
		assert.Equal(t, domain.StatusConfirmed, result.Order.Status)
		mailer.AssertCalled(t, "SendOrderConfirmation", mock.Anything, confirmed)
	})

	t.Run("rejected charge keeps the order pending and sends no email", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		gateway := new(mocks.MockPaymentGateway)
		mailer := new(mocks.MockMailer)

		pending := newTestOrder(testOrderID, domain.StatusPending,
			newTestItem(testProductA, "Laptop", 999.99, 1))

		orders.On("FindByID", mock.Anything, testOrderID).Return(pending, nil)
		gateway.On("CreatePayment", mock.Anything, mock.Anything).
			Return(&paygate.ChargeResult{ID: "pay_124", Status: "rejected", StatusDetail: "cc_rejected_insufficient_amount"}, nil)
		orders.On("SetPayment", mock.Anything, testOrderID, mock.AnythingOfType("*string"),
			"visa", domain.PaymentRejected, domain.StatusPending).Return(nil)

		service := NewPaymentService(orders, gateway, mailer, nil)
		result, err := service.Process(context.Background(), paymentInput())

		require.NoError(t, err)
		assert.False(t, result.Approved)
		assert.Equal(t, "rejected", result.Status)
		mailer.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything)
	})

	t.Run("gateway failure", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		gateway := new(mocks.MockPaymentGateway)

		pending := newTestOrder(testOrderID, domain.StatusPending,
			newTestItem(testProductA, "Laptop", 999.99, 1))
		orders.On("FindByID", mock.Anything, testOrderID).Return(pending, nil)
		gateway.On("CreatePayment", mock.Anything, mock.Anything).Return(nil, errors.New("503"))

		service := NewPaymentService(orders, gateway, nil, nil)
		_, err := service.Process(context.Background(), paymentInput())

		var external *domain.ExternalServiceError
		require.ErrorAs(t, err, &external)
		assert.Equal(t, "payment gateway", external.Service)
		orders.AssertNotCalled(t, "SetPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		orders.On("FindByID", mock.Anything, testOrderID).Return(nil, nil)

		service := NewPaymentService(orders, new(mocks.MockPaymentGateway), nil, nil)
		_, err := service.Process(context.Background(), paymentInput())

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("email failure does not fail an approved payment", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		gateway := new(mocks.MockPaymentGateway)
		mailer := new(mocks.MockMailer)

		pending := newTestOrder(testOrderID, domain.StatusPending,
			newTestItem(testProductA, "Laptop", 999.99, 1))
		confirmed := newTestOrder(testOrderID, domain.StatusConfirmed,
			newTestItem(testProductA, "Laptop", 999.99, 1))

		orders.On("FindByID", mock.Anything, testOrderID).Return(pending, nil).Once()
		gateway.On("CreatePayment", mock.Anything, mock.Anything).
			Return(&paygate.ChargeResult{ID: "pay_125", Status: "approved"}, nil)
		orders.On("SetPayment", mock.Anything, testOrderID, mock.AnythingOfType("*string"),
			"visa", domain.PaymentApproved, domain.StatusConfirmed).Return(nil)
		orders.On("FindByID", mock.Anything, testOrderID).Return(confirmed, nil).Once()
		mailer.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		service := NewPaymentService(orders, gateway, mailer, nil)
		result, err := service.Process(context.Background(), paymentInput())

		require.NoError(t, err)
		assert.True(t, result.Approved)
	})
}

func TestPaymentService_GetStatus(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		gateway := new(mocks.MockPaymentGateway)
		gateway.On("GetPayment", mock.Anything, "pay_123").
			Return(&paygate.ChargeResult{ID: "pay_123", Status: "approved"}, nil)

		service := NewPaymentService(new(mocks.MockOrderRepository), gateway, nil, nil)
		charge, err := service.GetStatus(context.Background(), "pay_123")

		require.NoError(t, err)
		assert.Equal(t, "approved", charge.Status)
	})

	t.Run("unknown payment", func(t *testing.T) {
		gateway := new(mocks.MockPaymentGateway)
		gateway.On("GetPayment", mock.Anything, "pay_404").Return(nil, nil)

		service := NewPaymentService(new(mocks.MockOrderRepository), gateway, nil, nil)
		_, err := service.GetStatus(context.Background(), "pay_404")

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}
