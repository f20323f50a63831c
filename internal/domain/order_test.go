package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusConfirmed, StatusShipped, true},
		{StatusConfirmed, StatusDelivered, false},
		{StatusShipped, StatusDelivered, true},
		{StatusDelivered, StatusCancelled, true},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("PROCESSING").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestPaymentStatusFromGateway(t *testing.T) {
	cases := map[string]PaymentStatus{
		"approved":   PaymentApproved,
		"rejected":   PaymentRejected,
		"in_process": PaymentInProcess,
		"cancelled":  PaymentCancelled,
		"refunded":   PaymentRefunded,
		"pending":    PaymentPending,
		"whatever":   PaymentPending,
		"":           PaymentPending,
	}

	for raw, want := range cases {
		assert.Equal(t, want, PaymentStatusFromGateway(raw), "gateway status %q", raw)
	}
}
