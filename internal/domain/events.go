package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated = "order.created"
	EventOrderPaid    = "order.paid"
)

type OrderCreatedEvent struct {
	OrderID       string          `json:"orderId"`
	OrderNumber   string          `json:"orderNumber"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CustomerEmail string          `json:"customerEmail"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type OrderPaidEvent struct {
	OrderID       string        `json:"orderId"`
	OrderNumber   string        `json:"orderNumber"`
	PaymentID     string        `json:"paymentId"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaidAt        time.Time     `json:"paidAt"`
}
