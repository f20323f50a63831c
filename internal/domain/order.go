package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentApproved  PaymentStatus = "APPROVED"
	PaymentRejected  PaymentStatus = "REJECTED"
	PaymentInProcess PaymentStatus = "IN_PROCESS"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// statusTransitions is the forward order lifecycle. Cancellation is
// reachable from every state.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusCancelled},
	StatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a placed cart. TotalAmount is fixed at creation time as the
// sum of its items' subtotals and is never recomputed.
type Order struct {
	ID            string          `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber   string          `json:"orderNumber" gorm:"uniqueIndex;not null"`
	CustomerName  string          `json:"customerName" gorm:"not null"`
	CustomerEmail string          `json:"customerEmail" gorm:"not null"`
	CustomerPhone string          `json:"customerPhone" gorm:"not null"`
	TotalAmount   decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentID     *string         `json:"paymentId"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(20);not null;default:'PENDING'"`
	OrderItems    []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (o *Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem snapshots product name and unit price at placement time so
// historical orders stay accurate when the product changes or is deleted.
// Immutable after creation.
type OrderItem struct {
	ID           string          `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID      string          `json:"orderId" gorm:"type:uuid;not null;index"`
	ProductID    string          `json:"productId" gorm:"type:uuid;not null;index"`
	ProductName  string          `json:"productName" gorm:"not null"`
	ProductPrice decimal.Decimal `json:"productPrice" gorm:"type:decimal(10,2);not null"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	Subtotal     decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time       `json:"createdAt" gorm:"autoCreateTime"`
}

func (i *OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// PaymentStatusFromGateway maps a raw gateway status to the order's
// payment status enum. Unknown values fall back to PENDING.
func PaymentStatusFromGateway(status string) PaymentStatus {
	switch status {
	case "approved":
		return PaymentApproved
	case "rejected":
		return PaymentRejected
	case "in_process":
		return PaymentInProcess
	case "cancelled":
		return PaymentCancelled
	case "refunded":
		return PaymentRefunded
	default:
		return PaymentPending
	}
}
