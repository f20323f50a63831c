package services

import (
	"techstore/internal/domain"

	"github.com/shopspring/decimal"
)

func newTestProduct(id, name string, price float64, stock int) domain.Product {
	return domain.Product{
		ID:         id,
		Name:       name,
		Slug:       domain.Slugify(name),
		Price:      decimal.NewFromFloat(price),
		Stock:      stock,
		IsActive:   true,
		CategoryID: testCategoryID,
	}
}

func newTestOrder(id string, status domain.OrderStatus, items ...domain.OrderItem) *domain.Order {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}
	return &domain.Order{
		ID:            id,
		OrderNumber:   "ORD-1700000000000-0042",
		CustomerName:  "Jane",
		CustomerEmail: "j@x.com",
		CustomerPhone: "12345",
		TotalAmount:   total,
		Status:        status,
		PaymentStatus: domain.PaymentPending,
		OrderItems:    items,
	}
}

func newTestItem(productID, name string, price float64, quantity int) domain.OrderItem {
	p := decimal.NewFromFloat(price)
	return domain.OrderItem{
		ProductID:    productID,
		ProductName:  name,
		ProductPrice: p,
		Quantity:     quantity,
		Subtotal:     p.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

const (
	testCategoryID = "7b0f1c1e-6f6a-4a24-9d28-6f1d6a1f0001"
	testProductA   = "7b0f1c1e-6f6a-4a24-9d28-6f1d6a1f000a"
	testProductB   = "7b0f1c1e-6f6a-4a24-9d28-6f1d6a1f000b"
	testOrderID    = "7b0f1c1e-6f6a-4a24-9d28-6f1d6a1f00ff"
)
