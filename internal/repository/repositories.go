package repository

import (
	"context"
	"time"

	"techstore/internal/domain"
)

// Find* methods return (nil, nil) when the row does not exist; services
// translate that into NotFoundError.

type OrderRepository interface {
	// Create inserts the order with its items and decrements each line's
	// product stock, all in one transaction. It fails with
	// domain.ErrOrderNumberTaken on an order-number collision and with
	// *domain.InsufficientStockError when a decrement would go below zero;
	// either way nothing is persisted.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error)
	FindStalePending(ctx context.Context, cutoff time.Time) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	SetPayment(ctx context.Context, id string, paymentID *string, method string, paymentStatus domain.PaymentStatus, status domain.OrderStatus) error
	// DeleteRestoringStock removes the order and, in the same transaction,
	// adds each item's quantity back onto its product's stock.
	DeleteRestoringStock(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
}

type ProductFilters struct {
	CategoryID string
	IsActive   *bool
}

type ProductRepository interface {
	FindActiveByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filters ProductFilters) ([]domain.Product, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	NameOrSlugExists(ctx context.Context, name, slug, excludeID string) (bool, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) error
}
