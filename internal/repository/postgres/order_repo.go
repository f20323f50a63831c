package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"techstore/internal/domain"
	"techstore/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrOrderNumberTaken
			}
			log.Printf("order create error: %v", err)
			return err
		}

		// Guarded decrement: the WHERE clause keeps stock from ever going
		// negative under concurrent placements. Zero rows affected means
		// another transaction won the remaining stock; roll everything back.
		for _, item := range order.OrderItems {
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				log.Printf("stock decrement error: %v", res.Error)
				return res.Error
			}
			if res.RowsAffected == 0 {
				var available int
				tx.Model(&domain.Product{}).
					Select("stock").
					Where("id = ?", item.ProductID).
					Scan(&available)
				return &domain.InsufficientStockError{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Available:   available,
					Requested:   item.Quantity,
				}
			}
		}

		return nil
	})
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		First(&o, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order FindByNumber error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error) {
	query := r.db.WithContext(ctx).Preload("OrderItems").Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var out []domain.Order
	if err := query.Find(&out).Error; err != nil {
		log.Printf("order List error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindStalePending(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("status = ? AND created_at < ?", domain.StatusPending, cutoff).
		Find(&out).Error
	if err != nil {
		log.Printf("order FindStalePending error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepo) SetPayment(ctx context.Context, id string, paymentID *string, method string, paymentStatus domain.PaymentStatus, status domain.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payment_id":     paymentID,
			"payment_method": method,
			"payment_status": paymentStatus,
			"status":         status,
		}).Error
}

func (r *orderRepo) DeleteRestoringStock(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.OrderItems {
			res := tx.Model(&domain.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity))
			if res.Error != nil {
				log.Printf("stock restore error: %v", res.Error)
				return res.Error
			}
		}
		return tx.Select("OrderItems").Delete(&domain.Order{ID: order.ID}).Error
	})
}

func (r *orderRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Select("OrderItems").
		Delete(&domain.Order{ID: id}).Error
}
