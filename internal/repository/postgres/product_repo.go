package postgres

import (
	"context"
	"errors"
	"log"

	"techstore/internal/domain"
	"techstore/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) FindActiveByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&out).Error
	if err != nil {
		log.Printf("product FindActiveByIDs error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("product FindByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&p, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("product FindBySlug error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, filters repository.ProductFilters) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC")

	if filters.CategoryID != "" {
		query = query.Where("category_id = ?", filters.CategoryID)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	var out []domain.Product
	if err := query.Find(&out).Error; err != nil {
		log.Printf("product List error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *productRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Printf("product SlugExists error: %v", err)
		return false, err
	}
	return count > 0, nil
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		log.Printf("product CountByCategory error: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	err := r.db.WithContext(ctx).Omit("Category").Create(product).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.ConflictError{Message: "a product with that name already exists"}
	}
	return err
}

func (r *productRepo) Update(ctx context.Context, product *domain.Product) error {
	err := r.db.WithContext(ctx).
		Omit("Category").
		Model(product).
		Select("name", "slug", "description", "price", "stock", "images", "is_active", "category_id").
		Updates(product).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.ConflictError{Message: "a product with that name already exists"}
	}
	return err
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}
