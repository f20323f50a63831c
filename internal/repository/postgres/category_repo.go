package postgres

import (
	"context"
	"errors"
	"log"

	"techstore/internal/domain"
	"techstore/internal/repository"

	"gorm.io/gorm"
)

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Select("categories.*, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id").
		Order("categories.name ASC").
		Find(&out).Error
	if err != nil {
		log.Printf("category FindAll error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).
		Preload("Products", "is_active = ?", true).
		First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("category FindByID error: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).
		Preload("Products", "is_active = ?", true).
		First(&c, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("category FindBySlug error: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) NameOrSlugExists(ctx context.Context, name, slug, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("name = ? OR slug = ?", name, slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Printf("category NameOrSlugExists error: %v", err)
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *domain.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.ConflictError{Message: "a category with that name already exists"}
	}
	return err
}

func (r *categoryRepo) Update(ctx context.Context, category *domain.Category) error {
	err := r.db.WithContext(ctx).
		Model(category).
		Select("name", "slug").
		Updates(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.ConflictError{Message: "a category with that name already exists"}
	}
	return err
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id).Error
}
