package services

import (
	"context"

	"techstore/internal/domain"
	"techstore/internal/repository"
)

type CategoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
	}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, &domain.ValidationError{Message: "category name is required"}
	}

	slug := domain.Slugify(name)
	taken, err := s.categories.NameOrSlugExists(ctx, name, slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.ConflictError{Message: "a category with that name already exists"}
	}

	category := &domain.Category{Name: name, Slug: slug}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Resource: "category"}
	}
	return c, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	c, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Resource: "category"}
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == "" || name == category.Name {
		return category, nil
	}

	slug := domain.Slugify(name)
	taken, err := s.categories.NameOrSlugExists(ctx, name, slug, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.ConflictError{Message: "a category with that name already exists"}
	}

	category.Name = name
	category.Slug = slug
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete refuses to remove a category that still has products.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.ConflictError{Message: "cannot delete a category that still has products"}
	}

	return s.categories.Delete(ctx, id)
}
