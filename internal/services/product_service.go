package services

import (
	"context"
	"log"

	"techstore/internal/domain"
	"techstore/internal/infra/imagestore"
	"techstore/internal/repository"

	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  string
}

// UpdateProductInput is partial: nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	CategoryID  *string
	IsActive    *bool
}

type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	images     imagestore.ClientInterface
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, images imagestore.ClientInterface) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		images:     images,
	}
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput, files []imagestore.File) (*domain.Product, error) {
	if in.Name == "" {
		return nil, &domain.ValidationError{Message: "product name is required"}
	}
	if in.Price.IsNegative() {
		return nil, &domain.ValidationError{Message: "price cannot be negative"}
	}
	if in.Stock < 0 {
		return nil, &domain.ValidationError{Message: "stock cannot be negative"}
	}

	category, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &domain.NotFoundError{Resource: "category"}
	}

	slug := domain.Slugify(in.Name)
	taken, err := s.products.SlugExists(ctx, slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.ConflictError{Message: "a product with that name already exists"}
	}

	var imageURLs []string
	if len(files) > 0 {
		imageURLs, err = s.images.UploadBatch(ctx, files)
		if err != nil {
			return nil, &domain.ExternalServiceError{Service: "image store", Err: err}
		}
	}

	product := &domain.Product{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Images:      imageURLs,
		IsActive:    true,
		CategoryID:  in.CategoryID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, product.ID)
}

func (s *ProductService) List(ctx context.Context, filters repository.ProductFilters) ([]domain.Product, error) {
	return s.products.List(ctx, filters)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "product"}
	}
	return p, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "product"}
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput, files []imagestore.File) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		category, err := s.categories.FindByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, &domain.NotFoundError{Resource: "category"}
		}
		product.CategoryID = *in.CategoryID
	}

	if in.Name != nil && *in.Name != product.Name {
		slug := domain.Slugify(*in.Name)
		taken, err := s.products.SlugExists(ctx, slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &domain.ConflictError{Message: "a product with that name already exists"}
		}
		product.Name = *in.Name
		product.Slug = slug
	}

	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, &domain.ValidationError{Message: "price cannot be negative"}
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, &domain.ValidationError{Message: "stock cannot be negative"}
		}
		product.Stock = *in.Stock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if len(files) > 0 {
		newURLs, err := s.images.UploadBatch(ctx, files)
		if err != nil {
			return nil, &domain.ExternalServiceError{Service: "image store", Err: err}
		}
		product.Images = append(product.Images, newURLs...)
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// RemoveImage deletes one image remotely and drops its URL from the
// product. The last remaining image cannot be removed.
func (s *ProductService) RemoveImage(ctx context.Context, id, imageURL string) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.HasImage(imageURL) {
		return nil, &domain.ValidationError{Message: "image does not belong to this product"}
	}
	if len(product.Images) == 1 {
		return nil, &domain.ValidationError{Message: "product must keep at least one image"}
	}

	if err := s.images.Delete(ctx, imageURL); err != nil {
		return nil, &domain.ExternalServiceError{Service: "image store", Err: err}
	}

	kept := product.Images[:0]
	for _, img := range product.Images {
		if img != imageURL {
			kept = append(kept, img)
		}
	}
	product.Images = kept

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product row after a best-effort cleanup of its
// remote images; a failed image delete is logged, never blocking.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if len(product.Images) > 0 {
		s.images.DeleteBatch(ctx, product.Images)
		log.Printf("deleted %d remote images for product %s", len(product.Images), product.Slug)
	}

	return s.products.Delete(ctx, id)
}
