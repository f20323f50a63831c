package services

import (
	"context"
	"errors"
	"testing"

	"techstore/internal/domain"
	"techstore/internal/infra/imagestore"
	"techstore/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCategory() *domain.Category {
	return &domain.Category{ID: testCategoryID, Name: "Electronics", Slug: "electronics"}
}

func TestProductService_Create(t *testing.T) {
	input := CreateProductInput{
		Name:       "Café Grinder",
		Price:      decimal.RequireFromString("49.90"),
		Stock:      10,
		CategoryID: testCategoryID,
	}

	t.Run("uploads images and persists with derived slug", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		categories := new(mocks.MockCategoryRepository)
		images := new(mocks.MockImageStore)

		categories.On("FindByID", mock.Anything, testCategoryID).Return(testCategory(), nil)
		products.On("SlugExists", mock.Anything, "cafe-grinder", "").Return(false, nil)
		files := []imagestore.File{{Name: "a.jpg"}, {Name: "b.jpg"}}
		images.On("UploadBatch", mock.Anything, files).
			Return([]string{"https://img/a.jpg", "https://img/b.jpg"}, nil)
		products.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*domain.Product)
				p.ID = testProductA
				products.On("FindByID", mock.Anything, testProductA).Return(p, nil)
			})

		service := NewProductService(products, categories, images)
		product, err := service.Create(context.Background(), input, files)

		require.NoError(t, err)
		assert.Equal(t, "cafe-grinder", product.Slug)
		assert.True(t, product.IsActive)
		assert.Equal(t, []string{"https://img/a.jpg", "https://img/b.jpg"}, []string(product.Images))
	})

	t.Run("missing category", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		categories := new(mocks.MockCategoryRepository)
		categories.On("FindByID", mock.Anything, testCategoryID).Return(nil, nil)

		service := NewProductService(products, categories, new(mocks.MockImageStore))
		_, err := service.Create(context.Background(), input, nil)

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("name collision on slug", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		categories := new(mocks.MockCategoryRepository)
		categories.On("FindByID", mock.Anything, testCategoryID).Return(testCategory(), nil)
		products.On("SlugExists", mock.Anything, "cafe-grinder", "").Return(true, nil)

		service := NewProductService(products, categories, new(mocks.MockImageStore))
		_, err := service.Create(context.Background(), input, nil)

		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
		products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("negative price", func(t *testing.T) {
		bad := input
		bad.Price = decimal.RequireFromString("-1")

		service := NewProductService(new(mocks.MockProductRepository), new(mocks.MockCategoryRepository), new(mocks.MockImageStore))
		_, err := service.Create(context.Background(), bad, nil)

		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("upload failure surfaces as external error", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		categories := new(mocks.MockCategoryRepository)
		images := new(mocks.MockImageStore)

		categories.On("FindByID", mock.Anything, testCategoryID).Return(testCategory(), nil)
		products.On("SlugExists", mock.Anything, "cafe-grinder", "").Return(false, nil)
		images.On("UploadBatch", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		service := NewProductService(products, categories, images)
		_, err := service.Create(context.Background(), input, []imagestore.File{{Name: "a.jpg"}})

		var external *domain.ExternalServiceError
		require.ErrorAs(t, err, &external)
		products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductService_Update_RenameChecksSlug(t *testing.T) {
	products := new(mocks.MockProductRepository)
	existing := newTestProduct(testProductA, "Keyboard", 10.00, 5)
	products.On("FindByID", mock.Anything, testProductA).Return(&existing, nil)
	products.On("SlugExists", mock.Anything, "mechanical-keyboard", testProductA).Return(true, nil)

	service := NewProductService(products, new(mocks.MockCategoryRepository), new(mocks.MockImageStore))
	name := "Mechanical Keyboard"
	_, err := service.Update(context.Background(), testProductA, UpdateProductInput{Name: &name}, nil)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_RemoveImage(t *testing.T) {
	withImages := func(urls ...string) *domain.Product {
		p := newTestProduct(testProductA, "Keyboard", 10.00, 5)
		p.Images = urls
		return &p
	}

	t.Run("removes one of several images", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		images := new(mocks.MockImageStore)
		products.On("FindByID", mock.Anything, testProductA).
			Return(withImages("https://img/a.jpg", "https://img/b.jpg"), nil)
		images.On("Delete", mock.Anything, "https://img/a.jpg").Return(nil)
		products.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

		service := NewProductService(products, new(mocks.MockCategoryRepository), images)
		product, err := service.RemoveImage(context.Background(), testProductA, "https://img/a.jpg")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://img/b.jpg"}, []string(product.Images))
	})

	t.Run("image must belong to the product", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		products.On("FindByID", mock.Anything, testProductA).
			Return(withImages("https://img/a.jpg", "https://img/b.jpg"), nil)

		service := NewProductService(products, new(mocks.MockCategoryRepository), new(mocks.MockImageStore))
		_, err := service.RemoveImage(context.Background(), testProductA, "https://img/other.jpg")

		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("last image cannot be removed", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		products.On("FindByID", mock.Anything, testProductA).
			Return(withImages("https://img/a.jpg"), nil)

		service := NewProductService(products, new(mocks.MockCategoryRepository), new(mocks.MockImageStore))
		_, err := service.RemoveImage(context.Background(), testProductA, "https://img/a.jpg")

		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, err.Error(), "at least one image")
	})
}

func TestProductService_Delete_CleansRemoteImages(t *testing.T) {
	products := new(mocks.MockProductRepository)
	images := new(mocks.MockImageStore)

	p := newTestProduct(testProductA, "Keyboard", 10.00, 5)
	p.Images = []string{"https://img/a.jpg", "https://img/b.jpg"}
	products.On("FindByID", mock.Anything, testProductA).Return(&p, nil)
	images.On("DeleteBatch", mock.Anything, []string{"https://img/a.jpg", "https://img/b.jpg"}).Return()
	products.On("Delete", mock.Anything, testProductA).Return(nil)

	service := NewProductService(products, new(mocks.MockCategoryRepository), images)
	require.NoError(t, service.Delete(context.Background(), testProductA))

	images.AssertCalled(t, "DeleteBatch", mock.Anything, mock.Anything)
	products.AssertCalled(t, "Delete", mock.Anything, testProductA)
}
