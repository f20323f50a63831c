package services

import (
	"context"
	"testing"

	"techstore/internal/domain"
	"techstore/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	t.Run("persists with derived slug", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		categories.On("NameOrSlugExists", mock.Anything, "Gaming Gear", "gaming-gear", "").Return(false, nil)
		categories.On("Create", mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil)

		service := NewCategoryService(categories, new(mocks.MockProductRepository))
		category, err := service.Create(context.Background(), "Gaming Gear")

		require.NoError(t, err)
		assert.Equal(t, "gaming-gear", category.Slug)
	})

	t.Run("duplicate name", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		categories.On("NameOrSlugExists", mock.Anything, "Electronics", "electronics", "").Return(true, nil)

		service := NewCategoryService(categories, new(mocks.MockProductRepository))
		_, err := service.Create(context.Background(), "Electronics")

		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
		categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("empty name", func(t *testing.T) {
		service := NewCategoryService(new(mocks.MockCategoryRepository), new(mocks.MockProductRepository))
		_, err := service.Create(context.Background(), "")

		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
	})
}

func TestCategoryService_Update(t *testing.T) {
	t.Run("same name is a no-op", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		categories.On("FindByID", mock.Anything, testCategoryID).Return(testCategory(), nil)

		service := NewCategoryService(categories, new(mocks.MockProductRepository))
		category, err := service.Update(context.Background(), testCategoryID, "Electronics")

		require.NoError(t, err)
		assert.Equal(t, "electronics", category.Slug)
		categories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rename re-derives the slug", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		categories.On("FindByID", mock.Anything, testCategoryID).Return(testCategory(), nil)
		categories.On("NameOrSlugExists", mock.Anything, "Audio & Video", "audio-video", testCategoryID).Return(false, nil)
		categories.On("Update", mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil)

		service := NewCategoryService(categories, new(mocks.MockProductRepository))
		category, err := service.Update(context.Background(), testCategoryID, "Audio & Video")

		require.NoError(t, err)
		assert.Equal(t, "audio-video", category.Slug)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("refuses while products remain", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		products := new(mocks.MockProductRepository)
		categories.On("FindByID", mock.Anything, testCategoryID).Return(testCategory(), nil)
		products.On("CountByCategory", mock.Anything, testCategoryID).Return(int64(3), nil)

		service := NewCategoryService(categories, products)
		err := service.Delete(context.Background(), testCategoryID)

		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
		categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("removes an empty category", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		products := new(mocks.MockProductRepository)
		categories.On("FindByID", mock.Anything, testCategoryID).Return(testCategory(), nil)
		products.On("CountByCategory", mock.Anything, testCategoryID).Return(int64(0), nil)
		categories.On("Delete", mock.Anything, testCategoryID).Return(nil)

		service := NewCategoryService(categories, products)
		require.NoError(t, service.Delete(context.Background(), testCategoryID))
	})

	t.Run("unknown category", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		categories.On("FindByID", mock.Anything, testCategoryID).Return(nil, nil)

		service := NewCategoryService(categories, new(mocks.MockProductRepository))
		err := service.Delete(context.Background(), testCategoryID)

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}
