package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"techstore/internal/domain"
	"techstore/internal/infra/imagestore"
	"techstore/internal/repository"
	"techstore/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductProvider struct {
	getByIDFn   func(ctx context.Context, id string) (*domain.Product, error)
	getBySlugFn func(ctx context.Context, slug string) (*domain.Product, error)
	updateFn    func(ctx context.Context, id string, in services.UpdateProductInput, files []imagestore.File) (*domain.Product, error)
}

func (s *stubProductProvider) Create(ctx context.Context, in services.CreateProductInput, files []imagestore.File) (*domain.Product, error) {
	return nil, nil
}

func (s *stubProductProvider) List(ctx context.Context, filters repository.ProductFilters) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProductProvider) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubProductProvider) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.getBySlugFn(ctx, slug)
}

func (s *stubProductProvider) Update(ctx context.Context, id string, in services.UpdateProductInput, files []imagestore.File) (*domain.Product, error) {
	return s.updateFn(ctx, id, in, files)
}

func (s *stubProductProvider) RemoveImage(ctx context.Context, id, imageURL string) (*domain.Product, error) {
	return nil, nil
}

func (s *stubProductProvider) Delete(ctx context.Context, id string) error {
	return nil
}

var _ ProductProvider = (*stubProductProvider)(nil)

func productRouter(t *testing.T, provider ProductProvider) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProductHandler(provider, rdb)
	r.GET("/products/slug/:slug", h.GetBySlug)
	r.PATCH("/products/:id", h.Update)
	return r, mr
}

func TestProductHandler_Update_InvalidatesOldAndNewSlug(t *testing.T) {
	provider := &stubProductProvider{
		getByIDFn: func(ctx context.Context, id string) (*domain.Product, error) {
			return &domain.Product{ID: testProductID, Name: "Café Grinder", Slug: "cafe-grinder"}, nil
		},
		updateFn: func(ctx context.Context, id string, in services.UpdateProductInput, files []imagestore.File) (*domain.Product, error) {
			require.NotNil(t, in.Name)
			return &domain.Product{ID: testProductID, Name: *in.Name, Slug: "espresso-grinder"}, nil
		},
	}

	r, mr := productRouter(t, provider)
	require.NoError(t, mr.Set("products:slug:cafe-grinder", `{"slug":"cafe-grinder"}`))
	require.NoError(t, mr.Set("products:slug:espresso-grinder", `{"slug":"espresso-grinder"}`))

	form := url.Values{"name": {"Espresso Grinder"}}
	req := httptest.NewRequest(http.MethodPatch, "/products/"+testProductID, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, mr.Exists("products:slug:cafe-grinder"), "old slug must not keep serving the stale copy")
	assert.False(t, mr.Exists("products:slug:espresso-grinder"))
}

func TestProductHandler_GetBySlug_ReadThroughCache(t *testing.T) {
	calls := 0
	provider := &stubProductProvider{
		getBySlugFn: func(ctx context.Context, slug string) (*domain.Product, error) {
			calls++
			return &domain.Product{ID: testProductID, Name: "Café Grinder", Slug: slug}, nil
		},
	}

	r, mr := productRouter(t, provider)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/slug/cafe-grinder", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, calls, "second hit must come from the cache")
	assert.True(t, mr.Exists("products:slug:cafe-grinder"))
}
