package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"techstore/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const categoryCacheKey = "categories:all"
const categoryCacheTTL = time.Minute

type CategoryProvider interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type CategoryHandler struct {
	service CategoryProvider
	rdb     *redis.Client
}

func NewCategoryHandler(service CategoryProvider, rdb *redis.Client) *CategoryHandler {
	return &CategoryHandler{service: service, rdb: rdb}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) List(c *gin.Context) {
	if h.rdb != nil {
		if cached, err := h.rdb.Get(c.Request.Context(), categoryCacheKey).Result(); err == nil {
			var categories []domain.Category
			if json.Unmarshal([]byte(cached), &categories) == nil {
				c.JSON(http.StatusOK, categories)
				return
			}
		}
	}

	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(categories); err == nil {
			h.rdb.Set(c.Request.Context(), categoryCacheKey, data, categoryCacheTTL)
		}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetByID(c *gin.Context) {
	category, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.service.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c.Request.Context())
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// WarmupCache primes the category list in redis so the first storefront
// render after boot does not hit the database.
func (h *CategoryHandler) WarmupCache(ctx context.Context) error {
	if h.rdb == nil {
		return nil
	}
	categories, err := h.service.List(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return h.rdb.Set(ctx, categoryCacheKey, data, categoryCacheTTL).Err()
}

func (h *CategoryHandler) invalidate(ctx context.Context) {
	if h.rdb != nil {
		h.rdb.Del(ctx, categoryCacheKey)
	}
}
