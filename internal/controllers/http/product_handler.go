package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"techstore/internal/domain"
	"techstore/internal/infra/imagestore"
	"techstore/internal/repository"
	"techstore/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

const productCacheTTL = 30 * time.Second

type ProductProvider interface {
	Create(ctx context.Context, in services.CreateProductInput, files []imagestore.File) (*domain.Product, error)
	List(ctx context.Context, filters repository.ProductFilters) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Update(ctx context.Context, id string, in services.UpdateProductInput, files []imagestore.File) (*domain.Product, error)
	RemoveImage(ctx context.Context, id, imageURL string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	service ProductProvider
	rdb     *redis.Client
}

func NewProductHandler(service ProductProvider, rdb *redis.Client) *ProductHandler {
	return &ProductHandler{service: service, rdb: rdb}
}

func (h *ProductHandler) Create(c *gin.Context) {
	in, err := parseProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files, err := formFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.service.Create(c.Request.Context(), *in, files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	filters := repository.ProductFilters{
		CategoryID: c.Query("categoryId"),
	}
	if activeStr := c.Query("isActive"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			filters.IsActive = &active
		}
	}

	products, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	product, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	cacheKey := "products:slug:" + slug

	if h.rdb != nil {
		if cached, err := h.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var product domain.Product
			if json.Unmarshal([]byte(cached), &product) == nil {
				c.JSON(http.StatusOK, product)
				return
			}
		}
	}

	product, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(product); err == nil {
			h.rdb.Set(c.Request.Context(), cacheKey, data, productCacheTTL)
		}
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	in := services.UpdateProductInput{}

	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}
		in.Price = &price
	}
	if v, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock"})
			return
		}
		in.Stock = &stock
	}
	if v, ok := c.GetPostForm("categoryId"); ok {
		in.CategoryID = &v
	}
	if v, ok := c.GetPostForm("isActive"); ok {
		active, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isActive"})
			return
		}
		in.IsActive = &active
	}

	files, err := formFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	before, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), c.Param("id"), in, files)
	if err != nil {
		respondError(c, err)
		return
	}

	// A rename changes the slug; the old slug's cache entry must go too
	// or it keeps serving the stale copy until its TTL runs out.
	if before.Slug != product.Slug {
		h.invalidate(c.Request.Context(), before.Slug)
	}
	h.invalidate(c.Request.Context(), product.Slug)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) RemoveImage(c *gin.Context) {
	var req RemoveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.service.RemoveImage(c.Request.Context(), c.Param("id"), req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c.Request.Context(), product.Slug)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	product, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c.Request.Context(), product.Slug)
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *ProductHandler) invalidate(ctx context.Context, slug string) {
	if h.rdb != nil {
		h.rdb.Del(ctx, "products:slug:"+slug)
	}
}

func parseProductForm(c *gin.Context) (*services.CreateProductInput, error) {
	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		return nil, &domain.ValidationError{Message: "invalid price"}
	}

	stock := 0
	if v := c.PostForm("stock"); v != "" {
		stock, err = strconv.Atoi(v)
		if err != nil {
			return nil, &domain.ValidationError{Message: "invalid stock"}
		}
	}

	return &services.CreateProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		Stock:       stock,
		CategoryID:  c.PostForm("categoryId"),
	}, nil
}

func formFiles(c *gin.Context) ([]imagestore.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// JSON or url-encoded bodies simply carry no files.
		return nil, nil
	}

	headers := form.File["images"]
	files := make([]imagestore.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, imagestore.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}
