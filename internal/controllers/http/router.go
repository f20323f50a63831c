package http

import "github.com/gin-gonic/gin"

type Handlers struct {
	Orders     *OrderHandler
	Products   *ProductHandler
	Categories *CategoryHandler
	Auth       *AuthHandler
	Payments   *PaymentHandler
}

// RegisterRoutes wires the public storefront surface and the JWT-guarded
// admin surface.
func RegisterRoutes(r *gin.Engine, h Handlers, auth TokenParser) {
	r.POST("/auth/login", h.Auth.Login)

	r.POST("/orders", h.Orders.Create)
	r.GET("/orders/number/:orderNumber", h.Orders.GetByNumber)

	r.GET("/products", h.Products.List)
	r.GET("/products/slug/:slug", h.Products.GetBySlug)
	r.GET("/products/:id", h.Products.GetByID)

	r.GET("/categories", h.Categories.List)
	r.GET("/categories/slug/:slug", h.Categories.GetBySlug)
	r.GET("/categories/:id", h.Categories.GetByID)

	r.POST("/payments/process", h.Payments.Process)
	r.GET("/payments/:id", h.Payments.GetStatus)

	admin := r.Group("/", RequireAdmin(auth))
	admin.GET("/orders", h.Orders.List)
	admin.GET("/orders/:id", h.Orders.GetByID)
	admin.PATCH("/orders/:id/status", h.Orders.UpdateStatus)
	admin.DELETE("/orders/:id", h.Orders.Delete)

	admin.POST("/products", h.Products.Create)
	admin.PATCH("/products/:id", h.Products.Update)
	admin.POST("/products/:id/images/remove", h.Products.RemoveImage)
	admin.DELETE("/products/:id", h.Products.Delete)

	admin.POST("/categories", h.Categories.Create)
	admin.PATCH("/categories/:id", h.Categories.Update)
	admin.DELETE("/categories/:id", h.Categories.Delete)
}
