package http

import (
	"context"
	"net/http"

	"techstore/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthProvider interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

type AuthHandler struct {
	service AuthProvider
}

func NewAuthHandler(service AuthProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
