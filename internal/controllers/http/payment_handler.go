package http

import (
	"context"
	"net/http"

	"techstore/internal/infra/paygate"
	"techstore/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentProvider interface {
	Process(ctx context.Context, in services.ProcessPaymentInput) (*services.PaymentResult, error)
	GetStatus(ctx context.Context, paymentID string) (*paygate.ChargeResult, error)
}

type PaymentHandler struct {
	service PaymentProvider
}

func NewPaymentHandler(service PaymentProvider) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Process(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Process(c.Request.Context(), services.ProcessPaymentInput{
		OrderID:         req.OrderID,
		Token:           req.Token,
		PaymentMethodID: req.PaymentMethodID,
		Installments:    req.Installments,
		PayerEmail:      req.Payer.Email,
		PayerIDType:     req.Payer.Identification.Type,
		PayerIDNumber:   req.Payer.Identification.Number,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) GetStatus(c *gin.Context) {
	result, err := h.service.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
