package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tahseel-app/tahseel-backend/types"
)

// PaymentHandler exposes payment recording and editing.
type PaymentHandler struct {
	paymentService PaymentServiceInterface
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create handles POST /v1/payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req types.CreatePaymentRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// ListByTrip handles GET /v1/trips/:id/payments.
func (h *PaymentHandler) ListByTrip(c *gin.Context) {
	payments, err := h.paymentService.ListByTrip(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if payments == nil {
		payments = []types.PaymentDetail{}
	}
	c.JSON(http.StatusOK, payments)
}

// Get handles GET /v1/payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.paymentService.Get(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Update handles PATCH /v1/payments/:id.
func (h *PaymentHandler) Update(c *gin.Context) {
	var update types.PaymentUpdate
	if !bindJSONOrError(c, &update) {
		return
	}

	payment, err := h.paymentService.Update(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), &update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Delete handles DELETE /v1/payments/:id.
func (h *PaymentHandler) Delete(c *gin.Context) {
	if err := h.paymentService.Delete(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
