package handler

import (
	"freight-settlement/internal/adapter/http/dto"
	"freight-settlement/internal/core/domain"
	"freight-settlement/internal/core/ports"
	"freight-settlement/pkg/apperror"
	"freight-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles payment-related endpoints.
type PaymentHandler struct {
	reconciler ports.Reconciler
	payments   ports.PaymentRepository
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(reconciler ports.Reconciler, payments ports.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{reconciler: reconciler, payments: payments}
}

// CreatePayment handles POST /api/v1/payments.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	quoteID, err := uuid.Parse(req.QuoteID)
	if err != nil {
		response.Error(c, apperror.Validation("quote_id must be a UUID"))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.Validation("user_id must be a UUID"))
		return
	}

	payment, err := h.reconciler.CreatePayment(c.Request.Context(), ports.CreatePaymentInput{
		QuoteID:  quoteID,
		UserID:   userID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Method:   domain.PaymentMethod(req.Method),
		Provider: req.Provider,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToPaymentResponse(payment))
}

// GetPayment handles GET /api/v1/payments/:id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("payment id must be a UUID"))
		return
	}

	payment, err := h.payments.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if payment == nil {
		response.Error(c, apperror.ErrNotFound("Payment"))
		return
	}

	response.OK(c, dto.ToPaymentResponse(payment))
}
