package handler

import (
	"freight-settlement/internal/adapter/http/dto"
	"freight-settlement/internal/core/ports"
	"freight-settlement/pkg/apperror"
	"freight-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustodyHandler handles crypto custody endpoints.
type CustodyHandler struct {
	custody ports.CustodyService
}

// NewCustodyHandler creates a new CustodyHandler.
func NewCustodyHandler(custody ports.CustodyService) *CustodyHandler {
	return &CustodyHandler{custody: custody}
}

// SetupDeposit handles POST /api/v1/payments/:id/deposit.
func (h *CustodyHandler) SetupDeposit(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("payment id must be a UUID"))
		return
	}

	var req dto.SetupDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	custodian, ok := ports.ParseCustodianName(req.Custodian)
	if !ok {
		response.Error(c, apperror.ErrUnsupportedCustodian(req.Custodian))
		return
	}

	info, err := h.custody.SetupDeposit(c.Request.Context(), ports.SetupDepositInput{
		PaymentID:    paymentID,
		Custodian:    custodian,
		Asset:        req.Asset,
		Network:      req.Network,
		CryptoAmount: req.CryptoAmount,
		CustomerRef:  req.CustomerRef,
		Jurisdiction: req.Jurisdiction,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.DepositResponse{
		Address:               info.Address,
		Network:               info.Network,
		Tag:                   info.Tag,
		RequiredConfirmations: info.RequiredConfirmations,
	})
}

// InitiateWithdrawal handles POST /api/v1/payments/:id/withdrawal.
func (h *CustodyHandler) InitiateWithdrawal(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("payment id must be a UUID"))
		return
	}

	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	custodian, ok := ports.ParseCustodianName(req.Custodian)
	if !ok {
		response.Error(c, apperror.ErrUnsupportedCustodian(req.Custodian))
		return
	}

	info, err := h.custody.InitiateWithdrawal(c.Request.Context(), ports.WithdrawalInput{
		PaymentID: paymentID,
		Custodian: custodian,
		Asset:     req.Asset,
		Amount:    req.Amount,
		ToAddress: req.ToAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.WithdrawalResponse{
		TransactionID: info.TransactionID,
		Status:        string(info.Status),
	})
}

// SyncOnChain handles POST /api/v1/payments/:id/sync. The sync itself runs
// on the settlement queue; the handler only schedules it.
func (h *CustodyHandler) SyncOnChain(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("payment id must be a UUID"))
		return
	}

	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	custodian, ok := ports.ParseCustodianName(req.Custodian)
	if !ok {
		response.Error(c, apperror.ErrUnsupportedCustodian(req.Custodian))
		return
	}

	if err := h.custody.EnqueueSync(paymentID, custodian, req.TxID); err != nil {
		response.Error(c, err)
		return
	}

	response.Accepted(c, gin.H{"payment_id": paymentID.String(), "scheduled": true})
}

// ResolveHold handles POST /api/v1/payments/:id/resolve.
func (h *CustodyHandler) ResolveHold(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("payment id must be a UUID"))
		return
	}

	var req dto.ResolveHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	payment, err := h.custody.ResolveHold(c.Request.Context(), paymentID, req.Approve, req.Reviewer)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPaymentResponse(payment))
}
