package dto

import "freight-settlement/internal/core/domain"

// CreatePaymentRequest is the body for POST /api/v1/payments.
type CreatePaymentRequest struct {
	QuoteID  string `json:"quote_id" binding:"required,uuid"`
	UserID   string `json:"user_id" binding:"required,uuid"`
	Amount   int64  `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required,len=3"`
	Method   string `json:"method" binding:"required,oneof=card fiat_rail crypto"`
	Provider string `json:"provider"`
}

// SetupDepositRequest is the body for POST /api/v1/payments/:id/deposit.
type SetupDepositRequest struct {
	Custodian    string `json:"custodian" binding:"required"`
	Asset        string `json:"asset" binding:"required"`
	Network      string `json:"network"`
	CryptoAmount *int64 `json:"crypto_amount" binding:"omitempty,gt=0"`
	CustomerRef  string `json:"customer_ref"`
	Jurisdiction string `json:"jurisdiction"`
}

// WithdrawalRequest is the body for POST /api/v1/payments/:id/withdrawal.
type WithdrawalRequest struct {
	Custodian string `json:"custodian" binding:"required"`
	Asset     string `json:"asset" binding:"required"`
	Amount    int64  `json:"amount" binding:"required"`
	ToAddress string `json:"to_address" binding:"required"`
}

// SyncRequest is the body for POST /api/v1/payments/:id/sync.
type SyncRequest struct {
	Custodian string `json:"custodian" binding:"required"`
	TxID      string `json:"tx_id" binding:"required"`
}

// ResolveHoldRequest is the body for POST /api/v1/payments/:id/resolve.
type ResolveHoldRequest struct {
	Approve  bool   `json:"approve"`
	Reviewer string `json:"reviewer" binding:"required"`
}

// WebhookEvent is the gateway's webhook delivery. FallbackPaymentID carries
// the local payment id for deliveries racing the gateway's own persistence;
// both historical spellings are accepted.
type WebhookEvent struct {
	ID   string `json:"id" binding:"required"`
	Type string `json:"type" binding:"required"`
	Data struct {
		PaymentID          string `json:"payment_id"`
		Status             string `json:"status"`
		Reason             string `json:"reason"`
		ProviderRef        string `json:"provider_ref"`
		FallbackPaymentID  string `json:"fallback_payment_id"`
		FallbackPaymentID2 string `json:"fallbackPaymentId"`
	} `json:"data" binding:"required"`
}

// FallbackLocalID returns the local payment id the delivery carries, if any.
func (e *WebhookEvent) FallbackLocalID() string {
	if e.Data.FallbackPaymentID != "" {
		return e.Data.FallbackPaymentID
	}
	return e.Data.FallbackPaymentID2
}

// CustodyResponse mirrors domain.CustodyInfo for API responses.
type CustodyResponse struct {
	Custodian             string `json:"custodian"`
	Network               string `json:"network,omitempty"`
	Address               string `json:"address,omitempty"`
	AddressTag            string `json:"address_tag,omitempty"`
	OnChainStatus         string `json:"onchain_status"`
	Confirmations         int    `json:"confirmations"`
	RequiredConfirmations int    `json:"required_confirmations"`
}

// ComplianceResponse mirrors domain.ComplianceResult for API responses.
type ComplianceResponse struct {
	Status     string   `json:"status"`
	AMLScore   int      `json:"aml_score"`
	Sanctions  string   `json:"sanctions"`
	TravelRule string   `json:"travel_rule"`
	Flags      []string `json:"flags,omitempty"`
}

// PaymentResponse is the payment representation returned by the API.
type PaymentResponse struct {
	ID             string              `json:"id"`
	RemoteID       *string             `json:"remote_id,omitempty"`
	QuoteID        string              `json:"quote_id"`
	Amount         int64               `json:"amount"`
	Currency       string              `json:"currency"`
	Method         string              `json:"method"`
	Provider       string              `json:"provider"`
	Status         string              `json:"status"`
	Custody        *CustodyResponse    `json:"custody,omitempty"`
	Compliance     *ComplianceResponse `json:"compliance,omitempty"`
	StatusSyncedAt string              `json:"status_synced_at"`
	CreatedAt      string              `json:"created_at"`
}

// DepositResponse is returned after deposit provisioning.
type DepositResponse struct {
	Address               string `json:"address"`
	Network               string `json:"network"`
	Tag                   string `json:"tag,omitempty"`
	RequiredConfirmations int    `json:"required_confirmations"`
}

// WithdrawalResponse is returned after a withdrawal is accepted.
type WithdrawalResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// ToPaymentResponse converts a domain payment to its API representation.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:             p.ID.String(),
		RemoteID:       p.RemoteID,
		QuoteID:        p.QuoteID.String(),
		Amount:         p.Amount,
		Currency:       p.Currency,
		Method:         string(p.Method),
		Provider:       p.Provider,
		Status:         string(p.Status),
		StatusSyncedAt: p.StatusSyncedAt.Format("2006-01-02T15:04:05Z07:00"),
		CreatedAt:      p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.Custody != nil {
		resp.Custody = &CustodyResponse{
			Custodian:             p.Custody.Custodian,
			Network:               p.Custody.Network,
			Address:               p.Custody.Address,
			AddressTag:            p.Custody.AddressTag,
			OnChainStatus:         string(p.Custody.OnChainStatus),
			Confirmations:         p.Custody.Confirmations,
			RequiredConfirmations: p.Custody.RequiredConfirmations,
		}
	}
	if p.Compliance.Status != "" {
		resp.Compliance = &ComplianceResponse{
			Status:     string(p.Compliance.Status),
			AMLScore:   p.Compliance.AMLScore,
			Sanctions:  string(p.Compliance.Sanctions),
			TravelRule: string(p.Compliance.TravelRule),
			Flags:      p.Compliance.Flags,
		}
	}
	return resp
}
