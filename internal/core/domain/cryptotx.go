package domain

import (
	"time"

	"github.com/google/uuid"
)

// CryptoTransactionType distinguishes the direction of an on-chain leg.
type CryptoTransactionType string

const (
	CryptoTransactionDeposit    CryptoTransactionType = "DEPOSIT"
	CryptoTransactionWithdrawal CryptoTransactionType = "WITHDRAWAL"
)

// CryptoTransaction is the single on-chain leg tied to a payment's custody
// lifecycle. It is created lazily on the first deposit or withdrawal call
// and updated in place across polls, keyed by the owning payment id.
type CryptoTransaction struct {
	ID                    uuid.UUID             `json:"id"`
	PaymentID             uuid.UUID             `json:"payment_id"`
	Custodian             string                `json:"custodian"`
	Type                  CryptoTransactionType `json:"type"`
	Asset                 string                `json:"asset"`
	Address               string                `json:"address,omitempty"`
	TxID                  string                `json:"tx_id,omitempty"` // Custodian-side transaction id
	Status                OnChainStatus         `json:"status"`
	Confirmations         int                   `json:"confirmations"`
	RequiredConfirmations int                   `json:"required_confirmations"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}
