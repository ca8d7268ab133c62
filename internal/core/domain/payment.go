package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod represents how a payment is settled.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodFiatRail PaymentMethod = "fiat_rail"
	PaymentMethodCrypto   PaymentMethod = "crypto"
)

// PaymentStatus is the authoritative lifecycle state of a payment.
// Only the four base states may be set by reconciliation; OnHold is a
// transient state entered during compliance review and must resolve to
// Succeeded or Failed.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSucceeded  PaymentStatus = "succeeded"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusOnHold     PaymentStatus = "on_hold"
)

// ParsePaymentStatus maps a gateway-reported status string onto the local
// enum. Unknown values return false: webhooks carrying vocabulary we do not
// handle are acknowledged but not applied.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(strings.ToLower(s)) {
	case PaymentStatusPending:
		return PaymentStatusPending, true
	case PaymentStatusProcessing:
		return PaymentStatusProcessing, true
	case PaymentStatusSucceeded:
		return PaymentStatusSucceeded, true
	case PaymentStatusFailed:
		return PaymentStatusFailed, true
	}
	return "", false
}

// IsTerminal returns true if the payment reached a final state.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusFailed
}

// CustodyInfo is the crypto custody sub-record, present only for
// crypto-method payments.
type CustodyInfo struct {
	Custodian             string        `json:"custodian"`
	Network               string        `json:"network,omitempty"`
	Address               string        `json:"address,omitempty"`
	AddressTag            string        `json:"address_tag,omitempty"`
	OnChainStatus         OnChainStatus `json:"onchain_status"`
	Confirmations         int           `json:"confirmations"`
	RequiredConfirmations int           `json:"required_confirmations"`
	CustomerRef           string        `json:"customer_ref,omitempty"`
	Jurisdiction          string        `json:"jurisdiction,omitempty"`
	LastCheckedAt         *time.Time    `json:"last_checked_at,omitempty"`
}

// AuditEntry is one immutable record in a payment's audit trail.
// The trail is append-only: prior snapshots and provider references are
// merged in, never overwritten.
type AuditEntry struct {
	At          time.Time     `json:"at"`
	FromStatus  PaymentStatus `json:"from_status"`
	ToStatus    PaymentStatus `json:"to_status"`
	ProviderRef string        `json:"provider_ref,omitempty"`
	Reason      string        `json:"reason,omitempty"`
}

// Payment is the local source of truth for one settlement attempt.
type Payment struct {
	ID             uuid.UUID        `json:"id"`
	RemoteID       *string          `json:"remote_id,omitempty"` // Gateway-side id, unique when present
	QuoteID        uuid.UUID        `json:"quote_id"`
	UserID         uuid.UUID        `json:"user_id"`
	Amount         int64            `json:"amount"` // In minor units
	Currency       string           `json:"currency"`
	Method         PaymentMethod    `json:"method"`
	Provider       string           `json:"provider"` // Gateway name, or "crypto"
	Status         PaymentStatus    `json:"status"`
	Custody        *CustodyInfo     `json:"custody,omitempty"`
	Compliance     ComplianceResult `json:"compliance"`
	AuditTrail     []AuditEntry     `json:"audit_trail"`
	StatusSyncedAt time.Time        `json:"status_synced_at"`
	CreatedAt      time.Time        `json:"created_at"`
}

// AppendAudit merges a new entry into the audit trail. An entry that lands
// on the same resulting status as the latest one, for the same provider ref
// and reason, is a replayed delivery and is dropped. FromStatus is not
// compared: on replay the payment already sits in the target status, so the
// replayed entry reads as a self-transition.
func (p *Payment) AppendAudit(entry AuditEntry) {
	if n := len(p.AuditTrail); n > 0 {
		last := p.AuditTrail[n-1]
		if last.ToStatus == entry.ToStatus &&
			last.ProviderRef == entry.ProviderRef &&
			last.Reason == entry.Reason {
			return
		}
	}
	p.AuditTrail = append(p.AuditTrail, entry)
}

// RequiresCompliance reports whether the custody leg reached the threshold
// that gates compliance evaluation. This is the only trigger that may run
// the compliance engine.
func (p *Payment) RequiresCompliance() bool {
	return p.Custody != nil &&
		p.Custody.OnChainStatus == OnChainStatusConfirmed &&
		p.Custody.Confirmations >= p.Custody.RequiredConfirmations
}
