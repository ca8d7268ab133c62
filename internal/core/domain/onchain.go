package domain

import "strings"

// OnChainStatus is the normalized six-state on-chain transaction status.
type OnChainStatus string

const (
	OnChainStatusAwaitingFunds OnChainStatus = "AWAITING_FUNDS"
	OnChainStatusPending       OnChainStatus = "PENDING"
	OnChainStatusConfirmed     OnChainStatus = "CONFIRMED"
	OnChainStatusFailed        OnChainStatus = "FAILED"
	OnChainStatusRejected      OnChainStatus = "REJECTED"
	OnChainStatusCancelled     OnChainStatus = "CANCELLED"
)

// IsTerminal returns true if no further on-chain movement is expected.
func (s OnChainStatus) IsTerminal() bool {
	switch s {
	case OnChainStatusConfirmed, OnChainStatusFailed, OnChainStatusRejected, OnChainStatusCancelled:
		return true
	}
	return false
}

// onChainVocabulary maps every known provider status word onto the
// normalized enum. Both custodian variants funnel through this table; a
// provider word missing here falls back to PENDING rather than silently
// inventing a terminal state.
var onChainVocabulary = map[string]OnChainStatus{
	"COMPLETED":           OnChainStatusConfirmed,
	"CONFIRMED":           OnChainStatusConfirmed,
	"PAID":                OnChainStatusConfirmed,
	"FULFILLED":           OnChainStatusConfirmed,
	"SUCCESS":             OnChainStatusConfirmed,
	"SUBMITTED":           OnChainStatusPending,
	"PENDING":             OnChainStatusPending,
	"WAITING":             OnChainStatusPending,
	"WAITING_FOR_NETWORK": OnChainStatusPending,
	"PROCESSING":          OnChainStatusPending,
	"AWAITING_FUNDS":      OnChainStatusAwaitingFunds,
	"OPEN":                OnChainStatusAwaitingFunds,
	"FAILED":              OnChainStatusFailed,
	"CANCELLED":           OnChainStatusFailed,
	"EXPIRED":             OnChainStatusFailed,
	"REJECTED":            OnChainStatusFailed,
	"DECLINED":            OnChainStatusFailed,
}

// NormalizeOnChainStatus maps a provider-specific status word onto the
// six-state enum. WAITING-prefixed words normalize to PENDING.
func NormalizeOnChainStatus(providerStatus string) OnChainStatus {
	key := strings.ToUpper(strings.TrimSpace(providerStatus))
	if s, ok := onChainVocabulary[key]; ok {
		return s
	}
	if strings.HasPrefix(key, "WAITING") {
		return OnChainStatusPending
	}
	return OnChainStatusPending
}
