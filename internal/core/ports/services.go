package ports

import (
	"context"
	"time"

	"freight-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// --- Remote Gateway (collaborator boundary) ---

// RemotePayment is the gateway's view of a payment.
type RemotePayment struct {
	ID              string
	Status          string
	Provider        string
	StatusUpdatedAt *time.Time
}

// CreateRemotePaymentRequest mirrors a local payment to the gateway. The
// metadata bag carries the local payment id and quote id for correlation.
type CreateRemotePaymentRequest struct {
	Amount   int64
	Currency string
	Method   domain.PaymentMethod
	Metadata map[string]string
}

// GatewayClient is the typed client to the external payment gateway.
type GatewayClient interface {
	CreatePayment(ctx context.Context, req CreateRemotePaymentRequest) (*RemotePayment, error)
	// GetPaymentByID returns nil, nil on 404: the gateway may not have
	// persisted the record yet, which is not an error.
	GetPaymentByID(ctx context.Context, remoteID string) (*RemotePayment, error)
}

// --- Custodian Provider ---

// CustodianName identifies a supported custody backend. Dispatch is over
// this typed constant set rather than free-form strings.
type CustodianName string

const (
	CustodianVaultis   CustodianName = "vaultis"   // Direct custody, HMAC-signed requests
	CustodianChargeHub CustodianName = "chargehub" // Hosted charges, API-key auth
)

// ParseCustodianName validates a custodian identifier from an external
// caller.
func ParseCustodianName(s string) (CustodianName, bool) {
	switch CustodianName(s) {
	case CustodianVaultis:
		return CustodianVaultis, true
	case CustodianChargeHub:
		return CustodianChargeHub, true
	}
	return "", false
}

// DepositRequest asks a custodian for a deposit address.
type DepositRequest struct {
	Asset        string
	Network      string
	Amount       int64  // Fiat amount in minor units, for hosted-charge custodians
	Currency     string // Fiat currency of Amount
	CryptoAmount *int64 // Expected on-chain amount in the asset's smallest unit, when known
	CustomerRef  string
}

// DepositAddress is the custodian's answer to a deposit request.
type DepositAddress struct {
	Address               string
	Network               string
	Tag                   string
	RequiredConfirmations int
	Raw                   string // Raw provider payload, kept for the audit trail
}

// WithdrawalRequest initiates an on-chain withdrawal. IdempotencyKey is
// forwarded to the custodian; deduplication is the custodian's
// responsibility.
type WithdrawalRequest struct {
	Asset          string
	Amount         int64
	ToAddress      string
	IdempotencyKey string
	CustomerRef    string
}

// WithdrawalReceipt is the custodian's acknowledgement of a withdrawal.
type WithdrawalReceipt struct {
	TransactionID string
	Status        domain.OnChainStatus
	Raw           string
}

// TransactionStatus is a custodian's authoritative view of one on-chain
// transaction, already normalized to the local enum.
type TransactionStatus struct {
	Status                domain.OnChainStatus
	Confirmations         int
	RequiredConfirmations int
	Raw                   string
}

// CustodianProvider is the uniform contract over custody backends. Each
// implementation owns its own authentication and error normalization: any
// non-2xx response surfaces as an apperror carrying the HTTP status and raw
// payload, never a transport exception.
type CustodianProvider interface {
	Name() CustodianName
	CreateDepositAddress(ctx context.Context, req DepositRequest) (*DepositAddress, error)
	InitiateWithdrawal(ctx context.Context, req WithdrawalRequest) (*WithdrawalReceipt, error)
	GetTransactionStatus(ctx context.Context, txID string) (*TransactionStatus, error)
}

// CustodianRegistry resolves a provider by name. Provider returns the cached
// per-name instance built from default configuration; the custodian adapter
// additionally exposes construction from explicit overrides, which never
// touches the cache.
type CustodianRegistry interface {
	Provider(name CustodianName) (CustodianProvider, error)
}

// --- Reconciler ---

// Selector locates a payment by local id, remote id, or both. Resolution
// order: local id, then remote id, then fallback local id, so creation
// paths (local id only) and webhook/poll paths (remote id only) share one
// entry point.
type Selector struct {
	LocalID  *uuid.UUID
	RemoteID string
}

// CreatePaymentInput holds validated input for payment creation.
type CreatePaymentInput struct {
	QuoteID  uuid.UUID
	UserID   uuid.UUID
	Amount   int64
	Currency string
	Method   domain.PaymentMethod
	Provider string
}

// Reconciler applies idempotent state transitions between the local payment
// record, the remote gateway, and the linked quote.
type Reconciler interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error)
	Reconcile(ctx context.Context, sel Selector, reported domain.PaymentStatus, providerRef, reason string) (*domain.Payment, error)
	ConfirmByRemoteID(ctx context.Context, remoteID, providerRef string) (*domain.Payment, error)
	FailByRemoteID(ctx context.Context, remoteID, providerRef, reason string) (*domain.Payment, error)
	SyncByRemoteID(ctx context.Context, remoteID string, status domain.PaymentStatus, providerRef string) (*domain.Payment, error)
}

// --- Custody Orchestrator ---

// SetupDepositInput provisions a crypto deposit for a payment.
type SetupDepositInput struct {
	PaymentID    uuid.UUID
	Custodian    CustodianName
	Asset        string
	Network      string
	FiatAmount   int64
	CryptoAmount *int64
	CustomerRef  string
	Jurisdiction string
}

// DepositInfo is returned to the caller after deposit provisioning.
type DepositInfo struct {
	Address               string
	Network               string
	Tag                   string
	RequiredConfirmations int
}

// WithdrawalInput initiates a crypto withdrawal for a payment. Every call is
// a new withdrawal intent: the orchestrator generates a fresh idempotency
// key per call, so callers retrying on timeout must deduplicate upstream.
type WithdrawalInput struct {
	PaymentID uuid.UUID
	Custodian CustodianName
	Asset     string
	Amount    int64
	ToAddress string
}

// WithdrawalInfo is returned after a withdrawal has been accepted.
type WithdrawalInfo struct {
	TransactionID string
	Status        domain.OnChainStatus
}

// CustodyService orchestrates the deposit/withdrawal lifecycle, composing
// the custodian registry, the compliance engine and the reconciler.
type CustodyService interface {
	SetupDeposit(ctx context.Context, input SetupDepositInput) (*DepositInfo, error)
	InitiateWithdrawal(ctx context.Context, input WithdrawalInput) (*WithdrawalInfo, error)
	SyncOnChainStatus(ctx context.Context, paymentID uuid.UUID, custodian CustodianName, txID string) error
	// EnqueueSync schedules SyncOnChainStatus on the settlement queue.
	// Errors inside the job are logged at the queue boundary, not returned.
	EnqueueSync(paymentID uuid.UUID, custodian CustodianName, txID string) error
	// ResolveHold finishes a flagged payment after manual review.
	ResolveHold(ctx context.Context, paymentID uuid.UUID, approve bool, reviewer string) (*domain.Payment, error)
}

// --- Compliance Engine ---

// ComplianceInput is everything the engine evaluates. The engine is a pure
// function of this input.
type ComplianceInput struct {
	FiatAmount   int64
	Asset        string
	Originator   domain.PartyIdentity
	Beneficiary  domain.PartyIdentity
	Address      string
	Jurisdiction string
}

// ComplianceEngine performs risk scoring and sanctions/travel-rule
// evaluation. Evaluate has no side effects and is safe to re-invoke.
type ComplianceEngine interface {
	Evaluate(input ComplianceInput) domain.ComplianceResult
}

// --- Settlement Queue ---

// Job is one unit of queued work. Run errors are logged, never fatal to the
// queue.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// SettlementQueue serializes on-chain status syncs: exactly one job runs at
// a time, in FIFO order.
type SettlementQueue interface {
	Enqueue(job Job) error
	// Close stops intake and drains pending jobs until ctx expires;
	// remaining jobs are discarded with a logged count.
	Close(ctx context.Context) error
}

// --- Settlement Events ---

// SettlementEvent notifies downstream consumers of a payment status change.
type SettlementEvent struct {
	PaymentID uuid.UUID            `json:"payment_id"`
	QuoteID   uuid.UUID            `json:"quote_id"`
	OldStatus domain.PaymentStatus `json:"old_status"`
	NewStatus domain.PaymentStatus `json:"new_status"`
	At        time.Time            `json:"at"`
}

// EventPublisher publishes settlement status changes. Publishing is
// best-effort: reconciliation never fails because an event could not be
// delivered.
type EventPublisher interface {
	PublishStatusChange(ctx context.Context, event SettlementEvent) error
}
