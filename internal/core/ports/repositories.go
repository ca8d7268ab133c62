package ports

import (
	"context"

	"freight-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// PaymentRepository defines persistence operations for payments.
// Lookups return nil, nil when no record matches.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	GetByRemoteID(ctx context.Context, remoteID string) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

// CryptoTransactionRepository defines persistence for the single on-chain
// leg of a crypto payment, keyed by the owning payment id.
type CryptoTransactionRepository interface {
	Create(ctx context.Context, tx *domain.CryptoTransaction) error
	GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*domain.CryptoTransaction, error)
	Update(ctx context.Context, tx *domain.CryptoTransaction) error
}

// QuoteRepository is the boundary to the quote collaborator. This core only
// pushes derived payment fields; it never reads or owns quote state.
type QuoteRepository interface {
	ApplyPaymentPatch(ctx context.Context, patch domain.QuotePatch) error
}

// WebhookDedupStore records processed webhook event ids so replayed
// deliveries can be acknowledged without reprocessing.
type WebhookDedupStore interface {
	// MarkProcessed atomically records an event id. Returns true if the
	// event is new, false if it was already processed.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
}
