package postgres

import (
	"context"
	"fmt"

	"freight-settlement/internal/core/domain"
)

// QuoteRepo implements ports.QuoteRepository against the quotes table owned
// by the quoting system. Only the payment-derived columns are touched; quote
// content belongs to the collaborator.
type QuoteRepo struct {
	pool Pool
}

// NewQuoteRepo creates a new QuoteRepo.
func NewQuoteRepo(pool Pool) *QuoteRepo {
	return &QuoteRepo{pool: pool}
}

// ApplyPaymentPatch pushes the payment-derived fields onto a quote. The
// patch is written verbatim: a nil PaymentDate clears the column, so a
// payment that fails after an out-of-order success does not leave a
// rejected quote with a stale payment date.
func (r *QuoteRepo) ApplyPaymentPatch(ctx context.Context, patch domain.QuotePatch) error {
	query := `UPDATE quotes SET payment_status = $1, status = $2,
		payment_date = $3 WHERE id = $4`

	tag, err := r.pool.Exec(ctx, query,
		patch.PaymentStatus, patch.Status, patch.PaymentDate, patch.QuoteID,
	)
	if err != nil {
		return fmt.Errorf("apply quote patch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quote not found: %s", patch.QuoteID)
	}
	return nil
}
