package postgres

import (
	"context"
	"errors"
	"fmt"

	"freight-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CryptoTransactionRepo implements ports.CryptoTransactionRepository.
type CryptoTransactionRepo struct {
	pool Pool
}

// NewCryptoTransactionRepo creates a new CryptoTransactionRepo.
func NewCryptoTransactionRepo(pool Pool) *CryptoTransactionRepo {
	return &CryptoTransactionRepo{pool: pool}
}

// Create inserts the on-chain leg of a crypto payment. The payment_id column
// carries a unique constraint: one leg per payment.
func (r *CryptoTransactionRepo) Create(ctx context.Context, t *domain.CryptoTransaction) error {
	query := `INSERT INTO crypto_transactions (id, payment_id, custodian, tx_type, asset, address, tx_id,
		status, confirmations, required_confirmations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.PaymentID, t.Custodian, t.Type, t.Asset, t.Address, t.TxID,
		t.Status, t.Confirmations, t.RequiredConfirmations, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert crypto transaction: %w", err)
	}
	return nil
}

// GetByPaymentID fetches the leg owned by a payment. Returns nil, nil when
// the payment has no leg yet.
func (r *CryptoTransactionRepo) GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*domain.CryptoTransaction, error) {
	query := `SELECT id, payment_id, custodian, tx_type, asset, address, tx_id,
		status, confirmations, required_confirmations, created_at, updated_at
		FROM crypto_transactions WHERE payment_id = $1`

	t := &domain.CryptoTransaction{}
	err := r.pool.QueryRow(ctx, query, paymentID).Scan(
		&t.ID, &t.PaymentID, &t.Custodian, &t.Type, &t.Asset, &t.Address, &t.TxID,
		&t.Status, &t.Confirmations, &t.RequiredConfirmations, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crypto transaction: %w", err)
	}
	return t, nil
}

// Update writes the mutable state of a leg.
func (r *CryptoTransactionRepo) Update(ctx context.Context, t *domain.CryptoTransaction) error {
	query := `UPDATE crypto_transactions SET custodian = $1, tx_type = $2, asset = $3, address = $4,
		tx_id = $5, status = $6, confirmations = $7, required_confirmations = $8, updated_at = $9
		WHERE id = $10`

	tag, err := r.pool.Exec(ctx, query,
		t.Custodian, t.Type, t.Asset, t.Address,
		t.TxID, t.Status, t.Confirmations, t.RequiredConfirmations, t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update crypto transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("crypto transaction not found: %s", t.ID)
	}
	return nil
}
