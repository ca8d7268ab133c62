package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"freight-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentRepo implements ports.PaymentRepository. The custody sub-record,
// compliance result and audit trail live in JSONB columns: they are always
// read and written as part of the payment, never queried on their own.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// Create inserts a new payment.
func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	custody, compliance, audit, err := marshalPaymentDocs(p)
	if err != nil {
		return err
	}

	query := `INSERT INTO payments (id, remote_id, quote_id, user_id, amount, currency, method, provider,
		status, custody, compliance, audit_trail, status_synced_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.pool.Exec(ctx, query,
		p.ID, p.RemoteID, p.QuoteID, p.UserID,
		p.Amount, p.Currency, p.Method, p.Provider,
		p.Status, custody, compliance, audit,
		p.StatusSyncedAt, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches a payment by local id.
func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	return r.scanPayment(r.pool.QueryRow(ctx, selectPayment+` WHERE id = $1`, id))
}

// GetByRemoteID fetches a payment by the gateway-side id.
func (r *PaymentRepo) GetByRemoteID(ctx context.Context, remoteID string) (*domain.Payment, error) {
	return r.scanPayment(r.pool.QueryRow(ctx, selectPayment+` WHERE remote_id = $1`, remoteID))
}

// Update writes the full mutable state of a payment.
func (r *PaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	custody, compliance, audit, err := marshalPaymentDocs(p)
	if err != nil {
		return err
	}

	query := `UPDATE payments SET remote_id = $1, status = $2, custody = $3, compliance = $4,
		audit_trail = $5, status_synced_at = $6 WHERE id = $7`

	tag, err := r.pool.Exec(ctx, query,
		p.RemoteID, p.Status, custody, compliance, audit, p.StatusSyncedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment not found: %s", p.ID)
	}
	return nil
}

const selectPayment = `SELECT id, remote_id, quote_id, user_id, amount, currency, method, provider,
	status, custody, compliance, audit_trail, status_synced_at, created_at FROM payments`

func (r *PaymentRepo) scanPayment(row pgx.Row) (*domain.Payment, error) {
	p := &domain.Payment{}
	var custody, compliance, audit []byte
	err := row.Scan(
		&p.ID, &p.RemoteID, &p.QuoteID, &p.UserID,
		&p.Amount, &p.Currency, &p.Method, &p.Provider,
		&p.Status, &custody, &compliance, &audit,
		&p.StatusSyncedAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	if len(custody) > 0 {
		p.Custody = &domain.CustodyInfo{}
		if err := json.Unmarshal(custody, p.Custody); err != nil {
			return nil, fmt.Errorf("decode custody: %w", err)
		}
	}
	if len(compliance) > 0 {
		if err := json.Unmarshal(compliance, &p.Compliance); err != nil {
			return nil, fmt.Errorf("decode compliance: %w", err)
		}
	}
	if len(audit) > 0 {
		if err := json.Unmarshal(audit, &p.AuditTrail); err != nil {
			return nil, fmt.Errorf("decode audit trail: %w", err)
		}
	}
	return p, nil
}

func marshalPaymentDocs(p *domain.Payment) (custody, compliance, audit []byte, err error) {
	if p.Custody != nil {
		custody, err = json.Marshal(p.Custody)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encode custody: %w", err)
		}
	}
	compliance, err = json.Marshal(p.Compliance)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encode compliance: %w", err)
	}
	if p.AuditTrail != nil {
		audit, err = json.Marshal(p.AuditTrail)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encode audit trail: %w", err)
		}
	}
	return custody, compliance, audit, nil
}
