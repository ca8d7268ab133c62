package service

import (
	"context"
	"fmt"
	"time"

	"freight-settlement/internal/core/domain"
	"freight-settlement/internal/core/ports"
	"freight-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Audit reasons set by this core rather than an external provider.
const (
	ReasonGatewayError   = "gateway_error"
	ReasonOnChainFailed  = "onchain_failed"
	ReasonAMLRejected    = "aml_rejected"
	ReasonManualApproved = "manual_review_approved"
	ReasonManualRejected = "manual_review_rejected"
)

// ReconcilerService implements ports.Reconciler. All payment status writes
// in the system funnel through Reconcile; it is safe to call concurrently
// from webhook delivery, queue jobs and user-initiated creation because the
// apply step is idempotent and no lock is held across external calls.
type ReconcilerService struct {
	payments ports.PaymentRepository
	quotes   ports.QuoteRepository
	gateway  ports.GatewayClient
	events   ports.EventPublisher // nil = event publishing disabled
	log      zerolog.Logger
}

// NewReconciler creates a new ReconcilerService.
func NewReconciler(
	payments ports.PaymentRepository,
	quotes ports.QuoteRepository,
	gateway ports.GatewayClient,
	events ports.EventPublisher,
	log zerolog.Logger,
) *ReconcilerService {
	return &ReconcilerService{
		payments: payments,
		quotes:   quotes,
		gateway:  gateway,
		events:   events,
		log:      log,
	}
}

// CreatePayment creates the local record, mirrors it to the remote gateway
// for non-crypto methods, and reconciles the gateway's initial status
// immediately. Crypto payments stay local: their lifecycle is driven by the
// custody orchestrator, not the gateway.
func (s *ReconcilerService) CreatePayment(ctx context.Context, input ports.CreatePaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if input.Currency == "" {
		return nil, apperror.Validation("currency is required")
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:             uuid.New(),
		QuoteID:        input.QuoteID,
		UserID:         input.UserID,
		Amount:         input.Amount,
		Currency:       input.Currency,
		Method:         input.Method,
		Provider:       input.Provider,
		Status:         domain.PaymentStatusPending,
		Compliance:     domain.ComplianceResult{Status: domain.ComplianceStatusPending},
		StatusSyncedAt: now,
		CreatedAt:      now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create payment: %w", err))
	}

	if input.Method == domain.PaymentMethodCrypto {
		s.log.Info().
			Str("payment_id", payment.ID.String()).
			Str("quote_id", payment.QuoteID.String()).
			Msg("crypto payment created, awaiting custody setup")
		return payment, nil
	}

	remote, err := s.gateway.CreatePayment(ctx, ports.CreateRemotePaymentRequest{
		Amount:   input.Amount,
		Currency: input.Currency,
		Method:   input.Method,
		Metadata: map[string]string{
			"payment_id": payment.ID.String(),
			"quote_id":   payment.QuoteID.String(),
		},
	})
	if err != nil {
		// Gateway failure is terminal for this attempt: fail locally so the
		// quote is rejected, then surface the typed error to the caller.
		if _, applyErr := s.apply(ctx, payment, domain.PaymentStatusFailed, now, "", ReasonGatewayError); applyErr != nil {
			s.log.Error().Err(applyErr).
				Str("payment_id", payment.ID.String()).
				Msg("failed to record gateway create failure")
		}
		return nil, err
	}

	reported := domain.PaymentStatusPending
	if st, ok := domain.ParsePaymentStatus(remote.Status); ok {
		reported = st
	}
	return s.Reconcile(ctx, ports.Selector{LocalID: &payment.ID, RemoteID: remote.ID}, reported, remote.ID, "")
}

// Reconcile locates a payment via the selector, resolves the authoritative
// status against the remote gateway, and applies it idempotently. A nil
// payment with nil error means no matching payment was found.
func (s *ReconcilerService) Reconcile(ctx context.Context, sel ports.Selector, reported domain.PaymentStatus, providerRef, reason string) (*domain.Payment, error) {
	payment, err := s.locate(ctx, sel)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, nil
	}

	status := reported
	syncedAt := time.Now().UTC()

	remoteID := sel.RemoteID
	if remoteID == "" && payment.RemoteID != nil {
		remoteID = *payment.RemoteID
	}
	if remoteID != "" {
		remote, err := s.gateway.GetPaymentByID(ctx, remoteID)
		if err != nil {
			return nil, err
		}
		// A 404 means the gateway has not persisted the record yet; the
		// caller-supplied status stands.
		if remote != nil {
			if st, ok := domain.ParsePaymentStatus(remote.Status); ok {
				status = st
			}
			if remote.StatusUpdatedAt != nil {
				syncedAt = remote.StatusUpdatedAt.UTC()
			}
		}
	}

	// Reject out-of-order updates: a late webhook carrying an older
	// status-change time must not overwrite a fresher state.
	if syncedAt.Before(payment.StatusSyncedAt) {
		s.log.Warn().
			Str("payment_id", payment.ID.String()).
			Time("reported_at", syncedAt).
			Time("stored_at", payment.StatusSyncedAt).
			Str("reported_status", string(status)).
			Msg("stale status update rejected")
		payment.AppendAudit(domain.AuditEntry{
			At:          time.Now().UTC(),
			FromStatus:  payment.Status,
			ToStatus:    payment.Status,
			ProviderRef: providerRef,
			Reason:      "stale_update_rejected",
		})
		if err := s.payments.Update(ctx, payment); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("record stale update: %w", err))
		}
		return payment, nil
	}

	if remoteID != "" && payment.RemoteID == nil {
		payment.RemoteID = &remoteID
	}

	return s.apply(ctx, payment, status, syncedAt, providerRef, reason)
}

// ConfirmByRemoteID marks the payment succeeded, subject to remote status
// resolution.
func (s *ReconcilerService) ConfirmByRemoteID(ctx context.Context, remoteID, providerRef string) (*domain.Payment, error) {
	return s.Reconcile(ctx, ports.Selector{RemoteID: remoteID}, domain.PaymentStatusSucceeded, providerRef, "")
}

// FailByRemoteID marks the payment failed. A reason is required.
func (s *ReconcilerService) FailByRemoteID(ctx context.Context, remoteID, providerRef, reason string) (*domain.Payment, error) {
	if reason == "" {
		return nil, apperror.ErrMissingReason()
	}
	return s.Reconcile(ctx, ports.Selector{RemoteID: remoteID}, domain.PaymentStatusFailed, providerRef, reason)
}

// SyncByRemoteID applies a caller-supplied non-terminal status, e.g.
// "processing" from an admin poll.
func (s *ReconcilerService) SyncByRemoteID(ctx context.Context, remoteID string, status domain.PaymentStatus, providerRef string) (*domain.Payment, error) {
	return s.Reconcile(ctx, ports.Selector{RemoteID: remoteID}, status, providerRef, "")
}

// locate resolves the selector: local id first, then remote id, then the
// local id again as fallback. Missing payments are nil, nil.
func (s *ReconcilerService) locate(ctx context.Context, sel ports.Selector) (*domain.Payment, error) {
	if sel.LocalID != nil {
		p, err := s.payments.GetByID(ctx, *sel.LocalID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("get payment by id: %w", err))
		}
		if p != nil {
			return p, nil
		}
	}
	if sel.RemoteID != "" {
		p, err := s.payments.GetByRemoteID(ctx, sel.RemoteID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("get payment by remote id: %w", err))
		}
		if p != nil {
			return p, nil
		}
	}
	if sel.LocalID != nil {
		p, err := s.payments.GetByID(ctx, *sel.LocalID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("get payment by fallback id: %w", err))
		}
		return p, nil
	}
	return nil, nil
}

// apply performs the idempotent write: unconditional status set plus an
// audit-trail merge, then quote propagation and event publishing. Calling
// it twice with the same inputs refreshes timestamps only.
func (s *ReconcilerService) apply(ctx context.Context, payment *domain.Payment, status domain.PaymentStatus, syncedAt time.Time, providerRef, reason string) (*domain.Payment, error) {
	oldStatus := payment.Status
	payment.Status = status
	payment.StatusSyncedAt = syncedAt
	payment.AppendAudit(domain.AuditEntry{
		At:          syncedAt,
		FromStatus:  oldStatus,
		ToStatus:    status,
		ProviderRef: providerRef,
		Reason:      reason,
	})

	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update payment: %w", err))
	}

	patch := domain.QuotePatchFor(payment.QuoteID, payment.Status, payment.StatusSyncedAt)
	if err := s.quotes.ApplyPaymentPatch(ctx, patch); err != nil {
		// Entity writes are not atomic across payment and quote. The payment
		// is already updated; surface the divergence loudly for monitoring.
		s.log.Error().Err(err).
			Str("payment_id", payment.ID.String()).
			Str("quote_id", payment.QuoteID.String()).
			Str("status", string(payment.Status)).
			Msg("quote propagation failed, payment and quote have diverged")
	}

	if s.events != nil && oldStatus != payment.Status {
		event := ports.SettlementEvent{
			PaymentID: payment.ID,
			QuoteID:   payment.QuoteID,
			OldStatus: oldStatus,
			NewStatus: payment.Status,
			At:        syncedAt,
		}
		if err := s.events.PublishStatusChange(ctx, event); err != nil {
			s.log.Warn().Err(err).
				Str("payment_id", payment.ID.String()).
				Msg("failed to publish settlement event")
		}
	}

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Str("from", string(oldStatus)).
		Str("to", string(payment.Status)).
		Str("provider_ref", providerRef).
		Msg("payment reconciled")

	return payment, nil
}
