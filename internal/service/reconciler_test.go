package service

import (
	"context"
	"testing"
	"time"

	"freight-settlement/internal/core/domain"
	"freight-settlement/internal/core/ports"
	"freight-settlement/internal/core/ports/mocks"
	"freight-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reconcilerTestDeps struct {
	svc      *ReconcilerService
	payments *mocks.MockPaymentRepository
	quotes   *mocks.MockQuoteRepository
	gateway  *mocks.MockGatewayClient
	ctrl     *gomock.Controller
}

func setupReconciler(t *testing.T) *reconcilerTestDeps {
	ctrl := gomock.NewController(t)
	d := &reconcilerTestDeps{
		payments: mocks.NewMockPaymentRepository(ctrl),
		quotes:   mocks.NewMockQuoteRepository(ctrl),
		gateway:  mocks.NewMockGatewayClient(ctrl),
		ctrl:     ctrl,
	}
	d.svc = NewReconciler(d.payments, d.quotes, d.gateway, nil, zerolog.Nop())
	return d
}

func storedPayment(status domain.PaymentStatus, remoteID string, syncedAt time.Time) *domain.Payment {
	p := &domain.Payment{
		ID:             uuid.New(),
		QuoteID:        uuid.New(),
		UserID:         uuid.New(),
		Amount:         250000,
		Currency:       "USD",
		Method:         domain.PaymentMethodCard,
		Provider:       "gateway",
		Status:         status,
		StatusSyncedAt: syncedAt,
		CreatedAt:      syncedAt,
	}
	if remoteID != "" {
		p.RemoteID = &remoteID
	}
	return p
}

// ==================== CreatePayment Tests ====================

func TestReconciler_CreatePayment_Success(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	updatedAt := time.Now().UTC()

	var created *domain.Payment
	d.payments.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p *domain.Payment) error {
			created = p
			return nil
		})
	d.gateway.EXPECT().CreatePayment(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.CreateRemotePaymentRequest) (*ports.RemotePayment, error) {
			assert.Equal(t, int64(250000), req.Amount)
			assert.Equal(t, created.ID.String(), req.Metadata["payment_id"])
			return &ports.RemotePayment{ID: "rp_1", Status: "processing"}, nil
		})
	// Reconcile resolves the stored record and re-checks the gateway.
	d.payments.EXPECT().GetByID(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID) (*domain.Payment, error) {
			return created, nil
		})
	d.gateway.EXPECT().GetPaymentByID(ctx, "rp_1").Return(&ports.RemotePayment{
		ID:              "rp_1",
		Status:          "processing",
		StatusUpdatedAt: &updatedAt,
	}, nil)
	d.payments.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	d.quotes.EXPECT().ApplyPaymentPatch(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, patch domain.QuotePatch) error {
			assert.Equal(t, domain.QuotePaymentPending, patch.PaymentStatus)
			assert.Equal(t, domain.QuoteStatusPending, patch.Status)
			return nil
		})

	result, err := d.svc.CreatePayment(ctx, ports.CreatePaymentInput{
		QuoteID:  uuid.New(),
		UserID:   uuid.New(),
		Amount:   250000,
		Currency: "USD",
		Method:   domain.PaymentMethodCard,
		Provider: "gateway",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.PaymentStatusProcessing, result.Status)
	require.NotNil(t, result.RemoteID)
	assert.Equal(t, "rp_1", *result.RemoteID)
}

func TestReconciler_CreatePayment_CryptoStaysLocal(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.payments.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	result, err := d.svc.CreatePayment(ctx, ports.CreatePaymentInput{
		QuoteID:  uuid.New(),
		UserID:   uuid.New(),
		Amount:   100000,
		Currency: "USD",
		Method:   domain.PaymentMethodCrypto,
		Provider: "crypto",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, result.Status)
	assert.Nil(t, result.RemoteID)
}

func TestReconciler_CreatePayment_InvalidAmount(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	_, err := d.svc.CreatePayment(context.Background(), ports.CreatePaymentInput{
		Amount:   0,
		Currency: "USD",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "PAY_001", appErr.Code)
}

func TestReconciler_CreatePayment_GatewayFailureFailsLocally(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.payments.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	d.gateway.EXPECT().CreatePayment(ctx, gomock.Any()).Return(nil, apperror.ErrGatewayUnreachable(assert.AnError))
	d.payments.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p *domain.Payment) error {
			assert.Equal(t, domain.PaymentStatusFailed, p.Status)
			require.Len(t, p.AuditTrail, 1)
			assert.Equal(t, ReasonGatewayError, p.AuditTrail[0].Reason)
			return nil
		})
	d.quotes.EXPECT().ApplyPaymentPatch(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, patch domain.QuotePatch) error {
			assert.Equal(t, domain.QuoteStatusRejected, patch.Status)
			return nil
		})

	_, err := d.svc.CreatePayment(ctx, ports.CreatePaymentInput{
		QuoteID:  uuid.New(),
		UserID:   uuid.New(),
		Amount:   50000,
		Currency: "USD",
		Method:   domain.PaymentMethodCard,
		Provider: "gateway",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "GW_002", appErr.Code)
}

// ==================== Reconcile Tests ====================

func TestReconciler_Reconcile_NotFound(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.payments.EXPECT().GetByRemoteID(ctx, "rp_missing").Return(nil, nil)

	result, err := d.svc.Reconcile(ctx, ports.Selector{RemoteID: "rp_missing"}, domain.PaymentStatusSucceeded, "evt_1", "")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReconciler_Reconcile_RemoteStatusWins(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	stored := storedPayment(domain.PaymentStatusProcessing, "rp_1", time.Now().UTC().Add(-time.Hour))
	updatedAt := time.Now().UTC()

	d.payments.EXPECT().GetByRemoteID(ctx, "rp_1").Return(stored, nil)
	d.gateway.EXPECT().GetPaymentByID(ctx, "rp_1").Return(&ports.RemotePayment{
		ID:              "rp_1",
		Status:          "succeeded",
		StatusUpdatedAt: &updatedAt,
	}, nil)
	d.payments.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	d.quotes.EXPECT().ApplyPaymentPatch(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, patch domain.QuotePatch) error {
			assert.Equal(t, domain.QuotePaymentConfirmed, patch.PaymentStatus)
			assert.Equal(t, domain.QuoteStatusConfirmed, patch.Status)
			require.NotNil(t, patch.PaymentDate)
			return nil
		})

	// Caller reports failed but the gateway is authoritative.
	result, err := d.svc.Reconcile(ctx, ports.Selector{RemoteID: "rp_1"}, domain.PaymentStatusFailed, "evt_1", "card_declined")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSucceeded, result.Status)
}

func TestReconciler_Reconcile_Remote404UsesCallerStatus(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	stored := storedPayment(domain.PaymentStatusPending, "rp_1", time.Now().UTC().Add(-time.Minute))

	d.payments.EXPECT().GetByRemoteID(ctx, "rp_1").Return(stored, nil)
	d.gateway.EXPECT().GetPaymentByID(ctx, "rp_1").Return(nil, nil)
	d.payments.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	d.quotes.EXPECT().ApplyPaymentPatch(ctx, gomock.Any()).Return(nil)

	result, err := d.svc.Reconcile(ctx, ports.Selector{RemoteID: "rp_1"}, domain.PaymentStatusSucceeded, "evt_1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSucceeded, result.Status)
}

func TestReconciler_Reconcile_StaleUpdateRejected(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	syncedAt := time.Now().UTC()
	stored := storedPayment(domain.PaymentStatusSucceeded, "rp_1", syncedAt)
	staleAt := syncedAt.Add(-10 * time.Minute)

	d.payments.EXPECT().GetByRemoteID(ctx, "rp_1").Return(stored, nil)
	d.gateway.EXPECT().GetPaymentByID(ctx, "rp_1").Return(&ports.RemotePayment{
		ID:              "rp_1",
		Status:          "processing",
		StatusUpdatedAt: &staleAt,
	}, nil)
	// The stale attempt is recorded in the audit trail but nothing else moves.
	d.payments.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p *domain.Payment) error {
			require.NotEmpty(t, p.AuditTrail)
			last := p.AuditTrail[len(p.AuditTrail)-1]
			assert.Equal(t, "stale_update_rejected", last.Reason)
			assert.Equal(t, last.FromStatus, last.ToStatus)
			return nil
		})

	result, err := d.svc.Reconcile(ctx, ports.Selector{RemoteID: "rp_1"}, domain.PaymentStatusProcessing, "evt_late", "")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSucceeded, result.Status)
	assert.Equal(t, syncedAt, result.StatusSyncedAt)
}

func TestReconciler_Reconcile_ReplayDoesNotGrowAuditTrail(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	stored := storedPayment(domain.PaymentStatusProcessing, "rp_1", time.Now().UTC().Add(-time.Hour))

	d.payments.EXPECT().GetByRemoteID(ctx, "rp_1").Return(stored, nil).Times(2)
	d.gateway.EXPECT().GetPaymentByID(ctx, "rp_1").Return(nil, nil).Times(2)
	d.payments.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(2)
	d.quotes.EXPECT().ApplyPaymentPatch(ctx, gomock.Any()).Return(nil).Times(2)

	first, err := d.svc.ConfirmByRemoteID(ctx, "rp_1", "evt_1")
	require.NoError(t, err)
	require.Len(t, first.AuditTrail, 1)

	second, err := d.svc.ConfirmByRemoteID(ctx, "rp_1", "evt_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSucceeded, second.Status)
	assert.Len(t, second.AuditTrail, 1)
}

func TestReconciler_Reconcile_LocalFallbackAfterRemoteMiss(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	stored := storedPayment(domain.PaymentStatusPending, "", time.Now().UTC().Add(-time.Minute))

	// First local lookup misses (read-replica lag), remote lookup misses,
	// fallback local lookup hits.
	gomock.InOrder(
		d.payments.EXPECT().GetByID(ctx, stored.ID).Return(nil, nil),
		d.payments.EXPECT().GetByRemoteID(ctx, "rp_9").Return(nil, nil),
		d.payments.EXPECT().GetByID(ctx, stored.ID).Return(stored, nil),
	)
	d.gateway.EXPECT().GetPaymentByID(ctx, "rp_9").Return(nil, nil)
	d.payments.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	d.quotes.EXPECT().ApplyPaymentPatch(ctx, gomock.Any()).Return(nil)

	result, err := d.svc.Reconcile(ctx, ports.Selector{LocalID: &stored.ID, RemoteID: "rp_9"}, domain.PaymentStatusProcessing, "evt_2", "")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusProcessing, result.Status)
	require.NotNil(t, result.RemoteID)
	assert.Equal(t, "rp_9", *result.RemoteID)
}

func TestReconciler_FailByRemoteID_RequiresReason(t *testing.T) {
	d := setupReconciler(t)
	defer d.ctrl.Finish()

	_, err := d.svc.FailByRemoteID(context.Background(), "rp_1", "evt_1", "")
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "PAY_003", appErr.Code)
}

func TestReconciler_EventPublishedOnStatusChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRepository(ctrl)
	quotes := mocks.NewMockQuoteRepository(ctrl)
	gateway := mocks.NewMockGatewayClient(ctrl)
	events := mocks.NewMockEventPublisher(ctrl)
	svc := NewReconciler(payments, quotes, gateway, events, zerolog.Nop())

	ctx := context.Background()
	stored := storedPayment(domain.PaymentStatusProcessing, "rp_1", time.Now().UTC().Add(-time.Hour))

	payments.EXPECT().GetByRemoteID(ctx, "rp_1").Return(stored, nil)
	gateway.EXPECT().GetPaymentByID(ctx, "rp_1").Return(nil, nil)
	payments.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	quotes.EXPECT().ApplyPaymentPatch(ctx, gomock.Any()).Return(nil)
	events.EXPECT().PublishStatusChange(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event ports.SettlementEvent) error {
			assert.Equal(t, domain.PaymentStatusProcessing, event.OldStatus)
			assert.Equal(t, domain.PaymentStatusSucceeded, event.NewStatus)
			return nil
		})

	_, err := svc.ConfirmByRemoteID(ctx, "rp_1", "evt_1")
	require.NoError(t, err)
}
