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

// CustodyOrchestrator implements ports.CustodyService. It owns the crypto
// leg of a payment: provisioning deposits and withdrawals against a
// custodian, syncing on-chain status, and gating settlement behind the
// compliance engine once the confirmation threshold is reached.
type CustodyOrchestrator struct {
	payments   ports.PaymentRepository
	cryptoTxs  ports.CryptoTransactionRepository
	quotes     ports.QuoteRepository
	registry   ports.CustodianRegistry
	compliance ports.ComplianceEngine
	reconciler ports.Reconciler
	queue      ports.SettlementQueue
	// platform is the beneficiary identity used for travel-rule submission
	// on inbound deposits.
	platform domain.PartyIdentity
	log      zerolog.Logger
}

// NewCustodyOrchestrator creates a new CustodyOrchestrator.
func NewCustodyOrchestrator(
	payments ports.PaymentRepository,
	cryptoTxs ports.CryptoTransactionRepository,
	quotes ports.QuoteRepository,
	registry ports.CustodianRegistry,
	compliance ports.ComplianceEngine,
	reconciler ports.Reconciler,
	queue ports.SettlementQueue,
	platform domain.PartyIdentity,
	log zerolog.Logger,
) *CustodyOrchestrator {
	return &CustodyOrchestrator{
		payments:   payments,
		cryptoTxs:  cryptoTxs,
		quotes:     quotes,
		registry:   registry,
		compliance: compliance,
		reconciler: reconciler,
		queue:      queue,
		platform:   platform,
		log:        log,
	}
}

// SetupDeposit requests a deposit address from the custodian and records
// the custody sub-record with status AWAITING_FUNDS and confirmations reset
// to zero. The payment's single crypto transaction leg is created on first
// call and reused on retries, so a custodian retry after failure mutates
// the existing leg rather than opening a duplicate one.
func (s *CustodyOrchestrator) SetupDeposit(ctx context.Context, input ports.SetupDepositInput) (*ports.DepositInfo, error) {
	payment, err := s.cryptoPayment(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}

	provider, err := s.registry.Provider(input.Custodian)
	if err != nil {
		return nil, err
	}

	fiatAmount := input.FiatAmount
	if fiatAmount == 0 {
		fiatAmount = payment.Amount
	}
	addr, err := provider.CreateDepositAddress(ctx, ports.DepositRequest{
		Asset:        input.Asset,
		Network:      input.Network,
		Amount:       fiatAmount,
		Currency:     payment.Currency,
		CryptoAmount: input.CryptoAmount,
		CustomerRef:  input.CustomerRef,
	})
	if err != nil {
		return nil, err
	}

	payment.Custody = &domain.CustodyInfo{
		Custodian:             string(input.Custodian),
		Network:               addr.Network,
		Address:               addr.Address,
		AddressTag:            addr.Tag,
		OnChainStatus:         domain.OnChainStatusAwaitingFunds,
		Confirmations:         0,
		RequiredConfirmations: addr.RequiredConfirmations,
		CustomerRef:           input.CustomerRef,
		Jurisdiction:          input.Jurisdiction,
	}
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("store custody record: %w", err))
	}

	if err := s.upsertLeg(ctx, payment, domain.CryptoTransactionDeposit, input.Custodian, input.Asset, addr.Address, "", domain.OnChainStatusAwaitingFunds, 0, addr.RequiredConfirmations); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Str("custodian", string(input.Custodian)).
		Str("asset", input.Asset).
		Str("address", addr.Address).
		Msg("deposit provisioned")

	return &ports.DepositInfo{
		Address:               addr.Address,
		Network:               addr.Network,
		Tag:                   addr.Tag,
		RequiredConfirmations: addr.RequiredConfirmations,
	}, nil
}

// InitiateWithdrawal submits a withdrawal to the custodian. A fresh
// idempotency key is generated per call: each call is a new withdrawal
// intent, and deduplication on retry is the caller's responsibility.
func (s *CustodyOrchestrator) InitiateWithdrawal(ctx context.Context, input ports.WithdrawalInput) (*ports.WithdrawalInfo, error) {
	if input.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	payment, err := s.cryptoPayment(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}

	provider, err := s.registry.Provider(input.Custodian)
	if err != nil {
		return nil, err
	}

	customerRef := ""
	if payment.Custody != nil {
		customerRef = payment.Custody.CustomerRef
	}
	receipt, err := provider.InitiateWithdrawal(ctx, ports.WithdrawalRequest{
		Asset:          input.Asset,
		Amount:         input.Amount,
		ToAddress:      input.ToAddress,
		IdempotencyKey: uuid.NewString(),
		CustomerRef:    customerRef,
	})
	if err != nil {
		return nil, err
	}

	if payment.Custody == nil {
		payment.Custody = &domain.CustodyInfo{Custodian: string(input.Custodian)}
	}
	payment.Custody.OnChainStatus = receipt.Status
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("store custody record: %w", err))
	}

	if err := s.upsertLeg(ctx, payment, domain.CryptoTransactionWithdrawal, input.Custodian, input.Asset, input.ToAddress, receipt.TransactionID, receipt.Status, 0, payment.Custody.RequiredConfirmations); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Str("custodian", string(input.Custodian)).
		Str("tx_id", receipt.TransactionID).
		Str("status", string(receipt.Status)).
		Msg("withdrawal initiated")

	return &ports.WithdrawalInfo{
		TransactionID: receipt.TransactionID,
		Status:        receipt.Status,
	}, nil
}

// SyncOnChainStatus polls the custodian for the authoritative transaction
// status, persists it unconditionally, and dispatches on terminal states:
// a failed leg fails the payment immediately; a confirmed leg at or above
// the confirmation threshold triggers compliance evaluation and
// finalization. Anything else is a status refresh with no business
// transition.
func (s *CustodyOrchestrator) SyncOnChainStatus(ctx context.Context, paymentID uuid.UUID, custodian ports.CustodianName, txID string) error {
	payment, err := s.cryptoPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.Custody == nil {
		return apperror.ErrNotCryptoPayment()
	}

	provider, err := s.registry.Provider(custodian)
	if err != nil {
		return err
	}

	status, err := provider.GetTransactionStatus(ctx, txID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	payment.Custody.OnChainStatus = status.Status
	payment.Custody.Confirmations = status.Confirmations
	if status.RequiredConfirmations > 0 {
		payment.Custody.RequiredConfirmations = status.RequiredConfirmations
	}
	payment.Custody.LastCheckedAt = &now
	if err := s.payments.Update(ctx, payment); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("store onchain status: %w", err))
	}

	leg, err := s.cryptoTxs.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get crypto transaction: %w", err))
	}
	if leg != nil {
		leg.TxID = txID
		leg.Status = status.Status
		leg.Confirmations = status.Confirmations
		if status.RequiredConfirmations > 0 {
			leg.RequiredConfirmations = status.RequiredConfirmations
		}
		leg.UpdatedAt = now
		if err := s.cryptoTxs.Update(ctx, leg); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("update crypto transaction: %w", err))
		}
	}

	switch {
	case status.Status == domain.OnChainStatusFailed ||
		status.Status == domain.OnChainStatusRejected ||
		status.Status == domain.OnChainStatusCancelled:
		// Compliance never runs on a failed leg.
		_, err := s.reconciler.Reconcile(ctx, ports.Selector{LocalID: &payment.ID}, domain.PaymentStatusFailed, txID, ReasonOnChainFailed)
		return err
	case payment.RequiresCompliance():
		return s.finalize(ctx, payment, txID)
	default:
		// CONFIRMED below threshold is deliberately a no-op: confirmations
		// must reach the threshold before anything finalizes.
		s.log.Debug().
			Str("payment_id", payment.ID.String()).
			Str("status", string(status.Status)).
			Int("confirmations", status.Confirmations).
			Int("required", payment.Custody.RequiredConfirmations).
			Msg("onchain status refreshed")
		return nil
	}
}

// EnqueueSync schedules an on-chain sync on the settlement queue so that at
// most one sync runs at a time. Errors inside the job are logged by the
// queue, not propagated.
func (s *CustodyOrchestrator) EnqueueSync(paymentID uuid.UUID, custodian ports.CustodianName, txID string) error {
	return s.queue.Enqueue(ports.Job{
		Name: "onchain-sync:" + paymentID.String(),
		Run: func(ctx context.Context) error {
			return s.SyncOnChainStatus(ctx, paymentID, custodian, txID)
		},
	})
}

// ResolveHold finishes a flagged payment after manual review, transitioning
// it to succeeded or failed.
func (s *CustodyOrchestrator) ResolveHold(ctx context.Context, paymentID uuid.UUID, approve bool, reviewer string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get payment: %w", err))
	}
	if payment == nil {
		return nil, apperror.ErrNotFound("payment")
	}
	if payment.Status != domain.PaymentStatusOnHold {
		return nil, apperror.ErrNotOnHold()
	}

	if approve {
		payment.Compliance.Status = domain.ComplianceStatusApproved
		if err := s.payments.Update(ctx, payment); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("update compliance: %w", err))
		}
		return s.reconciler.Reconcile(ctx, ports.Selector{LocalID: &payment.ID}, domain.PaymentStatusSucceeded, reviewer, ReasonManualApproved)
	}

	payment.Compliance.Status = domain.ComplianceStatusRejected
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update compliance: %w", err))
	}
	return s.reconciler.Reconcile(ctx, ports.Selector{LocalID: &payment.ID}, domain.PaymentStatusFailed, reviewer, ReasonManualRejected)
}

// finalize runs the compliance engine exactly once per finalization attempt
// and routes the outcome: rejected fails the payment, flagged parks it
// on_hold for manual review, approved settles it.
func (s *CustodyOrchestrator) finalize(ctx context.Context, payment *domain.Payment, providerRef string) error {
	leg, err := s.cryptoTxs.GetByPaymentID(ctx, payment.ID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get crypto transaction: %w", err))
	}
	asset := ""
	if leg != nil {
		asset = leg.Asset
	}

	result := s.compliance.Evaluate(ports.ComplianceInput{
		FiatAmount: payment.Amount / 100, // minor units to fiat units
		Asset:      asset,
		Originator: domain.PartyIdentity{
			Name:      payment.Custody.CustomerRef,
			AccountID: payment.UserID.String(),
		},
		Beneficiary:  s.platform,
		Address:      payment.Custody.Address,
		Jurisdiction: payment.Custody.Jurisdiction,
	})

	// Latest evaluation wins; compliance fields are overwritten, never
	// appended.
	payment.Compliance = result
	if err := s.payments.Update(ctx, payment); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("store compliance result: %w", err))
	}

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Str("compliance", string(result.Status)).
		Int("aml_score", result.AMLScore).
		Strs("flags", result.Flags).
		Msg("compliance evaluated")

	switch result.Status {
	case domain.ComplianceStatusRejected:
		_, err := s.reconciler.Reconcile(ctx, ports.Selector{LocalID: &payment.ID}, domain.PaymentStatusFailed, providerRef, ReasonAMLRejected)
		return err
	case domain.ComplianceStatusFlagged:
		return s.hold(ctx, payment, providerRef)
	default:
		_, err := s.reconciler.Reconcile(ctx, ports.Selector{LocalID: &payment.ID}, domain.PaymentStatusSucceeded, providerRef, "")
		return err
	}
}

// hold parks a flagged payment in the transient on_hold state. The quote
// stays pending until a human resolves the hold.
func (s *CustodyOrchestrator) hold(ctx context.Context, payment *domain.Payment, providerRef string) error {
	oldStatus := payment.Status
	now := time.Now().UTC()
	payment.Status = domain.PaymentStatusOnHold
	payment.StatusSyncedAt = now
	payment.AppendAudit(domain.AuditEntry{
		At:          now,
		FromStatus:  oldStatus,
		ToStatus:    domain.PaymentStatusOnHold,
		ProviderRef: providerRef,
		Reason:      "compliance_flagged",
	})
	if err := s.payments.Update(ctx, payment); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("hold payment: %w", err))
	}
	if err := s.quotes.ApplyPaymentPatch(ctx, domain.QuotePatchFor(payment.QuoteID, payment.Status, now)); err != nil {
		s.log.Error().Err(err).
			Str("payment_id", payment.ID.String()).
			Msg("quote propagation failed for held payment")
	}
	s.log.Warn().
		Str("payment_id", payment.ID.String()).
		Int("aml_score", payment.Compliance.AMLScore).
		Msg("payment held for manual compliance review")
	return nil
}

// cryptoPayment loads a payment and verifies it uses the crypto method.
func (s *CustodyOrchestrator) cryptoPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get payment: %w", err))
	}
	if payment == nil {
		return nil, apperror.ErrNotFound("payment")
	}
	if payment.Method != domain.PaymentMethodCrypto {
		return nil, apperror.ErrNotCryptoPayment()
	}
	return payment, nil
}

// upsertLeg creates the payment's single crypto transaction on first use
// and mutates it in place on subsequent calls.
func (s *CustodyOrchestrator) upsertLeg(
	ctx context.Context,
	payment *domain.Payment,
	txType domain.CryptoTransactionType,
	custodian ports.CustodianName,
	asset, address, txID string,
	status domain.OnChainStatus,
	confirmations, required int,
) error {
	now := time.Now().UTC()
	leg, err := s.cryptoTxs.GetByPaymentID(ctx, payment.ID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get crypto transaction: %w", err))
	}
	if leg == nil {
		leg = &domain.CryptoTransaction{
			ID:                    uuid.New(),
			PaymentID:             payment.ID,
			Custodian:             string(custodian),
			Type:                  txType,
			Asset:                 asset,
			Address:               address,
			TxID:                  txID,
			Status:                status,
			Confirmations:         confirmations,
			RequiredConfirmations: required,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if err := s.cryptoTxs.Create(ctx, leg); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("create crypto transaction: %w", err))
		}
		return nil
	}

	leg.Custodian = string(custodian)
	leg.Type = txType
	leg.Asset = asset
	leg.Address = address
	if txID != "" {
		leg.TxID = txID
	}
	leg.Status = status
	leg.Confirmations = confirmations
	if required > 0 {
		leg.RequiredConfirmations = required
	}
	leg.UpdatedAt = now
	if err := s.cryptoTxs.Update(ctx, leg); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update crypto transaction: %w", err))
	}
	return nil
}
