package integration

import (
	"context"
	"fmt"
	"sync"

	"freight-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// --- In-Memory Payment Repo ---

type inMemoryPaymentRepo struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]*domain.Payment
}

func newInMemoryPaymentRepo() *inMemoryPaymentRepo {
	return &inMemoryPaymentRepo{payments: make(map[uuid.UUID]*domain.Payment)}
}

func (r *inMemoryPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; ok {
		return fmt.Errorf("payment already exists")
	}
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *inMemoryPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPaymentRepo) GetByRemoteID(ctx context.Context, remoteID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payments {
		if p.RemoteID != nil && *p.RemoteID == remoteID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryPaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; !ok {
		return fmt.Errorf("payment not found")
	}
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

// --- In-Memory Crypto Transaction Repo ---

type inMemoryCryptoTxRepo struct {
	mu   sync.RWMutex
	legs map[uuid.UUID]*domain.CryptoTransaction // keyed by payment id
}

func newInMemoryCryptoTxRepo() *inMemoryCryptoTxRepo {
	return &inMemoryCryptoTxRepo{legs: make(map[uuid.UUID]*domain.CryptoTransaction)}
}

func (r *inMemoryCryptoTxRepo) Create(ctx context.Context, tx *domain.CryptoTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.legs[tx.PaymentID]; ok {
		return fmt.Errorf("crypto transaction already exists for payment")
	}
	cp := *tx
	r.legs[tx.PaymentID] = &cp
	return nil
}

func (r *inMemoryCryptoTxRepo) GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*domain.CryptoTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	leg, ok := r.legs[paymentID]
	if !ok {
		return nil, nil
	}
	cp := *leg
	return &cp, nil
}

func (r *inMemoryCryptoTxRepo) Update(ctx context.Context, tx *domain.CryptoTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.legs[tx.PaymentID]; !ok {
		return fmt.Errorf("crypto transaction not found")
	}
	cp := *tx
	r.legs[tx.PaymentID] = &cp
	return nil
}

// --- In-Memory Quote Repo ---

// inMemoryQuoteRepo records every patch it receives so tests can assert on
// quote propagation.
type inMemoryQuoteRepo struct {
	mu      sync.RWMutex
	patches map[uuid.UUID][]domain.QuotePatch
}

func newInMemoryQuoteRepo() *inMemoryQuoteRepo {
	return &inMemoryQuoteRepo{patches: make(map[uuid.UUID][]domain.QuotePatch)}
}

func (r *inMemoryQuoteRepo) ApplyPaymentPatch(ctx context.Context, patch domain.QuotePatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches[patch.QuoteID] = append(r.patches[patch.QuoteID], patch)
	return nil
}

// last returns the most recent patch applied to a quote, or nil.
func (r *inMemoryQuoteRepo) last(quoteID uuid.UUID) *domain.QuotePatch {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps := r.patches[quoteID]
	if len(ps) == 0 {
		return nil
	}
	cp := ps[len(ps)-1]
	return &cp
}
