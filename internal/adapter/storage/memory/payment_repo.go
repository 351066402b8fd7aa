package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"shadowpay/internal/core/domain"
)

// PaymentRepo is an in-process ports.PaymentRepository for development and tests.
// Callers always receive copies, never the stored value.
type PaymentRepo struct {
	mu       sync.RWMutex
	payments map[string]domain.Payment
}

// NewPaymentRepo creates an empty repository.
func NewPaymentRepo() *PaymentRepo {
	return &PaymentRepo{payments: make(map[string]domain.Payment)}
}

// Create stores a new payment. Ids must be unique.
func (r *PaymentRepo) Create(_ context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; ok {
		return fmt.Errorf("payment %s already exists", p.ID)
	}
	r.payments[p.ID] = clonePayment(*p)
	return nil
}

// GetByID returns a copy of the payment, or nil when absent.
func (r *PaymentRepo) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	out := clonePayment(p)
	return &out, nil
}

// UpdateStatus applies update only while the stored payment is pending.
func (r *PaymentRepo) UpdateStatus(_ context.Context, id string, update domain.StatusUpdate, at time.Time) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.Status != domain.PaymentStatusPending {
		return nil, nil
	}

	p.Status = update.Status
	if update.SenderAddress != "" {
		sender := update.SenderAddress
		p.SenderAddress = &sender
	}
	if update.TxHash != "" {
		hash := update.TxHash
		p.TxHash = &hash
	}
	p.UpdatedAt = at
	r.payments[id] = p

	out := clonePayment(p)
	return &out, nil
}

// List returns up to limit payments, newest first.
func (r *PaymentRepo) List(_ context.Context, limit int) ([]domain.Payment, error) {
	r.mu.RLock()
	out := make([]domain.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, clonePayment(p))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func clonePayment(p domain.Payment) domain.Payment {
	if p.SenderAddress != nil {
		s := *p.SenderAddress
		p.SenderAddress = &s
	}
	if p.TxHash != nil {
		h := *p.TxHash
		p.TxHash = &h
	}
	return p
}
