package ports

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

import (
	"context"
	"time"

	"shadowpay/internal/core/domain"
)

// PaymentRepository defines persistence operations for payment records.
// Records are never deleted.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	// GetByID returns nil, nil when no record exists.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	// UpdateStatus applies the update only while the record is still pending.
	// It returns nil, nil when no pending record matched.
	UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate, at time.Time) (*domain.Payment, error)
	// List returns payments newest first.
	List(ctx context.Context, limit int) ([]domain.Payment, error)
}

// PaymentNotifier fans out payment updates keyed by payment id.
type PaymentNotifier interface {
	Publish(ctx context.Context, payment *domain.Payment) error
	// Subscribe invokes handler for every update published for paymentID,
	// in publish order, until the subscription is released.
	Subscribe(ctx context.Context, paymentID string, handler func(domain.Payment)) (Subscription, error)
}

// Subscription is a handle to a live notification listener.
type Subscription interface {
	Unsubscribe() error
}

// KVStore is a per-device key-value store. Writes are last-write-wins.
type KVStore interface {
	// Get returns nil, nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// AuditRepository defines persistence for audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
