package ports

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

import (
	"context"
	"time"

	"shadowpay/internal/core/domain"

	"github.com/shopspring/decimal"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations for wallet sessions.
type TokenService interface {
	Generate(sessionID string, address string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	SessionID string
	Address   string
}

// AuditService records audited actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// PaymentService is the payment record store used by every flow.
type PaymentService interface {
	Create(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error)
	// GetByID returns nil, nil when the payment does not exist.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	// UpdateStatus returns nil, nil when the payment does not exist.
	UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) (*domain.Payment, error)
	Subscribe(ctx context.Context, id string, onUpdate func(domain.Payment)) (Subscription, error)
	List(ctx context.Context, limit int) ([]domain.Payment, error)
}

// CreatePaymentRequest holds validated input for payment creation.
type CreatePaymentRequest struct {
	Amount   decimal.Decimal
	Token    domain.Token
	Comment  string
	Receiver string
	ClientIP string
}
