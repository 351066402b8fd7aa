package service

import (
	"context"
	"fmt"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// PaymentServiceImpl implements ports.PaymentService on top of a repository
// and a notifier. It is the only writer of payment status.
type PaymentServiceImpl struct {
	repo     ports.PaymentRepository
	notifier ports.PaymentNotifier
	audit    ports.AuditService
	log      zerolog.Logger
	now      func() time.Time
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	repo ports.PaymentRepository,
	notifier ports.PaymentNotifier,
	audit ports.AuditService,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		repo:     repo,
		notifier: notifier,
		audit:    auditOrNop(audit),
		log:      log,
		now:      time.Now,
	}
}

// Create persists a new pending payment. Nothing is written when validation fails.
func (s *PaymentServiceImpl) Create(ctx context.Context, req ports.CreatePaymentRequest) (*domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	token, ok := domain.ParseToken(string(req.Token))
	if !ok {
		return nil, apperror.ErrInvalidToken(string(req.Token))
	}

	now := s.now().UTC()
	p := &domain.Payment{
		ID:        domain.NewPaymentID(),
		Amount:    req.Amount,
		Token:     token,
		Comment:   req.Comment,
		Receiver:  req.Receiver,
		Status:    domain.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperror.ErrCreateFailed(fmt.Errorf("insert payment: %w", err))
	}

	s.audit.Log(ctx, newAuditEntry(domain.AuditActionPaymentCreate, "payment", p.ID, req.ClientIP, map[string]any{
		"amount": p.Amount.String(),
		"token":  p.Token,
	}))

	s.log.Info().
		Str("payment_id", p.ID).
		Str("amount", p.Amount.String()).
		Str("token", string(p.Token)).
		Msg("payment created")

	return p, nil
}

// GetByID returns the payment or nil when it does not exist.
func (s *PaymentServiceImpl) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if id == "" {
		return nil, nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get payment %s: %w", id, err))
	}
	return p, nil
}

// UpdateStatus moves a pending payment to paid or expired and notifies subscribers.
// A paid payment is never overwritten.
func (s *PaymentServiceImpl) UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) (*domain.Payment, error) {
	switch update.Status {
	case domain.PaymentStatusPaid:
		if update.SenderAddress == "" || update.TxHash == "" {
			return nil, apperror.Validation("sender_address and tx_hash are required to mark a payment paid")
		}
	case domain.PaymentStatusExpired:
		if update.SenderAddress != "" || update.TxHash != "" {
			return nil, apperror.Validation("sender_address and tx_hash are only set when a payment is paid")
		}
	default:
		return nil, apperror.ErrInvalidTransition(string(domain.PaymentStatusPending), string(update.Status))
	}

	updated, err := s.repo.UpdateStatus(ctx, id, update, s.now().UTC())
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update payment %s: %w", id, err))
	}

	if updated == nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("get payment %s: %w", id, err))
		}
		if current == nil {
			return nil, nil
		}
		if current.IsPaid() {
			return nil, apperror.ErrAlreadyPaid()
		}
		return nil, apperror.ErrInvalidTransition(string(current.Status), string(update.Status))
	}

	if err := s.notifier.Publish(ctx, updated); err != nil {
		// The row is committed; subscribers will see it on their next read.
		s.log.Warn().Err(err).Str("payment_id", id).Msg("failed to publish payment update")
	}

	action := domain.AuditActionPaymentExpire
	details := map[string]any{}
	if updated.IsPaid() {
		action = domain.AuditActionPaymentPaid
		details["tx_hash"] = update.TxHash
		details["sender_address"] = update.SenderAddress
	}
	s.audit.Log(ctx, newAuditEntry(action, "payment", id, "", details))

	s.log.Info().
		Str("payment_id", id).
		Str("status", string(updated.Status)).
		Str("tx_hash", update.TxHash).
		Msg("payment status updated")

	return updated, nil
}

// Subscribe registers onUpdate for every update of payment id.
func (s *PaymentServiceImpl) Subscribe(ctx context.Context, id string, onUpdate func(domain.Payment)) (ports.Subscription, error) {
	sub, err := s.notifier.Subscribe(ctx, id, onUpdate)
	if err != nil {
		return nil, apperror.ErrNotifierError(fmt.Errorf("subscribe to payment %s: %w", id, err))
	}
	return sub, nil
}

// List returns payments newest first.
func (s *PaymentServiceImpl) List(ctx context.Context, limit int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	payments, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list payments: %w", err))
	}
	return payments, nil
}
