package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	autoGenerateFailedMsg = "Failed to generate new payment. Please try again."
	autoGenerateTimeout   = 30 * time.Second
)

// MerchantOptions tunes merchant create sessions.
type MerchantOptions struct {
	CountdownTicks int
	TickInterval   time.Duration
	BaseURL        string
	IdleTTL        time.Duration
	Kiosk          KioskOptions
}

// PaymentForm is what a merchant submits to request a payment.
type PaymentForm struct {
	Amount   decimal.Decimal
	Token    domain.Token
	Comment  string
	Receiver string
	ClientIP string
}

// MerchantSessions is the registry of merchant create flows.
type MerchantSessions struct {
	payments ports.PaymentService
	hash     ports.HashService
	audit    ports.AuditService
	opts     MerchantOptions
	log      zerolog.Logger
	reg      *registry[*MerchantSession]
}

// NewMerchantSessions creates an empty merchant session registry.
func NewMerchantSessions(
	payments ports.PaymentService,
	hash ports.HashService,
	audit ports.AuditService,
	opts MerchantOptions,
	log zerolog.Logger,
) *MerchantSessions {
	if opts.CountdownTicks <= 0 {
		opts.CountdownTicks = 10
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	return &MerchantSessions{
		payments: payments,
		hash:     hash,
		audit:    auditOrNop(audit),
		opts:     opts,
		log:      log,
		reg:      newRegistry[*MerchantSession](opts.IdleTTL),
	}
}

// Open starts a new session in the creating state.
func (m *MerchantSessions) Open() *MerchantSession {
	id := uuid.NewString()
	s := &MerchantSession{
		id:       id,
		payments: m.payments,
		audit:    m.audit,
		opts:     m.opts,
		log:      m.log.With().Str("session_id", id).Logger(),
		kiosk:    NewKioskLock(m.hash, m.opts.Kiosk),
		state:    domain.MerchantStateCreating,
		done:     make(chan struct{}),
	}
	m.reg.put(id, s)
	m.log.Debug().Str("session_id", id).Msg("merchant session opened")
	return s
}

// Get returns a live session.
func (m *MerchantSessions) Get(id string) (*MerchantSession, error) {
	s, ok := m.reg.get(id)
	if !ok {
		return nil, apperror.ErrSessionNotFound("Merchant")
	}
	return s, nil
}

// Close tears a session down and releases its subscription.
func (m *MerchantSessions) Close(id string) error {
	s, ok := m.reg.remove(id)
	if !ok {
		return apperror.ErrSessionNotFound("Merchant")
	}
	s.Close()
	return nil
}

// Run expires idle sessions until ctx is done.
func (m *MerchantSessions) Run(ctx context.Context, interval time.Duration) {
	m.reg.janitor(ctx, interval, func(n int) {
		m.log.Info().Int("count", n).Msg("expired idle merchant sessions")
	})
}

// Shutdown closes every session.
func (m *MerchantSessions) Shutdown() {
	m.reg.closeAll()
}

// MerchantSession drives one merchant screen: creating → pending → paid →
// auto-generating → pending. Every transition happens under mu. Async work
// carries the generation it was started for and is dropped when stale.
type MerchantSession struct {
	id       string
	payments ports.PaymentService
	audit    ports.AuditService
	opts     MerchantOptions
	log      zerolog.Logger
	kiosk    *KioskLock

	mu        sync.Mutex
	state     domain.MerchantState
	payment   *domain.Payment
	terms     *domain.PaymentTerms
	countdown int
	errMsg    string
	sub       ports.Subscription
	gen       uint64
	closed    bool
	done      chan struct{}
}

// ID returns the session id.
func (s *MerchantSession) ID() string { return s.id }

// Submit creates a payment from the form and starts watching it.
func (s *MerchantSession) Submit(ctx context.Context, form PaymentForm) (domain.MerchantView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenLocked(); err != nil {
		return s.viewLocked(), err
	}
	if s.kiosk.Locked() {
		return s.viewLocked(), apperror.ErrInvalidState("Kiosk mode is active")
	}
	if s.state != domain.MerchantStateCreating {
		return s.viewLocked(), apperror.ErrInvalidState("A payment request is already active")
	}
	if !form.Amount.IsPositive() {
		err := apperror.ErrInvalidAmount()
		s.errMsg = err.Message
		return s.viewLocked(), err
	}

	terms := domain.PaymentTerms{
		Amount:   form.Amount,
		Token:    form.Token,
		Comment:  form.Comment,
		Receiver: form.Receiver,
	}
	s.terms = &terms
	s.errMsg = ""

	p, err := s.payments.Create(ctx, ports.CreatePaymentRequest{
		Amount:   terms.Amount,
		Token:    terms.Token,
		Comment:  terms.Comment,
		Receiver: terms.Receiver,
		ClientIP: form.ClientIP,
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus < 500 {
			s.errMsg = appErr.Message
		} else {
			s.errMsg = apperror.ErrCreateFailed(nil).Message
		}
		return s.viewLocked(), err
	}

	s.activateLocked(ctx, p)
	return s.viewLocked(), nil
}

// Regenerate creates the next payment with the same terms right away
// instead of waiting for the countdown.
func (s *MerchantSession) Regenerate(ctx context.Context) (domain.MerchantView, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		defer s.mu.Unlock()
		return s.viewLocked(), err
	}
	if s.state != domain.MerchantStatePaid || s.terms == nil || s.payment == nil {
		defer s.mu.Unlock()
		return s.viewLocked(), apperror.ErrInvalidState("Nothing to regenerate until the payment is paid")
	}
	s.gen++
	gen := s.gen
	paidID := s.payment.ID
	terms := *s.terms
	s.state = domain.MerchantStateAutoGenerating
	s.countdown = 0
	s.mu.Unlock()

	s.autoGenerate(ctx, gen, paidID, terms)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.MerchantStateCreating && s.errMsg == autoGenerateFailedMsg {
		return s.viewLocked(), apperror.ErrCreateFailed(errors.New(autoGenerateFailedMsg))
	}
	return s.viewLocked(), nil
}

// Reset drops the active payment and returns to the form. The previous
// terms stay available to prefill it.
func (s *MerchantSession) Reset() (domain.MerchantView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenLocked(); err != nil {
		return s.viewLocked(), err
	}
	if s.kiosk.Locked() {
		return s.viewLocked(), apperror.ErrInvalidState("Kiosk mode is active")
	}
	s.releaseLocked()
	s.gen++
	s.payment = nil
	s.countdown = 0
	s.errMsg = ""
	s.state = domain.MerchantStateCreating
	return s.viewLocked(), nil
}

// EnableKiosk locks the screen behind password.
func (s *MerchantSession) EnableKiosk(ctx context.Context, password, clientIP string) (domain.MerchantView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenLocked(); err != nil {
		return s.viewLocked(), err
	}
	status, err := s.kiosk.Enable(password)
	if err != nil {
		s.errMsg = errorMessage(err)
		return s.viewLocked(), err
	}
	s.errMsg = ""
	s.audit.Log(ctx, newAuditEntry(domain.AuditActionKioskLock, "merchant_session", s.id, clientIP, nil))
	s.log.Info().Msg("kiosk mode enabled")

	v := s.viewLocked()
	v.Kiosk = status
	return v, nil
}

// UnlockKiosk exits kiosk mode when password matches.
func (s *MerchantSession) UnlockKiosk(ctx context.Context, password, clientIP string) (domain.MerchantView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpenLocked(); err != nil {
		return s.viewLocked(), err
	}
	if _, err := s.kiosk.Unlock(password); err != nil {
		s.log.Warn().Int("failed_attempts", s.kiosk.Status().Attempts).Msg("kiosk unlock rejected")
		return s.viewLocked(), err
	}
	s.audit.Log(ctx, newAuditEntry(domain.AuditActionKioskUnlock, "merchant_session", s.id, clientIP, nil))
	s.log.Info().Msg("kiosk mode disabled")
	return s.viewLocked(), nil
}

// View returns a snapshot of the session.
func (s *MerchantSession) View() domain.MerchantView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Close stops the countdown and releases the subscription. Safe to call twice.
func (s *MerchantSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	s.releaseLocked()
	close(s.done)
}

func (s *MerchantSession) checkOpenLocked() error {
	if s.closed {
		return apperror.ErrSessionNotFound("Merchant")
	}
	return nil
}

// activateLocked makes p the active payment and subscribes to its updates.
func (s *MerchantSession) activateLocked(ctx context.Context, p *domain.Payment) {
	s.releaseLocked()
	s.gen++
	s.payment = p
	s.state = domain.MerchantStatePending
	s.countdown = 0
	s.errMsg = ""

	sub, err := s.payments.Subscribe(ctx, p.ID, s.onPaymentUpdate)
	if err != nil {
		s.log.Warn().Err(err).Str("payment_id", p.ID).Msg("failed to subscribe to payment updates")
		return
	}
	s.sub = sub
}

func (s *MerchantSession) releaseLocked() {
	if s.sub == nil {
		return
	}
	if err := s.sub.Unsubscribe(); err != nil {
		s.log.Warn().Err(err).Msg("failed to release payment subscription")
	}
	s.sub = nil
}

// onPaymentUpdate applies a store notification. Updates for any payment
// other than the active one are ignored.
func (s *MerchantSession) onPaymentUpdate(p domain.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.payment == nil || s.payment.ID != p.ID {
		return
	}
	updated := p
	s.payment = &updated

	if p.Status != domain.PaymentStatusPaid || s.state != domain.MerchantStatePending {
		return
	}

	s.gen++
	s.state = domain.MerchantStatePaid
	s.countdown = s.opts.CountdownTicks
	s.log.Info().Str("payment_id", p.ID).Msg("payment received, countdown armed")
	go s.runCountdown(s.gen, p.ID)
}

func (s *MerchantSession) runCountdown(gen uint64, paidID string) {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		s.countdown--
		if s.countdown > 0 {
			s.mu.Unlock()
			continue
		}
		s.state = domain.MerchantStateAutoGenerating
		terms := *s.terms
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), autoGenerateTimeout)
		s.autoGenerate(ctx, gen, paidID, terms)
		cancel()
		return
	}
}

// autoGenerate creates the follow-up payment for paidID. The result is
// applied only if nothing changed the session in the meantime.
func (s *MerchantSession) autoGenerate(ctx context.Context, gen uint64, paidID string, terms domain.PaymentTerms) {
	p, err := s.payments.Create(ctx, ports.CreatePaymentRequest{
		Amount:   terms.Amount,
		Token:    terms.Token,
		Comment:  terms.Comment,
		Receiver: terms.Receiver,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen || s.payment == nil || s.payment.ID != paidID {
		if p != nil {
			s.log.Warn().Str("payment_id", p.ID).Msg("discarding payment generated for a stale session state")
		}
		return
	}

	if err != nil {
		s.log.Error().Err(err).Msg("auto-generation failed")
		s.releaseLocked()
		s.gen++
		s.payment = nil
		s.countdown = 0
		s.errMsg = autoGenerateFailedMsg
		s.state = domain.MerchantStateCreating
		return
	}

	s.activateLocked(ctx, p)
	s.log.Info().Str("payment_id", p.ID).Str("previous_id", paidID).Msg("payment regenerated")
}

func (s *MerchantSession) viewLocked() domain.MerchantView {
	v := domain.MerchantView{
		SessionID: s.id,
		State:     s.state,
		Countdown: s.countdown,
		Error:     s.errMsg,
		Kiosk:     s.kiosk.Status(),
	}
	if s.payment != nil {
		p := *s.payment
		v.Payment = &p
		v.PayLink = domain.PayLink(s.opts.BaseURL, p.ID)
	}
	if s.kiosk.Locked() {
		// Only the payment and the unlock affordance are exposed.
		return v
	}
	if s.terms != nil {
		t := *s.terms
		v.Terms = &t
	}
	return v
}

func errorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
