package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	minReceiverLength = 10
	weiPerEth         = 18

	msgVerificationFailed = "Transaction verification failed. This might be a temporary network issue. Please try again in a few minutes."
	msgFinalizeFailed     = "Transaction could not be finalized. Please try again or contact support if the issue persists."
	msgPaymentFailed      = "Payment failed. Please try again."
	msgNoTxTreeRoot       = "Transaction failed - no txTreeRoot received"
)

// classifyPaymentError turns a pay flow failure into the message shown to the payer.
func classifyPaymentError(err error) string {
	if err == nil {
		return msgPaymentFailed
	}
	full := err.Error()
	switch {
	case strings.Contains(full, "Merkle proof verification failed"):
		return msgVerificationFailed
	case strings.Contains(full, "Failed to finalize tx"):
		return msgFinalizeFailed
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Message != "" {
			return appErr.Message
		}
		return msgPaymentFailed
	}
	if full == "" {
		return msgPaymentFailed
	}
	return full
}

// CheckoutSessions is the registry of payer pay flows.
type CheckoutSessions struct {
	payments ports.PaymentService
	wallets  ports.WalletResolver
	log      zerolog.Logger
	reg      *registry[*CheckoutSession]
}

// NewCheckoutSessions creates an empty payer session registry.
func NewCheckoutSessions(payments ports.PaymentService, wallets ports.WalletResolver, idleTTL time.Duration, log zerolog.Logger) *CheckoutSessions {
	return &CheckoutSessions{
		payments: payments,
		wallets:  wallets,
		log:      log,
		reg:      newRegistry[*CheckoutSession](idleTTL),
	}
}

// Open loads the payment and starts a pay flow for it. A paid payment
// opens directly in the success state.
func (c *CheckoutSessions) Open(ctx context.Context, paymentID string) (*CheckoutSession, error) {
	p, err := c.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.ErrNotFound("Payment")
	}

	id := uuid.NewString()
	s := &CheckoutSession{
		id:       id,
		payments: c.payments,
		wallets:  c.wallets,
		log:      c.log.With().Str("session_id", id).Str("payment_id", p.ID).Logger(),
		payment:  p,
		state:    domain.CheckoutStateIdle,
	}
	if p.IsPaid() {
		s.state = domain.CheckoutStateSuccess
		if p.TxHash != nil {
			s.txHash = *p.TxHash
		}
	}

	sub, err := c.payments.Subscribe(ctx, p.ID, s.onPaymentUpdate)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to subscribe to payment updates")
	} else {
		s.sub = sub
	}

	c.reg.put(id, s)
	return s, nil
}

// Get returns a live session.
func (c *CheckoutSessions) Get(id string) (*CheckoutSession, error) {
	s, ok := c.reg.get(id)
	if !ok {
		return nil, apperror.ErrSessionNotFound("Checkout")
	}
	return s, nil
}

// Close tears a session down.
func (c *CheckoutSessions) Close(id string) error {
	s, ok := c.reg.remove(id)
	if !ok {
		return apperror.ErrSessionNotFound("Checkout")
	}
	s.Close()
	return nil
}

// Run expires idle sessions until ctx is done.
func (c *CheckoutSessions) Run(ctx context.Context, interval time.Duration) {
	c.reg.janitor(ctx, interval, func(n int) {
		c.log.Info().Int("count", n).Msg("expired idle checkout sessions")
	})
}

// Shutdown closes every session.
func (c *CheckoutSessions) Shutdown() {
	c.reg.closeAll()
}

// CheckoutSession drives one payer screen: idle → signing → broadcasting →
// success | error.
type CheckoutSession struct {
	id       string
	payments ports.PaymentService
	wallets  ports.WalletResolver
	log      zerolog.Logger

	mu      sync.Mutex
	payment *domain.Payment
	state   domain.CheckoutState
	txHash  string
	fee     *domain.TransferFee
	errMsg  string
	sub     ports.Subscription
	closed  bool
}

// ID returns the session id.
func (s *CheckoutSession) ID() string { return s.id }

// Quote fetches the current transfer fee for display.
func (s *CheckoutSession) Quote(ctx context.Context, walletSessionID string) (domain.CheckoutView, error) {
	client, err := s.wallets.Client(walletSessionID)
	if err != nil {
		return s.View(), err
	}
	fee, err := client.TransferFee(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to fetch transfer fee")
		return s.View(), apperror.ErrWalletGateway(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fee = fee
	return s.viewLocked(), nil
}

// Pay signs and broadcasts the transfer with the given wallet session and
// records the payment as paid.
func (s *CheckoutSession) Pay(ctx context.Context, walletSessionID string) (domain.CheckoutView, error) {
	s.mu.Lock()
	if s.closed {
		defer s.mu.Unlock()
		return s.viewLocked(), apperror.ErrSessionNotFound("Checkout")
	}
	if s.payment.IsPaid() || s.state == domain.CheckoutStateSuccess {
		defer s.mu.Unlock()
		return s.viewLocked(), apperror.ErrAlreadyPaid()
	}
	if s.state != domain.CheckoutStateIdle {
		defer s.mu.Unlock()
		return s.viewLocked(), apperror.ErrInvalidState(fmt.Sprintf("Payment is %s", s.state))
	}
	client, err := s.wallets.Client(walletSessionID)
	if err != nil {
		defer s.mu.Unlock()
		return s.viewLocked(), apperror.ErrWalletNotConnected()
	}
	payment := *s.payment
	s.state = domain.CheckoutStateSigning
	s.errMsg = ""
	s.mu.Unlock()

	txHash, err := s.execute(ctx, client, payment)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.state == domain.CheckoutStateSuccess {
			// Paid by someone else while we were working.
			return s.viewLocked(), nil
		}
		msg := classifyPaymentError(err)
		s.state = domain.CheckoutStateError
		s.errMsg = msg
		s.log.Error().Err(err).Str("message", msg).Msg("payment failed")

		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus < 500 {
			return s.viewLocked(), appErr
		}
		return s.viewLocked(), apperror.ErrPaymentFailed(msg, err)
	}

	s.state = domain.CheckoutStateSuccess
	s.txHash = txHash
	s.log.Info().Str("tx_hash", txHash).Msg("payment completed")
	return s.viewLocked(), nil
}

// execute runs the pay steps. Wallet errors are returned unwrapped so their
// text reaches classification as the SDK produced it.
func (s *CheckoutSession) execute(ctx context.Context, client ports.WalletClient, payment domain.Payment) (string, error) {
	tokens, err := client.Tokens(ctx)
	if err != nil {
		return "", err
	}
	token, ok := domain.FindToken(tokens, string(payment.Token))
	if !ok {
		return "", apperror.ErrTokenNotFound(string(payment.Token))
	}

	balances, err := client.Balances(ctx)
	if err != nil {
		return "", err
	}
	if b, ok := domain.FindBalance(balances, token.TokenIndex); ok {
		s.log.Debug().Str("balance", b.Amount.String()).Str("token", token.Symbol).Msg("payer balance")
	}

	fee, err := client.TransferFee(ctx)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.fee = fee
	s.mu.Unlock()

	eth, hasEth := domain.FindBalance(balances, domain.NativeTokenIndex)
	if hasEth && fee != nil && fee.Fee != nil && eth.Amount.LessThan(fee.Fee.Amount) {
		return "", apperror.ErrInsufficientFee(fee.Fee.Amount.Shift(-weiPerEth).String())
	}

	if len(payment.Receiver) < minReceiverLength {
		return "", apperror.ErrInvalidReceiver(payment.Receiver)
	}

	s.mu.Lock()
	s.state = domain.CheckoutStateBroadcasting
	s.mu.Unlock()

	res, err := client.Broadcast(ctx, []domain.TransferRequest{{
		Token:    token,
		Amount:   payment.Amount,
		Receiver: payment.Receiver,
		Address:  client.Address(),
		Comment:  payment.Comment,
	}}, false)
	if err != nil {
		return "", err
	}
	if res == nil || res.TxTreeRoot == "" {
		return "", errors.New(msgNoTxTreeRoot)
	}

	updated, err := s.payments.UpdateStatus(ctx, payment.ID, domain.StatusUpdate{
		Status:        domain.PaymentStatusPaid,
		SenderAddress: client.Address(),
		TxHash:        res.TxTreeRoot,
	})
	if err != nil {
		return "", err
	}
	if updated == nil {
		return "", apperror.ErrNotFound("Payment")
	}

	s.mu.Lock()
	s.payment = updated
	s.mu.Unlock()
	return res.TxTreeRoot, nil
}

// Retry returns a failed flow to idle.
func (s *CheckoutSession) Retry() (domain.CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.CheckoutStateError {
		return s.viewLocked(), apperror.ErrInvalidState("Only a failed payment can be retried")
	}
	s.state = domain.CheckoutStateIdle
	s.errMsg = ""
	return s.viewLocked(), nil
}

// View returns a snapshot of the session.
func (s *CheckoutSession) View() domain.CheckoutView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Close releases the payment subscription.
func (s *CheckoutSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			s.log.Warn().Err(err).Msg("failed to release payment subscription")
		}
		s.sub = nil
	}
}

// onPaymentUpdate reflects an update made elsewhere, e.g. an external paid marker.
func (s *CheckoutSession) onPaymentUpdate(p domain.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || p.ID != s.payment.ID {
		return
	}
	updated := p
	s.payment = &updated
	if p.IsPaid() && s.state != domain.CheckoutStateSuccess {
		s.state = domain.CheckoutStateSuccess
		s.errMsg = ""
		if p.TxHash != nil {
			s.txHash = *p.TxHash
		}
	}
}

func (s *CheckoutSession) viewLocked() domain.CheckoutView {
	p := *s.payment
	return domain.CheckoutView{
		SessionID: s.id,
		State:     s.state,
		Payment:   &p,
		TxHash:    s.txHash,
		Fee:       s.fee,
		Error:     s.errMsg,
	}
}
