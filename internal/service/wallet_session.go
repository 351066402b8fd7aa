package service

import (
	"context"
	"fmt"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const walletLogoutTimeout = 10 * time.Second

// WalletLogin is returned after a successful wallet login.
type WalletLogin struct {
	SessionID string    `json:"session_id"`
	Address   string    `json:"address"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type walletSession struct {
	client ports.WalletClient
	log    zerolog.Logger
}

// Close logs the wallet out of the network SDK.
func (w *walletSession) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), walletLogoutTimeout)
	defer cancel()
	if err := w.client.Logout(ctx); err != nil {
		w.log.Warn().Err(err).Msg("wallet logout failed")
	}
}

// WalletSessions holds logged in wallet clients. There is no global client:
// each login creates a session handed out through a signed bearer token.
type WalletSessions struct {
	connector ports.WalletConnector
	tokens    ports.TokenService
	audit     ports.AuditService
	log       zerolog.Logger
	reg       *registry[*walletSession]
}

// NewWalletSessions creates an empty wallet session registry.
func NewWalletSessions(
	connector ports.WalletConnector,
	tokens ports.TokenService,
	audit ports.AuditService,
	ttl time.Duration,
	log zerolog.Logger,
) *WalletSessions {
	return &WalletSessions{
		connector: connector,
		tokens:    tokens,
		audit:     auditOrNop(audit),
		log:       log,
		reg:       newRegistry[*walletSession](ttl),
	}
}

// Login opens a wallet SDK session and issues a bearer token bound to it.
func (w *WalletSessions) Login(ctx context.Context, creds ports.WalletCredentials, clientIP string) (*WalletLogin, error) {
	client, err := w.connector.Login(ctx, creds)
	if err != nil {
		return nil, apperror.ErrWalletGateway(fmt.Errorf("wallet login: %w", err))
	}

	id := uuid.NewString()
	token, expiresAt, err := w.tokens.Generate(id, client.Address())
	if err != nil {
		_ = client.Logout(ctx)
		return nil, apperror.InternalError(fmt.Errorf("issue wallet token: %w", err))
	}

	w.reg.put(id, &walletSession{
		client: client,
		log:    w.log.With().Str("session_id", id).Logger(),
	})

	w.audit.Log(ctx, newAuditEntry(domain.AuditActionWalletLogin, "wallet_session", id, clientIP, map[string]any{
		"address": client.Address(),
	}))
	w.log.Info().Str("session_id", id).Str("address", client.Address()).Msg("wallet logged in")

	return &WalletLogin{
		SessionID: id,
		Address:   client.Address(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout disposes the session.
func (w *WalletSessions) Logout(ctx context.Context, sessionID, clientIP string) error {
	s, ok := w.reg.remove(sessionID)
	if !ok {
		return apperror.ErrSessionNotFound("Wallet")
	}
	s.Close()

	w.audit.Log(ctx, newAuditEntry(domain.AuditActionWalletLogout, "wallet_session", sessionID, clientIP, nil))
	w.log.Info().Str("session_id", sessionID).Msg("wallet logged out")
	return nil
}

// Client implements ports.WalletResolver.
func (w *WalletSessions) Client(sessionID string) (ports.WalletClient, error) {
	s, ok := w.reg.get(sessionID)
	if !ok {
		return nil, apperror.ErrSessionNotFound("Wallet")
	}
	return s.client, nil
}

// Overview gathers what the wallet dashboard shows. A fee quote failure
// leaves Fee empty.
func (w *WalletSessions) Overview(ctx context.Context, sessionID string) (*domain.WalletOverview, error) {
	client, err := w.Client(sessionID)
	if err != nil {
		return nil, err
	}

	tokens, err := client.Tokens(ctx)
	if err != nil {
		return nil, apperror.ErrWalletGateway(fmt.Errorf("list tokens: %w", err))
	}
	balances, err := client.Balances(ctx)
	if err != nil {
		return nil, apperror.ErrWalletGateway(fmt.Errorf("fetch balances: %w", err))
	}

	overview := &domain.WalletOverview{
		Address:  client.Address(),
		Tokens:   tokens,
		Balances: balances,
	}
	fee, err := client.TransferFee(ctx)
	if err != nil {
		w.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to fetch transfer fee")
	} else {
		overview.Fee = fee
	}
	return overview, nil
}

// PrivateKey reveals the session's private key.
func (w *WalletSessions) PrivateKey(ctx context.Context, sessionID string) (string, error) {
	client, err := w.Client(sessionID)
	if err != nil {
		return "", err
	}
	key, err := client.PrivateKey(ctx)
	if err != nil {
		return "", apperror.ErrWalletGateway(fmt.Errorf("get private key: %w", err))
	}
	return key, nil
}

// SignMessage signs message with the session's key.
func (w *WalletSessions) SignMessage(ctx context.Context, sessionID, message string) (*domain.SignedMessage, error) {
	client, err := w.Client(sessionID)
	if err != nil {
		return nil, err
	}
	signed, err := client.SignMessage(ctx, message)
	if err != nil {
		return nil, apperror.ErrWalletGateway(fmt.Errorf("sign message: %w", err))
	}
	return signed, nil
}

// VerifySignature checks a signed message against the session's key.
func (w *WalletSessions) VerifySignature(ctx context.Context, sessionID string, signed domain.SignedMessage) (bool, error) {
	client, err := w.Client(sessionID)
	if err != nil {
		return false, err
	}
	ok, err := client.VerifySignature(ctx, signed)
	if err != nil {
		return false, apperror.ErrWalletGateway(fmt.Errorf("verify signature: %w", err))
	}
	return ok, nil
}

// Run expires idle sessions until ctx is done.
func (w *WalletSessions) Run(ctx context.Context, interval time.Duration) {
	w.reg.janitor(ctx, interval, func(n int) {
		w.log.Info().Int("count", n).Msg("expired idle wallet sessions")
	})
}

// Shutdown logs every session out.
func (w *WalletSessions) Shutdown() {
	w.reg.closeAll()
}
