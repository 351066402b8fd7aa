package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type durationRange struct {
	Min, Max time.Duration
}

type balanceRange struct {
	Min, Max float64
}

// mockProfileSpec parametrises the simulator for one profile.
type mockProfileSpec struct {
	Balances        map[domain.Token]balanceRange
	DefaultToken    domain.Token
	ConnectDelay    durationRange
	DisconnectDelay durationRange
	SendDelay       durationRange
	ConfirmDelay    durationRange
	Remote          bool
}

var mockProfiles = map[domain.MockProfile]mockProfileSpec{
	domain.MockProfileGeneric: {
		Balances:        map[domain.Token]balanceRange{domain.TokenETH: {1, 11}},
		DefaultToken:    domain.TokenETH,
		ConnectDelay:    durationRange{1500 * time.Millisecond, 2500 * time.Millisecond},
		DisconnectDelay: durationRange{500 * time.Millisecond, 500 * time.Millisecond},
		SendDelay:       durationRange{2 * time.Second, 4 * time.Second},
		ConfirmDelay:    durationRange{5 * time.Second, 15 * time.Second},
	},
	domain.MockProfileSimple: {
		Balances: map[domain.Token]balanceRange{
			domain.TokenETH:  {1, 6},
			domain.TokenUSDC: {100, 1100},
		},
		DefaultToken: domain.TokenETH,
		ConnectDelay: durationRange{1500 * time.Millisecond, 1500 * time.Millisecond},
		SendDelay:    durationRange{2 * time.Second, 2 * time.Second},
		ConfirmDelay: durationRange{5 * time.Second, 15 * time.Second},
	},
	domain.MockProfileServer: {
		DefaultToken: domain.TokenETH,
		Remote:       true,
	},
}

// MockOptions tunes the mock wallet simulator.
type MockOptions struct {
	FailureRate float64
	// DelayScale multiplies every simulated delay. Zero disables them.
	DelayScale float64
}

// MockSendRequest is a simulated transfer.
type MockSendRequest struct {
	Recipient string
	Amount    decimal.Decimal
	Token     domain.Token
	Comment   string
	ClientIP  string
}

// serverWalletRecord is all the server profile keeps locally.
type serverWalletRecord struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
}

// MockWalletService simulates wallets for demos and tests. Records live in
// a KV store namespaced by profile and device id. Every mutation re-reads
// the stored record first; concurrent writers are last-write-wins.
type MockWalletService struct {
	store  ports.KVStore
	remote ports.MockWalletService
	audit  ports.AuditService
	opts   MockOptions
	log    zerolog.Logger

	rng   func() float64
	sleep func(ctx context.Context, d time.Duration) error

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewMockWalletService creates the simulator. remote may be nil, in which
// case the server profile is unavailable.
func NewMockWalletService(
	store ports.KVStore,
	remote ports.MockWalletService,
	audit ports.AuditService,
	opts MockOptions,
	log zerolog.Logger,
) *MockWalletService {
	return &MockWalletService{
		store:  store,
		remote: remote,
		audit:  auditOrNop(audit),
		opts:   opts,
		log:    log,
		rng:    rand.Float64,
		sleep:  sleepCtx,
		stop:   make(chan struct{}),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *MockWalletService) delay(r durationRange) time.Duration {
	d := r.Min
	if r.Max > r.Min {
		d += time.Duration(s.rng() * float64(r.Max-r.Min))
	}
	return time.Duration(float64(d) * s.opts.DelayScale)
}

func (s *MockWalletService) lookupProfile(profile domain.MockProfile) (mockProfileSpec, error) {
	ps, ok := mockProfiles[profile]
	if !ok {
		return mockProfileSpec{}, apperror.Validation(fmt.Sprintf("Unknown mock wallet profile: %s", profile))
	}
	if ps.Remote && s.remote == nil {
		return mockProfileSpec{}, apperror.ErrUnsupportedOperation("server wallet")
	}
	return ps, nil
}

func walletKey(profile domain.MockProfile, deviceID string) string {
	return fmt.Sprintf("mockwallet:%s:%s:wallet", profile, deviceID)
}

func historyKey(profile domain.MockProfile, deviceID string) string {
	return fmt.Sprintf("mockwallet:%s:%s:transactions", profile, deviceID)
}

// Connect lazily creates the wallet record and marks it connected. For the
// server profile a remote wallet is created on first connect.
func (s *MockWalletService) Connect(ctx context.Context, profile domain.MockProfile, deviceID string) (*domain.MockWallet, error) {
	ps, err := s.lookupProfile(profile)
	if err != nil {
		return nil, err
	}
	if ps.Remote {
		return s.connectRemote(ctx, profile, deviceID)
	}

	if err := s.sleep(ctx, s.delay(ps.ConnectDelay)); err != nil {
		return nil, err
	}

	w, err := s.loadWallet(ctx, profile, deviceID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = s.newWallet(ps)
		s.log.Info().Str("profile", string(profile)).Str("address", w.Address).Msg("mock wallet created")
	}
	w.IsConnected = true
	if err := s.saveWallet(ctx, profile, deviceID, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *MockWalletService) newWallet(ps mockProfileSpec) *domain.MockWallet {
	w := &domain.MockWallet{
		Address:    domain.GenerateMockAddress(),
		PrivateKey: domain.GenerateMockPrivateKey(),
		Balances:   make(map[domain.Token]decimal.Decimal, len(ps.Balances)),
	}
	for token, r := range ps.Balances {
		v := r.Min + s.rng()*(r.Max-r.Min)
		w.Balances[token] = decimal.NewFromFloat(v).Round(6)
	}
	return w
}

// Import attaches an existing remote wallet by private key (server profile only).
func (s *MockWalletService) Import(ctx context.Context, profile domain.MockProfile, deviceID, privateKey string) (*domain.MockWallet, error) {
	ps, err := s.lookupProfile(profile)
	if err != nil {
		return nil, err
	}
	if !ps.Remote {
		return nil, apperror.ErrUnsupportedOperation("import")
	}
	if privateKey == "" {
		return nil, apperror.Validation("privateKey is required")
	}

	info, err := s.remote.WalletInfo(ctx, privateKey)
	if err != nil {
		return nil, apperror.ErrWalletGateway(fmt.Errorf("import wallet: %w", err))
	}
	rec := serverWalletRecord{Address: info.Address, PrivateKey: privateKey}
	if err := s.saveJSON(ctx, walletKey(profile, deviceID), rec); err != nil {
		return nil, err
	}
	return s.remoteWallet(ctx, rec)
}

// Disconnect marks the wallet disconnected. The server profile forgets the
// stored key instead.
func (s *MockWalletService) Disconnect(ctx context.Context, profile domain.MockProfile, deviceID string) error {
	ps, err := s.lookupProfile(profile)
	if err != nil {
		return err
	}
	if ps.Remote {
		if err := s.store.Remove(ctx, walletKey(profile, deviceID)); err != nil {
			return apperror.InternalError(fmt.Errorf("remove wallet record: %w", err))
		}
		return nil
	}

	if err := s.sleep(ctx, s.delay(ps.DisconnectDelay)); err != nil {
		return err
	}
	w, err := s.loadWallet(ctx, profile, deviceID)
	if err != nil || w == nil {
		return err
	}
	w.IsConnected = false
	return s.saveWallet(ctx, profile, deviceID, w)
}

// SendPayment simulates a transfer. Insufficient funds and simulated
// failures leave the wallet and its history untouched.
func (s *MockWalletService) SendPayment(ctx context.Context, profile domain.MockProfile, deviceID string, req MockSendRequest) (*domain.MockTransaction, error) {
	ps, err := s.lookupProfile(profile)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	token := ps.DefaultToken
	if req.Token != "" {
		parsed, ok := domain.ParseToken(string(req.Token))
		if !ok {
			return nil, apperror.ErrInvalidToken(string(req.Token))
		}
		token = parsed
	}
	if ps.Remote {
		return s.sendRemote(ctx, profile, deviceID, token, req)
	}

	w, err := s.loadWallet(ctx, profile, deviceID)
	if err != nil {
		return nil, err
	}
	if w == nil || !w.IsConnected {
		return nil, apperror.ErrWalletNotConnected()
	}
	if w.Balance(token).LessThan(req.Amount) {
		return nil, apperror.ErrInsufficientBalance(string(token))
	}

	if err := s.sleep(ctx, s.delay(ps.SendDelay)); err != nil {
		return nil, err
	}
	if s.rng() < s.opts.FailureRate {
		s.log.Info().Str("profile", string(profile)).Msg("simulated transfer failure")
		return nil, apperror.ErrNetworkCongestion()
	}

	// The record may have changed during the delay.
	w, err = s.loadWallet(ctx, profile, deviceID)
	if err != nil {
		return nil, err
	}
	if w == nil || !w.IsConnected {
		return nil, apperror.ErrWalletNotConnected()
	}
	if !w.Debit(token, req.Amount) {
		return nil, apperror.ErrInsufficientBalance(string(token))
	}

	tx := domain.MockTransaction{
		Hash:      domain.GenerateMockTxHash(),
		From:      w.Address,
		To:        req.Recipient,
		Amount:    req.Amount,
		Token:     token,
		Timestamp: time.Now().UTC(),
		Status:    domain.MockTxStatusPending,
		Comment:   req.Comment,
	}

	history, err := s.loadHistory(ctx, profile, deviceID)
	if err != nil {
		return nil, err
	}
	if err := s.saveWallet(ctx, profile, deviceID, w); err != nil {
		return nil, err
	}
	history = append([]domain.MockTransaction{tx}, history...)
	if err := s.saveJSON(ctx, historyKey(profile, deviceID), history); err != nil {
		// Undo the debit so a failed send leaves no trace.
		w.Credit(token, req.Amount)
		if rerr := s.saveWallet(ctx, profile, deviceID, w); rerr != nil {
			s.log.Error().Err(rerr).Str("profile", string(profile)).Msg("failed to restore mock wallet balance")
		}
		return nil, err
	}

	s.scheduleConfirmation(profile, deviceID, tx.Hash, s.delay(ps.ConfirmDelay))

	s.audit.Log(ctx, newAuditEntry(domain.AuditActionMockSend, "mock_wallet", w.Address, req.ClientIP, map[string]any{
		"profile": profile,
		"hash":    tx.Hash,
		"amount":  req.Amount.String(),
		"token":   token,
	}))
	s.log.Info().Str("profile", string(profile)).Str("tx_hash", tx.Hash).Msg("mock transfer sent")
	return &tx, nil
}

func (s *MockWalletService) scheduleConfirmation(profile domain.MockProfile, deviceID, hash string, after time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTimer(after)
		defer t.Stop()
		select {
		case <-s.stop:
			return
		case <-t.C:
		}

		ctx := context.Background()
		history, err := s.loadHistory(ctx, profile, deviceID)
		if err != nil {
			s.log.Warn().Err(err).Str("tx_hash", hash).Msg("failed to load history for confirmation")
			return
		}
		for i := range history {
			if history[i].Hash == hash {
				history[i].Status = domain.MockTxStatusConfirmed
				if err := s.saveJSON(ctx, historyKey(profile, deviceID), history); err != nil {
					s.log.Warn().Err(err).Str("tx_hash", hash).Msg("failed to confirm mock transfer")
				}
				return
			}
		}
		// History was cleared in the meantime.
	}()
}

// Wallet returns the stored wallet, nil when none exists.
func (s *MockWalletService) Wallet(ctx context.Context, profile domain.MockProfile, deviceID string) (*domain.MockWallet, error) {
	ps, err := s.lookupProfile(profile)
	if err != nil {
		return nil, err
	}
	if ps.Remote {
		rec, err := s.loadServerRecord(ctx, profile, deviceID)
		if err != nil || rec == nil {
			return nil, err
		}
		return s.remoteWallet(ctx, *rec)
	}
	return s.loadWallet(ctx, profile, deviceID)
}

// RefreshBalances re-reads balances. Server wallets ask the remote service.
func (s *MockWalletService) RefreshBalances(ctx context.Context, profile domain.MockProfile, deviceID string) (*domain.MockWallet, error) {
	w, err := s.Wallet(ctx, profile, deviceID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperror.ErrWalletNotConnected()
	}
	return w, nil
}

// Transactions returns the history, newest first.
func (s *MockWalletService) Transactions(ctx context.Context, profile domain.MockProfile, deviceID string) ([]domain.MockTransaction, error) {
	if _, err := s.lookupProfile(profile); err != nil {
		return nil, err
	}
	return s.loadHistory(ctx, profile, deviceID)
}

// ClearHistory drops every history entry.
func (s *MockWalletService) ClearHistory(ctx context.Context, profile domain.MockProfile, deviceID string) error {
	if _, err := s.lookupProfile(profile); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, historyKey(profile, deviceID)); err != nil {
		return apperror.InternalError(fmt.Errorf("clear history: %w", err))
	}
	return nil
}

// AddBalance credits a local mock wallet.
func (s *MockWalletService) AddBalance(ctx context.Context, profile domain.MockProfile, deviceID string, token domain.Token, amount decimal.Decimal) (*domain.MockWallet, error) {
	ps, err := s.lookupProfile(profile)
	if err != nil {
		return nil, err
	}
	if ps.Remote {
		return nil, apperror.ErrUnsupportedOperation("add balance")
	}
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if token == "" {
		token = ps.DefaultToken
	}
	parsed, ok := domain.ParseToken(string(token))
	if !ok {
		return nil, apperror.ErrInvalidToken(string(token))
	}

	w, err := s.loadWallet(ctx, profile, deviceID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperror.ErrNotFound("Mock wallet")
	}
	w.Credit(parsed, amount)
	if err := s.saveWallet(ctx, profile, deviceID, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Shutdown stops pending confirmations.
func (s *MockWalletService) Shutdown() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	s.wg.Wait()
}

// ---- server profile ----

func (s *MockWalletService) connectRemote(ctx context.Context, profile domain.MockProfile, deviceID string) (*domain.MockWallet, error) {
	rec, err := s.loadServerRecord(ctx, profile, deviceID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		created, err := s.remote.CreateWallet(ctx)
		if err != nil {
			return nil, apperror.ErrWalletGateway(fmt.Errorf("create wallet: %w", err))
		}
		rec = &serverWalletRecord{Address: created.Address, PrivateKey: created.PrivateKey}
		if err := s.saveJSON(ctx, walletKey(profile, deviceID), rec); err != nil {
			return nil, err
		}
		s.log.Info().Str("profile", string(profile)).Str("address", rec.Address).Msg("remote wallet created")
	}
	return s.remoteWallet(ctx, *rec)
}

func (s *MockWalletService) remoteWallet(ctx context.Context, rec serverWalletRecord) (*domain.MockWallet, error) {
	balances, err := s.remote.Balances(ctx, rec.PrivateKey)
	if err != nil {
		return nil, apperror.ErrWalletGateway(fmt.Errorf("fetch balances: %w", err))
	}
	w := &domain.MockWallet{
		Address:     rec.Address,
		PrivateKey:  rec.PrivateKey,
		Balances:    make(map[domain.Token]decimal.Decimal),
		IsConnected: true,
	}
	for _, b := range balances {
		if token, ok := domain.ParseToken(b.Token.Symbol); ok {
			w.Balances[token] = b.Human()
		}
	}
	return w, nil
}

func (s *MockWalletService) sendRemote(ctx context.Context, profile domain.MockProfile, deviceID string, token domain.Token, req MockSendRequest) (*domain.MockTransaction, error) {
	rec, err := s.loadServerRecord(ctx, profile, deviceID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.ErrWalletNotConnected()
	}

	var tokenAddress string
	if balances, err := s.remote.Balances(ctx, rec.PrivateKey); err == nil {
		for _, b := range balances {
			if b.Token.Symbol == string(token) {
				tokenAddress = b.Token.Address
			}
		}
	}

	res, err := s.remote.Send(ctx, ports.RemoteSendRequest{
		PrivateKey:       rec.PrivateKey,
		RecipientAddress: req.Recipient,
		Amount:           req.Amount,
		TokenAddress:     tokenAddress,
	})
	if err != nil {
		return nil, apperror.ErrPaymentFailed(err.Error(), err)
	}

	s.audit.Log(ctx, newAuditEntry(domain.AuditActionMockSend, "mock_wallet", rec.Address, req.ClientIP, map[string]any{
		"profile": profile,
		"hash":    res.TxHash,
	}))
	return &domain.MockTransaction{
		Hash:      res.TxHash,
		From:      rec.Address,
		To:        req.Recipient,
		Amount:    req.Amount,
		Token:     token,
		Timestamp: time.Now().UTC(),
		Status:    domain.MockTxStatusPending,
		Comment:   req.Comment,
	}, nil
}

// ---- storage ----

func (s *MockWalletService) loadWallet(ctx context.Context, profile domain.MockProfile, deviceID string) (*domain.MockWallet, error) {
	var w domain.MockWallet
	found, err := s.loadJSON(ctx, walletKey(profile, deviceID), &w)
	if err != nil || !found {
		return nil, err
	}
	return &w, nil
}

func (s *MockWalletService) saveWallet(ctx context.Context, profile domain.MockProfile, deviceID string, w *domain.MockWallet) error {
	return s.saveJSON(ctx, walletKey(profile, deviceID), w)
}

func (s *MockWalletService) loadServerRecord(ctx context.Context, profile domain.MockProfile, deviceID string) (*serverWalletRecord, error) {
	var rec serverWalletRecord
	found, err := s.loadJSON(ctx, walletKey(profile, deviceID), &rec)
	if err != nil || !found {
		return nil, err
	}
	return &rec, nil
}

func (s *MockWalletService) loadHistory(ctx context.Context, profile domain.MockProfile, deviceID string) ([]domain.MockTransaction, error) {
	history := []domain.MockTransaction{}
	if _, err := s.loadJSON(ctx, historyKey(profile, deviceID), &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *MockWalletService) loadJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("read %s: %w", key, err))
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, apperror.InternalError(fmt.Errorf("decode %s: %w", key, err))
	}
	return true, nil
}

func (s *MockWalletService) saveJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("encode %s: %w", key, err))
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		return apperror.InternalError(fmt.Errorf("write %s: %w", key, err))
	}
	return nil
}
