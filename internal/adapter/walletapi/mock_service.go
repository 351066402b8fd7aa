package walletapi

import (
	"context"
	"net/http"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/logger"

	"github.com/rs/zerolog"
)

// MockService is the remote wallet service behind the server mock profile.
type MockService struct {
	t transport
}

// NewMockService creates a client for the service at baseURL.
func NewMockService(baseURL string, client HTTPClient, log zerolog.Logger) *MockService {
	return &MockService{
		t: newTransport(baseURL, client, logger.WithComponent(log, "mock_wallet_service")),
	}
}

type privateKeyRequest struct {
	PrivateKey string `json:"privateKey"`
}

// CreateWallet creates a fresh remote wallet.
func (s *MockService) CreateWallet(ctx context.Context) (*ports.RemoteWallet, error) {
	var out ports.RemoteWallet
	if err := s.t.call(ctx, http.MethodPost, "/api/wallet/create", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WalletInfo resolves the address of an imported key.
func (s *MockService) WalletInfo(ctx context.Context, privateKey string) (*ports.RemoteWallet, error) {
	var out ports.RemoteWallet
	if err := s.t.call(ctx, http.MethodPost, "/api/wallet/info", "", privateKeyRequest{PrivateKey: privateKey}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Balances fetches the balances of the wallet owning privateKey.
func (s *MockService) Balances(ctx context.Context, privateKey string) ([]domain.TokenBalance, error) {
	var out []wireBalance
	if err := s.t.call(ctx, http.MethodPost, "/api/wallet/balances", "", privateKeyRequest{PrivateKey: privateKey}, &out); err != nil {
		return nil, err
	}
	return balancesToDomain(out), nil
}

// Send transfers funds from the wallet owning req.PrivateKey.
func (s *MockService) Send(ctx context.Context, req ports.RemoteSendRequest) (*ports.RemoteTransfer, error) {
	var out ports.RemoteTransfer
	if err := s.t.call(ctx, http.MethodPost, "/api/wallet/send", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var _ ports.MockWalletService = (*MockService)(nil)
