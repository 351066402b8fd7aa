package ports

//go:generate mockgen -source=wallet.go -destination=mocks/wallet_mock.go -package=mocks

import (
	"context"

	"shadowpay/internal/core/domain"

	"github.com/shopspring/decimal"
)

// WalletConnector opens sessions against the payment network wallet SDK.
type WalletConnector interface {
	Login(ctx context.Context, creds WalletCredentials) (WalletClient, error)
}

// WalletCredentials optionally carries a key to import instead of a fresh login.
type WalletCredentials struct {
	PrivateKey string
}

// WalletClient is one logged in wallet SDK session.
type WalletClient interface {
	Address() string
	Tokens(ctx context.Context) ([]domain.TokenDescriptor, error)
	Balances(ctx context.Context) ([]domain.TokenBalance, error)
	TransferFee(ctx context.Context) (*domain.TransferFee, error)
	Broadcast(ctx context.Context, requests []domain.TransferRequest, isWithdrawal bool) (*domain.BroadcastResult, error)
	PrivateKey(ctx context.Context) (string, error)
	SignMessage(ctx context.Context, message string) (*domain.SignedMessage, error)
	VerifySignature(ctx context.Context, signed domain.SignedMessage) (bool, error)
	Logout(ctx context.Context) error
}

// WalletResolver looks up a live wallet session by id.
type WalletResolver interface {
	Client(sessionID string) (WalletClient, error)
}

// MockWalletService is the remote boundary behind the server mock wallet profile.
type MockWalletService interface {
	CreateWallet(ctx context.Context) (*RemoteWallet, error)
	WalletInfo(ctx context.Context, privateKey string) (*RemoteWallet, error)
	Balances(ctx context.Context, privateKey string) ([]domain.TokenBalance, error)
	Send(ctx context.Context, req RemoteSendRequest) (*RemoteTransfer, error)
}

// RemoteWallet identifies a wallet held by the mock wallet service.
type RemoteWallet struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey,omitempty"`
}

// RemoteSendRequest is a transfer request for the mock wallet service.
type RemoteSendRequest struct {
	PrivateKey       string          `json:"privateKey"`
	RecipientAddress string          `json:"recipientAddress"`
	Amount           decimal.Decimal `json:"amount"`
	TokenAddress     string          `json:"tokenAddress,omitempty"`
}

// RemoteTransfer is the result of a remote send.
type RemoteTransfer struct {
	TxHash string `json:"txHash"`
}
