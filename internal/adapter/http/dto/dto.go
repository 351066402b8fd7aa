package dto

import (
	"strings"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/pkg/apperror"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest is the request body for creating a payment request.
// The merchant create flow submits the same shape.
type CreatePaymentRequest struct {
	Amount   string `json:"amount" binding:"required,max=64"`
	Token    string `json:"token" binding:"required,token"`
	Comment  string `json:"comment" binding:"max=280"`
	Receiver string `json:"receiver" binding:"required,max=128"`
}

// UpdateStatusRequest is the request body for PATCH /payments/:id/status.
type UpdateStatusRequest struct {
	Status        string `json:"status" binding:"required,oneof=paid expired"`
	SenderAddress string `json:"sender_address" binding:"max=128"`
	TxHash        string `json:"tx_hash" binding:"max=256"`
}

// ListPaymentsQuery holds query parameters of GET /payments.
type ListPaymentsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// PaymentResponse is a payment with its routable pay link.
type PaymentResponse struct {
	*domain.Payment
	PayLink string `json:"pay_link"`
}

// PaymentListResponse wraps the newest-first payment list.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Count int               `json:"count"`
}

// KioskPasswordRequest carries the kiosk password on enable and unlock.
type KioskPasswordRequest struct {
	Password string `json:"password" binding:"max=128"`
}

// WalletLoginRequest optionally imports a key instead of a fresh login.
type WalletLoginRequest struct {
	PrivateKey string `json:"private_key" binding:"max=256"`
}

// SignMessageRequest is the request body for signing with the session key.
type SignMessageRequest struct {
	Message string `json:"message" binding:"required,max=4096"`
}

// VerifySignatureRequest is the request body for signature verification.
type VerifySignatureRequest struct {
	Message   string `json:"message" binding:"required,max=4096"`
	Signature string `json:"signature" binding:"required,max=1024"`
}

// VerifySignatureResponse reports the verification result.
type VerifySignatureResponse struct {
	Valid bool `json:"valid"`
}

// PrivateKeyResponse reveals the session key.
type PrivateKeyResponse struct {
	PrivateKey string `json:"private_key"`
}

// SessionResponse is returned when a flow session is opened.
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// ScanTextRequest carries text decoded on the client or submitted for classification.
type ScanTextRequest struct {
	Text string `json:"text" binding:"required,max=4096"`
}

// CameraErrorRequest reports a client side camera failure.
type CameraErrorRequest struct {
	Reason string `json:"reason" binding:"max=256"`
}

// ProceedResponse is the navigation target of a scanned payment link.
type ProceedResponse struct {
	RedirectPath string `json:"redirect_path"`
}

// MockImportRequest imports an existing key into the server profile.
type MockImportRequest struct {
	PrivateKey string `json:"private_key" binding:"required,max=256"`
}

// MockSendRequest is a simulated transfer from a mock wallet.
type MockSendRequest struct {
	Recipient string `json:"recipient" binding:"required,max=128"`
	Amount    string `json:"amount" binding:"required,max=64"`
	Token     string `json:"token" binding:"omitempty,token"`
	Comment   string `json:"comment" binding:"max=280"`
}

// MockAddBalanceRequest credits a mock wallet.
type MockAddBalanceRequest struct {
	Token  string `json:"token" binding:"required,token"`
	Amount string `json:"amount" binding:"required,max=64"`
}

// MockWalletResponse pairs a wallet with its transaction history.
type MockWalletResponse struct {
	Wallet       *domain.MockWallet       `json:"wallet"`
	Transactions []domain.MockTransaction `json:"transactions,omitempty"`
}

// AboutResponse is the static information page.
type AboutResponse struct {
	Name            string   `json:"name"`
	Network         string   `json:"network"`
	ExplorerURL     string   `json:"explorer_url"`
	ExplorerPattern string   `json:"explorer_tx_pattern"`
	Tokens          []string `json:"tokens"`
	ServerTime      string   `json:"server_time"`
}

// NewAboutResponse builds the about page payload.
func NewAboutResponse(name, network, explorerURL string, now time.Time) AboutResponse {
	return AboutResponse{
		Name:            name,
		Network:         network,
		ExplorerURL:     explorerURL,
		ExplorerPattern: ExplorerTxURL(explorerURL, "{tx_hash}"),
		Tokens:          []string{string(domain.TokenETH), string(domain.TokenUSDC)},
		ServerTime:      now.UTC().Format(time.RFC3339),
	}
}

// ExplorerTxURL links a transaction on the network explorer.
func ExplorerTxURL(explorerURL, txHash string) string {
	if explorerURL == "" {
		return ""
	}
	return strings.TrimRight(explorerURL, "/") + "/tx/" + txHash
}

// ParseAmount parses a positive decimal amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, apperror.ErrInvalidAmount()
	}
	return d, nil
}
