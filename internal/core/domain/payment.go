package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Token is the symbol of an asset a payment can be requested in.
type Token string

const (
	TokenETH  Token = "ETH"
	TokenUSDC Token = "USDC"
)

// ParseToken returns the Token for a symbol accepted on payment requests.
func ParseToken(symbol string) (Token, bool) {
	switch Token(strings.ToUpper(strings.TrimSpace(symbol))) {
	case TokenETH:
		return TokenETH, true
	case TokenUSDC:
		return TokenUSDC, true
	}
	return "", false
}

// PaymentStatus represents the lifecycle state of a payment request.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusExpired PaymentStatus = "expired"
)

// ParsePaymentStatus validates a status string.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusExpired:
		return PaymentStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether s may move to next.
// Only pending -> paid and pending -> expired are allowed.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s != PaymentStatusPending {
		return false
	}
	return next == PaymentStatusPaid || next == PaymentStatusExpired
}

// Payment is a merchant-created request for a fixed amount of a token.
type Payment struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"` // Immutable after creation
	Token         Token           `json:"token"`
	Comment       string          `json:"comment,omitempty"`
	Receiver      string          `json:"receiver"`
	Status        PaymentStatus   `json:"status"`
	SenderAddress *string         `json:"sender_address,omitempty"` // Set together with TxHash on pending -> paid
	TxHash        *string         `json:"tx_hash,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsTerminal returns true once the payment can no longer change.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusPaid || p.Status == PaymentStatusExpired
}

// IsPaid returns true if the payment has been settled.
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// Terms returns the values a regenerated payment inherits.
func (p *Payment) Terms() PaymentTerms {
	return PaymentTerms{
		Amount:   p.Amount,
		Token:    p.Token,
		Comment:  p.Comment,
		Receiver: p.Receiver,
	}
}

// PaymentTerms are the merchant-supplied fields of a payment request.
type PaymentTerms struct {
	Amount   decimal.Decimal `json:"amount"`
	Token    Token           `json:"token"`
	Comment  string          `json:"comment,omitempty"`
	Receiver string          `json:"receiver"`
}

// NewPaymentID returns a url-safe payment slug.
func NewPaymentID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// PayPath is the routable path a payer opens for a payment.
func PayPath(id string) string {
	return "/pay/" + id
}

// PayLink joins the public base URL and the pay path.
func PayLink(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + PayPath(id)
}

// StatusUpdate describes a requested status change.
type StatusUpdate struct {
	Status        PaymentStatus
	SenderAddress string
	TxHash        string
}
