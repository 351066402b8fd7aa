package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/shopspring/decimal"
)

// MockProfile selects a mock wallet behaviour preset.
type MockProfile string

const (
	MockProfileGeneric MockProfile = "generic"
	MockProfileSimple  MockProfile = "simple"
	MockProfileServer  MockProfile = "server"
)

// ParseMockProfile validates a profile name.
func ParseMockProfile(s string) (MockProfile, bool) {
	switch MockProfile(s) {
	case MockProfileGeneric, MockProfileSimple, MockProfileServer:
		return MockProfile(s), true
	}
	return "", false
}

// MockWallet is a simulated signing identity.
type MockWallet struct {
	Address     string                    `json:"address"`
	PrivateKey  string                    `json:"private_key"` // Display only
	Balances    map[Token]decimal.Decimal `json:"balances"`
	IsConnected bool                      `json:"is_connected"`
}

// Balance returns the balance held for token, zero when none.
func (w *MockWallet) Balance(token Token) decimal.Decimal {
	if w.Balances == nil {
		return decimal.Zero
	}
	return w.Balances[token]
}

// Credit adds amount to the token balance.
func (w *MockWallet) Credit(token Token, amount decimal.Decimal) {
	if w.Balances == nil {
		w.Balances = make(map[Token]decimal.Decimal)
	}
	w.Balances[token] = w.Balance(token).Add(amount)
}

// Debit subtracts amount and reports false without change if funds are short.
func (w *MockWallet) Debit(token Token, amount decimal.Decimal) bool {
	current := w.Balance(token)
	if current.LessThan(amount) {
		return false
	}
	w.Balances[token] = current.Sub(amount)
	return true
}

// MockTxStatus is the state of a simulated transaction.
type MockTxStatus string

const (
	MockTxStatusPending   MockTxStatus = "pending"
	MockTxStatusConfirmed MockTxStatus = "confirmed"
	MockTxStatusFailed    MockTxStatus = "failed"
)

// MockTransaction is an append-only history entry of a mock wallet.
type MockTransaction struct {
	Hash      string          `json:"hash"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Token     Token           `json:"token"`
	Timestamp time.Time       `json:"timestamp"`
	Status    MockTxStatus    `json:"status"`
	Comment   string          `json:"comment,omitempty"`
}

// GenerateMockAddress returns 0x followed by 40 hex characters.
func GenerateMockAddress() string {
	return randomHex(20)
}

// GenerateMockPrivateKey returns 0x followed by 64 hex characters.
func GenerateMockPrivateKey() string {
	return randomHex(32)
}

// GenerateMockTxHash returns 0x followed by 64 hex characters.
func GenerateMockTxHash() string {
	return randomHex(32)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return "0x" + hex.EncodeToString(b)
}
