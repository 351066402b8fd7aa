package domain

import (
	"github.com/shopspring/decimal"
)

// TokenDescriptor identifies an asset on the payment network.
type TokenDescriptor struct {
	TokenIndex int    `json:"token_index"`
	Symbol     string `json:"symbol"`
	Address    string `json:"address"`
	Decimals   int    `json:"decimals"`
}

// NativeTokenIndex is the index of the network's fee token (ETH).
const NativeTokenIndex = 0

// TokenBalance holds an amount in the token's base units.
type TokenBalance struct {
	Token  TokenDescriptor `json:"token"`
	Amount decimal.Decimal `json:"amount"`
}

// Human converts the base unit amount to whole tokens.
func (b TokenBalance) Human() decimal.Decimal {
	return b.Amount.Shift(int32(-b.Token.Decimals))
}

// FeeQuote is a fee amount in base units of the token at TokenIndex.
type FeeQuote struct {
	Amount     decimal.Decimal `json:"amount"`
	TokenIndex int             `json:"token_index"`
}

// TransferFee is the quote returned by the wallet network.
type TransferFee struct {
	Fee           *FeeQuote `json:"fee,omitempty"`
	CollateralFee *FeeQuote `json:"collateral_fee,omitempty"`
}

// TransferRequest is one transfer inside a broadcast. Amount is in whole tokens.
type TransferRequest struct {
	Token    TokenDescriptor `json:"token"`
	Amount   decimal.Decimal `json:"amount"`
	Receiver string          `json:"receiver"`
	Address  string          `json:"address"`
	Comment  string          `json:"comment,omitempty"`
}

// BroadcastResult is returned after the network accepts a transaction batch.
type BroadcastResult struct {
	TxTreeRoot string `json:"tx_tree_root"`
}

// SignedMessage pairs a message with its signature.
type SignedMessage struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// WalletOverview is what the dashboard shows for a logged in wallet.
type WalletOverview struct {
	Address  string            `json:"address"`
	Tokens   []TokenDescriptor `json:"tokens"`
	Balances []TokenBalance    `json:"balances"`
	Fee      *TransferFee      `json:"fee,omitempty"`
}

// FindToken returns the descriptor with the given symbol.
func FindToken(tokens []TokenDescriptor, symbol string) (TokenDescriptor, bool) {
	for _, t := range tokens {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return TokenDescriptor{}, false
}

// FindBalance returns the balance held for a token index.
func FindBalance(balances []TokenBalance, tokenIndex int) (TokenBalance, bool) {
	for _, b := range balances {
		if b.Token.TokenIndex == tokenIndex {
			return b, true
		}
	}
	return TokenBalance{}, false
}
