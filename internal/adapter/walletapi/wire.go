package walletapi

import (
	"shadowpay/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Wire shapes follow the network SDK's camelCase JSON.

type wireToken struct {
	TokenIndex int    `json:"tokenIndex"`
	Symbol     string `json:"symbol"`
	Address    string `json:"address"`
	Decimals   int    `json:"decimals"`
}

func (w wireToken) toDomain() domain.TokenDescriptor {
	return domain.TokenDescriptor{
		TokenIndex: w.TokenIndex,
		Symbol:     w.Symbol,
		Address:    w.Address,
		Decimals:   w.Decimals,
	}
}

func tokenToWire(t domain.TokenDescriptor) wireToken {
	return wireToken{
		TokenIndex: t.TokenIndex,
		Symbol:     t.Symbol,
		Address:    t.Address,
		Decimals:   t.Decimals,
	}
}

type wireBalance struct {
	Token  wireToken       `json:"token"`
	Amount decimal.Decimal `json:"amount"`
}

func balancesToDomain(in []wireBalance) []domain.TokenBalance {
	out := make([]domain.TokenBalance, len(in))
	for i, b := range in {
		out[i] = domain.TokenBalance{Token: b.Token.toDomain(), Amount: b.Amount}
	}
	return out
}

type wireFeeQuote struct {
	Amount     decimal.Decimal `json:"amount"`
	TokenIndex int             `json:"tokenIndex"`
}

func (w *wireFeeQuote) toDomain() *domain.FeeQuote {
	if w == nil {
		return nil
	}
	return &domain.FeeQuote{Amount: w.Amount, TokenIndex: w.TokenIndex}
}

type wireTransfer struct {
	Token    wireToken       `json:"token"`
	Amount   decimal.Decimal `json:"amount"`
	Receiver string          `json:"receiver"`
	Address  string          `json:"address"`
	Comment  string          `json:"comment,omitempty"`
}

func transferToWire(r domain.TransferRequest) wireTransfer {
	return wireTransfer{
		Token:    tokenToWire(r.Token),
		Amount:   r.Amount,
		Receiver: r.Receiver,
		Address:  r.Address,
		Comment:  r.Comment,
	}
}
