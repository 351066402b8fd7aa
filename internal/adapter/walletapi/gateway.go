package walletapi

import (
	"context"
	"net/http"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/logger"

	"github.com/rs/zerolog"
)

// Gateway opens wallet sessions on the wallet gateway.
type Gateway struct {
	t           transport
	environment string
}

// NewGateway creates a connector for the gateway at baseURL.
func NewGateway(baseURL, environment string, client HTTPClient, log zerolog.Logger) *Gateway {
	return &Gateway{
		t:           newTransport(baseURL, client, logger.WithComponent(log, "wallet_gateway")),
		environment: environment,
	}
}

type loginRequest struct {
	Environment string `json:"environment"`
	PrivateKey  string `json:"privateKey,omitempty"`
}

type loginResponse struct {
	SessionToken string `json:"sessionToken"`
	Address      string `json:"address"`
}

// Login implements ports.WalletConnector.
func (g *Gateway) Login(ctx context.Context, creds ports.WalletCredentials) (ports.WalletClient, error) {
	var out loginResponse
	err := g.t.call(ctx, http.MethodPost, "/v1/sessions", "", loginRequest{
		Environment: g.environment,
		PrivateKey:  creds.PrivateKey,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &gatewayClient{t: g.t, token: out.SessionToken, address: out.Address}, nil
}

// gatewayClient is one gateway session.
type gatewayClient struct {
	t       transport
	token   string
	address string
}

func (c *gatewayClient) Address() string { return c.address }

func (c *gatewayClient) Tokens(ctx context.Context) ([]domain.TokenDescriptor, error) {
	var out []wireToken
	if err := c.t.call(ctx, http.MethodGet, "/v1/tokens", c.token, nil, &out); err != nil {
		return nil, err
	}
	tokens := make([]domain.TokenDescriptor, len(out))
	for i, w := range out {
		tokens[i] = w.toDomain()
	}
	return tokens, nil
}

func (c *gatewayClient) Balances(ctx context.Context) ([]domain.TokenBalance, error) {
	var out []wireBalance
	if err := c.t.call(ctx, http.MethodGet, "/v1/balances", c.token, nil, &out); err != nil {
		return nil, err
	}
	return balancesToDomain(out), nil
}

type wireFee struct {
	Fee           *wireFeeQuote `json:"fee"`
	CollateralFee *wireFeeQuote `json:"collateralFee"`
}

func (c *gatewayClient) TransferFee(ctx context.Context) (*domain.TransferFee, error) {
	var out wireFee
	if err := c.t.call(ctx, http.MethodGet, "/v1/transfer-fee", c.token, nil, &out); err != nil {
		return nil, err
	}
	return &domain.TransferFee{
		Fee:           out.Fee.toDomain(),
		CollateralFee: out.CollateralFee.toDomain(),
	}, nil
}

type broadcastRequest struct {
	TransferRequests []wireTransfer `json:"transferRequests"`
	IsWithdrawal     bool           `json:"isWithdrawal"`
}

type broadcastResponse struct {
	TxTreeRoot string `json:"txTreeRoot"`
}

func (c *gatewayClient) Broadcast(ctx context.Context, requests []domain.TransferRequest, isWithdrawal bool) (*domain.BroadcastResult, error) {
	in := broadcastRequest{
		TransferRequests: make([]wireTransfer, len(requests)),
		IsWithdrawal:     isWithdrawal,
	}
	for i, r := range requests {
		in.TransferRequests[i] = transferToWire(r)
	}

	var out broadcastResponse
	if err := c.t.call(ctx, http.MethodPost, "/v1/broadcast", c.token, in, &out); err != nil {
		return nil, err
	}
	return &domain.BroadcastResult{TxTreeRoot: out.TxTreeRoot}, nil
}

func (c *gatewayClient) PrivateKey(ctx context.Context) (string, error) {
	var out struct {
		PrivateKey string `json:"privateKey"`
	}
	if err := c.t.call(ctx, http.MethodGet, "/v1/private-key", c.token, nil, &out); err != nil {
		return "", err
	}
	return out.PrivateKey, nil
}

func (c *gatewayClient) SignMessage(ctx context.Context, message string) (*domain.SignedMessage, error) {
	var out domain.SignedMessage
	in := map[string]string{"message": message}
	if err := c.t.call(ctx, http.MethodPost, "/v1/sign", c.token, in, &out); err != nil {
		return nil, err
	}
	if out.Message == "" {
		out.Message = message
	}
	return &out, nil
}

func (c *gatewayClient) VerifySignature(ctx context.Context, signed domain.SignedMessage) (bool, error) {
	var out struct {
		Valid bool `json:"valid"`
	}
	if err := c.t.call(ctx, http.MethodPost, "/v1/verify", c.token, signed, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

func (c *gatewayClient) Logout(ctx context.Context) error {
	return c.t.call(ctx, http.MethodDelete, "/v1/sessions", c.token, nil, nil)
}

var (
	_ ports.WalletConnector = (*Gateway)(nil)
	_ ports.WalletClient    = (*gatewayClient)(nil)
)
