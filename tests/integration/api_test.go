package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shadowpay/internal/adapter/camera"
	httpHandler "shadowpay/internal/adapter/http/handler"
	"shadowpay/internal/adapter/qrcode"
	memStorage "shadowpay/internal/adapter/storage/memory"
	redisStorage "shadowpay/internal/adapter/storage/redis"
	"shadowpay/internal/adapter/walletapi"
	"shadowpay/internal/core/ports"
	"shadowpay/internal/service"
	"shadowpay/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	publicBaseURL = "https://shadowpay.test"
	receiver      = "0xreceiver0000000000000000000000000000000001"
	// externalSender pays outside the app, through some other wallet.
	externalSender = "0xsender00000000000000000000000000000000001"
)

// testApp builds the full application stack: the real router, services and
// Redis adapters on miniredis, an in-memory payment store and a fake wallet
// gateway reached over HTTP.
type testApp struct {
	server  *httptest.Server
	redis   *miniredis.Miniredis
	gateway *fakeGateway
	stop    []func()
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	log := logger.New("debug", false)
	gw := newFakeGateway()

	auditSvc := service.NewAuditService(nil, log)
	paymentSvc := service.NewPaymentService(memStorage.NewPaymentRepo(), redisStorage.NewNotifier(rdb, log), auditSvc, log)
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", time.Hour, "shadowpay-test")

	gateway := walletapi.NewGateway(gw.server.URL, "testnet", walletapi.NewHTTPClient(5*time.Second), log)
	walletSessions := service.NewWalletSessions(gateway, tokenSvc, auditSvc, time.Hour, log)

	merchantSessions := service.NewMerchantSessions(paymentSvc, service.NewArgon2HashService(), auditSvc, service.MerchantOptions{
		CountdownTicks: 2,
		TickInterval:   50 * time.Millisecond,
		BaseURL:        publicBaseURL,
		IdleTTL:        time.Hour,
		Kiosk:          service.DefaultKioskOptions(),
	}, log)
	checkoutSessions := service.NewCheckoutSessions(paymentSvc, walletSessions, time.Hour, log)

	codec := qrcode.NewCodec()
	frames := camera.NewPushProvider()
	scanSessions := service.NewScanSessions(frames, codec, service.ScanOptions{
		FPS:           50,
		RedirectDelay: 20 * time.Millisecond,
		IdleTTL:       time.Hour,
	}, log)

	mockWallets := service.NewMockWalletService(redisStorage.NewKVStore(rdb), nil, auditSvc, service.MockOptions{}, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Payments:         paymentSvc,
		QR:               codec,
		BaseURL:          publicBaseURL,
		MerchantSessions: merchantSessions,
		CheckoutSessions: checkoutSessions,
		WalletSessions:   walletSessions,
		ScanSessions:     scanSessions,
		Frames:           frames,
		MockWallets:      mockWallets,
		TokenSvc:         tokenSvc,
		RateLimitStore:   redisStorage.NewRateLimitStore(rdb),
		HealthCheckers:   []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		AuditSvc:         auditSvc,
		App:              httpHandler.AppInfo{Name: "ShadowPay", Network: "INTMAX", ExplorerURL: "https://explorer.test"},
		Mode:             gin.TestMode,
		Logger:           log,
	})

	return &testApp{
		server:  httptest.NewServer(router),
		redis:   mr,
		gateway: gw,
		stop: []func(){
			scanSessions.Shutdown,
			checkoutSessions.Shutdown,
			merchantSessions.Shutdown,
			walletSessions.Shutdown,
			mockWallets.Shutdown,
			func() { _ = rdb.Close() },
		},
	}
}

func (a *testApp) close() {
	a.server.Close()
	for _, fn := range a.stop {
		fn()
	}
	a.gateway.close()
	a.redis.Close()
}

// apiResponse mirrors both response envelopes.
type apiResponse struct {
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
	Message   string          `json:"message"`
}

type call struct {
	status int
	header http.Header
	body   apiResponse
}

func (c call) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(c.body.Data, v))
}

func (a *testApp) do(t *testing.T, method, path string, body any, headers map[string]string) call {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := call{status: resp.StatusCode, header: resp.Header}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && resp.Header.Get("Content-Type") != "image/png" {
		require.NoError(t, json.Unmarshal(raw, &out.body), string(raw))
	}
	return out
}

type paymentView struct {
	ID            string `json:"id"`
	Amount        string `json:"amount"`
	Token         string `json:"token"`
	Comment       string `json:"comment"`
	Status        string `json:"status"`
	SenderAddress string `json:"sender_address"`
	TxHash        string `json:"tx_hash"`
	PayLink       string `json:"pay_link"`
}

type checkoutView struct {
	SessionID string       `json:"session_id"`
	State     string       `json:"state"`
	TxHash    string       `json:"tx_hash"`
	Error     string       `json:"error"`
	Payment   *paymentView `json:"payment"`
}

type merchantView struct {
	SessionID string       `json:"session_id"`
	State     string       `json:"state"`
	Countdown int          `json:"countdown"`
	Error     string       `json:"error"`
	PayLink   string       `json:"pay_link"`
	Payment   *paymentView `json:"payment"`
}

func (a *testApp) createPayment(t *testing.T, amount, token, comment string) paymentView {
	t.Helper()
	res := a.do(t, http.MethodPost, "/api/v1/payments", map[string]string{
		"amount": amount, "token": token, "comment": comment, "receiver": receiver,
	}, nil)
	require.Equal(t, http.StatusCreated, res.status, res.body.Message)
	var p paymentView
	res.decode(t, &p)
	return p
}

func (a *testApp) login(t *testing.T) map[string]string {
	t.Helper()
	res := a.do(t, http.MethodPost, "/api/v1/wallet/sessions", nil, nil)
	require.Equal(t, http.StatusCreated, res.status, res.body.Message)
	var login struct {
		Token   string `json:"token"`
		Address string `json:"address"`
	}
	res.decode(t, &login)
	require.Equal(t, payerAddress, login.Address)
	return map[string]string{"Authorization": "Bearer " + login.Token}
}

func (a *testApp) openCheckout(t *testing.T, paymentID string) checkoutView {
	t.Helper()
	res := a.do(t, http.MethodPost, "/api/v1/pay/"+paymentID+"/sessions", nil, nil)
	require.Equal(t, http.StatusCreated, res.status, res.body.Message)
	var v checkoutView
	res.decode(t, &v)
	return v
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_PaymentPaidExternally(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	p := app.createPayment(t, "1.5", "USDC", "lunch")
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, "1.5", p.Amount)
	assert.Equal(t, publicBaseURL+"/pay/"+p.ID, p.PayLink)

	// The payer page is open before the payment settles elsewhere.
	open := app.openCheckout(t, p.ID)
	assert.Equal(t, "idle", open.State)
	viewPath := "/api/v1/pay/" + p.ID + "/sessions/" + open.SessionID

	res := app.do(t, http.MethodPatch, "/api/v1/payments/"+p.ID+"/status", map[string]string{
		"status": "paid", "sender_address": externalSender, "tx_hash": "0xabc",
	}, nil)
	require.Equal(t, http.StatusOK, res.status, res.body.Message)
	var paid paymentView
	res.decode(t, &paid)
	assert.Equal(t, externalSender, paid.SenderAddress)
	assert.Equal(t, "0xabc", paid.TxHash)

	// It reflects the update without any payer action.
	assert.Eventually(t, func() bool {
		r := app.do(t, http.MethodGet, viewPath, nil, nil)
		var cv checkoutView
		r.decode(t, &cv)
		return cv.State == "success" && cv.TxHash == "0xabc"
	}, 2*time.Second, 10*time.Millisecond)

	// A payer view opened afterwards shows the payment settled too.
	v := app.openCheckout(t, p.ID)
	assert.Equal(t, "success", v.State)
	assert.Equal(t, "0xabc", v.TxHash)
	require.NotNil(t, v.Payment)
	assert.Equal(t, "paid", v.Payment.Status)

	// A paid payment cannot be expired.
	res = app.do(t, http.MethodPatch, "/api/v1/payments/"+p.ID+"/status", map[string]string{"status": "expired"}, nil)
	assert.Equal(t, http.StatusConflict, res.status)
}

func TestIntegration_MerchantSeesPayerPayment(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	res := app.do(t, http.MethodPost, "/api/v1/create/sessions", nil, nil)
	require.Equal(t, http.StatusCreated, res.status)
	var m merchantView
	res.decode(t, &m)
	merchantPath := "/api/v1/create/sessions/" + m.SessionID

	res = app.do(t, http.MethodPost, merchantPath+"/submit", map[string]string{
		"amount": "1.5", "token": "USDC", "comment": "lunch", "receiver": receiver,
	}, nil)
	require.Equal(t, http.StatusOK, res.status, res.body.Message)
	res.decode(t, &m)
	require.Equal(t, "pending", m.State)
	paymentID := m.Payment.ID

	// Payer logs in and pays through the wallet gateway.
	auth := app.login(t)
	checkout := app.openCheckout(t, paymentID)
	payPath := "/api/v1/pay/" + paymentID + "/sessions/" + checkout.SessionID

	res = app.do(t, http.MethodGet, payPath+"/quote", nil, auth)
	require.Equal(t, http.StatusOK, res.status, res.body.Message)

	res = app.do(t, http.MethodPost, payPath+"/pay", nil, auth)
	require.Equal(t, http.StatusOK, res.status, res.body.Message)
	res.decode(t, &checkout)
	assert.Equal(t, "success", checkout.State)
	assert.Equal(t, "0xtreeroot", checkout.TxHash)
	assert.Equal(t, 1, app.gateway.broadcastCount())

	res = app.do(t, http.MethodGet, "/api/v1/payments/"+paymentID, nil, nil)
	var paid paymentView
	res.decode(t, &paid)
	assert.Equal(t, "paid", paid.Status)
	assert.Equal(t, payerAddress, paid.SenderAddress)
	assert.Equal(t, "0xtreeroot", paid.TxHash)

	// The merchant hears about it over Redis, counts down and issues the next request.
	require.Eventually(t, func() bool {
		res := app.do(t, http.MethodGet, merchantPath, nil, nil)
		var v merchantView
		res.decode(t, &v)
		return v.State == "pending" && v.Payment != nil && v.Payment.ID != paymentID
	}, 3*time.Second, 20*time.Millisecond)

	// Paying twice is rejected without another broadcast.
	res = app.do(t, http.MethodPost, payPath+"/pay", nil, auth)
	assert.Equal(t, http.StatusConflict, res.status)
	assert.Equal(t, "PAY_003", res.body.ErrorCode)
	assert.Equal(t, 1, app.gateway.broadcastCount())
}

func TestIntegration_PayFailureIsClassified(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	p := app.createPayment(t, "0.01", "ETH", "")
	auth := app.login(t)
	checkout := app.openCheckout(t, p.ID)
	payPath := "/api/v1/pay/" + p.ID + "/sessions/" + checkout.SessionID

	app.gateway.failNextBroadcast("tx error: Merkle proof verification failed for block 12")

	res := app.do(t, http.MethodPost, payPath+"/pay", nil, auth)
	assert.Equal(t, http.StatusBadGateway, res.status)
	assert.Equal(t, "PAY_004", res.body.ErrorCode)
	assert.Contains(t, res.body.Message, "Transaction verification failed")

	res = app.do(t, http.MethodGet, payPath, nil, nil)
	res.decode(t, &checkout)
	assert.Equal(t, "error", checkout.State)

	res = app.do(t, http.MethodPost, payPath+"/retry", nil, nil)
	require.Equal(t, http.StatusOK, res.status)
	res.decode(t, &checkout)
	assert.Equal(t, "idle", checkout.State)

	res = app.do(t, http.MethodPost, payPath+"/pay", nil, auth)
	require.Equal(t, http.StatusOK, res.status, res.body.Message)
	res.decode(t, &checkout)
	assert.Equal(t, "success", checkout.State)
}

func TestIntegration_WalletSession(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	auth := app.login(t)

	res := app.do(t, http.MethodGet, "/api/v1/wallet/me", nil, auth)
	require.Equal(t, http.StatusOK, res.status, res.body.Message)

	res = app.do(t, http.MethodGet, "/api/v1/wallet/private-key", nil, auth)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "no-store", res.header.Get("Cache-Control"))

	res = app.do(t, http.MethodPost, "/api/v1/wallet/sign", map[string]string{"message": "hello"}, auth)
	require.Equal(t, http.StatusOK, res.status)
	var signed struct {
		Message   string `json:"message"`
		Signature string `json:"signature"`
	}
	res.decode(t, &signed)

	res = app.do(t, http.MethodPost, "/api/v1/wallet/verify", signed, auth)
	require.Equal(t, http.StatusOK, res.status)
	var verified struct {
		Valid bool `json:"valid"`
	}
	res.decode(t, &verified)
	assert.True(t, verified.Valid)

	res = app.do(t, http.MethodDelete, "/api/v1/wallet/sessions", nil, auth)
	assert.Equal(t, http.StatusNoContent, res.status)

	// The token outlives the session but resolves to nothing.
	res = app.do(t, http.MethodGet, "/api/v1/wallet/me", nil, auth)
	assert.NotEqual(t, http.StatusOK, res.status)
}

func TestIntegration_RateLimitWalletLogin(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	for i := 0; i < 10; i++ {
		res := app.do(t, http.MethodPost, "/api/v1/wallet/sessions", nil, nil)
		require.Equal(t, http.StatusCreated, res.status)
		assert.NotEmpty(t, res.header.Get("X-RateLimit-Remaining"))
	}

	res := app.do(t, http.MethodPost, "/api/v1/wallet/sessions", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, res.status)
	assert.Equal(t, "RATE_001", res.body.ErrorCode)
}

func TestIntegration_PaymentQR(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	p := app.createPayment(t, "3", "ETH", "coffee")

	resp, err := http.Get(app.server.URL + "/api/v1/payments/" + p.ID + "/qr?size=128")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")))
}

func TestIntegration_MockWalletSend(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	device := map[string]string{"X-Device-ID": "device-1"}

	res := app.do(t, http.MethodPost, "/api/v1/mock-wallets/simple/connect", nil, device)
	require.Equal(t, http.StatusOK, res.status, res.body.Message)

	res = app.do(t, http.MethodPost, "/api/v1/mock-wallets/simple/send", map[string]string{
		"recipient": receiver, "amount": "0.5", "token": "ETH", "comment": "tip",
	}, device)
	require.Equal(t, http.StatusCreated, res.status, res.body.Message)

	require.Eventually(t, func() bool {
		res := app.do(t, http.MethodGet, "/api/v1/mock-wallets/simple/transactions", nil, device)
		var txs []struct {
			Status string `json:"status"`
		}
		res.decode(t, &txs)
		return len(txs) == 1 && txs[0].Status == "confirmed"
	}, 2*time.Second, 20*time.Millisecond)

	// Another device sees nothing.
	res = app.do(t, http.MethodGet, "/api/v1/mock-wallets/simple/transactions", nil, map[string]string{"X-Device-ID": "device-2"})
	require.Equal(t, http.StatusOK, res.status)
	assert.JSONEq(t, "[]", string(res.body.Data))
}
