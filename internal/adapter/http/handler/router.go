package handler

import (
	"shadowpay/internal/adapter/http/middleware"
	redisStore "shadowpay/internal/adapter/storage/redis"
	"shadowpay/internal/core/ports"
	"shadowpay/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	maxBodyBytes  = 1 << 20
	maxFrameBytes = 8 << 20
	framesRoute   = "/api/v1/scan/sessions/:session_id/frames"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Payments         ports.PaymentService
	QR               ports.QREncoder
	BaseURL          string
	MerchantSessions *service.MerchantSessions
	CheckoutSessions *service.CheckoutSessions
	WalletSessions   *service.WalletSessions
	ScanSessions     *service.ScanSessions
	Frames           FrameSink
	MockWallets      *service.MockWalletService // nil = mock wallets disabled
	TokenSvc         ports.TokenService
	RateLimitStore   *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers   []ports.HealthChecker
	AuditSvc         ports.AuditService // nil = audit logging disabled
	App              AppInfo
	Mode             string // gin mode, defaults to release
	Logger           zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode == "" {
		deps.Mode = gin.ReleaseMode
	}
	gin.SetMode(deps.Mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySizeFor(maxBodyBytes, map[string]int64{framesRoute: maxFrameBytes}))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")
	v1.GET("/about", About(deps.App))

	// --- Payment records ---
	paymentHandler := NewPaymentHandler(deps.Payments, deps.QR, deps.BaseURL)
	payments := v1.Group("/payments")
	{
		payments.POST("", rl("payments_create"), paymentHandler.Create)
		payments.GET("", paymentHandler.List)
		payments.GET("/:id", paymentHandler.Get)
		payments.PATCH("/:id/status", rl("payments_update"), paymentHandler.UpdateStatus)
		payments.GET("/:id/events", paymentHandler.Events)
		payments.GET("/:id/qr", paymentHandler.QR)
	}

	// --- Merchant create flow ---
	merchantHandler := NewMerchantHandler(deps.MerchantSessions)
	create := v1.Group("/create/sessions")
	{
		create.POST("", merchantHandler.Open)
		create.GET("/:session_id", merchantHandler.View)
		create.DELETE("/:session_id", merchantHandler.Close)
		create.POST("/:session_id/submit", rl("payments_create"), merchantHandler.Submit)
		create.POST("/:session_id/regenerate", rl("payments_create"), merchantHandler.Regenerate)
		create.POST("/:session_id/reset", merchantHandler.Reset)
		create.POST("/:session_id/kiosk", rl("kiosk"), merchantHandler.EnableKiosk)
		create.POST("/:session_id/kiosk/unlock", rl("kiosk"), merchantHandler.UnlockKiosk)
	}

	// --- Payer checkout flow ---
	walletAuth := middleware.WalletAuth(deps.TokenSvc)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutSessions)
	pay := v1.Group("/pay/:id/sessions")
	{
		pay.POST("", checkoutHandler.Open)
		pay.GET("/:session_id", checkoutHandler.View)
		pay.DELETE("/:session_id", checkoutHandler.Close)
		pay.GET("/:session_id/quote", walletAuth, checkoutHandler.Quote)
		pay.POST("/:session_id/pay", walletAuth, rl("pay"), checkoutHandler.Pay)
		pay.POST("/:session_id/retry", checkoutHandler.Retry)
	}

	// --- Wallet sessions ---
	walletHandler := NewWalletHandler(deps.WalletSessions)
	wallet := v1.Group("/wallet")
	{
		wallet.POST("/sessions", rl("wallet_login"), walletHandler.Login)
		wallet.DELETE("/sessions", walletAuth, walletHandler.Logout)
		wallet.GET("/me", walletAuth, walletHandler.Me)
		wallet.GET("/private-key", walletAuth, walletHandler.PrivateKey)
		wallet.POST("/sign", walletAuth, walletHandler.Sign)
		wallet.POST("/verify", walletAuth, walletHandler.Verify)
	}

	// --- QR scanner ---
	scanHandler := NewScanHandler(deps.ScanSessions, deps.Frames)
	v1.POST("/scan/classify", scanHandler.Classify)
	scan := v1.Group("/scan/sessions")
	{
		scan.POST("", scanHandler.Open)
		scan.GET("/:session_id", scanHandler.View)
		scan.DELETE("/:session_id", scanHandler.Close)
		scan.POST("/:session_id/start", scanHandler.Start)
		scan.POST("/:session_id/frames", rl("scan_frames"), scanHandler.Frame)
		scan.POST("/:session_id/camera-error", scanHandler.CameraError)
		scan.POST("/:session_id/detected", scanHandler.Detected)
		scan.POST("/:session_id/stop", scanHandler.Stop)
		scan.POST("/:session_id/reset", scanHandler.Reset)
		scan.POST("/:session_id/proceed", scanHandler.Proceed)
	}

	// --- Mock wallets ---
	if deps.MockWallets != nil {
		mockHandler := NewMockWalletHandler(deps.MockWallets)
		mock := v1.Group("/mock-wallets/:profile", rl("mock_wallets"))
		{
			mock.GET("", mockHandler.Get)
			mock.POST("/connect", mockHandler.Connect)
			mock.POST("/import", mockHandler.Import)
			mock.POST("/disconnect", mockHandler.Disconnect)
			mock.POST("/refresh", mockHandler.Refresh)
			mock.GET("/transactions", mockHandler.Transactions)
			mock.DELETE("/transactions", mockHandler.ClearHistory)
			mock.POST("/send", mockHandler.Send)
			mock.POST("/balance", mockHandler.AddBalance)
		}
	}

	return r
}
