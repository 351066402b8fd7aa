package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shadowpay/config"
	"shadowpay/internal/adapter/camera"
	httpHandler "shadowpay/internal/adapter/http/handler"
	"shadowpay/internal/adapter/qrcode"
	memStorage "shadowpay/internal/adapter/storage/memory"
	mongoStorage "shadowpay/internal/adapter/storage/mongo"
	pgStorage "shadowpay/internal/adapter/storage/postgres"
	redisStorage "shadowpay/internal/adapter/storage/redis"
	"shadowpay/internal/adapter/walletapi"
	"shadowpay/internal/core/ports"
	"shadowpay/internal/service"
	"shadowpay/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	janitorInterval = time.Minute
	auditCollection = "audit_logs"
)

// storage bundles the backends selected by configuration.
type storage struct {
	payments ports.PaymentRepository
	audit    ports.AuditRepository
	checkers []ports.HealthChecker
	closers  []func()
}

func (s *storage) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	st := &storage{}

	switch cfg.Store.Driver {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, pool.Close)
		if err := pgStorage.Migrate(ctx, pool); err != nil {
			st.close()
			return nil, err
		}
		st.payments = pgStorage.NewPaymentRepo(pool)
		st.audit = pgStorage.NewAuditRepo(pool)
		st.checkers = append(st.checkers, pgStorage.NewHealthCheck(pool))

	case "mongo":
		client, err := mongoStorage.NewClient(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, func() { _ = client.Disconnect(context.Background()) })
		db := client.Database(cfg.Mongo.Database)
		coll := db.Collection(cfg.Mongo.Collection)
		if err := mongoStorage.EnsureIndexes(ctx, coll); err != nil {
			st.close()
			return nil, err
		}
		st.payments = mongoStorage.NewPaymentRepo(coll)
		st.audit = mongoStorage.NewAuditRepo(db.Collection(auditCollection))
		st.checkers = append(st.checkers, mongoStorage.NewHealthCheck(client))

	case "memory":
		log.Warn().Msg("Using in-memory payment store, records are lost on restart")
		st.payments = memStorage.NewPaymentRepo()

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return st, nil
}

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("store", cfg.Store.Driver).
		Msg("Starting ShadowPay")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Payment store
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open payment store")
	}
	defer st.close()

	// Redis backs notifications, the mock wallet KV store and rate limiting.
	// Without a host everything falls back to process memory.
	var (
		notifier       ports.PaymentNotifier
		kv             ports.KVStore
		rateLimitStore *redisStorage.RateLimitStore
	)
	if cfg.Redis.Host != "" {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		notifier = redisStorage.NewNotifier(rdb, log)
		kv = redisStorage.NewKVStore(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		st.checkers = append(st.checkers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis not configured, using in-process notifier and no rate limiting")
		memNotifier := memStorage.NewNotifier(log)
		defer memNotifier.Close()
		notifier = memNotifier
	}
	if kv == nil || cfg.Mock.Storage == "memory" {
		kv = memStorage.NewKVStore()
	}

	// Core services
	auditSvc := service.NewAuditService(st.audit, logger.WithComponent(log, "audit"))
	paymentSvc := service.NewPaymentService(st.payments, notifier, auditSvc, logger.WithComponent(log, "payments"))
	hashSvc := service.NewArgon2HashService()

	secret := cfg.JWT.Secret
	if secret == "" {
		secret = rand.Text()
		log.Warn().Msg("JWT secret not set, wallet sessions will not survive a restart")
	}
	tokenSvc := service.NewJWTTokenService(secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Wallet network
	gateway := walletapi.NewGateway(cfg.Wallet.GatewayURL, cfg.Wallet.Environment, walletapi.NewHTTPClient(cfg.Wallet.Timeout), log)
	walletSessions := service.NewWalletSessions(gateway, tokenSvc, auditSvc, cfg.Wallet.SessionTTL, logger.WithComponent(log, "wallet_session"))

	// Flow controllers
	merchantSessions := service.NewMerchantSessions(paymentSvc, hashSvc, auditSvc, service.MerchantOptions{
		CountdownTicks: cfg.Merchant.CountdownTicks,
		TickInterval:   cfg.Merchant.TickInterval,
		BaseURL:        cfg.App.BaseURL,
		IdleTTL:        cfg.Merchant.SessionIdleTTL,
		Kiosk: service.KioskOptions{
			MinPasswordLength: cfg.Kiosk.MinPasswordLength,
			MaxAttempts:       cfg.Kiosk.MaxAttempts,
			Cooldown:          cfg.Kiosk.Cooldown,
		},
	}, logger.WithComponent(log, "merchant_session"))
	checkoutSessions := service.NewCheckoutSessions(paymentSvc, walletSessions, cfg.Merchant.SessionIdleTTL, logger.WithComponent(log, "checkout_session"))

	codec := qrcode.NewCodec()
	frames := camera.NewPushProvider()
	scanSessions := service.NewScanSessions(frames, codec, service.ScanOptions{
		FPS:           cfg.Scan.FPS,
		RegionSize:    cfg.Scan.RegionSize,
		RedirectDelay: cfg.Scan.RedirectDelay,
		IdleTTL:       cfg.Scan.SessionIdleTTL,
	}, logger.WithComponent(log, "scan_session"))

	var remoteMock ports.MockWalletService
	if cfg.Mock.ServiceURL != "" {
		remoteMock = walletapi.NewMockService(cfg.Mock.ServiceURL, walletapi.NewHTTPClient(cfg.Mock.Timeout), log)
	}
	mockWallets := service.NewMockWalletService(kv, remoteMock, auditSvc, service.MockOptions{
		FailureRate: cfg.Mock.FailureRate,
		DelayScale:  cfg.Mock.DelayScale,
	}, logger.WithComponent(log, "mock_wallet"))

	// Idle session janitors
	go walletSessions.Run(ctx, janitorInterval)
	go merchantSessions.Run(ctx, janitorInterval)
	go checkoutSessions.Run(ctx, janitorInterval)
	go scanSessions.Run(ctx, janitorInterval)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Payments:         paymentSvc,
		QR:               codec,
		BaseURL:          cfg.App.BaseURL,
		MerchantSessions: merchantSessions,
		CheckoutSessions: checkoutSessions,
		WalletSessions:   walletSessions,
		ScanSessions:     scanSessions,
		Frames:           frames,
		MockWallets:      mockWallets,
		TokenSvc:         tokenSvc,
		RateLimitStore:   rateLimitStore,
		HealthCheckers:   st.checkers,
		AuditSvc:         auditSvc,
		App: httpHandler.AppInfo{
			Name:        cfg.App.Name,
			Network:     cfg.App.Network,
			ExplorerURL: cfg.App.ExplorerURL,
		},
		Mode:   cfg.Server.Mode,
		Logger: log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop janitors, then release cameras, subscriptions and SDK sessions.
	cancel()
	scanSessions.Shutdown()
	checkoutSessions.Shutdown()
	merchantSessions.Shutdown()
	walletSessions.Shutdown()
	mockWallets.Shutdown()

	log.Info().Msg("Server exited")
}
