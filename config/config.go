package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppConfig      `mapstructure:"app"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Mock     MockConfig     `mapstructure:"mock"`
	Merchant MerchantConfig `mapstructure:"merchant"`
	Kiosk    KioskConfig    `mapstructure:"kiosk"`
	Scan     ScanConfig     `mapstructure:"scan"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// StoreConfig selects the payment record backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // postgres, mongo, memory
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type MongoConfig struct {
	URI        string        `mapstructure:"uri"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// AppConfig holds values used to build links shown to merchants and payers.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	BaseURL     string `mapstructure:"base_url"`
	ExplorerURL string `mapstructure:"explorer_url"`
	Network     string `mapstructure:"network"`
}

// WalletConfig points at the wallet gateway fronting the payment network SDK.
type WalletConfig struct {
	GatewayURL  string        `mapstructure:"gateway_url"`
	Environment string        `mapstructure:"environment"` // mainnet, testnet
	Timeout     time.Duration `mapstructure:"timeout"`
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
}

// MockConfig tunes the mock wallet simulator.
type MockConfig struct {
	Storage     string        `mapstructure:"storage"` // redis, memory
	FailureRate float64       `mapstructure:"failure_rate"`
	DelayScale  float64       `mapstructure:"delay_scale"` // 0 disables simulated latency
	ServiceURL  string        `mapstructure:"service_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type MerchantConfig struct {
	CountdownTicks int           `mapstructure:"countdown_ticks"`
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	SessionIdleTTL time.Duration `mapstructure:"session_idle_ttl"`
}

type KioskConfig struct {
	MinPasswordLength int           `mapstructure:"min_password_length"`
	MaxAttempts       int           `mapstructure:"max_attempts"`
	Cooldown          time.Duration `mapstructure:"cooldown"`
}

type ScanConfig struct {
	FPS            int           `mapstructure:"fps"`
	RegionSize     int           `mapstructure:"region_size"`
	RedirectDelay  time.Duration `mapstructure:"redirect_delay"`
	SessionIdleTTL time.Duration `mapstructure:"session_idle_ttl"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SHP_ (ShadowPay).
// Nested keys use underscore: SHP_DATABASE_HOST, SHP_JWT_SECRET, etc.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "shadowpay")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "shadowpay")
	v.SetDefault("mongo.collection", "payments")
	v.SetDefault("mongo.timeout", "5s")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "12h")
	v.SetDefault("jwt.issuer", "shadowpay")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("app.name", "ShadowPay")
	v.SetDefault("app.base_url", "http://localhost:5173")
	v.SetDefault("app.explorer_url", "https://testnet-explorer.intmax.io")
	v.SetDefault("app.network", "INTMAX")
	v.SetDefault("wallet.gateway_url", "http://localhost:9090")
	v.SetDefault("wallet.environment", "mainnet")
	v.SetDefault("wallet.timeout", "60s")
	v.SetDefault("wallet.session_ttl", "12h")
	v.SetDefault("mock.storage", "redis")
	v.SetDefault("mock.failure_rate", 0.1)
	v.SetDefault("mock.delay_scale", 1.0)
	v.SetDefault("mock.service_url", "http://localhost:9090")
	v.SetDefault("mock.timeout", "30s")
	v.SetDefault("merchant.countdown_ticks", 10)
	v.SetDefault("merchant.tick_interval", "1s")
	v.SetDefault("merchant.session_idle_ttl", "24h")
	v.SetDefault("kiosk.min_password_length", 4)
	v.SetDefault("kiosk.max_attempts", 3)
	v.SetDefault("kiosk.cooldown", "30s")
	v.SetDefault("scan.fps", 10)
	v.SetDefault("scan.region_size", 250)
	v.SetDefault("scan.redirect_delay", "2s")
	v.SetDefault("scan.session_idle_ttl", "10m")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SHP_DATABASE_HOST -> database.host
	v.SetEnvPrefix("SHP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
