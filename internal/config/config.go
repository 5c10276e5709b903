package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Token strategies.
const (
	TokenStrategyJWT  = "jwt"
	TokenStrategyHMAC = "hmac"
)

// Payment gateways.
const (
	GatewayMock      = "mock"
	GatewayHTTP      = "http"
	GatewayBraintree = "braintree"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string        `env:"RUN_ADDRESS" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	DatabaseURI   string `env:"DATABASE_URI"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"coursemart.db"`
	SeedDemoData  bool   `env:"SEED_DEMO_DATA"`

	JWTSecret     string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	TokenStrategy string        `env:"TOKEN_STRATEGY" envDefault:"jwt"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	Payment PaymentConfig

	EnrollmentRetryInterval time.Duration `env:"ENROLLMENT_RETRY_INTERVAL" envDefault:"30s"`
	WorkerPoolSize          int           `env:"WORKER_POOL_SIZE" envDefault:"4"`
	PollBatchSize           int           `env:"POLL_BATCH_SIZE" envDefault:"32"`
}

// PaymentConfig selects and configures the payment gateway.
type PaymentConfig struct {
	Gateway     string        `env:"PAYMENT_GATEWAY" envDefault:"mock"`
	Timeout     time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"10s"`
	GatewayURL  string        `env:"PAYMENT_GATEWAY_URL"`
	SuccessRate float64       `env:"MOCK_PAYMENT_SUCCESS_RATE" envDefault:"0.9"`
	MockLatency time.Duration `env:"MOCK_PAYMENT_LATENCY" envDefault:"2s"`

	Braintree BraintreeConfig `envPrefix:"BRAINTREE_"`
}

// BraintreeConfig holds merchant credentials.
type BraintreeConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"sandbox"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

const (
	defaultShutdownTimeout         = 10 * time.Second
	defaultTokenTTL                = 7 * 24 * time.Hour
	defaultPaymentTimeout          = 10 * time.Second
	defaultEnrollmentRetryInterval = 30 * time.Second
	defaultWorkerPoolSize          = 4
	defaultPollBatchSize           = 32
	defaultEnvFile                 = ".env"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	return load(os.Args[1:], environ())
}

func environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

func load(args []string, environment map[string]string) (*Config, error) {
	if err := mergeEnvFile(environment); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	fset := flag.NewFlagSet("coursemart", flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		paymentTimeoutStr  = cfg.Payment.Timeout.String()
		retryIntervalStr   = cfg.EnrollmentRetryInterval.String()
	)

	fset.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fset.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fset.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "Storage driver: memory, postgres or sqlite")
	fset.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "SQLite database file")
	fset.BoolVar(&cfg.SeedDemoData, "seed", cfg.SeedDemoData, "Seed demo users and courses")
	fset.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fset.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fset.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Token strategy: jwt or hmac")
	fset.StringVar(&cfg.Payment.Gateway, "gateway", cfg.Payment.Gateway, "Payment gateway: mock, http or braintree")
	fset.StringVar(&cfg.Payment.GatewayURL, "gateway-url", cfg.Payment.GatewayURL, "HTTP payment gateway base URL")
	fset.StringVar(&paymentTimeoutStr, "payment-timeout", paymentTimeoutStr, "Payment gateway call timeout")
	fset.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent enrollment workers")
	fset.StringVar(&retryIntervalStr, "retry-interval", retryIntervalStr, "Interval between enrollment reconciliation passes")
	fset.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fset.IntVar(&cfg.PollBatchSize, "poll-batch", cfg.PollBatchSize, "Maximum orders per reconciliation batch")

	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.Payment.Timeout, err = time.ParseDuration(paymentTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid payment timeout: %w", err)
	}

	if cfg.EnrollmentRetryInterval, err = time.ParseDuration(retryIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid retry interval: %w", err)
	}

	if secretFile := environment["JWT_SECRET_FILE"]; secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	seedSet := environment["SEED_DEMO_DATA"] != ""
	fset.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	if !seedSet && cfg.StorageDriver == StorageMemory {
		cfg.SeedDemoData = true
	}

	normalize(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeEnvFile adds values from ENV_FILE (default .env) that the process environment lacks.
func mergeEnvFile(environment map[string]string) error {
	path := environment["ENV_FILE"]
	if path == "" {
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	for k, v := range values {
		if _, ok := environment[k]; !ok {
			environment[k] = v
		}
	}
	return nil
}

func normalize(cfg *Config) {
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.TokenStrategy = strings.ToLower(strings.TrimSpace(cfg.TokenStrategy))
	cfg.Payment.Gateway = strings.ToLower(strings.TrimSpace(cfg.Payment.Gateway))

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.PollBatchSize <= 0 {
		cfg.PollBatchSize = defaultPollBatchSize
	}

	if cfg.EnrollmentRetryInterval <= 0 {
		cfg.EnrollmentRetryInterval = defaultEnrollmentRetryInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.Payment.Timeout <= 0 {
		cfg.Payment.Timeout = defaultPaymentTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
}

func validate(cfg *Config) error {
	switch cfg.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURI == "" {
			return fmt.Errorf("database URI must be provided for postgres storage")
		}
	case StorageSQLite:
		if cfg.SQLitePath == "" {
			return fmt.Errorf("sqlite path must be provided for sqlite storage")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	switch cfg.TokenStrategy {
	case TokenStrategyJWT, TokenStrategyHMAC:
	default:
		return fmt.Errorf("unknown token strategy %q", cfg.TokenStrategy)
	}

	if cfg.JWTSecret == "" {
		return fmt.Errorf("jwt secret must not be empty")
	}

	switch cfg.Payment.Gateway {
	case GatewayMock:
		if cfg.Payment.SuccessRate < 0 || cfg.Payment.SuccessRate > 1 {
			return fmt.Errorf("mock payment success rate must be within [0, 1]")
		}
	case GatewayHTTP:
		if cfg.Payment.GatewayURL == "" {
			return fmt.Errorf("payment gateway URL must be provided for http gateway")
		}
	case GatewayBraintree:
		bt := cfg.Payment.Braintree
		if bt.MerchantID == "" || bt.PublicKey == "" || bt.PrivateKey == "" {
			return fmt.Errorf("braintree credentials must be provided")
		}
	default:
		return fmt.Errorf("unknown payment gateway %q", cfg.Payment.Gateway)
	}

	return nil
}
