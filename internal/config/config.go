package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/kevin07696/securepay-gateway/internal/adapters/secrets"
	"github.com/kevin07696/securepay-gateway/internal/adapters/securepay"
	"github.com/kevin07696/securepay-gateway/internal/domain/models"
	"github.com/kevin07696/securepay-gateway/internal/domain/ports"
)

// Config holds all application configuration.
// Values come from an optional YAML file; environment variables take precedence.
type Config struct {
	SecurePay SecurePayConfig `yaml:"securepay"`
	Logger    LoggerConfig    `yaml:"logger"`
	Secrets   SecretsConfig   `yaml:"secrets"`
}

// SecurePayConfig holds SecurePay XML API configuration
type SecurePayConfig struct {
	Login              string  `yaml:"login" env:"SECUREPAY_LOGIN" env-description:"Merchant ID"`
	Password           string  `yaml:"password" env:"SECUREPAY_PASSWORD" env-description:"Merchant transaction password"`
	TestMode           bool    `yaml:"test_mode" env:"SECUREPAY_TEST_MODE" env-default:"true" env-description:"Route calls to the test host"`
	TimeoutSeconds     int     `yaml:"timeout_seconds" env:"SECUREPAY_TIMEOUT_SECONDS" env-default:"60" env-description:"timeoutValue sent to the provider"`
	HTTPTimeoutSeconds int     `yaml:"http_timeout_seconds" env:"SECUREPAY_HTTP_TIMEOUT_SECONDS" env-default:"75" env-description:"Client-side bound on one round trip"`
	Currency           string  `yaml:"currency" env:"SECUREPAY_CURRENCY" env-default:"AUD" env-description:"Default ISO 4217 currency"`
	TestURL            string  `yaml:"test_url" env:"SECUREPAY_TEST_URL" env-default:"https://test.securepay.com.au/xmlapi"`
	LiveURL            string  `yaml:"live_url" env:"SECUREPAY_LIVE_URL" env-default:"https://www.securepay.com.au/xmlapi"`
	BreakerEnabled     bool    `yaml:"breaker_enabled" env:"SECUREPAY_BREAKER_ENABLED" env-default:"false"`
	RateLimitRPS       float64 `yaml:"rate_limit_rps" env:"SECUREPAY_RATE_LIMIT_RPS" env-default:"0" env-description:"Outbound requests per second, 0 disables"`
	RateLimitBurst     int     `yaml:"rate_limit_burst" env:"SECUREPAY_RATE_LIMIT_BURST" env-default:"1"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string `yaml:"level" env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn, error"`
	Development bool   `yaml:"development" env:"LOG_DEVELOPMENT" env-default:"false"`
}

// SecretsConfig selects where merchant credentials are read from when they are
// not given directly
type SecretsConfig struct {
	Backend    string `yaml:"backend" env:"SECRETS_BACKEND" env-description:"local, aws or vault; empty disables"`
	Path       string `yaml:"path" env:"SECRETS_PATH" env-default:"securepay/merchant"`
	LocalDir   string `yaml:"local_dir" env:"SECRETS_LOCAL_DIR" env-default:"./secrets"`
	AWSRegion  string `yaml:"aws_region" env:"AWS_REGION" env-default:"ap-southeast-2"`
	VaultAddr  string `yaml:"vault_addr" env:"VAULT_ADDR" env-default:"http://127.0.0.1:8200"`
	VaultToken string `yaml:"vault_token" env:"VAULT_TOKEN"`
	VaultMount string `yaml:"vault_mount" env:"VAULT_MOUNT" env-default:"secret"`
}

// Load reads configuration from path (YAML) when given, then from the environment
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("load config: %w; %s", err, desc)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() (*Config, error) {
	return Load("")
}

// Validate checks values cleanenv cannot
func (c *Config) Validate() error {
	if c.SecurePay.TimeoutSeconds <= 0 {
		return fmt.Errorf("SECUREPAY_TIMEOUT_SECONDS must be positive")
	}
	if c.SecurePay.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("SECUREPAY_HTTP_TIMEOUT_SECONDS must not be negative")
	}
	if _, err := models.ValidateCurrency(c.SecurePay.Currency); err != nil {
		return fmt.Errorf("SECUREPAY_CURRENCY: %w", err)
	}
	if c.SecurePay.RateLimitRPS < 0 {
		return fmt.Errorf("SECUREPAY_RATE_LIMIT_RPS must not be negative")
	}

	switch c.Secrets.Backend {
	case "", secrets.BackendLocal, secrets.BackendAWS, secrets.BackendVault:
	default:
		return fmt.Errorf("SECRETS_BACKEND must be one of local, aws, vault; got %q", c.Secrets.Backend)
	}

	return nil
}

// HTTPTimeout is the client-side bound on one round trip
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.SecurePay.HTTPTimeoutSeconds) * time.Second
}

// GatewayConfig converts to the adapter configuration
func (c *Config) GatewayConfig(creds *models.Credentials) securepay.Config {
	environment := "live"
	if c.SecurePay.TestMode {
		environment = "test"
	}

	cfg := securepay.DefaultConfig(environment, creds)
	if c.SecurePay.TestURL != "" {
		cfg.TestURL = c.SecurePay.TestURL
	}
	if c.SecurePay.LiveURL != "" {
		cfg.LiveURL = c.SecurePay.LiveURL
	}
	if c.SecurePay.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(c.SecurePay.TimeoutSeconds) * time.Second
	}
	if c.SecurePay.Currency != "" {
		cfg.DefaultCurrency = strings.ToUpper(c.SecurePay.Currency)
	}
	return cfg
}

// GatewayOptions returns the optional resilience settings as adapter options
func (c *Config) GatewayOptions() []securepay.Option {
	var opts []securepay.Option
	if c.SecurePay.BreakerEnabled {
		opts = append(opts, securepay.WithCircuitBreaker(securepay.DefaultBreakerConfig()))
	}
	if c.SecurePay.RateLimitRPS > 0 {
		opts = append(opts, securepay.WithRateLimit(c.SecurePay.RateLimitRPS, c.SecurePay.RateLimitBurst))
	}
	return opts
}

// ResolveCredentials returns the merchant credentials. Credentials given directly win;
// otherwise the configured secrets backend is read.
func (c *Config) ResolveCredentials(ctx context.Context, logger ports.Logger) (*models.Credentials, error) {
	if c.SecurePay.Login != "" {
		return &models.Credentials{Login: c.SecurePay.Login, Password: c.SecurePay.Password}, nil
	}

	if c.Secrets.Backend == "" {
		return nil, fmt.Errorf("no SecurePay credentials: set SECUREPAY_LOGIN or SECRETS_BACKEND")
	}

	sm, err := secrets.New(ctx, secrets.Config{
		Backend:    c.Secrets.Backend,
		LocalDir:   c.Secrets.LocalDir,
		AWSRegion:  c.Secrets.AWSRegion,
		VaultAddr:  c.Secrets.VaultAddr,
		VaultToken: c.Secrets.VaultToken,
		VaultMount: c.Secrets.VaultMount,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager: %w", err)
	}

	return secrets.LoadCredentials(ctx, sm, c.Secrets.Path)
}
