package securepay

import (
	"time"

	"github.com/kevin07696/securepay-gateway/internal/domain/models"
)

const (
	// TestURL is the SecurePay sandbox XML API root
	TestURL = "https://test.securepay.com.au/xmlapi"
	// LiveURL is the SecurePay production XML API root
	LiveURL = "https://www.securepay.com.au/xmlapi"

	// DefaultRequestTimeout is sent to the provider as timeoutValue
	DefaultRequestTimeout = 60 * time.Second
)

// Config contains configuration for the SecurePay XML adapter
type Config struct {
	// Merchant credentials. Required; empty strings are passed through to the provider.
	Credentials *models.Credentials

	// Test routes calls to TestURL instead of LiveURL
	Test bool

	// API roots, overridable for stubs
	TestURL string
	LiveURL string

	// RequestTimeout is the provider-side timeout carried in the message envelope.
	// The adapter does not enforce it; bound the call with the context or HTTP client.
	RequestTimeout time.Duration

	// DefaultCurrency applies when neither the options nor the amount name one
	DefaultCurrency string
}

// DefaultConfig returns configuration for the given environment ("test" or "live")
func DefaultConfig(environment string, creds *models.Credentials) Config {
	return Config{
		Credentials:     creds,
		Test:            environment != "live",
		TestURL:         TestURL,
		LiveURL:         LiveURL,
		RequestTimeout:  DefaultRequestTimeout,
		DefaultCurrency: models.DefaultCurrency,
	}
}

// withDefaults fills unset fields without mutating the caller's value
func (c Config) withDefaults() Config {
	if c.TestURL == "" {
		c.TestURL = TestURL
	}
	if c.LiveURL == "" {
		c.LiveURL = LiveURL
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.DefaultCurrency == "" {
		c.DefaultCurrency = models.DefaultCurrency
	}
	return c
}

// timeoutSeconds is the envelope timeoutValue
func (c Config) timeoutSeconds() int {
	return int(c.RequestTimeout / time.Second)
}
