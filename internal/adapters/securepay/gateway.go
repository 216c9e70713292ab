package securepay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/kevin07696/securepay-gateway/internal/domain/models"
	"github.com/kevin07696/securepay-gateway/internal/domain/ports"
	pkgerrors "github.com/kevin07696/securepay-gateway/pkg/errors"
	"github.com/kevin07696/securepay-gateway/pkg/observability"
	"github.com/kevin07696/securepay-gateway/pkg/timeutil"
)

var (
	_ ports.PaymentGateway   = (*Gateway)(nil)
	_ ports.RecurringGateway = (*Gateway)(nil)
)

// Gateway is the SecurePay XML API adapter. It holds only immutable configuration and
// is safe for concurrent use when the injected HTTP client is.
type Gateway struct {
	config       Config
	credentials  models.Credentials
	httpClient   ports.HTTPClient
	logger       ports.Logger
	clock        timeutil.Clock
	newMessageID func() string
	metrics      *observability.GatewayMetrics
	breakerCfg   *BreakerConfig
	breaker      *gobreaker.CircuitBreaker
	limiter      *rate.Limiter
}

// Option customises a Gateway at construction
type Option func(*Gateway)

// WithClock replaces the wall clock used for timestamps and default start dates
func WithClock(clock timeutil.Clock) Option {
	return func(g *Gateway) { g.clock = clock }
}

// WithMessageIDGenerator replaces the message ID source
func WithMessageIDGenerator(fn func() string) Option {
	return func(g *Gateway) { g.newMessageID = fn }
}

// WithMetrics records every round trip on m
func WithMetrics(m *observability.GatewayMetrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// WithCircuitBreaker fails calls fast after repeated transport failures
func WithCircuitBreaker(cfg BreakerConfig) Option {
	return func(g *Gateway) { g.breakerCfg = &cfg }
}

// WithRateLimit caps outbound requests per second; callers block until a token is free
func WithRateLimit(rps float64, burst int) Option {
	return func(g *Gateway) { g.limiter = newLimiter(rps, burst) }
}

// NewGateway creates a new SecurePay adapter
func NewGateway(cfg Config, httpClient ports.HTTPClient, logger ports.Logger, opts ...Option) (*Gateway, error) {
	if cfg.Credentials == nil {
		return nil, pkgerrors.NewConfigurationError("credentials", "login and password are required")
	}
	if httpClient == nil {
		return nil, pkgerrors.NewConfigurationError("http_client", "an HTTP client is required")
	}

	cfg = cfg.withDefaults()

	currencyCode, err := models.ValidateCurrency(cfg.DefaultCurrency)
	if err != nil {
		return nil, pkgerrors.NewConfigurationError("default_currency", err.Error())
	}
	cfg.DefaultCurrency = currencyCode

	if logger == nil {
		logger = nopLogger{}
	}

	g := &Gateway{
		config:       cfg,
		credentials:  *cfg.Credentials,
		httpClient:   httpClient,
		logger:       logger,
		clock:        timeutil.SystemClock{},
		newMessageID: NewMessageID,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.breakerCfg != nil {
		g.breaker = newBreaker(*g.breakerCfg, func(from, to gobreaker.State) {
			g.logger.Warn("SecurePay circuit breaker state changed",
				ports.String("from", from.String()),
				ports.String("to", to.String()),
			)
			g.metrics.SetBreakerState("securepay", float64(to))
		})
	}

	return g, nil
}

// Test reports whether calls are routed to the test host
func (g *Gateway) Test() bool {
	return g.config.Test
}

// Purchase implements PaymentGateway.Purchase
func (g *Gateway) Purchase(ctx context.Context, money models.Money, card models.CreditCard, opts ports.TransactionOptions) (*ports.Result, error) {
	return g.cardTransaction(ctx, ActionPurchase, money, card, opts)
}

// Authorize implements PaymentGateway.Authorize
func (g *Gateway) Authorize(ctx context.Context, money models.Money, card models.CreditCard, opts ports.TransactionOptions) (*ports.Result, error) {
	return g.cardTransaction(ctx, ActionAuthorization, money, card, opts)
}

// Capture implements PaymentGateway.Capture
func (g *Gateway) Capture(ctx context.Context, money models.Money, authorization string, opts ports.TransactionOptions) (*ports.Result, error) {
	return g.referencedTransaction(ctx, ActionCapture, money, authorization, opts)
}

// Void implements PaymentGateway.Void
func (g *Gateway) Void(ctx context.Context, money models.Money, authorization string, opts ports.TransactionOptions) (*ports.Result, error) {
	return g.referencedTransaction(ctx, ActionVoid, money, authorization, opts)
}

// Credit implements PaymentGateway.Credit
func (g *Gateway) Credit(ctx context.Context, money models.Money, authorization string, opts ports.TransactionOptions) (*ports.Result, error) {
	return g.referencedTransaction(ctx, ActionCredit, money, authorization, opts)
}

// Recurring implements RecurringGateway.Recurring
// See: Secure XML API Integration Guide, Periodic and Triggered add in
func (g *Gateway) Recurring(ctx context.Context, money models.Money, card models.CreditCard, schedule models.RecurringSchedule) (*ports.Result, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	if money.Cents <= 0 {
		return nil, pkgerrors.NewValidationError("amount", "amount must be greater than 0")
	}

	interval, err := paymentInterval(schedule.Periodicity)
	if err != nil {
		return nil, err
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	startingAt := schedule.StartingAt
	if startingAt.IsZero() {
		startingAt = timeutil.StartOfDay(g.clock.Now())
	}

	req := periodicRequest{
		Action:           RecurringAdd,
		ProfileID:        schedule.ProfileID,
		Money:            &money,
		StartDate:        FormatStartDate(startingAt),
		PaymentInterval:  interval,
		NumberOfPayments: schedule.Payments,
		Card:             &card,
	}

	return g.commit(ctx, ActionRecurring, schedule.ProfileID, func(env envelope) ([]byte, error) {
		return buildPeriodic(env, req)
	})
}

// CancelRecurring implements RecurringGateway.CancelRecurring
func (g *Gateway) CancelRecurring(ctx context.Context, profileID string) (*ports.Result, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, pkgerrors.NewValidationError("profile_id", "profile_id is required")
	}

	req := periodicRequest{
		Action:    RecurringDelete,
		ProfileID: profileID,
	}

	return g.commit(ctx, ActionRecurring, profileID, func(env envelope) ([]byte, error) {
		return buildPeriodic(env, req)
	})
}

// TriggerRecurring implements RecurringGateway.TriggerRecurring
func (g *Gateway) TriggerRecurring(ctx context.Context, profileID string, amount *models.Money) (*ports.Result, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, pkgerrors.NewValidationError("profile_id", "profile_id is required")
	}
	if amount != nil && amount.Cents <= 0 {
		return nil, pkgerrors.NewValidationError("amount", "amount must be greater than 0")
	}

	req := periodicRequest{
		Action:    RecurringTrigger,
		ProfileID: profileID,
		Money:     amount,
	}

	return g.commit(ctx, ActionRecurring, profileID, func(env envelope) ([]byte, error) {
		return buildPeriodic(env, req)
	})
}

// cardTransaction handles the actions that carry card details
func (g *Gateway) cardTransaction(ctx context.Context, action Action, money models.Money, card models.CreditCard, opts ports.TransactionOptions) (*ports.Result, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}

	currencyCode, err := g.currencyFor(money, opts)
	if err != nil {
		return nil, err
	}

	req := transactionRequest{
		Action:   action,
		Money:    money,
		Currency: currencyCode,
		OrderID:  opts.OrderID,
		Card:     &card,
	}

	return g.commit(ctx, action, opts.OrderID, func(env envelope) ([]byte, error) {
		return buildTransaction(env, req)
	})
}

// referencedTransaction handles the actions that point at an earlier transaction
func (g *Gateway) referencedTransaction(ctx context.Context, action Action, money models.Money, authorization string, opts ports.TransactionOptions) (*ports.Result, error) {
	if strings.TrimSpace(authorization) == "" {
		return nil, pkgerrors.NewValidationError("authorization", fmt.Sprintf("authorization is required for %s", action))
	}

	currencyCode, err := g.currencyFor(money, opts)
	if err != nil {
		return nil, err
	}

	req := transactionRequest{
		Action:   action,
		Money:    money,
		Currency: currencyCode,
		OrderID:  opts.OrderID,
	}
	if action == ActionCapture {
		req.PreauthID = authorization
	} else {
		req.TxnID = authorization
	}

	return g.commit(ctx, action, opts.OrderID, func(env envelope) ([]byte, error) {
		return buildTransaction(env, req)
	})
}

// currencyFor resolves options, then the amount, then the gateway default
func (g *Gateway) currencyFor(money models.Money, opts ports.TransactionOptions) (string, error) {
	code := opts.Currency
	if code == "" {
		code = money.Currency
	}
	if code == "" {
		return g.config.DefaultCurrency, nil
	}
	return models.ValidateCurrency(code)
}

// commit assembles the envelope, performs one POST and classifies the reply
func (g *Gateway) commit(ctx context.Context, action Action, reference string, build func(envelope) ([]byte, error)) (*ports.Result, error) {
	env := envelope{
		MessageID:      g.newMessageID(),
		Timestamp:      FormatTimestamp(g.clock.Now()),
		TimeoutSeconds: g.config.timeoutSeconds(),
		Credentials:    g.credentials,
	}

	body, err := build(env)
	if err != nil {
		g.logger.Error("Failed to build SecurePay request",
			ports.String("action", string(action)),
			ports.Err(err),
		)
		return nil, err
	}

	url := g.urlFor(action)

	g.logger.Info("Processing SecurePay request",
		ports.String("action", string(action)),
		ports.String("message_id", env.MessageID),
		ports.String("reference", reference),
		ports.String("url", url),
	)

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
		}
	}

	startTime := time.Now()
	respBody, err := g.send(ctx, url, body)
	elapsed := time.Since(startTime)
	if err != nil {
		g.logger.Error("SecurePay request failed",
			ports.String("action", string(action)),
			ports.String("message_id", env.MessageID),
			ports.Duration("elapsed", elapsed),
			ports.Err(err),
		)
		g.metrics.ObserveRequest(string(action), observability.OutcomeError, "", elapsed)
		return nil, err
	}

	parsed := ParseResponse(respBody)
	if parsed.Err != nil {
		g.logger.Warn("SecurePay response was not well-formed XML",
			ports.String("message_id", env.MessageID),
			ports.Int("keys_parsed", len(parsed.Fields)),
			ports.Err(parsed.Err),
		)
	}
	if len(parsed.Duplicates) > 0 {
		g.logger.Warn("SecurePay response repeated element names; last value kept",
			ports.String("message_id", env.MessageID),
			ports.Strings("keys", parsed.Duplicates),
		)
	}

	result := g.buildResult(parsed)

	outcome := observability.OutcomeDeclined
	if result.Success {
		outcome = observability.OutcomeApproved
	}
	g.metrics.ObserveRequest(string(action), outcome, result.ResponseCode, elapsed)

	g.logger.Info("Received SecurePay response",
		ports.String("action", string(action)),
		ports.String("message_id", env.MessageID),
		ports.String("response_code", result.ResponseCode),
		ports.String("message", result.Message),
		ports.Bool("success", result.Success),
		ports.Duration("elapsed", elapsed),
	)

	return result, nil
}

// send performs the POST, through the circuit breaker when one is configured
func (g *Gateway) send(ctx context.Context, url string, body []byte) ([]byte, error) {
	if g.breaker == nil {
		return g.post(ctx, url, body)
	}

	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.post(ctx, url, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("securepay request rejected: %w", err)
		}
		return nil, err
	}

	return out.([]byte), nil
}

func (g *Gateway) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("Accept", "text/xml")

	httpResp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode >= 500 {
		perr := pkgerrors.NewPaymentError("GATEWAY_ERROR", "Payment gateway error", pkgerrors.CategorySystemError, true)
		perr.Details["status_code"] = httpResp.StatusCode
		return nil, perr
	}
	if httpResp.StatusCode >= 300 {
		perr := pkgerrors.NewPaymentError("REQUEST_ERROR", "Unexpected response from payment gateway", pkgerrors.CategoryInvalidRequest, false)
		perr.Details["status_code"] = httpResp.StatusCode
		return nil, perr
	}

	return respBody, nil
}

// urlFor picks host by test mode and path by action family
func (g *Gateway) urlFor(action Action) string {
	base := g.config.LiveURL
	if g.config.Test {
		base = g.config.TestURL
	}

	path := "/payment"
	if action.IsRecurring() {
		path = "/periodic"
	}

	return strings.TrimRight(base, "/") + path
}

func (g *Gateway) buildResult(parsed *ParsedResponse) *ports.Result {
	params := parsed.Fields
	code := params["response_code"]

	return &ports.Result{
		Success:       IsSuccessCode(code),
		Message:       messageFrom(params),
		ResponseCode:  code,
		Authorization: params["txn_id"],
		Params:        params,
		Test:          g.config.Test,
		Category:      describeResponse(params).Category,
		Duplicates:    parsed.Duplicates,
	}
}

func messageFrom(params map[string]string) string {
	if text := params["response_text"]; text != "" {
		return text
	}
	return params["status_description"]
}

type nopLogger struct{}

func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Debug(string, ...ports.Field) {}
