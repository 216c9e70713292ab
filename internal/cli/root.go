package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kevin07696/securepay-gateway/internal/adapters/securepay"
	"github.com/kevin07696/securepay-gateway/internal/config"
	"github.com/kevin07696/securepay-gateway/pkg/http"
	"github.com/kevin07696/securepay-gateway/pkg/observability"
	"github.com/kevin07696/securepay-gateway/pkg/security"
)

// ErrDeclined is returned when the provider answered but did not approve the request
var ErrDeclined = errors.New("request was not approved")

type globalOptions struct {
	configPath      string
	metricsTextfile string
}

// NewRootCommand builds the securepay command tree
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "securepay",
		Short: "SecurePay XML API client",
		Long: `Run card payments and recurring-profile operations against the SecurePay XML API.
Credentials and endpoints come from SECUREPAY_* environment variables or a YAML config file.
Each command prints the normalised result as JSON.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the call")

	cmd.AddCommand(
		newPurchaseCommand(opts),
		newAuthorizeCommand(opts),
		newCaptureCommand(opts),
		newVoidCommand(opts),
		newRefundCommand(opts),
		newRecurringCommand(opts),
	)

	return cmd
}

// session is everything one command invocation needs
type session struct {
	gateway  *securepay.Gateway
	currency string
	registry *prometheus.Registry
	logger   *security.ZapLoggerAdapter
	opts     *globalOptions
}

func newSession(ctx context.Context, opts *globalOptions) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	logger, err := security.NewZapLoggerWithLevel(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		return nil, err
	}

	creds, err := cfg.ResolveCredentials(ctx, logger)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	gatewayOpts := append(cfg.GatewayOptions(), securepay.WithMetrics(observability.NewGatewayMetrics(registry)))

	client := http.NewHTTPClient(http.SecurePayClientConfig(), cfg.HTTPTimeout())

	gatewayCfg := cfg.GatewayConfig(creds)
	gateway, err := securepay.NewGateway(gatewayCfg, client, logger, gatewayOpts...)
	if err != nil {
		return nil, err
	}

	return &session{
		gateway:  gateway,
		currency: gatewayCfg.DefaultCurrency,
		registry: registry,
		logger:   logger,
		opts:     opts,
	}, nil
}

// close flushes logs and writes metrics when requested
func (s *session) close() error {
	_ = s.logger.Sync()

	if s.opts.metricsTextfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(s.opts.metricsTextfile, s.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// finish closes the session and reports a close failure unless the command already failed
func (s *session) finish(err *error) {
	if cerr := s.close(); *err == nil {
		*err = cerr
	}
}
