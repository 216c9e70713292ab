package secrets

import (
	"context"
	"fmt"

	"github.com/kevin07696/securepay-gateway/internal/domain/ports"
)

// Backend names accepted by New
const (
	BackendLocal = "local"
	BackendAWS   = "aws"
	BackendVault = "vault"
)

// Config selects and configures a secret backend
type Config struct {
	Backend    string
	LocalDir   string
	AWSRegion  string
	VaultAddr  string
	VaultToken string
	VaultMount string
}

// New builds the secret manager named by cfg.Backend
func New(ctx context.Context, cfg Config, logger ports.Logger) (ports.SecretManager, error) {
	switch cfg.Backend {
	case BackendLocal:
		return NewLocalSecretManager(cfg.LocalDir, logger), nil

	case BackendAWS:
		return NewAWSSecretsManagerAdapter(ctx, DefaultAWSSecretsManagerConfig(cfg.AWSRegion), logger)

	case BackendVault:
		vaultCfg := DefaultVaultConfig(cfg.VaultAddr)
		vaultCfg.Token = cfg.VaultToken
		if cfg.VaultMount != "" {
			vaultCfg.MountPath = cfg.VaultMount
		}
		return NewVaultAdapter(ctx, vaultCfg, logger)

	default:
		return nil, fmt.Errorf("unsupported secrets backend: %q", cfg.Backend)
	}
}
