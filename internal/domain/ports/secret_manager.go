package ports

import "context"

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value; merchant credentials are stored as JSON
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManager retrieves secrets from a secret management backend.
// Path format depends on implementation:
//   - Local: a file under the base directory, e.g. "securepay/merchant.json"
//   - AWS:   a secret name or ARN, e.g. "securepay/merchant"
//   - Vault: a KV path under the mount, e.g. "securepay/merchant"
type SecretManager interface {
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
