package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kevin07696/securepay-gateway/internal/domain/models"
	"github.com/kevin07696/securepay-gateway/internal/domain/ports"
)

// merchantSecret is the stored form of SecurePay merchant credentials
type merchantSecret struct {
	Login      string `json:"login"`
	MerchantID string `json:"merchant_id"`
	Password   string `json:"password"`
}

// LoadCredentials reads merchant credentials stored as JSON at path:
//
//	{"login": "ABC0001", "password": "abc123"}
//
// "merchant_id" is accepted in place of "login".
func LoadCredentials(ctx context.Context, sm ports.SecretManager, path string) (*models.Credentials, error) {
	secret, err := sm.GetSecret(ctx, path)
	if err != nil {
		return nil, err
	}

	var stored merchantSecret
	if err := json.Unmarshal([]byte(secret.Value), &stored); err != nil {
		return nil, fmt.Errorf("secret %s is not a credentials document: %w", path, err)
	}

	login := stored.Login
	if login == "" {
		login = stored.MerchantID
	}
	if login == "" || stored.Password == "" {
		return nil, fmt.Errorf("secret %s must contain login and password", path)
	}

	return &models.Credentials{Login: login, Password: stored.Password}, nil
}
