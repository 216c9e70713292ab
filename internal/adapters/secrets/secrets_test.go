package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/securepay-gateway/internal/domain/ports"
	"github.com/kevin07696/securepay-gateway/pkg/timeutil"
	"github.com/kevin07696/securepay-gateway/test/mocks"
)

func writeSecretFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLocalSecretManager_GetSecret(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "plain.txt", "s3cret\n")
	writeSecretFile(t, dir, "securepay/wrapped.json", `{"value":"inner","tags":{"env":"test"},"created_at":"2024-01-01T00:00:00Z"}`)
	writeSecretFile(t, dir, "securepay/merchant.json", `{"login":"ABC0001","password":"abc123"}`)

	sm := NewLocalSecretManager(dir, mocks.NewMockLogger())
	ctx := context.Background()

	plain, err := sm.GetSecret(ctx, "plain.txt")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", plain.Value)

	wrapped, err := sm.GetSecret(ctx, "securepay/wrapped.json")
	require.NoError(t, err)
	assert.Equal(t, "inner", wrapped.Value)
	assert.Equal(t, "test", wrapped.Metadata["env"])
	assert.Equal(t, "2024-01-01T00:00:00Z", wrapped.CreatedAt)

	merchant, err := sm.GetSecret(ctx, "securepay/merchant.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"login":"ABC0001","password":"abc123"}`, merchant.Value)

	_, err = sm.GetSecret(ctx, "missing.json")
	assert.ErrorContains(t, err, "secret not found")
}

func TestLocalSecretManager_StaysInsideBaseDir(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "secrets")
	writeSecretFile(t, root, "outside.txt", "nope")
	writeSecretFile(t, base, "outside.txt", "inside")

	sm := NewLocalSecretManager(base, mocks.NewMockLogger())

	secret, err := sm.GetSecret(context.Background(), "../outside.txt")
	require.NoError(t, err)
	assert.Equal(t, "inside", secret.Value)
}

func TestLoadCredentials(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "login.json", `{"login":"ABC0001","password":"abc123"}`)
	writeSecretFile(t, dir, "merchant_id.json", `{"merchant_id":"XYZ0010","password":"pw"}`)
	writeSecretFile(t, dir, "incomplete.json", `{"login":"ABC0001"}`)
	writeSecretFile(t, dir, "garbage.txt", `not json`)

	sm := NewLocalSecretManager(dir, mocks.NewMockLogger())
	ctx := context.Background()

	creds, err := LoadCredentials(ctx, sm, "login.json")
	require.NoError(t, err)
	assert.Equal(t, "ABC0001", creds.Login)
	assert.Equal(t, "abc123", creds.Password)

	creds, err = LoadCredentials(ctx, sm, "merchant_id.json")
	require.NoError(t, err)
	assert.Equal(t, "XYZ0010", creds.Login)

	_, err = LoadCredentials(ctx, sm, "incomplete.json")
	assert.ErrorContains(t, err, "login and password")

	_, err = LoadCredentials(ctx, sm, "garbage.txt")
	assert.Error(t, err)

	_, err = LoadCredentials(ctx, sm, "absent.json")
	assert.Error(t, err)
}

type fakeSecretsManager struct {
	calls  int
	output *secretsmanager.GetSecretValueOutput
	err    error
}

func (f *fakeSecretsManager) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	return f.output, f.err
}

func TestAWSSecretsManagerAdapter_GetSecretCaches(t *testing.T) {
	created := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	fake := &fakeSecretsManager{output: &secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"login":"ABC0001","password":"abc123"}`),
		VersionId:    aws.String("v-1"),
		ARN:          aws.String("arn:aws:secretsmanager:ap-southeast-2:123:secret:securepay"),
		Name:         aws.String("securepay/merchant"),
		CreatedDate:  &created,
	}}
	adapter := newAWSSecretsManagerAdapter(fake, DefaultAWSSecretsManagerConfig("ap-southeast-2"), mocks.NewMockLogger())

	first, err := adapter.GetSecret(context.Background(), "securepay/merchant")
	require.NoError(t, err)
	second, err := adapter.GetSecret(context.Background(), "securepay/merchant")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.calls)
	assert.Same(t, first, second)
	assert.Equal(t, "v-1", first.Version)
	assert.Equal(t, "2024-01-02T03:04:05Z", first.CreatedAt)
	assert.Equal(t, "securepay/merchant", first.Metadata["name"])

	creds, err := LoadCredentials(context.Background(), adapter, "securepay/merchant")
	require.NoError(t, err)
	assert.Equal(t, "ABC0001", creds.Login)
}

func TestAWSSecretsManagerAdapter_Error(t *testing.T) {
	fake := &fakeSecretsManager{err: errors.New("AccessDeniedException")}
	logger := mocks.NewMockLogger()
	adapter := newAWSSecretsManagerAdapter(fake, DefaultAWSSecretsManagerConfig("ap-southeast-2"), logger)

	_, err := adapter.GetSecret(context.Background(), "securepay/merchant")

	assert.ErrorContains(t, err, "AccessDeniedException")
	assert.Len(t, logger.ErrorCalls, 1)
}

func TestSecretCache_Expiry(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	cache := newSecretCache(true, time.Minute)
	cache.clock = timeutil.FixedClock{At: now}

	cache.set("k", &ports.Secret{Value: "v"})
	require.NotNil(t, cache.get("k"))

	cache.clock = timeutil.FixedClock{At: now.Add(2 * time.Minute)}
	assert.Nil(t, cache.get("k"))

	disabled := newSecretCache(false, time.Minute)
	disabled.set("k", &ports.Secret{Value: "v"})
	assert.Nil(t, disabled.get("k"))
}

func newFakeVault(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)
	return server
}

func TestVaultAdapter_KVv2(t *testing.T) {
	server := newFakeVault(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/secret/data/securepay/merchant", r.URL.Path)
		assert.Equal(t, "root-token", r.Header.Get("X-Vault-Token"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"data": map[string]interface{}{
					"login":    "ABC0001",
					"password": "abc123",
				},
				"metadata": map[string]interface{}{
					"version":      3,
					"created_time": "2024-01-01T00:00:00Z",
				},
			},
		})
	})

	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "root-token"
	sm, err := NewVaultAdapter(context.Background(), cfg, mocks.NewMockLogger())
	require.NoError(t, err)

	secret, err := sm.GetSecret(context.Background(), "securepay/merchant")
	require.NoError(t, err)
	assert.Equal(t, "3", secret.Version)
	assert.Equal(t, "2024-01-01T00:00:00Z", secret.CreatedAt)

	creds, err := LoadCredentials(context.Background(), sm, "securepay/merchant")
	require.NoError(t, err)
	assert.Equal(t, "ABC0001", creds.Login)
	assert.Equal(t, "abc123", creds.Password)
}

func TestVaultAdapter_NotFound(t *testing.T) {
	server := newFakeVault(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[]}`))
	})

	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "root-token"
	sm, err := NewVaultAdapter(context.Background(), cfg, mocks.NewMockLogger())
	require.NoError(t, err)

	_, err = sm.GetSecret(context.Background(), "securepay/missing")
	assert.Error(t, err)
}

func TestVaultAdapter_RequiresToken(t *testing.T) {
	_, err := NewVaultAdapter(context.Background(), DefaultVaultConfig("http://127.0.0.1:8200"), mocks.NewMockLogger())
	assert.ErrorContains(t, err, "token is required")
}

func TestNew_Backends(t *testing.T) {
	ctx := context.Background()
	logger := mocks.NewMockLogger()

	local, err := New(ctx, Config{Backend: BackendLocal, LocalDir: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.NotNil(t, local)

	_, err = New(ctx, Config{Backend: "gcp"}, logger)
	assert.ErrorContains(t, err, "unsupported secrets backend")

	_, err = New(ctx, Config{Backend: BackendVault, VaultAddr: "http://127.0.0.1:8200"}, logger)
	assert.Error(t, err)
}
