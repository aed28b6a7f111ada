package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolayk812/storefront-go/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, ".", cfg.Storage.Dir)
	assert.Empty(t, cfg.Token)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://shop.example.com
token: secret
currency: EUR
log_level: debug
storage:
  backend: redis
  redis_addr: localhost:6379
  guest_id: g-123
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, "g-123", cfg.Storage.GuestID)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://from-file.example.com\n"), 0o600))

	t.Setenv("STOREFRONT_BASE_URL", "https://from-env.example.com")
	t.Setenv("STOREFRONT_STORAGE_BACKEND", "memory")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.com", cfg.BaseURL)
	assert.Equal(t, config.BackendMemory, cfg.Storage.Backend)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE_BACKEND", "cassandra")

	_, err := config.Load("")
	require.EqualError(t, err, `unknown storage backend "cassandra"`)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unclosed"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml.Unmarshal")
}
