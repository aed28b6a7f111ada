package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Storage struct {
	// Backend selects where the guest cart persists: memory, file, redis
	// or postgres.
	Backend     string `yaml:"backend"`
	Dir         string `yaml:"dir"`
	RedisAddr   string `yaml:"redis_addr"`
	PostgresDSN string `yaml:"postgres_dsn"`

	// GuestID scopes redis and postgres snapshots; generated by the CLI
	// when absent.
	GuestID string `yaml:"guest_id"`
}

type Config struct {
	BaseURL  string  `yaml:"base_url"`
	Token    string  `yaml:"token"`
	Currency string  `yaml:"currency"`
	LogLevel string  `yaml:"log_level"`
	Storage  Storage `yaml:"storage"`
}

// Load reads the YAML file at path and applies STOREFRONT_* environment
// overrides on top. With an empty path only defaults and environment apply.
func Load(path string) (Config, error) {
	cfg := Config{
		BaseURL:  "http://localhost:3000",
		Currency: "USD",
		LogLevel: "info",
		Storage: Storage{
			Backend: BackendFile,
			Dir:     ".",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("os.ReadFile: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
			}
		}
	}

	cfg.BaseURL = getEnv("STOREFRONT_BASE_URL", cfg.BaseURL)
	cfg.Token = getEnv("STOREFRONT_TOKEN", cfg.Token)
	cfg.Currency = getEnv("STOREFRONT_CURRENCY", cfg.Currency)
	cfg.LogLevel = getEnv("STOREFRONT_LOG_LEVEL", cfg.LogLevel)
	cfg.Storage.Backend = getEnv("STOREFRONT_STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.Dir = getEnv("STOREFRONT_STORAGE_DIR", cfg.Storage.Dir)
	cfg.Storage.RedisAddr = getEnv("STOREFRONT_REDIS_ADDR", cfg.Storage.RedisAddr)
	cfg.Storage.PostgresDSN = getEnv("STOREFRONT_POSTGRES_DSN", cfg.Storage.PostgresDSN)
	cfg.Storage.GuestID = getEnv("STOREFRONT_GUEST_ID", cfg.Storage.GuestID)

	switch cfg.Storage.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
