package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Sync    SyncConfig    `yaml:"sync"`
	Store   StoreConfig   `yaml:"store"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type APIConfig struct {
	BaseURL    string `yaml:"base_url" envconfig:"API_BASE_URL"`
	UseMockAPI bool   `yaml:"use_mock_api" envconfig:"USE_MOCK_API"`
}

type FetchConfig struct {
	CacheTTL   Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL"`
	RetryCount int      `yaml:"retry_count" envconfig:"RETRY_COUNT"`
	RetryDelay Duration `yaml:"retry_delay" envconfig:"RETRY_DELAY"`
}

type SyncConfig struct {
	Stabilization Duration `yaml:"stabilization" envconfig:"SYNC_STABILIZATION"`
}

type StoreConfig struct {
	DebounceWindow Duration `yaml:"debounce_window" envconfig:"DEBOUNCE_WINDOW"`
}

type StorageConfig struct {
	// Driver is one of memory, sqlite, redis.
	Driver      string `yaml:"driver" envconfig:"STORAGE_DRIVER"`
	Path        string `yaml:"path" envconfig:"STORAGE_PATH"`
	RedisAddr   string `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPrefix string `yaml:"redis_prefix" envconfig:"REDIS_PREFIX"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

// Duration wraps time.Duration for YAML and environment parsing.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler so envconfig can decode
// ALUMNI_* duration variables.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads configuration from an optional YAML file, then applies
// ALUMNI_* environment overrides.
func Load() (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL: "http://localhost:3001/api",
		},
		Fetch: FetchConfig{
			CacheTTL:   Duration(5 * time.Minute),
			RetryCount: 3,
			RetryDelay: Duration(time.Second),
		},
		Sync: SyncConfig{
			Stabilization: Duration(2 * time.Second),
		},
		Store: StoreConfig{
			DebounceWindow: Duration(300 * time.Millisecond),
		},
		Storage: StorageConfig{
			Driver:      "sqlite",
			Path:        "alumniconnect.db",
			RedisPrefix: "alumniconnect:",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("ALUMNI_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	// Each section is processed directly so the prefix combines with a leaf
	// tag alone (ALUMNI_LOG_LEVEL, not ALUMNI_LOG_LOG_LEVEL). Processing the
	// whole struct would prepend the section field names.
	sections := []any{&cfg.API, &cfg.Fetch, &cfg.Sync, &cfg.Store, &cfg.Storage, &cfg.Log}
	for _, section := range sections {
		if err := envconfig.Process("alumni", section); err != nil {
			return Config{}, fmt.Errorf("process environment: %w", err)
		}
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
