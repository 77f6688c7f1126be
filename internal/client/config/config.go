package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds runtime settings for the profilesync client.
//
// Fields:
//   - APIBaseURL: base URL of the remote identity/profile API; every endpoint
//     path (/login, /register, /profile, /test) is appended to it.
//   - UseMockAPI: serve every operation from the local store and skip probing.
//   - DatabasePath: SQLite file backing the local store and the session slot.
//   - MockTokenSecret: secret the local backend derives its token key from.
//   - RequestTimeout: per-request timeout of the remote HTTP client.
//   - ProbeTimeout: bounded wait of a single connectivity probe.
//   - OnlineCheckInterval: how often the connectivity monitor probes.
//   - LogLevel, LogFormat: logger settings (debug|info|warn|error, text|json).
type Config struct {
	APIBaseURL          string        `env:"PROFILESYNC_API_BASE_URL"`
	UseMockAPI          bool          `env:"PROFILESYNC_USE_MOCK_API"`
	DatabasePath        string        `env:"PROFILESYNC_DB_PATH"`
	MockTokenSecret     string        `env:"PROFILESYNC_MOCK_TOKEN_SECRET"`
	RequestTimeout      time.Duration `env:"PROFILESYNC_REQUEST_TIMEOUT"`
	ProbeTimeout        time.Duration `env:"PROFILESYNC_PROBE_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"PROFILESYNC_ONLINE_CHECK_INTERVAL"`
	LogLevel            string        `env:"PROFILESYNC_LOG_LEVEL"`
	LogFormat           string        `env:"PROFILESYNC_LOG_FORMAT"`
}

const defaultMockTokenSecret = "profilesync-local-mock"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = ""
	c.UseMockAPI = false
	c.DatabasePath = "profilesync.db"
	c.MockTokenSecret = defaultMockTokenSecret
	c.RequestTimeout = 10 * time.Second
	c.ProbeTimeout = 5 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports configurations the client cannot start with.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" && !c.UseMockAPI {
		return errors.New("API base URL is not configured and mock API is not enabled")
	}
	if c.DatabasePath == "" {
		return errors.New("database path is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %s", c.ProbeTimeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including an optional .env file), a JSON file (if given)
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	parseJson(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
