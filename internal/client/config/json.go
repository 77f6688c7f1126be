package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/profilesync/internal/flagx"
	"github.com/dmitrijs2005/profilesync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from "zero" so a partial file only overrides what it
// names. Durations accept "5s" or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	UseMockAPI          *bool           `json:"use_mock_api"`
	DatabasePath        *string         `json:"database_path"`
	MockTokenSecret     *string         `json:"mock_token_secret"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	ProbeTimeout        *timex.Duration `json:"probe_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
}

// parseJson overlays cfg with values from the file named by -c / -config.
// Without such a flag it is a no-op. Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	path := flagx.JSONConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.UseMockAPI != nil {
		cfg.UseMockAPI = *jc.UseMockAPI
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.MockTokenSecret != nil {
		cfg.MockTokenSecret = *jc.MockTokenSecret
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ProbeTimeout != nil {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
}
