// Package config loads runtime configuration for the profilesync client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: PROFILESYNC_* variables, optionally seeded from a .env file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   remote API base URL
//	-m          use the local mock backend instead of the remote API
//	-d string   local SQLite database file
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
// Every key is optional; durations are strings like "5s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "http://techtest.youapp.ai/api",
//	  "use_mock_api": false,
//	  "database_path": "profilesync.db",
//	  "mock_token_secret": "change-me",
//	  "request_timeout": "10s",
//	  "probe_timeout": "5s",
//	  "online_check_interval": "30s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// The remote base URL is required unless mock mode is enabled; LoadConfig
// returns an error otherwise.
package config
