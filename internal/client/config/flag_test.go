package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "remote url and interval",
			args: []string{"cmd", "-a", "http://127.0.0.1:9090/api", "-i", "10"},
			expected: &Config{
				APIBaseURL:          "http://127.0.0.1:9090/api",
				OnlineCheckInterval: 10 * time.Second,
			},
		},
		{
			name: "mock switch before valued flag",
			args: []string{"cmd", "-m", "-d", "mock.db", "-l", "debug"},
			expected: &Config{
				UseMockAPI:   true,
				DatabasePath: "mock.db",
				LogLevel:     "debug",
			},
		},
		{
			name:        "incorrect check interval",
			args:        []string{"cmd", "-a", "http://127.0.0.1:9090", "-i", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsIntervalWithoutFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-m"}

	config := &Config{OnlineCheckInterval: 1500 * time.Millisecond}
	parseFlags(config)
	assert.Equal(t, 1500*time.Millisecond, config.OnlineCheckInterval)
}
