package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   remote API base URL
//	-m          use the local mock backend
//	-d string   local database file
//	-i int      online check interval (seconds); only applied when given
//	-l string   log level
//
// os.Args is pre-filtered with flagx.FilterArgs so flags owned by other
// parsers (-c) do not break parsing. Malformed values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-l"}, "-m")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "remote API base URL")
	fs.BoolVar(&cfg.UseMockAPI, "m", cfg.UseMockAPI, "use the local mock API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}
