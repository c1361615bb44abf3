package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/cbuclub/internal/flagx"
)

// parseFlags populates Config fields from command-line flags:
//
//	-a string   API base URL
//	-s string   storage file path
//	-t int      request timeout in seconds (0 = transport default)
//	-l string   log level
//
// Only these flags are parsed; see flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], "a", "s", "t", "l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "storage file path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
