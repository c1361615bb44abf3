package config

import "time"

// Config holds runtime settings for the club client.
//
// Fields:
//   - APIBaseURL: base URL of the backend JSON API, including the path prefix.
//   - StoragePath: SQLite file backing the durable client storage.
//   - RequestTimeout: per-request timeout; zero keeps the transport default.
//   - LogLevel / LogFormat / LogBackend: see logging.Options.
//   - EnvFile: dotenv file read before the environment stage.
type Config struct {
	APIBaseURL     string
	StoragePath    string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	LogBackend     string
	EnvFile        string
}

// LoadDefaults populates c with defaults suitable for local development.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api/v1"
	c.StoragePath = "cbu.db"
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogBackend = "slog"
	c.EnvFile = ".env"
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment (after an optional dotenv file), a JSON file and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
