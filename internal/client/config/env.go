package config

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/dmitrijs2005/cbuclub/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envAPIURL      = "CBU_API_URL"
	envStoragePath = "CBU_STORAGE_PATH"
	envLogLevel    = "CBU_LOG_LEVEL"
	envLogBackend  = "CBU_LOG_BACKEND"
)

// parseEnv loads the dotenv file (path from -e/-env-file, else cfg.EnvFile)
// without overriding variables already set, then overlays known variables.
// A missing dotenv file is not an error.
func parseEnv(cfg *Config) {
	if p := flagx.EnvFileFlag(); p != "" {
		cfg.EnvFile = p
	}
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: env file %s: %v", cfg.EnvFile, err)
		}
	}

	// "undefined" comes from build pipelines that stringify a missing value.
	if v, ok := os.LookupEnv(envAPIURL); ok && v != "" && v != "undefined" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envStoragePath); v != "" {
		cfg.StoragePath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envLogBackend); v != "" {
		cfg.LogBackend = v
	}
}
