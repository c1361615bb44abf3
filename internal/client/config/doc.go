// Package config loads runtime configuration for the club client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: CBU_API_URL, CBU_STORAGE_PATH, CBU_LOG_LEVEL, CBU_LOG_BACKEND,
//     after loading a dotenv file (-e/-env-file, default ".env") if present.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-s string   storage file path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://cbu.example/api/v1",
//	  "storage_path": "cbu.db",
//	  "request_timeout": "10s",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "log_backend": "zap"
//	}
package config
