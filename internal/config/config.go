// Package config provides configuration management for the extension
// server. Configuration is loaded from environment variables with sensible
// defaults and validated before the application starts.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//   - TLS_CERT / TLS_KEY: Optional TLS certificate pair
//
// Extension Settings:
//   - APPLICATION_ID: Application id the extension was registered under
//     (required unless DEBUG_MODE)
//   - DEFAULT_LANGUAGE: Default speech language, one of en/ja/ko (default: ja)
//   - DEBUG_MODE: Skip signature and application-id verification
//     (default: false, local testing only)
//   - CEK_PUBLIC_KEY: PEM-encoded platform public key (required unless
//     DEBUG_MODE)
//   - CEK_PUBLIC_KEY_FILE: Path to a PEM file, used when CEK_PUBLIC_KEY is
//     not set inline
//
// Session Store:
//   - SESSION_STORE: "memory" or "redis" (default: memory)
//   - REDIS_ADDRESS: Redis server address (default: localhost:6379)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//   - REDIS_POOL_SIZE: Redis connection pool size (default: 10)
//   - SESSION_TTL: Session attribute lifetime (default: 24h)
package config

import (
	"os"
	"strconv"
	"time"

	apperrors "clova-router/internal/common/errors"
)

// Config holds all configuration values for the extension server
type Config struct {
	// Application settings
	Port     string // Server port number
	LogLevel string // Logging level (debug, info, warn, error)
	TLSCert  string // TLS certificate file path
	TLSKey   string // TLS key file path

	// Extension settings
	ApplicationID    string // Registered application id
	DefaultLanguage  string // Default speech language (en, ja, ko)
	DebugMode        bool   // Skip request verification when true
	CEKPublicKey     string // PEM-encoded platform public key
	CEKPublicKeyFile string // Path to a PEM file with the platform key

	// Session store configuration
	SessionStore  string // "memory" or "redis"
	RedisAddress  string // Redis server address (host:port)
	RedisPassword string // Redis authentication password
	RedisDB       string // Redis database number (0-15)
	RedisPoolSize string // Redis connection pool size
	SessionTTL    string // Session attribute lifetime
}

// Load reads configuration from environment variables with defaults applied
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		TLSCert:  getEnv("TLS_CERT", ""),
		TLSKey:   getEnv("TLS_KEY", ""),

		ApplicationID:    getEnv("APPLICATION_ID", ""),
		DefaultLanguage:  getEnv("DEFAULT_LANGUAGE", "ja"),
		DebugMode:        getBoolEnv("DEBUG_MODE", false),
		CEKPublicKey:     getEnv("CEK_PUBLIC_KEY", ""),
		CEKPublicKeyFile: getEnv("CEK_PUBLIC_KEY_FILE", ""),

		SessionStore:  getEnv("SESSION_STORE", "memory"),
		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),
		RedisPoolSize: getEnv("REDIS_POOL_SIZE", "10"),
		SessionTTL:    getEnv("SESSION_TTL", "24h"),
	}
}

// getEnv retrieves an environment variable value or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv retrieves a boolean environment variable or returns a default
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// PublicKeyPEM returns the platform public key material, reading the
// configured file when the key is not set inline
func (c *Config) PublicKeyPEM() ([]byte, error) {
	if c.CEKPublicKey != "" {
		return []byte(c.CEKPublicKey), nil
	}
	if c.CEKPublicKeyFile != "" {
		data, err := os.ReadFile(c.CEKPublicKeyFile)
		if err != nil {
			return nil, apperrors.ConfigError("failed to read CEK_PUBLIC_KEY_FILE: " + err.Error())
		}
		return data, nil
	}
	return nil, apperrors.ConfigError("no public key configured")
}

// Validate checks that the configuration is complete and consistent. The
// application should call this after Load and before starting.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return apperrors.ConfigError("PORT must be a valid port number between 1 and 65535")
	}

	switch c.DefaultLanguage {
	case "en", "ja", "ko":
	default:
		return apperrors.ConfigError("DEFAULT_LANGUAGE must be one of en, ja, ko")
	}

	if !c.DebugMode {
		if c.ApplicationID == "" {
			return apperrors.ConfigError("APPLICATION_ID is required unless DEBUG_MODE is enabled")
		}
		if c.CEKPublicKey == "" && c.CEKPublicKeyFile == "" {
			return apperrors.ConfigError("CEK_PUBLIC_KEY or CEK_PUBLIC_KEY_FILE is required unless DEBUG_MODE is enabled")
		}
	}

	switch c.SessionStore {
	case "memory", "redis":
	default:
		return apperrors.ConfigError("SESSION_STORE must be 'memory' or 'redis'")
	}

	if c.SessionStore == "redis" {
		if db, err := strconv.Atoi(c.RedisDB); err != nil || db < 0 || db > 15 {
			return apperrors.ConfigError("REDIS_DB must be a number between 0 and 15")
		}
		if poolSize, err := strconv.Atoi(c.RedisPoolSize); err != nil || poolSize < 1 {
			return apperrors.ConfigError("REDIS_POOL_SIZE must be a positive number")
		}
	}

	if _, err := time.ParseDuration(c.SessionTTL); err != nil {
		return apperrors.ConfigError("SESSION_TTL must be a valid duration (e.g., '24h', '30m')")
	}

	return nil
}
