package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer   string // Required: expected issuer of admin bearer tokens
	Audience string // Optional: expected audience claim (empty disables the check)

	JWKSFile string // Path to a JWKS file holding the IdP's public keys
	JWKSURL  string // Alternative: URL of the IdP's JWKS endpoint (used when JWKSFile is empty)

	DatabaseFile string // Path to the SQLite database file (default: ./admin.db)

	AgentTypesURL   string        // Optional: external agent-type directory endpoint
	NotificationURL string        // Optional: webhook notified when an account is confirmed
	NotifyTimeout   time.Duration // Timeout per notification delivery (default: 10s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:   os.Getenv("ADMIN_ISSUER"),
		Audience: os.Getenv("ADMIN_AUDIENCE"),

		JWKSFile: os.Getenv("ADMIN_JWKS_FILE"),
		JWKSURL:  os.Getenv("ADMIN_JWKS_URL"),

		DatabaseFile: getEnvOrDefault("ADMIN_DATABASE_FILE", "admin.db"),

		AgentTypesURL:   os.Getenv("ADMIN_AGENT_TYPES_URL"),
		NotificationURL: os.Getenv("ADMIN_NOTIFICATION_URL"),
		NotifyTimeout:   getEnvDurationOrDefault("ADMIN_NOTIFY_TIMEOUT", 10*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.Issuer == "" {
		cfg.Issuer = "identity-provider"
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
