package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	BaseURL string // Required: public origin used in confirmation links

	DatabaseDriver string // Optional: database driver (postgres, sqlite) (default: sqlite)
	DatabaseURL    string // Required for postgres: connection string
	DatabaseFile   string // Optional: path to SQLite database file (default: ./newsletter.db)

	MailerMode           string        // Optional: outbound mail mode (postmark, dev) (default: dev)
	PostmarkServerToken  string        // Required for postmark mode
	PostmarkAccountToken string        // Optional: account-level Postmark token
	SenderEmail          string        // Required for postmark mode: verified sender address
	EmailSendTimeout     time.Duration // Optional: per-send HTTP timeout (default: 10s)

	SessionSecret string        // Required: HMAC secret for session cookies
	SessionTTL    time.Duration // Optional: session lifetime (default: 1h)

	AdminUsername string // Optional: seed operator username (used only when no users exist)
	AdminPassword string // Optional: seed operator password

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("APP_BASE_URL"),

		DatabaseDriver: getEnvOrDefault("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "newsletter.db"),

		MailerMode:           getEnvOrDefault("MAILER_MODE", "dev"),
		PostmarkServerToken:  os.Getenv("POSTMARK_SERVER_TOKEN"),
		PostmarkAccountToken: os.Getenv("POSTMARK_ACCOUNT_TOKEN"),
		SenderEmail:          os.Getenv("SENDER_EMAIL"),
		EmailSendTimeout:     getEnvDurationOrDefault("EMAIL_SEND_TIMEOUT", 10*time.Second),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    getEnvDurationOrDefault("SESSION_TTL", time.Hour),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
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

	// Plain integers are taken as seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
