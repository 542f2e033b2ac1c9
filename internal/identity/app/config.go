package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer     string // Issuer claim for session tokens (default derived from port)
	AdminToken string // Optional: operator token guarding the claims endpoint

	SigningKeyFile string // Optional: PEM Ed25519 private key; ephemeral key if unset
	PublicKeyFile  string // Optional: where to write the PEM public key on startup

	SessionTTL           time.Duration // Session token lifetime (default: 1h)
	ProofTTL             time.Duration // Verification proof lifetime (default: 2m)
	ChallengeTTL         time.Duration // One-time-code window (default: 5m)
	HousekeepingInterval time.Duration // Expired-record sweep interval (default: 5m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: text)
	Port                int           // HTTP server port (default: 9096)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:               os.Getenv("IDENTITY_ISSUER"),
		AdminToken:           os.Getenv("IDENTITY_ADMIN_TOKEN"),
		SigningKeyFile:       os.Getenv("IDENTITY_SIGNING_KEY_FILE"),
		PublicKeyFile:        os.Getenv("IDENTITY_PUBLIC_KEY_FILE"),
		SessionTTL:           getEnvDurationOrDefault("IDENTITY_SESSION_TTL", time.Hour),
		ProofTTL:             getEnvDurationOrDefault("IDENTITY_PROOF_TTL", 2*time.Minute),
		ChallengeTTL:         getEnvDurationOrDefault("IDENTITY_CHALLENGE_TTL", 5*time.Minute),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 5*time.Minute),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "text"),
		Port:                 getEnvIntOrDefault("PORT", 9096),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.Issuer == "" {
		cfg.Issuer = "http://localhost:" + strconv.Itoa(cfg.Port)
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

	return defaultValue
}
