package app

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	IdentityURL string // Identity provider base URL (default: http://localhost:9096)
	RelayURL    string // Compute service base URL (default: http://localhost:8081)

	// EndpointURL is the remote compute endpoint. Ships as a placeholder;
	// the forward command reports unconfigured until it is replaced.
	EndpointURL string

	GateMount            string        // Widget mount point name (default: #signin-gate)
	SessionWatchInterval time.Duration // Session revalidation interval (default: 30s)

	// Federated sign-in through an upstream OIDC provider. All four must be
	// set for the federated command to be available.
	OIDCIssuerURL    string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		IdentityURL:          getEnvOrDefault("PORTAL_IDENTITY_URL", "http://localhost:9096"),
		RelayURL:             getEnvOrDefault("PORTAL_RELAY_URL", "http://localhost:8081"),
		EndpointURL:          os.Getenv("PORTAL_ENDPOINT_URL"),
		GateMount:            getEnvOrDefault("PORTAL_GATE_MOUNT", "#signin-gate"),
		SessionWatchInterval: getEnvDurationOrDefault("PORTAL_SESSION_WATCH_INTERVAL", 30*time.Second),
		OIDCIssuerURL:        os.Getenv("PORTAL_OIDC_ISSUER_URL"),
		OIDCClientID:         os.Getenv("PORTAL_OIDC_CLIENT_ID"),
		OIDCClientSecret:     os.Getenv("PORTAL_OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:      os.Getenv("PORTAL_OIDC_REDIRECT_URL"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

// FederatedConfigured reports whether upstream OIDC sign-in is available.
func (c Config) FederatedConfigured() bool {
	return c.OIDCIssuerURL != "" && c.OIDCClientID != "" &&
		c.OIDCClientSecret != "" && c.OIDCRedirectURL != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
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
