// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"bigbull-server/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config

	// Quote service settings.
	QuoteAPIURL   string
	QuoteTimeout  time.Duration
	QuoteCacheTTL time.Duration
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any required variable is missing or invalid.
func LoadConfig() (*AppConfig, error) {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost" // Default to localhost for local development
	}
	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "5432" // Default PostgreSQL port
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "user" // Default user for local development
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = "password" // Default password for local development
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "bigbulldb" // Default database name for local development
	}
	dbSSLMode := os.Getenv("DB_SSLMODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable" // Default to disable for local development
	}

	quoteAPIURL := os.Getenv("QUOTE_API_URL")
	if quoteAPIURL == "" {
		quoteAPIURL = "http://localhost:9090" // Default quote service for local development
	}
	quoteTimeout, err := durationFromEnv("QUOTE_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	quoteCacheTTL, err := durationFromEnv("QUOTE_CACHE_TTL_SECONDS", 30)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
		},
		QuoteAPIURL:   quoteAPIURL,
		QuoteTimeout:  quoteTimeout,
		QuoteCacheTTL: quoteCacheTTL,
	}, nil
}

// durationFromEnv reads an integer-seconds environment variable, falling
// back to defaultSeconds when unset.
func durationFromEnv(key string, defaultSeconds int) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(defaultSeconds) * time.Second, nil
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return time.Duration(seconds) * time.Second, nil
}
