// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, Load returns an error
// and the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the listing service.
type Config struct {
	ServerAddress string
	DatabaseURL   string
	MigrationsDir string

	// Admin capability: a caller is an admin when its asserted email
	// equals AdminEmail or ends with AdminDomain.
	AdminEmail  string
	AdminDomain string

	GeminiAPIKey   string
	ScoringTimeout time.Duration

	RabbitURL string // optional; in-process queue when empty
	RedisURL  string // optional; stats cache disabled when empty

	RescoreIntervalMinutes int // how often the rescore cron fires
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminDomain := os.Getenv("ADMIN_DOMAIN")
	if adminEmail == "" && adminDomain == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL or ADMIN_DOMAIN is required")
	}

	addr := os.Getenv("SERVER_ADDRESS")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "db/migrations/sql"
	}

	scoringTimeout := 10 * time.Second
	if s := os.Getenv("SCORING_TIMEOUT_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SCORING_TIMEOUT_SECONDS must be a positive integer, got %q", s)
		}
		scoringTimeout = time.Duration(v) * time.Second
	}

	rescore := 10
	if s := os.Getenv("RESCORE_INTERVAL_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("RESCORE_INTERVAL_MINUTES must be a positive integer, got %q", s)
		}
		rescore = v
	}

	return &Config{
		ServerAddress:          addr,
		DatabaseURL:            dbURL,
		MigrationsDir:          migrationsDir,
		AdminEmail:             adminEmail,
		AdminDomain:            adminDomain,
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		ScoringTimeout:         scoringTimeout,
		RabbitURL:              os.Getenv("RABBITMQ_URL"),
		RedisURL:               os.Getenv("REDIS_URL"),
		RescoreIntervalMinutes: rescore,
	}, nil
}
