// Package config loads server configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/simaogato/foliodash-backend/internal/usecase/auth"
)

const defaultHTTPAddr = ":8080"

// Config holds the server's runtime settings.
type Config struct {
	// HTTPAddr is the listen address for the HTTP API.
	HTTPAddr string
	// DatabaseURL is the Postgres connection string. Empty selects the
	// in-memory repositories.
	DatabaseURL string
	// RedisAddr enables the Redis price cache when set.
	RedisAddr string
	// JWTSecret signs session tokens.
	JWTSecret string
	// DemoEmail and DemoPassword are the seeded demo credentials.
	DemoEmail    string
	DemoPassword string
	// SessionTTL is how long issued sessions stay valid.
	SessionTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present.
func Load() (Config, error) {
	// Missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:     getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		DemoEmail:    getEnv("DEMO_EMAIL", "demo@example.com"),
		DemoPassword: getEnv("DEMO_PASSWORD", "password123"),
		SessionTTL:   auth.DefaultTTL,
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
