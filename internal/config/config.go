// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration
	CORSOrigins   []string
}

// Load reads configuration from the environment, with a .env file applied
// first when present. RedisAddr empty means in-process sessions.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getenv("PORT", "8080"),
		DBPath:        getenv("DB_PATH", "./data/healthlog.db"),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		SessionTTL:    hours("SESSION_TTL_HOURS", 24),
		CORSOrigins:   parseCSV(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func hours(key string, fallback int) time.Duration {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return time.Duration(n) * time.Hour
	}
	return time.Duration(fallback) * time.Hour
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
