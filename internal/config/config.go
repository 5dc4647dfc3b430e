// Package config loads server settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port             int
	DBPath           string
	JWTSecret        string
	JWTTTL           time.Duration
	RedisAddr        string // empty selects the in-memory cache
	RedisPassword    string
	SummaryTTL       time.Duration
	ActivityCapacity int
	CORSOrigins      []string
}

// Load reads a .env file if one exists, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	return Config{
		Port:             getInt("PORT", 8080),
		DBPath:           getEnv("DB_PATH", "./data/debts.db"),
		JWTSecret:        getEnv("JWT_SECRET", "change-me-in-production"),
		JWTTTL:           getDuration("JWT_TTL", 24*time.Hour),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		SummaryTTL:       getDuration("SUMMARY_TTL", 5*time.Minute),
		ActivityCapacity: getInt("ACTIVITY_CAPACITY", 50),
		CORSOrigins:      strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}
