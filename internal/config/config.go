// Package config assembles the service's environment-driven settings into
// a single typed struct, read once at startup.
package config

import "os"

// Config holds the environment-derived settings for the reflow service.
type Config struct {
	// ServerAddr is the address the HTTP API listens on.
	ServerAddr string
	// DatabaseURL is a Postgres connection string. When empty, the service
	// falls back to the in-memory repository implementation.
	DatabaseURL string
	// RedisAddr is the Asynq-backing Redis address. When empty, the job
	// scheduler and background worker are not started.
	RedisAddr string
	// LogLevel is the zap level name ("debug", "info", "warn", "error").
	LogLevel string
}

// Load reads the service configuration from the environment, applying the
// same defaults the service has always used.
func Load() Config {
	return Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
