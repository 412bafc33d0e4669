package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           string
	DatabaseDSN    string
	CachePath      string
	AllowedOrigins string

	// Rate limiting / body size knobs for the Fiber app.
	RateLimitMax           int
	RateLimitWindowSeconds int
	BodyLimitBytes         int

	// Passwords for the two seeded accounts. Empty means "do not seed".
	AdminPassword string
	SalesPassword string
}

// Load reads configuration from environment with sensible defaults.
// Call godotenv.Load() before this if a .env file should be honored.
func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		CachePath:      getEnv("CACHE_PATH", "timberyard-cache.db"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		RateLimitMax:           getEnvInt("RATE_LIMIT_MAX", 120),
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),

		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SalesPassword: getEnv("SALES_PASSWORD", ""),
	}

	// Fiber default BodyLimit is 4MB if unset; allow overriding either way.
	cfg.BodyLimitBytes = getEnvInt("BODY_LIMIT_BYTES", 0)
	if cfg.BodyLimitBytes <= 0 {
		cfg.BodyLimitBytes = getEnvInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
