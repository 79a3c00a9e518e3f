package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string // Required: Postgres connection string
	RedisAddr   string // Optional: Redis host:port for the denylist (default: localhost:6379)
	RedisPass   string // Optional: Redis password
	RedisDB     int    // Optional: Redis logical database (default: 0)

	JWTSecret string        // Required: HS256 signing secret
	Issuer    string        // Optional: issuer claim for tokens (default: agenda-api)
	TokenTTL  time.Duration // Optional: access token lifetime (default: 1h)

	// RevokeOnPasswordChange revokes the authorizing token after a
	// successful password change, forcing a fresh login.
	RevokeOnPasswordChange bool

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		DatabaseURL: os.Getenv("AGENDA_DATABASE_URL"),
		RedisAddr:   getEnvOrDefault("AGENDA_REDIS_ADDR", "localhost:6379"),
		RedisPass:   os.Getenv("AGENDA_REDIS_PASSWORD"),
		RedisDB:     getEnvIntOrDefault("AGENDA_REDIS_DB", 0),

		JWTSecret: os.Getenv("AGENDA_JWT_SECRET"),
		Issuer:    getEnvOrDefault("AGENDA_ISSUER", "agenda-api"),
		TokenTTL:  getEnvDurationOrDefault("AGENDA_TOKEN_TTL", time.Hour),

		RevokeOnPasswordChange: getEnvBoolOrDefault("AGENDA_REVOKE_ON_PASSWORD_CHANGE", false),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate catches the config mistakes that would otherwise surface as
// confusing runtime failures.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("AGENDA_DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("AGENDA_JWT_SECRET is required")
	}
	return nil
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
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

	// Plain integers are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
