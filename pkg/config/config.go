// Package config holds the application configuration: process-level settings
// read from the environment and the reclassification rule snapshot read from
// a JSON file that an operator (or the companion editor) maintains.
package config

import (
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Log     LogConfig
	Rules   RulesConfig
	Email   EmailConfig
	Workers WorkersConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type RulesConfig struct {
	// Path of the JSON rules file; empty means built-in defaults only.
	Path string
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
	ReplyTo      string
}

type WorkersConfig struct {
	// PoolSize bounds how many attachments are processed concurrently.
	PoolSize int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Rules: RulesConfig{
			Path: getEnv("RECLASOR_RULES_PATH", ""),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("EMAIL_FROM", ""),
			ReplyTo:      getEnv("EMAIL_REPLY_TO", ""),
		},
		Workers: WorkersConfig{
			PoolSize: getEnvAsInt("WORKER_POOL_SIZE", 4),
		},
	}

	if cfg.Workers.PoolSize < 1 {
		cfg.Workers.PoolSize = 1
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
