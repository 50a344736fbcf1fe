// Package config provides configuration management for the notifier server.
// It loads settings from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the notifier server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Telegram TelegramConfig
}

// ServerConfig holds webhook HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	PublicURL    string // Base URL advertised in /register replies
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Driver   string // mysql, postgres, sqlite3
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Prefix   string // Table prefix (default: "notifier_")
}

// TelegramConfig holds Bot API configuration.
type TelegramConfig struct {
	BotToken    string
	PollTimeout time.Duration // getUpdates long-poll hold duration
	EnableBot   bool          // Run the command front-end
}

// Load loads configuration from environment variables.
// Follows 12-factor app principles - configuration via environment.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("WEBHOOK_HOST", "0.0.0.0"),
			Port:         getEnvInt("WEBHOOK_PORT", 8080),
			PublicURL:    getEnv("WEBHOOK_PUBLIC_URL", "http://localhost:8080"),
			ReadTimeout:  getEnvDuration("WEBHOOK_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("WEBHOOK_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite3"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 3306),
			User:     getEnv("DB_USER", "notifier"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "notifier.db"),
			Prefix:   getEnv("DB_PREFIX", "notifier_"),
		},
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			PollTimeout: getEnvDuration("TELEGRAM_POLL_TIMEOUT", 25*time.Second),
			EnableBot:   getEnvBool("TELEGRAM_ENABLE_BOT", true),
		},
	}

	// Validate required fields
	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	return cfg, nil
}

// GetDSN returns the database connection string based on driver.
func (c *DatabaseConfig) GetDSN() string {
	switch strings.ToLower(c.Driver) {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			c.User, c.Password, c.Host, c.Port, c.Database)
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Password, c.Database)
	case "sqlite3":
		return c.Database // SQLite uses file path as DSN
	default:
		return ""
	}
}

// getEnv retrieves environment variable or returns default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves environment variable as integer or returns default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool retrieves environment variable as boolean or returns default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvDuration retrieves environment variable as duration or returns default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
