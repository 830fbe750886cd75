// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Poll    PollConfig
	KV      KVConfig
	Archive ArchiveConfig
	Log     LogConfig
}

// ServerConfig holds facade server configuration.
type ServerConfig struct {
	Host    string
	Port    int
	GinMode string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig holds backend API client configuration.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PollConfig holds the response poll loop configuration.
type PollConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

// KVConfig holds persistent key-value store configuration.
type KVConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// ArchiveConfig holds the durable archive configuration.
type ArchiveConfig struct {
	Enabled  bool
	URI      string
	Database string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvAsInt("SERVER_PORT", 8090),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8000/api"),
			Timeout: time.Duration(getEnvAsInt("API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Poll: PollConfig{
			Interval:    time.Duration(getEnvAsInt("POLL_INTERVAL_SECONDS", 2)) * time.Second,
			MaxAttempts: getEnvAsInt("POLL_MAX_ATTEMPTS", 15),
		},
		KV: KVConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Archive: ArchiveConfig{
			Enabled:  getEnvAsBool("ARCHIVE_ENABLED", false),
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "agentconsole"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as a boolean with a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
