package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Gemini     GeminiConfig
	App        AppConfig
	Cleanup    CleanupConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds database configuration. A full DSN wins over the
// discrete fields.
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// GeminiConfig holds the language-model API configuration. Enabled follows
// from the presence of an API key.
type GeminiConfig struct {
	APIKey  string
	APIBase string
	Model   string
	Timeout int // seconds, bounds every model call
	Enabled bool
}

// AppConfig holds chatbot-wide settings.
type AppConfig struct {
	// Timezone anchors "hoy", "mañana" and all local midnights.
	Timezone string
}

// CleanupConfig drives the optional in-process purge of past events.
type CleanupConfig struct {
	Schedule   string // cron expression; empty disables the job
	RetainDays int    // only purge events older than this many days
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables, with a .env file as
// optional source.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "eventbot"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			APIBase: getEnv("GEMINI_API_BASE", "https://generativelanguage.googleapis.com/v1beta"),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: getEnvAsInt("GEMINI_TIMEOUT", 30),
			Enabled: getEnv("GEMINI_API_KEY", "") != "",
		},
		App: AppConfig{
			Timezone: getEnv("APP_TIMEZONE", "America/Guayaquil"),
		},
		Cleanup: CleanupConfig{
			Schedule:   getEnv("CLEANUP_SCHEDULE", ""),
			RetainDays: getEnvAsInt("CLEANUP_RETAIN_DAYS", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns the connection string, assembling one from the
// discrete fields when no full DSN was provided.
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
