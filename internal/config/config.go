package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	Sweep       SweepConfig
	PayrollFeed PayrollFeedConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// SweepConfig holds auto-closure sweep configuration
type SweepConfig struct {
	Interval           time.Duration
	MaxSessionDuration time.Duration
	DeviceLogRetention time.Duration
}

// PayrollFeedConfig holds the outbound payroll provider connection.
// The feed is optional: when Enabled is false the rest may stay empty.
type PayrollFeedConfig struct {
	Enabled      bool
	TokenURL     string
	ClientID     string
	ClientSecret string
	FeedURL      string
}

func Load() (*Config, error) {
	// .env is optional; deployments normally use the process environment
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "labortrack"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Sweep configuration
	sweepInterval, err := time.ParseDuration(getEnv("SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}

	maxSession, err := time.ParseDuration(getEnv("MAX_SESSION_DURATION", "8h"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_SESSION_DURATION: %w", err)
	}

	retention, err := time.ParseDuration(getEnv("DEVICE_LOG_RETENTION", "2160h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_LOG_RETENTION: %w", err)
	}

	config.Sweep = SweepConfig{
		Interval:           sweepInterval,
		MaxSessionDuration: maxSession,
		DeviceLogRetention: retention,
	}

	// Payroll feed configuration
	config.PayrollFeed = PayrollFeedConfig{
		Enabled:      getEnv("PAYROLL_FEED_ENABLED", "false") == "true",
		TokenURL:     getEnv("PAYROLL_FEED_TOKEN_URL", ""),
		ClientID:     getEnv("PAYROLL_FEED_CLIENT_ID", ""),
		ClientSecret: getEnv("PAYROLL_FEED_CLIENT_SECRET", ""),
		FeedURL:      getEnv("PAYROLL_FEED_URL", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Sweep.Interval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive")
	}
	if c.Sweep.MaxSessionDuration <= 0 {
		return fmt.Errorf("MAX_SESSION_DURATION must be positive")
	}
	if c.PayrollFeed.Enabled {
		if c.PayrollFeed.TokenURL == "" {
			return fmt.Errorf("PAYROLL_FEED_TOKEN_URL is required when the payroll feed is enabled")
		}
		if c.PayrollFeed.ClientID == "" {
			return fmt.Errorf("PAYROLL_FEED_CLIENT_ID is required when the payroll feed is enabled")
		}
		if c.PayrollFeed.ClientSecret == "" {
			return fmt.Errorf("PAYROLL_FEED_CLIENT_SECRET is required when the payroll feed is enabled")
		}
		if c.PayrollFeed.FeedURL == "" {
			return fmt.Errorf("PAYROLL_FEED_URL is required when the payroll feed is enabled")
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
