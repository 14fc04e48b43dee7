package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Redis     RedisConfig
	Defaults  DefaultsConfig
	Retention RetentionConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	// Migrate applies the embedded schema migrations at startup.
	Migrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Version        string
	AllowedOrigins []string
}

// RedisConfig enables cross-instance change notification. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// DefaultsConfig seeds the system settings row the first time the service starts.
type DefaultsConfig struct {
	StartHour        int
	EndHour          int
	GlobalHourlyRate decimal.Decimal
	AdminPassword    string
}

// RetentionConfig controls action log pruning.
type RetentionConfig struct {
	ActionLogKeep int
	PruneInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{}
	var err error

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMigrate, err := strconv.ParseBool(getEnv("DB_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIGRATE: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shiftpay"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		Migrate:  dbMigrate,
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		Channel:  getEnv("REDIS_CHANNEL", "shiftpay:events"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Version:        getEnv("APP_VERSION", "dev"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Settings seed
	startHour, err := strconv.Atoi(getEnv("DEFAULT_START_HOUR", "13"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_START_HOUR: %w", err)
	}
	endHour, err := strconv.Atoi(getEnv("DEFAULT_END_HOUR", "22"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_END_HOUR: %w", err)
	}
	rate, err := decimal.NewFromString(getEnv("DEFAULT_HOURLY_RATE", "15000"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_HOURLY_RATE: %w", err)
	}

	config.Defaults = DefaultsConfig{
		StartHour:        startHour,
		EndHour:          endHour,
		GlobalHourlyRate: rate,
		AdminPassword:    getEnv("ADMIN_INITIAL_PASSWORD", ""),
	}

	// Action log retention
	keep, err := strconv.Atoi(getEnv("ACTION_LOG_KEEP", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACTION_LOG_KEEP: %w", err)
	}
	pruneInterval, err := time.ParseDuration(getEnv("ACTION_LOG_PRUNE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACTION_LOG_PRUNE_INTERVAL: %w", err)
	}

	config.Retention = RetentionConfig{
		ActionLogKeep: keep,
		PruneInterval: pruneInterval,
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
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if c.Defaults.AdminPassword == "" {
		return fmt.Errorf("ADMIN_INITIAL_PASSWORD is required")
	}
	if c.Defaults.StartHour < 0 || c.Defaults.StartHour > 23 || c.Defaults.EndHour < 0 || c.Defaults.EndHour > 23 {
		return fmt.Errorf("DEFAULT_START_HOUR and DEFAULT_END_HOUR must be between 0 and 23")
	}
	if c.Defaults.StartHour >= c.Defaults.EndHour {
		return fmt.Errorf("DEFAULT_START_HOUR must be before DEFAULT_END_HOUR")
	}
	if c.Defaults.GlobalHourlyRate.IsNegative() {
		return fmt.Errorf("DEFAULT_HOURLY_RATE must not be negative")
	}
	if c.Retention.ActionLogKeep < 1 {
		return fmt.Errorf("ACTION_LOG_KEEP must be at least 1")
	}
	if c.Retention.PruneInterval <= 0 {
		return fmt.Errorf("ACTION_LOG_PRUNE_INTERVAL must be positive")
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

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
