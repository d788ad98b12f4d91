package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Logging  LoggingConfig
	UniFi    UniFiConfig
	SMTP     SMTPConfig
	Engine   EngineConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret         string
	AccessTokenExpiry time.Duration
	BCryptCost        int
	AdminEmail        string
	AdminPassword     string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// UniFiConfig contains UniFi controller connection configuration
type UniFiConfig struct {
	URL       string
	Username  string
	Password  string
	Site      string
	VerifyTLS bool
	Timeout   time.Duration
	IsUDMPro  bool
}

// SMTPConfig contains email transport configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

// EngineConfig contains poller and alert engine configuration
type EngineConfig struct {
	PollSchedule    string // cron expression
	CleanupSchedule string
	AlertRetention  time.Duration
	MetricRetention time.Duration
	EvaluateOnPoll  bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "netpulse"),
			User:            getEnv("DB_USER", "netpulse"),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			Path:            getEnv("DB_PATH", "netpulse.db"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			AccessTokenExpiry: getEnvAsDuration("ACCESS_TOKEN_EXPIRY", 24*time.Hour),
			BCryptCost:        getEnvAsInt("BCRYPT_COST", 12),
			AdminEmail:        getEnv("ADMIN_EMAIL", "admin@localhost"),
			AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		UniFi: UniFiConfig{
			URL:       getEnv("UNIFI_URL", "https://192.168.1.1"),
			Username:  getEnv("UNIFI_USERNAME", ""),
			Password:  getEnv("UNIFI_PASSWORD", ""),
			Site:      getEnv("UNIFI_SITE", "default"),
			VerifyTLS: getEnvAsBool("UNIFI_VERIFY_TLS", false),
			Timeout:   getEnvAsDuration("UNIFI_TIMEOUT", 30*time.Second),
			IsUDMPro:  getEnvAsBool("UNIFI_IS_UDM_PRO", false),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "netpulse@localhost"),
			UseTLS:   getEnvAsBool("SMTP_USE_TLS", true),
		},
		Engine: EngineConfig{
			PollSchedule:    getEnv("POLL_SCHEDULE", "*/5 * * * *"),
			CleanupSchedule: getEnv("CLEANUP_SCHEDULE", "0 3 * * *"),
			AlertRetention:  getEnvAsDuration("ALERT_RETENTION", 90*24*time.Hour),
			MetricRetention: getEnvAsDuration("METRIC_RETENTION", 30*24*time.Hour),
			EvaluateOnPoll:  getEnvAsBool("EVALUATE_ON_POLL", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == "supersecretkey" {
		return fmt.Errorf("JWT_SECRET must be set and should not use default value in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
