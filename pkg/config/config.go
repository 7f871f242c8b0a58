package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Timezone the four daily refresh times are anchored to.
	Timezone string

	// Report output
	OutputDir string

	// Optional YAML file overriding the tracked universe.
	UniverseFile string

	// Market data
	FetchTimeout time.Duration

	// Mail
	Mail MailConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// MailConfig holds SMTP configuration for report delivery.
type MailConfig struct {
	To       string
	Server   string
	Port     int
	User     string
	Password string
	Skip     bool // suppress sending entirely (testing)
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port:     getEnv("PORT", "5000"),
		Env:      getEnv("ENV", "development"),
		Timezone: getEnv("TZ", "America/Chicago"),

		OutputDir:    getEnv("OUTPUT_DIR", "output"),
		UniverseFile: getEnv("UNIVERSE_FILE", ""),

		FetchTimeout: getEnvAsDuration("FETCH_TIMEOUT", "10s"),

		Mail: MailConfig{
			To:       getEnv("EMAIL_TO", ""),
			Server:   getEnv("SMTP_SERVER", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			Skip:     getEnvAsBool("SKIP_EMAIL", false),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TZ %q is not a valid timezone: %w", c.Timezone, err)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}

	return nil
}

// Location resolves the configured timezone. validate() already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
