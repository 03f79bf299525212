package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	FMP FMPConfig
	SEC SECConfig

	// Export
	ExportPath string

	// Scheduler cron expression (with seconds) for the score refresh job.
	RefreshSchedule string

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// FMPConfig holds Financial Modeling Prep API configuration
type FMPConfig struct {
	APIKey    string
	BaseURL   string
	RateLimit float64 // requests per second
}

// SECConfig holds SEC EDGAR scraping configuration.
// FilingURLs maps a ticker to its latest 10-K HTML URL and is consumed by
// the cyber metrics fallback; symbols without an entry simply skip the
// fallback.
type SECConfig struct {
	UserAgent  string
	FilingURLs map[string]string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// External APIs
		FMP: FMPConfig{
			APIKey:    getEnv("FMP_API_KEY", ""),
			BaseURL:   getEnv("FMP_BASE_URL", "https://financialmodelingprep.com/stable"),
			RateLimit: getEnvAsFloat("FMP_RATE_LIMIT", 4.0),
		},

		SEC: SECConfig{
			// SEC requests a contact address in the User-Agent.
			UserAgent:  getEnv("SEC_USER_AGENT", "cyberdash research contact@example.com"),
			FilingURLs: parseFilingURLs(getEnv("SEC_FILING_URLS", "")),
		},

		// Export
		ExportPath: getEnv("EXPORT_PATH", "data/latest_scores.csv"),

		// Weekdays at 17:30 Eastern is after US market close; the default
		// assumes the host runs UTC, hence 22:30.
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "0 30 22 * * 1-5"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	return nil
}

// parseFilingURLs parses "CRWD=https://...,PANW=https://..." into a map.
func parseFilingURLs(raw string) map[string]string {
	urls := make(map[string]string)
	if raw == "" {
		return urls
	}
	for _, pair := range strings.Split(raw, ",") {
		symbol, url, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || symbol == "" || url == "" {
			continue
		}
		urls[strings.ToUpper(symbol)] = url
	}
	return urls
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
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
