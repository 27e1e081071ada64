package config

import (
	"fmt"
	"kumpisahko/internal/logging"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// API contains API server configuration
	API APIConfig
	// Auth contains admin authentication configuration
	Auth AuthConfig
	// Database contains database configuration
	Database DatabaseConfig
	// Logging contains structured logger configuration
	Logging logging.Config
	// Pricing contains cost calculation settings
	Pricing PricingConfig
	// RateLimit contains per-client rate limiting settings
	RateLimit RateLimitConfig
}

// RateLimitConfig contains per-client rate limiting settings
type RateLimitConfig struct {
	Requests int // Number of requests allowed per window
	Window   int // Time window in seconds
	Burst    int // Maximum burst size
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname
	Host string
	// Port is the database server port
	Port int
	// User is the database username
	User string
	// Password is the database password
	Password string
	// DBName is the database name
	DBName string
	// SSLMode is the SSL mode for the database connection
	SSLMode string
	// MigrationsPath is the path to database migrations
	MigrationsPath string
}

// APIConfig contains API server settings
type APIConfig struct {
	// Port is the server port to listen on
	Port string
	// MaxConsumptionEntries caps the intervals accepted by one cost calculation
	MaxConsumptionEntries int
}

// AuthConfig contains admin authentication settings
type AuthConfig struct {
	// JWTSecret is the secret key used to sign JWT tokens
	JWTSecret string
	// JWTExpiration is the token lifetime in hours
	JWTExpiration int
	// AdminPasswordHash is the bcrypt hash of the admin password. Token issuing is disabled when empty.
	AdminPasswordHash string
}

// PricingConfig contains cost calculation settings
type PricingConfig struct {
	// LookupTimeout bounds the price store query of a single calculation
	LookupTimeout time.Duration
}

// LoadFromEnv retrieves configuration from environment variables and validates it
func (c *Config) LoadFromEnv() error {
	c.ReadEnv()
	return c.Validate()
}

// ReadEnv fills the configuration from environment variables without validating it
func (c *Config) ReadEnv() {
	c.API = APIConfig{
		Port:                  getEnvOrDefault("API_PORT", "8080"),
		MaxConsumptionEntries: getEnvAsInt("API_MAX_CONSUMPTION_ENTRIES", 100000),
	}
	c.Database = DatabaseConfig{
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvAsInt("DB_PORT", 5432),
		User:           getEnvOrDefault("DB_USER", "postgres"),
		Password:       getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:         getEnvOrDefault("DB_NAME", "kumpisahko"),
		SSLMode:        getEnvOrDefault("DB_SSL_MODE", "disable"),
		MigrationsPath: getEnvOrDefault("DB_MIGRATIONS_PATH", "migrations"),
	}
	c.Auth = AuthConfig{
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiration:     getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
	c.Logging = logging.Config{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "json"),
		Caller: getEnvAsBool("LOG_CALLER", false),
	}
	c.Pricing = PricingConfig{
		LookupTimeout: getEnvAsDuration("PRICE_LOOKUP_TIMEOUT", 10*time.Second),
	}

	c.RateLimit = RateLimitConfig{
		Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 1000),
		Window:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		Burst:    getEnvAsInt("RATE_LIMIT_BURST", 50),
	}
}

// Validate performs basic sanity checks on the configuration values
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be greater than zero")
	}
	if c.API.MaxConsumptionEntries <= 0 {
		return fmt.Errorf("API_MAX_CONSUMPTION_ENTRIES must be greater than zero")
	}
	if c.Pricing.LookupTimeout <= 0 {
		return fmt.Errorf("PRICE_LOOKUP_TIMEOUT must be greater than zero")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be greater than zero")
	}
	return nil
}

// getEnvAsInt retrieves an environment variable and converts it to an integer
func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvAsBool retrieves an environment variable and converts it to a boolean
func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
