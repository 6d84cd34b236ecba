package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"nightlife-booking-platform/internal/models"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Booking   BookingConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	Env            string
	AllowedOrigins []string
	TrustProxy     bool // Take the client address from X-Forwarded-For / X-Real-IP
}

type DatabaseConfig struct {
	URL      string // Full database URL
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type BookingConfig struct {
	UnitPrice int
	KeyMode   models.KeyMode
}

type RateLimitConfig struct {
	InviteMaxAttempts int
	InviteWindow      time.Duration
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Host:           getEnv("HOST", "localhost"),
			Env:            getEnv("ENV", "development"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:8081", "http://localhost:19006"}),
			TrustProxy:     getEnvAsBool("TRUST_PROXY", false),
		},
		Database: parseDatabaseConfig(),
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
			TTL:    getEnvAsDuration("SESSION_TTL", models.DefaultSessionTTL),
		},
		Booking: BookingConfig{
			UnitPrice: getEnvAsInt("BOOKING_UNIT_PRICE", models.DefaultUnitPrice),
			KeyMode:   models.ParseKeyMode(getEnv("BOOKING_KEY_MODE", string(models.KeyVenueDate))),
		},
		RateLimit: RateLimitConfig{
			InviteMaxAttempts: getEnvAsInt("INVITE_MAX_ATTEMPTS", 5),
			InviteWindow:      getEnvAsDuration("INVITE_WINDOW", 15*time.Minute),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Booking.UnitPrice <= 0 {
		return fmt.Errorf("BOOKING_UNIT_PRICE must be positive, got %d", c.Booking.UnitPrice)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	if c.RateLimit.InviteMaxAttempts <= 0 {
		return fmt.Errorf("INVITE_MAX_ATTEMPTS must be positive, got %d", c.RateLimit.InviteMaxAttempts)
	}
	if c.RateLimit.InviteWindow <= 0 {
		return fmt.Errorf("INVITE_WINDOW must be positive, got %s", c.RateLimit.InviteWindow)
	}
	if c.IsProduction() && c.Session.Secret == "your-secret-key-change-in-production" {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	return nil
}

func parseDatabaseConfig() DatabaseConfig {
	// Check if DATABASE_URL is provided
	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL != "" {
		return parseDatabaseURL(databaseURL)
	}

	// Fall back to individual environment variables
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvAsInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "nightlife"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func parseDatabaseURL(databaseURL string) DatabaseConfig {
	config := DatabaseConfig{
		URL: databaseURL,
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	config.Host = u.Hostname()
	if u.Port() != "" {
		config.Port, _ = strconv.Atoi(u.Port())
	} else {
		config.Port = 5432
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	config.DBName = strings.TrimPrefix(u.Path, "/")

	config.SSLMode = u.Query().Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
