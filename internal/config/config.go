package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Session    SessionConfig
	Geocoder   GeocoderConfig
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
	Timezone    string
}

// AttendanceConfig holds the attendance policy knobs. These are the
// single source of truth for time accounting; no other component may
// re-derive overtime or TOIL with its own constants.
type AttendanceConfig struct {
	StandardHoursPerDay  float64
	WeekendTOILPolicy    string // full_hours | overtime_only
	GPSTimeout           time.Duration
	AutoCheckoutInterval time.Duration
}

// SessionConfig holds the in-process session cache settings.
type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// GeocoderConfig holds the optional reverse-geocoding provider settings.
// An empty BaseURL disables the provider.
type GeocoderConfig struct {
	BaseURL string
	Timeout time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine in containerized deployments.
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
		Name:     getEnv("DB_NAME", "workpulse-hr"),
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
		Timezone:    getEnv("TIMEZONE", "UTC"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy configuration
	standardHours, err := strconv.ParseFloat(getEnv("STANDARD_HOURS_PER_DAY", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STANDARD_HOURS_PER_DAY: %w", err)
	}

	gpsTimeout, err := time.ParseDuration(getEnv("GPS_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GPS_TIMEOUT: %w", err)
	}

	autoCheckoutInterval, err := time.ParseDuration(getEnv("AUTO_CHECKOUT_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_CHECKOUT_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		StandardHoursPerDay:  standardHours,
		WeekendTOILPolicy:    getEnv("WEEKEND_TOIL_POLICY", "full_hours"),
		GPSTimeout:           gpsTimeout,
		AutoCheckoutInterval: autoCheckoutInterval,
	}

	// Session cache configuration
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	sessionCleanup, err := time.ParseDuration(getEnv("SESSION_CLEANUP_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_CLEANUP_INTERVAL: %w", err)
	}

	config.Session = SessionConfig{
		TTL:             sessionTTL,
		CleanupInterval: sessionCleanup,
	}

	// Geocoder configuration
	geocoderTimeout, err := time.ParseDuration(getEnv("GEOCODER_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_TIMEOUT: %w", err)
	}

	config.Geocoder = GeocoderConfig{
		BaseURL: getEnv("GEOCODER_BASE_URL", ""),
		Timeout: geocoderTimeout,
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
	if c.Attendance.StandardHoursPerDay <= 0 || c.Attendance.StandardHoursPerDay > 24 {
		return fmt.Errorf("STANDARD_HOURS_PER_DAY must be between 0 and 24")
	}
	if p := c.Attendance.WeekendTOILPolicy; p != "full_hours" && p != "overtime_only" {
		return fmt.Errorf("WEEKEND_TOIL_POLICY must be one of: full_hours, overtime_only")
	}
	if c.Attendance.GPSTimeout <= 0 {
		return fmt.Errorf("GPS_TIMEOUT must be positive")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.App.Timezone, err)
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

// Location returns the configured local timezone. Validate guarantees
// the name resolves, so the fallback is unreachable after Load.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
