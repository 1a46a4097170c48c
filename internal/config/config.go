package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Location  *time.Location
	Database  DatabaseConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Dashboard DashboardConfig
	Jobs      JobsConfig
	Seed      SeedConfig
	Twilio    TwilioConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// DashboardConfig holds dashboard configuration
type DashboardConfig struct {
	// SnapshotTx runs every dashboard read in one read-only transaction
	SnapshotTx bool
}

// JobsConfig holds cron schedules
type JobsConfig struct {
	LowStockCron string
}

// RateLimitConfig holds per-IP request budgets for one Window
type RateLimitConfig struct {
	Window  time.Duration
	General int
	Auth    int
	Strict  int
}

// SeedConfig controls demo data seeding
type SeedConfig struct {
	Enabled       bool
	AdminEmail    string
	AdminPassword string
}

// TwilioConfig holds SMS alert configuration
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	AlertTo    string
}

// Enabled reports whether every Twilio setting is present
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != "" && t.AlertTo != ""
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	database, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(getEnv("APP_TIMEZONE", "UTC"))
	location, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: '%s': %w", tz, err)
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "5555"),
		Location:  location,
		Database:  database,
		JWT:       loadJWTConfig(appMode),
		Cookie:    loadCookieConfig(appMode),
		Dashboard: DashboardConfig{SnapshotTx: getBool("DASHBOARD_SNAPSHOT_TX", true)},
		Jobs:      JobsConfig{LowStockCron: getEnv("LOW_STOCK_CRON", "0 7 * * *")},
		Seed: SeedConfig{
			Enabled:       getBool("SEED_DATA", false),
			AdminEmail:    getEnv("ADMIN_EMAIL", "admin@petrol.local"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin123456"),
		},
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
			AlertTo:    os.Getenv("ALERT_TO_NUMBER"),
		},
		RateLimit: RateLimitConfig{
			Window:  time.Minute,
			General: getInt("RATE_LIMIT_GENERAL", 100),
			Auth:    getInt("RATE_LIMIT_AUTH", 5),
			Strict:  getInt("RATE_LIMIT_STRICT", 3),
		},
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s, TZ: %s]", appMode, database.Driver, location)
	return config, nil
}

// modePrefix returns the env prefix for mode specific settings
func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := modePrefix(mode)

	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", DriverMySQL)))
	defaultPort := "3306"
	switch driver {
	case DriverMySQL:
	case DriverPostgres:
		defaultPort = "5432"
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be '%s' or '%s')", driver, DriverMySQL, DriverPostgres)
	}

	return DatabaseConfig{
		Driver:   driver,
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "petrol_tracker"),
		SSLMode:  getEnv(prefix+"DB_SSLMODE", "disable"),
	}, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	return CookieConfig{
		Secure:   getBool(modePrefix(mode)+"COOKIE_SECURE", false),
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBool parses a boolean environment variable, falling back on bad input
func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, strconv.FormatBool(defaultValue))))
	if err != nil {
		log.Printf("⚠️ Invalid %s, using %v", key, defaultValue)
		return defaultValue
	}
	return v
}

// getInt parses a positive integer environment variable, falling back on bad input
func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(strings.TrimSpace(getEnv(key, strconv.Itoa(defaultValue))))
	if err != nil || v <= 0 {
		log.Printf("⚠️ Invalid %s, using %d", key, defaultValue)
		return defaultValue
	}
	return v
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// Now returns the current time in the configured timezone
func (c *Config) Now() time.Time {
	return time.Now().In(c.Location)
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:3000"
	}
	return origins
}
