package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Driver       string // sqlite or postgres
	DBPath       string // SQLite data file
	DatabaseURL  string // PostgreSQL connection string
	Currency     string // ISO code used when displaying amounts
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	JWTSecret         string // Empty disables API authentication
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string

	StorageRetryAttempts int
}

// DefaultDBPath returns ~/.ft/ft_database.db, or a path relative to the working
// directory when the home directory cannot be resolved.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".ft", "ft_database.db")
	}
	return filepath.Join(home, ".ft", "ft_database.db")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("LEDGER_DRIVER", DriverSQLite)
	v.SetDefault("LEDGER_DB_PATH", DefaultDBPath())
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("LEDGER_CURRENCY", "USD")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "financial-tracker")
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("STORAGE_RETRY_ATTEMPTS", 3)
	v.AutomaticEnv()

	cfg := &Config{
		Driver:               strings.ToLower(strings.TrimSpace(v.GetString("LEDGER_DRIVER"))),
		DBPath:               v.GetString("LEDGER_DB_PATH"),
		DatabaseURL:          v.GetString("PGSQL_URL"),
		Currency:             strings.ToUpper(v.GetString("LEDGER_CURRENCY")),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		RateLimit:            v.GetString("RATE_LIMIT"),
		StorageRetryAttempts: v.GetInt("STORAGE_RETRY_ATTEMPTS"),
	}

	switch cfg.Driver {
	case DriverSQLite:
		if cfg.DBPath == "" {
			cfg.DBPath = DefaultDBPath()
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when LEDGER_DRIVER is %q", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported LEDGER_DRIVER %q (want %q or %q)", cfg.Driver, DriverSQLite, DriverPostgres)
	}

	if money.GetCurrency(cfg.Currency) == nil {
		return nil, fmt.Errorf("invalid LEDGER_CURRENCY %q: not an ISO 4217 code", cfg.Currency)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v.GetString("LOG_LEVEL"), err)
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	expiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DURATION %q: %w", jwtExpiryStr, err)
	}
	cfg.JWTExpiryDuration = expiry

	if cfg.StorageRetryAttempts < 0 {
		cfg.StorageRetryAttempts = 0
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
