package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// DefaultCashAccountID seeds legacy-type resolution for "cash" when a
	// deployment has several cash drawers.
	DefaultCashAccountID string

	RedisURL      string
	StockCacheTTL time.Duration

	// RateLimit is a limiter format string like "120-M".
	RateLimit string

	CORSAllowOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "stockledger-backend")
	viper.SetDefault("DEFAULT_CASH_ACCOUNT_ID", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("STOCK_CACHE_TTL", "30s")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", []string{"*"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.DefaultCashAccountID = viper.GetString("DEFAULT_CASH_ACCOUNT_ID")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	stockTTLStr := viper.GetString("STOCK_CACHE_TTL")
	stockTTL, err := time.ParseDuration(stockTTLStr)
	if err != nil {
		stockTTL = 30 * time.Second
		if stockTTLStr != "" {
			log.Printf("Warning: Invalid value for STOCK_CACHE_TTL ('%s'). Defaulting to %s.\n", stockTTLStr, stockTTL.String())
		}
	}
	cfg.StockCacheTTL = stockTTL

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowOrigins = viper.GetStringSlice("CORS_ALLOW_ORIGINS")

	return cfg, nil
}
