package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// External account service
	AccountServiceBaseURL string
	AccountServiceTimeout time.Duration

	// Rate limiting, ulule/limiter formatted rate (e.g. "100-M")
	RateLimit string

	// CORS
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ACCOUNT_SERVICE_BASE_URL", "http://localhost:8082")
	viper.SetDefault("ACCOUNT_SERVICE_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.AccountServiceBaseURL = strings.TrimRight(viper.GetString("ACCOUNT_SERVICE_BASE_URL"), "/")
	if cfg.AccountServiceBaseURL == "" {
		cfg.AccountServiceBaseURL = "http://localhost:8082"
		log.Printf("Warning: ACCOUNT_SERVICE_BASE_URL not set. Defaulting to %s.\n", cfg.AccountServiceBaseURL)
	}

	timeoutStr := viper.GetString("ACCOUNT_SERVICE_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		log.Printf("Warning: Invalid value for ACCOUNT_SERVICE_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout.String())
	}
	cfg.AccountServiceTimeout = timeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.CORSAllowedOrigins = strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",")

	return cfg, nil
}
