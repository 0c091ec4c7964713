package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	UseMemoryStore bool
	Port           string
	IsProduction   bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limit applied to the money-moving endpoints, in ulule/limiter
	// formatted notation ("30-M" = 30 per minute).
	TransferRateLimit string

	// Payment gateway credentials.
	AlzajilBaseURL   string
	AlzajilAgentUser string
	AlzajilToken     string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("USE_MEMORY_STORE", false)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "saifi-backend")
	viper.SetDefault("TRANSFER_RATE_LIMIT", "30-M")
	viper.SetDefault("ALZAJIL_BASE_URL", "")
	viper.SetDefault("ALZAJIL_AGENT_USER", "")
	viper.SetDefault("ALZAJIL_TOKEN", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.UseMemoryStore = viper.GetBool("USE_MEMORY_STORE")
	if cfg.DatabaseURL == "" && !cfg.UseMemoryStore {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.TransferRateLimit = viper.GetString("TRANSFER_RATE_LIMIT")

	cfg.AlzajilBaseURL = viper.GetString("ALZAJIL_BASE_URL")
	cfg.AlzajilAgentUser = viper.GetString("ALZAJIL_AGENT_USER")
	cfg.AlzajilToken = viper.GetString("ALZAJIL_TOKEN")
	if cfg.AlzajilBaseURL == "" {
		log.Println("Warning: ALZAJIL_BASE_URL not set. Gateway withdrawals will not function.")
	}

	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
