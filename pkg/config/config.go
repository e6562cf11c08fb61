package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/swisspay/swisspay_backend/internal/utils"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	JWTSecret      string
	JWTExpiry      time.Duration
	JWTIssuer      string
	RedisURL       string // empty disables the display-name cache
	MigrationsPath string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_EXPIRY", "24h")
	v.SetDefault("JWT_ISSUER", "swisspay_backend")
	v.SetDefault("MIGRATIONS_PATH", "migrations")

	dbURL := v.GetString("PGSQL_URL")
	if dbURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		generated, err := utils.GenerateSecureRandomString(32)
		if err != nil {
			return nil, err
		}
		jwtSecret = generated
		log.Println("Warning: JWT_SECRET not set. Using an ephemeral secret; issued tokens will not survive a restart.")
	}

	jwtExpiry := v.GetDuration("JWT_EXPIRY")
	if jwtExpiry <= 0 {
		jwtExpiry = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY ('%s'). Defaulting to 24h.\n", v.GetString("JWT_EXPIRY"))
	}

	redisURL := v.GetString("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set. Display-name cache disabled.")
	}

	return &Config{
		DatabaseURL:    dbURL,
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		JWTSecret:      jwtSecret,
		JWTExpiry:      jwtExpiry,
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		RedisURL:       redisURL,
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
	}, nil
}
