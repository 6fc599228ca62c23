package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	APIKey      string // API key for bot-facing endpoints

	SigningSecret string        // symmetric secret for state tokens
	StateTokenTTL time.Duration // how long a link URL stays valid

	Github        OAuthProvider
	Stackexchange OAuthProvider
}

// OAuthProvider holds per-provider OAuth2 credentials
type OAuthProvider struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Key          string // extra app key, only used by stackexchange
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "techstruck"),
		APIKey:      getEnv("API_KEY", ""),

		SigningSecret: getEnv("SIGNING_SECRET", ""),

		Github: OAuthProvider{
			ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
			ClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("GITHUB_REDIRECT_URI", ""),
		},
		Stackexchange: OAuthProvider{
			ClientID:     getEnv("STACKEXCHANGE_CLIENT_ID", ""),
			ClientSecret: getEnv("STACKEXCHANGE_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("STACKEXCHANGE_REDIRECT_URI", ""),
			Key:          getEnv("STACKEXCHANGE_KEY", ""),
		},
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	ttlStr := getEnv("STATE_TOKEN_TTL_SECONDS", strconv.Itoa(DefaultStateTokenTTLSeconds))
	ttl, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STATE_TOKEN_TTL_SECONDS value: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("STATE_TOKEN_TTL_SECONDS must be positive")
	}
	cfg.StateTokenTTL = time.Duration(ttl) * time.Second

	// Validate required secrets
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.SigningSecret == "" {
		return nil, fmt.Errorf("SIGNING_SECRET environment variable must be set for state tokens")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
