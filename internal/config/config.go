package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	EncKey    string
	Database  DatabaseConfig
	SkuVault  SkuVaultConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// SkuVaultConfig holds upstream API and sync scheduling configuration
type SkuVaultConfig struct {
	BaseURL string
	// Minutes between scheduled fleet syncs; <= 0 disables the scheduler
	SyncInterval int
	// Max customers synced concurrently by the fleet driver
	SyncWorkers int
	// Minutes before a single customer's sync is cancelled
	CustomerTimeout int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3001"),
		JWTSecret: jwtSecret,
		EncKey:    os.Getenv("ENC_KEY"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "whoptix"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		SkuVault: SkuVaultConfig{
			BaseURL:         os.Getenv("SKUVAULT_URL"),
			SyncInterval:    getEnvInt("SKUVAULT_SYNC_INTERVAL", 15),
			SyncWorkers:     getEnvInt("SKUVAULT_SYNC_WORKERS", 4),
			CustomerTimeout: getEnvInt("SKUVAULT_CUSTOMER_TIMEOUT", 10),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
