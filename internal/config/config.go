package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	App      AppConfig
	Cache    CacheConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	// DataUpdateKey gates destructive routes (DELETE on users/bets).
	// When unset, an ephemeral key is generated per process.
	DataUpdateKey string

	// BetExpiryDays voids unresolved bets older than this many days.
	// Zero disables the expiry sweep.
	BetExpiryDays int
}

// CacheConfig holds redis settings for the derived-view cache
type CacheConfig struct {
	// RedisAddr enables caching of /data/graph and /data/events when set.
	RedisAddr  string
	TTLSeconds int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "shot_ledger"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
		},
		App: AppConfig{
			DataUpdateKey: getEnv("DATA_UPDATE_KEY", ""),
			BetExpiryDays: getEnvInt("BET_EXPIRY_DAYS", 0),
		},
		Cache: CacheConfig{
			RedisAddr:  getEnv("REDIS_ADDR", ""),
			TTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 60),
		},
	}

	if config.App.BetExpiryDays < 0 {
		return nil, fmt.Errorf("BET_EXPIRY_DAYS must not be negative")
	}

	if config.App.DataUpdateKey == "" {
		config.App.DataUpdateKey = uuid.NewString()
		log.Printf("[Config] DATA_UPDATE_KEY not set, generated ephemeral key: %s", config.App.DataUpdateKey)
	}

	return config, nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable with a fallback default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
