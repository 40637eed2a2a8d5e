package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	BaseURL         string
	DatabaseType    string
	DatabaseURL     string
	DatabasePath    string
	APIToken        string
	APITokenHash    string
	TemplatesPath   string
	MigrationsPath  string
	StaticPath      string
	BrandPath       string
	SESRegion       string
	SESFromEmail    string
	SESFromName     string
	RateLimitBurst  int
	RateLimitWindow time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseType:    getEnv("DATABASE_TYPE", "sqlite"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DatabasePath:    getEnv("DB_PATH", "./grouplink.db"),
		APIToken:        getEnv("API_TOKEN", ""),
		APITokenHash:    getEnv("API_TOKEN_HASH", ""),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./templates"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		StaticPath:      getEnv("STATIC_PATH", "./static"),
		BrandPath:       getEnv("BRAND_PATH", ""),
		SESRegion:       getEnv("SES_REGION", "us-east-1"),
		SESFromEmail:    getEnv("SES_FROM_EMAIL", ""),
		SESFromName:     getEnv("SES_FROM_NAME", "Grouplink"),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 30),
		RateLimitWindow: time.Minute,
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
