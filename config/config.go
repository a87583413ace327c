package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Image storage configuration. When S3Bucket is empty, images are
	// kept on local disk under MediaDir.
	S3Bucket     string
	AWSRegion    string
	MediaDir     string
	MediaBaseURL string
}

// LoadConfig creates a Config from environment variables, falling back to
// Docker secrets for sensitive values outside CI.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnvOrSecret("DB_USER", "db_user"),
		DBPassword: getEnvOrSecret("DB_PASSWORD", "db_password"),
		DBName:     getEnv("DB_NAME", "recipebox"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrSecret("REDIS_PASSWORD", "redis_password"),
		RedisDB:       0,
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: getEnvOrSecret("JWT_SECRET", "jwt_secret"),

		S3Bucket:     os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:    os.Getenv("AWS_REGION"),
		MediaDir:     getEnv("MEDIA_DIR", "media"),
		MediaBaseURL: getEnv("MEDIA_BASE_URL", "/media"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv reads an environment variable with a default.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvOrSecret prefers the environment variable and falls back to a
// Docker secret file of the given name.
func getEnvOrSecret(envKey, secretName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
