package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration carries everything the
// current environment needs to start.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_NAME":     cfg.DBName,
		"JWT_SECRET":  cfg.JWTSecret,
	}
	for field, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("required configuration %s is not set", field))
		}
	}

	// Database credentials are optional only in test, where sqlite is used.
	if GetEnvironment() != Test {
		if cfg.DBUser == "" {
			errors = append(errors, "db_user secret or DB_USER is required")
		}
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret or DB_PASSWORD is required")
		}
	}

	if cfg.S3Bucket != "" && cfg.AWSRegion == "" {
		errors = append(errors, "AWS_REGION is required when S3_BUCKET_NAME is set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
