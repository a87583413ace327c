package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "recipes", cfg.DBName)
	assert.Equal(t, "unit-test-secret", cfg.JWTSecret)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadConfigMissingJWTSecret(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SECRETS_DIR", t.TempDir())

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestSecretFileFallback(t *testing.T) {
	secretsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "jwt_secret"), []byte("from-file\n"), 0o600))

	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SECRETS_DIR", secretsDir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
}

func TestValidateS3NeedsRegion(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("S3_BUCKET_NAME", "recipebox-media")
	t.Setenv("AWS_REGION", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
