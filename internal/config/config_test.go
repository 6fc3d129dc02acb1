package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "jwt_secret: test-secret\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.APIPort)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "data/opsdesk.db", cfg.DatabasePath)
	assert.Equal(t, 24*time.Hour, cfg.TokenDuration)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, "data/documents", cfg.StorageLocalDir)
	assert.Equal(t, 5.0, cfg.LoginRateLimit)
	assert.Equal(t, 10, cfg.LoginRateBurst)
	assert.NotEmpty(t, cfg.CORSOrigins)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	path := writeConfig(t, "api_port: 9000\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoadConfigExplicitValues(t *testing.T) {
	path := writeConfig(t, `
jwt_secret: test-secret
api_port: 9000
database_type: postgres
database_name: opsdesk
database_user: opsdesk
token_duration: 1h
storage_backend: s3
s3_bucket: opsdesk-docs
s3_region: us-east-1
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.APIPort)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, "localhost", cfg.DatabaseHost, "postgres host defaults")
	assert.Equal(t, "5432", cfg.DatabasePort)
	assert.Equal(t, "disable", cfg.DatabaseSSLMode)
	assert.Equal(t, time.Hour, cfg.TokenDuration)
	assert.Equal(t, "s3", cfg.StorageBackend)
	assert.Equal(t, "opsdesk-docs", cfg.S3Bucket)
}
