package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.Equal(t, ObjectStoreMemory, cfg.ObjectStoreType)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStoreType)
	assert.Equal(t, 24*time.Hour, cfg.SessionDuration)
	assert.Equal(t, 5*time.Minute, cfg.UserCacheTTL)
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SESSION_DURATION", "1h")
	t.Setenv("SHARE_BASE_URL", "https://photos.example/shared")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, time.Hour, cfg.SessionDuration)
	assert.Equal(t, "https://photos.example/shared", cfg.ShareBaseURL)
}

func TestInvalidDurationIsIgnored(t *testing.T) {
	t.Setenv("SESSION_DURATION", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.SessionDuration)
}

func TestValidatePostgresRequiresDSNs(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_DATABASE_DSN")

	t.Setenv("APP_DATABASE_DSN", "postgres://app@localhost/courtshot")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_DATABASE_DSN")

	t.Setenv("AUTH_DATABASE_DSN", "postgres://auth@localhost/accounts")
	_, err = Load()
	require.NoError(t, err)
}

func TestValidateS3RequiresCredentials(t *testing.T) {
	t.Setenv("OBJECT_STORE_TYPE", "s3")
	t.Setenv("S3_BUCKET", "courtshot-photos")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_ACCESS_KEY")

	t.Setenv("S3_ACCESS_KEY", "AKIA")
	t.Setenv("S3_SECRET_KEY", "shhh")
	_, err = Load()
	require.NoError(t, err)
}

func TestValidateRejectsUnknownBackends(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_TYPE")
}

func TestValidateSessionStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_URL", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv()
	cfg.RedisURL = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}
