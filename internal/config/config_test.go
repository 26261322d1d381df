package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("API_KEY", "fake-key")
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("MAX_REQUEST_BYTES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fake-key", cfg.LLM.APIKey)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.False(t, cfg.MinIO.Enabled())
	assert.Equal(t, "/tmp/out", cfg.Files.OutputDir)
	assert.Equal(t, "unique", cfg.Files.Strategy)
	assert.Equal(t, int64(1024), cfg.Files.MaxUploadBytes)
	assert.Equal(t, int64(128<<20), cfg.Files.MaxRequestBytes)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, cfg)
}

func TestLoad_GeminiKeyFallback(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", cfg.LLM.APIKey)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvInt64(t *testing.T) {
	key := "TEST_INT64_VAR"

	os.Setenv(key, "8589934592")
	assert.Equal(t, int64(8589934592), getEnvInt64(key, 0))

	os.Setenv(key, "nope")
	assert.Equal(t, int64(7), getEnvInt64(key, 7))

	os.Unsetenv(key)
}
