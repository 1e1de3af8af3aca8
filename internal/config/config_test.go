package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "PORT", "PREVIEW_STORE", "MINIO_ENDPOINT", "CONFIG_FILE", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingAPIKeyIsFatal(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, PreviewStoreMemory, cfg.PreviewStore)
	assert.Equal(t, 1024, cfg.SessionCapacity)
	assert.Equal(t, "joke-previews", cfg.Minio.Bucket)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_APIKeyAlias(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Gemini.APIKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("PORT", ":9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
session_capacity: 8
preview_store: minio
minio:
  endpoint: localhost:9000
  access_key: joke
  secret_key: joke123
`), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.SessionCapacity)
	assert.Equal(t, PreviewStoreMinio, cfg.PreviewStore)
	assert.Equal(t, "localhost:9000", cfg.Minio.Endpoint)
	assert.Equal(t, "joke-previews", cfg.Minio.Bucket)
}

func TestValidate_PreviewStore(t *testing.T) {
	cfg := &Config{PreviewStore: "s3", Gemini: GeminiConfig{APIKey: "k"}}
	assert.Error(t, cfg.Validate())

	cfg.PreviewStore = PreviewStoreMinio
	assert.Error(t, cfg.Validate())

	cfg.Minio.Endpoint = "localhost:9000"
	assert.NoError(t, cfg.Validate())
}
