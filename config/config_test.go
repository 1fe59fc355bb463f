package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("fails without an API key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GEMINI_API_KEY_FILE", "")

		cfg, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
	})

	t.Run("loads defaults with a key set", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-api-key")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "test-api-key", cfg.GeminiAPIKey)
		assert.True(t, cfg.TextModel.SchemaEnforced)
		assert.False(t, cfg.ImageModel.SchemaEnforced)
		assert.Equal(t, 2200.0, cfg.Goal.Calories)
		assert.Equal(t, 30, cfg.RateLimit)
		assert.Equal(t, time.Hour, cfg.RateLimitWindow)
		assert.False(t, cfg.RedisEnabled())
	})

	t.Run("reads the key from a secret file", func(t *testing.T) {
		keyFile := filepath.Join(t.TempDir(), "gemini_api_key")
		require.NoError(t, os.WriteFile(keyFile, []byte(" file-key \n"), 0o600))
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GEMINI_API_KEY_FILE", keyFile)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.GeminiAPIKey)
	})

	t.Run("rejects an empty secret file", func(t *testing.T) {
		keyFile := filepath.Join(t.TempDir(), "gemini_api_key")
		require.NoError(t, os.WriteFile(keyFile, []byte("  \n"), 0o600))
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GEMINI_API_KEY_FILE", keyFile)

		_, err := LoadConfig()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "API key file is empty")
	})

	t.Run("honors modality overrides", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-api-key")
		t.Setenv("GEMINI_TEXT_MODEL", "other-text-model")
		t.Setenv("GEMINI_TEXT_SCHEMA_ENFORCED", "false")
		t.Setenv("GEMINI_IMAGE_SCHEMA_ENFORCED", "true")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "other-text-model", cfg.TextModel.Model)
		assert.False(t, cfg.TextModel.SchemaEnforced)
		assert.True(t, cfg.ImageModel.SchemaEnforced)
	})

	t.Run("rejects a non-positive goal", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-api-key")
		t.Setenv("GOAL_CALORIES", "-100")

		_, err := LoadConfig()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "goal calories must be positive")
	})

	t.Run("builds the redis address", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-api-key")
		t.Setenv("REDIS_HOST", "redis")
		t.Setenv("REDIS_PORT", "6380")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.True(t, cfg.RedisEnabled())
		assert.Equal(t, "redis:6380", cfg.RedisAddr())
	})
}
