package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("SERVER_URL", "")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "token", cfg.TelegramAPIToken)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Storage.GameTTL)
	assert.Equal(t, 10*time.Second, cfg.Bot.VerifyTimeout)
	assert.Equal(t, 2*time.Second, cfg.Effects.Celebration)
	assert.Equal(t, 300*time.Millisecond, cfg.Effects.AfterShake)
}

func TestLoadFrom_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
env: production
storage:
  driver: postgres
  game_ttl: 30m
bot:
  verify_timeout: 3s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("DATABASE_URL", "postgres://localhost/crorepati")
	t.Setenv("SERVER_URL", "http://game:8080")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Storage.GameTTL)
	assert.Equal(t, 3*time.Second, cfg.Bot.VerifyTimeout)
	assert.Equal(t, "http://game:8080", cfg.Bot.ServerURL)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/crorepati", dsn)
	assert.NoError(t, cfg.ValidateServer())
}

func TestValidate(t *testing.T) {
	cfg := &Config{Bot: Bot{ServerURL: "http://localhost:8080"}}
	assert.ErrorIs(t, cfg.ValidateBot(), ErrMissingEnvironmentVariables)

	cfg.TelegramAPIToken = "token"
	assert.NoError(t, cfg.ValidateBot())

	cfg.Storage.Driver = DriverRedis
	assert.ErrorIs(t, cfg.ValidateServer(), ErrMissingEnvironmentVariables)

	cfg.Redis.URL = "redis://localhost:6379/0"
	assert.NoError(t, cfg.ValidateServer())

	cfg.Storage.Driver = "sqlite"
	assert.ErrorIs(t, cfg.ValidateServer(), ErrUnknownStorageDriver)

	_, err := DB{}.DSN()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}
