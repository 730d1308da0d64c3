package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orderlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadWithoutPath(t *testing.T) {
	t.Setenv(EnvDataPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Setenv(EnvDataPath, "")
	path := writeConfig(t, `
data:
  path: /srv/orders.xlsx
limits:
  spend_top: 20
log:
  level: debug
tracing:
  enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/orders.xlsx", cfg.Data.Path)
	assert.Equal(t, 20, cfg.Limits.SpendTop)
	assert.Equal(t, 5, cfg.Limits.RFMTop, "unset keys keep defaults")
	assert.Equal(t, "BRL", cfg.Currency.Code)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvDataPath, "/tmp/override.csv")
	cfg, err := Load(writeConfig(t, "data:\n  path: /srv/orders.csv\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.csv", cfg.Data.Path)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv(EnvDataPath, "")
	tests := map[string]string{
		"currency": "currency:\n  code: XXXX\n",
		"locale":   "currency:\n  locale: \"not a tag\"\n",
		"limit":    "limits:\n  rfm_top: 0\n",
		"level":    "log:\n  level: verbose\n",
		"addr":     "server:\n  addr: nowhere\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "data: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestEngineOptions(t *testing.T) {
	assert.Len(t, DefaultConfig().EngineOptions(), 4)
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg.Log.Level = level
		assert.Equal(t, want, cfg.SlogLevel(), level)
	}
}
