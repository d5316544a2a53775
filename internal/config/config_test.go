package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolateHome(t)

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, filepath.Join(home, ".mission-control", "mission-control.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(home, ".mission-control", "agents.toml"), cfg.RosterPath)
	assert.Equal(t, "https://api.scosta.io/sessions", cfg.Upstream.URL)
	assert.Equal(t, "upstream/token", cfg.Upstream.TokenRef)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Ingest.RecencyWindow)
	assert.Equal(t, int64(1_000_000), cfg.Ingest.DefaultContextTokens)
	assert.Equal(t, 80.0, cfg.Ingest.AlertThreshold)
	assert.Equal(t, domain.AlertEveryCycle, cfg.Ingest.AlertPolicy)
	assert.Zero(t, cfg.CollectInterval)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadReadsConfigFileAndEnvironment(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".mission-control")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
listen = "0.0.0.0:9090"

[ingest]
recency_window = "5m"
alert_threshold = 90
alert_policy = "on_crossing"

[collect]
interval = "30s"
`), 0o600))
	t.Setenv("MC_API_KEY", "env-key")
	t.Setenv("MC_LOG_LEVEL", "debug")

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Listen)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 5*time.Minute, cfg.Ingest.RecencyWindow)
	assert.Equal(t, 90.0, cfg.Ingest.AlertThreshold)
	assert.Equal(t, domain.AlertOnCrossing, cfg.Ingest.AlertPolicy)
	assert.Equal(t, 30*time.Second, cfg.CollectInterval)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)

	assert.Equal(t, domain.NormalizerConfig{RecencyWindow: 5 * time.Minute, DefaultContextTokens: 1_000_000}, cfg.NormalizerConfig())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "policy", env: map[string]string{"MC_INGEST_ALERT_POLICY": "hourly"}, wantErr: "unsupported alert policy"},
		{name: "log level", env: map[string]string{"MC_LOG_LEVEL": "chatty"}, wantErr: "invalid log.level"},
		{name: "threshold", env: map[string]string{"MC_INGEST_ALERT_THRESHOLD": "0"}, wantErr: "ingest.alert_threshold must be positive"},
		{name: "context default", env: map[string]string{"MC_INGEST_DEFAULT_CONTEXT_TOKENS": "-1"}, wantErr: "ingest.default_context_tokens must be positive"},
		{name: "collect interval", env: map[string]string{"MC_COLLECT_INTERVAL": "-1s"}, wantErr: "collect.interval must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			v, err := New("")
			require.NoError(t, err)
			_, err = Load(v)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadExplicitConfigFileMustExist(t *testing.T) {
	isolateHome(t)

	v, err := New(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	_, err = Load(v)
	assert.ErrorContains(t, err, "read config file")
}
