package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "weekend.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "*/5 * * * *", cfg.RetryCron)
	require.Equal(t, 500, cfg.DebounceMillis)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadNormalizesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekend.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: Asia/Tokyo\nlog_level: noisy\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Asia/Tokyo", cfg.Timezone)
	require.Equal(t, "INFO", cfg.LogLevel)
	require.NotEmpty(t, cfg.DataDir)
	require.Equal(t, filepath.Join(cfg.DataDir, "cache"), cfg.CacheDir())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekend.yaml")
	cfg := DefaultConfig()
	cfg.Timezone = "America/New_York"
	cfg.Remote = RemoteConfig{BaseURL: "https://api.example.com", APIKey: "anon-key"}

	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "America/New_York", got.Timezone)
	require.Equal(t, "https://api.example.com", got.Remote.BaseURL)
}
