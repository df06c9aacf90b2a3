package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithEnvVars(t *testing.T) {
	os.Setenv("GAMEPEEK_PORT", "9090")
	os.Setenv("GAMEPEEK_DEBUG", "true")
	os.Setenv("GAMEPEEK_DATA_DIR", "/var/lib/gamepeek")
	os.Setenv("GAMEPEEK_STEAM_API_URL", "http://localhost:9001")
	os.Setenv("GAMEPEEK_STEAM_STORE_URL", "http://localhost:9002")
	defer func() {
		os.Unsetenv("GAMEPEEK_PORT")
		os.Unsetenv("GAMEPEEK_DEBUG")
		os.Unsetenv("GAMEPEEK_DATA_DIR")
		os.Unsetenv("GAMEPEEK_STEAM_API_URL")
		os.Unsetenv("GAMEPEEK_STEAM_STORE_URL")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/var/lib/gamepeek", cfg.DataDir)
	assert.Equal(t, "http://localhost:9001", cfg.SteamAPIURL)
	assert.Equal(t, "http://localhost:9002", cfg.SteamStoreURL)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Empty(t, cfg.SteamAPIURL)
	assert.Empty(t, cfg.SteamStoreURL)
}

func TestFilePaths(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/gamepeek"}

	assert.Equal(t, filepath.Join("/tmp/gamepeek", "apps_cache.json"), cfg.CatalogCachePath())
	assert.Equal(t, filepath.Join("/tmp/gamepeek", "search_history.json"), cfg.HistoryPath())
}
