package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	// DataDir holds the two JSON cache files.
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// Base URLs are overridable for tests and proxies; empty values
	// fall back to the public Steam endpoints.
	SteamAPIURL   string `envconfig:"STEAM_API_URL"`
	SteamStoreURL string `envconfig:"STEAM_STORE_URL"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("GAMEPEEK", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// CatalogCachePath is the on-disk location of the catalog snapshot.
func (c *Config) CatalogCachePath() string {
	return filepath.Join(c.DataDir, "apps_cache.json")
}

// HistoryPath is the on-disk location of the history log.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "search_history.json")
}
