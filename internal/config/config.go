// Package config loads the storefront configuration: API base URL, CDN
// base URL and the optional journal path. There is no other environment
// configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full configuration.
type Config struct {
	// APIBaseURL is the storefront backend root (GET /product, POST /order).
	APIBaseURL string `yaml:"api_base_url"`
	// CDNBaseURL prefixes product image references at catalog load time.
	CDNBaseURL string `yaml:"cdn_base_url"`
	// JournalPath, when set, enables the SQLite event journal.
	JournalPath string `yaml:"journal_path"`
}

// Default returns the configuration pointing at the public larek API.
func Default() Config {
	return Config{
		APIBaseURL: "https://larek-api.nomoreparties.co/api/weblarek",
		CDNBaseURL: "https://larek-api.nomoreparties.co/content/weblarek",
	}
}

// Load reads a YAML config file and merges it over the defaults: fields
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("config %s: api_base_url must not be empty", path)
	}
	if cfg.CDNBaseURL == "" {
		return Config{}, fmt.Errorf("config %s: cdn_base_url must not be empty", path)
	}
	return cfg, nil
}
