package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Catalog settings (Deezer, optionally through a RapidAPI proxy)
	Catalog CatalogConfig `koanf:"catalog"`

	// Search behavior
	Search SearchConfig `koanf:"search"`

	// Player behavior
	Player PlayerConfig `koanf:"player"`

	// Icon style: "nerd", "unicode", or "none"
	Icons string `koanf:"icons"`
}

// IconStyle returns the configured icon style with a default applied.
func (c *Config) IconStyle() string {
	if c.Icons == "" {
		return "unicode"
	}
	return c.Icons
}

// CatalogConfig holds the Deezer catalog configuration.
type CatalogConfig struct {
	BaseURL       string `koanf:"base_url"`        // proxy base, e.g. "https://deezerdevs-deezer.p.rapidapi.com"
	PublicBaseURL string `koanf:"public_base_url"` // public API used for artist endpoints
	APIKey        string `koanf:"api_key"`         // RapidAPI key
	APIHost       string `koanf:"api_host"`        // RapidAPI host header
}

// SearchConfig holds search and suggestion tuning.
type SearchConfig struct {
	DebounceMs      int `koanf:"debounce_ms"`       // quiet period before a search fires (default: 400)
	SuggestionLimit int `koanf:"suggestion_limit"`  // max suggestions per seed track (default: 12)
	CacheTTLMinutes int `koanf:"cache_ttl_minutes"` // catalog/suggestion cache TTL (default: 30)
}

// PlayerConfig holds playback tuning.
type PlayerConfig struct {
	VolumeStep float64 `koanf:"volume_step"` // volume increment per keypress (default: 0.1)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Catalog.BaseURL = strings.TrimSuffix(cfg.Catalog.BaseURL, "/")
	cfg.Catalog.PublicBaseURL = strings.TrimSuffix(cfg.Catalog.PublicBaseURL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/whitehole/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "whitehole", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// HasProxyConfig returns true if a RapidAPI proxy is configured. Without
// it only the public artist endpoints are reachable.
func (c *Config) HasProxyConfig() bool {
	return c.Catalog.HasProxyConfig()
}

// HasProxyConfig returns true if a RapidAPI proxy is configured.
func (c CatalogConfig) HasProxyConfig() bool {
	return c.APIKey != "" && c.APIHost != ""
}

// GetCatalogConfig returns the catalog configuration with defaults
// applied.
func (c *Config) GetCatalogConfig() CatalogConfig {
	cfg := c.Catalog

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://deezerdevs-deezer.p.rapidapi.com"
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "https://api.deezer.com"
	}
	if cfg.APIHost == "" && cfg.APIKey != "" {
		cfg.APIHost = "deezerdevs-deezer.p.rapidapi.com"
	}

	return cfg
}

// GetSearchConfig returns the search configuration with defaults applied.
func (c *Config) GetSearchConfig() SearchConfig {
	cfg := c.Search

	if cfg.DebounceMs <= 0 {
		cfg.DebounceMs = 400
	}
	if cfg.SuggestionLimit <= 0 {
		cfg.SuggestionLimit = 12
	}
	if cfg.CacheTTLMinutes <= 0 {
		cfg.CacheTTLMinutes = 30
	}

	return cfg
}

// GetPlayerConfig returns the player configuration with defaults applied.
func (c *Config) GetPlayerConfig() PlayerConfig {
	cfg := c.Player

	if cfg.VolumeStep <= 0 || cfg.VolumeStep > 0.5 {
		cfg.VolumeStep = 0.1
	}

	return cfg
}
