// Package config loads the horaire-ets configuration from YAML with
// environment-variable overrides (HORAIRE_* takes highest priority).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	herrors "github.com/antoinebou12/horaire-ets/internal/errors"
)

// Duration wraps time.Duration so YAML values like "10s" or "24h"
// decode with time.ParseDuration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the complete horaire-ets configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Host is the bind address (default: 0.0.0.0).
	Host string `yaml:"host"`
	// Port is the HTTP listen port (default: 8080).
	Port int `yaml:"port"`
	// ReadTimeout bounds request reads.
	ReadTimeout Duration `yaml:"read_timeout"`
	// WriteTimeout bounds response writes.
	WriteTimeout Duration `yaml:"write_timeout"`
}

// DataConfig configures where the catalogue comes from.
type DataConfig struct {
	// Path is a JSON file holding the course catalogue. When set, the file
	// is loaded at boot and watched for changes.
	Path string `yaml:"path"`
	// DatabasePath is the SQLite catalogue cache. Empty disables caching.
	DatabasePath string `yaml:"database_path"`
	// ScrapeURL is the catalogue base URL for the scraper. Empty disables
	// scraping.
	ScrapeURL string `yaml:"scrape_url"`
	// ScrapeInterval is how often the scraper refreshes (default: 24h).
	ScrapeInterval Duration `yaml:"scrape_interval"`
	// Programmes limits which programme catalogues the scraper fetches.
	// Empty means all known programmes.
	Programmes []string `yaml:"programmes"`
	// ScrapeWorkers bounds concurrent catalogue fetches (default: 4).
	ScrapeWorkers int `yaml:"scrape_workers"`
}

// SearchConfig configures the search surfaces.
type SearchConfig struct {
	// MaxSearchLimit caps the limit query parameter (default: 100).
	MaxSearchLimit int `yaml:"max_search_limit"`
	// MaxAutocompleteLimit caps autocomplete limits (default: 50).
	MaxAutocompleteLimit int `yaml:"max_autocomplete_limit"`
	// DefaultLimit applies when the caller omits one (default: 20).
	DefaultLimit int `yaml:"default_limit"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"`
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  Duration(10 * time.Second),
			WriteTimeout: Duration(30 * time.Second),
		},
		Data: DataConfig{
			Path:           "",
			DatabasePath:   defaultDatabasePath(),
			ScrapeURL:      "https://www.etsmtl.ca/etudes/cours/",
			ScrapeInterval: Duration(24 * time.Hour),
			ScrapeWorkers:  4,
		},
		Search: SearchConfig{
			MaxSearchLimit:       100,
			MaxAutocompleteLimit: 50,
			DefaultLimit:         20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the given path, falling back to defaults
// when the path is empty, then applies environment overrides and
// validates. A path naming a file that does not exist is an error
// (ErrCodeConfigNotFound).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, herrors.New(herrors.ErrCodeConfigNotFound,
					fmt.Sprintf("config file not found: %s", path), err)
			}
			return nil, herrors.Wrap(herrors.ErrCodeConfigInvalid, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, herrors.New(herrors.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid config YAML: %v", err), err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return herrors.ConfigError(fmt.Sprintf("server.port out of range: %d", c.Server.Port), nil)
	}
	if c.Search.MaxSearchLimit < 1 {
		return herrors.ConfigError("search.max_search_limit must be >= 1", nil)
	}
	if c.Search.MaxAutocompleteLimit < 1 {
		return herrors.ConfigError("search.max_autocomplete_limit must be >= 1", nil)
	}
	if c.Search.DefaultLimit < 1 {
		return herrors.ConfigError("search.default_limit must be >= 1", nil)
	}
	if c.Data.ScrapeWorkers < 1 {
		c.Data.ScrapeWorkers = 1
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// applyEnvOverrides applies HORAIRE_* environment variables on top of the
// file configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HORAIRE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HORAIRE_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("HORAIRE_DATA_PATH"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv("HORAIRE_DATABASE_PATH"); v != "" {
		cfg.Data.DatabasePath = v
	}
	if v := os.Getenv("HORAIRE_SCRAPE_URL"); v != "" {
		cfg.Data.ScrapeURL = v
	}
	if v := os.Getenv("HORAIRE_PROGRAMMES"); v != "" {
		cfg.Data.Programmes = splitList(v)
	}
	if v := os.Getenv("HORAIRE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".horaire-ets", "courses.db")
	}
	return filepath.Join(home, ".horaire-ets", "courses.db")
}
