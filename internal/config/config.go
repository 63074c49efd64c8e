// Package config loads and validates the application's hierarchical YAML
// configuration, following the defaults-then-override pattern common to
// the rest of the stack: start from DefaultConfig and overlay the file on
// disk, expanding $VAR / ${VAR} references in the file from the
// environment first. Environment variables do not override settings
// directly.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StorageConfig holds the storage settings. Only BaseDir is read by the
// rest of the system (as the root passed to storage.NewHandler).
// FileFormats and SaveFileFormats are loaded and saved with the config, but
// internal/storage does not read them: it uses fixed names
// (tournament_<id>, season_<id>, <n>_full.gob, <n>_part.gob,
// <n>_consensus.gob, golden.gob).
type StorageConfig struct {
	BaseDir         string            `yaml:"base_dir"`
	FileFormats     map[string]string `yaml:"file_formats"`
	SaveFileFormats map[string]string `yaml:"save_file_formats"`
}

// QualityConfig controls which components are compared and which fields
// are excluded from structural equality per component (internal/quality).
type QualityConfig struct {
	ActiveComponents      []string            `yaml:"active_components"`
	ComparatorExclusions  map[string][]string `yaml:"comparator_exclusions"`
}

// ScraperConfig controls worker-pool sizing, the upstream "completed"
// status code, and the retry acceptance threshold (internal/scraping,
// internal/quality).
type ScraperConfig struct {
	MaxWorkers            int     `yaml:"max_workers"`
	CompletedStatusCode   int     `yaml:"completed_status_code"`
	RetrySuccessThreshold float64 `yaml:"retry_success_threshold"`
}

// LinksConfig holds the URL templates for every upstream endpoint the
// fetcher hits. Templates use `{tournamentID}`, `{seasonID}`, `{match_id}`
// placeholders substituted by internal/scraping.
type LinksConfig struct {
	EventsSeason string `yaml:"events_season"`
	BaseMatch    string `yaml:"base_match"`
	Stats        string `yaml:"stats"`
	Lineup       string `yaml:"lineup"`
	Incidents    string `yaml:"incidents"`
	Graph        string `yaml:"graph"`
}

// Config is the top-level application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Quality QualityConfig `yaml:"quality"`
	Scraper ScraperConfig `yaml:"scraper"`
	Links   LinksConfig   `yaml:"links"`
}

// DefaultConfig returns the documented defaults; Load overlays a config
// file (with environment references in it expanded) on top of this.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			BaseDir: "./data",
			FileFormats: map[string]string{
				"tournament": "tournament_%d",
				"season":     "season_%d",
			},
			SaveFileFormats: map[string]string{
				"run_full":  "%d_full_%s",
				"run_part":  "%d_part_%s",
				"consensus": "consensus_%d_%s",
			},
		},
		Quality: QualityConfig{
			ActiveComponents: []string{"base", "stats", "lineup", "incidents", "graph"},
			ComparatorExclusions: map[string][]string{
				"base":      {"scraped_at"},
				"stats":     {"scraped_at"},
				"lineup":    {"scraped_at"},
				"incidents": {"scraped_at"},
				"graph":     {"scraped_at"},
			},
		},
		Scraper: ScraperConfig{
			MaxWorkers:            5,
			CompletedStatusCode:   100,
			RetrySuccessThreshold: 0.5,
		},
		Links: LinksConfig{
			EventsSeason: "https://example.invalid/api/tournament/{tournamentID}/season/{seasonID}/events",
			BaseMatch:    "https://example.invalid/api/event/{match_id}",
			Stats:        "https://example.invalid/api/event/{match_id}/statistics",
			Lineup:       "https://example.invalid/api/event/{match_id}/lineups",
			Incidents:    "https://example.invalid/api/event/{match_id}/incidents",
			Graph:        "https://example.invalid/api/event/{match_id}/graph",
		},
	}
}

// Load reads cfg from path, starting from DefaultConfig and overlaying
// whatever the file sets. A missing file is not an error - the defaults
// stand alone, matching how a freshly checked-out repo is expected to run.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for config %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks the invariants the rest of the system assumes hold:
// positive worker count, a retry threshold in [0, 1], and a non-empty
// component list.
func (c *Config) Validate() error {
	if c.Scraper.MaxWorkers <= 0 {
		return fmt.Errorf("scraper.max_workers must be positive, got %d", c.Scraper.MaxWorkers)
	}
	if c.Scraper.RetrySuccessThreshold < 0 || c.Scraper.RetrySuccessThreshold > 1 {
		return fmt.Errorf("scraper.retry_success_threshold must be in [0,1], got %v", c.Scraper.RetrySuccessThreshold)
	}
	if len(c.Quality.ActiveComponents) == 0 {
		return fmt.Errorf("quality.active_components must not be empty")
	}
	if c.Storage.BaseDir == "" {
		return fmt.Errorf("storage.base_dir must not be empty")
	}
	return nil
}
