package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/fairscore/internal/model"
)

// Config holds all runtime configuration for a fairscore run.
type Config struct {
	DSN         string
	FeedPath    string
	LogFormat   string // "text" or "json"
	Parallelism int    // concurrent facility scorers; <=0 means default

	// Markers override the canonical rural/community/critical-access
	// term lists. Empty lists fall back to the defaults.
	Markers model.MarkerSet
}

// DefaultParallelism bounds the scoring fan-out when no override is set.
const DefaultParallelism = 8

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Markers model.MarkerSet `yaml:"markers"`
}

// LoadFromFile reads a YAML config file and merges its values into
// Config. Unknown keys are rejected.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	c.Markers = yc.Markers
	c.ApplyDefaults()
	return c.validateMarkers()
}

// ApplyDefaults fills unset fields with canonical values: default marker
// lists and the default scoring parallelism.
func (c *Config) ApplyDefaults() {
	if len(c.Markers.Rural) == 0 {
		c.Markers.Rural = model.DefaultMarkers.Rural
	}
	if len(c.Markers.Community) == 0 {
		c.Markers.Community = model.DefaultMarkers.Community
	}
	if len(c.Markers.CriticalAccess) == 0 {
		c.Markers.CriticalAccess = model.DefaultMarkers.CriticalAccess
	}
	if c.Parallelism <= 0 {
		c.Parallelism = DefaultParallelism
	}
}

// validateMarkers checks that marker terms are non-blank; terms are
// matched case-insensitively so they are stored lowercased.
func (c *Config) validateMarkers() error {
	for _, list := range [][]string{c.Markers.Rural, c.Markers.Community, c.Markers.CriticalAccess} {
		for i, term := range list {
			trimmed := strings.TrimSpace(term)
			if trimmed == "" {
				return fmt.Errorf("blank marker term in config")
			}
			list[i] = strings.ToLower(trimmed)
		}
	}
	return nil
}

// ValidateFeed checks the fields required by the load command.
func (c *Config) ValidateFeed() error {
	if c.FeedPath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FeedPath); err != nil {
		return fmt.Errorf("feed file not accessible: %w", err)
	}
	return nil
}

// ValidateDSN checks that a database connection string is configured.
func (c *Config) ValidateDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}
