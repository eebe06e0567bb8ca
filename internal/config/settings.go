package config

// Package config manages pipeline settings: built-in defaults, an optional
// YAML file, and value clamping. CLI flags override file values in cmd.

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gsaget/gsa-downloader/internal/classify"
)

// Default values
const (
	DefaultThreads             = 4
	DefaultRetryAttempts       = 3
	DefaultRetryBackoffSeconds = 2
	DefaultHeadless            = true
)

// Thread bounds. The upper bound respects the archive's throttling policy;
// pushing past it gets transfers dropped server-side.
const (
	MinThreads = 1
	MaxThreads = 8
)

// ConventionConfig is one configurable short-read naming convention: a pair
// of regular expressions for forward and reverse read file names.
type ConventionConfig struct {
	Name string `yaml:"name"`
	R1   string `yaml:"r1"`
	R2   string `yaml:"r2"`
}

// Config holds all pipeline settings.
type Config struct {
	InputFile   string `yaml:"input_file"`
	DownloadDir string `yaml:"download_dir"`
	Threads     int    `yaml:"threads"`
	DryRun      bool   `yaml:"dry_run"`
	Headless    bool   `yaml:"headless"`
	Verbose     bool   `yaml:"verbose"`

	RetryAttempts       int `yaml:"retry_attempts"`
	RetryBackoffSeconds int `yaml:"retry_backoff_seconds"`

	// ShortReadConventions override the built-in forward/reverse patterns.
	// Empty means the defaults apply.
	ShortReadConventions []ConventionConfig `yaml:"short_read_conventions"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Threads:             DefaultThreads,
		Headless:            DefaultHeadless,
		RetryAttempts:       DefaultRetryAttempts,
		RetryBackoffSeconds: DefaultRetryBackoffSeconds,
	}
}

// Load reads a YAML settings file over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Clamp()
	return cfg, nil
}

// Clamp forces numeric settings into their supported ranges
func (c *Config) Clamp() {
	if c.Threads < MinThreads {
		c.Threads = MinThreads
	}
	if c.Threads > MaxThreads {
		c.Threads = MaxThreads
	}
	if c.RetryAttempts < 1 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryBackoffSeconds < 0 {
		c.RetryBackoffSeconds = DefaultRetryBackoffSeconds
	}
}

// Validate checks the settings a run cannot proceed without
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input file is required")
	}
	if c.DownloadDir == "" {
		return fmt.Errorf("download directory is required")
	}
	return nil
}

// RetryBackoff returns the backoff unit as a duration
func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffSeconds) * time.Second
}

// Conventions compiles the configured short-read naming conventions, falling
// back to the built-in set when none are configured.
func (c *Config) Conventions() ([]classify.Convention, error) {
	if len(c.ShortReadConventions) == 0 {
		return classify.DefaultConventions(), nil
	}

	out := make([]classify.Convention, 0, len(c.ShortReadConventions))
	for _, cc := range c.ShortReadConventions {
		conv, err := classify.NewConvention(cc.Name, cc.R1, cc.R2)
		if err != nil {
			return nil, err
		}
		out = append(out, conv)
	}
	return out, nil
}
