package config

import (
	"context"
	"errors"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/phpda/analyzer/filter"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by Validate errors
var ErrInvalidConfig = errors.New("invalid config")

// Config represents analysis run settings
type Config struct {
	// Source is a project root URL or local path
	Source string `yaml:"source,omitempty"`
	// Extensions lists unit file extensions
	Extensions []string `yaml:"extensions,omitempty"`
	// Ignore lists directory names excluded from unit discovery
	Ignore []string `yaml:"ignore,omitempty"`
	// Concurrency limits units analyzed in parallel, 0 uses GOMAXPROCS
	Concurrency int `yaml:"concurrency,omitempty"`
	// Filter holds identifier normalization rules
	Filter filter.Options `yaml:"filter,omitempty"`
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	return &Config{
		Source:     ".",
		Extensions: []string{".php"},
		Ignore:     []string{"vendor", ".git"},
	}
}

// Validate checks config
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: source was empty", ErrInvalidConfig)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: extensions were empty", ErrInvalidConfig)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency %d must not be negative", ErrInvalidConfig, c.Concurrency)
	}
	if err := c.Filter.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Load reads YAML config from URL over defaults
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
