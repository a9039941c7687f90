package domain

import (
	"fmt"
	"slices"
)

// OutputFormat selects how an analysis is rendered.
type OutputFormat string

const (
	OutputTUI      OutputFormat = "tui"
	OutputJSON     OutputFormat = "json"
	OutputMarkdown OutputFormat = "markdown"
	OutputHTML     OutputFormat = "html"
)

// ValidOutputFormats enumerates all recognized output formats.
var ValidOutputFormats = []OutputFormat{
	OutputTUI,
	OutputJSON,
	OutputMarkdown,
	OutputHTML,
}

// DefaultLowestFiles is how many least-covered files renderers list.
const DefaultLowestFiles = 10

// ProjectConfig holds settings loaded from .covscore.yaml.
// Metric weights are fixed and intentionally not part of it.
type ProjectConfig struct {
	Format        OutputFormat    `yaml:"format"         json:"format,omitempty"`
	MinPercentage *float64        `yaml:"min_percentage" json:"min_percentage,omitempty"`
	MinStars      *int            `yaml:"min_stars"      json:"min_stars,omitempty"`
	LowestFiles   *int            `yaml:"lowest_files"   json:"lowest_files,omitempty"`
	Discovery     DiscoveryConfig `yaml:"discovery"      json:"discovery,omitempty"`
}

// DiscoveryConfig tunes how directories are searched for reports.
type DiscoveryConfig struct {
	Exclude []string `yaml:"exclude" json:"exclude,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// EffectiveFormat returns the configured format, falling back to the terminal UI.
func (c ProjectConfig) EffectiveFormat() OutputFormat {
	if c.Format == "" {
		return OutputTUI
	}
	return c.Format
}

// EffectiveLowestFiles returns the configured file count or DefaultLowestFiles.
func (c ProjectConfig) EffectiveLowestFiles() int {
	if c.LowestFiles == nil {
		return DefaultLowestFiles
	}
	return *c.LowestFiles
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Format != "" && !slices.Contains(ValidOutputFormats, c.Format) {
		return fmt.Errorf("unknown format %q (valid: tui, json, markdown, html)", c.Format)
	}

	if c.MinPercentage != nil && (*c.MinPercentage < 0 || *c.MinPercentage > 100) {
		return fmt.Errorf("min_percentage must be between 0 and 100 (got %.2f)", *c.MinPercentage)
	}

	if c.MinStars != nil && (*c.MinStars < 0 || *c.MinStars > MaxStars) {
		return fmt.Errorf("min_stars must be between 0 and %d (got %d)", MaxStars, *c.MinStars)
	}

	if c.LowestFiles != nil && *c.LowestFiles < 0 {
		return fmt.Errorf("lowest_files must be >= 0 (got %d)", *c.LowestFiles)
	}

	for i, ex := range c.Discovery.Exclude {
		if ex == "" {
			return fmt.Errorf("discovery.exclude[%d] must not be empty", i)
		}
	}

	return nil
}

// MaxStars is the top of the star rating scale.
const MaxStars = 5
