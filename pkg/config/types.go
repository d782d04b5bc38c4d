package config

import (
	"github.com/ghasn43/naobio-pro/internal/design"
	"github.com/ghasn43/naobio-pro/internal/optimize"
)

// Config is the run configuration file: which scenario to use (or custom
// weights), the design space to search, and the run settings.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// Scenario selects a preset by key. Leave empty to use Weights and
	// Constraints directly.
	Scenario string `yaml:"scenario,omitempty"`

	Space       design.Space        `yaml:"space"`
	Weights     *design.Weights     `yaml:"weights,omitempty"`
	Constraints *design.Constraints `yaml:"constraints,omitempty"`

	Run RunSettings `yaml:"run"`
}

// RunSettings holds the trial budget and seed for a run.
type RunSettings struct {
	Trials int   `yaml:"trials"`
	Seed   int64 `yaml:"seed"`
	TopK   int   `yaml:"top_k,omitempty"`
}

// ResolvedWeights returns the configured weights, or the defaults when the
// file relies on a scenario preset.
func (c *Config) ResolvedWeights() design.Weights {
	if c.Weights != nil {
		return *c.Weights
	}
	return design.DefaultWeights()
}

// ResolvedConstraints returns the configured constraints, empty when none
// were declared.
func (c *Config) ResolvedConstraints() design.Constraints {
	if c.Constraints != nil {
		return *c.Constraints
	}
	return design.Constraints{}
}

// Options converts the run settings to optimizer options.
func (c *Config) Options() optimize.Options {
	return optimize.Options{
		Trials: c.Run.Trials,
		Seed:   c.Run.Seed,
		TopK:   c.Run.TopK,
	}
}
