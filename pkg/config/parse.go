package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ghasn43/naobio-pro/internal/design"
)

// ParseYAML parses and validates a run configuration document.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate performs configuration-time checks; failures surface before any
// trial runs.
func validate(cfg *Config) error {
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return &design.ConfigurationError{
			Field:  "log_level",
			Reason: fmt.Sprintf("%q is not one of debug, info, warn, error", cfg.LogLevel),
		}
	}

	if err := cfg.Space.Validate(); err != nil {
		return err
	}
	if cfg.Weights != nil {
		if err := cfg.Weights.Validate(); err != nil {
			return err
		}
	}
	if cfg.Constraints != nil {
		if err := cfg.Constraints.Validate(); err != nil {
			return err
		}
	}

	if cfg.Scenario == "" && cfg.Weights == nil {
		return &design.ConfigurationError{
			Field:  "scenario",
			Reason: "either a scenario key or explicit weights must be set",
		}
	}

	// Trial budget is checked by the optimizer as well; failing here keeps
	// the error next to the file that caused it.
	if cfg.Run.Trials != 0 {
		if err := cfg.Options().Validate(); err != nil {
			return err
		}
	}

	return nil
}
