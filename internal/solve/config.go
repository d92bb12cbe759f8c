package solve

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// Config is the viewer configuration file.
type Config struct {
	Server         string  `yaml:"server"`            // Base URL of the solve server
	SolvePath      string  `yaml:"solve_path"`        // Path below Server holding the precomputed results
	Definition     string  `yaml:"definition"`        // Name of the definition (used to name downloads)
	FitOffset      float64 `yaml:"fit_offset"`        // Margin multiplier used when zooming to the loaded geometry
	FitOnEveryLoad bool    `yaml:"fit_on_every_load"` // Zoom to every loaded result, not only the first one
	Watch          bool    `yaml:"watch"`             // Subscribe to change notifications from the server
	Inputs         Inputs  `yaml:"inputs"`
}

// DefaultConfig matches a solve server running locally with the default layout.
func DefaultConfig() *Config {
	return &Config{
		Server:     "http://localhost:8080",
		SolvePath:  "ori/solve",
		Definition: "b_ring.gh",
		FitOffset:  3.6,
	}
}

// LoadConfig reads a YAML configuration file, using DefaultConfig for missing fields.
func LoadConfig(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(bs)
}

// ParseConfig see LoadConfig
func ParseConfig(bs []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(bs, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.FitOffset <= 0 {
		return nil, fmt.Errorf("parse config: fit_offset must be positive, got %v", cfg.FitOffset)
	}
	if err := cfg.Inputs.Validate(); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration (including the current input values) as YAML.
func (c *Config) Save(path string) error {
	bs, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0o644)
}
