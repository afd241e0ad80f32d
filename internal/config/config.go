// Package config provides configuration loading for hrdash.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete hrdash configuration.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Server    ServerConfig    `yaml:"server"`
	Increment IncrementConfig `yaml:"increment"`
	// Buckets are the ascending lower bounds of the experience bands.
	// The first edge must be 0; the last band is unbounded above.
	Buckets []float64 `yaml:"buckets"`
}

// DataConfig locates the employee dataset.
type DataConfig struct {
	// Path is the CSV file to load at startup.
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `yaml:"addr"`
}

// IncrementConfig configures the compensation increment simulation.
type IncrementConfig struct {
	// DefaultPercent applies to every record without an override (default 10).
	DefaultPercent float64 `yaml:"default_percent"`
	// ByName overrides the percentage for specific employees.
	ByName map[string]float64 `yaml:"by_name"`
	// ByLocation overrides the percentage for whole locations.
	// A name override wins over a location override.
	ByLocation map[string]float64 `yaml:"by_location"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Data:   DataConfig{Path: "employees.csv"},
		Server: ServerConfig{Addr: ":8080"},
		Increment: IncrementConfig{
			DefaultPercent: 10,
		},
		Buckets: []float64{0, 1, 2, 5, 10, 20},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if len(c.Buckets) == 0 {
		return fmt.Errorf("buckets: at least one edge is required")
	}
	if c.Buckets[0] != 0 {
		return fmt.Errorf("buckets: first edge must be 0, got %g", c.Buckets[0])
	}
	for i := 1; i < len(c.Buckets); i++ {
		if c.Buckets[i] <= c.Buckets[i-1] {
			return fmt.Errorf("buckets: edges must be strictly increasing at %g", c.Buckets[i])
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, layered over defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
