package katachi

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the construction-time limits of a World. The zero value is
// not usable; start from DefaultConfig or LoadConfig.
type Config struct {
	// MaxEntities bounds the live entity population. Exceeding it is a
	// fatal precondition violation, not a discovered limit.
	MaxEntities int `yaml:"max_entities"`
	// MaxComponentTypes bounds the number of distinct component types that
	// may be registered over the lifetime of the World.
	MaxComponentTypes int `yaml:"max_component_types"`
	// StoreCapacity is the approximate number of bytes reserved when a
	// component store is first created, to reduce initial allocations.
	StoreCapacity int `yaml:"store_capacity"`
	// Paranoia enables extra consistency checks that are too slow for
	// normal use, such as duplicate system instance detection.
	Paranoia bool `yaml:"paranoia"`
}

// DefaultConfig returns the limits used when none are supplied.
func DefaultConfig() Config {
	return Config{
		MaxEntities:       8192,
		MaxComponentTypes: 64,
		StoreCapacity:     1024,
	}
}

// LoadConfig reads a YAML config file, overlaying it on DefaultConfig so
// partial files work.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MaxEntities < 2 || c.MaxEntities > MaxEntities {
		return fmt.Errorf("max_entities must be in [2, %d], got %d", MaxEntities, c.MaxEntities)
	}
	if c.MaxComponentTypes < 1 || c.MaxComponentTypes > maxComponentTypes {
		return fmt.Errorf("max_component_types must be in [1, %d], got %d", maxComponentTypes, c.MaxComponentTypes)
	}
	if c.StoreCapacity < 0 {
		return fmt.Errorf("store_capacity must not be negative, got %d", c.StoreCapacity)
	}
	return nil
}
