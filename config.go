package dinebench

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks a configuration that must be rejected before any
// agent starts.
var ErrInvalidConfig = errors.New("invalid configuration")

// MaxAgents bounds the table size accepted by Validate.
const MaxAgents = 27

// Config controls one simulation run. It is read-only once the run starts
// and shared by every agent.
type Config struct {
	Agents       int           `yaml:"agents" json:"agents"`
	Think        Range         `yaml:"think" json:"think"`
	Dine         Range         `yaml:"dine" json:"dine"`
	Distribution Distribution  `yaml:"distribution" json:"distribution"`
	Cycles       int           `yaml:"cycles" json:"cycles"`
	Backoff      time.Duration `yaml:"backoff,omitempty" json:"backoff,omitempty"` // Pause after putting resources down
	Seed         uint64        `yaml:"seed,omitempty" json:"seed,omitempty"`       // 0 picks a random seed
}

// DefaultConfig returns a small five-agent table.
func DefaultConfig() Config {
	return Config{
		Agents:       5,
		Think:        Range{Min: 10, Max: 50},
		Dine:         Range{Min: 10, Max: 50},
		Distribution: Uniform,
		Cycles:       3,
	}
}

// Validate rejects counts and ranges the simulation cannot run with.
func (c Config) Validate() error {
	if c.Agents < 1 || c.Agents > MaxAgents {
		return fmt.Errorf("%w: agent count must be in [1, %d], got %d", ErrInvalidConfig, MaxAgents, c.Agents)
	}
	if err := c.Think.validate("think"); err != nil {
		return err
	}
	if err := c.Dine.validate("dine"); err != nil {
		return err
	}
	if !c.Distribution.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDistribution, c.Distribution)
	}
	if c.Cycles <= 0 {
		return fmt.Errorf("%w: cycles per agent must be positive, got %d", ErrInvalidConfig, c.Cycles)
	}
	if c.Backoff < 0 {
		return fmt.Errorf("%w: backoff must not be negative, got %v", ErrInvalidConfig, c.Backoff)
	}
	return nil
}

// LoadConfig reads a YAML config file, filling unset fields from
// DefaultConfig. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
