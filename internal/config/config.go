// Package config provides unified configuration loading for neuroprint.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/0nch41n/neuroprint/internal/constants"
)

// Config contains all neuroprint configuration settings.
type Config struct {
	// Engine contains settings for the simulation engine.
	Engine EngineConfig `json:"engine" yaml:"engine"`

	// Plasticity contains settings for STDP learning.
	Plasticity PlasticityConfig `json:"plasticity" yaml:"plasticity"`

	// Store contains settings for durable state.
	Store StoreConfig `json:"store" yaml:"store"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// EngineConfig configures simulation behavior.
type EngineConfig struct {
	// StepsPerMemory is the number of simulation steps per ProcessMemory
	// call. Default: 10.
	StepsPerMemory int `json:"steps_per_memory" yaml:"steps_per_memory"`

	// Seed seeds the randomness provider used for hidden-layer type
	// assignment and random synapse initialization. A fixed seed makes
	// runs reproducible.
	Seed int64 `json:"seed" yaml:"seed"`
}

// PlasticityConfig configures STDP learning.
type PlasticityConfig struct {
	// TimeConstantSteps is the decay time constant in steps. Default: 5.
	TimeConstantSteps int `json:"time_constant_steps" yaml:"time_constant_steps"`

	// MaxRecentSpikes is the STDP window over the global spike log.
	// Default: 50.
	MaxRecentSpikes int `json:"max_recent_spikes" yaml:"max_recent_spikes"`
}

// StoreConfig configures durable state.
type StoreConfig struct {
	// Backend selects the store implementation: "sqlite" (default) or
	// "memory" (no persistence across invocations).
	Backend string `json:"backend" yaml:"backend"`
}

// LoggingConfig configures neuroprint's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables step tracing to .neuroprint/trace.jsonl.
	// "trace" additionally includes per-spike events.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			StepsPerMemory: constants.StepsPerMemory,
			Seed:           1,
		},
		Plasticity: PlasticityConfig{
			TimeConstantSteps: constants.PlasticityTimeConstant,
			MaxRecentSpikes:   constants.MaxRecentSpikes,
		},
		Store: StoreConfig{
			Backend: "sqlite",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment
/// variables. Order: defaults -> ~/.neuroprint/config.yaml -> environment.
func Load() (*Config, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".neuroprint", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Engine.StepsPerMemory <= 0 {
		return fmt.Errorf("steps_per_memory must be positive, got %d", c.Engine.StepsPerMemory)
	}

	if c.Plasticity.TimeConstantSteps <= 0 {
		return fmt.Errorf("time_constant_steps must be positive, got %d", c.Plasticity.TimeConstantSteps)
	}

	if c.Plasticity.MaxRecentSpikes <= 0 || c.Plasticity.MaxRecentSpikes > constants.MaxSpikeLog {
		return fmt.Errorf("max_recent_spikes must be in [1, %d], got %d",
			constants.MaxSpikeLog, c.Plasticity.MaxRecentSpikes)
	}

	validBackends := map[string]bool{"": true, "sqlite": true, "memory": true}
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("invalid store backend: %s (valid: sqlite, memory, or empty for default)", c.Store.Backend)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("NEUROPRINT_STEPS_PER_MEMORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.StepsPerMemory = n
		}
	}

	if v := os.Getenv("NEUROPRINT_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Engine.Seed = n
		}
	}

	if v := os.Getenv("NEUROPRINT_STORE"); v != "" {
		config.Store.Backend = v
	}

	if v := os.Getenv("NEUROPRINT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
