package workload

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/weiihann/callbench/harness"
)

// Config controls batch sizes and the seed of the slow workload.
type Config struct {
	FastIters    int    `yaml:"fast_iters"`
	SlowIters    int    `yaml:"slow_iters"`
	ComputeIters int    `yaml:"compute_iters"`
	Seed         uint64 `yaml:"seed"`
}

// DefaultConfig returns the built-in batch sizes with seed 0.
func DefaultConfig() Config {
	return Config{
		FastIters:    FastIters,
		SlowIters:    SlowIters,
		ComputeIters: ComputeIters,
	}
}

// Validate reports the first non-positive count as a *harness.ConfigError.
func (c Config) Validate() error {
	checks := []struct {
		field string
		value int
	}{
		{"fast_iters", c.FastIters},
		{"slow_iters", c.SlowIters},
		{"compute_iters", c.ComputeIters},
	}

	for _, chk := range checks {
		if chk.value <= 0 {
			return &harness.ConfigError{Field: chk.field, Value: chk.value}
		}
	}

	return nil
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing
// from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
