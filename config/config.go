/*
Package config loads engine and host configuration from three layers,
applied in order: built-in defaults, an optional YAML file, then
environment variable overrides.
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// STDPParams mirrors plasticity.Params with YAML tags and real-valued
// fields, so a config file can express them without fixed-point literals.
type STDPParams struct {
	APlus         float64 `yaml:"aPlus"`
	AMinus        float64 `yaml:"aMinus"`
	DecayFactor   float64 `yaml:"decayFactor"`
	PreIncrement  float64 `yaml:"preIncrement"`
	PostIncrement float64 `yaml:"postIncrement"`
	WMin          float64 `yaml:"wMin"`
	WMax          float64 `yaml:"wMax"`
}

// NeuronSpec describes one neuron to allocate when building an engine
// from a topology file.
type NeuronSpec struct {
	Threshold  float64 `yaml:"threshold"`
	Refractory uint    `yaml:"refractory"`
}

// EdgeSpec describes one hyperedge to allocate when building an engine
// from a topology file. Sources and Targets are indices into the
// Topology.Neurons slice.
type EdgeSpec struct {
	Sources []int   `yaml:"sources"`
	Targets []int   `yaml:"targets"`
	Weight  float64 `yaml:"weight"`
	Delay   uint64  `yaml:"delay"`
}

// SeedSpec schedules one spike event before the engine's first Step.
type SeedSpec struct {
	Neuron int    `yaml:"neuron"`
	Time   uint64 `yaml:"time"`
}

// Topology describes the network to build: neurons, hyperedges, and
// the initial spikes to seed. It lives under the "topology:" key of a
// host config file.
type Topology struct {
	Neurons []NeuronSpec `yaml:"neurons"`
	Edges   []EdgeSpec   `yaml:"edges"`
	Seeds   []SeedSpec   `yaml:"seeds"`
}

// Config is the full set of engine and host settings: wheel size,
// neuron defaults, per-tick budgets, and plasticity configuration.
type Config struct {
	WheelSize           uint64     `yaml:"wheelSize"`
	DefaultThreshold    float64    `yaml:"defaultThreshold"`
	DefaultRefractory   uint       `yaml:"defaultRefractory"`
	BudgetEdgesPerTick  int        `yaml:"budgetEdgesPerTick"`  // 0 means unlimited
	BudgetSpikesPerTick int        `yaml:"budgetSpikesPerTick"` // 0 means unlimited
	PlasticityEnabled   bool       `yaml:"plasticityEnabled"`
	STDP                STDPParams `yaml:"stdp"`
	Topology            Topology   `yaml:"topology"`
}

// Default returns a Config populated with unlimited budgets, threshold
// 1.0, plasticity off, and the STDP defaults from
// plasticity.DefaultParams expressed as real-valued literals.
func Default() *Config {
	return &Config{
		WheelSize:           1024,
		DefaultThreshold:    1.0,
		DefaultRefractory:   0,
		BudgetEdgesPerTick:  0,
		BudgetSpikesPerTick: 0,
		PlasticityEnabled:   false,
		STDP: STDPParams{
			APlus:         0.01,
			AMinus:        0.01,
			DecayFactor:   0.9,
			PreIncrement:  1.0,
			PostIncrement: 1.0,
			WMin:          0.0,
			WMax:          2.0,
		},
	}
}

// FromFile reads a YAML config file and merges it on top of Default.
// Fields absent from the file retain their defaults.
func FromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv applies environment variable overrides on top of cfg. If cfg
// is nil, Default is used first. Recognized variables, all optional:
//
//	HYPERSPIKE_WHEEL_SIZE → WheelSize
//	BUDGET_EDGES          → BudgetEdgesPerTick
//	BUDGET_SPIKES         → BudgetSpikesPerTick
//	PLASTICITY            → PlasticityEnabled ("true"/"false"/"1"/"0")
func FromEnv(cfg *Config) *Config {
	if cfg == nil {
		cfg = Default()
	}
	setEnvUint64("HYPERSPIKE_WHEEL_SIZE", &cfg.WheelSize)
	setEnvInt("BUDGET_EDGES", &cfg.BudgetEdgesPerTick)
	setEnvInt("BUDGET_SPIKES", &cfg.BudgetSpikesPerTick)
	setEnvBool("PLASTICITY", &cfg.PlasticityEnabled)
	return cfg
}

// Load implements the full three-level hierarchy: defaults, then an
// optional YAML file at path (skipped when path is empty), then
// environment variable overrides. The caller should call Validate on
// the result before building an engine from it.
func Load(path string) (*Config, error) {
	var cfg *Config
	var err error

	if path != "" {
		cfg, err = FromFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = Default()
	}

	cfg = FromEnv(cfg)
	return cfg, nil
}

// Validate checks positive wheel size, positive threshold, and
// non-negative budgets. It returns ErrInvalidConfig wrapping a
// descriptive cause on the first violation.
func (c *Config) Validate() error {
	if c.WheelSize < 1 {
		return fmt.Errorf("%w: wheelSize must be >= 1, got %d", ErrInvalidConfig, c.WheelSize)
	}
	if c.DefaultThreshold <= 0 {
		return fmt.Errorf("%w: defaultThreshold must be > 0, got %f", ErrInvalidConfig, c.DefaultThreshold)
	}
	if c.BudgetEdgesPerTick < 0 {
		return fmt.Errorf("%w: budgetEdgesPerTick must be >= 0, got %d", ErrInvalidConfig, c.BudgetEdgesPerTick)
	}
	if c.BudgetSpikesPerTick < 0 {
		return fmt.Errorf("%w: budgetSpikesPerTick must be >= 0, got %d", ErrInvalidConfig, c.BudgetSpikesPerTick)
	}
	for i, e := range c.Topology.Edges {
		if len(e.Sources) == 0 || len(e.Targets) == 0 {
			return fmt.Errorf("%w: topology.edges[%d] must have non-empty sources and targets", ErrInvalidConfig, i)
		}
		if e.Delay < 1 || e.Delay >= c.WheelSize {
			return fmt.Errorf("%w: topology.edges[%d].delay must satisfy 1 <= delay < wheelSize", ErrInvalidConfig, i)
		}
	}
	return nil
}

func setEnvUint64(key string, target *uint64) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			*target = n
		}
	}
}

func setEnvInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func setEnvBool(key string, target *bool) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}
