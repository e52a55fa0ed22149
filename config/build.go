package config

import (
	"fmt"

	"github.com/meronrudy/hyperspike/engine"
	"github.com/meronrudy/hyperspike/fixedpoint"
	"github.com/meronrudy/hyperspike/neuron"
	"github.com/meronrudy/hyperspike/plasticity"
)

// BuildEngine constructs an engine.Engine from a validated Config: it
// allocates the wheel at WheelSize, allocates one neuron per
// Topology.Neurons entry (falling back to DefaultThreshold/
// DefaultRefractory when a NeuronSpec leaves Threshold at its zero
// value), wires every Topology.Edges entry, seeds every Topology.Seeds
// entry, applies the configured budgets, and installs STDP plasticity
// when PlasticityEnabled is set.
func BuildEngine(cfg *Config) (*engine.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e, err := engine.New(cfg.WheelSize)
	if err != nil {
		return nil, fmt.Errorf("config: building engine: %w", err)
	}
	e.SetDefaults(cfg.DefaultThreshold, cfg.DefaultRefractory)

	ids := make([]neuron.ID, len(cfg.Topology.Neurons))
	for i, spec := range cfg.Topology.Neurons {
		threshold := spec.Threshold
		refractory := spec.Refractory
		if threshold == 0 {
			threshold = cfg.DefaultThreshold
			refractory = cfg.DefaultRefractory
		}
		id, err := e.AddNeuron(threshold, refractory)
		if err != nil {
			return nil, fmt.Errorf("config: topology.neurons[%d]: %w", i, err)
		}
		ids[i] = id
	}

	for i, spec := range cfg.Topology.Edges {
		sources, err := resolveNeuronIndices(ids, spec.Sources)
		if err != nil {
			return nil, fmt.Errorf("config: topology.edges[%d].sources: %w", i, err)
		}
		targets, err := resolveNeuronIndices(ids, spec.Targets)
		if err != nil {
			return nil, fmt.Errorf("config: topology.edges[%d].targets: %w", i, err)
		}
		if _, err := e.AddEdge(sources, targets, spec.Weight, spec.Delay); err != nil {
			return nil, fmt.Errorf("config: topology.edges[%d]: %w", i, err)
		}
	}

	for i, seed := range cfg.Topology.Seeds {
		if seed.Neuron < 0 || seed.Neuron >= len(ids) {
			return nil, fmt.Errorf("config: topology.seeds[%d]: neuron index %d out of range", i, seed.Neuron)
		}
		if err := e.ScheduleSpike(ids[seed.Neuron], seed.Time); err != nil {
			return nil, fmt.Errorf("config: topology.seeds[%d]: %w", i, err)
		}
	}

	if cfg.BudgetEdgesPerTick > 0 || cfg.BudgetSpikesPerTick > 0 {
		var edges, spikes *int
		if cfg.BudgetEdgesPerTick > 0 {
			v := cfg.BudgetEdgesPerTick
			edges = &v
		}
		if cfg.BudgetSpikesPerTick > 0 {
			v := cfg.BudgetSpikesPerTick
			spikes = &v
		}
		e.SetBudgets(edges, spikes)
	}

	if cfg.PlasticityEnabled {
		e.InstallPlasticity(plasticity.New(plasticity.Params{
			APlus:         fixedpoint.FromFloat(cfg.STDP.APlus),
			AMinus:        fixedpoint.FromFloat(cfg.STDP.AMinus),
			DecayFactor:   fixedpoint.FromFloat(cfg.STDP.DecayFactor),
			PreIncrement:  fixedpoint.FromFloat(cfg.STDP.PreIncrement),
			PostIncrement: fixedpoint.FromFloat(cfg.STDP.PostIncrement),
			WMin:          fixedpoint.FromFloat(cfg.STDP.WMin),
			WMax:          fixedpoint.FromFloat(cfg.STDP.WMax),
		}))
	}

	return e, nil
}

func resolveNeuronIndices(ids []neuron.ID, indices []int) ([]neuron.ID, error) {
	out := make([]neuron.ID, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(ids) {
			return nil, fmt.Errorf("neuron index %d out of range", idx)
		}
		out[i] = ids[idx]
	}
	return out, nil
}
