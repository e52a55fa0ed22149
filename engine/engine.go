/*
=================================================================================
RUNTIME ENGINE - THE STEP PROCEDURE
=================================================================================

Package engine ties together the four leaf components — fixedpoint,
wheel, neuron, hypergraph — and the optional plasticity hook into a
single-threaded, deterministic runtime. Neurons are driven synchronously
over a time wheel rather than concurrently over goroutines and channels.

A Step call is atomic from the caller's perspective: it never suspends
mid-tick, there are no goroutines, and there is no shared mutable state
across threads. A host wrapping an Engine in concurrent access is
responsible for its own mutual exclusion — the engine provides none.
=================================================================================
*/
package engine

import (
	"github.com/meronrudy/hyperspike/fixedpoint"
	"github.com/meronrudy/hyperspike/hypergraph"
	"github.com/meronrudy/hyperspike/neuron"
	"github.com/meronrudy/hyperspike/plasticity"
	"github.com/meronrudy/hyperspike/wheel"
)

// Engine owns every piece of simulation state: neurons, the hypergraph,
// the time wheel, an optional plasticity hook, and the active budgets.
type Engine struct {
	neurons    []*neuron.Neuron
	graph      *hypergraph.Hypergraph
	wheel      *wheel.Wheel
	plasticity plasticity.Hook

	budget      Budget
	diagnostics Diagnostics

	defaultThreshold  fixedpoint.Fixed
	defaultRefractory uint
}

// New constructs an Engine with a time wheel of the given size (the
// bounded horizon W). wheelSize must be >= 1.
func New(wheelSize uint64) (*Engine, error) {
	if wheelSize < 1 {
		return nil, ErrInvalidWheelSize
	}
	return &Engine{
		graph:            hypergraph.New(wheelSize),
		wheel:            wheel.New(wheelSize),
		plasticity:       plasticity.NoOp{},
		defaultThreshold: fixedpoint.FromFloat(1.0),
	}, nil
}

// AddNeuron allocates a new neuron with the given real-valued threshold
// and refractory period (ticks), returning its id. thresholdReal must be
// > 0.
func (e *Engine) AddNeuron(thresholdReal float64, refractoryTicks uint) (neuron.ID, error) {
	threshold := fixedpoint.FromFloat(thresholdReal)
	if fixedpoint.Cmp(threshold, fixedpoint.Zero) <= 0 {
		return -1, ErrInvalidThreshold
	}
	id := neuron.ID(len(e.neurons))
	e.neurons = append(e.neurons, neuron.New(id, threshold, refractoryTicks))
	return id, nil
}

// SetDefaults configures the threshold and refractory period used by
// AddNeuronWithDefaults.
func (e *Engine) SetDefaults(thresholdReal float64, refractoryTicks uint) {
	e.defaultThreshold = fixedpoint.FromFloat(thresholdReal)
	e.defaultRefractory = refractoryTicks
}

// AddNeuronWithDefaults allocates a new neuron using the engine's
// configured default threshold and refractory period.
func (e *Engine) AddNeuronWithDefaults() neuron.ID {
	id := neuron.ID(len(e.neurons))
	e.neurons = append(e.neurons, neuron.New(id, e.defaultThreshold, e.defaultRefractory))
	return id
}

// neuronExists adapts the engine's neuron array to hypergraph.NeuronExists.
func (e *Engine) neuronExists(id hypergraph.NeuronID) bool {
	return id >= 0 && int(id) < len(e.neurons)
}

// AddEdge validates and inserts a hyperedge: sources and targets are
// non-empty, non-negative neuron ids that must already exist; delay must
// satisfy 1 <= delay < wheel_size.
func (e *Engine) AddEdge(sources, targets []neuron.ID, weightReal float64, delay uint64) (hypergraph.EdgeID, error) {
	srcIDs := toNeuronIDs(sources)
	tgtIDs := toNeuronIDs(targets)
	weight := fixedpoint.FromFloat(weightReal)
	return e.graph.AddEdge(srcIDs, tgtIDs, weight, delay, e.neuronExists)
}

func toNeuronIDs(ids []neuron.ID) []hypergraph.NeuronID {
	out := make([]hypergraph.NeuronID, len(ids))
	for i, id := range ids {
		out[i] = hypergraph.NeuronID(id)
	}
	return out
}

// ScheduleSpike seeds a spike event for neuron n at the given tick. Used
// to bulk-seed initial activity before the first Step, or to inject
// activity mid-run. The call asserts that n has already fired as of now
// (this is what the scheduled event will later deliver), so n's
// refractory window is armed immediately, the same as if Inject had just
// crossed threshold — a neuron seeded with a self-targeting edge is
// refractory for that edge's own delivery, not only for deliveries
// arriving after it.
func (e *Engine) ScheduleSpike(n neuron.ID, at uint64) error {
	if !e.neuronExists(hypergraph.NeuronID(n)) {
		return ErrUnknownNeuron
	}
	if err := e.wheel.Schedule(wheel.SpikeEvent{NeuronID: int(n), Time: at}); err != nil {
		return err
	}
	e.neurons[n].Fire()
	return nil
}

// SetBudgets configures the per-tick edge-visit and spike-schedule
// budgets. A nil pointer means unlimited for that dimension.
func (e *Engine) SetBudgets(maxEdgesPerTick, maxSpikesPerTick *int) {
	e.budget.MaxEdgesPerTick = maxEdgesPerTick
	e.budget.MaxSpikesPerTick = maxSpikesPerTick
}

// InstallPlasticity installs a plasticity hook. The engine calls it from
// inside every subsequent Step; it performs no learning until this is
// called (or RemovePlasticity restores the no-op hook).
func (e *Engine) InstallPlasticity(hook plasticity.Hook) {
	if hook == nil {
		hook = plasticity.NoOp{}
	}
	e.plasticity = hook
}

// RemovePlasticity restores the no-op plasticity hook.
func (e *Engine) RemovePlasticity() {
	e.plasticity = plasticity.NoOp{}
}

// CurrentTime returns T, the tick count after the most recent Step.
func (e *Engine) CurrentTime() uint64 {
	return e.wheel.CurrentTime()
}

// NeuronCount returns the number of neurons allocated so far.
func (e *Engine) NeuronCount() uint64 {
	return uint64(len(e.neurons))
}

// EdgeCount returns the number of edges inserted so far.
func (e *Engine) EdgeCount() uint64 {
	return uint64(e.graph.EdgeCount())
}

// Diagnostics returns a snapshot of the engine's cumulative work and drop
// counters.
func (e *Engine) Diagnostics() Diagnostics {
	return e.diagnostics
}

// ResetDiagnostics zeroes the diagnostic counters without touching any
// simulation state.
func (e *Engine) ResetDiagnostics() {
	e.diagnostics = Diagnostics{}
}

// Step executes exactly one tick of the simulation and returns the spike
// events that fired at (i.e. were popped for) the tick just completed:
//
//  1. T = current_time; drain the wheel's current slot to obtain popped,
//     the events with time == T.
//  2. The plasticity hook (if installed) decays its traces once for this
//     tick.
//  3. For each popped event, in insertion (FIFO-per-slot) order: invoke
//     OnPreSpike, then walk the source neuron's adjacent edges. Budgets
//     permitting, each edge injects its weight into every target; a
//     target that fires is, budgets permitting, both returned to the
//     caller at its delivery tick T + edge delay (via a freshly scheduled
//     SpikeEvent) and reported to the plasticity hook via
//     OnPostSpike/OnWeightUpdate.
//  4. Return popped.
//
// Budget exhaustion is never an error: it silently truncates the edges
// visited or spikes scheduled for the remainder of the tick, and is
// recorded in Diagnostics (edges_dropped, spikes_dropped) rather than
// reissued later. This is an acknowledged lossy policy, not a bug.
func (e *Engine) Step() []wheel.SpikeEvent {
	now := e.wheel.CurrentTime()
	popped := e.wheel.Advance()

	e.plasticity.DecayTraces(now)

	edgesVisitedThisTick := 0
	spikesScheduledThisTick := 0

	for _, ev := range popped {
		src := neuron.ID(ev.NeuronID)
		e.plasticity.OnPreSpike(src, now)

		adjacent := e.graph.AdjacentEdges(hypergraph.NeuronID(src))
		for i, eid := range adjacent {
			if e.budget.MaxEdgesPerTick != nil && edgesVisitedThisTick >= *e.budget.MaxEdgesPerTick {
				e.diagnostics.EdgesDropped += uint64(len(adjacent) - i)
				break
			}
			edgesVisitedThisTick++
			e.diagnostics.EdgesVisited++

			edge, ok := e.graph.Edge(eid)
			if !ok {
				continue
			}
			deliveryTime := now + edge.Delay

			for _, t := range edge.Targets {
				target := e.neurons[t]
				fired := target.Inject(edge.Weight)
				if !fired {
					continue
				}

				if e.budget.MaxSpikesPerTick != nil && spikesScheduledThisTick >= *e.budget.MaxSpikesPerTick {
					e.diagnostics.SpikesDropped++
					continue
				}
				if err := e.wheel.Schedule(wheel.SpikeEvent{NeuronID: int(t), Time: deliveryTime}); err != nil {
					e.diagnostics.SpikesDropped++
					continue
				}
				spikesScheduledThisTick++
				e.diagnostics.SpikesScheduled++

				postID := neuron.ID(t)
				e.plasticity.OnPostSpike(postID, deliveryTime)
				e.plasticity.OnWeightUpdate(e.graph, eid, src, postID, deliveryTime)
			}
		}
	}

	return popped
}

// RunTicks calls Step n times and concatenates the popped events in
// tick order.
func (e *Engine) RunTicks(n uint64) []wheel.SpikeEvent {
	var out []wheel.SpikeEvent
	for i := uint64(0); i < n; i++ {
		out = append(out, e.Step()...)
	}
	return out
}

// RunUntil repeatedly calls Step until current_time == targetTime,
// concatenating outputs. If the engine is already at or past targetTime,
// it returns immediately with no events.
func (e *Engine) RunUntil(targetTime uint64) []wheel.SpikeEvent {
	var out []wheel.SpikeEvent
	for e.wheel.CurrentTime() < targetTime {
		out = append(out, e.Step()...)
	}
	return out
}
