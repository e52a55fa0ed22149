/*
Package plasticity implements the engine's optional trace-based STDP
learning hook.

The engine depends only on the Hook capability interface below, narrowed
to the four methods the step procedure actually calls. A caller may
install the built-in STDP rule (New), a no-op (NoOp), or any other type
satisfying Hook, and the engine never needs to know which.
*/
package plasticity

import (
	"github.com/meronrudy/hyperspike/fixedpoint"
	"github.com/meronrudy/hyperspike/hypergraph"
	"github.com/meronrudy/hyperspike/neuron"
)

// Hook is the four-method plasticity capability the engine calls from
// inside Step, in the order: DecayTraces once per tick, then OnPreSpike
// for each popped event, then OnPostSpike and OnWeightUpdate for each
// post-synaptic fire that event's fan-out produces.
type Hook interface {
	// DecayTraces multiplies every neuron's pre- and post-trace by the
	// hook's configured decay factor. Called once per tick, before any
	// spike in that tick is processed.
	DecayTraces(now uint64)

	// OnPreSpike records that neuron n emitted a spike at tick now by
	// incrementing its pre-trace.
	OnPreSpike(n neuron.ID, now uint64)

	// OnPostSpike records that neuron n fired (as a post-synaptic target)
	// at tick now by incrementing its post-trace.
	OnPostSpike(n neuron.ID, now uint64)

	// OnWeightUpdate computes and applies a weight change to edge eid,
	// given the pre- and post-synaptic neuron ids and the absolute tick at
	// which the post-synaptic spike is delivered.
	OnWeightUpdate(h *hypergraph.Hypergraph, eid hypergraph.EdgeID, pre, post neuron.ID, deliveryTime uint64)
}

// NoOp is a Hook that does nothing. Installing it (or leaving plasticity
// uninstalled) means the engine performs zero learning work.
type NoOp struct{}

func (NoOp) DecayTraces(uint64)                                                              {}
func (NoOp) OnPreSpike(neuron.ID, uint64)                                                     {}
func (NoOp) OnPostSpike(neuron.ID, uint64)                                                    {}
func (NoOp) OnWeightUpdate(*hypergraph.Hypergraph, hypergraph.EdgeID, neuron.ID, neuron.ID, uint64) {}

var _ Hook = NoOp{}
var _ Hook = (*STDP)(nil)

// traceState is kept unexported; callers only ever see the Hook
// interface, never STDP's internals, mirroring neuron.Neuron's own
// narrow surface.
type traceState struct {
	preTrace  fixedpoint.Fixed
	postTrace fixedpoint.Fixed
}
