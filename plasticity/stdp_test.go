package plasticity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meronrudy/hyperspike/fixedpoint"
	"github.com/meronrudy/hyperspike/hypergraph"
)

func TestNoOpDoesNothing(t *testing.T) {
	h := hypergraph.New(8)
	id, err := h.AddEdge([]hypergraph.NeuronID{0}, []hypergraph.NeuronID{1}, fixedpoint.FromFloat(1.0), 1, func(hypergraph.NeuronID) bool { return true })
	require.NoError(t, err)

	var hook Hook = NoOp{}
	hook.DecayTraces(0)
	hook.OnPreSpike(0, 0)
	hook.OnPostSpike(1, 1)
	hook.OnWeightUpdate(h, id, 0, 1, 1)

	edge, _ := h.Edge(id)
	require.Equal(t, fixedpoint.FromFloat(1.0), edge.Weight)
}

func TestSTDPPotentiatesWhenPreTraceOfSourceAccumulates(t *testing.T) {
	h := hypergraph.New(8)
	id, err := h.AddEdge([]hypergraph.NeuronID{0}, []hypergraph.NeuronID{1}, fixedpoint.FromFloat(1.0), 1, func(hypergraph.NeuronID) bool { return true })
	require.NoError(t, err)

	s := New(DefaultParams())
	// Neuron 0 (the pre-synaptic source of our edge) has just spiked,
	// building up its own pre-trace — the ordinary feed-forward case.
	s.OnPreSpike(0, 0)
	s.OnWeightUpdate(h, id, 0, 1, 1)

	edge, _ := h.Edge(id)
	require.Greater(t, fixedpoint.ToFloat(edge.Weight), 1.0)
}

func TestSTDPDepressesWhenPreTraceOfTargetAccumulates(t *testing.T) {
	h := hypergraph.New(8)
	id, err := h.AddEdge([]hypergraph.NeuronID{0}, []hypergraph.NeuronID{1}, fixedpoint.FromFloat(1.0), 1, func(hypergraph.NeuronID) bool { return true })
	require.NoError(t, err)

	s := New(DefaultParams())
	// Neuron 1 (the post-synaptic target) has itself fired as a
	// pre-synaptic source earlier, building up its own pre-trace.
	s.OnPreSpike(1, 0)
	s.OnWeightUpdate(h, id, 0, 1, 1)

	edge, _ := h.Edge(id)
	require.Less(t, fixedpoint.ToFloat(edge.Weight), 1.0)
}

func TestSTDPClampsAtWMax(t *testing.T) {
	h := hypergraph.New(8)
	id, err := h.AddEdge([]hypergraph.NeuronID{0}, []hypergraph.NeuronID{1}, fixedpoint.FromFloat(1.95), 1, func(hypergraph.NeuronID) bool { return true })
	require.NoError(t, err)

	params := DefaultParams()
	s := New(params)
	for i := 0; i < 50; i++ {
		s.OnPreSpike(0, uint64(i))
		s.OnWeightUpdate(h, id, 0, 1, uint64(i))
	}

	edge, _ := h.Edge(id)
	require.LessOrEqual(t, fixedpoint.ToFloat(edge.Weight), fixedpoint.ToFloat(params.WMax))
}

func TestDecayTracesShrinksOverTime(t *testing.T) {
	s := New(DefaultParams())
	s.OnPreSpike(0, 0)
	before := s.state(0).preTrace
	s.DecayTraces(1)
	after := s.state(0).preTrace
	require.Less(t, fixedpoint.ToFloat(after), fixedpoint.ToFloat(before))
}
