package plasticity

import (
	"github.com/meronrudy/hyperspike/fixedpoint"
	"github.com/meronrudy/hyperspike/hypergraph"
	"github.com/meronrudy/hyperspike/neuron"
)

// Params configures the built-in trace-based STDP rule. All fields are
// fixed-point except WMin/WMax's sign, which simply bounds the result.
type Params struct {
	APlus         fixedpoint.Fixed // potentiation gain
	AMinus        fixedpoint.Fixed // depression gain
	DecayFactor   fixedpoint.Fixed // per-tick multiplicative trace decay, 0 < factor <= 1
	PreIncrement  fixedpoint.Fixed // added to a neuron's pre-trace on OnPreSpike
	PostIncrement fixedpoint.Fixed // added to a neuron's post-trace on OnPostSpike
	WMin          fixedpoint.Fixed
	WMax          fixedpoint.Fixed
}

// DefaultParams returns a symmetric, moderate STDP configuration.
func DefaultParams() Params {
	return Params{
		APlus:         fixedpoint.FromFloat(0.01),
		AMinus:        fixedpoint.FromFloat(0.01),
		DecayFactor:   fixedpoint.FromFloat(0.9),
		PreIncrement:  fixedpoint.FromFloat(1.0),
		PostIncrement: fixedpoint.FromFloat(1.0),
		WMin:          fixedpoint.FromFloat(0.0),
		WMax:          fixedpoint.FromFloat(2.0),
	}
}

// STDP is the built-in trace-based spike-timing-dependent plasticity
// rule: per-neuron pre/post traces, decayed once per tick, driving a
// weight update on every post-synaptic fire.
type STDP struct {
	params Params
	traces map[neuron.ID]*traceState
}

// New constructs an STDP hook with the given parameters.
func New(params Params) *STDP {
	return &STDP{
		params: params,
		traces: make(map[neuron.ID]*traceState),
	}
}

func (s *STDP) state(n neuron.ID) *traceState {
	st, ok := s.traces[n]
	if !ok {
		st = &traceState{}
		s.traces[n] = st
	}
	return st
}

// DecayTraces multiplies every tracked neuron's pre- and post-trace by
// the configured decay factor. Neurons with no recorded spikes yet incur
// no allocation (the trace map only grows on first spike).
func (s *STDP) DecayTraces(now uint64) {
	for _, st := range s.traces {
		st.preTrace = fixedpoint.Mul(st.preTrace, s.params.DecayFactor)
		st.postTrace = fixedpoint.Mul(st.postTrace, s.params.DecayFactor)
	}
}

// OnPreSpike adds the configured pre-increment to n's pre-trace.
func (s *STDP) OnPreSpike(n neuron.ID, now uint64) {
	st := s.state(n)
	st.preTrace = fixedpoint.Add(st.preTrace, s.params.PreIncrement)
}

// OnPostSpike adds the configured post-increment to n's post-trace.
func (s *STDP) OnPostSpike(n neuron.ID, now uint64) {
	st := s.state(n)
	st.postTrace = fixedpoint.Add(st.postTrace, s.params.PostIncrement)
}

// OnWeightUpdate applies Δw = A+ · pre_trace[pre] − A− · pre_trace[post]
// to edge eid's weight, clamped to [WMin, WMax]. The potentiation term
// reads the PRE neuron's own pre-trace: OnPreSpike always increments it
// in the same Step call that walks this edge, so a pre-spike that just
// delivered into post carries a fresh, nonzero pre-trace regardless of
// whether pre has ever itself been a post-synaptic target — this is
// what makes the rule fire on an ordinary feed-forward edge rather than
// only on edges whose source also receives spikes elsewhere. The
// depression term reads the POST neuron's own pre-trace: if post has
// independently been acting as a source (its own recent spikes),
// that outweighs a comparatively stale or absent pre-trace on pre and
// pulls the edge down instead of up.
func (s *STDP) OnWeightUpdate(h *hypergraph.Hypergraph, eid hypergraph.EdgeID, pre, post neuron.ID, deliveryTime uint64) {
	preSt := s.state(pre)
	postSt := s.state(post)

	potentiation := fixedpoint.Mul(s.params.APlus, preSt.preTrace)
	depression := fixedpoint.Mul(s.params.AMinus, postSt.preTrace)
	delta := fixedpoint.Sub(potentiation, depression)

	edge, ok := h.Edge(eid)
	if !ok {
		return
	}
	newWeight := fixedpoint.Add(edge.Weight, delta)
	if fixedpoint.Cmp(newWeight, s.params.WMin) < 0 {
		newWeight = s.params.WMin
	}
	if fixedpoint.Cmp(newWeight, s.params.WMax) > 0 {
		newWeight = s.params.WMax
	}
	h.SetWeight(eid, newWeight)
}
