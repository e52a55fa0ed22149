/*
Package hypergraph implements the engine's connectivity structure: a
hyperedge joins a set of source neurons to a set of target neurons through
a single weight and a single delay. Edges are stored as a dense,
append-only array indexed by edge id; a source-indexed adjacency maps
each source neuron id to the ordered list of edge ids that reference it,
giving O(outdegree) lookup for delivery without a target-side index
(delivery is driven by pops, which are always source-side).

Topology is immutable once inserted: the source and target sets of an
edge never change after add_edge returns. Only the edge's weight may be
mutated later, by the optional plasticity rule.
*/
package hypergraph

import "github.com/meronrudy/hyperspike/fixedpoint"

// EdgeID identifies a hyperedge by its position in the dense edge array.
type EdgeID int

// NeuronID identifies a neuron known to the hypergraph's validator. The
// hypergraph itself does not own neurons; it only checks edge endpoints
// against the set of ids the caller has told it exist via NeuronExists.
type NeuronID int

// Edge is a single hyperedge: an ordered, unique set of source neuron ids,
// an ordered, unique set of target neuron ids, one fixed-point weight, and
// one delivery delay in ticks.
type Edge struct {
	ID      EdgeID
	Sources []NeuronID
	Targets []NeuronID
	Weight  fixedpoint.Fixed
	Delay   uint64
}

// NeuronExists is supplied by the caller (the engine) so the hypergraph
// can validate edge endpoints without owning neuron state itself.
type NeuronExists func(id NeuronID) bool

// Hypergraph holds the dense edge array and the source-indexed adjacency.
type Hypergraph struct {
	wheelSize uint64
	edges     []Edge
	adjacency map[NeuronID][]EdgeID
}

// New constructs an empty Hypergraph bound to a wheel horizon of
// wheelSize; every edge's delay must satisfy 1 <= delay < wheelSize.
func New(wheelSize uint64) *Hypergraph {
	return &Hypergraph{
		wheelSize: wheelSize,
		adjacency: make(map[NeuronID][]EdgeID),
	}
}

// AddEdge validates and inserts a new hyperedge, returning its assigned id.
//
// Validation order: delay bounds are checked before endpoint existence,
// matching the error-kind precedence in the engine's error handling design
// (InvalidEdge is a pure-topology check; UnknownNeuron requires consulting
// external state).
func (h *Hypergraph) AddEdge(sources, targets []NeuronID, weight fixedpoint.Fixed, delay uint64, exists NeuronExists) (EdgeID, error) {
	if len(sources) == 0 || len(targets) == 0 {
		return -1, ErrInvalidEdge
	}
	if delay == 0 || delay >= h.wheelSize {
		return -1, ErrInvalidEdge
	}
	for _, s := range sources {
		if !exists(s) {
			return -1, ErrUnknownNeuron
		}
	}
	for _, t := range targets {
		if !exists(t) {
			return -1, ErrUnknownNeuron
		}
	}

	id := EdgeID(len(h.edges))
	edge := Edge{
		ID:      id,
		Sources: append([]NeuronID(nil), sources...),
		Targets: append([]NeuronID(nil), targets...),
		Weight:  weight,
		Delay:   delay,
	}
	h.edges = append(h.edges, edge)
	for _, s := range sources {
		h.adjacency[s] = append(h.adjacency[s], id)
	}
	return id, nil
}

// Edge returns the edge record for id. The second return value is false if
// id has never been assigned.
func (h *Hypergraph) Edge(id EdgeID) (Edge, bool) {
	if id < 0 || int(id) >= len(h.edges) {
		return Edge{}, false
	}
	return h.edges[id], true
}

// SetWeight mutates an existing edge's weight in place. This is the only
// topology field plasticity is permitted to change; sources, targets, and
// delay are immutable for the edge's lifetime.
func (h *Hypergraph) SetWeight(id EdgeID, weight fixedpoint.Fixed) bool {
	if id < 0 || int(id) >= len(h.edges) {
		return false
	}
	h.edges[id].Weight = weight
	return true
}

// AdjacentEdges returns the ordered list of edge ids that reference source
// as one of their sources. The returned slice must not be mutated by the
// caller; it is the hypergraph's own backing storage.
func (h *Hypergraph) AdjacentEdges(source NeuronID) []EdgeID {
	return h.adjacency[source]
}

// EdgeCount returns the number of edges inserted so far.
func (h *Hypergraph) EdgeCount() int {
	return len(h.edges)
}
