package hypergraph

import "errors"

// ErrInvalidEdge is returned when add_edge receives a structurally invalid
// edge: zero delay, a delay that does not fit the wheel horizon, or an
// empty source or target set.
var ErrInvalidEdge = errors.New("hypergraph: invalid edge")

// ErrUnknownNeuron is returned when add_edge references a neuron id that
// was never allocated.
var ErrUnknownNeuron = errors.New("hypergraph: unknown neuron")
