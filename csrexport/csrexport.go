// Package csrexport snapshots a hypergraph's source-indexed adjacency
// as an immutable compressed sparse row (CSR) structure, orthogonal to
// event-driven execution. It never feeds back into the engine: a CSR is
// a read-only, point-in-time view for offline analysis tooling.
package csrexport

import (
	"gonum.org/v1/gonum/mat"

	"github.com/meronrudy/hyperspike/fixedpoint"
	"github.com/meronrudy/hyperspike/hypergraph"
)

// CSR is a compressed sparse row view of a hypergraph's source→edge
// adjacency: row r lists the edge ids (and their weights) for which
// neuron r is a source, in RowPtr[r]..RowPtr[r+1].
type CSR struct {
	NumNeurons int
	RowPtr     []int
	ColIdx     []int     // edge ids, one per nonzero
	Data       []float64 // edge weight, aligned with ColIdx
}

// Adjacency builds a CSR snapshot of h's source-indexed adjacency for
// neuron ids 0..neuronCount-1. The result is a copy; later mutations to
// h (e.g. plasticity-driven weight changes) are not reflected.
func Adjacency(h *hypergraph.Hypergraph, neuronCount int) *CSR {
	csr := &CSR{
		NumNeurons: neuronCount,
		RowPtr:     make([]int, neuronCount+1),
	}

	for source := 0; source < neuronCount; source++ {
		edges := h.AdjacentEdges(hypergraph.NeuronID(source))
		csr.RowPtr[source+1] = csr.RowPtr[source] + len(edges)
		for _, eid := range edges {
			edge, ok := h.Edge(eid)
			if !ok {
				continue
			}
			csr.ColIdx = append(csr.ColIdx, int(eid))
			csr.Data = append(csr.Data, fixedpoint.ToFloat(edge.Weight))
		}
	}

	return csr
}

// Dense materializes the CSR as a dense neuron-by-edge gonum matrix,
// for consumers (plotting, linear-algebra post-processing) that need
// random access rather than row-major scans. numEdges bounds the
// column dimension.
func (c *CSR) Dense(numEdges int) *mat.Dense {
	d := mat.NewDense(c.NumNeurons, numEdges, nil)
	for row := 0; row < c.NumNeurons; row++ {
		for i := c.RowPtr[row]; i < c.RowPtr[row+1]; i++ {
			d.Set(row, c.ColIdx[i], c.Data[i])
		}
	}
	return d
}

// RowEdges returns the edge ids in row (source neuron) r.
func (c *CSR) RowEdges(r int) []int {
	if r < 0 || r+1 >= len(c.RowPtr) {
		return nil
	}
	return c.ColIdx[c.RowPtr[r]:c.RowPtr[r+1]]
}

// NNZ returns the number of nonzero entries (i.e. the number of
// (source, edge) pairs) in the snapshot.
func (c *CSR) NNZ() int {
	return len(c.ColIdx)
}
