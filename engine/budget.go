package engine

// Budget bounds the per-tick work Step is willing to perform. A nil
// field means unlimited.
type Budget struct {
	MaxEdgesPerTick  *int
	MaxSpikesPerTick *int
}

// Diagnostics counts work the engine performed or was forced to drop
// because a budget was exhausted. Counters are monotonically
// non-decreasing across the engine's lifetime except via ResetDiagnostics.
type Diagnostics struct {
	EdgesVisited    uint64
	SpikesScheduled uint64
	EdgesDropped    uint64
	SpikesDropped   uint64
}
