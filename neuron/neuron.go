/*
=================================================================================
NEURON STATE MACHINE - INTEGRATE-AND-FIRE CORE
=================================================================================

This package implements the engine's per-neuron state: a membrane
potential, a firing threshold, and an optional refractory counter. It is
the deterministic, tick-driven descendant of a goroutine-and-channel
neuron model — the biological vocabulary survives (membrane, threshold,
refractory, fire), but the concurrency does not: there is no goroutine, no
channel, and no wall-clock timer. A Neuron is a plain value the engine
calls into synchronously, once per arriving weight, from inside Step.

STATE MACHINE:
  RESTING --inject, membrane<threshold--> RESTING
  RESTING --inject, membrane>=threshold--> FIRED -> REFRACTORY(R)
  REFRACTORY(k) --inject--> REFRACTORY(k-1), k==0 collapses to RESTING

The refractory counter decrements on every injection attempt, fired or
not — a "fully silent" refractory window rather than one that only
counts sub-threshold injects. This is a deliberate modeling choice.

Leak is deliberately absent from this default model: membrane potential
never decays on its own between injections. A richer model can replace
Inject without touching the engine's contract, since the engine only
depends on the Inject signature, not on this struct's internals.
=================================================================================
*/
package neuron

import "github.com/meronrudy/hyperspike/fixedpoint"

// ID identifies a neuron by its position in the engine's dense neuron
// array.
type ID int

// Neuron is a single integrate-and-fire unit: membrane potential,
// threshold, and a refractory counter. Zero value is not usable directly;
// construct with New.
type Neuron struct {
	ID               ID
	Membrane         fixedpoint.Fixed
	Threshold        fixedpoint.Fixed
	RefractoryPeriod uint // ticks applied after a fire; 0 means no refractory window

	refractoryLeft uint
}

// New constructs a resting neuron with the given threshold and refractory
// period. Threshold must be > 0; callers validate this at the engine
// boundary (see engine.AddNeuron), so New does not re-check it.
func New(id ID, threshold fixedpoint.Fixed, refractoryPeriod uint) *Neuron {
	return &Neuron{
		ID:               id,
		Membrane:         fixedpoint.Zero,
		Threshold:        threshold,
		RefractoryPeriod: refractoryPeriod,
	}
}

// Inject delivers weight into the neuron's membrane and reports whether
// the neuron fired as a result.
//
//  1. If the neuron is refractory, the counter decrements and weight is
//     discarded; the neuron does not fire regardless of weight.
//  2. Otherwise membrane accumulates weight via saturating fixed-point add.
//  3. If membrane has reached or exceeded threshold, Fire is invoked and
//     Inject reports true.
//  4. Otherwise Inject reports false and membrane keeps its new value.
func (n *Neuron) Inject(weight fixedpoint.Fixed) bool {
	if n.refractoryLeft > 0 {
		n.refractoryLeft--
		return false
	}

	n.Membrane = fixedpoint.Add(n.Membrane, weight)
	if fixedpoint.Cmp(n.Membrane, n.Threshold) >= 0 {
		n.Fire()
		return true
	}
	return false
}

// Fire resets membrane to zero and arms the refractory counter to
// RefractoryPeriod. Inject calls this itself once membrane crosses
// threshold; a caller recording a fire that happened outside of Inject
// (a seeded or externally asserted spike) calls it directly so the
// neuron's refractory window starts at the moment the fire is recorded,
// not one tick later when the fire's own delivery is processed.
func (n *Neuron) Fire() {
	n.Membrane = fixedpoint.Zero
	n.refractoryLeft = n.RefractoryPeriod
}

// InRefractory reports whether the neuron is currently within its
// post-fire silent window.
func (n *Neuron) InRefractory() bool {
	return n.refractoryLeft > 0
}

// RefractoryRemaining returns the number of further injections that will
// be silently discarded before the neuron can fire again.
func (n *Neuron) RefractoryRemaining() uint {
	return n.refractoryLeft
}
