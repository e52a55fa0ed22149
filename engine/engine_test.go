package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meronrudy/hyperspike/neuron"
	"github.com/meronrudy/hyperspike/wheel"
)

func TestNewRejectsZeroWheelSize(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, ErrInvalidWheelSize)
}

func TestAddNeuronRejectsNonPositiveThreshold(t *testing.T) {
	e, err := New(8)
	require.NoError(t, err)
	_, err = e.AddNeuron(0, 0)
	require.ErrorIs(t, err, ErrInvalidThreshold)
	_, err = e.AddNeuron(-1, 0)
	require.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestAddEdgeUnknownNeuron(t *testing.T) {
	e, err := New(8)
	require.NoError(t, err)
	n0, _ := e.AddNeuron(1.0, 0)
	_, err = e.AddEdge([]neuron.ID{n0}, []neuron.ID{99}, 1.0, 1)
	require.Error(t, err)
}

func TestScheduleSpikeUnknownNeuron(t *testing.T) {
	e, err := New(8)
	require.NoError(t, err)
	err = e.ScheduleSpike(0, 0)
	require.ErrorIs(t, err, ErrUnknownNeuron)
}

// --- A single spike fans out to two target neurons one tick later. ---
func TestStepFansOutSpikeToTwoTargets(t *testing.T) {
	e, err := New(32)
	require.NoError(t, err)

	n0, err := e.AddNeuron(1.0, 0)
	require.NoError(t, err)
	n1, err := e.AddNeuron(1.0, 0)
	require.NoError(t, err)
	n2, err := e.AddNeuron(1.0, 0)
	require.NoError(t, err)

	_, err = e.AddEdge([]neuron.ID{n0}, []neuron.ID{n1, n2}, 1.0, 1)
	require.NoError(t, err)

	require.NoError(t, e.ScheduleSpike(n0, 0))

	step1 := e.Step()
	require.Equal(t, []wheel.SpikeEvent{{NeuronID: int(n0), Time: 0}}, step1)

	step2 := e.Step()
	require.ElementsMatch(t, []wheel.SpikeEvent{
		{NeuronID: int(n1), Time: 1},
		{NeuronID: int(n2), Time: 1},
	}, step2)

	step3 := e.Step()
	require.Empty(t, step3)
}

// --- Two sub-threshold edges summed together cross threshold and fire once. ---
func TestStepSubThresholdAccumulationFiresOnce(t *testing.T) {
	e, err := New(32)
	require.NoError(t, err)

	n0, _ := e.AddNeuron(1.0, 0)
	n1, _ := e.AddNeuron(1.0, 0)

	_, err = e.AddEdge([]neuron.ID{n0}, []neuron.ID{n1}, 0.5, 1)
	require.NoError(t, err)
	_, err = e.AddEdge([]neuron.ID{n0}, []neuron.ID{n1}, 0.5, 1)
	require.NoError(t, err)

	require.NoError(t, e.ScheduleSpike(n0, 0))

	step1 := e.Step()
	require.Equal(t, []wheel.SpikeEvent{{NeuronID: int(n0), Time: 0}}, step1)

	step2 := e.Step()
	require.Equal(t, []wheel.SpikeEvent{{NeuronID: int(n1), Time: 1}}, step2)
}

// --- A delay beyond the wheel's horizon is rejected outright. ---
func TestScheduleSpikeRejectsDelayBeyondHorizon(t *testing.T) {
	e, err := New(4)
	require.NoError(t, err)
	_, _ = e.AddNeuron(1.0, 0)

	err = e.ScheduleSpike(0, 10)
	require.ErrorIs(t, err, wheel.ErrDelayOutOfHorizon)
}

// --- An edge budget below fan-out truncates visitation and counts the drop. ---
func TestStepTruncatesEdgeFanOutAtBudget(t *testing.T) {
	e, err := New(8)
	require.NoError(t, err)

	src, _ := e.AddNeuron(1.0, 0)
	targets := make([]neuron.ID, 100)
	for i := range targets {
		id, err := e.AddNeuron(1.0, 0)
		require.NoError(t, err)
		targets[i] = id
	}
	for _, tgt := range targets {
		_, err := e.AddEdge([]neuron.ID{src}, []neuron.ID{tgt}, 1.0, 1)
		require.NoError(t, err)
	}

	budget := 10
	e.SetBudgets(&budget, nil)

	require.NoError(t, e.ScheduleSpike(src, 0))

	step1 := e.Step()
	require.Equal(t, []wheel.SpikeEvent{{NeuronID: int(src), Time: 0}}, step1)

	step2 := e.Step()
	require.Len(t, step2, 10)

	diag := e.Diagnostics()
	require.EqualValues(t, 10, diag.EdgesVisited)
	require.EqualValues(t, 90, diag.EdgesDropped)
}

// --- A refractory neuron silently discards injections across ticks. ---
func TestStepGatesInjectionDuringRefractoryPeriod(t *testing.T) {
	e, err := New(8)
	require.NoError(t, err)

	n0, err := e.AddNeuron(1.0, 2)
	require.NoError(t, err)

	_, err = e.AddEdge([]neuron.ID{n0}, []neuron.ID{n0}, 1.0, 1)
	require.NoError(t, err)
	_, err = e.AddEdge([]neuron.ID{n0}, []neuron.ID{n0}, 1.0, 1)
	require.NoError(t, err)

	require.NoError(t, e.ScheduleSpike(n0, 0))

	step1 := e.Step()
	require.Equal(t, []wheel.SpikeEvent{{NeuronID: int(n0), Time: 0}}, step1)

	// The seed itself arms n0's refractory window, so at tick 1 both of
	// its self-injections (weight 1.0 each) are gated rather than
	// firing; nothing new gets scheduled, so step2 onward stays empty.
	step2 := e.Step()
	require.Empty(t, step2)

	step3 := e.Step()
	require.Empty(t, step3)

	step4 := e.Step()
	require.Empty(t, step4)
}

func TestBudgetSpikesPerTick(t *testing.T) {
	e, err := New(8)
	require.NoError(t, err)

	src, _ := e.AddNeuron(1.0, 0)
	targets := make([]neuron.ID, 5)
	for i := range targets {
		id, _ := e.AddNeuron(1.0, 0)
		targets[i] = id
	}
	for _, tgt := range targets {
		_, err := e.AddEdge([]neuron.ID{src}, []neuron.ID{tgt}, 1.0, 1)
		require.NoError(t, err)
	}

	maxSpikes := 2
	e.SetBudgets(nil, &maxSpikes)
	require.NoError(t, e.ScheduleSpike(src, 0))

	e.Step()
	step2 := e.Step()
	require.Len(t, step2, 2)

	diag := e.Diagnostics()
	require.EqualValues(t, 3, diag.SpikesDropped)
}

func TestRunTicksConcatenatesInOrder(t *testing.T) {
	e, err := New(32)
	require.NoError(t, err)
	n0, _ := e.AddNeuron(1.0, 0)
	n1, _ := e.AddNeuron(1.0, 0)
	_, err = e.AddEdge([]neuron.ID{n0}, []neuron.ID{n1}, 1.0, 1)
	require.NoError(t, err)
	require.NoError(t, e.ScheduleSpike(n0, 0))

	events := e.RunTicks(3)
	require.Equal(t, []wheel.SpikeEvent{
		{NeuronID: int(n0), Time: 0},
		{NeuronID: int(n1), Time: 1},
	}, events)
}

func TestRunUntil(t *testing.T) {
	e, err := New(32)
	require.NoError(t, err)
	n0, _ := e.AddNeuron(1.0, 0)
	require.NoError(t, e.ScheduleSpike(n0, 0))

	events := e.RunUntil(3)
	require.EqualValues(t, 3, e.CurrentTime())
	require.Len(t, events, 1)

	// already past target: no-op
	more := e.RunUntil(1)
	require.Empty(t, more)
}

func TestNeuronAndEdgeCount(t *testing.T) {
	e, err := New(8)
	require.NoError(t, err)
	require.EqualValues(t, 0, e.NeuronCount())
	n0, _ := e.AddNeuron(1.0, 0)
	n1, _ := e.AddNeuron(1.0, 0)
	require.EqualValues(t, 2, e.NeuronCount())
	_, err = e.AddEdge([]neuron.ID{n0}, []neuron.ID{n1}, 1.0, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, e.EdgeCount())
}

func TestResetDiagnostics(t *testing.T) {
	e, err := New(8)
	require.NoError(t, err)
	n0, _ := e.AddNeuron(1.0, 0)
	n1, _ := e.AddNeuron(1.0, 0)
	_, err = e.AddEdge([]neuron.ID{n0}, []neuron.ID{n1}, 1.0, 1)
	require.NoError(t, err)
	require.NoError(t, e.ScheduleSpike(n0, 0))
	e.RunTicks(2)
	require.NotZero(t, e.Diagnostics().EdgesVisited)

	e.ResetDiagnostics()
	require.Zero(t, e.Diagnostics().EdgesVisited)
}

// TestDiagnosticsDropCountersNeverDecrease checks that edges_dropped and
// spikes_dropped only ever grow across successive ticks, short of an
// explicit ResetDiagnostics call.
func TestDiagnosticsDropCountersNeverDecrease(t *testing.T) {
	e, err := New(8)
	require.NoError(t, err)

	src, err := e.AddNeuron(1.0, 0)
	require.NoError(t, err)
	targets := make([]neuron.ID, 5)
	for i := range targets {
		id, err := e.AddNeuron(1.0, 0)
		require.NoError(t, err)
		targets[i] = id
	}
	for _, tgt := range targets {
		_, err := e.AddEdge([]neuron.ID{src}, []neuron.ID{tgt}, 1.0, 1)
		require.NoError(t, err)
	}

	budget := 2
	e.SetBudgets(&budget, nil)

	var lastEdgesDropped, lastSpikesDropped uint64
	for i := 0; i < 5; i++ {
		require.NoError(t, e.ScheduleSpike(src, e.CurrentTime()))
		e.RunTicks(2)

		diag := e.Diagnostics()
		require.GreaterOrEqual(t, diag.EdgesDropped, lastEdgesDropped)
		require.GreaterOrEqual(t, diag.SpikesDropped, lastSpikesDropped)
		lastEdgesDropped = diag.EdgesDropped
		lastSpikesDropped = diag.SpikesDropped
	}
	require.NotZero(t, lastEdgesDropped)
}
