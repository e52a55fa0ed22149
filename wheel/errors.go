package wheel

import "errors"

// ErrDelayOutOfHorizon is returned when a schedule call targets a time at
// or beyond current_time + W, the wheel's bounded horizon.
var ErrDelayOutOfHorizon = errors.New("wheel: delay out of horizon")

// ErrNonCausal is returned when a schedule call targets a time strictly
// before the wheel's current time.
var ErrNonCausal = errors.New("wheel: non-causal schedule")

// ErrSlotFull is returned by fixed-capacity wheel variants when a slot is
// already at capacity. The default Wheel does not return this error; see
// NewBounded.
var ErrSlotFull = errors.New("wheel: slot full")
