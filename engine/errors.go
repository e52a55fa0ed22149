package engine

import "errors"

// ErrUnknownNeuron is returned when a caller references a neuron id that
// was never allocated by AddNeuron.
var ErrUnknownNeuron = errors.New("engine: unknown neuron")

// ErrInvalidThreshold is returned by AddNeuron when threshold <= 0.
var ErrInvalidThreshold = errors.New("engine: threshold must be > 0")

// ErrInvalidWheelSize is returned by New when wheelSize < 1.
var ErrInvalidWheelSize = errors.New("engine: wheel size must be >= 1")
