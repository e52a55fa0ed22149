// Package fixedpoint implements a deterministic Q16.16 signed fixed-point
// number, used throughout the engine in place of floating point so that
// simulation runs are bit-identical across platforms.
package fixedpoint

import "math"

// FractionBits is the number of bits reserved for the fractional part of a Q16.16 value.
const FractionBits = 16

// scale is 2^16, the conversion factor between a real value and its fixed-point representation.
const scale = 1 << FractionBits

// Fixed is a Q16.16 signed fixed-point number backed by a 32-bit integer.
// Arithmetic on Fixed values saturates at the signed 32-bit range instead
// of wrapping, so overflow is bounded rather than corrupting state.
type Fixed int32

const (
	// MaxFixed is the largest representable Fixed value.
	MaxFixed Fixed = math.MaxInt32
	// MinFixed is the smallest representable Fixed value.
	MinFixed Fixed = math.MinInt32
	// Zero is the additive identity.
	Zero Fixed = 0
)

// FromFloat converts a real value into Q16.16, saturating at the signed
// 32-bit limits if the scaled value would overflow.
func FromFloat(v float64) Fixed {
	scaled := v * scale
	if scaled >= float64(math.MaxInt32) {
		return MaxFixed
	}
	if scaled <= float64(math.MinInt32) {
		return MinFixed
	}
	return Fixed(int32(math.Round(scaled)))
}

// ToFloat converts a Q16.16 value back to a real value.
func ToFloat(f Fixed) float64 {
	return float64(f) / scale
}

// Add performs a saturating 32-bit add of two fixed-point values.
func Add(a, b Fixed) Fixed {
	sum := int64(a) + int64(b)
	return saturate(sum)
}

// Mul performs a fixed-point multiply: widen to 64-bit, multiply, shift
// right by FractionBits (arithmetic shift), then saturate back to 32-bit.
func Mul(a, b Fixed) Fixed {
	product := int64(a) * int64(b)
	shifted := product >> FractionBits
	return saturate(shifted)
}

// Sub performs a saturating 32-bit subtract of two fixed-point values.
func Sub(a, b Fixed) Fixed {
	diff := int64(a) - int64(b)
	return saturate(diff)
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func Cmp(a, b Fixed) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func saturate(v int64) Fixed {
	if v > int64(math.MaxInt32) {
		return MaxFixed
	}
	if v < int64(math.MinInt32) {
		return MinFixed
	}
	return Fixed(v)
}
