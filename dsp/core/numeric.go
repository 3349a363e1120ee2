package core

import "math"

const defaultEpsilon = 1e-12

// DefaultULPTolerance is the equality tolerance used for frequency
// comparisons throughout the module. Frequencies constructed as
// index*resolution accumulate at most a few rounding steps, so a small
// fixed ULP distance absorbs the round-trip error without masking
// genuinely different frequencies.
const DefaultULPTolerance = 3

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps,
// using a combined absolute/relative comparison.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// EqualULP reports whether a and b are within ulps representable float64
// steps of each other. NaN never compares equal; infinities compare equal
// only to themselves.
func EqualULP(a, b float64, ulps uint64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}

	if a == b {
		return true
	}

	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}

	return ulpDistance(a, b) <= ulps
}

// ulpDistance returns the number of representable float64 values between
// a and b, using the lexicographically ordered bit representation.
func ulpDistance(a, b float64) uint64 {
	ia := orderedBits(a)
	ib := orderedBits(b)

	if ia > ib {
		ia, ib = ib, ia
	}

	return uint64(ib) - uint64(ia)
}

// orderedBits maps a float64 onto a monotonically ordered int64 scale.
func orderedBits(f float64) int64 {
	bits := int64(math.Float64bits(f))
	if bits < 0 {
		bits = math.MinInt64 - bits
	}

	return bits
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(v float64) float64 {
	return 20 * math.Log10(v)
}
