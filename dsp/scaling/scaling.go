// Package scaling provides ready-made magnitude scaling functions for use
// with the spectrum bin mapper and the spectrum store's rescale operation.
package scaling

import (
	"github.com/cwbudde/algo-spectrum/dsp/core"
	"github.com/cwbudde/algo-spectrum/dsp/spectrum"
)

// dbFloor is reported for non-positive magnitudes, which have no finite dB
// representation. It matches the display floor of typical analyzer UIs.
const dbFloor = -130.0

// Identity returns magnitudes unchanged.
func Identity() spectrum.ScaleFunc {
	return func(v float64) float64 { return v }
}

// DivideByN divides every magnitude by n, the usual normalization of raw FFT
// output by the transform length.
func DivideByN(n int) spectrum.ScaleFunc {
	if n <= 0 {
		return Identity()
	}

	inv := 1 / float64(n)

	return func(v float64) float64 { return v * inv }
}

// ToDecibels converts magnitudes to dB (20*log10). Non-positive magnitudes
// map to a -130 dB floor so the spectrum's finite-values invariant holds.
func ToDecibels() spectrum.ScaleFunc {
	return func(v float64) float64 {
		if v <= 0 {
			return dbFloor
		}

		db := core.LinearToDB(v)
		if db < dbFloor {
			return dbFloor
		}

		return db
	}
}

// SubtractMin shifts all magnitudes so the smallest becomes zero.
func SubtractMin() spectrum.ScalingFactory {
	return func(min, max, average, median float64) spectrum.ScaleFunc {
		return func(v float64) float64 { return v - min }
	}
}

// ToZeroToOne linearly maps magnitudes onto [0, 1] using the spectrum's own
// extrema. A degenerate spectrum (max == min) maps to all zeros.
func ToZeroToOne() spectrum.ScalingFactory {
	return func(min, max, average, median float64) spectrum.ScaleFunc {
		span := max - min
		if span == 0 {
			return func(float64) float64 { return 0 }
		}

		return func(v float64) float64 { return (v - min) / span }
	}
}
