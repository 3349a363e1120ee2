// Package fft adapts external FFT backends to the spectrum engine.
//
// The engine never computes a transform itself; it consumes one-sided
// complex bins (DC through Nyquist, N/2+1 values) produced by a Backend.
// Three interchangeable backends are provided, plus the normalization helper
// for real-input-optimized transforms that pack the Nyquist coefficient into
// the DC bin's imaginary slot.
package fft

import (
	"errors"
	"fmt"
	"math"
)

// MinSize and MaxSize bound the supported transform lengths. The range
// matches common real-FFT backends; lengths must be powers of two.
const (
	MinSize = 2
	MaxSize = 16384
)

var (
	// ErrUnsupportedLength is returned for transform lengths that are not a
	// power of two in [MinSize, MaxSize].
	ErrUnsupportedLength = errors.New("FFT length must be a power of two in [2, 16384]")

	// ErrNonFiniteSample is returned when input samples contain NaN or Inf.
	// Magnitudes computed from such values corrupt every downstream
	// statistic, so the check runs before any transform.
	ErrNonFiniteSample = errors.New("samples must not contain NaN or Inf")
)

// Backend computes a forward transform of real-valued samples and returns
// the one-sided complex spectrum: bins 0 (DC) through N/2 (Nyquist),
// N/2+1 values in total.
type Backend interface {
	Name() string
	Transform(samples []float64) ([]complex128, error)
}

// Default returns the plan-based backend.
func Default() Backend {
	return PlanBackend{}
}

// ValidateSamples rejects sample blocks containing NaN or infinite values.
func ValidateSamples(samples []float64) error {
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d is %v", ErrNonFiniteSample, i, v)
		}
	}

	return nil
}

// ValidateLength rejects transform lengths outside the supported range.
func ValidateLength(n int) error {
	if n < MinSize || n > MaxSize || n&(n-1) != 0 {
		return fmt.Errorf("%w: got %d", ErrUnsupportedLength, n)
	}

	return nil
}

// UnpackNyquist normalizes the output of a real-input-optimized transform
// that packs the real-valued Nyquist coefficient into the imaginary part of
// the DC bin. The returned slice has len(packed)+1 bins: the DC bin with its
// imaginary part zeroed, the untouched positive-frequency bins, and the
// Nyquist coefficient in its own final bin with zero imaginary part.
func UnpackNyquist(packed []complex128) []complex128 {
	if len(packed) == 0 {
		return nil
	}

	out := make([]complex128, len(packed)+1)
	copy(out, packed)

	nyquist := imag(packed[0])
	out[0] = complex(real(packed[0]), 0)
	out[len(packed)] = complex(nyquist, 0)

	return out
}

func validateInput(samples []float64) error {
	if err := ValidateLength(len(samples)); err != nil {
		return err
	}

	return ValidateSamples(samples)
}
