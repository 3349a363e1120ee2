package fft

import (
	"fmt"

	"github.com/argusdusty/gofft"
	algofft "github.com/cwbudde/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// PlanBackend computes the transform with a plan-based complex FFT and cuts
// the result to the one-sided half.
type PlanBackend struct{}

// Name returns the backend identifier.
func (PlanBackend) Name() string { return "plan" }

// Transform implements Backend.
func (PlanBackend) Transform(samples []float64) ([]complex128, error) {
	if err := validateInput(samples); err != nil {
		return nil, err
	}

	n := len(samples)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft plan for size %d: %w", n, err)
	}

	in := make([]complex128, n)
	for i, v := range samples {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fft forward for size %d: %w", n, err)
	}

	return out[:n/2+1], nil
}

// RealBackend computes the transform with a real-input FFT that natively
// produces one-sided coefficients.
type RealBackend struct{}

// Name returns the backend identifier.
func (RealBackend) Name() string { return "real" }

// Transform implements Backend.
func (RealBackend) Transform(samples []float64) ([]complex128, error) {
	if err := validateInput(samples); err != nil {
		return nil, err
	}

	return fourier.NewFFT(len(samples)).Coefficients(nil, samples), nil
}

// RadixBackend computes the transform with an in-place radix-2 complex FFT
// and cuts the result to the one-sided half.
type RadixBackend struct{}

// Name returns the backend identifier.
func (RadixBackend) Name() string { return "radix" }

// Transform implements Backend.
func (RadixBackend) Transform(samples []float64) ([]complex128, error) {
	if err := validateInput(samples); err != nil {
		return nil, err
	}

	buf := gofft.Float64ToComplex128Array(samples)
	if err := gofft.FFT(buf); err != nil {
		return nil, fmt.Errorf("radix fft for size %d: %w", len(samples), err)
	}

	return buf[:len(samples)/2+1], nil
}
