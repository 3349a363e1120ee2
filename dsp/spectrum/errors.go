package spectrum

import "errors"

var (
	// ErrTooFewBins is returned when a spectrum would hold fewer than two bins.
	ErrTooFewBins = errors.New("spectrum requires at least 2 bins")

	// ErrBinsNotAscending is returned when bins are not strictly ordered by
	// ascending frequency.
	ErrBinsNotAscending = errors.New("spectrum bins must be strictly ascending by frequency")

	// ErrNonFinite is returned when a frequency, magnitude, or resolution is
	// NaN or infinite.
	ErrNonFinite = errors.New("spectrum values must be finite")

	// ErrFrequencyOutOfRange is returned by point queries for frequencies
	// below the lowest or above the highest stored frequency. Queries never
	// extrapolate or clamp.
	ErrFrequencyOutOfRange = errors.New("frequency out of spectrum range")
)
