package spectrum

import (
	"errors"
	"math"
	"testing"
)

func TestMapKeepsOneSidedHalf(t *testing.T) {
	// N=8 real-FFT output: exactly N/2+1 = 5 bins from DC through Nyquist.
	fftOut := make([]complex128, 8)
	fftOut[1] = 3 + 4i
	fftOut[7] = 3 - 4i // mirrored half, must be discarded

	bins, resolution, err := Map(fftOut, 8000)
	if err != nil {
		t.Fatalf("Map error: %v", err)
	}

	if len(bins) != 5 {
		t.Fatalf("bin count=%d want=5", len(bins))
	}

	if resolution != 1000 {
		t.Fatalf("resolution=%f want=1000", resolution)
	}

	for i, b := range bins {
		if want := float64(i) * 1000; b.Frequency != want {
			t.Fatalf("bin %d frequency=%f want=%f", i, b.Frequency, want)
		}
	}

	if bins[1].Value != 5 {
		t.Fatalf("bin 1 magnitude=%f want=5 (|3+4i|)", bins[1].Value)
	}

	if bins[4].Frequency != 4000 {
		t.Fatalf("last bin must be Nyquist (4000 Hz), got %f", bins[4].Frequency)
	}
}

func TestMapRangeFilterInclusive(t *testing.T) {
	fftOut := make([]complex128, 8)
	for i := range fftOut {
		fftOut[i] = complex(float64(i+1), 0)
	}

	bins, resolution, err := Map(fftOut, 8000, WithRange(1000, 3000))
	if err != nil {
		t.Fatalf("Map error: %v", err)
	}

	if len(bins) != 3 {
		t.Fatalf("filtered bin count=%d want=3", len(bins))
	}

	if bins[0].Frequency != 1000 || bins[2].Frequency != 3000 {
		t.Fatalf("bounds must be inclusive: got [%f, %f]", bins[0].Frequency, bins[2].Frequency)
	}

	// Resolution describes the original transform, not the filtered range.
	if resolution != 1000 {
		t.Fatalf("resolution=%f want=1000 despite filtering", resolution)
	}
}

func TestMapScalingAfterFilter(t *testing.T) {
	fftOut := make([]complex128, 8)
	fftOut[0] = complex(math.Inf(1), 0)
	fftOut[2] = 2 + 0i

	// The infinite DC bin is dropped by the filter before scaling runs, so
	// mapping must still fail on the pre-scaling finiteness check.
	_, _, err := Map(fftOut, 8000, WithMinFrequency(1000))
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("non-finite FFT bin must fail even when filtered, got %v", err)
	}

	fftOut[0] = 0
	bins, _, err := Map(fftOut, 8000,
		WithMinFrequency(1000),
		WithScaling(func(v float64) float64 { return v * 10 }),
	)
	if err != nil {
		t.Fatalf("Map error: %v", err)
	}

	if bins[1].Value != 20 {
		t.Fatalf("scaled magnitude=%f want=20", bins[1].Value)
	}
}

func TestMapScalingComposes(t *testing.T) {
	fftOut := make([]complex128, 4)
	fftOut[1] = 3 + 4i

	bins, _, err := Map(fftOut, 8000,
		WithScaling(func(v float64) float64 { return v + 1 }),
		WithScaling(func(v float64) float64 { return v * 2 }),
	)
	if err != nil {
		t.Fatalf("Map error: %v", err)
	}

	// (5 + 1) * 2 applied in option order.
	if bins[1].Value != 12 {
		t.Fatalf("composed scaling=%f want=12", bins[1].Value)
	}
}

func TestMapScalingRejectsNonFiniteResult(t *testing.T) {
	fftOut := make([]complex128, 4)

	_, _, err := Map(fftOut, 8000, WithScaling(func(v float64) float64 {
		return math.Log(v) // log(0) = -Inf
	}))
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("non-finite scaled magnitude must fail, got %v", err)
	}
}

func TestMapValidation(t *testing.T) {
	if _, _, err := Map([]complex128{1}, 8000); !errors.Is(err, ErrTooFewBins) {
		t.Fatalf("length-1 input must fail, got %v", err)
	}

	if _, _, err := Map(make([]complex128, 8), 0); err == nil {
		t.Fatalf("zero sample rate must fail")
	}

	if _, _, err := Map(make([]complex128, 8), math.NaN()); err == nil {
		t.Fatalf("NaN sample rate must fail")
	}

	in := make([]complex128, 8)
	in[3] = complex(0, math.NaN())
	if _, _, err := Map(in, 8000); !errors.Is(err, ErrNonFinite) {
		t.Fatalf("NaN FFT bin must fail, got %v", err)
	}
}

func TestMapOneSided(t *testing.T) {
	oneSided := []complex128{1, 0 + 2i, 3, 0 - 4i, 5}

	bins, resolution, err := MapOneSided(oneSided, 8, 8000)
	if err != nil {
		t.Fatalf("MapOneSided error: %v", err)
	}

	if len(bins) != 5 {
		t.Fatalf("bin count=%d want=5", len(bins))
	}

	if resolution != 1000 {
		t.Fatalf("resolution=%f want=1000", resolution)
	}

	want := []float64{1, 2, 3, 4, 5}
	for i, b := range bins {
		if math.Abs(b.Value-want[i]) > 1e-12 {
			t.Fatalf("bin %d magnitude=%f want=%f", i, b.Value, want[i])
		}
	}
}

func TestMapOneSidedLengthMismatch(t *testing.T) {
	if _, _, err := MapOneSided(make([]complex128, 4), 8, 8000); err == nil {
		t.Fatalf("one-sided length != fftSize/2+1 must fail")
	}

	if _, _, err := MapOneSided(make([]complex128, 2), 1, 8000); !errors.Is(err, ErrTooFewBins) {
		t.Fatalf("fftSize<2 must fail with ErrTooFewBins, got %v", err)
	}
}

func TestMapFeedsSpectrum(t *testing.T) {
	fftOut := make([]complex128, 8)
	fftOut[1] = 3 + 4i
	fftOut[2] = 0 + 1i

	bins, resolution, err := Map(fftOut, 8000)
	if err != nil {
		t.Fatalf("Map error: %v", err)
	}

	s, err := New(bins, resolution)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if got := s.Max(); got.Frequency != 1000 || got.Value != 5 {
		t.Fatalf("Max=%+v want={1000 5}", got)
	}

	dc, ok := s.DCComponent()
	if !ok || dc != 0 {
		t.Fatalf("DCComponent=(%f,%v) want=(0,true)", dc, ok)
	}
}
