package frequency

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectrum/dsp/spectrum"
)

func mustSpectrum(t *testing.T, bins []spectrum.Bin) *spectrum.Spectrum {
	t.Helper()

	s, err := spectrum.New(bins, 100)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	return s
}

func TestCalculateSingleTone(t *testing.T) {
	s := mustSpectrum(t, []spectrum.Bin{
		{Frequency: 0, Value: 0},
		{Frequency: 100, Value: 0},
		{Frequency: 200, Value: 4},
		{Frequency: 300, Value: 0},
	})

	stats := Calculate(s)

	if stats.BinCount != 4 {
		t.Fatalf("BinCount=%d want=4", stats.BinCount)
	}

	if stats.Energy != 16 {
		t.Fatalf("Energy=%f want=16", stats.Energy)
	}

	if stats.Power != 4 {
		t.Fatalf("Power=%f want=4", stats.Power)
	}

	// All amplitude sits at 200 Hz.
	if stats.Centroid != 200 {
		t.Fatalf("Centroid=%f want=200", stats.Centroid)
	}

	if stats.Spread != 0 {
		t.Fatalf("Spread=%f want=0", stats.Spread)
	}

	if stats.Rolloff != 200 {
		t.Fatalf("Rolloff=%f want=200", stats.Rolloff)
	}

	// A zero bin forces flatness to zero.
	if stats.Flatness != 0 {
		t.Fatalf("Flatness=%f want=0", stats.Flatness)
	}
}

func TestCentroidSymmetric(t *testing.T) {
	s := mustSpectrum(t, []spectrum.Bin{
		{Frequency: 100, Value: 1},
		{Frequency: 200, Value: 2},
		{Frequency: 300, Value: 1},
	})

	if got := Centroid(s); got != 200 {
		t.Fatalf("Centroid=%f want=200 (symmetric spectrum)", got)
	}
}

func TestFlatnessFlatSpectrum(t *testing.T) {
	s := mustSpectrum(t, []spectrum.Bin{
		{Frequency: 0, Value: 3},
		{Frequency: 100, Value: 2},
		{Frequency: 200, Value: 2},
		{Frequency: 300, Value: 2},
	})

	// Non-DC bins are all equal: geometric mean equals arithmetic mean.
	if got := Flatness(s); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Flatness=%f want=1", got)
	}
}

func TestFlatnessExcludesDC(t *testing.T) {
	withDC := mustSpectrum(t, []spectrum.Bin{
		{Frequency: 0, Value: 1000},
		{Frequency: 100, Value: 2},
		{Frequency: 200, Value: 8},
	})

	noDC := mustSpectrum(t, []spectrum.Bin{
		{Frequency: 100, Value: 2},
		{Frequency: 200, Value: 8},
	})

	if got, want := Flatness(withDC), Flatness(noDC); math.Abs(got-want) > 1e-12 {
		t.Fatalf("DC bin must not affect flatness: %f vs %f", got, want)
	}
}

func TestRolloff(t *testing.T) {
	s := mustSpectrum(t, []spectrum.Bin{
		{Frequency: 0, Value: 3},
		{Frequency: 100, Value: 3},
		{Frequency: 200, Value: 3},
		{Frequency: 300, Value: 1},
	})

	// Energy: 9+9+9+1 = 28; 50% threshold of 14 is crossed at 100 Hz.
	if got := Rolloff(s, 0.5); got != 100 {
		t.Fatalf("Rolloff(0.5)=%f want=100", got)
	}

	// Full energy is reached only at the last bin.
	if got := Rolloff(s, 1.0); got != 300 {
		t.Fatalf("Rolloff(1.0)=%f want=300", got)
	}
}

func TestSpreadTwoTones(t *testing.T) {
	s := mustSpectrum(t, []spectrum.Bin{
		{Frequency: 100, Value: 1},
		{Frequency: 300, Value: 1},
	})

	stats := Calculate(s)

	if stats.Centroid != 200 {
		t.Fatalf("Centroid=%f want=200", stats.Centroid)
	}

	if math.Abs(stats.Spread-100) > 1e-12 {
		t.Fatalf("Spread=%f want=100", stats.Spread)
	}
}
