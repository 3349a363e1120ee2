package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectrum/dsp/spectrum"
)

func ExampleNew() {
	bins := []spectrum.Bin{
		{Frequency: 0, Value: 5},
		{Frequency: 50, Value: 50},
		{Frequency: 100, Value: 100},
		{Frequency: 150, Value: 150},
	}

	s, _ := spectrum.New(bins, 50)
	fmt.Printf("max=%.0fHz avg=%.2f\n", s.Max().Frequency, s.Average())
	// Output:
	// max=150Hz avg=76.25
}

func ExampleSpectrum_ValueAt() {
	bins := []spectrum.Bin{
		{Frequency: 100, Value: 1},
		{Frequency: 200, Value: 0},
	}

	s, _ := spectrum.New(bins, 100)
	v, _ := s.ValueAt(150)
	fmt.Printf("%.1f\n", v)
	// Output:
	// 0.5
}

func ExampleSpectrum_ApplyScaling() {
	bins := []spectrum.Bin{
		{Frequency: 0, Value: 10},
		{Frequency: 50, Value: 30},
	}

	s, _ := spectrum.New(bins, 50)
	normalized, _ := s.ApplyScaling(func(min, max, average, median float64) spectrum.ScaleFunc {
		return func(v float64) float64 { return v - min }
	})

	fmt.Printf("min=%.0f max=%.0f\n", normalized.Min().Value, normalized.Max().Value)
	// Output:
	// min=0 max=20
}

func ExampleMap() {
	fftOut := make([]complex128, 8)
	fftOut[1] = 3 + 4i

	bins, resolution, _ := spectrum.Map(fftOut, 8000)
	fmt.Printf("bins=%d resolution=%.0fHz |bin1|=%.0f\n", len(bins), resolution, bins[1].Value)
	// Output:
	// bins=5 resolution=1000Hz |bin1|=5
}
