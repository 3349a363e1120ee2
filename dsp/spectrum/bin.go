package spectrum

import "github.com/cwbudde/algo-spectrum/dsp/core"

// Bin is one (frequency, magnitude) sample point of a spectrum.
//
// Frequency is in Hertz and never changes after the bin is created. Value is
// the magnitude at that frequency; rescaling replaces values wholesale, so a
// derived value may be negative after scaling.
type Bin struct {
	Frequency float64
	Value     float64
}

// valid reports whether both fields are finite.
func (b Bin) valid() bool {
	return core.IsFinite(b.Frequency) && core.IsFinite(b.Value)
}

// ScaleFunc transforms a single magnitude. It is applied per element and
// never sees or changes frequencies.
type ScaleFunc func(float64) float64

// ScalingFactory builds a ScaleFunc from the spectrum's current statistics.
//
// The factory is invoked once per rescale with the statistics computed from
// the pre-scale magnitudes, so scaling functions can normalize relative to
// the spectrum's own extrema (for example subtract the minimum) without a
// separate caller-side pass.
type ScalingFactory func(min, max, average, median float64) ScaleFunc
