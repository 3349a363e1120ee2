package spectrum

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-spectrum/dsp/core"
)

// Spectrum is an ordered, frequency-ascending sequence of bins together with
// the frequency resolution of the originating transform and cached aggregate
// statistics.
//
// A Spectrum is immutable after construction. ApplyScaling returns a new
// Spectrum with freshly computed statistics, so statistics are always
// consistent with the bin contents a caller can observe. For cross-goroutine
// sharing no locking is needed beyond publishing the pointer safely.
type Spectrum struct {
	bins       []Bin
	resolution float64
	min        Bin
	max        Bin
	average    float64
	median     float64
}

// New constructs a Spectrum from a finalized bin sequence and the frequency
// resolution of the original, unfiltered transform output (sampleRate/N).
//
// The bins must be strictly ascending by frequency, at least two long, and
// free of NaN/Inf values. All statistics are computed immediately.
func New(bins []Bin, resolution float64) (*Spectrum, error) {
	if len(bins) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewBins, len(bins))
	}

	if resolution <= 0 || !core.IsFinite(resolution) {
		return nil, fmt.Errorf("%w: frequency resolution %f", ErrNonFinite, resolution)
	}

	for i, b := range bins {
		if !b.valid() {
			return nil, fmt.Errorf("%w: bin %d is (%f, %f)", ErrNonFinite, i, b.Frequency, b.Value)
		}

		if b.Frequency < 0 {
			return nil, fmt.Errorf("bin %d frequency must be >= 0: %f", i, b.Frequency)
		}

		if i > 0 && bins[i].Frequency <= bins[i-1].Frequency {
			return nil, fmt.Errorf("%w: bin %d (%f Hz) after %f Hz", ErrBinsNotAscending, i, b.Frequency, bins[i-1].Frequency)
		}
	}

	s := &Spectrum{
		bins:       append([]Bin(nil), bins...),
		resolution: resolution,
	}
	s.min, s.max, s.average, s.median = calcStatistics(s.bins)

	return s, nil
}

// calcStatistics computes min, max, average, and median over a working copy
// sorted by magnitude. The live frequency-ascending order is not disturbed.
func calcStatistics(bins []Bin) (min, max Bin, average, median float64) {
	sorted := append([]Bin(nil), bins...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Value < sorted[j].Value
	})

	sum := 0.0
	for _, b := range sorted {
		sum += b.Value
	}

	n := len(sorted)
	average = sum / float64(n)

	if n%2 == 0 {
		// Power-of-two FFT sizing yields even lengths; the median is the
		// mean of the two middle magnitudes.
		median = (sorted[n/2-1].Value + sorted[n/2].Value) / 2
	} else {
		// Range filtering can leave an odd number of bins.
		median = sorted[n/2].Value
	}

	return sorted[0], sorted[n-1], average, median
}

// ApplyScaling invokes factory once with the current statistics, applies the
// resulting function to every magnitude, and returns a new Spectrum with
// statistics recomputed. Frequencies and ordering are preserved.
func (s *Spectrum) ApplyScaling(factory ScalingFactory) (*Spectrum, error) {
	if factory == nil {
		return nil, fmt.Errorf("scaling factory must not be nil")
	}

	fn := factory(s.min.Value, s.max.Value, s.average, s.median)
	if fn == nil {
		return nil, fmt.Errorf("scaling factory returned nil function")
	}

	scaled := make([]Bin, len(s.bins))
	for i, b := range s.bins {
		v := fn(b.Value)
		if !core.IsFinite(v) {
			return nil, fmt.Errorf("%w: scaled magnitude at %f Hz", ErrNonFinite, b.Frequency)
		}

		scaled[i] = Bin{Frequency: b.Frequency, Value: v}
	}

	out := &Spectrum{
		bins:       scaled,
		resolution: s.resolution,
	}
	out.min, out.max, out.average, out.median = calcStatistics(out.bins)

	return out, nil
}

// Bins returns a copy of the ordered bin sequence.
func (s *Spectrum) Bins() []Bin {
	return append([]Bin(nil), s.bins...)
}

// Len returns the number of stored bins.
func (s *Spectrum) Len() int {
	return len(s.bins)
}

// Resolution returns the Hertz spacing between adjacent indices of the
// original, unfiltered transform output.
func (s *Spectrum) Resolution() float64 {
	return s.resolution
}

// Min returns the bin holding the minimal magnitude.
func (s *Spectrum) Min() Bin {
	return s.min
}

// Max returns the bin holding the maximal magnitude.
func (s *Spectrum) Max() Bin {
	return s.max
}

// Average returns the arithmetic mean of all magnitudes.
func (s *Spectrum) Average() float64 {
	return s.average
}

// Median returns the median of all magnitudes.
func (s *Spectrum) Median() float64 {
	return s.median
}

// Range returns Max().Value - Min().Value.
func (s *Spectrum) Range() float64 {
	return s.max.Value - s.min.Value
}

// MinFrequency returns the lowest stored frequency.
func (s *Spectrum) MinFrequency() float64 {
	return s.bins[0].Frequency
}

// MaxFrequency returns the highest stored frequency.
func (s *Spectrum) MaxFrequency() float64 {
	return s.bins[len(s.bins)-1].Frequency
}

// DCComponent returns the magnitude at exactly 0 Hz. The second return is
// false when the lowest bin was filtered away from 0 Hz.
func (s *Spectrum) DCComponent() (float64, bool) {
	if s.bins[0].Frequency == 0 {
		return s.bins[0].Value, true
	}

	return 0, false
}

// ValueAt returns the magnitude at frequency f, either exactly (within a few
// ULPs of a stored frequency) or linearly interpolated between the two
// enclosing bins.
//
// Frequencies below MinFrequency or above MaxFrequency return
// ErrFrequencyOutOfRange; the query never extrapolates.
func (s *Spectrum) ValueAt(f float64) (float64, error) {
	lo := s.bins[0]
	hi := s.bins[len(s.bins)-1]

	if core.EqualULP(f, lo.Frequency, core.DefaultULPTolerance) {
		return lo.Value, nil
	}

	if core.EqualULP(f, hi.Frequency, core.DefaultULPTolerance) {
		return hi.Value, nil
	}

	if f < lo.Frequency || f > hi.Frequency {
		return 0, fmt.Errorf("%w: %f Hz not in [%f, %f]", ErrFrequencyOutOfRange, f, lo.Frequency, hi.Frequency)
	}

	for i := 0; i < len(s.bins)-1; i++ {
		a := s.bins[i]
		b := s.bins[i+1]

		// The enclosing pair satisfies a.Frequency <= f <= b.Frequency.
		if f > b.Frequency {
			continue
		}

		if core.EqualULP(f, a.Frequency, core.DefaultULPTolerance) {
			return a.Value, nil
		}

		return interpolate(a, b, f), nil
	}

	// Unreachable given the ordering invariant.
	return 0, fmt.Errorf("spectrum inconsistency: no enclosing bins for %f Hz", f)
}

// ClosestBin returns the stored bin nearest to frequency f.
//
// The distance from the lower enclosing bin is compared against half the
// frequency resolution; exactly at the midpoint the upper bin wins. The same
// bounds policy as ValueAt applies.
func (s *Spectrum) ClosestBin(f float64) (Bin, error) {
	lo := s.bins[0]
	hi := s.bins[len(s.bins)-1]

	if core.EqualULP(f, lo.Frequency, core.DefaultULPTolerance) {
		return lo, nil
	}

	if core.EqualULP(f, hi.Frequency, core.DefaultULPTolerance) {
		return hi, nil
	}

	if f < lo.Frequency || f > hi.Frequency {
		return Bin{}, fmt.Errorf("%w: %f Hz not in [%f, %f]", ErrFrequencyOutOfRange, f, lo.Frequency, hi.Frequency)
	}

	for i := 0; i < len(s.bins)-1; i++ {
		a := s.bins[i]
		b := s.bins[i+1]

		if f > b.Frequency {
			continue
		}

		if core.EqualULP(f, a.Frequency, core.DefaultULPTolerance) {
			return a, nil
		}

		if (f-a.Frequency)/s.resolution < 0.5 {
			return a, nil
		}

		return b, nil
	}

	return Bin{}, fmt.Errorf("spectrum inconsistency: no enclosing bins for %f Hz", f)
}

// ToMap exports the spectrum as an integer-keyed map for interchange with
// consumers that cannot key on floats. keyFn converts a frequency to its
// key; nil truncates to int. Colliding keys keep the last bin's value.
func (s *Spectrum) ToMap(keyFn func(float64) int) map[int]float64 {
	out := make(map[int]float64, len(s.bins))
	for _, b := range s.bins {
		key := int(b.Frequency)
		if keyFn != nil {
			key = keyFn(b.Frequency)
		}

		out[key] = b.Value
	}

	return out
}

// interpolate returns the y value at x on the line through bins a and b.
func interpolate(a, b Bin, x float64) float64 {
	slope := (b.Value - a.Value) / (b.Frequency - a.Frequency)
	intercept := a.Value - slope*a.Frequency

	return slope*x + intercept
}
