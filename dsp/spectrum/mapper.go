package spectrum

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectrum/dsp/core"
)

// MapOption configures bin mapping.
type MapOption func(*mapConfig)

type mapConfig struct {
	minFreq float64
	maxFreq float64
	hasMin  bool
	hasMax  bool
	scale   ScaleFunc
}

// WithRange restricts the mapped bins to the inclusive frequency range
// [min, max] in Hertz. Bins outside the range are dropped entirely, not
// retained with zero magnitude.
func WithRange(min, max float64) MapOption {
	return func(c *mapConfig) {
		if min > max {
			min, max = max, min
		}

		c.minFreq = min
		c.maxFreq = max
		c.hasMin = true
		c.hasMax = true
	}
}

// WithMinFrequency restricts mapping to frequencies >= min (inclusive).
func WithMinFrequency(min float64) MapOption {
	return func(c *mapConfig) {
		c.minFreq = min
		c.hasMin = true
	}
}

// WithMaxFrequency restricts mapping to frequencies <= max (inclusive).
func WithMaxFrequency(max float64) MapOption {
	return func(c *mapConfig) {
		c.maxFreq = max
		c.hasMax = true
	}
}

// WithScaling applies fn to each magnitude after range filtering, before
// bin construction. Repeated options compose in the order given.
func WithScaling(fn ScaleFunc) MapOption {
	return func(c *mapConfig) {
		if fn == nil {
			return
		}

		if c.scale == nil {
			c.scale = fn
			return
		}

		prev := c.scale
		c.scale = func(v float64) float64 { return fn(prev(v)) }
	}
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Map converts full-length complex FFT output into an ordered sequence of
// (frequency, magnitude) bins plus the frequency resolution in Hertz.
//
// Only the first N/2+1 values are mapped; the remainder are the mirrored
// negative-frequency half of a real-valued-input transform and are discarded
// unconditionally. The frequency of index i is i*sampleRate/N, the magnitude
// is the Euclidean norm of the complex value.
//
// The returned resolution is sampleRate/N, a property of the original
// transform that holds even when bins are filtered to a sub-range.
func Map(fftOut []complex128, sampleRate float64, opts ...MapOption) ([]Bin, float64, error) {
	n := len(fftOut)
	if n < 2 {
		return nil, 0, fmt.Errorf("%w: FFT output length %d", ErrTooFewBins, n)
	}

	return mapBins(fftOut[:n/2+1], n, sampleRate, opts)
}

// MapOneSided converts one-sided FFT output (bins 0 through Nyquist, as
// produced by real-input-optimized backends) into ordered bins. fftSize is
// the original transform length N; len(bins) must equal N/2+1.
func MapOneSided(bins []complex128, fftSize int, sampleRate float64, opts ...MapOption) ([]Bin, float64, error) {
	if fftSize < 2 {
		return nil, 0, fmt.Errorf("%w: FFT size %d", ErrTooFewBins, fftSize)
	}

	if len(bins) != fftSize/2+1 {
		return nil, 0, fmt.Errorf("one-sided bin count must be fftSize/2+1: got %d for size %d", len(bins), fftSize)
	}

	return mapBins(bins, fftSize, sampleRate, opts)
}

func mapBins(relevant []complex128, fftSize int, sampleRate float64, opts []MapOption) ([]Bin, float64, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, 0, fmt.Errorf("sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := mapConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	for i, c := range relevant {
		if !core.IsFinite(real(c)) || !core.IsFinite(imag(c)) {
			return nil, 0, fmt.Errorf("%w: FFT bin %d is %v", ErrNonFinite, i, c)
		}
	}

	resolution := sampleRate / float64(fftSize)

	mag := make([]float64, len(relevant))
	re, im, buf := getScratch(len(relevant))
	for i, c := range relevant {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Magnitude(mag, re, im)
	putScratch(buf)

	out := make([]Bin, 0, len(relevant))
	for i, m := range mag {
		freq := float64(i) * resolution
		if cfg.hasMin && freq < cfg.minFreq {
			continue
		}
		if cfg.hasMax && freq > cfg.maxFreq {
			continue
		}

		if cfg.scale != nil {
			m = cfg.scale(m)
			if !core.IsFinite(m) {
				return nil, 0, fmt.Errorf("%w: scaled magnitude at %f Hz", ErrNonFinite, freq)
			}
		}

		out = append(out, Bin{Frequency: freq, Value: m})
	}

	return out, resolution, nil
}
