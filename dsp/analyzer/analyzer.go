// Package analyzer wires the transform backends, the bin mapper, and the
// spectrum store into a single samples-to-spectrum call.
package analyzer

import (
	"fmt"

	"github.com/cwbudde/algo-spectrum/dsp/spectrum"
	"github.com/cwbudde/algo-spectrum/dsp/window"
	"github.com/cwbudde/algo-spectrum/fft"
)

// Option configures spectrum analysis.
type Option func(*config)

type config struct {
	backend      fft.Backend
	windowType   window.Type
	windowOpts   []window.Option
	useWindow    bool
	mapOpts      []spectrum.MapOption
	totalScaling spectrum.ScalingFactory
}

// WithBackend selects the FFT backend. Default is the plan-based backend.
func WithBackend(b fft.Backend) Option {
	return func(c *config) {
		if b != nil {
			c.backend = b
		}
	}
}

// WithWindow tapers the sample block with the given window before the
// transform. Default is no windowing (rectangular).
func WithWindow(t window.Type, opts ...window.Option) Option {
	return func(c *config) {
		c.windowType = t
		c.windowOpts = opts
		c.useWindow = true
	}
}

// WithRange restricts the spectrum to the inclusive frequency range
// [min, max] in Hertz.
func WithRange(min, max float64) Option {
	return func(c *config) {
		c.mapOpts = append(c.mapOpts, spectrum.WithRange(min, max))
	}
}

// WithScaling applies fn to each magnitude during bin mapping.
func WithScaling(fn spectrum.ScaleFunc) Option {
	return func(c *config) {
		c.mapOpts = append(c.mapOpts, spectrum.WithScaling(fn))
	}
}

// WithTotalScaling rescales the constructed spectrum once, with the factory
// seeing the statistics of the unscaled spectrum.
func WithTotalScaling(factory spectrum.ScalingFactory) Option {
	return func(c *config) {
		c.totalScaling = factory
	}
}

// SamplesToSpectrum converts a block of time-domain samples into a queryable
// frequency spectrum: validate, optionally window, transform, map bins,
// construct, optionally rescale.
//
// The sample count must be a power of two in [fft.MinSize, fft.MaxSize] and
// free of NaN/Inf values; sampleRate is in Hertz.
func SamplesToSpectrum(samples []float64, sampleRate float64, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := config{backend: fft.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := fft.ValidateLength(len(samples)); err != nil {
		return nil, err
	}

	if err := fft.ValidateSamples(samples); err != nil {
		return nil, err
	}

	block := append([]float64(nil), samples...)
	if cfg.useWindow {
		window.Apply(cfg.windowType, block, cfg.windowOpts...)
	}

	oneSided, err := cfg.backend.Transform(block)
	if err != nil {
		return nil, fmt.Errorf("%s backend: %w", cfg.backend.Name(), err)
	}

	bins, resolution, err := spectrum.MapOneSided(oneSided, len(block), sampleRate, cfg.mapOpts...)
	if err != nil {
		return nil, err
	}

	s, err := spectrum.New(bins, resolution)
	if err != nil {
		return nil, err
	}

	if cfg.totalScaling != nil {
		return s.ApplyScaling(cfg.totalScaling)
	}

	return s, nil
}
