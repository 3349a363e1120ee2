// Package frequency computes spectral shape descriptors from a constructed
// spectrum. Each descriptor uses the bins' actual frequencies, so the
// results stay meaningful for range-filtered spectra.
package frequency

import (
	"math"

	"github.com/cwbudde/algo-spectrum/dsp/spectrum"
)

// defaultRolloffPercent is the energy fraction for the rolloff frequency.
const defaultRolloffPercent = 0.85

// Stats holds spectral shape descriptors computed from a magnitude spectrum.
type Stats struct {
	BinCount int
	Energy   float64 // sum of squared magnitudes
	Power    float64 // Energy / BinCount
	Centroid float64 // amplitude-weighted mean frequency (Hz)
	Spread   float64 // amplitude-weighted std deviation around the centroid (Hz)
	Flatness float64 // Wiener entropy, 0..1, DC bin excluded
	Rolloff  float64 // frequency below which 85% of the energy lies (Hz)
}

// Calculate computes all descriptors from the spectrum's bins.
func Calculate(s *spectrum.Spectrum) Stats {
	bins := s.Bins()

	var out Stats
	out.BinCount = len(bins)

	sumMag := 0.0
	for _, b := range bins {
		out.Energy += b.Value * b.Value
		sumMag += b.Value
	}
	out.Power = out.Energy / float64(len(bins))

	out.Centroid = centroid(bins, sumMag)
	out.Spread = spread(bins, out.Centroid, sumMag)
	out.Flatness = flatness(bins)
	out.Rolloff = rolloff(bins, defaultRolloffPercent, out.Energy)

	return out
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(s *spectrum.Spectrum) float64 {
	bins := s.Bins()

	sumMag := 0.0
	for _, b := range bins {
		sumMag += b.Value
	}

	return centroid(bins, sumMag)
}

func centroid(bins []spectrum.Bin, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}

	weightedSum := 0.0
	for _, b := range bins {
		weightedSum += b.Frequency * b.Value
	}

	return weightedSum / sumMag
}

func spread(bins []spectrum.Bin, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}

	weightedSqSum := 0.0
	for _, b := range bins {
		diff := b.Frequency - cent
		weightedSqSum += diff * diff * b.Value
	}

	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
//	flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// The DC bin, if present, is excluded. A zero magnitude anywhere makes the
// geometric mean zero, so flatness is zero.
func Flatness(s *spectrum.Spectrum) float64 {
	return flatness(s.Bins())
}

func flatness(bins []spectrum.Bin) float64 {
	start := 0
	if bins[0].Frequency == 0 {
		start = 1
	}

	n := len(bins) - start
	if n < 1 {
		return 0
	}

	sumLin := 0.0
	sumLog := 0.0
	hasZero := false

	for _, b := range bins[start:] {
		sumLin += b.Value
		if b.Value > 0 {
			sumLog += math.Log(b.Value)
		} else {
			hasZero = true
		}
	}

	meanLin := sumLin / float64(n)
	if meanLin == 0 || hasZero {
		return 0
	}

	return math.Exp(sumLog/float64(n)) / meanLin
}

// Rolloff returns the frequency below which the given fraction (0..1) of
// spectral energy lies.
func Rolloff(s *spectrum.Spectrum, percent float64) float64 {
	bins := s.Bins()

	energy := 0.0
	for _, b := range bins {
		energy += b.Value * b.Value
	}

	return rolloff(bins, percent, energy)
}

func rolloff(bins []spectrum.Bin, percent, totalEnergy float64) float64 {
	if totalEnergy == 0 {
		return 0
	}

	threshold := percent * totalEnergy
	cumEnergy := 0.0
	for _, b := range bins {
		cumEnergy += b.Value * b.Value
		if cumEnergy >= threshold {
			return b.Frequency
		}
	}

	return bins[len(bins)-1].Frequency
}
