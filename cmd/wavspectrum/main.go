// Command wavspectrum prints the frequency spectrum of a WAV file block.
//
// Usage:
//
//	wavspectrum [flags] file.wav
//
// It decodes the file, takes a power-of-two block of samples, applies a
// window, runs the FFT, and prints resolution, aggregate statistics, and the
// strongest bins. Individual frequencies can be queried with -freq.
//
// Examples:
//
//	wavspectrum recording.wav
//	wavspectrum -size 4096 -window hamming -peaks 20 recording.wav
//	wavspectrum -min 20 -max 8000 -db recording.wav
//	wavspectrum -freq 440 -freq 880 recording.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-spectrum/dsp/analyzer"
	"github.com/cwbudde/algo-spectrum/dsp/scaling"
	"github.com/cwbudde/algo-spectrum/dsp/spectrum"
	"github.com/cwbudde/algo-spectrum/dsp/window"
	"github.com/cwbudde/algo-spectrum/fft"
	statsfreq "github.com/cwbudde/algo-spectrum/stats/frequency"
)

var windowsByName = map[string]window.Type{
	"rectangular": window.TypeRectangular,
	"hann":        window.TypeHann,
	"hamming":     window.TypeHamming,
	"blackman":    window.TypeBlackman,
	"flat-top":    window.TypeFlatTop,
	"kaiser":      window.TypeKaiser,
}

var backendsByName = map[string]fft.Backend{
	"plan":  fft.PlanBackend{},
	"real":  fft.RealBackend{},
	"radix": fft.RadixBackend{},
}

// freqList collects repeatable -freq flags.
type freqList []float64

func (f *freqList) String() string {
	parts := make([]string, len(*f))
	for i, v := range *f {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (f *freqList) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = append(*f, v)
	return nil
}

func main() {
	size := flag.Int("size", 4096, "block length in samples (power of two)")
	windowName := flag.String("window", "hann", "window function (rectangular, hann, hamming, blackman, flat-top, kaiser)")
	backendName := flag.String("backend", "plan", "FFT backend (plan, real, radix)")
	minFreq := flag.Float64("min", 0, "lower frequency bound in Hz (inclusive)")
	maxFreq := flag.Float64("max", 0, "upper frequency bound in Hz (inclusive, 0 = Nyquist)")
	peaks := flag.Int("peaks", 10, "number of strongest bins to print")
	useDB := flag.Bool("db", false, "print magnitudes in dB instead of linear")

	var queries freqList
	flag.Var(&queries, "freq", "query the interpolated value at this frequency in Hz (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wavspectrum [flags] file.wav\n\n")
		fmt.Fprintf(os.Stderr, "Prints the frequency spectrum of a WAV file block.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *size, *windowName, *backendName, *minFreq, *maxFreq, *peaks, *useDB, queries); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, size int, windowName, backendName string, minFreq, maxFreq float64, peaks int, useDB bool, queries []float64) error {
	winType, ok := windowsByName[strings.ToLower(windowName)]
	if !ok {
		return fmt.Errorf("unknown window %q", windowName)
	}

	backend, ok := backendsByName[strings.ToLower(backendName)]
	if !ok {
		return fmt.Errorf("unknown backend %q", backendName)
	}

	samples, sampleRate, err := readWAV(path)
	if err != nil {
		return err
	}

	if len(samples) < size {
		return fmt.Errorf("file has %d samples, need at least %d", len(samples), size)
	}

	opts := []analyzer.Option{
		analyzer.WithBackend(backend),
		analyzer.WithWindow(winType, window.WithPeriodic()),
		analyzer.WithScaling(scaling.DivideByN(size)),
	}

	if minFreq > 0 || maxFreq > 0 {
		upper := maxFreq
		if upper <= 0 {
			upper = sampleRate / 2
		}
		opts = append(opts, analyzer.WithRange(minFreq, upper))
	}

	if useDB {
		opts = append(opts, analyzer.WithScaling(scaling.ToDecibels()))
	}

	s, err := analyzer.SamplesToSpectrum(samples[:size], sampleRate, opts...)
	if err != nil {
		return err
	}

	printSummary(s, useDB)
	printPeaks(s, peaks, useDB)

	for _, q := range queries {
		v, err := s.ValueAt(q)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}
		fmt.Printf("value at %g Hz: %g\n", q, v)
	}

	return nil
}

// readWAV decodes a WAV file into normalized float64 samples.
func readWAV(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}

	scale := float64(audio.IntMaxSignedValue(int(decoder.BitDepth)))
	samples := make([]float64, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float64(s) / scale
	}

	return samples, float64(decoder.SampleRate), nil
}

func printSummary(s *spectrum.Spectrum, useDB bool) {
	unit := ""
	if useDB {
		unit = " dB"
	}

	descriptors := statsfreq.Calculate(s)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "bins\t%d\n", s.Len())
	fmt.Fprintf(tw, "resolution\t%.3f Hz\n", s.Resolution())
	fmt.Fprintf(tw, "range\t%.1f - %.1f Hz\n", s.MinFrequency(), s.MaxFrequency())

	if dc, ok := s.DCComponent(); ok {
		fmt.Fprintf(tw, "dc\t%.6g%s\n", dc, unit)
	}

	fmt.Fprintf(tw, "min\t%.6g%s at %.1f Hz\n", s.Min().Value, unit, s.Min().Frequency)
	fmt.Fprintf(tw, "max\t%.6g%s at %.1f Hz\n", s.Max().Value, unit, s.Max().Frequency)
	fmt.Fprintf(tw, "average\t%.6g%s\n", s.Average(), unit)
	fmt.Fprintf(tw, "median\t%.6g%s\n", s.Median(), unit)
	fmt.Fprintf(tw, "centroid\t%.1f Hz\n", descriptors.Centroid)
	fmt.Fprintf(tw, "flatness\t%.4f\n", descriptors.Flatness)
	fmt.Fprintf(tw, "rolloff\t%.1f Hz\n", descriptors.Rolloff)
	tw.Flush()
}

func printPeaks(s *spectrum.Spectrum, count int, useDB bool) {
	if count <= 0 {
		return
	}

	bins := s.Bins()
	sort.Slice(bins, func(i, j int) bool {
		return bins[i].Value > bins[j].Value
	})

	if count > len(bins) {
		count = len(bins)
	}

	unit := ""
	if useDB {
		unit = " [dB]"
	}

	fmt.Println()
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frequency [Hz]\tMagnitude%s\n", unit)
	for _, b := range bins[:count] {
		fmt.Fprintf(tw, "%.1f\t%.6g\n", b.Frequency, b.Value)
	}
	tw.Flush()
}
