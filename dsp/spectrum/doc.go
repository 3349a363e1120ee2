// Package spectrum converts complex FFT output into a labeled, queryable
// frequency spectrum.
//
// The package intentionally does not implement FFT itself. It operates on
// complex bins produced by external FFT backends (see the fft package) and
// provides two components: a bin mapper that turns raw bins into ordered
// (frequency, magnitude) pairs, and a spectrum store that owns the final
// sequence, caches aggregate statistics, and answers point queries.
package spectrum
