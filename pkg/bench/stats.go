// Package bench repeats runs and summarizes their timings.
package bench

import (
	"errors"
	"math"
	"slices"
	"time"
)

// ErrNoSamples is returned when there is nothing to summarize.
var ErrNoSamples = errors.New("bench: no samples")

// z95 is the two-sided 95% normal quantile.
const z95 = 1.96

// Stats summarizes a sample of timings, in microseconds.
type Stats struct {
	N            int
	Mean         float64
	HarmonicMean float64
	Median       float64
	Min          float64
	Max          float64
	Variance     float64
	StdDev       float64
	StdErr       float64
	// CI95 is the half-width of the 95% confidence interval of the mean.
	CI95 float64
}

// Summarize computes Stats over samples. Variance is the population
// variance. The median is the upper median for even counts. HarmonicMean is
// zero when any sample is not positive.
func Summarize(samples []float64) (Stats, error) {
	if len(samples) == 0 {
		return Stats{}, ErrNoSamples
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	n := float64(len(sorted))
	s := Stats{
		N:      len(sorted),
		Median: sorted[len(sorted)/2],
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}

	var sum, inv float64
	positive := true
	for _, x := range sorted {
		sum += x
		if x <= 0 {
			positive = false
		} else {
			inv += 1 / x
		}
	}
	s.Mean = sum / n
	if positive {
		s.HarmonicMean = n / inv
	}

	var sq float64
	for _, x := range sorted {
		d := x - s.Mean
		sq += d * d
	}
	s.Variance = sq / n
	s.StdDev = math.Sqrt(s.Variance)
	s.StdErr = s.StdDev / math.Sqrt(n)
	s.CI95 = z95 * s.StdErr
	return s, nil
}

// Micros converts durations to microsecond samples.
func Micros(ds []time.Duration) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = float64(d) / float64(time.Microsecond)
	}
	return out
}
