package dinebench

import (
	"math"
	"time"
)

// Statistics summarizes per-agent hunger samples, all in milliseconds.
type Statistics struct {
	Count  int     `yaml:"count" json:"count"`
	Mean   float64 `yaml:"mean_ms" json:"mean_ms"`
	Stddev float64 `yaml:"stddev_ms" json:"stddev_ms"` // Population, divides by Count
	Min    float64 `yaml:"min_ms" json:"min_ms"`
	Max    float64 `yaml:"max_ms" json:"max_ms"`
}

// Aggregate reduces samples to their mean and population standard deviation.
// A single sample has a standard deviation of exactly zero; no samples gives
// the zero Statistics.
func Aggregate(samples []float64) Statistics {
	if len(samples) == 0 {
		return Statistics{}
	}

	stats := Statistics{
		Count: len(samples),
		Min:   samples[0],
		Max:   samples[0],
	}

	var sum float64
	for _, v := range samples {
		sum += v
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
	}
	stats.Mean = sum / float64(len(samples))

	if len(samples) == 1 {
		return stats
	}

	var variance float64
	for _, v := range samples {
		diff := v - stats.Mean
		variance += diff * diff
	}
	stats.Stddev = math.Sqrt(variance / float64(len(samples)))

	return stats
}

// Millis converts durations to fractional milliseconds for Aggregate.
func Millis(ds []time.Duration) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = float64(d) / float64(time.Millisecond)
	}
	return out
}
