package dinebench

import (
	"slices"
	"sync"
	"time"
)

// TailTracker keeps the most recent per-cycle hunger waits of every agent in
// a fixed-size ring buffer and reports their percentiles.
//
// The final-wait sample says how contended a pair is once the table has
// settled; the tail says how bad the worst waits got along the way. A
// P99/P50 ratio far above 1 means a few agents sat hungry much longer than
// the typical one.
type TailTracker struct {
	mu         sync.Mutex
	samples    []time.Duration
	writeIndex int
	count      int64 // monotonic
}

// TailStats is a snapshot of a TailTracker.
type TailStats struct {
	SampleCount int64         `yaml:"samples" json:"samples"`
	Mean        time.Duration `yaml:"mean" json:"mean"`
	P50         time.Duration `yaml:"p50" json:"p50"`
	P95         time.Duration `yaml:"p95" json:"p95"`
	P99         time.Duration `yaml:"p99" json:"p99"`
	Max         time.Duration `yaml:"max" json:"max"`
	TailRatio   float64       `yaml:"tail_ratio" json:"tail_ratio"` // P99 / P50
}

// NewTailTracker creates a tracker holding up to maxSamples waits. A
// non-positive size defaults to 1000.
func NewTailTracker(maxSamples int) *TailTracker {
	if maxSamples <= 0 {
		maxSamples = 1000
	}
	return &TailTracker{samples: make([]time.Duration, maxSamples)}
}

// Record adds one wait, overwriting the oldest once the buffer is full.
func (t *TailTracker) Record(wait time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.samples[t.writeIndex] = wait
	t.writeIndex = (t.writeIndex + 1) % len(t.samples)
	t.count++
}

// Stats computes percentiles over the buffered waits.
func (t *TailTracker) Stats() TailStats {
	t.mu.Lock()
	n := len(t.samples)
	if t.count < int64(n) {
		n = int(t.count)
	}
	sorted := slices.Clone(t.samples[:n])
	count := t.count
	t.mu.Unlock()

	if n == 0 {
		return TailStats{}
	}
	slices.Sort(sorted)

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}

	stats := TailStats{
		SampleCount: count,
		Mean:        sum / time.Duration(n),
		P50:         percentile(sorted, 0.50),
		P95:         percentile(sorted, 0.95),
		P99:         percentile(sorted, 0.99),
		Max:         sorted[n-1],
		TailRatio:   1,
	}
	if stats.P50 > 0 {
		stats.TailRatio = float64(stats.P99) / float64(stats.P50)
	}
	return stats
}

// percentile picks the nearest-rank value of an ascending slice, 0 < p < 1.
func percentile(sorted []time.Duration, p float64) time.Duration {
	index := int(float64(len(sorted)-1) * p)
	return sorted[max(0, min(index, len(sorted)-1))]
}
