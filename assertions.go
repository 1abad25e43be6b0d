package dinebench

import (
	"sync/atomic"
	"testing"
	"time"
)

// ExclusionProbe is an EventSink that checks the ring invariant from the
// outside: it counts holders per resource between PickedUp and PutDown and
// records every moment a resource has more than one.
type ExclusionProbe struct {
	holders    []atomic.Int32
	inUse      atomic.Int32
	peak       atomic.Int32
	violations atomic.Int64
	events     atomic.Int64
}

// NewExclusionProbe creates a probe for a ring of n resources.
func NewExclusionProbe(n int) *ExclusionProbe {
	return &ExclusionProbe{holders: make([]atomic.Int32, n)}
}

func (p *ExclusionProbe) Thinking(int, time.Duration) { p.events.Add(1) }
func (p *ExclusionProbe) Eating(int, time.Duration)   { p.events.Add(1) }
func (p *ExclusionProbe) Hungry(int, time.Duration)   { p.events.Add(1) }

func (p *ExclusionProbe) PickedUp(_, left, right int) {
	p.events.Add(1)
	for _, id := range distinct(left, right) {
		if p.holders[id].Add(1) > 1 {
			p.violations.Add(1)
		}
		held := p.inUse.Add(1)
		for {
			peak := p.peak.Load()
			if held <= peak || p.peak.CompareAndSwap(peak, held) {
				break
			}
		}
	}
}

func (p *ExclusionProbe) PutDown(_, left, right int) {
	p.events.Add(1)
	for _, id := range distinct(left, right) {
		p.holders[id].Add(-1)
		p.inUse.Add(-1)
	}
}

// Violations returns how many times a resource was seen with two holders.
func (p *ExclusionProbe) Violations() int64 { return p.violations.Load() }

// Peak returns the most resources seen held at once.
func (p *ExclusionProbe) Peak() int { return int(p.peak.Load()) }

// Events returns how many events the probe received.
func (p *ExclusionProbe) Events() int64 { return p.events.Load() }

func distinct(a, b int) []int {
	if a == b {
		return []int{a}
	}
	return []int{a, b}
}

// AssertCompletes runs cfg and fails the test if the run has not finished
// within bound. Production runs have no timeout; this is the harness-side
// check that the table never deadlocks.
func AssertCompletes(t *testing.T, cfg Config, bound time.Duration, opts ...Option) Report {
	t.Helper()

	sim, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New rejected config: %v", err)
	}

	done := make(chan Report, 1)
	go func() { done <- sim.Run() }()

	select {
	case report := <-done:
		t.Logf("✓ %d agents × %d cycles finished in %v", cfg.Agents, cfg.Cycles, report.Elapsed)
		return report
	case <-time.After(bound):
		t.Fatalf("Run did not finish within %v (held=%d waiting=%d): possible deadlock",
			bound, sim.Ring().Held(), sim.Ring().Waiting())
		return Report{}
	}
}

// AssertMutualExclusion fails if the probe saw a resource held twice or more
// resources held than the ring has.
func AssertMutualExclusion(t *testing.T, p *ExclusionProbe) {
	t.Helper()

	if v := p.Violations(); v > 0 {
		t.Errorf("Mutual exclusion violated %d times", v)
	}
	if p.Peak() > len(p.holders) {
		t.Errorf("Peak held resources %d exceeds ring size %d", p.Peak(), len(p.holders))
	}

	t.Logf("✓ Mutual exclusion: %d events, peak %d/%d resources held", p.Events(), p.Peak(), len(p.holders))
}

// AssertReportConsistent checks the shape of a finished report: one sample
// per agent, every meal accounted for, statistics inside the sample range.
func AssertReportConsistent(t *testing.T, r Report) {
	t.Helper()

	if len(r.Hunger) != r.Config.Agents {
		t.Errorf("Expected %d hunger samples, got %d", r.Config.Agents, len(r.Hunger))
	}
	if want := r.Config.Agents * r.Config.Cycles; r.Meals != want {
		t.Errorf("Expected %d meals, got %d", want, r.Meals)
	}
	if r.Stats.Count != len(r.Hunger) {
		t.Errorf("Stats count %d does not match %d samples", r.Stats.Count, len(r.Hunger))
	}
	const eps = 1e-9
	if r.Stats.Mean < r.Stats.Min-eps || r.Stats.Mean > r.Stats.Max+eps {
		t.Errorf("Mean %.3f outside sample range [%.3f, %.3f]", r.Stats.Mean, r.Stats.Min, r.Stats.Max)
	}
	if r.Stats.Stddev < 0 || r.Stats.Stddev > r.Stats.Max-r.Stats.Min+eps {
		t.Errorf("Stddev %.3f impossible for range [%.3f, %.3f]", r.Stats.Stddev, r.Stats.Min, r.Stats.Max)
	}
}
