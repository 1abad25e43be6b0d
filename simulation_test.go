package dinebench

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quickConfig keeps runs short enough for CI.
func quickConfig(agents, cycles int) Config {
	return Config{
		Agents:       agents,
		Think:        Range{Min: 1, Max: 3},
		Dine:         Range{Min: 1, Max: 3},
		Distribution: Uniform,
		Cycles:       cycles,
		Seed:         7,
	}
}

func TestSimulation_CompletesWithoutDeadlock(t *testing.T) {
	for _, kind := range []Distribution{Uniform, Exponential} {
		for n := 2; n <= 8; n++ {
			cfg := quickConfig(n, 5)
			cfg.Distribution = kind
			cfg.Seed = uint64(n) * 31

			probe := NewExclusionProbe(n)
			report := AssertCompletes(t, cfg, 10*time.Second, WithSink(probe))

			AssertMutualExclusion(t, probe)
			AssertReportConsistent(t, report)
		}
	}
}

func TestSimulation_RandomizedStress(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 1))

	for i := 0; i < 10; i++ {
		think := Range{Min: 1 + rng.IntN(2)}
		think.Max = think.Min + rng.IntN(3)
		dine := Range{Min: 1 + rng.IntN(2)}
		dine.Max = dine.Min + rng.IntN(3)

		cfg := Config{
			Agents:       2 + rng.IntN(MaxAgents-1),
			Think:        think,
			Dine:         dine,
			Distribution: Distribution(rng.IntN(2)),
			Cycles:       1 + rng.IntN(4),
			Seed:         rng.Uint64() | 1,
		}

		probe := NewExclusionProbe(cfg.Agents)
		report := AssertCompletes(t, cfg, 15*time.Second, WithSink(probe))
		AssertMutualExclusion(t, probe)
		AssertReportConsistent(t, report)
	}
}

func TestSimulation_SingleAgent(t *testing.T) {
	report, err := Run(quickConfig(1, 3))
	require.NoError(t, err)

	require.Len(t, report.Hunger, 1)
	assert.Equal(t, 0.0, report.Stats.Stddev)
	assert.Equal(t, 3, report.Meals)
	assert.Less(t, report.Stats.Mean, 100.0, "nobody competes with a lone agent")
}

func TestSimulation_AgentLifecycle(t *testing.T) {
	sim, err := New(quickConfig(4, 3))
	require.NoError(t, err)

	for i, a := range sim.Agents() {
		assert.Equal(t, Thinking, a.State())
		assert.Equal(t, i, a.Left)
		assert.Equal(t, (i+1)%4, a.Right)
	}

	sim.Run()

	for _, a := range sim.Agents() {
		assert.Equal(t, Done, a.State())
		assert.Equal(t, 3, a.Meals)
		assert.Len(t, a.CycleHunger, 3)
		assert.GreaterOrEqual(t, a.LastHunger, time.Duration(0))
	}
}

func TestSimulation_RunsOnce(t *testing.T) {
	sim, err := New(quickConfig(2, 1))
	require.NoError(t, err)
	sim.Run()

	assert.Panics(t, func() { sim.Run() })
}

func TestSimulation_ReportCarriesRunIdentity(t *testing.T) {
	sim, err := New(quickConfig(3, 1))
	require.NoError(t, err)

	report := sim.Run()
	assert.Equal(t, sim.ID(), report.RunID)
	assert.Len(t, report.RunID, 36)
	assert.Equal(t, uint64(7), report.Config.Seed)
	assert.Equal(t, int64(3), report.Tail.SampleCount)
}

func TestSimulation_FillsSeed(t *testing.T) {
	cfg := quickConfig(2, 1)
	cfg.Seed = 0

	sim, err := New(cfg)
	require.NoError(t, err)
	assert.NotZero(t, sim.Config().Seed)
}

func TestSimulation_Backoff(t *testing.T) {
	cfg := quickConfig(2, 3)
	cfg.Backoff = 5 * time.Millisecond

	report, err := Run(cfg)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.Elapsed, 15*time.Millisecond)
}

func TestSimulation_TextEvents(t *testing.T) {
	var buf bytes.Buffer
	cfg := quickConfig(3, 2)

	_, err := Run(cfg, WithSink(NewTextSink(&buf)))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// think, pick up, eat, put down per cycle, plus the final hunger line.
	assert.Len(t, lines, cfg.Agents*(cfg.Cycles*4+1))

	counts := map[string]int{}
	for _, line := range lines {
		switch {
		case strings.Contains(line, "is thinking for"):
			counts["think"]++
		case strings.Contains(line, "is picking up chopsticks"):
			counts["pickup"]++
		case strings.Contains(line, "is eating for"):
			counts["eat"]++
		case strings.Contains(line, "is putting down chopsticks"):
			counts["putdown"]++
		case strings.Contains(line, "was hungry for"):
			counts["hungry"]++
		default:
			t.Errorf("unexpected event line %q", line)
		}
	}
	assert.Equal(t, 6, counts["think"])
	assert.Equal(t, 6, counts["pickup"])
	assert.Equal(t, 3, counts["hungry"])
	assert.Contains(t, buf.String(), "Philosopher 2 is picking up chopsticks 2 and 0.")
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero agents", func(c *Config) { c.Agents = 0 }, ErrInvalidConfig},
		{"too many agents", func(c *Config) { c.Agents = MaxAgents + 1 }, ErrInvalidConfig},
		{"think min above max", func(c *Config) { c.Think = Range{Min: 5, Max: 2} }, ErrInvalidConfig},
		{"dine min above max", func(c *Config) { c.Dine = Range{Min: 9, Max: 3} }, ErrInvalidConfig},
		{"zero think min", func(c *Config) { c.Think.Min = 0 }, ErrInvalidConfig},
		{"negative dine max", func(c *Config) { c.Dine.Max = -1 }, ErrInvalidConfig},
		{"zero cycles", func(c *Config) { c.Cycles = 0 }, ErrInvalidConfig},
		{"negative backoff", func(c *Config) { c.Backoff = -time.Millisecond }, ErrInvalidConfig},
		{"unknown distribution", func(c *Config) { c.Distribution = Distribution(3) }, ErrInvalidDistribution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := quickConfig(3, 1)
			tt.mutate(&cfg)

			var buf bytes.Buffer
			probe := NewExclusionProbe(MaxAgents + 1)
			sim, err := New(cfg, WithSink(NewTextSink(&buf)))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, sim)
			assert.Zero(t, buf.Len(), "no event lines for a rejected config")
			assert.Zero(t, probe.Events())

			_, err = Run(cfg, WithSink(probe))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, probe.Events())
		})
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}
