package dinebench

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Option customizes a Simulation.
type Option func(*Simulation)

// WithSink routes phase-transition events to sink. The default discards them.
func WithSink(sink EventSink) Option {
	return func(s *Simulation) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithLogger sets the logger for run diagnostics. The default discards them.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Simulation owns one ring and its agents. It runs once.
type Simulation struct {
	id     string
	cfg    Config
	ring   *Ring
	agents []*Agent
	tail   *TailTracker

	sink   EventSink
	logger *slog.Logger
	ran    atomic.Bool
}

// New validates cfg and builds the ring and one agent per seat. An invalid
// config returns an error wrapping ErrInvalidConfig or
// ErrInvalidDistribution and nothing is started.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}

	s := &Simulation{
		id:     uuid.NewString(),
		cfg:    cfg,
		ring:   NewRing(cfg.Agents),
		tail:   NewTailTracker(cfg.Agents * cfg.Cycles),
		sink:   NopSink{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.agents = make([]*Agent, cfg.Agents)
	for i := range s.agents {
		sampler := NewSampler(cfg.Seed, uint64(i))
		s.agents[i] = newAgent(i, &s.cfg, s.ring, sampler, s.sink, s.tail)
	}

	return s, nil
}

// ID returns the run identifier carried by the report.
func (s *Simulation) ID() string {
	return s.id
}

// Config returns the validated configuration, with the seed filled in.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Ring exposes the shared resource ring.
func (s *Simulation) Ring() *Ring {
	return s.ring
}

// Run starts one goroutine per agent, waits for all of them to finish, and
// aggregates their final hunger samples. There is no cancellation: total
// run time is bounded by the configured counts and durations.
func (s *Simulation) Run() Report {
	if !s.ran.CompareAndSwap(false, true) {
		panic("dinebench: simulation already ran")
	}

	s.logger.Debug("simulation starting",
		"run", s.id,
		"agents", s.cfg.Agents,
		"cycles", s.cfg.Cycles,
		"distribution", s.cfg.Distribution.String(),
		"seed", s.cfg.Seed)

	var wg sync.WaitGroup
	start := time.Now()

	for _, a := range s.agents {
		wg.Add(1)
		go func(a *Agent) {
			defer wg.Done()
			a.run()
		}(a)
	}

	wg.Wait()
	elapsed := time.Since(start)

	// Agents are joined; their fields are safe to read from here on.
	hunger := make([]float64, len(s.agents))
	meals := 0
	for i, a := range s.agents {
		hunger[i] = a.LastHungerMs()
		meals += a.Meals
	}

	report := Report{
		RunID:   s.id,
		Config:  s.cfg,
		Hunger:  hunger,
		Stats:   Aggregate(hunger),
		Tail:    s.tail.Stats(),
		Meals:   meals,
		Elapsed: elapsed,
	}

	s.logger.Debug("simulation finished",
		"run", s.id,
		"elapsed", elapsed,
		"meals", meals,
		"mean_hunger_ms", report.Stats.Mean,
		"stddev_hunger_ms", report.Stats.Stddev)

	return report
}

// Agents returns the agents in seat order. Read their fields only after Run
// has returned.
func (s *Simulation) Agents() []*Agent {
	return s.agents
}

// Run builds and runs a simulation in one call.
func Run(cfg Config, opts ...Option) (Report, error) {
	sim, err := New(cfg, opts...)
	if err != nil {
		return Report{}, err
	}
	return sim.Run(), nil
}
