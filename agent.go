package dinebench

import (
	"fmt"
	"time"
)

// State is a step of the agent lifecycle.
type State int

const (
	Thinking State = iota
	RequestingResources
	Eating
	MeasuringFinalWait
	Done
)

func (s State) String() string {
	switch s {
	case Thinking:
		return "thinking"
	case RequestingResources:
		return "requesting"
	case Eating:
		return "eating"
	case MeasuringFinalWait:
		return "measuring"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Agent cycles think → acquire → dine → release a fixed number of times,
// then times one more acquisition of its pair as its hunger sample.
//
// Every field is written only by the agent's own goroutine. Readers must
// wait for the run to finish (Simulation.Run joins all agents first).
type Agent struct {
	ID    int
	Left  int
	Right int

	// LastHunger is the wait for the final, measured acquisition.
	LastHunger time.Duration
	// CycleHunger holds the wait of every regular cycle, in order.
	CycleHunger []time.Duration
	// Meals counts completed dine phases.
	Meals int

	remaining int
	state     State

	cfg     *Config
	ring    *Ring
	sampler *Sampler
	sink    EventSink
	tail    *TailTracker
}

func newAgent(id int, cfg *Config, ring *Ring, sampler *Sampler, sink EventSink, tail *TailTracker) *Agent {
	left, right := ring.Neighbors(id)
	return &Agent{
		ID:          id,
		Left:        left,
		Right:       right,
		CycleHunger: make([]time.Duration, 0, cfg.Cycles),
		remaining:   cfg.Cycles,
		state:       Thinking,
		cfg:         cfg,
		ring:        ring,
		sampler:     sampler,
		sink:        sink,
		tail:        tail,
	}
}

// State returns the lifecycle state. Only meaningful once the run is over
// or from the agent's own goroutine.
func (a *Agent) State() State {
	return a.state
}

// LastHungerMs returns LastHunger in fractional milliseconds.
func (a *Agent) LastHungerMs() float64 {
	return float64(a.LastHunger) / float64(time.Millisecond)
}

func (a *Agent) run() {
	for a.remaining > 0 {
		a.cycle()
		a.remaining--

		if a.cfg.Backoff > 0 {
			time.Sleep(a.cfg.Backoff)
		}
	}
	a.measureFinalWait()
}

func (a *Agent) cycle() {
	a.state = Thinking
	think := a.sample(a.cfg.Think)
	a.sink.Thinking(a.ID, think)
	time.Sleep(think)

	a.state = RequestingResources
	start := time.Now()
	g := a.ring.Acquire(a.Left, a.Right)
	defer g.Release()

	wait := time.Since(start)
	a.CycleHunger = append(a.CycleHunger, wait)
	if a.tail != nil {
		a.tail.Record(wait)
	}
	a.sink.PickedUp(a.ID, a.Left, a.Right)

	a.state = Eating
	dine := a.sample(a.cfg.Dine)
	a.sink.Eating(a.ID, dine)
	time.Sleep(dine)

	a.Meals++
	a.sink.PutDown(a.ID, a.Left, a.Right)
}

func (a *Agent) measureFinalWait() {
	a.state = MeasuringFinalWait

	start := time.Now()
	g := a.ring.Acquire(a.Left, a.Right)
	a.LastHunger = time.Since(start)
	a.sink.Hungry(a.ID, a.LastHunger)
	g.Release()

	a.state = Done
}

// sample draws a duration for r. The distribution was validated before the
// agent was built, so an error here is an internal fault.
func (a *Agent) sample(r Range) time.Duration {
	d, err := a.sampler.Sample(a.cfg.Distribution, r)
	if err != nil {
		panic(fmt.Sprintf("dinebench: agent %d: %v", a.ID, err))
	}
	return d
}
