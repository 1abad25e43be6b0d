package dinebench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// EventSink receives one call per agent phase transition. Calls arrive
// concurrently from every agent goroutine; implementations must be safe for
// concurrent use.
//
// PickedUp is called after the pair is granted and PutDown before it is
// released, so both happen while the agent holds the resources.
type EventSink interface {
	Thinking(agent int, d time.Duration)
	PickedUp(agent, left, right int)
	Eating(agent int, d time.Duration)
	PutDown(agent, left, right int)
	Hungry(agent int, d time.Duration)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Thinking(int, time.Duration) {}
func (NopSink) PickedUp(int, int, int)      {}
func (NopSink) Eating(int, time.Duration)   {}
func (NopSink) PutDown(int, int, int)       {}
func (NopSink) Hungry(int, time.Duration)   {}

// TextSink writes one plain line per event:
//
//	Philosopher 2 is thinking for 37 ms.
//	Philosopher 2 is picking up chopsticks 2 and 3.
//	Philosopher 2 is eating for 12 ms.
//	Philosopher 2 is putting down chopsticks 2 and 3.
//	Philosopher 2 was hungry for 4 ms.
type TextSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextSink creates a TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) Thinking(agent int, d time.Duration) {
	s.printf("Philosopher %d is thinking for %d ms.\n", agent, d.Milliseconds())
}

func (s *TextSink) PickedUp(agent, left, right int) {
	s.printf("Philosopher %d is picking up chopsticks %d and %d.\n", agent, left, right)
}

func (s *TextSink) Eating(agent int, d time.Duration) {
	s.printf("Philosopher %d is eating for %d ms.\n", agent, d.Milliseconds())
}

func (s *TextSink) PutDown(agent, left, right int) {
	s.printf("Philosopher %d is putting down chopsticks %d and %d.\n", agent, left, right)
}

func (s *TextSink) Hungry(agent int, d time.Duration) {
	s.printf("Philosopher %d was hungry for %d ms.\n", agent, d.Milliseconds())
}

func (s *TextSink) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format, args...)
}

// LogSink emits events as structured slog records at Info level. slog
// handlers serialize writes, so LogSink needs no lock of its own.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Thinking(agent int, d time.Duration) {
	s.log("thinking", slog.Int("agent", agent), slog.Duration("for", d))
}

func (s LogSink) PickedUp(agent, left, right int) {
	s.log("picked up", slog.Int("agent", agent), slog.Int("left", left), slog.Int("right", right))
}

func (s LogSink) Eating(agent int, d time.Duration) {
	s.log("eating", slog.Int("agent", agent), slog.Duration("for", d))
}

func (s LogSink) PutDown(agent, left, right int) {
	s.log("put down", slog.Int("agent", agent), slog.Int("left", left), slog.Int("right", right))
}

func (s LogSink) Hungry(agent int, d time.Duration) {
	s.log("hungry", slog.Int("agent", agent), slog.Duration("waited", d))
}

func (s LogSink) log(msg string, attrs ...slog.Attr) {
	s.Logger.LogAttrs(context.Background(), slog.LevelInfo, msg, attrs...)
}
