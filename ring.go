package dinebench

import (
	"fmt"
	"sync"
)

// Ring holds N exclusive resources arranged in a circle. Agent i needs
// resources i and (i+1) mod N.
//
// Acquisition goes through a single arbitrator: one mutex and one condition
// variable guard the held table and a FIFO queue of pending requests. A
// request is granted only when both of its resources are free and no earlier
// pending request overlaps it. Nobody ever holds one resource while waiting
// for another, so no cycle of waits can form, and the oldest request is
// always next in line for its pair, so no waiter starves.
type Ring struct {
	mu    sync.Mutex
	cond  *sync.Cond
	held  []bool
	queue []*pairRequest
}

type pairRequest struct {
	lo, hi int
}

func (p *pairRequest) overlaps(o *pairRequest) bool {
	return p.lo == o.lo || p.lo == o.hi || p.hi == o.lo || p.hi == o.hi
}

// Guard is the scoped possession of a resource pair returned by Acquire.
// Release it exactly once.
type Guard struct {
	ring     *Ring
	lo, hi   int
	released bool // guarded by ring.mu
}

// NewRing creates a ring of n free resources. n must be positive.
func NewRing(n int) *Ring {
	if n <= 0 {
		panic(fmt.Sprintf("dinebench: ring size must be positive, got %d", n))
	}
	r := &Ring{held: make([]bool, n)}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Size returns the number of resources in the ring.
func (r *Ring) Size() int {
	return len(r.held)
}

// Neighbors returns the two resource ids agent id requires.
func (r *Ring) Neighbors(id int) (left, right int) {
	r.check(id)
	return id, (id + 1) % len(r.held)
}

// Acquire blocks until resources a and b are both held by the caller.
// a == b requests a single resource (a ring of one). An id outside [0, N)
// is a programming error and panics.
func (r *Ring) Acquire(a, b int) *Guard {
	r.check(a)
	r.check(b)
	if a > b {
		a, b = b, a
	}

	req := &pairRequest{lo: a, hi: b}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.queue = append(r.queue, req)
	for !r.grantable(req) {
		r.cond.Wait()
	}
	r.dequeue(req)

	r.held[a] = true
	r.held[b] = true

	return &Guard{ring: r, lo: a, hi: b}
}

// Release frees both resources of g in one step: no other acquirer can
// observe one of them released without the other. Releasing a guard twice
// or a guard from another ring panics.
func (r *Ring) Release(g *Guard) {
	if g == nil || g.ring != r {
		panic("dinebench: release of a guard not issued by this ring")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if g.released {
		panic(fmt.Sprintf("dinebench: resources %d and %d released twice", g.lo, g.hi))
	}
	if !r.held[g.lo] || !r.held[g.hi] {
		panic(fmt.Sprintf("dinebench: releasing resources %d and %d that are not held", g.lo, g.hi))
	}

	g.released = true
	r.held[g.lo] = false
	r.held[g.hi] = false
	r.cond.Broadcast()
}

// Do acquires a and b, runs fn, and releases the pair on every exit path,
// including a panic inside fn.
func (r *Ring) Do(a, b int, fn func()) {
	g := r.Acquire(a, b)
	defer g.Release()
	fn()
}

// Held returns how many resources are currently held.
func (r *Ring) Held() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, h := range r.held {
		if h {
			n++
		}
	}
	return n
}

// Waiting returns how many acquire requests are queued.
func (r *Ring) Waiting() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// grantable reports whether req may take its pair now. Caller holds r.mu.
func (r *Ring) grantable(req *pairRequest) bool {
	if r.held[req.lo] || r.held[req.hi] {
		return false
	}
	for _, q := range r.queue {
		if q == req {
			return true
		}
		if q.overlaps(req) {
			return false
		}
	}
	return true
}

func (r *Ring) dequeue(req *pairRequest) {
	for i, q := range r.queue {
		if q == req {
			r.queue = append(r.queue[:i], r.queue[i+1:]...)
			return
		}
	}
}

func (r *Ring) check(id int) {
	if id < 0 || id >= len(r.held) {
		panic(fmt.Sprintf("dinebench: resource id %d out of range [0, %d)", id, len(r.held)))
	}
}

// Resources returns the resource pair, lowest id first.
func (g *Guard) Resources() (lo, hi int) {
	return g.lo, g.hi
}

// Release returns the pair to the ring. See Ring.Release.
func (g *Guard) Release() {
	g.ring.Release(g)
}
