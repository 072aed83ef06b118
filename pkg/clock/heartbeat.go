package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// tickOffset places each tick just after a second boundary so the tick for
// second 0 of every minute is observed.
const tickOffset = 10 * time.Millisecond

// Heartbeat calls a function once per wall-clock second. The next tick is
// armed only after the previous callback returns, so ticks are delivered in
// order and never overlap. Late or skipped ticks are not replayed.
type Heartbeat struct {
	clock Clock

	mu      sync.Mutex
	timer   Timer
	fn      func(time.Time)
	running bool
	gen     uint64

	count atomic.Int64
}

// NewHeartbeat creates a stopped Heartbeat driven by c.
func NewHeartbeat(c Clock) *Heartbeat {
	return &Heartbeat{clock: c}
}

// Start begins delivering ticks to fn. Calling Start on a running Heartbeat
// replaces the callback.
func (h *Heartbeat) Start(fn func(time.Time)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.fn = fn
	if h.running {
		return
	}
	h.running = true
	h.arm()
}

// Stop halts delivery. It is safe to call more than once.
func (h *Heartbeat) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.running = false
	h.gen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// Count returns the number of ticks delivered so far.
func (h *Heartbeat) Count() int64 {
	return h.count.Load()
}

// arm must be called with mu held.
func (h *Heartbeat) arm() {
	now := h.clock.Now()
	delay := time.Second - time.Duration(now.Nanosecond()) + tickOffset
	if delay > time.Second {
		delay -= time.Second
	}
	gen := h.gen
	h.timer = h.clock.AfterFunc(delay, func() { h.fire(gen) })
}

func (h *Heartbeat) fire(gen uint64) {
	h.mu.Lock()
	if !h.running || gen != h.gen {
		h.mu.Unlock()
		return
	}
	fn := h.fn
	h.mu.Unlock()

	h.count.Add(1)
	fn(h.clock.Now())

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running && gen == h.gen {
		h.arm()
	}
}
