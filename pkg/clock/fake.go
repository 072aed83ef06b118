package clock

import (
	"container/heap"
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Callbacks registered with AfterFunc run
// synchronously, in deadline order, from Set and Advance.
type Fake struct {
	mu  sync.Mutex
	now time.Time
	seq uint64
	q   fakeQueue
}

// NewFake creates a Fake clock reading start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	t := &fakeTimer{clock: f, at: f.now.Add(d), seq: f.seq, fn: fn, index: -1}
	heap.Push(&f.q, t)
	return t
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.Set(f.Now().Add(d))
}

// Set moves the clock to t, firing every callback due at or before t. Each
// callback observes Now() equal to its own deadline. Moving backwards only
// changes Now().
func (f *Fake) Set(t time.Time) {
	for {
		f.mu.Lock()
		if len(f.q) == 0 || f.q[0].at.After(t) {
			f.now = t
			f.mu.Unlock()
			return
		}
		next := heap.Pop(&f.q).(*fakeTimer)
		if next.at.After(f.now) {
			f.now = next.at
		}
		f.mu.Unlock()

		// Callbacks may call back into the clock.
		next.fn()
	}
}

// Pending returns the number of callbacks not yet fired or stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.q)
}

type fakeTimer struct {
	clock *Fake
	at    time.Time
	seq   uint64
	fn    func()
	index int
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.q, t.index)
	return true
}

type fakeQueue []*fakeTimer

var _ heap.Interface = (*fakeQueue)(nil)

func (q fakeQueue) Len() int {
	return len(q)
}

func (q fakeQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q fakeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *fakeQueue) Push(x any) {
	t := x.(*fakeTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *fakeQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
