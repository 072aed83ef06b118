package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 3, 10, 8, 29, 58, 0, time.UTC)

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	c := NewFake(start)
	var order []string
	var seen []time.Time

	c.AfterFunc(3*time.Second, func() { order = append(order, "c"); seen = append(seen, c.Now()) })
	c.AfterFunc(1*time.Second, func() { order = append(order, "a"); seen = append(seen, c.Now()) })
	c.AfterFunc(2*time.Second, func() { order = append(order, "b"); seen = append(seen, c.Now()) })
	c.AfterFunc(10*time.Second, func() { order = append(order, "late") })

	c.Advance(5 * time.Second)

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, []time.Time{start.Add(time.Second), start.Add(2 * time.Second), start.Add(3 * time.Second)}, seen)
	assert.Equal(t, start.Add(5*time.Second), c.Now())
	assert.Equal(t, 1, c.Pending())
}

func TestFakeTimerStop(t *testing.T) {
	c := NewFake(start)
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(time.Minute)
	assert.False(t, fired)
	assert.Zero(t, c.Pending())
}

func TestFakeCallbackCanRearm(t *testing.T) {
	c := NewFake(start)
	count := 0
	var tick func()
	tick = func() {
		count++
		c.AfterFunc(time.Second, tick)
	}
	c.AfterFunc(time.Second, tick)

	c.Advance(10 * time.Second)
	assert.Equal(t, 10, count)
}

func TestHeartbeatAlignsToSecondBoundary(t *testing.T) {
	c := NewFake(start.Add(400 * time.Millisecond))
	hb := NewHeartbeat(c)

	var ticks []time.Time
	hb.Start(func(now time.Time) { ticks = append(ticks, now) })
	defer hb.Stop()

	c.Advance(5 * time.Second)

	require.Len(t, ticks, 5)
	for i, tick := range ticks {
		assert.Equal(t, tickOffset, time.Duration(tick.Nanosecond()), "tick %d", i)
	}
	assert.Equal(t, 59, ticks[0].Second())
	assert.Equal(t, 0, ticks[1].Second())
	assert.Equal(t, 30, ticks[1].Minute())
	assert.EqualValues(t, 5, hb.Count())
}

func TestHeartbeatStop(t *testing.T) {
	c := NewFake(start)
	hb := NewHeartbeat(c)

	var count atomic.Int32
	hb.Start(func(time.Time) {
		if count.Add(1) == 3 {
			hb.Stop()
		}
	})

	c.Advance(time.Minute)
	assert.EqualValues(t, 3, count.Load())
	assert.Zero(t, c.Pending())

	hb.Stop()
}

func TestRealClockAfterFunc(t *testing.T) {
	c := NewReal()
	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}

	timer := c.AfterFunc(time.Hour, func() {})
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
}
