package timers

import "time"

// Lap is one recorded split.
type Lap struct {
	Number int
	Split  time.Duration // time since the previous lap
	Total  time.Duration // elapsed time when recorded
}

// Stopwatch measures elapsed running time and records laps.
type Stopwatch struct {
	accumulated time.Duration
	startedAt   time.Time
	running     bool
	laps        []Lap
}

// NewStopwatch creates a stopped stopwatch at zero.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{}
}

func (s *Stopwatch) Running() bool {
	return s.running
}

func (s *Stopwatch) Start(now time.Time) {
	if s.running {
		return
	}
	s.startedAt = now
	s.running = true
}

func (s *Stopwatch) Pause(now time.Time) {
	if !s.running {
		return
	}
	s.accumulated = s.Elapsed(now)
	s.running = false
}

// Reset stops the stopwatch and clears the elapsed time and laps.
func (s *Stopwatch) Reset() {
	s.accumulated = 0
	s.startedAt = time.Time{}
	s.running = false
	s.laps = nil
}

// Elapsed returns the total running time at now.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !s.running {
		return s.accumulated
	}
	d := s.accumulated + now.Sub(s.startedAt)
	if d < s.accumulated {
		// Clock went backwards.
		return s.accumulated
	}
	return d
}

// Lap records a split. It does nothing unless the stopwatch is running.
func (s *Stopwatch) Lap(now time.Time) (Lap, bool) {
	if !s.running {
		return Lap{}, false
	}
	total := s.Elapsed(now)
	var prev time.Duration
	if n := len(s.laps); n > 0 {
		prev = s.laps[n-1].Total
	}
	lap := Lap{Number: len(s.laps) + 1, Split: total - prev, Total: total}
	s.laps = append(s.laps, lap)
	return lap, true
}

// Laps returns the recorded laps, oldest first.
func (s *Stopwatch) Laps() []Lap {
	return append([]Lap(nil), s.laps...)
}
