package audio

import (
	"sync"
	"time"

	"github.com/borgmon/despertafoco/pkg/clock"
	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/rs/zerolog"
)

// PreviewDuration bounds how long a preview plays.
const PreviewDuration = 3 * time.Second

// Backend starts playback of a sound. Start must not block on loading or
// decoding; failures after Start returns are the backend's to log.
type Backend interface {
	Start(key models.SoundKey, loop bool) (Playback, error)
}

// Playback is a running sound.
type Playback interface {
	// Stop halts the sound. It is safe to call more than once.
	Stop()
	// Done is closed once playback has ended, by Stop or naturally.
	Done() <-chan struct{}
}

// Session describes the sound currently owned by the Arbitrator.
type Session struct {
	Sound      models.SoundKey
	Loop       bool
	Previewing bool
	Started    time.Time
}

// Arbitrator guarantees that at most one sound plays at a time. Every Play
// stops the previous sound first.
type Arbitrator struct {
	backend Backend
	clock   clock.Clock
	log     zerolog.Logger

	mu       sync.Mutex
	playback Playback
	session  *Session
	autoStop clock.Timer
	// gen increases on every start and stop; callbacks armed under an older
	// generation do nothing.
	gen uint64
}

// NewArbitrator creates an Arbitrator that plays through backend.
func NewArbitrator(backend Backend, c clock.Clock, log zerolog.Logger) *Arbitrator {
	return &Arbitrator{
		backend: backend,
		clock:   c,
		log:     log.With().Str("component", "arbitrator").Logger(),
	}
}

// Play stops whatever is playing and starts key. Unknown keys are ignored and
// leave the current sound untouched.
func (a *Arbitrator) Play(key models.SoundKey, loop bool) {
	if _, ok := models.LookupSound(key); !ok {
		a.log.Warn().Str("sound", string(key)).Msg("Ignoring unknown sound")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.startLocked(key, loop)
}

// Preview plays key once and stops it after PreviewDuration. A preview is
// refused while a looping sound is active.
func (a *Arbitrator) Preview(key models.SoundKey) {
	if _, ok := models.LookupSound(key); !ok {
		a.log.Warn().Str("sound", string(key)).Msg("Ignoring unknown sound")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil && a.session.Loop {
		a.log.Info().
			Str("sound", string(key)).
			Str("playing", string(a.session.Sound)).
			Msg("Preview refused while a looping sound is active")
		return
	}
	if !a.startLocked(key, false) {
		return
	}
	a.session.Previewing = true

	gen := a.gen
	a.autoStop = a.clock.AfterFunc(PreviewDuration, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.gen == gen {
			a.stopLocked()
		}
	})
}

// Stop halts playback and cancels any pending auto-stop. It is idempotent.
func (a *Arbitrator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

// Session returns a snapshot of the current playback.
func (a *Arbitrator) Session() (Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return Session{}, false
	}
	return *a.session, true
}

func (a *Arbitrator) startLocked(key models.SoundKey, loop bool) bool {
	a.stopLocked()

	playback, err := a.backend.Start(key, loop)
	if err != nil {
		a.log.Error().Err(err).Str("sound", string(key)).Msg("Failed to start playback")
		return false
	}

	a.playback = playback
	a.session = &Session{Sound: key, Loop: loop, Started: a.clock.Now()}
	a.log.Debug().Str("sound", string(key)).Bool("loop", loop).Msg("Playback started")

	gen := a.gen
	go func() {
		<-playback.Done()
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.gen == gen && a.playback == playback {
			a.playback = nil
			a.session = nil
		}
	}()
	return true
}

func (a *Arbitrator) stopLocked() {
	a.gen++
	if a.autoStop != nil {
		a.autoStop.Stop()
		a.autoStop = nil
	}
	if a.playback != nil {
		a.playback.Stop()
		a.playback = nil
		a.session = nil
		a.log.Debug().Msg("Playback stopped")
	}
}
