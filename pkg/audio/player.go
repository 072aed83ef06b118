package audio

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/borgmon/despertafoco/pkg/models"
	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog"
)

var errAudioUnavailable = errors.New("audio output unavailable")

// Global audio context singleton. oto allows a single context per process.
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxErr  error
	globalAudioCtxOnce sync.Once
)

// initAudioContext initializes the global audio context once
func initAudioContext(log zerolog.Logger) (*oto.Context, error) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: ChannelCount,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			globalAudioCtxErr = errors.Join(errAudioUnavailable, err)
			log.Error().Err(err).Msg("Failed to initialize audio context")
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		log.Info().Msg("Audio context initialized successfully")
	})
	return globalAudioCtx, globalAudioCtxErr
}

// Loader provides decoded PCM for a sound key.
type Loader interface {
	Load(ctx context.Context, key models.SoundKey) ([]byte, error)
}

// OtoBackend plays sounds through the shared oto context.
type OtoBackend struct {
	assets Loader
	log    zerolog.Logger
}

// NewOtoBackend creates an OtoBackend that loads sounds from assets.
func NewOtoBackend(assets Loader, log zerolog.Logger) *OtoBackend {
	return &OtoBackend{
		assets: assets,
		log:    log.With().Str("component", "audio").Logger(),
	}
}

// Start begins loading and playing key in the background.
func (b *OtoBackend) Start(key models.SoundKey, loop bool) (Playback, error) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Player{
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		cancel:   cancel,
		log:      b.log.With().Str("sound", string(key)).Logger(),
	}

	go func() {
		defer close(p.done)
		defer cancel()

		pcm, err := b.assets.Load(ctx, key)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.log.Warn().Err(err).Msg("Falling back to synthesized beep")
			pcm = fallbackBeep
		}

		audioCtx, err := initAudioContext(b.log)
		if err != nil {
			p.log.Error().Err(err).Msg("Audio context not ready")
			return
		}
		p.playLoop(audioCtx, pcm, loop)
	}()

	return p, nil
}

// Player manages one sound's playback with cancellation support
type Player struct {
	stopChan chan struct{}
	done     chan struct{}
	cancel   context.CancelFunc
	log      zerolog.Logger

	mu      sync.Mutex
	player  *oto.Player
	stopped bool
}

func (p *Player) playLoop(audioCtx *oto.Context, pcm []byte, loop bool) {
	for {
		p.mu.Lock()
		if p.stopped {
			p.mu.Unlock()
			return
		}
		// Create a new player for each loop iteration
		player := audioCtx.NewPlayer(bytes.NewReader(pcm))
		p.player = player
		p.mu.Unlock()

		// Play starts playing the sound and returns without waiting
		player.Play()

		// Wait for the sound to finish playing or stop signal
		for player.IsPlaying() {
			select {
			case <-p.stopChan:
				player.Pause()
				if err := player.Close(); err != nil {
					p.log.Debug().Err(err).Msg("Failed to close audio player")
				}
				return
			case <-time.After(10 * time.Millisecond):
			}
		}

		// Close the player before creating a new one
		if err := player.Close(); err != nil {
			p.log.Warn().Err(err).Msg("Failed to close audio player")
		}

		if !loop {
			return
		}

		// Check if stop was requested between loops
		select {
		case <-p.stopChan:
			return
		default:
		}
	}
}

// Stop stops the audio playback
func (p *Player) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)
		p.cancel()

		// Also try to pause the current player if it exists
		if p.player != nil {
			p.player.Pause()
		}
	}
}

// Done is closed once the playback goroutine has exited.
func (p *Player) Done() <-chan struct{} {
	return p.done
}
