package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/hostpatch/core"
	"github.com/lixenwraith/hostpatch/status"
)

// Engine plays the ambience through the speaker
// Falls back to silent mode when no output device is available
type Engine struct {
	cfg Config

	ambience *Ambience
	volume   *effects.Volume
	ctrl     *beep.Ctrl

	running atomic.Bool
	muted   atomic.Bool
	silent  atomic.Bool

	mu sync.Mutex // serializes Start/Stop
}

// NewEngine builds the stream graph: drone -> ambience gain -> master volume
// -> pause control. Muted unless cfg.Enabled
func NewEngine(cfg Config, level LevelFunc, reg *status.Registry) (*Engine, error) {
	if level == nil {
		return nil, ErrNoSource
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rate := beep.SampleRate(cfg.SampleRate)
	drone, err := NewDrone(rate)
	if err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	e.ambience = NewAmbience(drone, level, cfg.Floor, rate, reg)
	e.volume = newVolume(e.ambience, cfg.Volume)
	e.ctrl = &beep.Ctrl{Streamer: e.volume, Paused: !cfg.Enabled}
	e.muted.Store(!cfg.Enabled)
	return e, nil
}

// Start opens the speaker and begins playback
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running.Load() {
		return ErrRunning
	}

	rate := beep.SampleRate(e.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		core.Logger().Warn("audio output unavailable, running silent", "error", err)
		e.silent.Store(true)
		e.running.Store(true)
		return nil
	}

	speaker.Play(e.ctrl)
	e.running.Store(true)
	return nil
}

// Stop ends playback and releases the speaker. Idempotent
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running.CompareAndSwap(true, false) {
		return
	}
	if !e.silent.Load() {
		speaker.Clear()
		speaker.Close()
	}
}

// ToggleMute pauses or resumes the stream, returning the new mute state
func (e *Engine) ToggleMute() bool {
	speaker.Lock()
	e.ctrl.Paused = !e.ctrl.Paused
	muted := e.ctrl.Paused
	speaker.Unlock()

	e.muted.Store(muted)
	return muted
}

// IsMuted reports whether output is paused
func (e *Engine) IsMuted() bool { return e.muted.Load() }

// IsRunning reports whether Start succeeded and Stop has not been called
func (e *Engine) IsRunning() bool { return e.running.Load() }

// IsSilent reports whether the engine runs without an output device
func (e *Engine) IsSilent() bool { return e.silent.Load() }

// Gain returns the current drone gain before master volume
func (e *Engine) Gain() float64 { return e.ambience.Gain() }

// Streamer returns the root of the stream graph
func (e *Engine) Streamer() beep.Streamer { return e.ctrl }
