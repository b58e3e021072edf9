package audio

import "errors"

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSaw
	WaveNoise
)

// LevelFunc returns the current ambient darkening factor in [0,1]. Called on
// the speaker goroutine once per buffer
type LevelFunc func() float64

// Sentinel errors
var (
	ErrRunning  = errors.New("audio engine already running")
	ErrNoSource = errors.New("audio level source missing")
)
