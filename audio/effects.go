package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// oscillator generates an endless raw wave
type oscillator struct {
	freq  float64
	phase float64
	wave  WaveType
	rate  beep.SampleRate
	rng   *rand.Rand
}

// NewOscillator creates an endless oscillator
func NewOscillator(freq float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq: freq,
		wave: wave,
		rate: rate,
		rng:  rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// NewDrone builds the cave drone: two low sines a fifth apart over a bed of
// quiet noise
func NewDrone(rate beep.SampleRate) (beep.Streamer, error) {
	root, err := generators.SineTone(rate, 55)
	if err != nil {
		return nil, err
	}
	fifth, err := generators.SineTone(rate, 82.5)
	if err != nil {
		return nil, err
	}
	noise := NewOscillator(0, WaveNoise, rate)

	return beep.Mix(
		newVolume(root, 0.5),
		newVolume(fifth, 0.25),
		newVolume(noise, 0.08),
	), nil
}
