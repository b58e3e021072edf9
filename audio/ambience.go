package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/hostpatch/status"
)

// rampTime is the gain time constant; long enough that per-step changes of
// the darkening factor never click
const rampTime = 0.05

// Ambience scales a source by a gain that follows the ambient darkening
// factor: silent in full light, full gain at the darkest floor
// The level is sampled once per buffer from the speaker goroutine, so it
// must be safe to call concurrently with host steps
type Ambience struct {
	src   beep.Streamer
	level LevelFunc
	floor float64

	gain float64
	ramp float64

	statGain *status.Float
}

// NewAmbience wraps src. A nil registry publishes nowhere
func NewAmbience(src beep.Streamer, level LevelFunc, floor float64, rate beep.SampleRate, reg *status.Registry) *Ambience {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Ambience{
		src:      src,
		level:    level,
		floor:    floor,
		ramp:     1 - math.Exp(-1/(float64(rate)*rampTime)),
		statGain: reg.Gauges.Get("audio.gain"),
	}
}

// TargetGain maps a darkening factor to drone gain, clamped to [0,1]
func TargetGain(level, floor float64) float64 {
	if floor >= 1 {
		return 0
	}
	g := (1 - level) / (1 - floor)
	return math.Max(0, math.Min(1, g))
}

// Gain returns the gain after the last buffer
func (a *Ambience) Gain() float64 {
	return a.statGain.Load()
}

func (a *Ambience) Stream(samples [][2]float64) (n int, ok bool) {
	target := 0.0
	if a.level != nil {
		target = TargetGain(a.level(), a.floor)
	}

	n, ok = a.src.Stream(samples)
	for i := range samples[:n] {
		a.gain += (target - a.gain) * a.ramp
		samples[i][0] *= a.gain
		samples[i][1] *= a.gain
	}
	a.statGain.Store(a.gain)
	return n, ok
}

func (a *Ambience) Err() error { return a.src.Err() }
