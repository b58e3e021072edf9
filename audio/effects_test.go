package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
)

func TestOscillatorRange(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, wave, 44100)
		buf := make([][2]float64, 1024)
		n, ok := osc.Stream(buf)
		if n != len(buf) || !ok {
			t.Fatalf("wave %d: Stream = (%d, %v)", wave, n, ok)
		}
		for i, s := range buf {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d sample %d = %v", wave, i, s)
			}
		}
	}
}

func TestOscillatorSinePeriod(t *testing.T) {
	// 100 Hz at 1000 Hz sample rate repeats every 10 samples
	osc := NewOscillator(100, WaveSine, 1000)
	buf := make([][2]float64, 20)
	osc.Stream(buf)
	for i := 0; i < 10; i++ {
		if math.Abs(buf[i][0]-buf[i+10][0]) > 1e-9 {
			t.Errorf("sample %d = %v, sample %d = %v", i, buf[i][0], i+10, buf[i+10][0])
		}
	}
}

func TestNewVolumeZeroIsSilent(t *testing.T) {
	v := newVolume(NewOscillator(440, WaveSine, 44100), 0)
	if !v.Silent {
		t.Error("zero volume should be silent")
	}
	v = newVolume(NewOscillator(440, WaveSine, 44100), 0.5)
	if v.Silent || v.Volume != -1 {
		t.Errorf("half volume: Silent=%v Volume=%v, want false -1", v.Silent, v.Volume)
	}
}

func TestDroneStreamsBounded(t *testing.T) {
	drone, err := NewDrone(beep.SampleRate(44100))
	if err != nil {
		t.Fatalf("NewDrone: %v", err)
	}
	buf := make([][2]float64, 4096)
	n, ok := drone.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream = (%d, %v)", n, ok)
	}
	var peak float64
	for _, s := range buf {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak == 0 || peak > 0.83+1e-9 {
		t.Errorf("peak = %v, want (0, 0.83]", peak)
	}
}
