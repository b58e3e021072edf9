package audio

import "fmt"

// Config holds audio settings
type Config struct {
	Enabled    bool
	Volume     float64 // master volume, 0..1
	SampleRate int
	// Floor is the darkening factor of the darkest cave; the drone reaches
	// full gain there
	Floor float64
}

// DefaultConfig starts muted at a conservative volume
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Volume:     0.5,
		SampleRate: 44100,
		Floor:      0.1,
	}
}

// Validate checks ranges
func (c Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("audio volume %v outside [0,1]", c.Volume)
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("audio sample rate %d outside [8000,192000]", c.SampleRate)
	}
	if c.Floor < 0 || c.Floor >= 1 {
		return fmt.Errorf("audio floor %v outside [0,1)", c.Floor)
	}
	return nil
}
