// Package config loads the demo's TOML configuration
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/hostpatch/audio"
	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/patch"
	"github.com/lixenwraith/hostpatch/resolve"
)

// ErrInvalid is wrapped by every decode or validation error
var ErrInvalid = errors.New("invalid config")

// Audio mirrors audio.Config in file form
type Audio struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
	Floor      float64 `toml:"floor"`
}

// Config is the full demo configuration
//
//	build = "obfuscated"
//	step_rate = 20
//	patches = ["brightness", "darken", "rebuild"]
//
//	[audio]
//	enabled = true
//
//	[roles.skylight_subtracted]
//	candidates = ["field_72989_f"]
type Config struct {
	Build          string        `toml:"build"`
	StepRate       int           `toml:"step_rate"`
	FrameRate      int           `toml:"frame_rate"`
	RenderDistance int           `toml:"render_distance"`
	Patches        []string      `toml:"patches"`
	Ambient        float32       `toml:"ambient"`
	Smoothing      float64       `toml:"smoothing"`
	RebuildDelay   int           `toml:"rebuild_delay"`
	Audio          Audio         `toml:"audio"`
	Roles          resolve.Table `toml:"roles"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	a := audio.DefaultConfig()
	return Config{
		Build:          string(host.BuildNamed),
		StepRate:       20,
		FrameRate:      60,
		RenderDistance: host.DefaultRenderDistance,
		Ambient:        patch.DefaultAmbient,
		Smoothing:      patch.DefaultSmoothing,
		RebuildDelay:   patch.DefaultRebuildDelay,
		Audio: Audio{
			Enabled:    a.Enabled,
			Volume:     a.Volume,
			SampleRate: a.SampleRate,
			Floor:      a.Floor,
		},
	}
}

// Parse decodes data over the defaults. Keys the schema does not know are
// rejected so typos surface instead of silently keeping a default
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a config file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Validate checks ranges and names
func (c Config) Validate() error {
	if _, err := host.ParseBuild(c.Build); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.StepRate < 1 || c.StepRate > 1000 {
		return fmt.Errorf("%w: step_rate %d outside [1,1000]", ErrInvalid, c.StepRate)
	}
	if c.FrameRate < 1 || c.FrameRate > 1000 {
		return fmt.Errorf("%w: frame_rate %d outside [1,1000]", ErrInvalid, c.FrameRate)
	}
	if c.RenderDistance < 2 || c.RenderDistance > 32 {
		return fmt.Errorf("%w: render_distance %d outside [2,32]", ErrInvalid, c.RenderDistance)
	}
	if c.Ambient < 0 || c.Ambient >= 1 {
		return fmt.Errorf("%w: ambient %v outside [0,1)", ErrInvalid, c.Ambient)
	}
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		return fmt.Errorf("%w: smoothing %v outside (0,1]", ErrInvalid, c.Smoothing)
	}
	if c.RebuildDelay < 0 {
		return fmt.Errorf("%w: negative rebuild_delay %d", ErrInvalid, c.RebuildDelay)
	}
	if err := c.AudioConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Roles.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// HostBuild returns the parsed build. Validate guarantees it is known
func (c Config) HostBuild() host.Build {
	b, err := host.ParseBuild(c.Build)
	if err != nil {
		return host.BuildNamed
	}
	return b
}

// StepInterval converts StepRate to a step period
func (c Config) StepInterval() time.Duration {
	return time.Second / time.Duration(max(1, c.StepRate))
}

// FrameInterval converts FrameRate to a frame period
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(1, c.FrameRate))
}

// AudioConfig converts the audio section
func (c Config) AudioConfig() audio.Config {
	return audio.Config{
		Enabled:    c.Audio.Enabled,
		Volume:     c.Audio.Volume,
		SampleRate: c.Audio.SampleRate,
		Floor:      c.Audio.Floor,
	}
}

// Options builds suite options from the patch-related fields. An empty
// patch list enables every registered module
func (c Config) Options() patch.Options {
	return patch.Options{
		Modules:      c.Patches,
		Ambient:      c.Ambient,
		Smoothing:    c.Smoothing,
		RebuildDelay: c.RebuildDelay,
		Table:        c.Roles,
		StepInterval: c.StepInterval(),
	}
}

// Encode writes c as TOML
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
