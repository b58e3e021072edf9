package view

import (
	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/patch"
	"github.com/lixenwraith/hostpatch/resolve"
	"github.com/lixenwraith/hostpatch/status"
)

// Snapshot is everything one HUD frame shows. Captured on the frame
// goroutine so host state is read without locks
type Snapshot struct {
	Width, Height int

	Build     host.Build
	HasWorld  bool
	Dimension int
	Time      int64
	Player    host.BlockPos
	Partial   float64
	Paused    bool

	// Darkening factor: previous and current step values, and the sample
	// at Partial
	Previous, Current, Sampled float64
	Clear                      [3]float64

	Skylight int
	Gamma    float32
	AO       int
	FarPlane float32
	Lightmap []uint32

	Pending  int
	Handles  []*resolve.Handle
	Metrics  []status.Entry
	Modules  []string
	Audio    bool
	Muted    bool
	Gain     float64
	Messages []string
}

// Capture reads client and suite state. Audio and message fields are left
// for the caller
func Capture(c *host.Client, s *patch.Suite, reg *status.Registry, partial float64) Snapshot {
	snap := Snapshot{
		Build:    c.Build(),
		Player:   c.Player(),
		Partial:  partial,
		Clear:    c.ClearColor(),
		Skylight: c.SkylightSubtracted(),
		Gamma:    c.Gamma(),
		AO:       c.AmbientOcclusion(),
		FarPlane: c.FarPlane(),
		Pending:  s.Queue().Len(),
		Handles:  s.Resolver().Handles(),
		Modules:  s.Modules(),
	}
	darken := s.Darken()
	snap.Previous, snap.Current = darken.Pair()
	snap.Sampled = darken.At(snap.Previous, snap.Current, partial)

	if w := c.World(); w != nil {
		snap.HasWorld = true
		snap.Dimension = w.Dimension()
		snap.Time = w.Time()
	}
	if tex := c.Lightmap(); tex != nil {
		snap.Lightmap = append([]uint32(nil), tex.Pixels...)
	}
	if reg != nil {
		snap.Metrics = reg.Snapshot()
	}
	return snap
}
