package host

import "math"

// World is the stable public surface of a host world. Everything the patch
// layer needs beyond it (brightness table, skylight fields) lives in
// build-specific members that must be resolved
type World interface {
	Remote() bool
	Dimension() int
	// Provider returns the dimension provider; its layout varies per build
	Provider() any
	Time() int64
	CombinedLight(pos BlockPos) int
	BlockLight(pos BlockPos) int
	SetBlock(pos BlockPos, light int) (old int)
	CheckLight(pos BlockPos)
	MarkRange(r Range)
	LightChecks() int64
	MarkCount() int64
	RecentMarks() []Range

	worldState
	advance()
}

const recentMarks = 32

// worldCore is the build-independent half of every world. It is embedded,
// so its members count as inherited and are invisible to member resolution
type worldCore struct {
	remote    bool
	dimension int
	hasSky    bool
	time      int64

	lights    map[BlockPos]int
	checks    int64
	markCount int64
	marks     []Range
}

func newWorldCore(remote bool, dimension int) worldCore {
	return worldCore{
		remote:    remote,
		dimension: dimension,
		hasSky:    dimension == 0,
		lights:    make(map[BlockPos]int),
	}
}

func (w *worldCore) Remote() bool   { return w.remote }
func (w *worldCore) Dimension() int { return w.dimension }
func (w *worldCore) Time() int64    { return w.time }

// CombinedLight packs sky light (open above SurfaceY) with the brightest
// block-light contribution at pos
func (w *worldCore) CombinedLight(pos BlockPos) int {
	sky := 0
	if w.hasSky && pos.Y >= SurfaceY {
		sky = MaxLight
	}
	block := 0
	for src, level := range w.lights {
		d := abs(pos.X-src.X) + abs(pos.Y-src.Y) + abs(pos.Z-src.Z)
		if v := level - d; v > block {
			block = v
		}
	}
	return PackLight(sky, block)
}

// BlockLight returns the light emitted by the block at pos
func (w *worldCore) BlockLight(pos BlockPos) int {
	return w.lights[pos]
}

// SetBlock places (light > 0) or removes (light == 0) a light source
func (w *worldCore) SetBlock(pos BlockPos, light int) int {
	old := w.lights[pos]
	if light <= 0 {
		delete(w.lights, pos)
	} else {
		w.lights[pos] = min(light, MaxLight)
	}
	return old
}

// CheckLight re-propagates block light at pos
func (w *worldCore) CheckLight(BlockPos) {
	w.checks++
}

// MarkRange queues r for re-render
func (w *worldCore) MarkRange(r Range) {
	w.markCount++
	if len(w.marks) == recentMarks {
		copy(w.marks, w.marks[1:])
		w.marks = w.marks[:recentMarks-1]
	}
	w.marks = append(w.marks, r)
}

func (w *worldCore) LightChecks() int64 { return w.checks }
func (w *worldCore) MarkCount() int64   { return w.markCount }

// RecentMarks returns a copy of the last marked ranges, oldest first
func (w *worldCore) RecentMarks() []Range {
	out := make([]Range, len(w.marks))
	copy(out, w.marks)
	return out
}

// skylightAt is the host's sky darkness (0 noon .. 11 midnight) at a world
// time, in 24000-tick days
func skylightAt(time int64, partial float32) int {
	angle := (float64(time%24000) + float64(partial)) / 24000
	f := 1 - (math.Cos(angle*2*math.Pi)*2 + 0.5)
	f = math.Max(0, math.Min(1, f))
	return int(f * 11)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
