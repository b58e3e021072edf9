package patch

import (
	"sync/atomic"

	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/registry"
)

func init() {
	registry.RegisterPatch("rebuild", func(env any) any { return &rebuild{env: env.(*Env)} }, 50)
	registry.RegisterPatch("wave", func(env any) any { return newWave(env.(*Env)) }, 40)
}

// rebuild forces re-render around light sources placed or broken on the
// server. The server world is handled immediately; the client copy only
// has the new light after the server's light packet lands, so its mark is
// delayed and applied to whichever client world is live at that point
type rebuild struct {
	host.NopHooks
	env *Env
}

func (*rebuild) Name() string { return "rebuild" }

func (r *rebuild) BlockChanged(w host.World, pos host.BlockPos, lightValue int) {
	if lightValue <= 0 {
		return
	}
	w.CheckLight(pos)
	for _, f := range host.Facings {
		w.CheckLight(pos.Offset(f))
	}
	markLight(w, pos, lightValue)

	if !w.Remote() {
		r.env.Queue.Schedule(pos, r.env.RebuildDelay, func(client host.World) bool {
			markLight(client, pos, lightValue)
			return true
		})
	}
}

// WorldLoaded drops rebuilds aimed at the previous client world
func (r *rebuild) WorldLoaded(w host.World) {
	if w.Remote() {
		r.env.Queue.Clear()
	}
}

func (r *rebuild) Step(*host.Client) {
	r.env.Queue.DrainOneStep()
}

func markLight(w host.World, pos host.BlockPos, lightValue int) {
	w.MarkRange(host.Around(pos, lightValue+1))
}

// wave marks the whole render range dirty once whenever the sky darkness
// level changes, so dusk and dawn sweep every loaded section
type wave struct {
	host.NopHooks
	env *Env

	initialized bool
	prev        int

	waves *atomic.Int64
}

func newWave(env *Env) *wave {
	return &wave{env: env, prev: -1, waves: env.counter("waves")}
}

func (*wave) Name() string { return "wave" }

func (v *wave) Step(c *host.Client) {
	w := c.World()
	if w == nil {
		v.initialized = false
		v.prev = -1
		return
	}
	sub, ok := v.env.Skylight(w)
	if !ok {
		return
	}
	if !v.initialized {
		v.prev = sub
		v.initialized = true
		return
	}
	if sub == v.prev {
		return
	}
	v.prev = sub

	rd, ok := v.env.RenderDistance(c.Settings())
	if !ok {
		rd = host.DefaultRenderDistance
	}
	r := (rd + 1) * 16
	p := c.Player()
	w.MarkRange(host.Range{
		Min: host.BlockPos{X: p.X - r, Y: 0, Z: p.Z - r},
		Max: host.BlockPos{X: p.X + r, Y: 255, Z: p.Z + r},
	})
	v.waves.Add(1)
	v.env.Logger.Debug("sky level changed, render range marked", "skylight", sub, "radius", r)
}
