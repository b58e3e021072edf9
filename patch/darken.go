package patch

import (
	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/registry"
)

func init() {
	registry.RegisterPatch("darken", func(env any) any { return &darken{env: env.(*Env)} }, 30)
}

// darken tracks the brightness at the player once per step and scales the
// clear color by the interpolated factor every frame. Under open sky the
// factor is pinned to 1 so the sky's own daylight is not applied twice
type darken struct {
	host.NopHooks
	env *Env
}

func (*darken) Name() string { return "darken" }

func (d *darken) Step(c *host.Client) {
	w := c.World()
	if w == nil {
		return
	}
	table := d.env.BrightnessTable(w)
	if table == nil {
		return
	}

	sky, block := host.UnpackLight(w.CombinedLight(c.Player()))
	sub, _ := d.env.Skylight(w)
	level := max(max(0, sky-sub), block)

	if sky > 0 {
		d.env.Darken.Advance(1, 1)
		return
	}
	d.env.Darken.Advance(float64(table[level]), d.env.Smoothing)
}

func (d *darken) FogColorUpdated(c *host.Client, partial float64) {
	mult := d.env.Darken.Sample(partial)
	rgb := c.ClearColor()
	for i := range rgb {
		rgb[i] *= mult
	}
	c.SetClearColor(rgb)
}
