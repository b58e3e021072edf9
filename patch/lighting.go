package patch

import (
	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/registry"
)

func init() {
	registry.RegisterPatch("brightness", func(env any) any { return &brightness{env: env.(*Env)} }, 0)
	registry.RegisterPatch("lightmap", func(env any) any { return &lightmap{env: env.(*Env)} }, 20)
}

// brightness rewrites each world's brightness table with the raised
// ambient floor. Runs for client and server worlds alike
type brightness struct {
	host.NopHooks
	env *Env
}

func (*brightness) Name() string { return "brightness" }

func (b *brightness) WorldLoaded(w host.World) {
	table := b.env.BrightnessTable(w)
	if table == nil {
		return
	}
	host.FillBrightnessCurve(table[:host.MaxLight+1], b.env.Ambient)
	b.env.Logger.Debug("brightness table patched", "remote", w.Remote(), "ambient", b.env.Ambient)
}

// lightmap overwrites the host lightmap with plain table lookups:
// brightness = table[max(sky - skylightSubtracted, block)], no gamma lift
// Filled every step and again after every host fill
type lightmap struct {
	host.NopHooks
	env *Env
}

func (*lightmap) Name() string { return "lightmap" }

func (l *lightmap) Step(c *host.Client)            { l.fill(c) }
func (l *lightmap) LightmapUpdated(c *host.Client) { l.fill(c) }

func (l *lightmap) fill(c *host.Client) {
	w := c.World()
	if w == nil {
		return
	}
	r := c.Renderer()
	tex, _ := slotOf[*host.Texture](l.env, r, RoleLightmapTexture).Get(r)
	if tex == nil || len(tex.Pixels) < host.LightWidth*host.LightWidth {
		return
	}
	table := l.env.BrightnessTable(w)
	if table == nil {
		return
	}
	sub, _ := l.env.Skylight(w)

	for sky := range host.LightWidth {
		eff := max(0, sky-sub)
		for block := range host.LightWidth {
			tex.Pixels[sky*host.LightWidth+block] = host.Gray(table[max(eff, block)])
		}
	}
	tex.Upload()
}
