package patch

import (
	"sync/atomic"

	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/registry"
)

// Locked setting values
const (
	LockedGamma            float32 = 0
	LockedAmbientOcclusion         = 1
)

func init() {
	registry.RegisterPatch("settings", func(env any) any { return newSettings(env.(*Env)) }, 10)
	registry.RegisterPatch("farplane", func(env any) any { return &farPlane{env: env.(*Env)} }, 60)
	registry.RegisterPatch("ao", func(env any) any { return &aoFace{env: env.(*Env)} }, 70)
}

// settings pins gamma and smooth lighting every step, so menu changes are
// reverted within one step
type settings struct {
	host.NopHooks
	env *Env

	forced *atomic.Int64
}

func newSettings(env *Env) *settings {
	return &settings{env: env, forced: env.counter("settings.forced")}
}

func (*settings) Name() string { return "settings" }

func (s *settings) Step(c *host.Client) {
	opts := c.Settings()
	gamma := slotOf[float32](s.env, opts, RoleGamma)
	if v, ok := gamma.Get(opts); ok && v != LockedGamma {
		gamma.Set(opts, LockedGamma)
		s.forced.Add(1)
	}
	ao := slotOf[int](s.env, opts, RoleAmbientOcclusion)
	if v, ok := ao.Get(opts); ok && v != LockedAmbientOcclusion {
		ao.Set(opts, LockedAmbientOcclusion)
		s.forced.Add(1)
	}
}

// farPlane writes max(16, renderDistance*16) into the renderer before fog
// setup; the host leaves it zero until its own first computation
type farPlane struct {
	host.NopHooks
	env *Env
}

func (*farPlane) Name() string { return "farplane" }

func (f *farPlane) SetupFog(c *host.Client) {
	rd, ok := f.env.RenderDistance(c.Settings())
	if !ok {
		return
	}
	r := c.Renderer()
	slotOf[float32](f.env, r, RoleFarPlane).Set(r, max(16, float32(rd)*16))
}

// aoFace neutralizes per-corner darkening after every face update
type aoFace struct {
	host.NopHooks
	env *Env
}

func (*aoFace) Name() string { return "ao" }

func (a *aoFace) AOFaceUpdated(face any) {
	mult, ok := slotOf[[]float32](a.env, face, RoleVertexColorMultiplier).Get(face)
	if !ok {
		return
	}
	for i := range min(4, len(mult)) {
		mult[i] = 1
	}
}
