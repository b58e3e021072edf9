package patch

import (
	"log/slog"
	"reflect"
	"sync/atomic"

	"github.com/lixenwraith/hostpatch/delay"
	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/resolve"
	"github.com/lixenwraith/hostpatch/status"
	"github.com/lixenwraith/hostpatch/tick"
)

// Env is what every patch module is built from: the three cores plus the
// tuning shared between modules
type Env struct {
	Resolver *resolve.Resolver
	Queue    *delay.Queue[host.World]
	Darken   *tick.Scalar
	Clock    *tick.Clock
	Registry *status.Registry
	Logger   *slog.Logger

	Ambient      float32
	Smoothing    float64
	RebuildDelay int

	roles map[string]resolve.Role

	// client is the live client, set on the client goroutine before every
	// client-side hook and read by the queue's state function during a drain
	client *host.Client
}

// Role returns r with binding-table overrides applied
func (e *Env) Role(r resolve.Role) resolve.Role {
	if rr, ok := e.roles[r.Name]; ok {
		return rr
	}
	return r
}

// liveWorld is the queue's state: the client render world at drain time
func (e *Env) liveWorld() (host.World, bool) {
	if e.client == nil {
		return nil, false
	}
	w := e.client.World()
	return w, w != nil
}

// counter returns a patch-scoped counter
func (e *Env) counter(name string) *atomic.Int64 {
	return e.Registry.Counters.Get("patch." + name)
}

func (e *Env) handle(inst any, r resolve.Role) *resolve.Handle {
	if inst == nil {
		return nil
	}
	return e.Resolver.Resolve(reflect.TypeOf(inst), e.Role(r))
}

func slotOf[T any](e *Env, inst any, r resolve.Role) resolve.Slot[T] {
	return resolve.SlotOf[T](e.handle(inst, r))
}

func entryOf[F any](e *Env, inst any, r resolve.Role) resolve.Entry[F] {
	return resolve.EntryOf[F](e.handle(inst, r))
}

// BrightnessTable returns the world's live 16-entry table, nil when the
// provider member is unresolved
func (e *Env) BrightnessTable(w host.World) []float32 {
	if w == nil {
		return nil
	}
	p := w.Provider()
	table, _ := slotOf[[]float32](e, p, RoleBrightnessTable).Get(p)
	if len(table) <= host.MaxLight {
		return nil
	}
	return table
}

// Skylight reads the world's skylight-subtracted value from its field, or
// computes it through the host entry point when the field is unresolved
func (e *Env) Skylight(w host.World) (int, bool) {
	if w == nil {
		return 0, false
	}
	if v, ok := slotOf[int](e, w, RoleSkylightSubtracted).Get(w); ok {
		return v, true
	}
	if calc, ok := entryOf[func(float32) int](e, w, RoleCalculateSkylight).Bind(w); ok {
		return calc(1), true
	}
	return 0, false
}

// RenderDistance reads the render distance in chunks from host settings
func (e *Env) RenderDistance(settings any) (int, bool) {
	return slotOf[int](e, settings, RoleRenderDistance).Get(settings)
}
