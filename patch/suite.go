package patch

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/lixenwraith/hostpatch/core"
	"github.com/lixenwraith/hostpatch/delay"
	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/registry"
	"github.com/lixenwraith/hostpatch/resolve"
	"github.com/lixenwraith/hostpatch/status"
	"github.com/lixenwraith/hostpatch/tick"
)

// ErrUnknownModule is returned for a module name with no registered factory
var ErrUnknownModule = errors.New("unknown patch module")

// Defaults
const (
	DefaultAmbient      = 0.1
	DefaultSmoothing    = 0.1
	DefaultRebuildDelay = 5
)

// Module is one patch. Modules embed host.NopHooks and override the hooks
// they need
type Module interface {
	host.Hooks
	Name() string
}

// Options configures a Suite. Zero fields take defaults
type Options struct {
	// Modules selects patches by name; nil enables every registered patch
	Modules []string

	Ambient      float32
	Smoothing    float64
	RebuildDelay int
	Table        resolve.Table

	Resolver *resolve.Resolver
	Registry *status.Registry
	Logger   *slog.Logger

	// Time drives the partial-step clock; the host passes its game clock
	Time         tick.TimeSource
	StepInterval time.Duration
}

// Suite is the host.Hooks implementation handed to the host: it fans every
// hook out to the enabled modules in registration order
type Suite struct {
	env     *Env
	modules []Module

	statDarken *status.Float
}

// New builds the enabled modules around one shared Env
func New(opts Options) (*Suite, error) {
	if opts.Ambient <= 0 {
		opts.Ambient = DefaultAmbient
	}
	if opts.Smoothing <= 0 {
		opts.Smoothing = DefaultSmoothing
	}
	if opts.RebuildDelay <= 0 {
		opts.RebuildDelay = DefaultRebuildDelay
	}
	if opts.Registry == nil {
		opts.Registry = status.Default()
	}
	if opts.Logger == nil {
		opts.Logger = core.Logger()
	}
	if opts.Resolver == nil {
		opts.Resolver = resolve.New(resolve.WithRegistry(opts.Registry), resolve.WithLogger(opts.Logger))
	}
	if opts.Time == nil {
		opts.Time = host.MonotonicTimeProvider{}
	}

	env := &Env{
		Resolver:     opts.Resolver,
		Darken:       tick.NewScalar(1),
		Clock:        tick.NewClock(opts.Time, opts.StepInterval),
		Registry:     opts.Registry,
		Logger:       opts.Logger,
		Ambient:      opts.Ambient,
		Smoothing:    opts.Smoothing,
		RebuildDelay: opts.RebuildDelay,
		roles:        bindRoles(opts.Table, opts.Logger),
	}
	env.Queue = delay.New(env.liveWorld,
		delay.WithLogger(opts.Logger), delay.WithRegistry(opts.Registry))

	modules, err := build(env, opts.Modules)
	if err != nil {
		return nil, err
	}

	s := &Suite{
		env:        env,
		modules:    modules,
		statDarken: opts.Registry.Gauges.Get("tick.darken"),
	}
	s.statDarken.Store(env.Darken.Current())
	opts.Logger.Info("patch suite ready", "modules", s.Modules())
	return s, nil
}

func bindRoles(table resolve.Table, logger *slog.Logger) map[string]resolve.Role {
	roles := make(map[string]resolve.Role)
	for _, r := range Roles() {
		roles[r.Name] = table.Apply(r)
	}
	for name := range table {
		if _, ok := roles[name]; !ok {
			logger.Warn("binding table role unknown", "role", name)
		}
	}
	return roles
}

func build(env *Env, names []string) ([]Module, error) {
	if names == nil {
		names = registry.PatchNames()
	}

	type entry struct {
		order int
		mod   Module
	}
	var entries []entry
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		e, ok := registry.GetPatch(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
		}
		v := e.Factory(env)
		m, ok := v.(Module)
		if !ok {
			return nil, fmt.Errorf("%w: %s: factory returned %T", ErrUnknownModule, name, v)
		}
		entries = append(entries, entry{e.Order, m})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].order < entries[j].order })
	out := make([]Module, len(entries))
	for i, e := range entries {
		out[i] = e.mod
	}
	return out, nil
}

// Env returns the shared environment
func (s *Suite) Env() *Env { return s.env }

// Resolver returns the suite's resolver
func (s *Suite) Resolver() *resolve.Resolver { return s.env.Resolver }

// Queue returns the delayed-rebuild queue
func (s *Suite) Queue() *delay.Queue[host.World] { return s.env.Queue }

// Darken returns the interpolated ambient darkening factor
func (s *Suite) Darken() *tick.Scalar { return s.env.Darken }

// Clock returns the partial-step clock marked on every client step
func (s *Suite) Clock() *tick.Clock { return s.env.Clock }

// Ambience samples the darkening factor at the current partial step
// Safe from any goroutine
func (s *Suite) Ambience() float64 {
	return s.env.Darken.Sample(s.env.Clock.Fraction())
}

// Modules returns the enabled module names in fan-out order
func (s *Suite) Modules() []string {
	names := make([]string, len(s.modules))
	for i, m := range s.modules {
		names[i] = m.Name()
	}
	return names
}

func (s *Suite) WorldLoaded(w host.World) {
	for _, m := range s.modules {
		m.WorldLoaded(w)
	}
}

func (s *Suite) BlockChanged(w host.World, pos host.BlockPos, lightValue int) {
	for _, m := range s.modules {
		m.BlockChanged(w, pos, lightValue)
	}
}

func (s *Suite) Step(c *host.Client) {
	s.env.client = c
	for _, m := range s.modules {
		m.Step(c)
	}
	s.env.Clock.Mark()
	s.statDarken.Store(s.env.Darken.Current())
}

func (s *Suite) LightmapUpdated(c *host.Client) {
	s.env.client = c
	for _, m := range s.modules {
		m.LightmapUpdated(c)
	}
}

func (s *Suite) FogColorUpdated(c *host.Client, partial float64) {
	s.env.client = c
	for _, m := range s.modules {
		m.FogColorUpdated(c, partial)
	}
}

func (s *Suite) SetupFog(c *host.Client) {
	s.env.client = c
	for _, m := range s.modules {
		m.SetupFog(c)
	}
}

func (s *Suite) AOFaceUpdated(face any) {
	for _, m := range s.modules {
		m.AOFaceUpdated(face)
	}
}
