package resolve

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/hostpatch/core"
	"github.com/lixenwraith/hostpatch/status"
)

type key struct {
	typ  reflect.Type
	role string
}

// cell holds one (type, role) resolution. once orders the strategy chain
// before every reader; handle is also published atomically for Handles()
type cell struct {
	once   sync.Once
	handle atomic.Pointer[Handle]
}

// Resolver binds roles to host members and caches every outcome, failures
// included, for its lifetime
//
// Thread-Safety:
//   - Resolve: any goroutine; the strategy chain runs at most once per
//     (type, role) and concurrent first callers block until it is published
//   - Slot/Entry access through returned handles never re-resolves
type Resolver struct {
	mu    sync.RWMutex
	cells map[key]*cell

	runs atomic.Int64

	logger *slog.Logger

	statRuns   *atomic.Int64
	statFound  *atomic.Int64
	statAbsent *atomic.Int64
	labels     *status.MetricMap[status.Label]
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLogger sends diagnostics to l instead of core.Logger()
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithRegistry publishes resolution counters into reg
func WithRegistry(reg *status.Registry) Option {
	return func(r *Resolver) { r.bindStats(reg) }
}

// New creates an empty Resolver
func New(opts ...Option) *Resolver {
	r := &Resolver{cells: make(map[key]*cell)}
	r.bindStats(status.NewRegistry())
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = New(WithRegistry(status.Default()))

// Default returns the process-wide resolver
func Default() *Resolver {
	return defaultResolver
}

func (r *Resolver) bindStats(reg *status.Registry) {
	r.statRuns = reg.Counters.Get("resolve.runs")
	r.statFound = reg.Counters.Get("resolve.found")
	r.statAbsent = reg.Counters.Get("resolve.absent")
	r.labels = reg.Labels
}

func (r *Resolver) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return core.Logger()
}

// cell returns the cell for k, creating it on first use
func (r *Resolver) cell(k key) *cell {
	r.mu.RLock()
	c, ok := r.cells[k]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cells[k]; ok {
		return c
	}
	c = &cell{}
	r.cells[k] = c
	return c
}

// Resolve binds role on host type t (a struct or pointer to struct)
// The first call for a (t, role.Name) pair runs the strategy chain; every
// later call returns the same handle. Roles are keyed by name: a second,
// different Role with an already-resolved name gets the first outcome
func (r *Resolver) Resolve(t reflect.Type, role Role) *Handle {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	c := r.cell(key{t, role.Name})
	c.once.Do(func() {
		c.handle.Store(r.run(t, role))
	})
	return c.handle.Load()
}

// Of resolves role on host type T
func Of[T any](r *Resolver, role Role) *Handle {
	return r.Resolve(reflect.TypeFor[T](), role)
}

// Lookup returns the handle for an already-resolved pair without resolving
func (r *Resolver) Lookup(t reflect.Type, roleName string) (*Handle, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	r.mu.RLock()
	c, ok := r.cells[key{t, roleName}]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	h := c.handle.Load()
	return h, h != nil
}

// Runs returns how many times the strategy chain has executed
func (r *Resolver) Runs() int64 {
	return r.runs.Load()
}

// Handles returns every published handle sorted by type then role
func (r *Resolver) Handles() []*Handle {
	r.mu.RLock()
	out := make([]*Handle, 0, len(r.cells))
	for _, c := range r.cells {
		if h := c.handle.Load(); h != nil {
			out = append(out, h)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if a, b := out[i].typ.String(), out[j].typ.String(); a != b {
			return a < b
		}
		return out[i].role < out[j].role
	})
	return out
}

// run executes the strategy chain once and emits the single diagnostic
func (r *Resolver) run(t reflect.Type, role Role) *Handle {
	r.runs.Add(1)
	r.statRuns.Add(1)

	h := absent(t, role)
	if t.Kind() == reflect.Struct {
		ms := members(t, role.Kind)
		if m, ok := role.exactPass(ms); ok {
			h.member, h.strategy = m, StrategyExactName
		} else if m, ok := role.structuralPass(ms); ok {
			h.member, h.strategy = m, StrategyStructural
		}
	}

	r.labels.Get("resolve." + role.Name).Store(h.strategy.String())

	if !h.Found() {
		r.statAbsent.Add(1)
		r.log().Warn("symbol unresolved, feature disabled",
			"role", role.Name, "type", t.String(), "kind", role.Kind.String(),
			"candidates", role.Candidates)
		return h
	}

	r.statFound.Add(1)
	r.log().Info("symbol resolved",
		"role", role.Name, "type", t.String(), "member", h.member.Name,
		"strategy", h.strategy.String())
	return h
}
