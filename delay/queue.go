package delay

import (
	"log/slog"
	"sync/atomic"

	"github.com/lixenwraith/hostpatch/core"
	"github.com/lixenwraith/hostpatch/status"
)

// StateFunc returns the host state valid right now and whether it exists
// Called by the consumer at the start of every drain, never at schedule time
type StateFunc[S any] func() (S, bool)

// ApplyFunc mutates host state. Returning false marks a stale target; the
// action is dropped without a diagnostic
type ApplyFunc[S any] func(state S) bool

// Action is one pending host-state mutation
type Action[S any] struct {
	Target    any // identity for logging only
	Remaining int // steps left; decremented once per drain
	Apply     ApplyFunc[S]
}

// Queue bridges "detected on goroutine A" to "applied on the step goroutine"
// Thread-Safety:
//   - Schedule: any goroutine, lock-free, never blocks, always succeeds
//   - DrainOneStep, Clear: the single consumer (host step goroutine) only,
//     never concurrently with each other. Not guarded at runtime
type Queue[S any] struct {
	items *mpsc[*Action[S]]
	state StateFunc[S]
	name  string

	logger *slog.Logger

	statScheduled *atomic.Int64
	statFired     *atomic.Int64
	statRequeued  *atomic.Int64
	statStale     *atomic.Int64
	statCleared   *atomic.Int64
	statPending   *atomic.Int64
}

type options struct {
	name     string
	logger   *slog.Logger
	registry *status.Registry
}

// Option configures a Queue
type Option func(*options)

// WithName prefixes metric keys and diagnostics, default "delay"
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sends diagnostics to l instead of core.Logger()
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegistry publishes queue counters into reg
func WithRegistry(reg *status.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// New creates a queue whose actions fire against the state returned by
// state at drain time. A nil state is always live with the zero S
func New[S any](state StateFunc[S], opts ...Option) *Queue[S] {
	o := options{name: "delay"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = status.NewRegistry()
	}
	if state == nil {
		state = func() (S, bool) {
			var zero S
			return zero, true
		}
	}

	c := o.registry.Counters
	return &Queue[S]{
		items:         newMPSC[*Action[S]](),
		state:         state,
		name:          o.name,
		logger:        o.logger,
		statScheduled: c.Get(o.name + ".scheduled"),
		statFired:     c.Get(o.name + ".fired"),
		statRequeued:  c.Get(o.name + ".requeued"),
		statStale:     c.Get(o.name + ".stale"),
		statCleared:   c.Get(o.name + ".cleared"),
		statPending:   c.Get(o.name + ".pending"),
	}
}

func (q *Queue[S]) log() *slog.Logger {
	if q.logger != nil {
		return q.logger
	}
	return core.Logger()
}

// Schedule enqueues apply to run on the drain that brings delaySteps to
// zero. delaySteps below 1 means the next drain
func (q *Queue[S]) Schedule(target any, delaySteps int, apply ApplyFunc[S]) {
	if delaySteps < 1 {
		delaySteps = 1
	}
	q.items.push(&Action[S]{Target: target, Remaining: delaySteps, Apply: apply})
	q.statScheduled.Add(1)
}

// DrainOneStep advances every action present at the start of the call by one
// step and fires those reaching zero. Call exactly once per discrete step
//
// The queue tail is marked before anything else: every action whose
// Schedule swapped in before the mark is processed, and actions scheduled
// during this call, including from inside StateFunc or an ApplyFunc, wait
// for the next call. When the host state is gone the queue is cleared
// instead. Returns the number of actions applied
func (q *Queue[S]) DrainOneStep() int {
	mark := q.items.mark()

	state, live := q.state()
	if !live {
		q.Clear()
		return 0
	}

	fired := 0
	for {
		a, ok := q.items.popThrough(mark)
		if !ok {
			break
		}

		a.Remaining--
		if a.Remaining > 0 {
			q.items.push(a)
			q.statRequeued.Add(1)
			continue
		}

		if a.Apply == nil || !a.Apply(state) {
			q.statStale.Add(1)
			continue
		}
		fired++
		q.log().Debug("delayed action fired", "queue", q.name, "target", a.Target)
	}

	q.statFired.Add(int64(fired))
	q.statPending.Store(int64(q.items.len()))
	return fired
}

// Clear drops every pending action. Used on host-state teardown so nothing
// applies against a stale or rebuilt world. Consumer goroutine only
func (q *Queue[S]) Clear() int {
	mark := q.items.mark()
	dropped := 0
	for {
		if _, ok := q.items.popThrough(mark); !ok {
			break
		}
		dropped++
	}
	q.statPending.Store(0)

	if dropped > 0 {
		q.statCleared.Add(int64(dropped))
		q.log().Warn("delayed actions dropped on teardown", "queue", q.name, "dropped", dropped)
	}
	return dropped
}

// Len returns the approximate number of pending actions
func (q *Queue[S]) Len() int {
	return q.items.len()
}
