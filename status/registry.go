package status

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// Registry groups the metric maps shared by resolver, queue, interpolation
// and host loop. Components cache pointers at construction; per-step code
// touches only atomics
type Registry struct {
	Flags    *MetricMap[atomic.Bool]
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Float]
	Labels   *MetricMap[Label]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Flags:    NewMetricMap[atomic.Bool](),
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Float](),
		Labels:   NewMetricMap[Label](),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when a component is built
// without an explicit one
func Default() *Registry {
	return defaultRegistry
}

// Len returns the number of metrics across all maps
func (r *Registry) Len() int {
	return r.Flags.Len() + r.Counters.Len() + r.Gauges.Len() + r.Labels.Len()
}

// Entry is one formatted metric for display
type Entry struct {
	Key   string
	Value string
}

// Snapshot formats every metric, sorted by key
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, r.Len())
	r.Flags.Range(func(k string, v *atomic.Bool) {
		out = append(out, Entry{k, strconv.FormatBool(v.Load())})
	})
	r.Counters.Range(func(k string, v *atomic.Int64) {
		out = append(out, Entry{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Gauges.Range(func(k string, v *Float) {
		out = append(out, Entry{k, strconv.FormatFloat(v.Load(), 'f', 3, 64)})
	})
	r.Labels.Range(func(k string, v *Label) {
		out = append(out, Entry{k, v.Load()})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
