package tick

import "sync/atomic"

// Lerper blends a toward b by t in [0,1]
type Lerper[V any] func(a, b V, t float64) V

// pair is immutable once published
type pair[V any] struct {
	prev, cur V
}

// Buffer is a double-buffered value written once per discrete step and
// sampled every frame between the last two step values
// Thread-Safety:
//   - Advance, Snap: single writer (step goroutine)
//   - Sample, Pair, Current, Previous: any goroutine; one atomic load observes a
//     consistent (previous, current) pair
type Buffer[V any] struct {
	p    atomic.Pointer[pair[V]]
	lerp Lerper[V]
}

// NewBuffer starts with previous == current == init so frames rendered
// before the first step see init without a jump
func NewBuffer[V any](init V, lerp Lerper[V]) *Buffer[V] {
	b := &Buffer[V]{lerp: lerp}
	b.p.Store(&pair[V]{prev: init, cur: init})
	return b
}

// Advance shifts current into previous, then moves current one exponential
// smoothing step toward target: cur += (target - cur) * smoothing
// smoothing is clamped to [0,1]; 1 reaches target, 0 holds. Returns the new
// current value
func (b *Buffer[V]) Advance(target V, smoothing float64) V {
	old := b.p.Load()
	cur := b.lerp(old.cur, target, clamp01(smoothing))
	b.p.Store(&pair[V]{prev: old.cur, cur: cur})
	return cur
}

// Snap shifts current into previous and assigns v directly, for mode
// boundaries where smoothing is wrong but the frame blend must stay continuous
func (b *Buffer[V]) Snap(v V) {
	old := b.p.Load()
	b.p.Store(&pair[V]{prev: old.cur, cur: v})
}

// Sample returns previous + (current - previous) * frac with frac clamped to
// [0,1]. Sample(0) is exactly previous and Sample(1) exactly current
func (b *Buffer[V]) Sample(frac float64) V {
	p := b.p.Load()
	return b.At(p.prev, p.cur, frac)
}

// Pair returns previous and current from a single load, so a reader off the
// step goroutine never mixes values from two different steps
func (b *Buffer[V]) Pair() (prev, cur V) {
	p := b.p.Load()
	return p.prev, p.cur
}

// At blends a pair read earlier with Pair, matching Sample on that pair
func (b *Buffer[V]) At(prev, cur V, frac float64) V {
	switch frac = clamp01(frac); frac {
	case 0:
		return prev
	case 1:
		return cur
	}
	return b.lerp(prev, cur, frac)
}

// Current returns the value as of the latest step
func (b *Buffer[V]) Current() V { return b.p.Load().cur }

// Previous returns the value as of the step before the latest
func (b *Buffer[V]) Previous() V { return b.p.Load().prev }

// clamp01 maps NaN to 0
func clamp01(t float64) float64 {
	if !(t > 0) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
