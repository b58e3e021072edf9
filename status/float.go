package status

import (
	"math"
	"sync/atomic"
)

// Float is an atomic float64 stored as its IEEE-754 bits
// Zero value is ready to use and reads as 0.0
type Float struct {
	bits atomic.Uint64
}

// Store sets the value
func (f *Float) Store(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Load returns the value
func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add adds delta and returns the new value, retrying on contention
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
