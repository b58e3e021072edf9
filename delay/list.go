package delay

import (
	"runtime"
	"sync/atomic"
)

// node is one queue link. The node the consumer last popped stays behind as
// the stub, so head never needs an atomic
type node[T any] struct {
	next atomic.Pointer[node[T]]
	val  T
}

// mpsc is an unbounded lock-free multi-producer single-consumer FIFO
// Thread-Safety:
//   - push: wait-free tail swap, any number of producers
//   - pop: single consumer only
//   - A producer is visible to pop only after linking its node (the next
//     store), so a half-published entry is never read
//   - popThrough waits out producers that swapped the tail before the mark
//     but have not linked yet; the gap is a few instructions
//
// Unlike a ring buffer nothing is overwritten when producers outrun the
// consumer; every entry is eventually popped
type mpsc[T any] struct {
	head *node[T] // consumer-owned
	tail atomic.Pointer[node[T]]
	size atomic.Int64 // published entries not yet popped
}

func newMPSC[T any]() *mpsc[T] {
	stub := &node[T]{}
	q := &mpsc[T]{head: stub}
	q.tail.Store(stub)
	return q
}

// push appends val. Safe for concurrent producers
func (q *mpsc[T]) push(val T) {
	n := &node[T]{val: val}
	prev := q.tail.Swap(n)
	prev.next.Store(n) // publishes n to the consumer
	q.size.Add(1)
}

// pop removes the oldest linked entry. Reports false when the queue is empty
// or the oldest producer has swapped the tail but not linked yet
func (q *mpsc[T]) pop() (T, bool) {
	var zero T
	next := q.head.next.Load()
	if next == nil {
		return zero, false
	}
	val := next.val
	next.val = zero // next becomes the stub; drop the reference
	q.head = next
	q.size.Add(-1)
	return val, true
}

// mark returns the newest swapped node. Every entry whose push swapped the
// tail before mark is called sits at or before it
func (q *mpsc[T]) mark() *node[T] {
	return q.tail.Load()
}

// popThrough removes the oldest entry unless mark has already been popped.
// An entry between head and mark whose producer has not linked yet is
// waited for, so nothing pushed before the mark is skipped
func (q *mpsc[T]) popThrough(mark *node[T]) (T, bool) {
	if q.head == mark {
		var zero T
		return zero, false
	}
	for q.head.next.Load() == nil {
		runtime.Gosched()
	}
	return q.pop()
}

// len returns the count of published, unpopped entries
func (q *mpsc[T]) len() int {
	if n := q.size.Load(); n > 0 {
		return int(n)
	}
	return 0
}
