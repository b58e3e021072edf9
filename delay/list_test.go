package delay

import (
	"sync"
	"testing"
	"time"
)

func TestMPSCFIFO(t *testing.T) {
	q := newMPSC[int]()
	if _, ok := q.pop(); ok {
		t.Fatal("pop on empty queue succeeded")
	}

	for i := 0; i < 5; i++ {
		q.push(i)
	}
	if q.len() != 5 {
		t.Fatalf("len = %d, want 5", q.len())
	}
	for i := 0; i < 5; i++ {
		v, ok := q.pop()
		if !ok || v != i {
			t.Fatalf("pop = %d, %v; want %d", v, ok, i)
		}
	}
	if q.len() != 0 {
		t.Errorf("len = %d after draining", q.len())
	}
}

func TestMPSCConcurrentPushNoLoss(t *testing.T) {
	const (
		producers = 16
		perProd   = 1000
	)
	q := newMPSC[int]()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProd; i++ {
				q.push(p*perProd + i)
			}
		}(p)
	}

	seen := make([]bool, producers*perProd)
	count := 0
	lastPerProducer := make([]int, producers)
	for i := range lastPerProducer {
		lastPerProducer[i] = -1
	}

	consume := func() {
		for {
			v, ok := q.pop()
			if !ok {
				return
			}
			if seen[v] {
				t.Fatalf("value %d popped twice", v)
			}
			seen[v] = true
			count++

			// Each producer's own pushes stay in order
			p, i := v/perProd, v%perProd
			if i <= lastPerProducer[p] {
				t.Fatalf("producer %d out of order: %d after %d", p, i, lastPerProducer[p])
			}
			lastPerProducer[p] = i
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
			consume()
		}
	}
	consume()

	if count != producers*perProd {
		t.Errorf("popped %d, want %d", count, producers*perProd)
	}
}

// stall swaps a node into the tail without linking it, like a producer
// preempted between the two halves of push. The returned func links it
func stall[T any](q *mpsc[T], val T) (link func()) {
	n := &node[T]{val: val}
	prev := q.tail.Swap(n)
	return func() {
		prev.next.Store(n)
		q.size.Add(1)
	}
}

func TestMPSCPopThroughWaitsForUnlinkedProducer(t *testing.T) {
	q := newMPSC[int]()
	link := stall(q, 1)
	q.push(2)

	if _, ok := q.pop(); ok {
		t.Fatal("pop returned an entry behind an unlinked node")
	}

	mark := q.mark()
	go func() {
		time.Sleep(10 * time.Millisecond)
		link()
	}()

	var got []int
	for {
		v, ok := q.popThrough(mark)
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("popThrough = %v, want [1 2]", got)
	}
}

func TestMPSCPopThroughStopsAtMark(t *testing.T) {
	q := newMPSC[int]()
	q.push(1)
	mark := q.mark()
	q.push(2)

	if v, ok := q.popThrough(mark); !ok || v != 1 {
		t.Fatalf("popThrough = %d, %v; want 1", v, ok)
	}
	if _, ok := q.popThrough(mark); ok {
		t.Error("popThrough went past the mark")
	}
	if q.len() != 1 {
		t.Errorf("len = %d, want 1", q.len())
	}
}
