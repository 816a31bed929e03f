package chronowheel

import (
	"container/heap"
	"sync"
	"time"
)

// deadlineQueueCapacity is the floor capacity below which deadlineHeap stops
// shrinking its backing array.
const deadlineQueueCapacity = 32

// deadlineHeap is a container/heap.Interface over *task ordered by ExpireAt,
// the 0th element always holding the earliest deadline.
type deadlineHeap []*task

func newDeadlineHeap(capacity int) *deadlineHeap {
	h := make(deadlineHeap, 0, capacity)
	heap.Init(&h)
	return &h
}

func (h deadlineHeap) Len() int { return len(h) }

func (h deadlineHeap) Less(i, j int) bool {
	return h[i].expireAt.Before(h[j].expireAt)
}

func (h deadlineHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *deadlineHeap) Push(x any) {
	n := h.Len()
	c := cap(*h)
	s := n + 1

	if s > c {
		nh := make(deadlineHeap, n, c*2)
		copy(nh, *h)
		*h = nh
	}

	*h = (*h)[0:s]
	t := x.(*task)
	t.heapIndex = n
	(*h)[n] = t
}

func (h *deadlineHeap) Pop() any {
	n := h.Len()
	c := cap(*h)
	s := n - 1
	capHalf := c / 2

	if n < capHalf && c > deadlineQueueCapacity {
		nh := make(deadlineHeap, n, capHalf)
		copy(nh, *h)
		*h = nh
	}

	t := (*h)[s]
	(*h)[s] = nil
	t.heapIndex = -1
	*h = (*h)[0:s]

	return t
}

// deadlineIndex is the mutex-guarded wrapper around deadlineHeap. It exists
// purely for diagnostic introspection (Monitor.NextDeadline) and is never
// consulted by the placement calculator, cascade, or drain logic.
type deadlineIndex struct {
	mu sync.Mutex
	h  *deadlineHeap
}

func newDeadlineIndex(capacity int) *deadlineIndex {
	h := newDeadlineHeap(capacity)
	return &deadlineIndex{h: h}
}

// push adds t to the index.
func (d *deadlineIndex) push(t *task) {
	d.mu.Lock()
	heap.Push(d.h, t)
	d.mu.Unlock()
}

// remove evicts t from the index, if it is still present. Safe to call more
// than once or with a task that was never pushed.
func (d *deadlineIndex) remove(t *task) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.h.Len()
	if n == 0 || t.heapIndex < 0 || t.heapIndex >= n {
		return
	}
	heap.Remove(d.h, t.heapIndex)
}

// peek returns the earliest deadline currently tracked, without removing it.
func (d *deadlineIndex) peek() (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.h.Len() == 0 {
		return time.Time{}, false
	}
	return (*d.h)[0].expireAt, true
}

// clear drops every entry, used by Stop.
func (d *deadlineIndex) clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	*d.h = (*d.h)[:0]
}
