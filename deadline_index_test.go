package chronowheel

import (
	"testing"
	"time"
)

func TestDeadlineIndexPeekEmpty(t *testing.T) {
	d := newDeadlineIndex(4)
	if _, ok := d.peek(); ok {
		t.Fatal("peek on an empty index should report false")
	}
}

func TestDeadlineIndexPeekReturnsEarliest(t *testing.T) {
	d := newDeadlineIndex(4)
	now := time.Now()

	late := newTask("late", "n", now.Add(3*time.Second), func(string) {})
	early := newTask("early", "n", now.Add(time.Second), func(string) {})
	mid := newTask("mid", "n", now.Add(2*time.Second), func(string) {})

	d.push(late)
	d.push(early)
	d.push(mid)

	got, ok := d.peek()
	if !ok {
		t.Fatal("peek should report true once entries exist")
	}
	if !got.Equal(early.expireAt) {
		t.Errorf("peek = %v, want earliest deadline %v", got, early.expireAt)
	}
}

func TestDeadlineIndexRemove(t *testing.T) {
	d := newDeadlineIndex(4)
	now := time.Now()

	a := newTask("a", "n", now.Add(time.Second), func(string) {})
	b := newTask("b", "n", now.Add(2*time.Second), func(string) {})
	d.push(a)
	d.push(b)

	d.remove(a)

	got, ok := d.peek()
	if !ok || !got.Equal(b.expireAt) {
		t.Fatalf("after removing the earliest task, peek should yield the remaining one; got %v ok=%v", got, ok)
	}
}

func TestDeadlineIndexRemoveIsIdempotent(t *testing.T) {
	d := newDeadlineIndex(4)
	a := newTask("a", "n", time.Now(), func(string) {})
	d.push(a)

	d.remove(a)
	d.remove(a) // should not panic on a task already removed

	if _, ok := d.peek(); ok {
		t.Fatal("index should be empty after removing its only entry")
	}
}

func TestDeadlineIndexRemoveNeverPushed(t *testing.T) {
	d := newDeadlineIndex(4)
	a := newTask("a", "n", time.Now(), func(string) {})

	d.remove(a) // heapIndex is -1, must be a safe no-op
}

func TestDeadlineIndexClear(t *testing.T) {
	d := newDeadlineIndex(4)
	d.push(newTask("a", "n", time.Now(), func(string) {}))
	d.push(newTask("b", "n", time.Now(), func(string) {}))

	d.clear()

	if _, ok := d.peek(); ok {
		t.Fatal("peek after clear should report false")
	}
}
