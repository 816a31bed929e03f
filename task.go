package chronowheel

import (
	"sync/atomic"
	"time"
)

// Callback is invoked with a task's identifier once its deadline has passed.
// It may be invoked on any callback worker goroutine, or exceptionally on the
// tick goroutine (see fallbackFire in monitor.go). It must be safe to
// invoke concurrently with other callbacks.
type Callback func(taskID string)

// task is the monitor's internal record of a timeout being watched. TaskID,
// NodeID, ExpireAt and Callback are set once at construction and never
// mutated afterwards; cancelled is the only mutable field and is accessed
// through atomic operations so slot drains, cascades and Remove can race
// freely against each other.
type task struct {
	taskID   string
	nodeID   string
	expireAt time.Time
	callback Callback

	cancelled atomic.Bool

	// heapIndex is owned by the deadline index's mutex; it is not valid
	// outside that lock.
	heapIndex int
}

func newTask(taskID, nodeID string, expireAt time.Time, cb Callback) *task {
	return &task{
		taskID:    taskID,
		nodeID:    nodeID,
		expireAt:  expireAt,
		callback:  cb,
		heapIndex: -1,
	}
}

// isCancelled reports whether Remove has been called for this task.
func (t *task) isCancelled() bool {
	return t.cancelled.Load()
}

// cancel marks the task cancelled. The flag is monotonic: once set it never
// clears.
func (t *task) cancel() {
	t.cancelled.Store(true)
}
