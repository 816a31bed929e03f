package chronowheel

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jiansoft/robin"
)

// Monitor is the public facade of the timeout monitor: it tracks a dynamic
// population of in-flight tasks and fires a caller-supplied callback exactly
// once per task that exceeds its individually assigned deadline.
//
// A Monitor must be constructed with New and started with Start before Add
// will accept tasks. It is safe for concurrent use by multiple goroutines.
type Monitor struct {
	opts Options

	wheel     *wheel
	registry  *registry
	deadlines *deadlineIndex
	pool      *callbackPool

	running  atomic.Bool
	shutdown chan struct{}
	tickWg   sync.WaitGroup

	counters monitorCounters
}

// New builds a Monitor from its options. It fails eagerly if the wheel
// geometry is invalid; no goroutines are spawned until Start.
func New(opts ...Option) (*Monitor, error) {
	o := NewOptions(opts...)
	if o.WheelSize <= 0 || o.NumWheels <= 0 {
		return nil, ErrInvalidGeometry
	}

	m := &Monitor{
		opts:      o,
		wheel:     newWheel(o.WheelSize, o.NumWheels, o.SlotInterval),
		registry:  newRegistry(),
		deadlines: newDeadlineIndex(o.WheelSize),
	}
	return m, nil
}

// Start transitions the monitor to running, spawning one tick goroutine and
// WorkerCount callback goroutines. It is idempotent: a losing (concurrent or
// repeated) call is a no-op.
func (m *Monitor) Start() {
	if !m.running.CompareAndSwap(false, true) {
		return
	}

	m.shutdown = make(chan struct{})
	m.pool = newCallbackPool(m.opts.WorkerCount, m.opts.Logger)

	m.tickWg.Add(1)
	go m.tickLoop()

	m.opts.Logger.Info("timeout monitor started",
		"wheel_size", m.opts.WheelSize,
		"num_wheels", m.opts.NumWheels,
		"slot_interval", m.opts.SlotInterval,
		"workers", m.opts.WorkerCount,
	)
}

// Stop transitions the monitor to stopped, joins the tick goroutine and the
// callback pool, then clears the registry, deadline index and every slot.
// It is idempotent.
func (m *Monitor) Stop() {
	if !m.running.CompareAndSwap(true, false) {
		return
	}

	close(m.shutdown)
	m.tickWg.Wait()

	m.pool.stop()

	m.registry.clear()
	m.deadlines.clear()
	m.wheel.clear()

	m.opts.Logger.Info("timeout monitor stopped")
}

// Running reports whether the monitor is currently started.
func (m *Monitor) Running() bool {
	return m.running.Load()
}

// Add begins monitoring taskID for timeout. callback is invoked with taskID
// once, either when the deadline passes or (defensively) as a fallback fire
// on internal invariant breakage; it is never invoked if Remove succeeds
// before the deadline. See errors.go for the full taxonomy.
func (m *Monitor) Add(taskID, nodeID string, timeout time.Duration, callback Callback) (bool, error) {
	if !m.Running() {
		return false, ErrNotRunning
	}
	if timeout <= 0 {
		return false, ErrInvalidTimeout
	}
	if timeout > m.wheel.maxRange() {
		return false, ErrRangeExceeded
	}

	now := time.Now()
	t := newTask(taskID, nodeID, now.Add(timeout), callback)

	if !m.registry.insertIfAbsent(taskID, t) {
		return false, ErrDuplicateTask
	}

	if !m.wheel.place(t, now) {
		m.registry.erase(taskID)
		return false, ErrPlacementFailed
	}

	m.deadlines.push(t)
	m.counters.adds.Add(1)

	robin.RightNow().Do(func() {
		m.opts.Logger.Info("task added", "task_id", taskID, "node_id", nodeID, "timeout", timeout)
	})

	return true, nil
}

// Remove cancels monitoring for taskID. It reports false if taskID is
// unknown. A true result does not guarantee the callback never ran: if it
// was already in flight when Remove returned, it may still complete.
func (m *Monitor) Remove(taskID string) bool {
	t, ok := m.registry.lookup(taskID)
	if !ok {
		return false
	}

	m.registry.erase(taskID)
	m.deadlines.remove(t)
	t.cancel()
	m.counters.removes.Add(1)

	robin.RightNow().Do(func() {
		m.opts.Logger.Info("task removed", "task_id", taskID, "node_id", t.nodeID)
	})

	return true
}

// Count returns the number of tasks currently being monitored.
func (m *Monitor) Count() int {
	return m.registry.count()
}

// NextDeadline returns the earliest deadline currently tracked, without
// removing it. It exists purely for observability and never influences
// placement, cascade, or firing.
func (m *Monitor) NextDeadline() (time.Time, bool) {
	return m.deadlines.peek()
}

// Stats returns a snapshot of cumulative monitor activity.
func (m *Monitor) Stats() MonitorStats {
	return m.counters.snapshot()
}

func (m *Monitor) tickLoop() {
	defer m.tickWg.Done()

	ticker := time.NewTicker(m.opts.SlotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.shutdown:
			return
		case <-ticker.C:
			m.tick()
		}
	}
}

// tick is one pass of the tick worker: advance, cascade, then drain the
// bottom wheel's current slot.
func (m *Monitor) tick() {
	now := time.Now()

	moved, failedCascade := m.wheel.advance(now)
	if moved > 0 {
		m.counters.cascadeMoves.Add(int64(moved))
	}
	for _, t := range failedCascade {
		m.fallbackFire(t)
	}

	for _, t := range m.wheel.drainBottom() {
		m.handleDrained(t, now)
	}
}

func (m *Monitor) handleDrained(t *task, now time.Time) {
	if t.isCancelled() {
		return
	}

	if !now.Before(t.expireAt) {
		m.registry.erase(t.taskID)
		m.deadlines.remove(t)
		m.counters.fires.Add(1)
		m.pool.submit(t)
		return
	}

	if !m.wheel.place(t, now) {
		m.fallbackFire(t)
	}
}

// fallbackFire is the last-resort safety valve: a task whose re-placement
// should have succeeded (post-validation, remaining time only shrinks) but
// did not is fired inline, on the tick goroutine, rather than dropped
// silently.
func (m *Monitor) fallbackFire(t *task) {
	m.registry.erase(t.taskID)
	m.deadlines.remove(t)
	m.counters.fallbackFires.Add(1)

	m.opts.Logger.Error("fallback fire: task could not be re-placed in wheel", "task_id", t.taskID, "node_id", t.nodeID)

	if t.isCancelled() {
		return
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				m.opts.Logger.Error("fallback callback panicked", "task_id", t.taskID, "panic", r)
			}
		}()
		t.callback(t.taskID)
	}()
}
