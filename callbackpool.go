package chronowheel

import "sync"

// callbackPool is a fixed-size set of goroutines that receive fired tasks
// through a channel and invoke their callbacks. A buffered channel plus a
// sync.WaitGroup gives the same blocking-FIFO-handoff contract as a
// mutex+condition-variable queue, without hand-rolled locking.
//
// The pool makes no inter-task ordering guarantee: tasks fired within one
// tick may be delivered in any order and concurrently across workers.
type callbackPool struct {
	ch     chan *task
	done   chan struct{}
	wg     sync.WaitGroup
	logger Logger
}

func newCallbackPool(workers int, logger Logger) *callbackPool {
	p := &callbackPool{
		ch:     make(chan *task, 1024),
		done:   make(chan struct{}),
		logger: logger,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *callbackPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			return
		default:
		}

		select {
		case <-p.done:
			return
		case t := <-p.ch:
			p.invoke(t)
		}
	}
}

// invoke re-checks cancellation, then calls the task's callback inside a
// recover() guard: a panicking callback is caught and logged but must never
// terminate the worker.
func (p *callbackPool) invoke(t *task) {
	if t.isCancelled() {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task callback panicked", "task_id", t.taskID, "node_id", t.nodeID, "panic", r)
		}
	}()

	t.callback(t.taskID)
}

// submit enqueues a fired task for dispatch. It never blocks past a closed
// pool: once stop has been signalled, submissions are dropped rather than
// deadlocking the tick worker against a full, abandoned channel.
func (p *callbackPool) submit(t *task) {
	select {
	case p.ch <- t:
	case <-p.done:
	}
}

// stop signals every worker to exit, waits for any in-flight callback to
// finish, then drains whatever remained queued without dispatching it — the
// callback queue is discarded, not flushed.
func (p *callbackPool) stop() {
	close(p.done)
	p.wg.Wait()

	for {
		select {
		case <-p.ch:
		default:
			return
		}
	}
}
