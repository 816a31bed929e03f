package chronowheel

import (
	"testing"
	"time"
)

func TestNewTaskFields(t *testing.T) {
	expireAt := time.Now().Add(time.Second)
	called := ""
	tk := newTask("task-1", "node-1", expireAt, func(id string) { called = id })

	if tk.taskID != "task-1" {
		t.Errorf("taskID = %q, want task-1", tk.taskID)
	}
	if tk.nodeID != "node-1" {
		t.Errorf("nodeID = %q, want node-1", tk.nodeID)
	}
	if !tk.expireAt.Equal(expireAt) {
		t.Errorf("expireAt = %v, want %v", tk.expireAt, expireAt)
	}
	if tk.heapIndex != -1 {
		t.Errorf("heapIndex = %d, want -1", tk.heapIndex)
	}

	tk.callback(tk.taskID)
	if called != "task-1" {
		t.Errorf("callback did not run with taskID, got %q", called)
	}
}

func TestTaskCancelIsMonotonic(t *testing.T) {
	tk := newTask("task-2", "node-1", time.Now(), func(string) {})

	if tk.isCancelled() {
		t.Fatal("new task should not start cancelled")
	}

	tk.cancel()
	if !tk.isCancelled() {
		t.Fatal("task should be cancelled after cancel()")
	}

	tk.cancel()
	if !tk.isCancelled() {
		t.Fatal("second cancel() should be a no-op, not un-cancel")
	}
}
