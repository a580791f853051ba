// Package infra implements infrastructure concerns (scheduling, event sources,
// rendering surfaces, action dispatch, processes).
package infra

import (
	"container/heap"
	"time"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// Task is a scheduled one-shot function.
type Task struct {
	due      time.Time
	seq      uint64
	fn       func()
	canceled bool
	done     bool
	index    int
}

// Cancel prevents the task from running.
func (t *Task) Cancel() bool {
	if t.done || t.canceled {
		return false
	}
	t.canceled = true
	return true
}

// Due returns when the task becomes runnable.
func (t *Task) Due() time.Time {
	return t.due
}

// Run executes the task body.
func (t *Task) Run() {
	t.fn()
}

// TaskQueue orders tasks by due time, then by scheduling order.
// It is not safe for concurrent use; the owning loop serializes access.
type TaskQueue struct {
	tasks taskHeap
	seq   uint64
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Push schedules fn at due.
func (q *TaskQueue) Push(due time.Time, fn func()) *Task {
	q.seq++
	t := &Task{due: due, seq: q.seq, fn: fn}
	heap.Push(&q.tasks, t)
	return t
}

// NextDue returns the due time of the earliest live task.
func (q *TaskQueue) NextDue() (time.Time, bool) {
	q.dropCanceled()
	if len(q.tasks) == 0 {
		return time.Time{}, false
	}
	return q.tasks[0].due, true
}

// PopDue removes and returns the earliest live task due at or before now.
// The returned task is marked done and can no longer be canceled.
func (q *TaskQueue) PopDue(now time.Time) *Task {
	q.dropCanceled()
	if len(q.tasks) == 0 || q.tasks[0].due.After(now) {
		return nil
	}
	t := heap.Pop(&q.tasks).(*Task)
	t.done = true
	return t
}

// Len returns the number of live tasks.
func (q *TaskQueue) Len() int {
	n := 0
	for _, t := range q.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

func (q *TaskQueue) dropCanceled() {
	for len(q.tasks) > 0 && q.tasks[0].canceled {
		heap.Pop(&q.tasks)
	}
}

type taskHeap []*Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*Task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Ensure Task implements domain.Cancelable.
var _ domain.Cancelable = (*Task)(nil)
