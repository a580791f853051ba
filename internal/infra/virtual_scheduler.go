package infra

import (
	"time"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// VirtualScheduler is a deterministic clock and task queue.
// Time only moves through Advance and AdvanceTo, which run due tasks inline.
type VirtualScheduler struct {
	now   time.Time
	queue *TaskQueue
}

// NewVirtualScheduler creates a scheduler whose clock starts at start.
func NewVirtualScheduler(start time.Time) *VirtualScheduler {
	return &VirtualScheduler{
		now:   start,
		queue: NewTaskQueue(),
	}
}

// Now returns the virtual time.
func (s *VirtualScheduler) Now() time.Time {
	return s.now
}

// ScheduleOnce enqueues task at now+delay. Negative delays run on the next advance.
func (s *VirtualScheduler) ScheduleOnce(delay time.Duration, task func()) domain.Cancelable {
	if delay < 0 {
		delay = 0
	}
	return s.queue.Push(s.now.Add(delay), task)
}

// Advance moves the clock forward by d, running every task due on the way.
// Tasks scheduled by running tasks also run if they fall due within d.
func (s *VirtualScheduler) Advance(d time.Duration) {
	target := s.now.Add(d)
	for {
		t := s.queue.PopDue(target)
		if t == nil {
			break
		}
		if t.Due().After(s.now) {
			s.now = t.Due()
		}
		t.Run()
	}
	s.now = target
}

// AdvanceTo moves the clock to at. Earlier instants are ignored.
func (s *VirtualScheduler) AdvanceTo(at time.Time) {
	if at.After(s.now) {
		s.Advance(at.Sub(s.now))
		return
	}
	s.Advance(0)
}

// Flush runs every pending task, advancing the clock as needed.
func (s *VirtualScheduler) Flush() {
	for {
		due, ok := s.queue.NextDue()
		if !ok {
			return
		}
		s.AdvanceTo(due)
	}
}

// Pending returns the number of tasks waiting to run.
func (s *VirtualScheduler) Pending() int {
	return s.queue.Len()
}

// Ensure VirtualScheduler implements domain.Scheduler.
var _ domain.Scheduler = (*VirtualScheduler)(nil)
