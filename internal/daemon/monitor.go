// Package daemon implements the monitor event loop.
package daemon

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/infra"
)

// MonitorConfig holds event loop configuration.
type MonitorConfig struct {
	EventBuffer int  // Capacity of the channel producers push events into
	DrainOnEOF  bool // Keep running scheduled tasks after the event source closes
}

// DefaultMonitorConfig returns default loop configuration.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		EventBuffer: 256,
		DrainOnEOF:  true,
	}
}

// EventHandler consumes events on the loop goroutine.
// Implementation: usecase.Session.
type EventHandler interface {
	HandleEvent(ev domain.Event)
	Stop()
}

// Monitor is the single execution context of a monitoring session.
// Events, scheduled tasks and shutdown all run on the goroutine calling Run,
// so session state needs no locks.
type Monitor struct {
	config MonitorConfig
	queue  *infra.TaskQueue
	logger *zap.Logger
}

// NewMonitor creates a new monitor loop.
func NewMonitor(config MonitorConfig, logger *zap.Logger) *Monitor {
	return &Monitor{
		config: config,
		queue:  infra.NewTaskQueue(),
		logger: logger,
	}
}

// NewEventChannel returns a channel sized for this monitor.
func (m *Monitor) NewEventChannel() chan domain.Event {
	return make(chan domain.Event, m.config.EventBuffer)
}

// Now returns wall-clock time.
func (m *Monitor) Now() time.Time {
	return time.Now()
}

// ScheduleOnce enqueues task on the loop.
// Must be called from the loop goroutine (event handlers, tasks) or before Run.
func (m *Monitor) ScheduleOnce(delay time.Duration, task func()) domain.Cancelable {
	if delay < 0 {
		delay = 0
	}
	return m.queue.Push(time.Now().Add(delay), task)
}

// Run starts the monitor loop.
// This blocks until context is canceled, or until the event source closes
// (and, with DrainOnEOF, every pending task has run). handler.Stop is
// always called before returning.
func (m *Monitor) Run(ctx context.Context, events <-chan domain.Event, handler EventHandler) error {
	defer handler.Stop()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	m.logger.Info("monitor loop started")

	for {
		timerC := m.arm(timer)

		if events == nil && timerC == nil {
			m.logger.Info("monitor loop finished")
			return nil
		}

		select {
		case <-ctx.Done():
			m.logger.Info("monitor loop stopping")
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				m.logger.Debug("event source closed", zap.Int("pending_tasks", m.queue.Len()))
				if !m.config.DrainOnEOF {
					return nil
				}
				events = nil
				continue
			}
			handler.HandleEvent(ev)

		case <-timerC:
			m.runDue()
		}
	}
}

// arm points timer at the earliest pending task and returns its channel,
// or nil if nothing is pending.
func (m *Monitor) arm(timer *time.Timer) <-chan time.Time {
	due, ok := m.queue.NextDue()
	if !ok {
		timer.Stop()
		return nil
	}
	d := time.Until(due)
	if d < 0 {
		d = 0
	}
	timer.Reset(d)
	return timer.C
}

func (m *Monitor) runDue() {
	now := time.Now()
	for {
		t := m.queue.PopDue(now)
		if t == nil {
			return
		}
		t.Run()
	}
}

// Ensure Monitor implements domain.Scheduler.
var _ domain.Scheduler = (*Monitor)(nil)
