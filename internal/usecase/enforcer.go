package usecase

import (
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// EnforcementTrigger issues the delayed return-to-home action.
type EnforcementTrigger struct {
	scheduler  domain.Scheduler
	dispatcher domain.ActionDispatcher
	logger     *zap.Logger

	pending map[uint64]domain.Cancelable
	nextID  uint64
}

// NewEnforcementTrigger creates a new trigger.
func NewEnforcementTrigger(
	scheduler domain.Scheduler,
	dispatcher domain.ActionDispatcher,
	logger *zap.Logger,
) *EnforcementTrigger {
	return &EnforcementTrigger{
		scheduler:  scheduler,
		dispatcher: dispatcher,
		logger:     logger,
		pending:    make(map[uint64]domain.Cancelable),
	}
}

// ScheduleReturnHome enqueues a one-shot HOME request for target after delay.
// No result is awaited and nothing is retried.
func (t *EnforcementTrigger) ScheduleReturnHome(delay time.Duration, target string) domain.Cancelable {
	t.nextID++
	id := t.nextID

	task := t.scheduler.ScheduleOnce(delay, func() {
		delete(t.pending, id)
		req := domain.ActionRequest{
			Action:   domain.ActionHome,
			TargetID: target,
			IssuedAt: t.scheduler.Now(),
		}
		t.logger.Info("sending user home",
			zap.String("target", target))
		t.dispatcher.RequestAction(req)
	})
	t.pending[id] = task

	t.logger.Info("return home scheduled",
		zap.String("target", target),
		zap.Duration("delay", delay))
	return task
}

// Pending returns the number of scheduled actions that have not fired.
func (t *EnforcementTrigger) Pending() int {
	return len(t.pending)
}

// CancelAll drops every pending action. Used when the host session ends.
func (t *EnforcementTrigger) CancelAll() {
	for id, task := range t.pending {
		task.Cancel()
		delete(t.pending, id)
	}
}
