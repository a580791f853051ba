package usecase

import (
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// Notifier is the overlay side of an escalation.
type Notifier interface {
	EnsureCreated() error
	UpdateText(remaining int)
	Show()
}

// HomeTrigger is the enforcement side of an escalation.
type HomeTrigger interface {
	ScheduleReturnHome(delay time.Duration, target string) domain.Cancelable
}

// Escalation turns bursts into violations and decides between a warning
// and the enforcement action.
//
//	Idle/Warned(n) --burst--> Warned(n+1)       show remaining = max-(n+1)
//	Warned(n)      --n+1 == max--> Enforcing    show, schedule HOME, reset to Idle
type Escalation struct {
	maxViolations    int
	enforcementDelay time.Duration
	notifier         Notifier
	trigger          HomeTrigger
	logger           *zap.Logger

	state domain.ViolationState
}

// NewEscalation creates a state machine in Idle.
func NewEscalation(
	maxViolations int,
	enforcementDelay time.Duration,
	notifier Notifier,
	trigger HomeTrigger,
	logger *zap.Logger,
) *Escalation {
	return &Escalation{
		maxViolations:    maxViolations,
		enforcementDelay: enforcementDelay,
		notifier:         notifier,
		trigger:          trigger,
		logger:           logger,
	}
}

// OnBurst records one violation for target.
// The overlay is best-effort; enforcement is scheduled regardless of it.
func (e *Escalation) OnBurst(target string) domain.Verdict {
	e.state.Count++
	remaining := e.maxViolations - e.state.Count

	e.logger.Info("rapid scrolling detected",
		zap.String("target", target),
		zap.Int("violations", e.state.Count),
		zap.Int("remaining", remaining))

	if err := e.notifier.EnsureCreated(); err != nil {
		e.logger.Warn("warning overlay unavailable", zap.Error(err))
	}
	e.notifier.UpdateText(remaining)
	e.notifier.Show()

	if e.state.Count < e.maxViolations {
		return domain.Verdict{
			Phase:      domain.PhaseWarned,
			Violations: e.state.Count,
			Remaining:  remaining,
		}
	}

	e.logger.Info("maximum violations reached",
		zap.String("target", target),
		zap.Int("violations", e.state.Count))
	e.trigger.ScheduleReturnHome(e.enforcementDelay, target)
	e.state.Count = 0

	return domain.Verdict{
		Phase:      domain.PhaseEnforcing,
		Violations: 0,
		Remaining:  remaining,
		Enforced:   true,
	}
}

// Phase reports the durable phase.
func (e *Escalation) Phase() domain.Phase {
	if e.state.Count == 0 {
		return domain.PhaseIdle
	}
	return domain.PhaseWarned
}

// State returns a copy of the violation state.
func (e *Escalation) State() domain.ViolationState {
	return e.state
}

// Reset returns the machine to Idle.
func (e *Escalation) Reset() {
	e.state.Count = 0
}
