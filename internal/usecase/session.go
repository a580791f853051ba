package usecase

import (
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// Session is one monitoring service lifetime: it owns the classifier, the
// window tracker, the escalation machine and the overlay.
//
// Session is not safe for concurrent use. HandleEvent, Stop and every task
// scheduled through the injected Scheduler must run on one execution context.
type Session struct {
	config     Config
	clock      domain.Clock
	classifier *Classifier
	tracker    *WindowTracker
	escalation *Escalation
	presenter  *OverlayPresenter
	trigger    *EnforcementTrigger
	logger     *zap.Logger

	bursts       int
	enforcements int
	stopped      bool
}

// NewSession wires a monitoring session.
func NewSession(
	config Config,
	targets domain.TargetStore,
	scheduler domain.Scheduler,
	surface domain.RenderingSurface,
	dispatcher domain.ActionDispatcher,
	logger *zap.Logger,
) *Session {
	presenter := NewOverlayPresenter(surface, scheduler, config.OverlayHideDelay, config.ExitMessage, logger)
	trigger := NewEnforcementTrigger(scheduler, dispatcher, logger)

	return &Session{
		config:     config,
		clock:      scheduler,
		classifier: NewClassifier(targets, config.MinScrollDistance),
		tracker:    NewWindowTracker(config.WindowDuration, config.BurstThreshold),
		escalation: NewEscalation(config.MaxViolations, config.EnforcementDelay, presenter, trigger, logger),
		presenter:  presenter,
		trigger:    trigger,
		logger:     logger,
	}
}

// HandleEvent folds one platform event into the session. It never blocks.
func (s *Session) HandleEvent(ev domain.Event) {
	if s.stopped {
		return
	}

	switch s.classifier.Classify(ev) {
	case Ignored:
		return
	case TargetUpdated:
		s.logger.Debug("current target",
			zap.String("target", ev.TargetID),
			zap.Stringer("type", ev.Type))
		return
	case MinorScroll:
		return
	}

	now := s.clock.Now()
	burst := s.tracker.Record(now)
	s.logger.Debug("scroll detected",
		zap.String("target", ev.TargetID),
		zap.Int("count", s.tracker.State().Count),
		zap.Int("offset", ev.ScrollOffset))
	if !burst {
		return
	}

	s.bursts++
	verdict := s.escalation.OnBurst(ev.TargetID)
	if verdict.Enforced {
		s.enforcements++
		s.tracker.Reset()
		s.classifier.ResetBaseline()
	}
}

// Stop tears the session down after the host service is interrupted or destroyed.
// Window and violation state are discarded; pending actions are dropped.
func (s *Session) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true

	s.presenter.Teardown()
	s.trigger.CancelAll()
	s.tracker.Reset()
	s.escalation.Reset()
	s.logger.Info("monitor session stopped",
		zap.Int("bursts", s.bursts),
		zap.Int("enforcements", s.enforcements))
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() domain.SessionState {
	return domain.SessionState{
		CurrentTarget:  s.classifier.CurrentTarget(),
		LastOffset:     s.classifier.LastOffset(),
		Window:         s.tracker.State(),
		Violations:     s.escalation.State(),
		Phase:          s.escalation.Phase(),
		OverlayVisible: s.presenter.Visible(),
		TotalBursts:    s.bursts,
		Enforcements:   s.enforcements,
	}
}

// PendingActions returns the number of enforcement actions not yet fired.
func (s *Session) PendingActions() int {
	return s.trigger.Pending()
}
