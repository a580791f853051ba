package infra

import (
	"sync"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// LogDispatcher records and logs action requests without acting on them.
type LogDispatcher struct {
	mu       sync.Mutex
	requests []domain.ActionRequest
	logger   *zap.Logger
}

// NewLogDispatcher creates a dry-run dispatcher.
func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) RequestAction(req domain.ActionRequest) {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()

	d.logger.Info("global action requested (dry run)",
		zap.String("action", string(req.Action)),
		zap.String("target", req.TargetID))
}

// Requests returns a copy of every recorded request.
func (d *LogDispatcher) Requests() []domain.ActionRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.ActionRequest, len(d.requests))
	copy(out, d.requests)
	return out
}

// PatternSource resolves a monitored target to its desktop process patterns.
// Implementation: policy.Registry.
type PatternSource interface {
	Patterns(id string) ([]string, error)
}

// ProcessDispatcher forces the user out of a monitored target on a desktop
// host by terminating the target's processes. Requests run in the
// background so the event loop never waits on them.
type ProcessDispatcher struct {
	processManager domain.ProcessManager
	patterns       PatternSource
	logger         *zap.Logger
	wg             sync.WaitGroup
}

// NewProcessDispatcher creates a dispatcher backed by pm.
func NewProcessDispatcher(pm domain.ProcessManager, patterns PatternSource, logger *zap.Logger) *ProcessDispatcher {
	return &ProcessDispatcher{
		processManager: pm,
		patterns:       patterns,
		logger:         logger,
	}
}

func (d *ProcessDispatcher) RequestAction(req domain.ActionRequest) {
	if req.Action != domain.ActionHome {
		d.logger.Debug("unsupported global action", zap.String("action", string(req.Action)))
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.leaveTarget(req.TargetID)
	}()
}

// Wait blocks until every in-flight request has finished.
func (d *ProcessDispatcher) Wait() {
	d.wg.Wait()
}

func (d *ProcessDispatcher) leaveTarget(target string) {
	patterns, err := d.patterns.Patterns(target)
	if err != nil {
		d.logger.Warn("no process patterns for target",
			zap.String("target", target),
			zap.Error(err))
		return
	}

	for _, pattern := range patterns {
		pids, err := d.processManager.FindByName(pattern)
		if err != nil {
			d.logger.Warn("failed to find processes",
				zap.String("pattern", pattern),
				zap.Error(err))
			continue
		}

		for _, pid := range pids {
			if err := d.processManager.Kill(pid); err != nil {
				d.logger.Warn("failed to kill process",
					zap.Int("pid", pid),
					zap.Error(err))
				continue
			}
			d.logger.Info("killed process",
				zap.String("target", target),
				zap.Int("pid", pid),
				zap.String("pattern", pattern))
		}
	}
}

// Ensure dispatchers implement domain.ActionDispatcher.
var (
	_ domain.ActionDispatcher = (*LogDispatcher)(nil)
	_ domain.ActionDispatcher = (*ProcessDispatcher)(nil)
)
