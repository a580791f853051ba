package usecase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// OverlayPresenter owns the single warning overlay surface.
// All methods must be called from the scheduler's execution context.
type OverlayPresenter struct {
	surface   domain.RenderingSurface
	scheduler domain.Scheduler
	hideDelay time.Duration
	message   string
	logger    *zap.Logger

	handle   domain.SurfaceHandle
	attached bool
	visible  bool
	hideTask domain.Cancelable
}

// NewOverlayPresenter creates a presenter. Nothing is attached until first use.
func NewOverlayPresenter(
	surface domain.RenderingSurface,
	scheduler domain.Scheduler,
	hideDelay time.Duration,
	message string,
	logger *zap.Logger,
) *OverlayPresenter {
	return &OverlayPresenter{
		surface:   surface,
		scheduler: scheduler,
		hideDelay: hideDelay,
		message:   message,
		logger:    logger,
	}
}

// EnsureCreated attaches the overlay surface once.
// A refused attach leaves the overlay absent; the next call tries again.
func (p *OverlayPresenter) EnsureCreated() error {
	if p.attached {
		return nil
	}

	h, err := p.surface.Attach(domain.OverlaySurfaceSpec)
	if err != nil {
		p.logger.Warn("overlay attach failed", zap.Error(err))
		return fmt.Errorf("attach overlay: %w", err)
	}

	p.handle = h
	p.attached = true
	p.logger.Debug("overlay attached", zap.Uint64("handle", uint64(h)))
	return nil
}

// UpdateText sets the countdown message for the given remaining attempts.
func (p *OverlayPresenter) UpdateText(remaining int) {
	if !p.attached {
		return
	}
	text := FormatCountdown(p.message, remaining)
	if err := p.surface.SetText(p.handle, text); err != nil {
		p.logger.Warn("overlay text update failed", zap.Error(err))
		return
	}
	p.logger.Debug("overlay countdown updated", zap.Int("remaining", remaining))
}

// Show makes the overlay visible and (re)arms the auto-hide timer.
// The latest call wins: a pending hide from an earlier call is canceled.
func (p *OverlayPresenter) Show() {
	if p.hideTask != nil {
		p.hideTask.Cancel()
		p.hideTask = nil
	}
	if !p.attached {
		return
	}

	if err := p.surface.SetVisible(p.handle, true); err != nil {
		p.logger.Warn("overlay show failed", zap.Error(err))
	} else {
		p.visible = true
	}

	p.hideTask = p.scheduler.ScheduleOnce(p.hideDelay, p.Hide)
}

// Hide makes the overlay invisible.
func (p *OverlayPresenter) Hide() {
	p.hideTask = nil
	if !p.attached || !p.visible {
		return
	}
	if err := p.surface.SetVisible(p.handle, false); err != nil {
		p.logger.Warn("overlay hide failed", zap.Error(err))
		return
	}
	p.visible = false
	p.logger.Debug("overlay hidden after delay")
}

// Teardown detaches the overlay. Safe to call repeatedly or before creation.
func (p *OverlayPresenter) Teardown() {
	if p.hideTask != nil {
		p.hideTask.Cancel()
		p.hideTask = nil
	}
	if !p.attached {
		return
	}

	if err := p.surface.Detach(p.handle); err != nil {
		p.logger.Debug("overlay detach ignored", zap.Error(err))
	} else {
		p.logger.Debug("overlay detached")
	}
	p.attached = false
	p.visible = false
}

// Visible reports whether the overlay is currently shown.
func (p *OverlayPresenter) Visible() bool {
	return p.visible
}

// Attached reports whether a surface is held.
func (p *OverlayPresenter) Attached() bool {
	return p.attached
}

// FormatCountdown renders the overlay message.
func FormatCountdown(message string, remaining int) string {
	return fmt.Sprintf("%s (%d)", message, remaining)
}
