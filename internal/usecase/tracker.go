package usecase

import (
	"time"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// WindowTracker counts significant scrolls inside a decaying window.
// A gap longer than the window since the previous significant scroll
// restarts the count; it is not a strict rolling window.
type WindowTracker struct {
	window    time.Duration
	threshold int
	state     domain.WindowState
}

// NewWindowTracker creates a tracker.
func NewWindowTracker(window time.Duration, threshold int) *WindowTracker {
	return &WindowTracker{
		window:    window,
		threshold: threshold,
	}
}

// Record accounts one significant scroll at now and reports whether it
// completed a burst. The count is back at zero when a burst is reported.
func (w *WindowTracker) Record(now time.Time) bool {
	if w.state.LastScrollAt.IsZero() || now.Sub(w.state.LastScrollAt) > w.window {
		w.state.Count = 0
	}
	if w.state.Count == 0 {
		w.state.WindowStart = now
	}

	w.state.LastScrollAt = now
	w.state.Count++

	if w.state.Count < w.threshold {
		return false
	}

	w.state.Count = 0
	return true
}

// Reset clears the in-window count without forgetting the last scroll time.
func (w *WindowTracker) Reset() {
	w.state.Count = 0
}

// State returns a copy of the window state.
func (w *WindowTracker) State() domain.WindowState {
	return w.state
}
