// Package domain contains core business entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

import "time"

// EventType identifies the kind of raw event pushed by the host platform.
type EventType int

const (
	// EventUnknown is any platform event the monitor does not account for.
	// It still updates the current target.
	EventUnknown EventType = iota
	EventScroll
	EventForegroundChanged
)

func (t EventType) String() string {
	switch t {
	case EventScroll:
		return "scroll"
	case EventForegroundChanged:
		return "foreground"
	default:
		return "unknown"
	}
}

// Event is one raw event as delivered by the platform event source.
type Event struct {
	Type         EventType
	TargetID     string
	ScrollOffset int
	// At is the source timestamp, if the source recorded one.
	// Live monitoring ignores it and uses the loop clock instead.
	At time.Time
}

// ScrollSample is a single scroll-offset reading for the active target.
type ScrollSample struct {
	Timestamp time.Time
	Position  int
}

// WindowState is the sliding-window accounting for significant scrolls.
type WindowState struct {
	WindowStart  time.Time // When the current count started from zero
	LastScrollAt time.Time // Timestamp of the latest significant scroll
	Count        int
}

// ViolationState counts bursts toward the enforcement budget.
type ViolationState struct {
	Count int
}

// Phase is the escalation state machine phase.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseWarned    Phase = "warned"
	PhaseEnforcing Phase = "enforcing" // Transient, only reported by a Verdict
)

// Verdict captures what the escalation machine decided for a single burst.
type Verdict struct {
	Phase      Phase
	Violations int // Violation count after the transition (0 after enforcement)
	Remaining  int // Attempts left as shown to the user
	Enforced   bool
}

// SurfaceSpec describes the overlay surface requested from the renderer.
type SurfaceSpec struct {
	FullScreen  bool
	Centered    bool
	Focusable   bool
	Touchable   bool
	Translucent bool
}

// OverlaySurfaceSpec is the only surface the monitor ever requests:
// full screen, centered, translucent and never intercepting input.
var OverlaySurfaceSpec = SurfaceSpec{
	FullScreen:  true,
	Centered:    true,
	Focusable:   false,
	Touchable:   false,
	Translucent: true,
}

// SurfaceHandle identifies an attached surface.
type SurfaceHandle uint64

// GlobalAction is a platform-level navigation action.
type GlobalAction string

const (
	ActionHome GlobalAction = "home"
)

// ActionRequest is a fire-and-forget request to the platform dispatcher.
type ActionRequest struct {
	Action   GlobalAction
	TargetID string // Monitored target that triggered the request
	IssuedAt time.Time
}

// SessionState is a read-only snapshot of a monitor session.
type SessionState struct {
	CurrentTarget  string
	LastOffset     int
	Window         WindowState
	Violations     ViolationState
	Phase          Phase
	OverlayVisible bool
	TotalBursts    int
	Enforcements   int
}
