package domain

import "time"

// Clock reports the current instant of the execution context.
type Clock interface {
	Now() time.Time
}

// Cancelable is a handle to a pending scheduled task.
type Cancelable interface {
	// Cancel prevents the task from running.
	// Returns false if it already ran or was already canceled.
	Cancel() bool
}

// Scheduler runs one-shot tasks on the same execution context that processes events.
// Tasks fire no earlier than their delay, in (due time, scheduling order) order.
// Implementations: daemon.Monitor (real loop), infra.VirtualScheduler (tests, replay).
type Scheduler interface {
	Clock

	// ScheduleOnce enqueues task to run after delay.
	ScheduleOnce(delay time.Duration, task func()) Cancelable
}

// RenderingSurface is the host's window-rendering boundary.
// Implementation: infra.TerminalSurface (lipgloss box on a writer).
type RenderingSurface interface {
	// Attach adds a surface to the display. Fails with ErrAttachRefused.
	Attach(spec SurfaceSpec) (SurfaceHandle, error)

	// Detach removes the surface. Fails with ErrSurfaceDetached if already gone.
	Detach(h SurfaceHandle) error

	// SetVisible shows or hides the surface.
	SetVisible(h SurfaceHandle, visible bool) error

	// SetText replaces the message rendered on the surface.
	SetText(h SurfaceHandle, text string) error
}

// ActionDispatcher forwards global actions to the host platform.
// Fire-and-forget: there is no failure channel.
type ActionDispatcher interface {
	RequestAction(req ActionRequest)
}

// TargetStore is the static allow-list of monitored targets.
type TargetStore interface {
	// Contains reports whether id is a monitored target.
	Contains(id string) bool

	// List returns all monitored target IDs.
	List() []string
}

// ProcessManager handles OS process operations.
// Implementation: uses gopsutil for cross-platform support.
type ProcessManager interface {
	// FindByName returns PIDs of processes matching the pattern.
	FindByName(pattern string) ([]int, error)

	// Kill terminates a process by PID (SIGKILL).
	Kill(pid int) error
}
