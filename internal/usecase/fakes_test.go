package usecase

import (
	"time"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// mockSurface implements domain.RenderingSurface for testing
type mockSurface struct {
	clock     domain.Clock
	attachErr error
	detachErr error

	attached bool
	visible  bool
	specs    []domain.SurfaceSpec
	attaches int
	detaches int
	texts    []string
	shows    []time.Time
	hides    []time.Time
}

func (m *mockSurface) Attach(spec domain.SurfaceSpec) (domain.SurfaceHandle, error) {
	m.specs = append(m.specs, spec)
	if m.attachErr != nil {
		return 0, m.attachErr
	}
	m.attaches++
	m.attached = true
	return 7, nil
}

func (m *mockSurface) Detach(h domain.SurfaceHandle) error {
	m.detaches++
	if m.detachErr != nil {
		return m.detachErr
	}
	if !m.attached {
		return domain.ErrSurfaceDetached
	}
	m.attached = false
	return nil
}

func (m *mockSurface) SetVisible(h domain.SurfaceHandle, visible bool) error {
	m.visible = visible
	if visible {
		m.shows = append(m.shows, m.clock.Now())
	} else {
		m.hides = append(m.hides, m.clock.Now())
	}
	return nil
}

func (m *mockSurface) SetText(h domain.SurfaceHandle, text string) error {
	m.texts = append(m.texts, text)
	return nil
}

// mockDispatcher implements domain.ActionDispatcher for testing
type mockDispatcher struct {
	requests []domain.ActionRequest
}

func (m *mockDispatcher) RequestAction(req domain.ActionRequest) {
	m.requests = append(m.requests, req)
}

// mockTargets implements domain.TargetStore for testing
type mockTargets map[string]bool

func (m mockTargets) Contains(id string) bool {
	return m[id]
}

func (m mockTargets) List() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids
}

// mockNotifier implements Notifier for testing
type mockNotifier struct {
	ensureErr  error
	ensured    int
	remainings []int
	shows      int
}

func (m *mockNotifier) EnsureCreated() error {
	m.ensured++
	return m.ensureErr
}

func (m *mockNotifier) UpdateText(remaining int) {
	m.remainings = append(m.remainings, remaining)
}

func (m *mockNotifier) Show() {
	m.shows++
}

// mockTrigger implements HomeTrigger for testing
type mockTrigger struct {
	delays  []time.Duration
	targets []string
}

func (m *mockTrigger) ScheduleReturnHome(delay time.Duration, target string) domain.Cancelable {
	m.delays = append(m.delays, delay)
	m.targets = append(m.targets, target)
	return noopCancel{}
}

type noopCancel struct{}

func (noopCancel) Cancel() bool { return false }

// testEpoch is the virtual clock origin used across tests.
var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func scrollEvent(target string, offset int) domain.Event {
	return domain.Event{Type: domain.EventScroll, TargetID: target, ScrollOffset: offset}
}
