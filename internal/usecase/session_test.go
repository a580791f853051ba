package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/infra"
)

type sessionFixture struct {
	session    *Session
	sched      *infra.VirtualScheduler
	surface    *mockSurface
	dispatcher *mockDispatcher
}

func newSessionFixture() *sessionFixture {
	sched := infra.NewVirtualScheduler(testEpoch)
	surface := &mockSurface{clock: sched}
	dispatcher := &mockDispatcher{}
	cfg := DefaultConfig()
	cfg.ExitMessage = "Stop"

	return &sessionFixture{
		session:    NewSession(cfg, mockTargets{"A": true, "B": true}, sched, surface, dispatcher, zap.NewNop()),
		sched:      sched,
		surface:    surface,
		dispatcher: dispatcher,
	}
}

// scrollEvery feeds n significant scrolls for target, spacing apart.
func (f *sessionFixture) scrollEvery(target string, n int, spacing time.Duration) {
	for i := 1; i <= n; i++ {
		f.sched.Advance(spacing)
		f.session.HandleEvent(scrollEvent(target, i*100))
	}
}

// TestHandleEvent_EndToEnd verifies 12 quick scrolls produce 4 bursts and one enforcement
func TestHandleEvent_EndToEnd(t *testing.T) {
	f := newSessionFixture()

	f.scrollEvery("A", 12, 100*time.Millisecond)

	state := f.session.Snapshot()
	assert.Equal(t, 4, state.TotalBursts)
	assert.Equal(t, 1, state.Enforcements)
	assert.Zero(t, state.Violations.Count, "violations reset as soon as enforcement is scheduled")
	assert.Equal(t, domain.PhaseIdle, state.Phase)
	assert.Zero(t, state.Window.Count)
	assert.Zero(t, state.LastOffset, "offset baseline re-armed after enforcement")

	assert.Equal(t, []string{"Stop (3)", "Stop (2)", "Stop (1)", "Stop (0)"}, f.surface.texts)
	assert.Len(t, f.surface.shows, 4)
	assert.Equal(t, 1, f.surface.attaches)

	// HOME fires 2000ms after the 4th burst (12th event at +1200ms)
	assert.Equal(t, 1, f.session.PendingActions())
	f.sched.Advance(1999 * time.Millisecond)
	assert.Empty(t, f.dispatcher.requests)
	f.sched.Advance(time.Millisecond)
	require.Len(t, f.dispatcher.requests, 1)
	assert.Equal(t, domain.ActionHome, f.dispatcher.requests[0].Action)
	assert.Equal(t, "A", f.dispatcher.requests[0].TargetID)
	assert.Equal(t, testEpoch.Add(3200*time.Millisecond), f.dispatcher.requests[0].IssuedAt)

	// One auto-hide, after the last show
	require.Len(t, f.surface.hides, 1)
	assert.Equal(t, testEpoch.Add(3200*time.Millisecond), f.surface.hides[0])
}

// TestHandleEvent_UnmonitoredTargetsAreInert verifies no state or side effect for foreign targets
func TestHandleEvent_UnmonitoredTargetsAreInert(t *testing.T) {
	f := newSessionFixture()
	before := f.session.Snapshot()

	for i := 1; i <= 30; i++ {
		f.sched.Advance(10 * time.Millisecond)
		f.session.HandleEvent(scrollEvent("com.example.reader", i*1000))
		f.session.HandleEvent(domain.Event{Type: domain.EventForegroundChanged, TargetID: "com.example.reader"})
	}
	f.sched.Advance(time.Minute)

	assert.Equal(t, before, f.session.Snapshot())
	assert.Empty(t, f.surface.specs)
	assert.Empty(t, f.dispatcher.requests)
}

// TestHandleEvent_PauseRestartsWindow verifies a stale window does not complete a burst
func TestHandleEvent_PauseRestartsWindow(t *testing.T) {
	f := newSessionFixture()

	f.session.HandleEvent(scrollEvent("A", 100))
	f.sched.Advance(100 * time.Millisecond)
	f.session.HandleEvent(scrollEvent("A", 200))
	f.sched.Advance(5001 * time.Millisecond)
	f.session.HandleEvent(scrollEvent("A", 300))

	state := f.session.Snapshot()
	assert.Zero(t, state.TotalBursts)
	assert.Equal(t, 1, state.Window.Count)
	assert.Empty(t, f.surface.shows)
}

// TestHandleEvent_MinorScrollsDoNotCount verifies small movements are not accounted
func TestHandleEvent_MinorScrollsDoNotCount(t *testing.T) {
	f := newSessionFixture()

	for i := 1; i <= 10; i++ {
		f.sched.Advance(50 * time.Millisecond)
		f.session.HandleEvent(scrollEvent("A", i*10))
	}

	state := f.session.Snapshot()
	assert.Zero(t, state.Window.Count)
	assert.Equal(t, 100, state.LastOffset)
}

// TestHandleEvent_ForegroundChange verifies the current target follows monitored apps
func TestHandleEvent_ForegroundChange(t *testing.T) {
	f := newSessionFixture()

	f.session.HandleEvent(domain.Event{Type: domain.EventForegroundChanged, TargetID: "B"})

	state := f.session.Snapshot()
	assert.Equal(t, "B", state.CurrentTarget)
	assert.Zero(t, state.Window.Count)
}

// TestHandleEvent_OverlayRefused verifies enforcement survives a missing overlay
func TestHandleEvent_OverlayRefused(t *testing.T) {
	f := newSessionFixture()
	f.surface.attachErr = domain.ErrAttachRefused

	f.scrollEvery("A", 12, 100*time.Millisecond)
	f.sched.Advance(2 * time.Second)

	assert.Empty(t, f.surface.shows)
	assert.Len(t, f.dispatcher.requests, 1)
	assert.Equal(t, 1, f.session.Snapshot().Enforcements)
}

// TestHandleEvent_WarningsBeforeBudget verifies the overlay state between bursts
func TestHandleEvent_WarningsBeforeBudget(t *testing.T) {
	f := newSessionFixture()

	f.scrollEvery("A", 6, 100*time.Millisecond)

	state := f.session.Snapshot()
	assert.Equal(t, domain.PhaseWarned, state.Phase)
	assert.Equal(t, 2, state.Violations.Count)
	assert.True(t, state.OverlayVisible)

	f.sched.Advance(2 * time.Second)
	assert.False(t, f.session.Snapshot().OverlayVisible)
	assert.Empty(t, f.dispatcher.requests)
}

// TestStop_TearsDown verifies stopping detaches the overlay and drops pending actions
func TestStop_TearsDown(t *testing.T) {
	f := newSessionFixture()
	f.scrollEvery("A", 12, 100*time.Millisecond)

	f.session.Stop()
	f.session.Stop()

	assert.Equal(t, 1, f.surface.detaches)
	assert.Zero(t, f.session.PendingActions())

	f.sched.Advance(time.Minute)
	assert.Empty(t, f.dispatcher.requests)

	// Events after stop are ignored
	f.scrollEvery("A", 3, 100*time.Millisecond)
	assert.Equal(t, 4, f.session.Snapshot().TotalBursts)
}

// TestStop_WithoutOverlay verifies stopping a session that never showed anything
func TestStop_WithoutOverlay(t *testing.T) {
	f := newSessionFixture()

	assert.NotPanics(t, f.session.Stop)
	assert.Zero(t, f.surface.detaches)
}
