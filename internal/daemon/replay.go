package daemon

import (
	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/infra"
)

// Replay feeds recorded events through handler on a virtual clock.
// Events carrying a timestamp move the clock to it first, running any task
// that falls due in between. Tasks still pending after the last event are
// run before handler.Stop.
func Replay(events []domain.Event, sched *infra.VirtualScheduler, handler EventHandler) {
	for _, ev := range events {
		if !ev.At.IsZero() {
			sched.AdvanceTo(ev.At)
		}
		handler.HandleEvent(ev)
	}
	sched.Flush()
	handler.Stop()
}
