// Package fixtures provides test helpers for integration tests.
package fixtures

import (
	"bytes"
	"os"
	"time"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/infra"
)

// ScrollStream builds a recorded platform event log.
type ScrollStream struct {
	Epoch  time.Time
	now    time.Time
	offset int
	events []domain.Event
}

// NewScrollStream creates an empty stream starting at epoch.
func NewScrollStream(epoch time.Time) *ScrollStream {
	return &ScrollStream{Epoch: epoch, now: epoch}
}

// Foreground records the user switching to target.
func (s *ScrollStream) Foreground(target string) *ScrollStream {
	s.offset = 0
	s.events = append(s.events, domain.Event{
		Type:     domain.EventForegroundChanged,
		TargetID: target,
		At:       s.now,
	})
	return s
}

// Scrolls records n scrolls of step pixels each, spacing apart.
func (s *ScrollStream) Scrolls(target string, n, step int, spacing time.Duration) *ScrollStream {
	for i := 0; i < n; i++ {
		s.now = s.now.Add(spacing)
		s.offset += step
		s.events = append(s.events, domain.Event{
			Type:         domain.EventScroll,
			TargetID:     target,
			ScrollOffset: s.offset,
			At:           s.now,
		})
	}
	return s
}

// Pause moves the stream clock forward without events.
func (s *ScrollStream) Pause(d time.Duration) *ScrollStream {
	s.now = s.now.Add(d)
	return s
}

// Events returns the recorded events.
func (s *ScrollStream) Events() []domain.Event {
	return s.events
}

// JSONL renders the stream in the event log wire format.
func (s *ScrollStream) JSONL() ([]byte, error) {
	var buf bytes.Buffer
	for _, ev := range s.events {
		line, err := infra.EncodeEvent(ev, s.Epoch)
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// WriteFile writes the stream to path.
func (s *ScrollStream) WriteFile(path string) error {
	data, err := s.JSONL()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
