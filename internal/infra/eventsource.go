package infra

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// maxLineSize bounds a single JSONL event line.
const maxLineSize = 64 * 1024

// wireEvent is the JSON-lines representation of a platform event.
type wireEvent struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Offset int    `json:"offset"`
	AtMs   *int64 `json:"at_ms,omitempty"`
}

// ParseEventType maps a wire type name to a domain event type.
// Unknown names are accepted as non-scroll events.
func ParseEventType(name string) domain.EventType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "scroll", "view_scrolled", "type_view_scrolled":
		return domain.EventScroll
	case "foreground", "window_state_changed", "type_window_state_changed":
		return domain.EventForegroundChanged
	default:
		return domain.EventUnknown
	}
}

// DecodeEvent parses one JSONL line. at_ms is relative to epoch.
func DecodeEvent(line []byte, epoch time.Time) (domain.Event, error) {
	var w wireEvent
	if err := sonic.Unmarshal(line, &w); err != nil {
		return domain.Event{}, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}
	if w.Type == "" {
		return domain.Event{}, fmt.Errorf("%w: missing type", domain.ErrMalformedEvent)
	}

	ev := domain.Event{
		Type:         ParseEventType(w.Type),
		TargetID:     strings.TrimSpace(w.Target),
		ScrollOffset: w.Offset,
	}
	if w.AtMs != nil {
		ev.At = epoch.Add(time.Duration(*w.AtMs) * time.Millisecond)
	}
	return ev, nil
}

// EncodeEvent renders ev as one JSONL line (without newline).
func EncodeEvent(ev domain.Event, epoch time.Time) ([]byte, error) {
	w := wireEvent{
		Type:   ev.Type.String(),
		Target: ev.TargetID,
		Offset: ev.ScrollOffset,
	}
	if !ev.At.IsZero() {
		ms := ev.At.Sub(epoch).Milliseconds()
		w.AtMs = &ms
	}
	return sonic.Marshal(&w)
}

// lineDecoder turns raw lines into events, skipping blanks and logging bad lines.
type lineDecoder struct {
	epoch  time.Time
	logger *zap.Logger
	lineNo int
}

func (d *lineDecoder) decode(line []byte) (domain.Event, bool) {
	d.lineNo++
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return domain.Event{}, false
	}
	ev, err := DecodeEvent(line, d.epoch)
	if err != nil {
		d.logger.Warn("skipping event line",
			zap.Int("line", d.lineNo),
			zap.Error(err))
		return domain.Event{}, false
	}
	return ev, true
}

// ReadEvents decodes JSONL events from r into out until EOF or ctx is done.
// Malformed lines are logged and skipped.
func ReadEvents(ctx context.Context, r io.Reader, epoch time.Time, out chan<- domain.Event, logger *zap.Logger) error {
	dec := &lineDecoder{epoch: epoch, logger: logger}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for scanner.Scan() {
		ev, ok := dec.decode(scanner.Bytes())
		if !ok {
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	return nil
}

// LoadEvents decodes every event in r.
func LoadEvents(r io.Reader, epoch time.Time, logger *zap.Logger) ([]domain.Event, error) {
	dec := &lineDecoder{epoch: epoch, logger: logger}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var events []domain.Event
	for scanner.Scan() {
		if ev, ok := dec.decode(scanner.Bytes()); ok {
			events = append(events, ev)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}
