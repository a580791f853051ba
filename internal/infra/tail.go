package infra

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// TailSource follows a JSONL event log as the platform bridge appends to it.
type TailSource struct {
	path   string
	epoch  time.Time
	logger *zap.Logger
}

// NewTailSource creates a source for path.
func NewTailSource(path string, epoch time.Time, logger *zap.Logger) *TailSource {
	return &TailSource{
		path:   path,
		epoch:  epoch,
		logger: logger,
	}
}

// Run emits existing lines, then new ones on every write, until ctx is done
// or the file is removed or renamed.
func (s *TailSource) Run(ctx context.Context, out chan<- domain.Event) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.path); err != nil {
		return fmt.Errorf("watch event log: %w", err)
	}

	t := &tailReader{
		reader: bufio.NewReader(f),
		dec:    &lineDecoder{epoch: s.epoch, logger: s.logger},
	}
	if err := t.drain(ctx, out); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) {
				if err := t.drain(ctx, out); err != nil {
					return err
				}
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				s.logger.Info("event log went away, stopping tail", zap.String("path", s.path))
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Log error but continue running
			s.logger.Warn("event log watch error", zap.Error(err))
		}
	}
}

// tailReader keeps an unterminated trailing line until its newline arrives.
type tailReader struct {
	reader  *bufio.Reader
	dec     *lineDecoder
	partial []byte
}

func (t *tailReader) drain(ctx context.Context, out chan<- domain.Event) error {
	for {
		chunk, err := t.reader.ReadBytes('\n')
		if len(chunk) > 0 {
			if chunk[len(chunk)-1] != '\n' {
				t.partial = append(t.partial, chunk...)
			} else {
				line := append(t.partial, chunk...)
				t.partial = nil
				if ev, ok := t.dec.decode(line); ok {
					select {
					case out <- ev:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read event log: %w", err)
		}
	}
}
