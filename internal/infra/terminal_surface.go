package infra

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// DefaultSurfaceWidth is the column width an overlay is centered in.
const DefaultSurfaceWidth = 80

// TerminalSurface renders the overlay as a boxed banner on a writer.
// It holds at most one attached surface; a second Attach is refused.
// Output is passive: it never reads input and never takes focus.
type TerminalSurface struct {
	mu       sync.Mutex
	out      io.Writer
	width    int
	style    lipgloss.Style
	renderer *lipgloss.Renderer
	logger   *zap.Logger

	nextHandle domain.SurfaceHandle
	attached   domain.SurfaceHandle // 0 means none
	text       string
	visible    bool
	renders    int
}

// NewTerminalSurface creates a surface drawing on out.
func NewTerminalSurface(out io.Writer, width int, logger *zap.Logger) *TerminalSurface {
	if width <= 0 {
		width = DefaultSurfaceWidth
	}
	r := lipgloss.NewRenderer(out)
	style := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("203")).
		Foreground(lipgloss.Color("231")).
		Bold(true).
		Padding(1, 4).
		Align(lipgloss.Center)

	return &TerminalSurface{
		out:      out,
		width:    width,
		style:    style,
		renderer: r,
		logger:   logger,
	}
}

// Attach claims the single overlay slot.
func (s *TerminalSurface) Attach(spec domain.SurfaceSpec) (domain.SurfaceHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached != 0 {
		return 0, fmt.Errorf("%w: overlay %d already attached", domain.ErrAttachRefused, s.attached)
	}
	if spec.Focusable || spec.Touchable {
		return 0, fmt.Errorf("%w: terminal overlay cannot take input", domain.ErrAttachRefused)
	}

	s.nextHandle++
	s.attached = s.nextHandle
	s.visible = false
	s.text = ""
	return s.attached, nil
}

// Detach releases the slot.
func (s *TerminalSurface) Detach(h domain.SurfaceHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(h); err != nil {
		return err
	}
	s.attached = 0
	s.visible = false
	return nil
}

// SetVisible draws the banner when the surface goes from hidden to visible.
func (s *TerminalSurface) SetVisible(h domain.SurfaceHandle, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(h); err != nil {
		return err
	}
	if visible && !s.visible {
		s.render()
	} else if !visible && s.visible {
		s.logger.Debug("terminal overlay hidden")
	}
	s.visible = visible
	return nil
}

// SetText stores the banner text, redrawing if currently visible.
func (s *TerminalSurface) SetText(h domain.SurfaceHandle, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(h); err != nil {
		return err
	}
	s.text = text
	if s.visible {
		s.render()
	}
	return nil
}

// Renders returns how many times the banner was drawn.
func (s *TerminalSurface) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

func (s *TerminalSurface) check(h domain.SurfaceHandle) error {
	if h == 0 || h != s.attached {
		return fmt.Errorf("%w: handle %d", domain.ErrSurfaceDetached, h)
	}
	return nil
}

func (s *TerminalSurface) render() {
	box := s.style.Render(s.text)
	banner := s.renderer.PlaceHorizontal(s.width, lipgloss.Center, box)
	if _, err := fmt.Fprintln(s.out, banner); err != nil {
		s.logger.Warn("terminal overlay write failed", zap.Error(err))
		return
	}
	s.renders++
}

// Ensure TerminalSurface implements domain.RenderingSurface.
var _ domain.RenderingSurface = (*TerminalSurface)(nil)
