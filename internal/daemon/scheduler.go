package daemon

import (
	"log/slog"
	"time"

	"github.com/1broseidon/bmpanel/internal/panel"
)

// Painter draws panel elements. *render.Renderer implements it.
type Painter interface {
	Panel(p *panel.Panel, now time.Time)
	Switcher(p *panel.Panel)
	Taskbar(p *panel.Panel)
	Clock(p *panel.Panel, now time.Time)
	Present() error
}

// Scheduler turns the scope accumulated over a batch of events into one
// relayout and repaint.
type Scheduler struct {
	panel   *panel.Panel
	painter Painter
	now     func() time.Time
	logger  *slog.Logger
}

// NewScheduler creates a scheduler painting p with painter.
func NewScheduler(p *panel.Panel, painter Painter, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		panel:   p,
		painter: painter,
		now:     time.Now,
		logger:  logger,
	}
}

// Flush applies scope. ScopePanel relayouts and repaints everything.
// Otherwise a layout pass runs first when asked for, and the switcher and
// taskbar are repainted on their own. A layout pass that moved any element
// escalates to a full repaint.
func (s *Scheduler) Flush(scope panel.Scope) {
	if scope == panel.ScopeNone {
		return
	}
	s.logger.Debug("redraw", "scope", scope)

	if scope&panel.ScopePanel != 0 {
		s.panel.Relayout()
		s.full()
		return
	}
	if scope&panel.ScopeLayout != 0 && s.panel.Relayout() {
		s.logger.Debug("element geometry changed, repainting panel")
		s.full()
		return
	}
	if scope&panel.ScopeSwitcher != 0 {
		s.painter.Switcher(s.panel)
	}
	if scope&panel.ScopeTaskbar != 0 {
		s.painter.Taskbar(s.panel)
	}
	s.present()
}

// Tick repaints the clock.
func (s *Scheduler) Tick() {
	s.painter.Clock(s.panel, s.now())
	s.present()
}

func (s *Scheduler) full() {
	s.painter.Panel(s.panel, s.now())
	s.present()
}

func (s *Scheduler) present() {
	if err := s.painter.Present(); err != nil {
		s.logger.Warn("failed to present panel", "error", err)
	}
}
