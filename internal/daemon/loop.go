// Package daemon runs the panel event loop.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/1broseidon/bmpanel/internal/panel"
)

// ErrConnectionLost is returned by Run when the event source closes.
var ErrConnectionLost = errors.New("connection to the display server lost")

// LoopConfig holds configuration for the event loop.
type LoopConfig struct {
	ClockInterval time.Duration
	Logger        *slog.Logger
}

// Loop owns the panel: every event handler, layout pass and repaint runs on
// the goroutine calling Run.
type Loop struct {
	interval  time.Duration
	panel     *panel.Panel
	scheduler *Scheduler
	events    <-chan panel.Event
	logger    *slog.Logger
}

// NewLoop creates a loop feeding events into p and painting with painter.
func NewLoop(cfg LoopConfig, p *panel.Panel, painter Painter, events <-chan panel.Event) *Loop {
	interval := cfg.ClockInterval
	if interval <= 0 {
		interval = time.Second
	}

	return &Loop{
		interval:  interval,
		panel:     p,
		scheduler: NewScheduler(p, painter, cfg.Logger),
		events:    events,
		logger:    cfg.Logger,
	}
}

// Run processes events until ctx is cancelled or the event channel closes.
// Events are handled in batches: everything already queued is drained in
// arrival order and the combined scope is flushed once.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Info("event loop started", "clock_interval", l.interval)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("event loop stopped")
			return nil
		case ev, ok := <-l.events:
			if !ok {
				return ErrConnectionLost
			}
			scope, open := l.drain(ev)
			l.scheduler.Flush(scope)
			if !open {
				return ErrConnectionLost
			}
		case <-ticker.C:
			l.scheduler.Tick()
		}
	}
}

// drain handles first and every event already queued behind it. It reports
// false when the channel was closed meanwhile.
func (l *Loop) drain(first panel.Event) (panel.Scope, bool) {
	scope := l.panel.Handle(first)
	n := 1
	for {
		select {
		case ev, ok := <-l.events:
			if !ok {
				return scope, false
			}
			scope |= l.panel.Handle(ev)
			n++
		default:
			if n > 1 {
				l.logger.Debug("event batch", "events", n, "scope", scope)
			}
			return scope, true
		}
	}
}
