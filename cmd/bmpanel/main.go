package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/bmpanel/internal/config"
	"github.com/1broseidon/bmpanel/internal/daemon"
	"github.com/1broseidon/bmpanel/internal/logutil"
	"github.com/1broseidon/bmpanel/internal/panel"
	"github.com/1broseidon/bmpanel/internal/render"
	"github.com/1broseidon/bmpanel/internal/theme"
	"github.com/1broseidon/bmpanel/internal/x11"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func printUsage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "Usage: bmpanel [-config path] [-v] <theme>")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Run the panel with the named theme or theme directory.")
	fmt.Fprintln(out, "")
	fs.PrintDefaults()
}

func run(args []string) int {
	fs := flag.NewFlagSet("bmpanel", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "config file (default ~/.config/bmpanel/config.yaml)")
	verbose := fs.Bool("v", false, "log at debug level")
	fs.Usage = func() { printUsage(fs) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "bmpanel takes at most one theme argument")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if fs.NArg() == 1 {
		cfg.Theme = fs.Arg(0)
	}
	if cfg.Theme == "" {
		fs.Usage()
		return 2
	}

	level, err := logutil.ParseLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logging: %v\n", err)
		return 1
	}
	if *verbose {
		level = slog.LevelDebug
	}
	logger, err := logutil.New(os.Stderr, level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logging: %v\n", err)
		return 1
	}

	if err := runPanel(cfg, logger); err != nil {
		logger.Error("bmpanel stopped", "error", err)
		return 1
	}
	logger.Info("bmpanel stopped")
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// runPanel owns every X resource; each one is released by a deferred call in
// reverse order of acquisition.
func runPanel(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting bmpanel", "theme", cfg.Theme)

	dir, err := theme.Resolve(cfg.Theme, theme.SearchPath(cfg.ThemePaths))
	if err != nil {
		return err
	}
	th, err := theme.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	logger.Debug("theme loaded", "dir", dir, "elements", len(th.Elements))

	conn, err := x11.NewConnection(logger)
	if err != nil {
		return fmt.Errorf("failed to connect to X server: %w", err)
	}
	defer conn.Close()

	bounds, err := conn.PanelGeometry(cfg.Monitor, th.Height, th.Placement)
	if err != nil {
		return fmt.Errorf("failed to place panel: %w", err)
	}
	win, err := x11.CreatePanelWindow(conn, bounds, th.Placement)
	if err != nil {
		return fmt.Errorf("failed to create panel window: %w", err)
	}
	defer win.Destroy()

	if th.HasElement(theme.ElementTray) {
		tray, err := x11.AcquireTray(conn, win)
		switch {
		case errors.Is(err, x11.ErrTrayOwned):
			logger.Warn("system tray is owned by another client, disabling tray")
			th.RemoveElement(theme.ElementTray)
		case err != nil:
			return err
		default:
			defer tray.Release()
		}
	}

	canvas, err := x11.NewCanvas(conn, win)
	if err != nil {
		return fmt.Errorf("failed to create canvas: %w", err)
	}
	defer canvas.Destroy()

	backend := x11.NewBackend(conn, win)
	p := panel.New(panel.Config{
		Window: win.ID(),
		Width:  bounds.Width,
		Theme:  th,
		Env:    backend,
		Logger: logger,
	})
	defer p.Close()

	p.RebuildDesktops()
	p.UpdateTasks()
	p.Relayout()

	renderer := render.New(canvas, th)
	renderer.Panel(p, time.Now())
	if err := renderer.Present(); err != nil {
		return fmt.Errorf("failed to draw panel: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	defer stop()

	events, err := backend.Listen(ctx)
	if err != nil {
		return fmt.Errorf("failed to listen for events: %w", err)
	}

	loop := daemon.NewLoop(daemon.LoopConfig{
		ClockInterval: cfg.ClockInterval,
		Logger:        logger,
	}, p, renderer, events)

	logger.Info("bmpanel started", "width", bounds.Width, "height", th.Height, "placement", th.Placement)
	return loop.Run(ctx)
}
