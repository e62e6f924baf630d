package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abelbrown/stageview/internal/compose"
	"github.com/abelbrown/stageview/internal/config"
	"github.com/abelbrown/stageview/internal/coord"
	"github.com/abelbrown/stageview/internal/display"
	"github.com/abelbrown/stageview/internal/fetch"
	"github.com/abelbrown/stageview/internal/logging"
	"github.com/abelbrown/stageview/internal/otel"
	"github.com/abelbrown/stageview/internal/push"
	"github.com/abelbrown/stageview/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// runDisplay wires the engine to the terminal and blocks until the user
// quits or ctx is cancelled.
func runDisplay(ctx context.Context, cfg *config.Config, level log.Level) error {
	if err := logging.Init(level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	events, closeEvents := openEventLog()
	defer closeEvents()
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)

	events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindStartup, Comp: "main",
		Extra: map[string]any{"api": cfg.APIBaseURL(), "ws": cfg.WebSocketURL(), "dedup": cfg.Dedup, "pairing": cfg.Pairing}})
	logging.Info("display starting", "api", cfg.APIBaseURL(), "ws", cfg.WebSocketURL())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := ui.NewApp(ui.AppConfig{
		Ring:       ring,
		Fullscreen: cfg.UI.Fullscreen,
		ShowStatus: cfg.UI.ShowStatus,
	})
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.Fullscreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(app, opts...)

	client := fetch.NewClient(cfg.APIBaseURL(), cfg.FetchTimeout())
	reconciler := display.NewReconciler(ui.NewSurface(program.Send), client, events)
	controller := coord.NewController(client, reconciler, coord.Options{
		Debounce:     cfg.Debounce(),
		FetchTimeout: cfg.FetchTimeout(),
		Compose:      &compose.Options{Dedup: cfg.Dedup, Pairing: cfg.Pairing},
		Events:       events,
		OnState: func(s coord.State) {
			program.Send(ui.StateChanged{State: s})
		},
	})
	listener := push.NewListener(cfg.WebSocketURL(), controller, cfg.Reconnect(), events)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return controller.Run(gctx) })
	g.Go(func() error { return listener.Run(gctx) })
	g.Go(func() error {
		_, err := program.Run()
		// Quitting the UI stops the engine.
		cancel()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	err := g.Wait()
	if err != nil {
		events.Error(otel.KindShutdown, "main", err)
		logging.Error("display stopped", "err", err, "dropped_events", events.Dropped())
		return err
	}
	events.Info(otel.KindShutdown, "main", "")
	logging.Info("display stopped", "dropped_events", events.Dropped())
	return nil
}

// openEventLog opens today's JSONL event file next to the process log.
// Failures fall back to a logger that only feeds the ring buffer.
// The returned func flushes the logger and closes the file.
func openEventLog() (*otel.Logger, func()) {
	null := func() (*otel.Logger, func()) {
		l := otel.NewNullLogger()
		return l, l.Close
	}

	path, err := eventLogPath(time.Now())
	if err != nil {
		return null()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return null()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logging.Warn("event log unavailable", "path", path, "err", err)
		return null()
	}
	l := otel.NewLogger(f)
	return l, func() {
		l.Close()
		f.Close()
	}
}
