// Package daemon runs the window manager event loop.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/xrwm/internal/config"
	"github.com/1broseidon/xrwm/internal/hotkeys"
	"github.com/1broseidon/xrwm/internal/platform"
	"github.com/1broseidon/xrwm/internal/tiling"
	"github.com/1broseidon/xrwm/internal/workspace"
)

// Options configures a Dispatcher.
type Options struct {
	Config   *config.Config
	Backend  platform.Backend
	Executor Executor
	Logger   *slog.Logger
}

// Dispatcher is the single writer of window, tag and keyboard state. Every
// event and every queued task runs to completion on the goroutine that
// called Run before the next one starts.
type Dispatcher struct {
	cfg      *config.Config
	backend  platform.Backend
	registry *workspace.Registry
	engine   *tiling.Engine
	keyboard *hotkeys.Keyboard
	executor Executor
	sync     *StateSynchronizer
	logger   *slog.Logger

	active uint32
	screen platform.Rect
	docks  map[platform.WindowID]struct{}
	tasks  chan func()
	quit   bool

	// closed when the event pump exits
	pumpStopped chan struct{}
}

// New builds a dispatcher from a validated configuration.
func New(opts Options) (*Dispatcher, error) {
	if opts.Config == nil || opts.Backend == nil {
		return nil, errors.New("daemon: config and backend are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	executor := opts.Executor
	if executor == nil {
		executor = NewShellExecutor(logger)
	}

	engine, err := tiling.NewEngineFromConfig(opts.Config)
	if err != nil {
		return nil, err
	}

	bindings := make([]hotkeys.Binding, 0, len(opts.Config.Keybindings))
	for i, kb := range opts.Config.Keybindings {
		chord, err := hotkeys.ParseChord(kb.Keys)
		if err != nil {
			return nil, fmt.Errorf("keybindings.%d: %w", i, err)
		}
		if _, _, err := parseBuiltin(kb.Command); err != nil {
			return nil, fmt.Errorf("keybindings.%d: %w", i, err)
		}
		bindings = append(bindings, hotkeys.Binding{Chord: chord, Command: kb.Command})
	}

	return &Dispatcher{
		cfg:      opts.Config,
		backend:  opts.Backend,
		registry: workspace.NewRegistry(),
		engine:   engine,
		keyboard: hotkeys.NewKeyboard(bindings),
		executor: executor,
		sync:     NewStateSynchronizer(opts.Backend, logger),
		logger:   logger,
		active:   1,
		docks:    make(map[platform.WindowID]struct{}),
		tasks:    make(chan func()),
	}, nil
}

// Registry exposes the window registry. Only the dispatcher goroutine may
// use it while Run is active.
func (d *Dispatcher) Registry() *workspace.Registry { return d.registry }

// ActiveTag returns the tag being viewed.
func (d *Dispatcher) ActiveTag() uint32 { return d.active }

type pumped struct {
	ev  platform.Event
	err error
}

// Run takes over the screen and handles events until ctx is cancelled, a
// quit command runs or the display connection is lost. Connection loss is
// reported as a *ConnectionError.
func (d *Dispatcher) Run(ctx context.Context) error {
	if err := d.Start(); err != nil {
		return err
	}

	// Helpers stop with the loop however it ends.
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	events := make(chan pumped)
	d.pumpStopped = make(chan struct{})
	go func(stopped chan struct{}) {
		defer close(stopped)
		d.pump(ctx, events)
	}(d.pumpStopped)

	if interval := time.Duration(d.cfg.ReconcileInterval) * time.Second; interval > 0 {
		r := NewReconciler(ReconcilerConfig{Interval: interval, Logger: d.logger}, d)
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Run(ctx)
		}()
	}

	d.logger.Info("event loop started", "layout", d.engine.Strategy().String(), "tags", d.cfg.Tags)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("event loop stopped")
			return nil
		case p := <-events:
			if p.err != nil {
				if errors.Is(p.err, platform.ErrConnectionClosed) {
					return &ConnectionError{Err: p.err}
				}
				d.logger.Debug("request failed", "error", p.err)
				continue
			}
			d.Handle(p.ev)
		case task := <-d.tasks:
			task()
		}
		if d.quit {
			d.logger.Info("event loop stopped", "reason", "quit")
			return nil
		}
	}
}

// pump is the only reader of the event stream.
func (d *Dispatcher) pump(ctx context.Context, out chan<- pumped) {
	for {
		ev, err := d.backend.NextEvent()
		select {
		case out <- pumped{ev: ev, err: err}:
		case <-ctx.Done():
			return
		}
		if errors.Is(err, platform.ErrConnectionClosed) {
			return
		}
	}
}

// Submit queues task to run on the dispatcher goroutine. It reports false if
// ctx ends first.
func (d *Dispatcher) Submit(ctx context.Context, task func()) bool {
	select {
	case d.tasks <- task:
		return true
	case <-ctx.Done():
		return false
	}
}

// Start prepares the screen: it measures the layout area, publishes desktops,
// grabs the bound keys and adopts windows that are already mapped.
func (d *Dispatcher) Start() error {
	if err := d.measureScreen(); err != nil {
		return err
	}
	d.sync.Announce(d.cfg.Tags, d.active)
	d.grabKeys()

	existing, err := d.backend.ExistingWindows()
	if err != nil {
		d.logger.Warn("failed to list existing windows", "error", err)
	}
	for _, id := range existing {
		d.manage(id)
	}
	d.relayout()
	return nil
}

// measureScreen recomputes the layout area from the server's screen area,
// which already excludes dock struts.
func (d *Dispatcher) measureScreen() error {
	area, err := d.backend.ScreenArea()
	if err != nil {
		return fmt.Errorf("screen area: %w", err)
	}
	pad := d.cfg.ScreenPadding
	d.screen = area.Inset(pad.Top, pad.Right, pad.Bottom, pad.Left)
	d.logger.Info("screen area", "x", d.screen.X, "y", d.screen.Y, "width", d.screen.Width, "height", d.screen.Height)
	return nil
}

// dockChanged remeasures the screen after a panel appears or goes away.
func (d *Dispatcher) dockChanged() {
	if err := d.measureScreen(); err != nil {
		d.logger.Warn("keeping previous screen area", "error", err)
		return
	}
	d.relayout()
}

// Handle applies one event.
func (d *Dispatcher) Handle(ev platform.Event) {
	switch e := ev.(type) {
	case platform.MapRequest:
		if err := d.backend.MapWindow(e.Window); err != nil {
			d.logger.Debug("map request failed", "window_id", uint32(e.Window), "error", err)
		}
	case platform.MapNotify:
		if e.OverrideRedirect {
			return
		}
		d.manage(e.Window)
	case platform.UnmapNotify:
		d.unmanage(e.Window)
	case platform.DestroyNotify:
		d.unmanage(e.Window)
	case platform.ConfigureRequest:
		d.configureRequest(e)
	case platform.KeyPress:
		d.keyPress(e)
	case platform.KeyRelease:
		d.keyRelease(e)
	case platform.DesktopRequest:
		if e.Desktop < 0 || e.Desktop >= d.cfg.Tags {
			return
		}
		d.sendToTag(e.Window, uint32(e.Desktop+1))
	case platform.ViewRequest:
		if e.Desktop < 0 || e.Desktop >= d.cfg.Tags {
			return
		}
		d.view(uint32(e.Desktop + 1))
	case platform.MappingNotify:
		d.remapKeyboard()
	case platform.Other:
		d.logger.Debug("ignoring event", "event", e.Name)
	}
}
