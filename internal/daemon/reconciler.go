package daemon

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/1broseidon/xrwm/internal/platform"
)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically checks the registry against the server and drops
// windows whose destroy notification was lost. The check itself runs on the
// dispatcher goroutine.
type Reconciler struct {
	interval   time.Duration
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, d *Dispatcher) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = d.logger
	}
	return &Reconciler{
		interval:   interval,
		dispatcher: d,
		logger:     logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Debug("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("reconciler stopped")
			return
		case <-ticker.C:
			if !r.dispatcher.Submit(ctx, r.dispatcher.Reconcile) {
				return
			}
		}
	}
}

// Reconcile unregisters every managed window the server no longer knows.
// It must run on the dispatcher goroutine.
func (d *Dispatcher) Reconcile() {
	var gone []platform.WindowID
	for _, w := range d.registry.All() {
		_, err := d.backend.QueryGeometry(w.ID)
		if errors.Is(err, platform.ErrWindowGone) {
			gone = append(gone, w.ID)
		}
	}
	for _, id := range gone {
		d.logger.Info("reconciler: dropping vanished window", "window_id", uint32(id))
		d.unmanage(id)
	}
}
