package daemon

import (
	"sync"

	"github.com/1broseidon/xrwm/internal/platform"
	"github.com/1broseidon/xrwm/internal/tiling"
	"github.com/1broseidon/xrwm/internal/workspace"
)

// relayout runs one layout pass over the active tag and writes the result.
// Geometry writes go out in parallel and all of them finish before relayout
// returns, so a pass never overlaps the next event.
func (d *Dispatcher) relayout() {
	windows := d.registry.WindowsOnTag(d.active)
	if len(windows) == 0 {
		return
	}
	byID := make(map[platform.WindowID]workspace.Window, len(windows))
	clients := make([]tiling.Client, len(windows))
	for i, w := range windows {
		byID[w.ID] = w
		clients[i] = tiling.Client{ID: w.ID, Geometry: w.Geometry, Positioned: w.Positioned}
	}

	placements := d.engine.Compute(clients, d.screen)
	errs := make([]error, len(placements))
	written := make([]bool, len(placements))

	var wg sync.WaitGroup
	for i, p := range placements {
		w := byID[p.ID]
		if !w.Hidden && w.Geometry == p.Geometry {
			continue
		}
		written[i] = true
		wg.Add(1)
		go func(i int, p tiling.Placement) {
			defer wg.Done()
			errs[i] = d.backend.Configure(p.ID, platform.ChangesFor(p.Geometry))
		}(i, p)
	}
	wg.Wait()

	failed := 0
	for i, p := range placements {
		if errs[i] != nil {
			failed++
			d.logger.Warn("layout write failed", "window_id", uint32(p.ID), "error", errs[i])
			continue
		}
		if written[i] {
			_ = d.registry.SetGeometry(p.ID, p.Geometry)
			_ = d.registry.SetHidden(p.ID, false)
			if d.engine.Strategy() == tiling.Floating {
				_ = d.registry.SetPositioned(p.ID, true)
			}
		}
	}

	// Stacking is order dependent, so raises go out one by one in
	// registration order after the geometry writes.
	for i, p := range placements {
		if !p.Raise || errs[i] != nil {
			continue
		}
		raise := platform.Changes{Mask: platform.ChangeStackMode, StackMode: platform.StackAbove}
		if err := d.backend.Configure(p.ID, raise); err != nil {
			d.logger.Debug("raise failed", "window_id", uint32(p.ID), "error", err)
		}
	}

	d.logger.Debug("layout pass",
		"tag", d.active,
		"strategy", d.engine.Strategy().String(),
		"windows", len(windows),
		"placements", len(placements),
		"failed", failed)
}
