package daemon

import (
	"errors"

	"github.com/1broseidon/xrwm/internal/platform"
	"github.com/1broseidon/xrwm/internal/tiling"
	"github.com/1broseidon/xrwm/internal/workspace"
)

// manage registers a newly mapped window and lays out its tag if visible.
func (d *Dispatcher) manage(id platform.WindowID) {
	if _, ok := d.registry.Get(id); ok {
		return
	}
	info, err := d.backend.Describe(id)
	if err != nil {
		d.logger.Debug("skipping window", "window_id", uint32(id), "error", err)
		return
	}
	if info.OverrideRedirect {
		return
	}
	if info.Dock {
		d.docks[id] = struct{}{}
		d.logger.Info("dock mapped", "window_id", uint32(id), "class", info.Class)
		d.dockChanged()
		return
	}
	if !info.Manageable {
		return
	}
	geom, err := d.backend.QueryGeometry(id)
	if err != nil {
		d.logger.Debug("skipping window", "window_id", uint32(id), "error", err)
		return
	}

	rule := workspace.AllTags()
	if r, ok := d.cfg.RuleFor(info.Class, info.Instance); ok {
		rule = workspace.OnlyTags(r.Tags...)
	}
	tag := d.active
	if info.Desktop >= 0 && info.Desktop < d.cfg.Tags {
		tag = uint32(info.Desktop + 1)
	}

	w, err := d.registry.Register(id, tag, rule, geom)
	if err != nil {
		d.logger.Warn("register window failed", "window_id", uint32(id), "error", err)
		return
	}
	if info.Positioned {
		_ = d.registry.SetPositioned(id, true)
	}
	d.logger.Info("managing window",
		"window_id", uint32(id),
		"class", info.Class,
		"title", info.Title,
		"tag", w.Tag,
		"rule", w.Rule.String())

	d.sync.WindowDesktop(id, w.Tag)
	d.sync.ClientList(d.registry.All())

	if w.Tag == d.active {
		d.relayout()
		return
	}
	d.hide(id)
}

// unmanage forgets a withdrawn or destroyed window. Duplicate notifications
// are ignored.
func (d *Dispatcher) unmanage(id platform.WindowID) {
	if _, ok := d.docks[id]; ok {
		delete(d.docks, id)
		d.logger.Info("dock removed", "window_id", uint32(id))
		d.dockChanged()
		return
	}
	w, ok := d.registry.Unregister(id)
	if !ok {
		return
	}
	d.logger.Info("window removed", "window_id", uint32(id), "tag", w.Tag)
	d.sync.ClientList(d.registry.All())
	if w.Tag == d.active {
		d.relayout()
	}
}

// configureRequest answers a client's geometry request. Unmanaged windows get
// what they asked for. Floating windows get it too and keep the result.
// Tiled windows are told their current geometry instead.
func (d *Dispatcher) configureRequest(req platform.ConfigureRequest) {
	w, ok := d.registry.Get(req.Window)
	if !ok {
		if err := d.backend.Configure(req.Window, req.Changes); err != nil {
			d.logger.Debug("configure request failed", "window_id", uint32(req.Window), "error", err)
		}
		return
	}

	if d.engine.Strategy() != tiling.Floating {
		if err := d.backend.SendConfigureNotify(w.ID, w.Geometry); err != nil {
			d.logger.Debug("configure notify failed", "window_id", uint32(w.ID), "error", err)
		}
		return
	}

	geom := req.Changes.Apply(w.Geometry)
	if !w.Hidden {
		if err := d.backend.Configure(w.ID, req.Changes); err != nil {
			d.logger.Debug("configure request failed", "window_id", uint32(w.ID), "error", err)
			return
		}
	}
	_ = d.registry.SetGeometry(w.ID, geom)
	if req.Changes.Mask&(platform.ChangeX|platform.ChangeY) != 0 {
		_ = d.registry.SetPositioned(w.ID, true)
	}
}

// hide parks a window left of the screen. Its registry geometry is kept so it
// can come back to the same place.
func (d *Dispatcher) hide(id platform.WindowID) {
	w, ok := d.registry.Get(id)
	if !ok || w.Hidden {
		return
	}
	changes := platform.Changes{Mask: platform.ChangeX, X: -2 * w.Geometry.Outer().Width}
	if err := d.backend.Configure(id, changes); err != nil {
		d.logger.Debug("hide failed", "window_id", uint32(id), "error", err)
		return
	}
	_ = d.registry.SetHidden(id, true)
}

// show brings a hidden window back. Tiled windows are placed by the next
// layout pass; floating windows return to their recorded geometry.
func (d *Dispatcher) show(id platform.WindowID) {
	w, ok := d.registry.Get(id)
	if !ok || !w.Hidden {
		return
	}
	if d.engine.Strategy() != tiling.Floating {
		return
	}
	if err := d.backend.Configure(id, platform.ChangesFor(w.Geometry)); err != nil {
		d.logger.Debug("show failed", "window_id", uint32(id), "error", err)
		return
	}
	_ = d.registry.SetHidden(id, false)
}

// view switches the active tag.
func (d *Dispatcher) view(tag uint32) {
	if tag == 0 || int(tag) > d.cfg.Tags {
		d.logger.Warn("view: no such tag", "tag", tag, "tags", d.cfg.Tags)
		return
	}
	if tag == d.active {
		return
	}
	prev := d.active
	d.active = tag
	for _, w := range d.registry.WindowsOnTag(prev) {
		d.hide(w.ID)
	}
	for _, w := range d.registry.WindowsOnTag(tag) {
		d.show(w.ID)
	}
	d.logger.Debug("view changed", "from", prev, "to", tag)
	d.sync.CurrentDesktop(tag)
	d.relayout()
}

// sendToTag moves a managed window to tag, subject to its rule.
func (d *Dispatcher) sendToTag(id platform.WindowID, tag uint32) {
	if tag == 0 || int(tag) > d.cfg.Tags {
		d.logger.Warn("send: no such tag", "tag", tag, "tags", d.cfg.Tags)
		return
	}
	from, to, err := d.registry.SetTag(id, tag)
	if err != nil {
		if !errors.Is(err, workspace.ErrNotRegistered) {
			d.logger.Warn("set tag failed", "window_id", uint32(id), "error", err)
		}
		return
	}
	if to != tag {
		d.logger.Debug("tag redirected by rule", "window_id", uint32(id), "requested", tag, "tag", to)
	}
	if from == to {
		return
	}
	d.sync.WindowDesktop(id, to)

	switch d.active {
	case from:
		d.hide(id)
		d.relayout()
	case to:
		d.show(id)
		d.relayout()
	}
}

// windowUnderPointer returns the managed window under the pointer.
func (d *Dispatcher) windowUnderPointer() (platform.WindowID, bool) {
	id, err := d.backend.PointerWindow()
	if err != nil {
		d.logger.Debug("pointer query failed", "error", err)
		return 0, false
	}
	if _, ok := d.registry.Get(id); !ok {
		return 0, false
	}
	return id, true
}
