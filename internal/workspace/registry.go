// Package workspace tracks managed windows and the tag each one lives on.
package workspace

import (
	"errors"
	"sort"

	"github.com/1broseidon/xrwm/internal/platform"
)

var (
	ErrAlreadyRegistered = errors.New("window already registered")
	ErrNotRegistered     = errors.New("window not registered")
)

// Window is a managed top-level window.
type Window struct {
	ID       platform.WindowID
	Tag      uint32
	Rule     TagRule
	Geometry platform.Geometry
	// Positioned is set once the window has a position of its own, either
	// from the client or from an honored configure request.
	Positioned bool
	// Hidden is set while the window is parked off-screen because its tag is
	// not being viewed.
	Hidden bool
}

// Registry is the set of managed windows in registration order.
//
// WindowsOnTag results are cached per tag. Every mutation that can change
// what a tag's view contains drops the cached views it touches before
// returning.
//
// Registry has a single owner, the event dispatcher, and no locking.
type Registry struct {
	windows map[platform.WindowID]*Window
	order   []platform.WindowID
	views   map[uint32][]Window
}

func NewRegistry() *Registry {
	return &Registry{
		windows: make(map[platform.WindowID]*Window),
		views:   make(map[uint32][]Window),
	}
}

// Register adds a window. Its starting tag is initialTag resolved through rule.
func (r *Registry) Register(id platform.WindowID, initialTag uint32, rule TagRule, geom platform.Geometry) (Window, error) {
	if _, ok := r.windows[id]; ok {
		return Window{}, ErrAlreadyRegistered
	}
	w := &Window{
		ID:       id,
		Tag:      rule.Resolve(initialTag),
		Rule:     rule,
		Geometry: geom,
	}
	r.windows[id] = w
	r.order = append(r.order, id)
	r.invalidate(w.Tag)
	return *w, nil
}

// Unregister removes a window. Removing an unknown window is a no-op that
// reports false.
func (r *Registry) Unregister(id platform.WindowID) (Window, bool) {
	w, ok := r.windows[id]
	if !ok {
		return Window{}, false
	}
	delete(r.windows, id)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.invalidate(w.Tag)
	return *w, true
}

// SetTag moves a window to requested, subject to its rule, and reports the
// tags it moved from and to.
func (r *Registry) SetTag(id platform.WindowID, requested uint32) (from, to uint32, err error) {
	w, ok := r.windows[id]
	if !ok {
		return 0, 0, ErrNotRegistered
	}
	from = w.Tag
	to = w.Rule.Resolve(requested)
	if from != to {
		w.Tag = to
		r.invalidate(from, to)
	}
	return from, to, nil
}

// WindowsOnTag returns the windows on tag in registration order.
func (r *Registry) WindowsOnTag(tag uint32) []Window {
	view, ok := r.views[tag]
	if !ok {
		view = make([]Window, 0)
		for _, id := range r.order {
			if w := r.windows[id]; w.Tag == tag {
				view = append(view, *w)
			}
		}
		r.views[tag] = view
	}
	return append([]Window(nil), view...)
}

func (r *Registry) SetGeometry(id platform.WindowID, geom platform.Geometry) error {
	w, ok := r.windows[id]
	if !ok {
		return ErrNotRegistered
	}
	if w.Geometry != geom {
		w.Geometry = geom
		r.invalidate(w.Tag)
	}
	return nil
}

func (r *Registry) SetPositioned(id platform.WindowID, positioned bool) error {
	w, ok := r.windows[id]
	if !ok {
		return ErrNotRegistered
	}
	if w.Positioned != positioned {
		w.Positioned = positioned
		r.invalidate(w.Tag)
	}
	return nil
}

func (r *Registry) SetHidden(id platform.WindowID, hidden bool) error {
	w, ok := r.windows[id]
	if !ok {
		return ErrNotRegistered
	}
	if w.Hidden != hidden {
		w.Hidden = hidden
		r.invalidate(w.Tag)
	}
	return nil
}

func (r *Registry) Get(id platform.WindowID) (Window, bool) {
	w, ok := r.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

func (r *Registry) Len() int {
	return len(r.order)
}

// All returns every window in registration order.
func (r *Registry) All() []Window {
	out := make([]Window, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.windows[id])
	}
	return out
}

// Tags returns the tags that hold at least one window, ascending.
func (r *Registry) Tags() []uint32 {
	seen := make(map[uint32]struct{})
	for _, w := range r.windows {
		seen[w.Tag] = struct{}{}
	}
	out := make([]uint32, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) invalidate(tags ...uint32) {
	for _, t := range tags {
		delete(r.views, t)
	}
}
