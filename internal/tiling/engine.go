package tiling

import (
	"fmt"
	"strings"

	"github.com/1broseidon/xrwm/internal/config"
	"github.com/1broseidon/xrwm/internal/platform"
)

// Strategy is the layout algorithm applied to the windows of a tag.
type Strategy int

const (
	Tiling Strategy = iota
	Floating
	Monocle
)

func (s Strategy) String() string {
	switch s {
	case Tiling:
		return config.LayoutTiling
	case Floating:
		return config.LayoutFloating
	case Monocle:
		return config.LayoutMonocle
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case config.LayoutTiling:
		return Tiling, nil
	case config.LayoutFloating:
		return Floating, nil
	case config.LayoutMonocle:
		return Monocle, nil
	}
	return 0, fmt.Errorf("unknown layout %q", name)
}

// Orientation selects where the stack sits relative to the master.
type Orientation int

const (
	// Vertical puts the master on the left and stacks the rest in a column.
	Vertical Orientation = iota
	// Horizontal puts the master on top and the rest in a row below it.
	Horizontal
)

// Params holds the spacing and decoration settings of a layout pass.
type Params struct {
	InnerGap       int
	OuterGap       int
	Border         int
	MasterPercent  int
	Orientation    Orientation
	CenterFloating bool
}

// ParamsFromConfig extracts layout parameters from a validated config.
func ParamsFromConfig(cfg *config.Config) Params {
	p := Params{
		InnerGap:       cfg.Gaps.Inner,
		OuterGap:       cfg.Gaps.Outer,
		Border:         cfg.Window.BorderSize,
		MasterPercent:  cfg.Tiling.MasterPercent,
		CenterFloating: cfg.Window.OpenInCenterOnFloatingMode,
	}
	if cfg.Tiling.Orientation == config.OrientationHorizontal {
		p.Orientation = Horizontal
	}
	return p
}

// Client is a window as seen by the layout engine.
type Client struct {
	ID         platform.WindowID
	Geometry   platform.Geometry
	Positioned bool
}

// Placement is the geometry the engine assigns to a window. Raise asks for the
// window to be stacked above its siblings.
type Placement struct {
	ID       platform.WindowID
	Geometry platform.Geometry
	Raise    bool
}

// Engine computes window geometry for one strategy. It holds no per-pass
// state and is safe to share.
type Engine struct {
	strategy Strategy
	params   Params
}

func NewEngine(strategy Strategy, params Params) *Engine {
	if params.MasterPercent <= 0 || params.MasterPercent >= 100 {
		params.MasterPercent = 50
	}
	return &Engine{strategy: strategy, params: params}
}

// NewEngineFromConfig builds the engine the configuration selects.
func NewEngineFromConfig(cfg *config.Config) (*Engine, error) {
	strategy, err := ParseStrategy(cfg.Layout)
	if err != nil {
		return nil, err
	}
	return NewEngine(strategy, ParamsFromConfig(cfg)), nil
}

func (e *Engine) Strategy() Strategy { return e.strategy }

func (e *Engine) Params() Params { return e.params }

// Compute assigns geometry to clients, given in registration order, within
// screen. Placements come back in the same order. Floating layouts only
// return placements for windows they move.
func (e *Engine) Compute(clients []Client, screen platform.Rect) []Placement {
	if len(clients) == 0 {
		return nil
	}
	outer := e.params.OuterGap
	area := screen.Inset(outer, outer, outer, outer)

	switch e.strategy {
	case Monocle:
		return e.monocle(clients, area)
	case Floating:
		return e.floating(clients, screen)
	default:
		return e.tile(clients, area)
	}
}

func (e *Engine) tile(clients []Client, area platform.Rect) []Placement {
	regions := CalculateMasterStack(len(clients), area, e.params.InnerGap, e.params.MasterPercent, e.params.Orientation)
	placements := make([]Placement, len(clients))
	for i, c := range clients {
		placements[i] = Placement{ID: c.ID, Geometry: FitRegion(regions[i], e.params.Border)}
	}
	return placements
}

// monocle gives every client the whole area. Raising in registration order
// leaves the most recently registered window on top.
func (e *Engine) monocle(clients []Client, area platform.Rect) []Placement {
	geom := FitRegion(area, e.params.Border)
	placements := make([]Placement, len(clients))
	for i, c := range clients {
		placements[i] = Placement{ID: c.ID, Geometry: geom, Raise: true}
	}
	return placements
}

func (e *Engine) floating(clients []Client, screen platform.Rect) []Placement {
	if !e.params.CenterFloating {
		return nil
	}
	var placements []Placement
	for _, c := range clients {
		if c.Positioned {
			continue
		}
		g := c.Geometry
		g.Border = e.params.Border
		placements = append(placements, Placement{ID: c.ID, Geometry: CenterIn(g, screen)})
	}
	return placements
}
