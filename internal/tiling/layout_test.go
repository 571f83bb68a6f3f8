package tiling

import (
	"testing"

	"github.com/1broseidon/xrwm/internal/config"
	"github.com/1broseidon/xrwm/internal/platform"
)

func clients(n int) []Client {
	out := make([]Client, n)
	for i := range out {
		out[i] = Client{ID: platform.WindowID(i + 1), Geometry: platform.Geometry{Width: 100, Height: 100}}
	}
	return out
}

func overlaps(a, b platform.Rect) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width && a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

func TestCompute_TilingThreeWindows(t *testing.T) {
	e := NewEngine(Tiling, Params{InnerGap: 6, OuterGap: 10, MasterPercent: 50})
	screen := platform.Rect{Width: 1920, Height: 1080}

	placements := e.Compute(clients(3), screen)
	if len(placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(placements))
	}

	want := []platform.Geometry{
		{X: 10, Y: 10, Width: 947, Height: 1060},
		{X: 963, Y: 10, Width: 947, Height: 527},
		{X: 963, Y: 543, Width: 947, Height: 527},
	}
	for i, p := range placements {
		if p.ID != platform.WindowID(i+1) {
			t.Fatalf("expected placement %d for window %d, got %d", i, i+1, p.ID)
		}
		if p.Geometry != want[i] {
			t.Fatalf("placement %d: expected %+v, got %+v", i, want[i], p.Geometry)
		}
	}

	// Master width follows floor((1920 - 2*10 - 6) / 2).
	if placements[0].Geometry.Width != (1920-2*10-6)/2 {
		t.Fatalf("unexpected master width %d", placements[0].Geometry.Width)
	}

	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			if overlaps(placements[i].Geometry.Outer(), placements[j].Geometry.Outer()) {
				t.Fatalf("regions %d and %d overlap", i, j)
			}
		}
	}

	// Regions plus gaps rebuild the inset screen: master + gap + stack spans
	// the width, stack rows + gap span the height.
	if w := want[0].Width + 6 + want[1].Width; w != 1900 {
		t.Fatalf("expected widths plus gap to cover 1900, got %d", w)
	}
	if h := want[1].Height + 6 + want[2].Height; h != 1060 {
		t.Fatalf("expected heights plus gap to cover 1060, got %d", h)
	}
}

func TestCompute_StackRemainderGoesToFirstRegions(t *testing.T) {
	e := NewEngine(Tiling, Params{InnerGap: 6, OuterGap: 10, MasterPercent: 50})
	placements := e.Compute(clients(4), platform.Rect{Width: 1920, Height: 1080})

	heights := []int{placements[1].Geometry.Height, placements[2].Geometry.Height, placements[3].Geometry.Height}
	if heights[0] != 350 || heights[1] != 349 || heights[2] != 349 {
		t.Fatalf("expected stack heights [350 349 349], got %v", heights)
	}
	last := placements[3].Geometry
	if last.Y+last.Height != 1070 {
		t.Fatalf("expected last stack region to end at 1070, got %d", last.Y+last.Height)
	}
}

func TestCompute_SingleWindowFillsInsetArea(t *testing.T) {
	e := NewEngine(Tiling, Params{InnerGap: 6, OuterGap: 10, MasterPercent: 50, Border: 2})
	placements := e.Compute(clients(1), platform.Rect{X: 1920, Width: 1280, Height: 720})
	want := platform.Geometry{X: 1930, Y: 10, Width: 1256, Height: 696, Border: 2}
	if len(placements) != 1 || placements[0].Geometry != want {
		t.Fatalf("expected %+v, got %+v", want, placements)
	}
}

func TestCompute_NoWindows(t *testing.T) {
	for _, s := range []Strategy{Tiling, Floating, Monocle} {
		e := NewEngine(s, Params{CenterFloating: true})
		if got := e.Compute(nil, platform.Rect{Width: 100, Height: 100}); got != nil {
			t.Fatalf("%s: expected no placements, got %v", s, got)
		}
	}
}

func TestCompute_HorizontalOrientation(t *testing.T) {
	e := NewEngine(Tiling, Params{InnerGap: 10, MasterPercent: 60, Orientation: Horizontal})
	placements := e.Compute(clients(2), platform.Rect{Width: 1000, Height: 800})

	master := placements[0].Geometry
	if master != (platform.Geometry{Width: 1000, Height: 474}) {
		t.Fatalf("unexpected master %+v", master)
	}
	stack := placements[1].Geometry
	if stack != (platform.Geometry{Y: 484, Width: 1000, Height: 316}) {
		t.Fatalf("unexpected stack %+v", stack)
	}
}

func TestCompute_Monocle(t *testing.T) {
	e := NewEngine(Monocle, Params{OuterGap: 5, Border: 1})
	placements := e.Compute(clients(2), platform.Rect{Width: 800, Height: 600})
	want := platform.Geometry{X: 5, Y: 5, Width: 788, Height: 588, Border: 1}
	for i, p := range placements {
		if p.Geometry != want {
			t.Fatalf("placement %d: expected %+v, got %+v", i, want, p.Geometry)
		}
		if !p.Raise {
			t.Fatalf("expected monocle placements to raise")
		}
	}
	if placements[1].ID != 2 {
		t.Fatalf("expected last registered window to be raised last, got %d", placements[1].ID)
	}
}

func TestCompute_FloatingCentersUnpositioned(t *testing.T) {
	e := NewEngine(Floating, Params{Border: 1, CenterFloating: true})
	in := []Client{
		{ID: 1, Geometry: platform.Geometry{X: 40, Y: 40, Width: 300, Height: 300}, Positioned: true},
		{ID: 2, Geometry: platform.Geometry{Width: 200, Height: 100}},
	}
	placements := e.Compute(in, platform.Rect{Width: 1000, Height: 800})
	if len(placements) != 1 || placements[0].ID != 2 {
		t.Fatalf("expected only window 2 to be placed, got %+v", placements)
	}
	want := platform.Geometry{X: 399, Y: 349, Width: 200, Height: 100, Border: 1}
	if placements[0].Geometry != want {
		t.Fatalf("expected %+v, got %+v", want, placements[0].Geometry)
	}

	off := NewEngine(Floating, Params{})
	if got := off.Compute(in, platform.Rect{Width: 1000, Height: 800}); len(got) != 0 {
		t.Fatalf("expected no placements with centering disabled, got %+v", got)
	}
}

func TestFitRegion_ClampsToOnePixel(t *testing.T) {
	g := FitRegion(platform.Rect{Width: 3, Height: 3}, 4)
	if g.Width != 1 || g.Height != 1 {
		t.Fatalf("expected 1x1 clamp, got %dx%d", g.Width, g.Height)
	}
}

func TestSplitSpan(t *testing.T) {
	spans := splitSpan(0, 100, 3, 5)
	sizes := []int{spans[0].size, spans[1].size, spans[2].size}
	if sizes[0] != 30 || sizes[1] != 30 || sizes[2] != 30 {
		t.Fatalf("expected [30 30 30], got %v", sizes)
	}
	if spans[2].start != 70 {
		t.Fatalf("expected third span at 70, got %d", spans[2].start)
	}
	if splitSpan(0, 100, 0, 5) != nil {
		t.Fatalf("expected no spans for n=0")
	}
}

func TestNewEngineFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layout = "Monocle"
	cfg.Tiling.Orientation = config.OrientationHorizontal
	e, err := NewEngineFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Strategy() != Monocle {
		t.Fatalf("expected monocle, got %s", e.Strategy())
	}
	if e.Params().Orientation != Horizontal || e.Params().InnerGap != 8 {
		t.Fatalf("unexpected params %+v", e.Params())
	}

	cfg.Layout = "spiral"
	if _, err := NewEngineFromConfig(cfg); err == nil {
		t.Fatalf("expected error for unknown layout")
	}
}
