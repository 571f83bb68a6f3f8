package tiling

import (
	"github.com/1broseidon/xrwm/internal/platform"
)

// span is a run of pixels along one axis.
type span struct {
	start int
	size  int
}

// splitSpan divides total pixels starting at start into n runs separated by
// gap. Runs are equal except that the remainder goes one pixel each to the
// first runs.
func splitSpan(start, total, n, gap int) []span {
	if n <= 0 {
		return nil
	}
	usable := max(0, total-gap*(n-1))
	base, rem := usable/n, usable%n

	spans := make([]span, n)
	pos := start
	for i := range spans {
		size := base
		if i < rem {
			size++
		}
		spans[i] = span{start: pos, size: size}
		pos += size + gap
	}
	return spans
}

// masterSize is the share of avail pixels the master region gets once the
// gap between master and stack is taken out.
func masterSize(avail, gap, percent int) int {
	return max(0, (avail-gap)*percent/100)
}

// CalculateMasterStack returns one region per window: the first is the master,
// the rest share the stack. area is the usable screen already inset by the
// outer gap.
func CalculateMasterStack(numWindows int, area platform.Rect, innerGap, masterPercent int, orientation Orientation) []platform.Rect {
	switch {
	case numWindows <= 0:
		return nil
	case numWindows == 1:
		return []platform.Rect{area}
	}

	regions := make([]platform.Rect, 0, numWindows)
	stackCount := numWindows - 1

	if orientation == Horizontal {
		masterH := masterSize(area.Height, innerGap, masterPercent)
		regions = append(regions, platform.Rect{
			X:      area.X,
			Y:      area.Y,
			Width:  area.Width,
			Height: masterH,
		})
		stackY := area.Y + masterH + innerGap
		stackH := area.Height - masterH - innerGap
		for _, col := range splitSpan(area.X, area.Width, stackCount, innerGap) {
			regions = append(regions, platform.Rect{
				X:      col.start,
				Y:      stackY,
				Width:  col.size,
				Height: stackH,
			})
		}
		return regions
	}

	masterW := masterSize(area.Width, innerGap, masterPercent)
	regions = append(regions, platform.Rect{
		X:      area.X,
		Y:      area.Y,
		Width:  masterW,
		Height: area.Height,
	})
	stackX := area.X + masterW + innerGap
	stackW := area.Width - masterW - innerGap
	for _, row := range splitSpan(area.Y, area.Height, stackCount, innerGap) {
		regions = append(regions, platform.Rect{
			X:      stackX,
			Y:      row.start,
			Width:  stackW,
			Height: row.size,
		})
	}
	return regions
}

// FitRegion returns the geometry of a window whose outer box, border
// included, fills region. Inner sizes never drop below 1.
func FitRegion(region platform.Rect, border int) platform.Geometry {
	return platform.Geometry{
		X:      region.X,
		Y:      region.Y,
		Width:  max(1, region.Width-2*border),
		Height: max(1, region.Height-2*border),
		Border: border,
	}
}

// CenterIn returns g moved so its outer box is centered in area. The size is
// kept.
func CenterIn(g platform.Geometry, area platform.Rect) platform.Geometry {
	outer := g.Outer()
	g.X = area.X + (area.Width-outer.Width)/2
	g.Y = area.Y + (area.Height-outer.Height)/2
	return g
}
