package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestRectIntersect(t *testing.T) {
	a := rect{0, 0, 100, 100}
	if got := a.intersect(rect{50, 60, 200, 200}); got != (rect{50, 60, 100, 100}) {
		t.Fatalf("expected {50 60 100 100}, got %+v", got)
	}
	if got := a.intersect(rect{100, 0, 200, 100}); got != (rect{}) {
		t.Fatalf("expected empty intersection for touching boxes, got %+v", got)
	}
}

func TestUpdateStrutsForMonitor_ClipsToMonitor(t *testing.T) {
	left := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := Monitor{X: 1920, Y: 0, Width: 1920, Height: 1080}

	// Top panel over the left monitor, bottom panel over the right one.
	top := &ewmh.WmStrutPartial{Top: 30, TopStartX: 0, TopEndX: 1919}
	bottom := &ewmh.WmStrutPartial{Bottom: 40, BottomStartX: 1920, BottomEndX: 3839}

	var accL, accR dockStruts
	for _, sp := range []*ewmh.WmStrutPartial{top, bottom} {
		updateStrutsForMonitor(&left, 3840, 1080, sp, &accL)
		updateStrutsForMonitor(&right, 3840, 1080, sp, &accR)
	}

	if accL != (dockStruts{top: 30}) {
		t.Fatalf("expected left monitor top=30 only, got %+v", accL)
	}
	if accR != (dockStruts{bottom: 40}) {
		t.Fatalf("expected right monitor bottom=40 only, got %+v", accR)
	}
}

func TestUpdateStrutsForMonitor_KeepsLargest(t *testing.T) {
	mon := Monitor{Width: 1000, Height: 800}
	var acc dockStruts
	updateStrutsForMonitor(&mon, 1000, 800, &ewmh.WmStrutPartial{Left: 20, LeftStartY: 0, LeftEndY: 799}, &acc)
	updateStrutsForMonitor(&mon, 1000, 800, &ewmh.WmStrutPartial{Left: 12, LeftStartY: 0, LeftEndY: 799}, &acc)
	if acc.left != 20 {
		t.Fatalf("expected left strut 20, got %d", acc.left)
	}
}
