package platform

import "testing"

func TestChangesApply(t *testing.T) {
	g := Geometry{X: 10, Y: 20, Width: 300, Height: 200, Border: 1}
	got := Changes{Mask: ChangeY | ChangeWidth, Y: 5, Width: 640, X: 999}.Apply(g)
	want := Geometry{X: 10, Y: 5, Width: 640, Height: 200, Border: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if ChangesFor(want).Apply(Geometry{}) != want {
		t.Fatalf("expected ChangesFor to carry every geometry field")
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}.Inset(30, 10, 0, 10)
	want := Rect{X: 10, Y: 30, Width: 1900, Height: 1050}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
	if tiny := (Rect{Width: 10, Height: 10}).Inset(20, 20, 20, 20); tiny.Width != 1 || tiny.Height != 1 {
		t.Fatalf("expected inset to clamp to 1x1, got %+v", tiny)
	}
}

func TestGeometryOuter(t *testing.T) {
	g := Geometry{X: 4, Y: 4, Width: 100, Height: 50, Border: 2}
	if o := g.Outer(); o.Width != 104 || o.Height != 54 {
		t.Fatalf("expected outer 104x54, got %+v", o)
	}
}
