package board

import (
	"testing"

	"github.com/gopcb/pcbcore/geom"
)

func TestPinBoundingBox(t *testing.T) {
	p := Pin{Center: geom.Point{X: 100, Y: 100}, CopperDiam: 40}
	bb := p.BoundingBox()
	if bb.X1 != 80 || bb.Y1 != 80 || bb.X2 != 120 || bb.Y2 != 120 {
		t.Fatalf("unexpected pin bbox: %+v", bb)
	}
}

func TestPadBoundingBoxIncludesThickness(t *testing.T) {
	p := Pad{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 100, Y: 0}, Thickness: 20}
	bb := p.BoundingBox()
	if bb.X1 != -10 || bb.Y1 != -10 || bb.X2 != 110 || bb.Y2 != 10 {
		t.Fatalf("unexpected pad bbox: %+v", bb)
	}
}

func TestLineIsOrthogonal(t *testing.T) {
	h := Line{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 0}}
	v := Line{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 0, Y: 10}}
	d := Line{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 10, Y: 10}}
	if !h.IsOrthogonal() || !v.IsOrthogonal() {
		t.Fatal("expected horizontal/vertical lines to be orthogonal")
	}
	if d.IsOrthogonal() {
		t.Fatal("expected diagonal line to not be orthogonal")
	}
}

func TestArcBoundingBoxCoversEllipse(t *testing.T) {
	a := Arc{Center: geom.Point{X: 0, Y: 0}, RadiusX: 50, RadiusY: 30, Thickness: 10}
	bb := a.BoundingBox()
	if bb.X1 != -55 || bb.X2 != 55 {
		t.Fatalf("unexpected arc bbox x extent: %+v", bb)
	}
}

func TestRouteStyleBloat(t *testing.T) {
	s := RouteStyle{Keepaway: 500, Thick: 1000}
	if got, want := s.Bloat(), geom.Coord(1000); got != want {
		t.Fatalf("Bloat() = %d, want %d", got, want)
	}
	odd := RouteStyle{Keepaway: 0, Thick: 1001}
	if got, want := odd.Bloat(), geom.Coord(501); got != want {
		t.Fatalf("Bloat() with odd thickness = %d, want %d", got, want)
	}
}

func TestComponentVBoxRotation(t *testing.T) {
	c := Component{Pos: geom.Point{X: 0, Y: 0}, Width: 100, Height: 40, Rotation: Rot90}
	bb := c.VBox()
	if bb.Width() != 40 || bb.Height() != 100 {
		t.Fatalf("rotated vbox = %dx%d, want 40x100", bb.Width(), bb.Height())
	}
}

func TestSelectedComponentsExcludesFixed(t *testing.T) {
	b := &Board{Components: []*Component{
		{Name: "U1", Selectable: true},
		{Name: "U2", Selectable: true, Fixed: true},
		{Name: "J1", Selectable: false},
	}}
	sel := b.SelectedComponents()
	if len(sel) != 1 || sel[0].Name != "U1" {
		t.Fatalf("unexpected selected set: %+v", sel)
	}
}

func TestStyleByNameFallsBackToDefault(t *testing.T) {
	b := &Board{Styles: []RouteStyle{{Name: "power", Thick: 2000}}}
	if got := b.StyleByName("missing"); got.Name != DefaultRouteStyle.Name {
		t.Fatalf("expected fallback to default style, got %+v", got)
	}
	if got := b.StyleByName("power"); got.Thick != 2000 {
		t.Fatalf("expected named style lookup to succeed, got %+v", got)
	}
}
