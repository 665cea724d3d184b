package geom

import "testing"

func TestBoxIntersects(t *testing.T) {
	a := NewBox(0, 0, 10, 10)
	b := NewBox(5, 5, 15, 15)
	c := NewBox(10, 10, 20, 20)

	if !a.Intersects(b) {
		t.Fatalf("expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Fatalf("half-open boxes sharing only a corner must not intersect")
	}
}

func TestBoxUnionContains(t *testing.T) {
	a := NewBox(0, 0, 10, 10)
	b := NewBox(20, 20, 30, 30)
	u := a.Union(b)
	if !u.Contains(a) || !u.Contains(b) {
		t.Fatalf("union must contain both inputs")
	}
}

func TestBoxBloat(t *testing.T) {
	b := NewBox(10, 10, 20, 20).Bloat(5)
	want := NewBox(5, 5, 25, 25)
	if b != want {
		t.Fatalf("got %+v want %+v", b, want)
	}
}

func TestContourAreaAndContains(t *testing.T) {
	sq := RectContour(NewBox(0, 0, 100, 100))
	if got := sq.Area(); got != 10000 {
		t.Fatalf("area = %d, want 10000", got)
	}
	if !sq.ContainsPoint(Point{50, 50}) {
		t.Fatalf("expected center point to be inside")
	}
	if sq.ContainsPoint(Point{500, 500}) {
		t.Fatalf("expected far point to be outside")
	}
}

func TestRegionAreaWithHole(t *testing.T) {
	outer := RectContour(NewBox(0, 0, 100, 100))
	hole := RectContour(NewBox(40, 40, 60, 60)).Reversed()
	r := Region{Pieces: []Piece{{Outer: outer, Holes: []Contour{hole}}}}
	if got := r.Area(); got != 10000-400 {
		t.Fatalf("area = %d, want %d", got, 10000-400)
	}
}
