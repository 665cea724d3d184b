package clearance

import (
	"testing"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/geom"
)

func plane(x1, y1, x2, y2 int32) *board.Polygon {
	return &board.Polygon{Outline: geom.RectRegion(geom.NewBox(x1, y1, x2, y2)), LayerGroup: 0}
}

func TestInitClipSubtractsVia(t *testing.T) {
	p := plane(0, 0, 50000, 50000)
	m := NewManager()
	via := Intruder{
		Type:       TypeVia,
		LayerGroup: 0,
		Shape:      geom.Region{Pieces: []geom.Piece{{Outer: CirclePolygon(geom.Point{X: 25000, Y: 25000}, 1250, 32)}}},
	}
	if err := m.InitClip(p, []Intruder{via}); err != nil {
		t.Fatal(err)
	}
	if p.Clipped == nil {
		t.Fatal("expected Clipped to be built")
	}
	if len(p.Clipped.Pieces) != 1 || len(p.Clipped.Pieces[0].Holes) != 1 {
		t.Fatalf("expected one piece with one hole, got %+v", p.Clipped.Pieces)
	}
	full := int64(50000) * 50000
	if p.Clipped.Area() >= full {
		t.Fatalf("clipped area %d should be less than full plane area %d", p.Clipped.Area(), full)
	}
}

func TestInitClipIsIdempotent(t *testing.T) {
	p := plane(0, 0, 1000, 1000)
	m := NewManager()
	obstacle := Intruder{
		Type:       TypePin,
		LayerGroup: 0,
		Shape:      geom.RectRegion(geom.NewBox(400, 400, 600, 600)),
	}
	if err := m.InitClip(p, []Intruder{obstacle}); err != nil {
		t.Fatal(err)
	}
	area1 := p.Clipped.Area()
	if err := m.InitClip(p, []Intruder{obstacle}); err != nil {
		t.Fatal(err)
	}
	if p.Clipped.Area() != area1 {
		t.Fatalf("InitClip not idempotent: %d != %d", p.Clipped.Area(), area1)
	}
}

func TestClearThenRestoreRoundTrips(t *testing.T) {
	p := plane(0, 0, 1000, 1000)
	m := NewManager()
	originalArea := p.Outline.Area()
	c := p.Outline.Clone()
	p.Clipped = &c

	obstacle := Intruder{
		Type:       TypePin,
		LayerGroup: 0,
		Shape:      geom.RectRegion(geom.NewBox(400, 400, 600, 600)),
	}
	if err := m.ClearFromPolygon(p, obstacle); err != nil {
		t.Fatal(err)
	}
	if err := m.Flush(p); err != nil {
		t.Fatal(err)
	}
	if p.Clipped.Area() == originalArea {
		t.Fatal("expected clearing to reduce area")
	}

	if err := m.RestoreToPolygon(p, obstacle); err != nil {
		t.Fatal(err)
	}
	if got := p.Clipped.Area(); got != originalArea {
		t.Fatalf("restore did not round-trip: got %d, want %d", got, originalArea)
	}
}

func TestBatchFlushesAtLimit(t *testing.T) {
	p := plane(0, 0, 100000, 100000)
	m := NewManager()
	m.maxPinBatch = 2
	c := p.Outline.Clone()
	p.Clipped = &c

	mk := func(x int32) Intruder {
		return Intruder{Type: TypePin, LayerGroup: 0, Shape: geom.RectRegion(geom.NewBox(x, x, x+10, x+10))}
	}
	if err := m.ClearFromPolygon(p, mk(100)); err != nil {
		t.Fatal(err)
	}
	st := m.state[p]
	if len(st.pins) != 1 {
		t.Fatalf("expected 1 pending pin before limit, got %d", len(st.pins))
	}
	if err := m.ClearFromPolygon(p, mk(200)); err != nil {
		t.Fatal(err)
	}
	if len(st.pins) != 0 {
		t.Fatalf("expected batch to flush at limit, got %d pending", len(st.pins))
	}
}

func TestPlowsPolygonInvokesOverlappingOnly(t *testing.T) {
	near := plane(0, 0, 100, 100)
	far := plane(10000, 10000, 10100, 10100)
	otherLayer := plane(0, 0, 100, 100)
	otherLayer.LayerGroup = 1

	intr := Intruder{Type: TypeVia, LayerGroup: 0, Shape: geom.RectRegion(geom.NewBox(10, 10, 30, 30))}

	var hit []*board.Polygon
	err := PlowsPolygon(intr, []*board.Polygon{near, far, otherLayer}, func(p *board.Polygon) error {
		hit = append(hit, p)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(hit) != 1 || hit[0] != near {
		t.Fatalf("expected only 'near' to be hit, got %d polygons", len(hit))
	}
}

func TestThermalStubProducesFourArms(t *testing.T) {
	stub := ThermalStub(geom.Point{X: 0, Y: 0}, 500, 1000, 100)
	if len(stub.Pieces) != 4 {
		t.Fatalf("expected 4 arm pieces, got %d", len(stub.Pieces))
	}
	for _, pc := range stub.Pieces {
		if pc.Outer.Area() == 0 {
			t.Fatal("expected nonzero arm area")
		}
	}
}
