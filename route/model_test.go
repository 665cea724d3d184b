package route

import (
	"testing"

	"github.com/gopcb/pcbcore/geom"
)

func box(x1, y1, x2, y2 int32, net string, typ Type) *Box {
	return &Box{Outer: geom.NewBox(x1, y1, x2, y2), Inner: geom.NewBox(x1, y1, x2, y2), Net: net, Type: typ}
}

func TestAddIndexesByLayerGroup(t *testing.T) {
	m := NewModel()
	a := box(0, 0, 10, 10, "VCC", TypePin)
	a.LayerGroup = 0
	b := box(100, 100, 110, 110, "VCC", TypePin)
	b.LayerGroup = 1
	m.Add(a)
	m.Add(b)

	if got := m.SearchLayer(0, geom.NewBox(0, 0, 10, 10)); len(got) != 1 || got[0] != a {
		t.Fatalf("expected only 'a' on layer 0, got %v", got)
	}
	if got := m.SearchLayer(1, geom.NewBox(0, 0, 10, 10)); len(got) != 0 {
		t.Fatalf("expected nothing on layer 1 at that box, got %v", got)
	}
}

func TestSubnetConnectivity(t *testing.T) {
	m := NewModel()
	a := box(0, 0, 10, 10, "NET1", TypePin)
	b := box(20, 20, 30, 30, "NET1", TypePin)
	c := box(40, 40, 50, 50, "NET1", TypePin)
	m.Add(a)
	m.Add(b)
	m.Add(c)

	if m.SameSubnet(a, b) {
		t.Fatal("expected a,b disjoint before any connection")
	}
	m.ConnectSubnet(a, b)
	if !m.SameSubnet(a, b) {
		t.Fatal("expected a,b connected after ConnectSubnet")
	}
	if m.SameSubnet(a, c) {
		t.Fatal("expected a,c to remain disjoint")
	}
}

func TestBeginPassSnapshotsOriginalSubnet(t *testing.T) {
	m := NewModel()
	a := box(0, 0, 10, 10, "NET1", TypePin)
	b := box(20, 20, 30, 30, "NET1", TypePin)
	m.Add(a)
	m.Add(b)

	m.ConnectSubnet(a, b)
	m.BeginPass()
	if !m.OriginalSameSubnet(a, b) {
		t.Fatal("expected original_subnet to capture the pre-pass connection")
	}

	c := box(40, 40, 50, 50, "NET1", TypePin)
	m.Add(c)
	m.ConnectSubnet(b, c)
	if m.OriginalSameSubnet(a, c) {
		t.Fatal("connections made after BeginPass should not appear in original_subnet")
	}
	if !m.SameSubnet(a, c) {
		t.Fatal("expected live subnet to reflect this pass's new connection")
	}
}

func TestDistinctNetsDeterministicOrder(t *testing.T) {
	m := NewModel()
	m.Add(box(0, 0, 1, 1, "B", TypePin))
	m.Add(box(0, 0, 1, 1, "A", TypePin))
	m.Add(box(0, 0, 1, 1, "B", TypePin))

	nets := m.DistinctNets()
	if len(nets) != 2 || nets[0] != "B" || nets[1] != "A" {
		t.Fatalf("expected first-seen order [B A], got %v", nets)
	}
}

func TestHomelessExpansionAreaRefCounting(t *testing.T) {
	ea := &Box{Type: TypeExpansionArea, Flags: FlagHomeless}
	ea.Retain()
	ea.Retain()
	if ea.Release() {
		t.Fatal("should still be referenced after one release of two retains")
	}
	if !ea.Release() {
		t.Fatal("should be unreferenced after matching releases")
	}
}

func TestAnyBlockerRespectsPredicate(t *testing.T) {
	m := NewModel()
	fixed := box(0, 0, 100, 100, "GND", TypePin)
	fixed.Set(FlagFixed)
	m.Add(fixed)

	query := geom.NewBox(10, 10, 20, 20)
	if !m.AnyBlocker(0, query, func(b *Box) bool { return b.Has(FlagFixed) }) {
		t.Fatal("expected fixed box to count as a blocker")
	}
	if m.AnyBlocker(0, query, func(b *Box) bool { return b.Net == "NOTPRESENT" }) {
		t.Fatal("predicate excluding all boxes should report no blocker")
	}
}
