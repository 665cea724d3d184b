package cmd

import "testing"

func TestSyntheticBoardBuildsRequestedComponentsAndNets(t *testing.T) {
	b := syntheticBoard(10000, 10000, 6, 4, 1)
	if len(b.Components) != 6 {
		t.Fatalf("expected 6 components, got %d", len(b.Components))
	}
	if len(b.Nets) != 4 {
		t.Fatalf("expected 4 nets, got %d", len(b.Nets))
	}
	for _, c := range b.Components {
		if c.Pos.X < 0 || c.Pos.X > 10000 || c.Pos.Y < 0 || c.Pos.Y > 10000 {
			t.Fatalf("component %s placed outside board bounds: %+v", c.Name, c.Pos)
		}
	}
	for _, n := range b.Nets {
		if len(n.Pins) != 2 {
			t.Fatalf("expected every synthetic net to have 2 pins, got %d", len(n.Pins))
		}
		if n.Pins[0].Component == n.Pins[1].Component {
			t.Fatalf("net %s wired a component to itself", n.Name)
		}
	}
}

func TestSyntheticBoardDeterministicForFixedSeed(t *testing.T) {
	a := syntheticBoard(10000, 10000, 8, 6, 42)
	b := syntheticBoard(10000, 10000, 8, 6, 42)
	for i := range a.Components {
		if a.Components[i].Pos != b.Components[i].Pos {
			t.Fatalf("component %d position diverged between identically seeded builds", i)
		}
	}
	for i := range a.Nets {
		if a.Nets[i].Pins[0].Component != b.Nets[i].Pins[0].Component ||
			a.Nets[i].Pins[1].Component != b.Nets[i].Pins[1].Component {
			t.Fatalf("net %d wiring diverged between identically seeded builds", i)
		}
	}
}

func TestParseOpRejectsUnknown(t *testing.T) {
	if _, err := parseOp("bogus"); err == nil {
		t.Fatal("expected an error for an unknown clip op")
	}
	if _, err := parseOp("union"); err != nil {
		t.Fatalf("expected union to parse cleanly, got %v", err)
	}
}
