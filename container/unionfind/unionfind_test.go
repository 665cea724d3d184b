package unionfind

import "testing"

func TestUnionConnectsTransitively(t *testing.T) {
	u := New(5)
	u.Union(0, 1)
	u.Union(1, 2)
	if !u.Connected(0, 2) {
		t.Fatal("expected 0 and 2 to be connected transitively")
	}
	if u.Connected(0, 3) {
		t.Fatal("expected 0 and 3 to remain disjoint")
	}
}

func TestGrowPreservesExistingUnions(t *testing.T) {
	u := New(2)
	u.Union(0, 1)
	u.Grow(4)
	if !u.Connected(0, 1) {
		t.Fatal("growing should not disturb existing unions")
	}
	if u.Connected(2, 3) {
		t.Fatal("new elements should start disjoint")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	u := New(3)
	u.Union(0, 1)
	c := u.Clone()
	u.Union(1, 2)
	if c.Connected(0, 2) {
		t.Fatal("clone should not see unions made after cloning")
	}
	if !u.Connected(0, 2) {
		t.Fatal("original should see its own union")
	}
}

func TestResetRestoresSingletons(t *testing.T) {
	u := New(3)
	u.Union(0, 1)
	u.Union(1, 2)
	u.Reset()
	if u.Connected(0, 1) || u.Connected(1, 2) {
		t.Fatal("reset should restore every element to its own set")
	}
}
