package mts

import (
	"testing"

	"github.com/gopcb/pcbcore/geom"
)

func TestQueryRectFindsFreeSpace(t *testing.T) {
	s := New()
	s.Add(geom.NewBox(0, 0, 1000, 1000), Fixed, 100)

	v := s.QueryRect(geom.NewBox(2000, 2000, 10000, 10000), 500, 200, true, true)
	c, ok := v.NextFree()
	if !ok {
		t.Fatalf("expected at least one free candidate")
	}
	if c.Conflict != Free {
		t.Fatalf("expected Free classification")
	}
}

func TestQueryRectAvoidsFixedObstacle(t *testing.T) {
	s := New()
	s.Add(geom.NewBox(0, 0, 100000, 100000), Fixed, 0)

	v := s.QueryRect(geom.NewBox(0, 0, 100000, 100000), 500, 200, true, true)
	if v.BoxCount() != 0 {
		t.Fatalf("expected no candidates when fully obstructed by a fixed box, got %d", v.BoxCount())
	}
}

func TestRemoveUndoesAdd(t *testing.T) {
	s := New()
	box := geom.NewBox(0, 0, 100000, 100000)
	s.Add(box, Fixed, 0)
	s.Remove(box, Fixed, 0)

	v := s.QueryRect(geom.NewBox(0, 0, 100000, 100000), 500, 200, true, true)
	if v.Free() == 0 {
		t.Fatalf("expected free space after removing the sole obstacle")
	}
}

func TestConflictClassification(t *testing.T) {
	s := New()
	s.Add(geom.NewBox(0, 0, 5000, 5000), Even, 0)

	// odd pass is "current"; Even becomes "previous" -> lo-conflict.
	v := s.QueryRect(geom.NewBox(0, 0, 5000, 5000), 500, 200, true, true)
	if _, ok := v.NextLoConflict(); !ok {
		t.Fatalf("expected a lo-conflict candidate for previous-parity obstacle")
	}
}
