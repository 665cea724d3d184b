package heap

import (
	"math/rand"
	"testing"
)

func TestExtractMinNonDecreasing(t *testing.T) {
	h := New[int](0)
	costs := []float64{5, 1, 4, 2, 8, 0, 3, 7, 6}
	for i, c := range costs {
		h.Insert(c, i)
	}
	prev := -1.0
	for !h.Empty() {
		e := h.ExtractMin()
		if e.Cost < prev {
			t.Fatalf("extracted %v after %v: not non-decreasing", e.Cost, prev)
		}
		prev = e.Cost
	}
}

func TestReplaceHigherMovesEntryBack(t *testing.T) {
	h := New[string](0)
	a := h.Insert(10, "a")
	h.Insert(20, "b")
	h.Insert(30, "c")
	h.Replace(a, 25)
	min := h.ExtractMin()
	if min.Data != "b" {
		t.Fatalf("expected b to be cheapest after replace, got %s", min.Data)
	}
}

func TestRandomSequenceOrdering(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	h := New[int](0)
	const n = 500
	for i := 0; i < n; i++ {
		h.Insert(r.Float64()*1000, i)
	}
	prev := -1.0
	count := 0
	for !h.Empty() {
		e := h.ExtractMin()
		if e.Cost < prev {
			t.Fatalf("heap order violated at element %d", count)
		}
		prev = e.Cost
		count++
	}
	if count != n {
		t.Fatalf("extracted %d entries, want %d", count, n)
	}
}

func TestFreeCallsDestructor(t *testing.T) {
	h := New[int](0)
	h.Insert(1, 10)
	h.Insert(2, 20)
	var freed []int
	h.Free(func(v int) { freed = append(freed, v) })
	if len(freed) != 2 {
		t.Fatalf("destructor called %d times, want 2", len(freed))
	}
	if !h.Empty() {
		t.Fatalf("heap should be empty after Free")
	}
}
