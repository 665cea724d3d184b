package rtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/gopcb/pcbcore/geom"
)

type box geom.Box

func (b box) BoundingBox() geom.Box { return geom.Box(b) }

func TestSearchCompleteness(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	tr := New[box]()
	var all []box
	for i := 0; i < 300; i++ {
		x := int32(r.Intn(1000))
		y := int32(r.Intn(1000))
		b := box(geom.NewBox(x, y, x+int32(r.Intn(20)+1), y+int32(r.Intn(20)+1)))
		tr.Insert(b)
		all = append(all, b)
	}

	query := geom.NewBox(200, 200, 400, 400)
	want := map[box]bool{}
	for _, b := range all {
		if geom.Box(b).Intersects(query) {
			want[b] = true
		}
	}
	got := tr.SearchBox(query)
	gotSet := map[box]bool{}
	for _, b := range got {
		if !geom.Box(b).Intersects(query) {
			t.Fatalf("result %v does not intersect query", b)
		}
		gotSet[b] = true
	}
	if len(gotSet) != len(want) {
		t.Fatalf("got %d hits, want %d", len(gotSet), len(want))
	}
	for b := range want {
		if !gotSet[b] {
			t.Fatalf("missing expected hit %v", b)
		}
	}
}

func TestDeleteRemovesItem(t *testing.T) {
	tr := New[box]()
	b1 := box(geom.NewBox(0, 0, 10, 10))
	b2 := box(geom.NewBox(100, 100, 110, 110))
	tr.Insert(b1)
	tr.Insert(b2)
	if tr.Len() != 2 {
		t.Fatalf("len = %d, want 2", tr.Len())
	}
	ok := tr.Delete(geom.Box(b1), func(x box) bool { return x == b1 })
	if !ok {
		t.Fatalf("expected delete to succeed")
	}
	if tr.Len() != 1 {
		t.Fatalf("len after delete = %d, want 1", tr.Len())
	}
	hits := tr.SearchBox(geom.Box(b1))
	for _, h := range hits {
		if h == b1 {
			t.Fatalf("deleted item still found")
		}
	}
}

func TestAnyEarlyExit(t *testing.T) {
	tr := New[box]()
	for i := 0; i < 50; i++ {
		tr.Insert(box(geom.NewBox(int32(i*10), 0, int32(i*10+5), 5)))
	}
	if !tr.Any(geom.NewBox(0, 0, 5, 5)) {
		t.Fatalf("expected a hit")
	}
	if tr.Any(geom.NewBox(100000, 100000, 100005, 100005)) {
		t.Fatalf("expected no hit")
	}
}

func TestManyInsertsStableDelete(t *testing.T) {
	tr := New[box]()
	var items []box
	for i := 0; i < 1000; i++ {
		b := box(geom.NewBox(int32(i), int32(i), int32(i+1), int32(i+1)))
		tr.Insert(b)
		items = append(items, b)
	}
	for i, b := range items {
		if !tr.Delete(geom.Box(b), func(x box) bool { return x == b }) {
			t.Fatalf("delete %d failed: %v", i, b)
		}
	}
	if tr.Len() != 0 {
		t.Fatalf("len after deleting all = %d, want 0", tr.Len())
	}
}

func TestBulkLoadMatchesSearchCompleteness(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	var all []box
	for i := 0; i < 400; i++ {
		x := int32(r.Intn(1000))
		y := int32(r.Intn(1000))
		all = append(all, box(geom.NewBox(x, y, x+int32(r.Intn(20)+1), y+int32(r.Intn(20)+1))))
	}

	tr := BulkLoad(all)
	if tr.Len() != len(all) {
		t.Fatalf("len = %d, want %d", tr.Len(), len(all))
	}

	query := geom.NewBox(200, 200, 400, 400)
	want := map[box]bool{}
	for _, b := range all {
		if geom.Box(b).Intersects(query) {
			want[b] = true
		}
	}
	got := tr.SearchBox(query)
	gotSet := map[box]bool{}
	for _, b := range got {
		if !geom.Box(b).Intersects(query) {
			t.Fatalf("result %v does not intersect query", b)
		}
		gotSet[b] = true
	}
	if len(gotSet) != len(want) {
		t.Fatalf("got %d hits, want %d", len(gotSet), len(want))
	}
	for b := range want {
		if !gotSet[b] {
			t.Fatalf("missing expected hit %v", b)
		}
	}
}

func TestBulkLoadEmpty(t *testing.T) {
	tr := BulkLoad[box](nil)
	if tr.Len() != 0 {
		t.Fatalf("len = %d, want 0", tr.Len())
	}
	if tr.Any(geom.NewBox(0, 0, 10, 10)) {
		t.Fatalf("expected no hits on empty bulk-loaded tree")
	}
}

func ExampleTree_SearchBox() {
	tr := New[box]()
	tr.Insert(box(geom.NewBox(0, 0, 10, 10)))
	hits := tr.SearchBox(geom.NewBox(5, 5, 6, 6))
	fmt.Println(len(hits))
	// Output: 1
}
