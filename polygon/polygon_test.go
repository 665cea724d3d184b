package polygon

import (
	"testing"

	"github.com/gopcb/pcbcore/geom"
)

func rect(x1, y1, x2, y2 int32) geom.Region {
	return geom.RectRegion(geom.NewBox(x1, y1, x2, y2))
}

func areaOf(r geom.Region) int64 { return r.Area() }

func TestXorOfIdenticalSquaresIsEmpty(t *testing.T) {
	a := rect(0, 0, 100, 100)
	b := rect(0, 0, 100, 100)
	r, err := Boolean(a, b, Xor)
	if err != nil {
		t.Fatal(err)
	}
	if areaOf(r) != 0 {
		t.Fatalf("A xor A area = %d, want 0", areaOf(r))
	}
}

func TestUnionOfDisjointSquares(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(100, 100, 110, 110)
	r, err := Boolean(a, b, Union)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Pieces) != 2 {
		t.Fatalf("expected 2 disjoint pieces, got %d", len(r.Pieces))
	}
	if got, want := areaOf(r), int64(100+100); got != want {
		t.Fatalf("area = %d, want %d", got, want)
	}
}

func TestIntersectionOfDisjointSquaresIsEmpty(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(100, 100, 110, 110)
	r, err := Boolean(a, b, Intersection)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Empty() {
		t.Fatalf("expected empty intersection, got %d pieces", len(r.Pieces))
	}
}

func TestSubtractContainedSquareProducesHole(t *testing.T) {
	outer := rect(0, 0, 100, 100)
	inner := rect(40, 40, 60, 60)
	r, err := Boolean(outer, inner, Subtract)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Pieces) != 1 {
		t.Fatalf("expected 1 piece with a hole, got %d", len(r.Pieces))
	}
	if len(r.Pieces[0].Holes) != 1 {
		t.Fatalf("expected exactly one hole, got %d", len(r.Pieces[0].Holes))
	}
	want := int64(100*100 - 20*20)
	if got := areaOf(r); got != want {
		t.Fatalf("area = %d, want %d", got, want)
	}
}

func TestUnionOfOverlappingSquares(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(5, 5, 15, 15)
	r, err := Boolean(a, b, Union)
	if err != nil {
		t.Fatal(err)
	}
	// Union area = |A|+|B|-|A∩B| = 100+100-25 = 175
	if got, want := areaOf(r), int64(175); got != want {
		t.Fatalf("union area = %d, want %d", got, want)
	}
}

func TestIntersectionOfOverlappingSquares(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(5, 5, 15, 15)
	r, err := Boolean(a, b, Intersection)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := areaOf(r), int64(25); got != want {
		t.Fatalf("intersection area = %d, want %d", got, want)
	}
}

// TestBooleanIdentity checks (A ∪ B) ∖ B = A ∖ B and (A ∖ B) ∪ (A ∩ B) = A
// for two overlapping squares (spec §8.1 invariant 1).
func TestBooleanIdentity(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(5, 5, 15, 15)

	union, err := Boolean(a, b, Union)
	if err != nil {
		t.Fatal(err)
	}
	lhs, err := Boolean(union, b, Subtract)
	if err != nil {
		t.Fatal(err)
	}
	rhs, err := Boolean(a, b, Subtract)
	if err != nil {
		t.Fatal(err)
	}
	if areaOf(lhs) != areaOf(rhs) {
		t.Fatalf("(A∪B)∖B area %d != A∖B area %d", areaOf(lhs), areaOf(rhs))
	}

	diff, err := Boolean(a, b, Subtract)
	if err != nil {
		t.Fatal(err)
	}
	inter, err := Boolean(a, b, Intersection)
	if err != nil {
		t.Fatal(err)
	}
	recombined, err := Boolean(diff, inter, Union)
	if err != nil {
		t.Fatal(err)
	}
	if areaOf(recombined) != areaOf(a) {
		t.Fatalf("(A∖B)∪(A∩B) area %d != A area %d", areaOf(recombined), areaOf(a))
	}
}

func TestBooleanCommutativity(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(5, 5, 15, 15)

	ab, err := Boolean(a, b, Union)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := Boolean(b, a, Union)
	if err != nil {
		t.Fatal(err)
	}
	if areaOf(ab) != areaOf(ba) {
		t.Fatalf("union not commutative: %d vs %d", areaOf(ab), areaOf(ba))
	}

	iab, err := Boolean(a, b, Intersection)
	if err != nil {
		t.Fatal(err)
	}
	iba, err := Boolean(b, a, Intersection)
	if err != nil {
		t.Fatal(err)
	}
	if areaOf(iab) != areaOf(iba) {
		t.Fatalf("intersection not commutative: %d vs %d", areaOf(iab), areaOf(iba))
	}
}

func TestAndSubtractMatchesSeparateCalls(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(5, 5, 15, 15)

	inter, diff, err := AndSubtract(a, b)
	if err != nil {
		t.Fatal(err)
	}
	wantInter, _ := Boolean(a, b, Intersection)
	wantDiff, _ := Boolean(a, b, Subtract)
	if areaOf(inter) != areaOf(wantInter) {
		t.Fatalf("and-subtract intersection area mismatch")
	}
	if areaOf(diff) != areaOf(wantDiff) {
		t.Fatalf("and-subtract difference area mismatch")
	}
}

func TestBadParameterOnDegenerateContour(t *testing.T) {
	bad := geom.Region{Pieces: []geom.Piece{{Outer: geom.Contour{Points: []geom.Point{{0, 0}, {1, 0}}}}}}
	good := rect(0, 0, 10, 10)
	_, err := Boolean(bad, good, Union)
	if err != ErrBadParameter {
		t.Fatalf("expected ErrBadParameter, got %v", err)
	}
}
