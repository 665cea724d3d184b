// Package polygon implements Boolean set operations (union, intersection,
// subtraction, xor) on planar regions made of oriented closed contours
// with holes, following the Nikitin-Leonov-Schutte outline: segment
// intersection with vertex insertion, cross-vertex-connectivity (CVC)
// labeling of the resulting edges, and a start-rule/jump-rule table
// driven gather pass per operation, followed by heap-ordered hole
// re-attachment.
//
// Robustness scope: inputs are assumed to already satisfy the contour
// invariants of geom.Contour (no self-intersection beyond shared
// endpoints between consecutive segments); this package does not
// perform general snap-rounding beyond resolving new intersections
// introduced by combining the two input regions, keeping geometry in
// integer coordinates throughout.
package polygon

import (
	"errors"

	"github.com/gopcb/pcbcore/geom"
)

// Op selects a Boolean set operation.
type Op int

const (
	Union Op = iota
	Intersection
	Subtract
	Xor
)

// Error kinds: numeric failure manifests only as memory exhaustion;
// geometric degeneracies are handled by the labeling.
var (
	ErrBadParameter = errors.New("polygon: bad parameter")
)

// label classifies a directed edge relative to the opposite region.
type label int

const (
	labelOutside label = iota
	labelInside
	labelShared  // same direction as a coincident edge of the other source
	labelShared2 // opposite direction to a coincident edge of the other source
)

type source int

const (
	srcA source = iota
	srcB
)

// directed edge within one augmented contour.
type dedge struct {
	from, to geom.Point
	src      source
	label    label
	partner  *dedge // coincident edge of the other source, if any
	visited  bool
}

// augmented contour: ordered list of directed edges forming a closed
// loop, in the original contour's traversal order.
type acontour struct {
	edges []*dedge
	src   source
}

// Boolean performs op on regions a and b, returning a new Region. Inputs
// are not modified.
func Boolean(a, b geom.Region, op Op) (geom.Region, error) {
	return booleanImpl(a, b, op)
}

// BooleanFree performs op on a and b exactly like Boolean; it exists to
// mirror a common by-copy/by-consume API pair. Go's garbage collector
// makes an explicit "consume" variant unnecessary, but keeping the name
// lets callers express intent the way a copy/free pair would.
func BooleanFree(a, b geom.Region, op Op) (geom.Region, error) {
	return booleanImpl(a, b, op)
}

// AndSubtract computes A∩B and A∖B in a single labeling pass, as used by
// the polygon dicer.
func AndSubtract(a, b geom.Region) (intersect, diff geom.Region, err error) {
	eng, err := newEngine(a, b)
	if err != nil {
		return geom.Region{}, geom.Region{}, err
	}
	intersect = eng.gather(Intersection)
	eng.resetVisited()
	diff = eng.gather(Subtract)
	return intersect, diff, nil
}

func booleanImpl(a, b geom.Region, op Op) (geom.Region, error) {
	if op == Xor {
		e1, err := newEngine(a, b)
		if err != nil {
			return geom.Region{}, err
		}
		ab := e1.gather(Subtract)

		e2, err := newEngine(b, a)
		if err != nil {
			return geom.Region{}, err
		}
		ba := e2.gather(Subtract)
		return unionPieces(ab, ba), nil
	}
	eng, err := newEngine(a, b)
	if err != nil {
		return geom.Region{}, err
	}
	return eng.gather(op), nil
}

func unionPieces(a, b geom.Region) geom.Region {
	out := geom.Region{}
	out.Pieces = append(out.Pieces, a.Pieces...)
	out.Pieces = append(out.Pieces, b.Pieces...)
	return out
}
