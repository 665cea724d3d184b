package polygon

import (
	"sort"

	"github.com/gopcb/pcbcore/geom"
)

// engine holds one Boolean operation's working state: the augmented
// contours of both inputs (with intersection points inserted and edges
// labeled) plus the original regions, used to re-test point membership
// during labeling.
type engine struct {
	regionA, regionB geom.Region
	contoursA        []*acontour
	contoursB        []*acontour
}

func newEngine(a, b geom.Region) (*engine, error) {
	if !validRegion(a) || !validRegion(b) {
		return nil, ErrBadParameter
	}
	e := &engine{regionA: a, regionB: b}
	for _, pc := range a.Pieces {
		e.contoursA = append(e.contoursA, buildContour(pc.Outer, srcA))
		for _, h := range pc.Holes {
			e.contoursA = append(e.contoursA, buildContour(h, srcA))
		}
	}
	for _, pc := range b.Pieces {
		e.contoursB = append(e.contoursB, buildContour(pc.Outer, srcB))
		for _, h := range pc.Holes {
			e.contoursB = append(e.contoursB, buildContour(h, srcB))
		}
	}
	e.insertIntersections()
	e.label()
	return e, nil
}

func validRegion(r geom.Region) bool {
	for _, pc := range r.Pieces {
		if len(pc.Outer.Points) < 3 {
			return false
		}
		b := pc.Outer.BoundingBox()
		if b.Empty() {
			return false
		}
	}
	return true
}

func buildContour(c geom.Contour, src source) *acontour {
	ac := &acontour{src: src}
	n := len(c.Points)
	for i := 0; i < n; i++ {
		from := c.Points[i]
		to := c.Points[(i+1)%n]
		ac.edges = append(ac.edges, &dedge{from: from, to: to, src: src})
	}
	return ac
}

// insertIntersections finds every proper crossing or collinear overlap
// between an A-edge and a B-edge and splits both edges at the shared
// points, restarting on each contour until stable (bounded by the
// number of new vertices, which cannot grow without bound for
// well-formed inputs).
func (e *engine) insertIntersections() {
	for _, ca := range e.contoursA {
		for _, cb := range e.contoursB {
			splitAgainstEachOther(ca, cb)
		}
	}
}

func splitAgainstEachOther(ca, cb *acontour) {
	// Repeatedly scan for one intersection, insert it, and rescan: the
	// edge slices are mutated in place so indices are invalidated on
	// every insertion. Bounded by total vertex growth.
	for {
		found := false
		for ia := 0; ia < len(ca.edges); ia++ {
			for ib := 0; ib < len(cb.edges); ib++ {
				if splitOnePair(ca, ia, cb, ib) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return
		}
	}
}

// splitOnePair tests edge ia of ca against edge ib of cb; if they
// properly cross (not merely sharing an existing endpoint) it inserts
// the intersection point into both edge lists and returns true.
func splitOnePair(ca *acontour, ia int, cb *acontour, ib int) bool {
	ea, eb := ca.edges[ia], cb.edges[ib]
	p, ok := segmentIntersection(ea.from, ea.to, eb.from, eb.to)
	if !ok {
		return false
	}
	changed := false
	if p != ea.from && p != ea.to {
		insertVertex(ca, ia, p)
		changed = true
	}
	if p != eb.from && p != eb.to {
		insertVertex(cb, ib, p)
		changed = true
	}
	return changed
}

func insertVertex(c *acontour, edgeIdx int, p geom.Point) {
	e := c.edges[edgeIdx]
	first := &dedge{from: e.from, to: p, src: e.src}
	second := &dedge{from: p, to: e.to, src: e.src}
	c.edges[edgeIdx] = first
	c.edges = append(c.edges, nil)
	copy(c.edges[edgeIdx+2:], c.edges[edgeIdx+1:])
	c.edges[edgeIdx+1] = second
}

// segmentIntersection returns the single point at which open segments
// p1-p2 and p3-p4 cross, using exact integer arithmetic. Collinear
// overlaps report the overlap's nearer endpoint as a conservative single
// split point; a second pass will pick up the remaining overlap vertex
// because the function is called again after every mutation.
func segmentIntersection(p1, p2, p3, p4 geom.Point) (geom.Point, bool) {
	d1x, d1y := int64(p2.X-p1.X), int64(p2.Y-p1.Y)
	d2x, d2y := int64(p4.X-p3.X), int64(p4.Y-p3.Y)
	denom := d1x*d2y - d1y*d2x

	if denom == 0 {
		return collinearOverlapPoint(p1, p2, p3, p4)
	}

	ex, ey := int64(p3.X-p1.X), int64(p3.Y-p1.Y)
	tNum := ex*d2y - ey*d2x
	uNum := ex*d1y - ey*d1x

	// Keep t,u in (0,1) exclusive of endpoints: endpoint touches need no
	// new vertex.
	if denom > 0 {
		if tNum <= 0 || tNum >= denom || uNum <= 0 || uNum >= denom {
			return geom.Point{}, false
		}
	} else {
		if tNum >= 0 || tNum <= denom || uNum >= 0 || uNum <= denom {
			return geom.Point{}, false
		}
	}

	x := int64(p1.X) + tNum*d1x/denom
	y := int64(p1.Y) + tNum*d1y/denom
	return geom.Point{X: int32(x), Y: int32(y)}, true
}

// collinearOverlapPoint handles the axis-aligned collinear-overlap case
// (the overwhelming majority of PCB geometry: rectilinear pads, lines,
// plane boundaries). It returns one endpoint of the overlap range that
// is not already a vertex of both segments, so repeated calls converge
// on the exact overlap boundary in at most two insertions per segment
// pair rather than bisecting indefinitely.
func collinearOverlapPoint(p1, p2, p3, p4 geom.Point) (geom.Point, bool) {
	if p1.Y == p2.Y && p3.Y == p4.Y && p1.Y == p3.Y {
		lo, hi := orderedRange(p1.X, p2.X)
		lo2, hi2 := orderedRange(p3.X, p4.X)
		olo, ohi := max32(lo, lo2), min32(hi, hi2)
		if olo >= ohi {
			return geom.Point{}, false
		}
		for _, x := range [2]int32{olo, ohi} {
			cand := geom.Point{X: x, Y: p1.Y}
			if needsInsertion(cand, p1, p2, p3, p4) {
				return cand, true
			}
		}
		return geom.Point{}, false
	}
	if p1.X == p2.X && p3.X == p4.X && p1.X == p3.X {
		lo, hi := orderedRange(p1.Y, p2.Y)
		lo2, hi2 := orderedRange(p3.Y, p4.Y)
		olo, ohi := max32(lo, lo2), min32(hi, hi2)
		if olo >= ohi {
			return geom.Point{}, false
		}
		for _, y := range [2]int32{olo, ohi} {
			cand := geom.Point{X: p1.X, Y: y}
			if needsInsertion(cand, p1, p2, p3, p4) {
				return cand, true
			}
		}
		return geom.Point{}, false
	}
	return geom.Point{}, false
}

func needsInsertion(p, p1, p2, p3, p4 geom.Point) bool {
	onFirst := p == p1 || p == p2
	onSecond := p == p3 || p == p4
	return !onFirst || !onSecond
}

func orderedRange(a, b int32) (int32, int32) {
	if a < b {
		return a, b
	}
	return b, a
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// label assigns INSIDE/OUTSIDE/SHARED/SHARED2 to every directed edge of
// both augmented inputs, and links SHARED/SHARED2 partners so the
// gather pass can mark both copies of a coincident boundary visited
// together.
func (e *engine) label() {
	linkPartners(e.contoursA, e.contoursB)
	for _, c := range e.contoursA {
		for _, ed := range c.edges {
			if ed.partner != nil {
				continue // already labeled by linkPartners
			}
			ed.label = pointLabel(midpoint(ed), e.regionB)
		}
	}
	for _, c := range e.contoursB {
		for _, ed := range c.edges {
			if ed.partner != nil {
				continue
			}
			ed.label = pointLabel(midpoint(ed), e.regionA)
		}
	}
}

func midpoint(e *dedge) geom.Point {
	return geom.Point{X: (e.from.X + e.to.X) / 2, Y: (e.from.Y + e.to.Y) / 2}
}

func pointLabel(p geom.Point, r geom.Region) label {
	if r.ContainsPoint(p) {
		return labelInside
	}
	return labelOutside
}

// linkPartners finds pairs of edges (one from A, one from B) with
// identical endpoints (in either order) and marks them SHARED (same
// direction) or SHARED2 (opposite direction), cross-linking them as
// partners.
func linkPartners(as, bs []*acontour) {
	type key struct{ x1, y1, x2, y2 int32 }
	norm := func(p, q geom.Point) (key, bool) {
		if p.X < q.X || (p.X == q.X && p.Y < q.Y) {
			return key{p.X, p.Y, q.X, q.Y}, true
		}
		return key{q.X, q.Y, p.X, p.Y}, false
	}
	bIndex := map[key][]*dedge{}
	for _, c := range bs {
		for _, ed := range c.edges {
			k, _ := norm(ed.from, ed.to)
			bIndex[k] = append(bIndex[k], ed)
		}
	}
	for _, c := range as {
		for _, ed := range c.edges {
			k, _ := norm(ed.from, ed.to)
			cands := bIndex[k]
			for _, bed := range cands {
				if bed.partner != nil {
					continue
				}
				if bed.from == ed.from && bed.to == ed.to {
					ed.label, bed.label = labelShared, labelShared
				} else {
					ed.label, bed.label = labelShared2, labelShared2
				}
				ed.partner, bed.partner = bed, ed
				break
			}
		}
	}
}

// sortedByArea returns a copy of cs ordered by ascending area.
func sortedByArea(cs []geom.Contour) []geom.Contour {
	out := append([]geom.Contour(nil), cs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Area() < out[j].Area() })
	return out
}
