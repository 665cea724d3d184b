package polygon

import (
	"github.com/gopcb/pcbcore/container/heap"
	"github.com/gopcb/pcbcore/geom"
	"github.com/gopcb/pcbcore/internal/assert"
)

// junction indexes, for every vertex reached by more than one directed
// edge (across both augmented inputs), the outgoing edges available
// there — the CVC (cross-vertex-connectivity) list.
type junction struct {
	outgoing []*dedge
}

func (e *engine) junctions() map[geom.Point]*junction {
	js := map[geom.Point]*junction{}
	add := func(cs []*acontour) {
		for _, c := range cs {
			for _, ed := range c.edges {
				j, ok := js[ed.from]
				if !ok {
					j = &junction{}
					js[ed.from] = j
				}
				j.outgoing = append(j.outgoing, ed)
			}
		}
	}
	add(e.contoursA)
	add(e.contoursB)
	return js
}

func (e *engine) resetVisited() {
	reset := func(cs []*acontour) {
		for _, c := range cs {
			for _, ed := range c.edges {
				ed.visited = false
			}
		}
	}
	reset(e.contoursA)
	reset(e.contoursB)
}

// startMatch reports whether a directed edge qualifies as a traversal
// start for op, and in which direction (forward=true follows e.to;
// forward=false means the contour must be walked backward from e).
func startMatch(op Op, ed *dedge) (ok bool, forward bool) {
	switch op {
	case Union:
		return ed.label == labelOutside || ed.label == labelShared, true
	case Intersection:
		return ed.label == labelInside || ed.label == labelShared, true
	case Subtract:
		if ed.src == srcA {
			return ed.label == labelOutside || ed.label == labelShared2, true
		}
		return ed.label == labelInside, false
	}
	return false, true
}

// continueMatch reports whether a candidate outgoing edge at a junction
// is an acceptable continuation for op when travelling in the given
// direction.
func continueMatch(op Op, ed *dedge, forward bool) bool {
	switch op {
	case Union:
		return ed.label == labelOutside || ed.label == labelShared
	case Intersection:
		return ed.label == labelInside || ed.label == labelShared
	case Subtract:
		if ed.src == srcA {
			return ed.label == labelOutside || ed.label == labelShared2
		}
		return ed.label == labelInside
	}
	return false
}

// gather runs the start-rule/jump-rule traversal for op over the
// engine's labeled, augmented contours and assembles the resulting
// contours into a Region with holes re-attached by area.
func (e *engine) gather(op Op) geom.Region {
	js := e.junctions()
	var outers, holes []geom.Contour

	walk := func(cs []*acontour) {
		for _, c := range cs {
			for _, start := range c.edges {
				if start.visited {
					continue
				}
				ok, forward := startMatch(op, start)
				if !ok {
					continue
				}
				pts := e.traverse(start, forward, js, op)
				if len(pts) < 3 {
					continue
				}
				ct := geom.Contour{Points: pts}
				if ct.SignedArea2() >= 0 {
					ct.Orient = geom.CCW
					outers = append(outers, ct)
				} else {
					ct.Orient = geom.CW
					holes = append(holes, ct)
				}
			}
		}
	}
	walk(e.contoursA)
	walk(e.contoursB)

	return attachHoles(outers, holes)
}

// traverse walks from start until it returns to the starting vertex,
// marking every consumed edge (and its SHARED/SHARED2 partner) visited,
// and following the jump-rule at junctions to pick the next edge.
func (e *engine) traverse(start *dedge, forward bool, js map[geom.Point]*junction, op Op) []geom.Point {
	var pts []geom.Point
	cur := start
	startVertex := start.from
	if !forward {
		startVertex = start.to
	}

	visit := func(ed *dedge) {
		ed.visited = true
		if ed.partner != nil {
			sameDir := ed.partner.from == ed.from && ed.partner.to == ed.to
			reverseDir := ed.partner.from == ed.to && ed.partner.to == ed.from
			assert.True(sameDir || reverseDir,
				"traverse: partner edge %v->%v shares no endpoint pair with %v->%v", ed.partner.from, ed.partner.to, ed.from, ed.to)
			ed.partner.visited = true
		}
	}

	for {
		if forward {
			pts = append(pts, cur.from)
			visit(cur)
			next := e.nextEdge(cur.to, cur, js, op, true)
			if next == nil || cur.to == startVertex {
				break
			}
			cur = next
		} else {
			pts = append(pts, cur.to)
			visit(cur)
			next := e.nextEdge(cur.from, cur, js, op, false)
			if next == nil || cur.from == startVertex {
				break
			}
			cur = next
		}
	}
	return pts
}

// nextEdge picks the continuation edge at vertex v after consuming
// `from`, honoring the jump-rule: among candidate outgoing edges at v
// (forward case) or incoming edges ending at v (backward case) that
// are unvisited and whose label matches continueMatch, prefer staying
// on the same contour/source; otherwise take any matching candidate.
func (e *engine) nextEdge(v geom.Point, from *dedge, js map[geom.Point]*junction, op Op, forward bool) *dedge {
	if forward {
		j, ok := js[v]
		if !ok {
			return nil
		}
		var same, other *dedge
		for _, cand := range j.outgoing {
			if cand.visited {
				continue
			}
			if !continueMatch(op, cand, true) {
				continue
			}
			if cand.src == from.src && same == nil {
				same = cand
			} else if other == nil {
				other = cand
			}
		}
		if same != nil {
			return same
		}
		return other
	}
	// backward: find an edge whose `to` equals v (i.e. points into v),
	// unvisited, matching continueMatch.
	var same, other *dedge
	scan := func(cs []*acontour) {
		for _, c := range cs {
			for _, cand := range c.edges {
				if cand.to != v || cand.visited {
					continue
				}
				if !continueMatch(op, cand, false) {
					continue
				}
				if cand.src == from.src && same == nil {
					same = cand
				} else if other == nil {
					other = cand
				}
			}
		}
	}
	scan(e.contoursA)
	scan(e.contoursB)
	if same != nil {
		return same
	}
	return other
}

// attachHoles matches each hole contour to the smallest-area outer
// contour that contains it, using the package's own min-heap ordered by
// outer area so the smallest enclosing outer is found first (spec §4.2
// step 4).
func attachHoles(outers, holes []geom.Contour) geom.Region {
	pieces := make([]geom.Piece, len(outers))
	for i, o := range outers {
		pieces[i] = geom.Piece{Outer: o}
	}

	for _, h := range holes {
		if len(h.Points) == 0 {
			continue
		}
		rep := h.Points[0]
		candidates := heap.New[int](len(outers))
		for i, o := range outers {
			assert.True(len(o.Points) >= 3, "attachHoles: degenerate outer contour with %d points", len(o.Points))
			if o.ContainsPoint(rep) {
				candidates.Insert(float64(o.Area()), i)
			}
		}
		if candidates.Empty() {
			continue
		}
		best := candidates.ExtractMin()
		pieces[best.Data].Holes = append(pieces[best.Data].Holes, h)
	}
	return geom.Region{Pieces: pieces}
}
