// Package mts implements the maze-free-space ("MTS") index: three
// parity-tagged R-trees (fixed / odd-pass / even-pass obstacles) that
// answer "is there empty rectangular space of at least radius+keepaway
// near point P" queries for via placement during routing (spec §4.1).
//
// Naming mirrors the original mtspace.c/.h: Space.Add/Remove mutate the
// index, QueryRect returns a resumable Vetting handle split into
// free/lo-conflict/hi-conflict candidate regions.
package mts

import (
	"github.com/gopcb/pcbcore/container/vector"
	"github.com/gopcb/pcbcore/geom"
	"github.com/gopcb/pcbcore/spatial/rtree"
)

// Parity selects which of the three obstacle trees an operation targets.
type Parity int

const (
	Fixed Parity = iota
	Odd
	Even
)

type obstacle struct {
	box      geom.Box
	keepaway geom.Coord
}

func (o obstacle) BoundingBox() geom.Box { return o.box.Bloat(o.keepaway) }

// Space is the MTS free-space index: one R-tree per parity class.
type Space struct {
	trees [3]*rtree.Tree[obstacle]
}

// New returns an empty MTS index.
func New() *Space {
	return &Space{trees: [3]*rtree.Tree[obstacle]{rtree.New[obstacle](), rtree.New[obstacle](), rtree.New[obstacle]()}}
}

// Add registers an obstacle box with its own keepaway under the given
// parity class.
func (s *Space) Add(box geom.Box, which Parity, keepaway geom.Coord) {
	s.trees[which].Insert(obstacle{box: box, keepaway: keepaway})
}

// Remove deregisters a previously added obstacle. It is a no-op if no
// matching obstacle is found.
func (s *Space) Remove(box geom.Box, which Parity, keepaway geom.Coord) {
	s.trees[which].Delete(box.Bloat(keepaway), func(o obstacle) bool {
		return o.box == box && o.keepaway == keepaway
	})
}

// Conflict classifies why a candidate region was not entirely free.
type Conflict int

const (
	// Free means the region touches no obstacle at all.
	Free Conflict = iota
	// LoConflict means the region touches only obstacles from the
	// previous pass's parity class.
	LoConflict
	// HiConflict means the region touches an obstacle of the current
	// pass's parity class (harder to route around).
	HiConflict
)

// Candidate is one empty (or conflict-bounded) rectangular region
// returned by a query, together with its conflict class.
type Candidate struct {
	Box      geom.Box
	Conflict Conflict
}

// Vetting is a resumable handle over a QueryRect call: the caller can
// keep pulling Next() results to search harder (free first, then
// lo-conflict, then hi-conflict) instead of committing to the cheapest
// answer immediately.
type Vetting struct {
	free        []Candidate
	loConflict  []Candidate
	hiConflict  []Candidate
	idxFree     int
	idxLo       int
	idxHi       int
	withConflic bool
}

// Free returns the count of still-unconsumed free candidates.
func (v *Vetting) Free() int { return len(v.free) - v.idxFree }

// NextFree returns the next free candidate, if any.
func (v *Vetting) NextFree() (Candidate, bool) {
	if v.idxFree >= len(v.free) {
		return Candidate{}, false
	}
	c := v.free[v.idxFree]
	v.idxFree++
	return c, true
}

// NextLoConflict returns the next low-conflict candidate, if any.
func (v *Vetting) NextLoConflict() (Candidate, bool) {
	if v.idxLo >= len(v.loConflict) {
		return Candidate{}, false
	}
	c := v.loConflict[v.idxLo]
	v.idxLo++
	return c, true
}

// NextHiConflict returns the next high-conflict candidate, if any.
func (v *Vetting) NextHiConflict() (Candidate, bool) {
	if v.idxHi >= len(v.hiConflict) {
		return Candidate{}, false
	}
	c := v.hiConflict[v.idxHi]
	v.idxHi++
	return c, true
}

// BoxCount returns the total number of candidates collected by the
// query, consumed or not.
func (v *Vetting) BoxCount() int {
	return len(v.free) + len(v.loConflict) + len(v.hiConflict)
}

// QueryRect searches for rectangular regions of side >= 2*(radius+keepaway)
// centered near points within region that are unobstructed. isOdd selects
// which parity is "current pass" (so the other non-fixed parity is
// "previous pass", classified as lo-conflict). When withConflicts is
// false, occupied candidates are dropped instead of being classified.
func (s *Space) QueryRect(region geom.Box, radius, keepaway geom.Coord, isOdd, withConflicts bool) *Vetting {
	need := radius + keepaway
	side := need * 2
	v := &Vetting{withConflic: withConflicts}

	currentParity, previousParity := Odd, Even
	if !isOdd {
		currentParity, previousParity = Even, Odd
	}

	step := side
	if step <= 0 {
		step = 1
	}
	for y := region.Y1; y+side <= region.Y2; y += step {
		for x := region.X1; x+side <= region.X2; x += step {
			cand := geom.NewBox(x, y, x+side, y+side)
			cls, ok := s.classify(cand, currentParity, previousParity)
			if !ok {
				continue
			}
			c := Candidate{Box: cand, Conflict: cls}
			switch cls {
			case Free:
				v.free = append(v.free, c)
			case LoConflict:
				if withConflicts {
					v.loConflict = append(v.loConflict, c)
				}
			case HiConflict:
				if withConflicts {
					v.hiConflict = append(v.hiConflict, c)
				}
			}
			if len(v.free) > 0 {
				// one free region per iteration is enough for the
				// caller to early-exit; stop scanning this row.
				break
			}
		}
		if len(v.free) > 0 {
			break
		}
	}
	return v
}

func (s *Space) classify(cand geom.Box, current, previous Parity) (Conflict, bool) {
	if s.trees[Fixed].Any(cand) {
		return 0, false
	}
	hitCurrent := s.trees[current].Any(cand)
	hitPrevious := s.trees[previous].Any(cand)
	switch {
	case !hitCurrent && !hitPrevious:
		return Free, true
	case hitCurrent:
		return HiConflict, true
	default:
		return LoConflict, true
	}
}

// Reset empties every parity tree, used between routing runs.
func (s *Space) Reset() {
	s.trees = [3]*rtree.Tree[obstacle]{rtree.New[obstacle](), rtree.New[obstacle](), rtree.New[obstacle]()}
}

// collect is a helper retained for callers that want every candidate as
// a flat work vector rather than iterating the Vetting handle directly.
func collect(v *Vetting) *vector.Vector[Candidate] {
	out := vector.New[Candidate](v.BoxCount())
	for _, c := range v.free {
		out.Append(c)
	}
	for _, c := range v.loConflict {
		out.Append(c)
	}
	for _, c := range v.hiConflict {
		out.Append(c)
	}
	return out
}

// Collect returns every candidate of the vetting handle as a vector
// work-list, in free/lo-conflict/hi-conflict order.
func (v *Vetting) Collect() *vector.Vector[Candidate] { return collect(v) }
