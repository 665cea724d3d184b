// Package place implements the autoplacer: a simulated annealer that
// perturbs the selected components' position, rotation and side,
// scoring each candidate layout with a multi-term cost function (wire
// length, congestion, overlap, out-of-bounds, neighbor alignment bonus,
// overall area) until the schedule cools out.
//
// Component position/rotation/side replace the usual intrusive
// element/pointer-list model with plain board.Component values and an
// explicit Annealer driver; math/rand usage is deterministic and
// explicitly seeded rather than drawing from a time-based source.
package place

import (
	"math"
	"strings"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/geom"
)

// milScale converts a geom.Coord (nanometer-scale integer units, spec
// §3.1) to mils: 100 Coord units per mil, matching route/expand's
// inch-to-Coord convention (100 000 units/inch = 1 000 mils/inch).
const milScale = 100.0

func mils(c geom.Coord) float64 { return float64(c) / milScale }

// CostParams holds the autoplacer's cost-function weights (spec
// §4.4.1's default parameter values).
type CostParams struct {
	ViaCost             float64
	CongestionPenalty   float64
	OverlapPenaltyMin   float64
	OverlapPenaltyMax   float64
	OutOfBoundsPenalty  float64
	OverallAreaPenalty  float64
	MatchingNeighborBonus float64
	OrientedNeighborBonus float64
	AlignedNeighborBonus  float64
	LargeGrid           geom.Coord
	SmallGrid           geom.Coord
	GoodRatio           float64 // good_moves < moves/GoodRatio halts a stage
	StageMultiple       int     // m: good_move_cutoff = m * |selected|
	Gamma               float64 // cooling factor
}

// DefaultCostParams returns the autoplacer's default cost weights.
func DefaultCostParams() CostParams {
	return CostParams{
		ViaCost:               3000,
		CongestionPenalty:     0.02,
		OverlapPenaltyMin:     0.01,
		OverlapPenaltyMax:     100,
		OutOfBoundsPenalty:    1000,
		OverallAreaPenalty:    1,
		MatchingNeighborBonus: 1,
		OrientedNeighborBonus: 1,
		AlignedNeighborBonus:  1,
		LargeGrid:             100 * milScale,
		SmallGrid:             10 * milScale,
		GoodRatio:             40,
		StageMultiple:         20,
		Gamma:                 0.75,
	}
}

// pinSite is one net terminal's placement-independent description: a
// fixed absolute point, or a component index plus the pin's offset in
// that component's unrotated (Rot0) local frame, so the site's current
// absolute position can be recomputed after any perturbation without
// consulting the board model.
type pinSite struct {
	compIdx int // -1 for a fixed (non-selected) terminal
	local   geom.Point
	fixed   geom.Point
}

func (s pinSite) abs(components []*board.Component) geom.Point {
	if s.compIdx < 0 {
		return s.fixed
	}
	c := components[s.compIdx]
	return c.Pos.Add(rotateVec(s.local, c.Rotation))
}

// rotateVec rotates a component-local offset by rot (CCW, matching
// board.Component.VBox's width/height swap at 90°/270°).
func rotateVec(p geom.Point, rot board.Rotation) geom.Point {
	switch rot {
	case board.Rot90:
		return geom.Point{X: -p.Y, Y: p.X}
	case board.Rot180:
		return geom.Point{X: -p.X, Y: -p.Y}
	case board.Rot270:
		return geom.Point{X: p.Y, Y: -p.X}
	}
	return p
}

// invRotateVec is rotateVec's inverse.
func invRotateVec(p geom.Point, rot board.Rotation) geom.Point {
	switch rot {
	case board.Rot90:
		return geom.Point{X: p.Y, Y: -p.X}
	case board.Rot180:
		return geom.Point{X: -p.X, Y: -p.Y}
	case board.Rot270:
		return geom.Point{X: -p.Y, Y: p.X}
	}
	return p
}

// netTopology is one net's placement-dependent view: its terminal
// sites, used to recompute its bounding box as components move.
type netTopology struct {
	sites []pinSite
}

func (n netTopology) boundingBox(components []*board.Component) (geom.Box, bool) {
	if len(n.sites) < 2 {
		return geom.Box{}, false
	}
	b := geom.BoxFromPoint(n.sites[0].abs(components))
	for _, s := range n.sites[1:] {
		b = b.Union(geom.BoxFromPoint(s.abs(components)))
	}
	return b, true
}

// viaPenalized reports whether this net is all-SMD and spans both
// board sides, the condition under which the wire-cost term adds a
// via penalty.
func (n netTopology) viaPenalized(components []*board.Component) bool {
	allSMD := true
	sides := map[board.Side]bool{}
	for _, s := range n.sites {
		if s.compIdx < 0 {
			allSMD = false
			continue
		}
		c := components[s.compIdx]
		if !c.AllSMD {
			allSMD = false
		}
		sides[c.Side] = true
	}
	return allSMD && len(sides) > 1
}

// buildTopology derives the placement-independent net-site model from
// b's netlist, resolving each pin to either a fixed point or a
// (component, local-offset) pair. Only components present in selected
// (by pointer identity) get a compIdx; every other pin is fixed for the
// duration of this annealing run.
func buildTopology(b *board.Board, selected []*board.Component) []netTopology {
	index := make(map[string]int, len(selected))
	compByName := make(map[string]*board.Component, len(selected))
	for i, c := range selected {
		index[c.Name] = i
		compByName[c.Name] = c
	}

	out := make([]netTopology, 0, len(b.Nets))
	for _, net := range b.Nets {
		sites := make([]pinSite, 0, len(net.Pins))
		for _, p := range net.Pins {
			if c, ok := compByName[p.Component]; ok {
				local := invRotateVec(p.Position.Sub(c.Pos), c.Rotation)
				sites = append(sites, pinSite{compIdx: index[p.Component], local: local})
			} else {
				sites = append(sites, pinSite{compIdx: -1, fixed: p.Position})
			}
		}
		out = append(out, netTopology{sites: sites})
	}
	return out
}

// namePrefix returns the leading run of letters in name, used by the
// neighbor bonus's "matching type" test.
func namePrefix(name string) string {
	end := strings.IndexFunc(name, func(r rune) bool { return r >= '0' && r <= '9' })
	if end < 0 {
		return name
	}
	return name[:end]
}

// cost evaluates the full placement cost function for the current
// component positions, given the annealer's initial temperature t0 and
// current temperature t (both feed the time-varying overlap weight).
func cost(components []*board.Component, nets []netTopology, boardBox geom.Box, p CostParams, t0, t float64) float64 {
	w := 0.0
	congestionTotal := 0.0
	var netBoxes []geom.Box

	for _, n := range nets {
		bb, ok := n.boundingBox(components)
		if !ok {
			continue
		}
		netBoxes = append(netBoxes, bb)
		w += mils(bb.Width()) + mils(bb.Height())
		if n.viaPenalized(components) {
			w += p.ViaCost
		}
	}
	for i := 0; i < len(netBoxes); i++ {
		for j := i + 1; j < len(netBoxes); j++ {
			congestionTotal += intersectionAreaMils(netBoxes[i], netBoxes[j])
		}
	}
	delta1 := p.CongestionPenalty * math.Sqrt(math.Abs(congestionTotal))

	var topSide, botSide []geom.Box
	outOfBounds := 0
	for _, c := range components {
		vb := c.VBox()
		if c.Side == board.Top {
			topSide = append(topSide, vb)
		} else {
			botSide = append(botSide, vb)
		}
		if vb.X1 < boardBox.X1 || vb.Y1 < boardBox.Y1 || vb.X2 > boardBox.X2 || vb.Y2 > boardBox.Y2 {
			outOfBounds++
		}
	}
	delta3 := p.OutOfBoundsPenalty * float64(outOfBounds)

	overlapTotal := pairwiseOverlapMils(topSide) + pairwiseOverlapMils(botSide)
	weight := p.OverlapPenaltyMin
	if t0 != 0 {
		weight += (1 - t/t0) * p.OverlapPenaltyMax
	}
	delta2 := math.Sqrt(math.Abs(overlapTotal)) * weight

	delta4 := neighborBonus(components, p)

	delta5 := 0.0
	if bb, ok := overallBounds(components); ok {
		delta5 = p.OverallAreaPenalty * math.Sqrt(mils(bb.Width())*mils(bb.Height()))
	}

	return w + delta1 + delta2 + delta3 - delta4 + delta5
}

func intersectionAreaMils(a, b geom.Box) float64 {
	if !a.Intersects(b) {
		return 0
	}
	ix := min32(a.X2, b.X2) - max32(a.X1, b.X1)
	iy := min32(a.Y2, b.Y2) - max32(a.Y1, b.Y1)
	if ix <= 0 || iy <= 0 {
		return 0
	}
	return mils(ix) * mils(iy)
}

func pairwiseOverlapMils(boxes []geom.Box) float64 {
	total := 0.0
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			total += intersectionAreaMils(boxes[i], boxes[j])
		}
	}
	return total
}

func overallBounds(components []*board.Component) (geom.Box, bool) {
	if len(components) == 0 {
		return geom.Box{}, false
	}
	b := components[0].VBox()
	for _, c := range components[1:] {
		b = b.Union(c.VBox())
	}
	return b, true
}

// neighborBonus rewards alignment between nearby components: for each
// selected component and each of the four compass directions, find the
// nearest other component (restricted to the same board side) whose
// center lies in a 45°-half-angle cone from that side, and reward
// matching name prefix, matching rotation, and a shared vbox edge
// coordinate.
//
// The 45°-trapezoid emanating from each side is formalized here as a
// cone test on component centers (axis offset bounding lateral
// offset), a concrete stand-in for a spatial-index-backed nearest-
// neighbor search that depends on a richer index than this package
// carries on its own.
func neighborBonus(components []*board.Component, p CostParams) float64 {
	total := 0.0
	dirs := []string{"N", "E", "S", "W"}
	for _, c := range components {
		for _, dir := range dirs {
			n := nearestInCone(c, components, dir)
			if n == nil {
				continue
			}
			factor := 1.0
			if c.Name != "" && n.Name != "" && namePrefix(c.Name) == namePrefix(n.Name) {
				total += p.MatchingNeighborBonus
				factor++
			}
			if c.Rotation == n.Rotation {
				total += factor * p.OrientedNeighborBonus
			}
			if sharesEdge(c.VBox(), n.VBox()) {
				total += factor * p.AlignedNeighborBonus
			}
		}
	}
	return total
}

func sharesEdge(a, b geom.Box) bool {
	return a.X1 == b.X1 || a.X1 == b.X2 || a.X2 == b.X1 || a.X2 == b.X2 ||
		a.Y1 == b.Y1 || a.Y1 == b.Y2 || a.Y2 == b.Y1 || a.Y2 == b.Y2
}

func nearestInCone(c *board.Component, components []*board.Component, dir string) *board.Component {
	my := c.Center()
	var best *board.Component
	bestAxis := geom.Coord(math.MaxInt32)
	for _, other := range components {
		if other == c || other.Side != c.Side {
			continue
		}
		oc := other.Center()
		var axis, lateral geom.Coord
		switch dir {
		case "N":
			axis, lateral = my.Y-oc.Y, abs32(my.X-oc.X)
		case "S":
			axis, lateral = oc.Y-my.Y, abs32(my.X-oc.X)
		case "E":
			axis, lateral = oc.X-my.X, abs32(my.Y-oc.Y)
		case "W":
			axis, lateral = my.X-oc.X, abs32(my.Y-oc.Y)
		}
		if axis <= 0 || lateral > axis {
			continue
		}
		if axis < bestAxis {
			bestAxis = axis
			best = other
		}
	}
	return best
}

func min32(a, b geom.Coord) geom.Coord {
	if a < b {
		return a
	}
	return b
}

func max32(a, b geom.Coord) geom.Coord {
	if a > b {
		return a
	}
	return b
}

func abs32(a geom.Coord) geom.Coord {
	if a < 0 {
		return -a
	}
	return a
}
