package place

import (
	"math"
	"math/rand"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/geom"
)

// kind distinguishes the three perturbation families the annealer
// draws from: shift, rotate/flip, and swap.
type kind int

const (
	kindShift kind = iota
	kindRotate
	kindSwap
)

// perturbation records every field needed to undo itself, mirroring
// original_source/src/autoplace.c's PerturbationType/doPerturb(undo=true).
type perturbation struct {
	kind kind

	idx    int
	oldPos geom.Point
	oldRot board.Rotation
	oldSide board.Side

	idx2    int
	oldPos2 geom.Point
}

func (p *perturbation) undo(components []*board.Component) {
	c := components[p.idx]
	c.Pos, c.Rotation, c.Side = p.oldPos, p.oldRot, p.oldSide
	if p.kind == kindSwap {
		c2 := components[p.idx2]
		c2.Pos = p.oldPos2
	}
}

func clampCoord(v, lo, hi geom.Coord) geom.Coord {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundAwayFromZero(v float64, grid geom.Coord) geom.Coord {
	if grid <= 0 {
		return geom.Coord(v)
	}
	n := v / float64(grid)
	if n >= 0 {
		return geom.Coord(n+1) * grid
	}
	return geom.Coord(n-1) * grid
}

// perturb mutates one randomly chosen selected component in place and
// returns the record needed to undo it: with probability 1/(number of
// applicable kinds), shift/rotate/swap. Swap is excluded from the
// choice set entirely when fewer than two components are selected,
// giving a clean 1/2 split between shift and rotate in that case
// without special-casing the probabilities by hand.
func perturb(rng *rand.Rand, components []*board.Component, boardBox geom.Box, t float64, cp CostParams) *perturbation {
	idx := rng.Intn(len(components))
	c := components[idx]

	kinds := []kind{kindShift, kindRotate}
	if len(components) > 1 {
		kinds = append(kinds, kindSwap)
	}
	chosen := kinds[rng.Intn(len(kinds))]

	pt := &perturbation{idx: idx, oldPos: c.Pos, oldRot: c.Rotation, oldSide: c.Side}

	switch chosen {
	case kindShift:
		applyShift(rng, c, boardBox, t, cp)
	case kindRotate:
		applyRotate(rng, c)
	case kindSwap:
		idx2 := pickSwapPartner(rng, components, idx)
		if idx2 < 0 {
			applyShift(rng, c, boardBox, t, cp)
			return pt
		}
		pt.kind = kindSwap
		pt.idx2 = idx2
		other := components[idx2]
		pt.oldPos2 = other.Pos
		c.Pos, other.Pos = other.Pos, c.Pos
	}
	return pt
}

func applyShift(rng *rand.Rand, c *board.Component, boardBox geom.Box, t float64, cp CostParams) {
	scaleX := clampF(math.Sqrt(t), 2.5*milScale, float64(boardBox.Width())/3)
	scaleY := clampF(math.Sqrt(t), 2.5*milScale, float64(boardBox.Height())/3)

	dx := scaleX * 2 * (rng.Float64() - 0.5)
	dy := scaleY * 2 * (rng.Float64() - 0.5)

	grid := cp.SmallGrid
	if t > 10*milScale {
		grid = cp.LargeGrid
	}
	cdx := roundAwayFromZero(dx, grid)
	cdy := roundAwayFromZero(dy, grid)

	vb := c.VBox()
	cdx = clampCoord(cdx, boardBox.X1-vb.X1, boardBox.X2-vb.X2)
	cdy = clampCoord(cdy, boardBox.Y1-vb.Y1, boardBox.Y2-vb.Y2)

	c.Pos = geom.Point{X: c.Pos.X + cdx, Y: c.Pos.Y + cdy}
}

func applyRotate(rng *rand.Rand, c *board.Component) {
	// 0: flip to the other side (SMD only); 1-3: rotate that many quarter turns.
	n := 4
	if !c.AllSMD {
		n = 3
	}
	pick := rng.Intn(n)
	if c.AllSMD && pick == 0 {
		if c.Side == board.Top {
			c.Side = board.Bottom
		} else {
			c.Side = board.Top
		}
		return
	}
	steps := pick
	if !c.AllSMD {
		steps = pick + 1
	}
	c.Rotation = board.Rotation((int(c.Rotation) + steps) % 4)
}

// pickSwapPartner returns an index != idx whose component may swap
// positions with components[idx], or -1 if every candidate is
// forbidden: an all-SMD component can't swap with a non-SMD component
// on a different side, since that would leave it stranded on the wrong
// side's footprint layout.
func pickSwapPartner(rng *rand.Rand, components []*board.Component, idx int) int {
	c := components[idx]
	order := rng.Perm(len(components))
	for _, j := range order {
		if j == idx {
			continue
		}
		other := components[j]
		if swapForbidden(c, other) {
			continue
		}
		return j
	}
	return -1
}

func swapForbidden(a, b *board.Component) bool {
	return a.Side != b.Side && (a.AllSMD != b.AllSMD)
}
