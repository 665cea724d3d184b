package place

import (
	"math"
	"math/rand"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/geom"
)

// defaultRNGSeed keeps math/rand usage deterministic rather than
// reaching for a time-based source: callers that want varied runs pass
// an explicit seed, and an unseeded Annealer still behaves
// deterministically.
const defaultRNGSeed = 1

// deriveSeed folds a stream id into a parent seed with a SplitMix64
// step.
func deriveSeed(parent int64, stream uint64) int64 {
	z := uint64(parent) + stream*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return int64(z)
}

// Annealer runs the simulated-annealing placement optimizer of spec
// §4.4 against a fixed set of selected components, scoring each
// candidate layout with cost() and driving the schedule the way
// original_source/src/autoplace.c's AutoPlaceSelected does: a
// temperature estimated from trial perturbations, a stage loop with a
// good-move/total-move cutoff per stage, geometric cooling, and a halt
// once the acceptance ratio collapses or the temperature bottoms out.
type Annealer struct {
	components []*board.Component
	nets       []netTopology
	boardBox   geom.Box
	cost       CostParams
	rng        *rand.Rand

	T0 float64
}

// NewAnnealer builds an Annealer over the board's currently-selected
// components. seed 0 uses defaultRNGSeed.
func NewAnnealer(b *board.Board, cost CostParams, seed int64) *Annealer {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	selected := b.SelectedComponents()
	return &Annealer{
		components: selected,
		nets:       buildTopology(b, selected),
		boardBox:   geom.NewBox(0, 0, b.Width, b.Height),
		cost:       cost,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// referenceTemp is the fixed trial temperature autoplace.c uses while
// estimating T0, expressed in the same centimils-like coordinate scale
// as CostParams.LargeGrid (300 mil).
const referenceTemp = 300 * milScale

// EstimateT0 runs 10 trial perturbations at a fixed reference
// temperature, each applied then undone, and sets T0 to
// -mean(|ΔC|)/ln(0.95) (autoplace.c's AutoPlaceSelected, the "find a
// good starting temperature" step). Call once before Run.
func (a *Annealer) EstimateT0() float64 {
	if len(a.components) == 0 {
		a.T0 = 0
		return 0
	}
	c0 := cost(a.components, a.nets, a.boardBox, a.cost, 0, 0)
	var sum float64
	const trials = 10
	for i := 0; i < trials; i++ {
		pt := perturb(a.rng, a.components, a.boardBox, referenceTemp, a.cost)
		c1 := cost(a.components, a.nets, a.boardBox, a.cost, 0, 0)
		sum += math.Abs(c1 - c0)
		pt.undo(a.components)
	}
	mean := sum / trials
	if mean == 0 {
		a.T0 = referenceTemp
		return a.T0
	}
	a.T0 = -mean / math.Log(0.95)
	return a.T0
}

// RunResult summarizes one annealing run.
type RunResult struct {
	Stages       int
	FinalCost    float64
	FinalT       float64
	MovedAny     bool
}

// Run executes the main annealing loop. If EstimateT0 was not called
// first, Run calls it itself.
func (a *Annealer) Run() RunResult {
	if len(a.components) == 0 {
		return RunResult{}
	}
	if a.T0 == 0 {
		a.EstimateT0()
	}

	type snapshot struct {
		pos geom.Point
		rot board.Rotation
		side board.Side
	}
	initial := make([]snapshot, len(a.components))
	for i, c := range a.components {
		initial[i] = snapshot{c.Pos, c.Rotation, c.Side}
	}

	t := a.T0
	c0 := cost(a.components, a.nets, a.boardBox, a.cost, a.T0, t)
	goodCutoff := a.cost.StageMultiple * len(a.components)
	if goodCutoff <= 0 {
		goodCutoff = 1
	}
	moveCutoff := 2 * goodCutoff

	stages := 0
	for {
		stages++
		goodMoves, moves := 0, 0
		for goodMoves < goodCutoff && moves < moveCutoff {
			moves++
			pt := perturb(a.rng, a.components, a.boardBox, t, a.cost)
			c1 := cost(a.components, a.nets, a.boardBox, a.cost, a.T0, t)
			if c1 < c0 {
				c0 = c1
				goodMoves++
				continue
			}
			ratio := clampF((c0-c1)/t, -20, 20)
			if a.rng.Float64() < math.Exp(ratio) {
				c0 = c1
				goodMoves++
			} else {
				pt.undo(a.components)
			}
		}

		goodRatio := int(a.cost.GoodRatio + 0.5)
		if goodRatio <= 0 {
			goodRatio = 1
		}
		if t < 5 || goodMoves < moves/goodRatio {
			break
		}
		t *= a.cost.Gamma
		c0 = cost(a.components, a.nets, a.boardBox, a.cost, a.T0, t)
	}

	moved := false
	for i, c := range a.components {
		if c.Pos != initial[i].pos || c.Rotation != initial[i].rot || c.Side != initial[i].side {
			moved = true
			break
		}
	}

	return RunResult{Stages: stages, FinalCost: c0, FinalT: t, MovedAny: moved}
}
