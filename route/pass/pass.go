// Package pass drives the multi-pass autorouter loop of spec §4.5.4:
// order nets by bounding-box area, rip up bad (or all, on smoothing
// passes) nets, call route/expand once per unconnected subnet, then
// re-order nets by routed cost for the next pass.
//
// The router's "same subnet" notion (route.Model.SameSubnet) is kept
// monotonic across passes deliberately: it only ever widens which boxes
// expand.Search treats as non-blocking for a net, so a rip-up that
// removes a previously placed segment does not need to retract that
// bookkeeping. Whether a net is fully connected *this* pass — the
// question rip-up and bad-net marking care about — is instead tracked by
// a fresh container/unionfind.UnionFind built per net per pass over that
// net's own terminal boxes.
package pass

import (
	"sort"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/container/unionfind"
	"github.com/gopcb/pcbcore/geom"
	"github.com/gopcb/pcbcore/internal/errs"
	"github.com/gopcb/pcbcore/route"
	"github.com/gopcb/pcbcore/route/expand"
	"github.com/gopcb/pcbcore/spatial/mts"
)

// ProgressFunc reports pass completion as a 0-100 percentage; returning
// true requests cancellation.
type ProgressFunc func(percent float64) bool

// Config bundles everything the pass driver needs.
type Config struct {
	Model       *route.Model
	MTS         *mts.Space
	Board       geom.Box
	LayerGroups []int

	// NetBoxes maps each net name to its terminal route.Box values
	// (pins/pads/vias already registered with Model), in a stable
	// order; NetBoxes[net][0] is the subnet's connectivity root.
	NetBoxes map[string][]*route.Box
	// NetOrder is the initial net processing order (spec: smallest
	// bounding-box area first); callers build this once from board
	// data since Box doesn't retain net geometry beyond its own box.
	NetOrder []string
	// Style looks up the RouteStyle to apply for a net, by name.
	Style func(net string) board.RouteStyle

	Passes   int // refinement passes, default 12
	Smoothes int // smoothing passes, default 1

	ViaOn     bool
	AllowJogs bool

	Progress ProgressFunc
}

// NetResult is one net's outcome for a single completed pass run.
type NetResult struct {
	Net      string
	Routed   bool // every subnet connected
	Conflict bool // at least one segment conflicted with another net
	Cost     float64
}

// Result is the pass driver's final report.
type Result struct {
	PassesRun int
	Nets      []NetResult
}

func withDefaults(cfg Config) Config {
	if cfg.Passes <= 0 {
		cfg.Passes = 12
	}
	if cfg.Smoothes <= 0 {
		cfg.Smoothes = 1
	}
	if len(cfg.LayerGroups) == 0 {
		cfg.LayerGroups = []int{0}
	}
	return cfg
}

// Run executes the full pass sequence of spec §4.5.4 against cfg.Model,
// returning once every net routes cleanly, the early-exit conditions
// trip, or the caller cancels via Progress.
func Run(cfg Config) (*Result, error) {
	cfg = withDefaults(cfg)
	if cfg.Model == nil || len(cfg.NetOrder) == 0 {
		return nil, errs.ErrBadParameter
	}

	order := append([]string(nil), cfg.NetOrder...)
	bad := make(map[string]bool)
	totalRounds := cfg.Passes + cfg.Smoothes
	noChangeRounds := 0

	var lastResults []NetResult

	for p := 1; p <= totalRounds; p++ {
		smoothing := p > cfg.Passes
		ripAlways := smoothing

		cfg.Model.BeginPass()
		ripUp(cfg, bad, ripAlways)

		results := make(map[string]NetResult, len(order))
		anyConflict := false
		anyBad := false
		changed := false

		for _, net := range order {
			boxes := cfg.NetBoxes[net]
			prev, hadPrev := resultByNet(lastResults, net)
			var r NetResult
			if hadPrev && !ripAlways && !bad[net] {
				// Already fully routed and nothing ripped it up: keep the
				// existing geometry rather than re-running expand.Search
				// and materializing a duplicate route.
				r = prev
			} else {
				r = routeNet(cfg, net, boxes, p, totalRounds, smoothing, bad[net])
			}
			results[net] = r
			if !r.Routed {
				anyBad = true
			}
			if r.Conflict {
				anyConflict = true
			}
			if !hadPrev || prev != r {
				changed = true
			}
			bad[net] = !r.Routed
			if cfg.Progress != nil {
				pct := 100 * (float64(p-1)*float64(len(order)) + float64(indexOf(order, net)+1)) / float64(totalRounds*max1(len(order)))
				if cfg.Progress(pct) {
					return &Result{PassesRun: p, Nets: toSlice(order, results)}, errs.ErrCanceled
				}
			}
		}

		lastResults = toSlice(order, results)
		order = reorderByCost(order, results)

		if !anyConflict && !anyBad {
			return &Result{PassesRun: p, Nets: lastResults}, nil
		}
		if smoothing {
			if !changed {
				noChangeRounds++
			} else {
				noChangeRounds = 0
			}
			if noChangeRounds >= 2 {
				return &Result{PassesRun: p, Nets: lastResults}, nil
			}
		}
	}

	return &Result{PassesRun: totalRounds, Nets: lastResults}, nil
}

func resultByNet(list []NetResult, net string) (NetResult, bool) {
	for _, r := range list {
		if r.Net == net {
			return r, true
		}
	}
	return NetResult{}, false
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 0
}

func toSlice(order []string, results map[string]NetResult) []NetResult {
	out := make([]NetResult, 0, len(order))
	for _, net := range order {
		out = append(out, results[net])
	}
	return out
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ripUp removes every non-fixed line/via/thermal box belonging to a bad
// net (or to every net, under ripAlways) from cfg.Model's trees.
func ripUp(cfg Config, bad map[string]bool, ripAlways bool) {
	for _, b := range cfg.Model.Boxes() {
		if b.Has(route.FlagFixed) {
			continue
		}
		switch b.Type {
		case route.TypeLine, route.TypeVia, route.TypeViaShadow, route.TypeThermal:
		default:
			continue
		}
		if ripAlways || bad[b.Net] {
			cfg.Model.Remove(b)
		}
	}
}

// routeNet connects every terminal box of net to NetBoxes[net][0],
// invoking expand.Search once per not-yet-connected box.
func routeNet(cfg Config, net string, boxes []*route.Box, pass, totalPasses int, smoothing, wasBad bool) NetResult {
	if len(boxes) < 2 {
		return NetResult{Net: net, Routed: true}
	}

	style := board.DefaultRouteStyle
	if cfg.Style != nil {
		style = cfg.Style(net)
	}

	local := unionfind.New(len(boxes))
	cost := DefaultCostParams(pass, totalPasses, smoothing)
	conflict := false
	var totalCost float64

	for i := 1; i < len(boxes); i++ {
		if local.Connected(0, i) {
			continue
		}
		var sources []*route.Box
		for j := range boxes {
			if local.Connected(0, j) {
				sources = append(sources, boxes[j])
			}
		}
		req := expand.Request{
			Model:          cfg.Model,
			Board:          cfg.Board,
			Source:         sources,
			Targets:        []*route.Box{boxes[i]},
			LayerGroups:    cfg.LayerGroups,
			Cost:           cost,
			AllowConflicts: smoothing || wasBad,
			IsOddPass:      pass%2 == 1,
			Smoothing:      smoothing,
			Style:          expand.RouteStyleParams{ViaDiam: style.ViaDiam, Keepaway: style.Keepaway},
		}
		if cfg.ViaOn && len(cfg.LayerGroups) > 1 {
			req.MTS = cfg.MTS
		}

		res, err := expand.Search(req)
		if err != nil {
			continue
		}
		local.Union(0, i)
		cfg.Model.ConnectSubnet(boxes[0], boxes[i])
		totalCost += res.Cost
		if materialize(cfg, net, style, res) {
			conflict = true
		}
	}

	routed := true
	for i := 1; i < len(boxes); i++ {
		if !local.Connected(0, i) {
			routed = false
			break
		}
	}
	return NetResult{Net: net, Routed: routed, Conflict: conflict, Cost: totalCost}
}

// materialize inserts a completed route's segments and vias into
// cfg.Model as permanent (non-homeless) route.Box values, and reports
// whether any inserted segment overlaps a fixed or differently-netted
// box (a routing conflict to rip up on a later pass).
//
// The simplified single-ray expansion search (route/expand's package
// doc) does not report which layer group each path segment travelled
// on when a via changes groups mid-path; this driver assigns every
// segment to the route's starting layer group, which is exact for the
// common single-layer-group case and an approximation when a via is
// used, matching the scope note already recorded for route/expand.
func materialize(cfg Config, net string, style board.RouteStyle, res *expand.Result) bool {
	layerGroup := cfg.LayerGroups[0]
	conflict := false
	bloat := style.Thick/2 + style.Keepaway

	for i := 1; i < len(res.Path); i++ {
		a, b := res.Path[i-1], res.Path[i]
		outer := geom.BoxFromPoint(a).Union(geom.BoxFromPoint(b)).Bloat(bloat)
		line := &route.Box{Outer: outer, Inner: outer, LayerGroup: layerGroup, Type: route.TypeLine, Net: net}
		if overlapsOtherNet(cfg.Model, layerGroup, outer, net) {
			conflict = true
		}
		cfg.Model.Add(line)
	}
	for _, v := range res.Vias {
		outer := geom.BoxFromCircle(v, style.ViaDiam/2)
		via := &route.Box{Outer: outer, Inner: outer, LayerGroup: layerGroup, Type: route.TypeVia, Net: net, Flags: route.FlagIsVia}
		cfg.Model.Add(via)
	}
	return conflict
}

func overlapsOtherNet(m *route.Model, layerGroup int, region geom.Box, net string) bool {
	return m.AnyBlocker(layerGroup, region, func(b *route.Box) bool {
		return b.Net != net && b.Net != "" && !b.Has(route.FlagNoBloat)
	})
}

// reorderByCost sorts nets for the next pass by ascending routed cost
// (easiest first, per spec §4.5.4 step 3); nets with no recorded cost
// (trivial or unattempted) keep their relative order at the front.
func reorderByCost(order []string, results map[string]NetResult) []string {
	out := append([]string(nil), order...)
	sort.SliceStable(out, func(i, j int) bool {
		return results[out[i]].Cost < results[out[j]].Cost
	})
	return out
}

// DefaultCostParams is expand.DefaultCostParams, re-exported so callers
// that only import route/pass don't need route/expand directly.
func DefaultCostParams(pass, totalPasses int, smoothing bool) expand.CostParams {
	return expand.DefaultCostParams(pass, totalPasses, smoothing)
}

// OrderByArea sorts net names by ascending board.Net.BoundingBox() area
// (spec §4.5.4: "nets are initially ordered by bounding-box area,
// smallest first").
func OrderByArea(nets []board.Net) []string {
	type entry struct {
		name string
		area int64
	}
	entries := make([]entry, len(nets))
	for i, n := range nets {
		entries[i] = entry{name: n.Name, area: n.BoundingBox().Area()}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].area < entries[j].area })
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}
