package route

import (
	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/geom"
	"github.com/gopcb/pcbcore/spatial/mts"
)

// maxDiceSegments bounds how many orthogonal pieces a single
// non-orthogonal Line is diced into (spec §4.5.1: "Non-orthogonal
// lines are diced into <=32 short orthogonal sub-segments so the
// plain-AABB R-tree suffices").
const maxDiceSegments = 32

// DiceLine splits a non-orthogonal line into at most maxDiceSegments
// orthogonal sub-segments using a Manhattan-knee staircase
// approximation: the original run is sampled at maxDiceSegments/2
// interior points, and each sample-to-sample leg becomes a horizontal
// piece followed by a vertical piece (either may degenerate to nothing
// when the leg is already axis-aligned). Already-orthogonal lines pass
// through unchanged.
func DiceLine(l board.Line) []board.Line {
	if l.IsOrthogonal() {
		return []board.Line{l}
	}
	const intervals = maxDiceSegments / 2
	out := make([]board.Line, 0, maxDiceSegments)
	prev := l.A
	for i := 1; i <= intervals; i++ {
		t := float64(i) / float64(intervals)
		next := geom.Point{
			X: l.A.X + geom.Coord(float64(l.B.X-l.A.X)*t),
			Y: l.A.Y + geom.Coord(float64(l.B.Y-l.A.Y)*t),
		}
		knee := geom.Point{X: next.X, Y: prev.Y}
		if knee != prev {
			out = append(out, board.Line{A: prev, B: knee, Thickness: l.Thickness, LayerGroup: l.LayerGroup, Net: l.Net})
		}
		if next != knee {
			out = append(out, board.Line{A: knee, B: next, Thickness: l.Thickness, LayerGroup: l.LayerGroup, Net: l.Net})
		}
		prev = next
	}
	return out
}

// PrepareConfig bundles everything Prepare needs to turn a board's
// element lists into a populated Model plus MTS index.
type PrepareConfig struct {
	Board *board.Board
	// LayerGroups lists every layer group a through-hole Pin should be
	// registered on; other elements use their own LayerGroup/Layer
	// field regardless of this list.
	LayerGroups []int
	// Style looks up the RouteStyle to apply for a net, by name; a nil
	// Style falls back to board.DefaultRouteStyle for every net.
	Style func(net string) board.RouteStyle
	// MTS, if non-nil, receives every prepared object as a Fixed-parity
	// obstacle (spec §4.5.1: "MTS is populated with all fixed
	// obstacles").
	MTS *mts.Space
}

// Prepare builds a fresh Model from every pin, pad, via, line (diced if
// non-orthogonal), arc and polygon on cfg.Board, per spec §4.5.1's data-
// preparation step. Each layer group's R-tree is built with one
// Model.AddBulk call (spatial/rtree.BulkLoad) instead of one Insert per
// object. RouteBoxes share a net via the Net field exactly as Model's
// same-net/subnet bookkeeping already expects (Model.SameNet, the
// subnet union-find) -- a freshly prepared board has no copper yet, so
// every object starts as its own subnet, matching the glossary's "a net
// of N pins and no traces has N subnets."
func Prepare(cfg PrepareConfig) *Model {
	m := NewModel()
	style := cfg.Style
	if style == nil {
		style = func(string) board.RouteStyle { return board.DefaultRouteStyle }
	}

	perGroup := map[int][]*Box{}
	add := func(layerGroup int, net string, outer, inner geom.Box, typ Type, flags Flags) {
		perGroup[layerGroup] = append(perGroup[layerGroup], &Box{
			Outer: outer, Inner: inner, LayerGroup: layerGroup,
			Type: typ, Net: net, Flags: FlagFixed | flags,
		})
		if cfg.MTS != nil {
			cfg.MTS.Add(outer, mts.Fixed, style(net).Keepaway)
		}
	}

	for _, p := range cfg.Board.Pins {
		inner := p.BoundingBox()
		outer := inner.Bloat(style(p.Net).Keepaway)
		pinFlags := Flags(0)
		if p.Shape == board.Round {
			pinFlags |= FlagCircular
		}
		for _, lg := range cfg.LayerGroups {
			add(lg, p.Net, outer, inner, TypePin, pinFlags)
		}
	}
	for _, p := range cfg.Board.Pads {
		inner := p.BoundingBox()
		outer := inner.Bloat(style(p.Net).Keepaway)
		add(p.Layer, p.Net, outer, inner, TypePad, 0)
	}
	for _, v := range cfg.Board.Vias {
		inner := v.BoundingBox()
		outer := inner.Bloat(style(v.Net).Keepaway)
		add(v.LayerGroup, v.Net, outer, inner, TypeVia, FlagIsVia|FlagCircular)
	}
	for _, l := range cfg.Board.Lines {
		for _, piece := range DiceLine(l) {
			inner := piece.BoundingBox()
			outer := inner.Bloat(style(piece.Net).Keepaway)
			add(piece.LayerGroup, piece.Net, outer, inner, TypeLine, 0)
		}
	}
	for _, a := range cfg.Board.Arcs {
		// Arcs have no RouteBox type of their own (spec §3.4's type tag
		// set has no Arc entry); Other is the same fallback the source
		// model uses for anything that isn't a pin/pad/via/line/plane.
		inner := a.BoundingBox()
		outer := inner.Bloat(style(a.Net).Keepaway)
		add(a.LayerGroup, a.Net, outer, inner, TypeOther, 0)
	}
	for _, poly := range cfg.Board.Polygons {
		region := poly.Outline
		if poly.Clipped != nil {
			region = *poly.Clipped
		}
		outer := region.BoundingBox()
		typ := TypeOther
		if poly.IsPlane {
			typ = TypePlane
		}
		add(poly.LayerGroup, poly.Net, outer, outer, typ, 0)
	}

	for lg, boxes := range perGroup {
		m.AddBulk(lg, boxes)
	}
	return m
}
