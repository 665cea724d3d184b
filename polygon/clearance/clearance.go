// Package clearance implements the polygon-clearance (plow) manager of
// spec §4.3: it keeps a board.Polygon's Clipped region equal to its
// drawn Outline minus every intruding object's clearance shape on an
// overlapping layer group, applying subtractions in batches so a burst
// of pin/via/line edits costs one Boolean pass instead of one per
// object — the same checkpoint/flush idiom
// bf85384a_phroun-garland__region_ops.go.go uses to dissolve many
// pending cursor edits into a tree in a single commit.
package clearance

import (
	"math"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/geom"
	"github.com/gopcb/pcbcore/internal/errs"
	"github.com/gopcb/pcbcore/polygon"
)

// ObjType classifies an intruding object for batching purposes: pins
// and vias batch together (up to maxPinBatch), lines and arcs batch
// together (up to maxLineBatch), per spec §4.3.
type ObjType int

const (
	TypePin ObjType = iota
	TypeVia
	TypePad
	TypeLine
	TypeArc
)

func (t ObjType) isLineLike() bool { return t == TypeLine || t == TypeArc }

// Intruder is a single object's already-bloated clearance shape (caller
// builds this from board.Pin/Via/Line/Arc plus the applicable
// RouteStyle.Bloat(), using CirclePolygon for round shapes).
type Intruder struct {
	Type       ObjType
	Shape      geom.Region
	LayerGroup int
	Thermal    bool
}

type pending struct {
	original geom.Region
	pins     []geom.Region
	lines    []geom.Region
}

// Manager tracks pending, not-yet-flushed intrusions per polygon. The
// zero value is not usable; construct with NewManager.
type Manager struct {
	maxPinBatch  int
	maxLineBatch int
	state        map[*board.Polygon]*pending
}

// NewManager returns a Manager with the batch sizes spec §4.3 names:
// up to 100 pins/vias and up to 20 lines per flushed batch.
func NewManager() *Manager {
	return &Manager{maxPinBatch: 100, maxLineBatch: 20, state: make(map[*board.Polygon]*pending)}
}

func (m *Manager) entry(poly *board.Polygon) *pending {
	p, ok := m.state[poly]
	if !ok {
		p = &pending{}
		m.state[poly] = p
	}
	return p
}

// InitClip (re)builds poly.Clipped from scratch: original minus the
// union of every obstacle's shape, batched the same way incremental
// clears are. Idempotent: calling it again with the same obstacle list
// reproduces the same Clipped region (spec §8.2).
func (m *Manager) InitClip(poly *board.Polygon, obstacles []Intruder) error {
	if len(poly.Outline.Pieces) == 0 {
		return errs.ErrBadParameter
	}
	delete(m.state, poly)
	clipped := poly.Outline.Clone()
	var pins, lines []geom.Region
	for _, o := range obstacles {
		if o.LayerGroup != poly.LayerGroup {
			continue
		}
		if o.Type.isLineLike() {
			lines = append(lines, o.Shape)
		} else {
			pins = append(pins, o.Shape)
		}
	}
	var err error
	clipped, err = subtractBatch(clipped, pins)
	if err != nil {
		return err
	}
	clipped, err = subtractBatch(clipped, lines)
	if err != nil {
		return err
	}
	poly.Clipped = &clipped
	return nil
}

// ClearFromPolygon queues the incremental subtraction of intr from
// poly.Clipped, auto-flushing once the relevant batch reaches its limit
// (spec §4.3, §6 clear_from_polygon).
func (m *Manager) ClearFromPolygon(poly *board.Polygon, intr Intruder) error {
	if intr.LayerGroup != poly.LayerGroup {
		return nil
	}
	st := m.entry(poly)
	if poly.Clipped == nil {
		c := poly.Outline.Clone()
		poly.Clipped = &c
	}
	limit := m.maxPinBatch
	if intr.Type.isLineLike() {
		st.lines = append(st.lines, intr.Shape)
		limit = m.maxLineBatch
		if len(st.lines) >= limit {
			return m.flushLines(poly, st)
		}
		return nil
	}
	st.pins = append(st.pins, intr.Shape)
	if len(st.pins) >= limit {
		return m.flushPins(poly, st)
	}
	return nil
}

// RestoreToPolygon is the inverse of ClearFromPolygon: it adds intr's
// area back into poly.Clipped, clamped to never exceed the polygon's
// original outline, so that clearing then restoring the same object
// leaves Clipped pointwise equal to the original (spec §8.2).
func (m *Manager) RestoreToPolygon(poly *board.Polygon, intr Intruder) error {
	if intr.LayerGroup != poly.LayerGroup || poly.Clipped == nil {
		return nil
	}
	restored, err := polygon.Boolean(*poly.Clipped, intr.Shape, polygon.Union)
	if err != nil {
		return err
	}
	restored, err = polygon.Boolean(restored, poly.Outline, polygon.Intersection)
	if err != nil {
		return err
	}
	poly.Clipped = &restored
	return nil
}

// Flush forces any queued batch for poly to apply immediately, leaving
// no pending intrusions. Callers invoke this at the end of a routing
// pass so Clipped never trails the board's true state past the pass
// boundary.
func (m *Manager) Flush(poly *board.Polygon) error {
	st, ok := m.state[poly]
	if !ok {
		return nil
	}
	if err := m.flushPins(poly, st); err != nil {
		return err
	}
	return m.flushLines(poly, st)
}

func (m *Manager) flushPins(poly *board.Polygon, st *pending) error {
	if len(st.pins) == 0 {
		return nil
	}
	clipped, err := subtractBatch(*poly.Clipped, st.pins)
	if err != nil {
		return err
	}
	poly.Clipped = &clipped
	st.pins = nil
	return nil
}

func (m *Manager) flushLines(poly *board.Polygon, st *pending) error {
	if len(st.lines) == 0 {
		return nil
	}
	clipped, err := subtractBatch(*poly.Clipped, st.lines)
	if err != nil {
		return err
	}
	poly.Clipped = &clipped
	st.lines = nil
	return nil
}

// subtractBatch unions shapes together first, then subtracts the union
// from base in a single Boolean pass (spec §4.3's batching rule).
func subtractBatch(base geom.Region, shapes []geom.Region) (geom.Region, error) {
	if len(shapes) == 0 {
		return base, nil
	}
	union := shapes[0]
	for _, s := range shapes[1:] {
		var err error
		union, err = polygon.Boolean(union, s, polygon.Union)
		if err != nil {
			return geom.Region{}, err
		}
	}
	return polygon.Boolean(base, union, polygon.Subtract)
}

// PlowsPolygon iterates every polygon on an overlapping layer group
// whose bounding box intersects intr's shape, invoking cb for each
// (spec §6 plows_polygon). Used by the router to notify the clearance
// manager whenever it lays a new trace or via.
func PlowsPolygon(intr Intruder, polygons []*board.Polygon, cb func(*board.Polygon) error) error {
	ib := intr.Shape.BoundingBox()
	for _, poly := range polygons {
		if poly.LayerGroup != intr.LayerGroup {
			continue
		}
		if !poly.Outline.BoundingBox().Intersects(ib) {
			continue
		}
		if err := cb(poly); err != nil {
			return err
		}
	}
	return nil
}

// CirclePolygon approximates a circle of the given radius centered at
// center with a regular sides-gon contour, used to build the clearance
// Shape for round pins and vias (spec's Round/Octagon PadShape already
// names this approximation scheme; a true circular boundary has no
// representation in the straight-edge contour model the Boolean engine
// operates on).
func CirclePolygon(center geom.Point, radius geom.Coord, sides int) geom.Contour {
	if sides < 3 {
		sides = 3
	}
	pts := make([]geom.Point, sides)
	for i := 0; i < sides; i++ {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		pts[i] = geom.Point{
			X: center.X + geom.Coord(math.Round(float64(radius)*math.Cos(theta))),
			Y: center.Y + geom.Coord(math.Round(float64(radius)*math.Sin(theta))),
		}
	}
	return geom.Contour{Points: pts, Orient: geom.CCW}
}

// ThermalStub builds a four-armed cross connecting a pin/via of outer
// radius innerR to a surrounding plane, leaving four diagonal gaps for
// solder isolation (spec §4.3, glossary "Thermal relief"). armHalfWidth
// is half the width of each connecting arm; outerR is how far each arm
// extends from center, normally the plane's local clearance boundary.
func ThermalStub(center geom.Point, innerR, outerR, armHalfWidth geom.Coord) geom.Region {
	arms := []geom.Contour{
		rectArm(center, innerR, outerR, armHalfWidth, 0),
		rectArm(center, innerR, outerR, armHalfWidth, 1),
		rectArm(center, innerR, outerR, armHalfWidth, 2),
		rectArm(center, innerR, outerR, armHalfWidth, 3),
	}
	out := geom.Region{}
	for _, a := range arms {
		out.Pieces = append(out.Pieces, geom.Piece{Outer: a})
	}
	return out
}

// rectArm returns one of the four cross arms, dir selecting +X/+Y/-X/-Y.
func rectArm(center geom.Point, innerR, outerR, halfWidth geom.Coord, dir int) geom.Contour {
	var box geom.Box
	switch dir {
	case 0: // +X
		box = geom.NewBox(center.X+innerR, center.Y-halfWidth, center.X+outerR, center.Y+halfWidth)
	case 1: // +Y
		box = geom.NewBox(center.X-halfWidth, center.Y+innerR, center.X+halfWidth, center.Y+outerR)
	case 2: // -X
		box = geom.NewBox(center.X-outerR, center.Y-halfWidth, center.X-innerR, center.Y+halfWidth)
	default: // -Y
		box = geom.NewBox(center.X-halfWidth, center.Y-outerR, center.X+halfWidth, center.Y-innerR)
	}
	return geom.RectContour(box)
}
