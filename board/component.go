package board

import "github.com/gopcb/pcbcore/geom"

// Side selects which face of the board a component (or SMD pad) sits
// on.
type Side int

const (
	Top Side = iota
	Bottom
)

// Rotation is one of the four orthogonal placements a component may
// take.
type Rotation int

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// Component is a placeable footprint: a rectangular outline (vbox) at a
// reference position, rotation and side, carrying its own pins/pads and
// a name used by the autoplacer's neighbor-bonus heuristic (matching
// name prefix).
type Component struct {
	Name       string
	Pos        geom.Point // reference point, component-local origin
	Rotation   Rotation
	Side       Side
	Width      geom.Coord // footprint extents at Rot0
	Height     geom.Coord
	AllSMD     bool // every pad is surface-mount (affects via_cost and flip eligibility)
	Selectable bool // part of the autoplacer's selected set
	Fixed      bool // excluded from perturbation even if selectable
}

// VBox returns the component's axis-aligned bounding box ("vbox") in
// board coordinates at its current position/rotation.
func (c Component) VBox() geom.Box {
	w, h := c.Width, c.Height
	if c.Rotation == Rot90 || c.Rotation == Rot270 {
		w, h = h, w
	}
	return geom.NewBox(c.Pos.X, c.Pos.Y, c.Pos.X+w, c.Pos.Y+h)
}

// Center returns the component's bounding-box center.
func (c Component) Center() geom.Point { return c.VBox().Center() }

// NetPin is the logical endpoint of a net: a component name (empty for
// a board-fixed pad not belonging to a selectable component) plus a
// board position.
type NetPin struct {
	Component string
	Position  geom.Point
	LayerMask int // bitmask of layer groups the pin is reachable from
}

// Net is the set of pins electrically identical after routing. Style
// names the RouteStyle to apply.
type Net struct {
	Name  string
	Pins  []NetPin
	Style string
}

// BoundingBox returns the smallest box containing every pin of the net.
func (n Net) BoundingBox() geom.Box {
	if len(n.Pins) == 0 {
		return geom.Box{}
	}
	b := geom.BoxFromPoint(n.Pins[0].Position)
	for _, p := range n.Pins[1:] {
		b = b.Union(geom.BoxFromPoint(p.Position))
	}
	return b
}

// RatLine is an unrouted logical connection between two pins of the
// same net.
type RatLine struct {
	Net      string
	From, To geom.Point
}

// Board is the mutable collection the autoplacer and autorouter act on.
// Persistence, file formats and UI are out of scope here; this is
// purely the in-memory model the core reads and writes.
type Board struct {
	Width, Height geom.Coord
	Components    []*Component
	Nets          []Net
	RatLines      []RatLine
	Pins          []Pin
	Pads          []Pad
	Vias          []Via
	Lines         []Line
	Arcs          []Arc
	Polygons      []Polygon
	Styles        []RouteStyle
}

// StyleByName returns the named route style, or DefaultRouteStyle if no
// match exists.
func (b *Board) StyleByName(name string) RouteStyle {
	for _, s := range b.Styles {
		if s.Name == name {
			return s
		}
	}
	return DefaultRouteStyle
}

// SelectedComponents returns every component whose Selectable flag is
// set and which is not Fixed.
func (b *Board) SelectedComponents() []*Component {
	var out []*Component
	for _, c := range b.Components {
		if c.Selectable && !c.Fixed {
			out = append(out, c)
		}
	}
	return out
}
