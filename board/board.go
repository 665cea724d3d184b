// Package board defines the PCB element types the autoplacer and
// autorouter operate on: pins, pads, vias, lines, arcs and polygons,
// plus the named route-style tuple attached to each net.
package board

import "github.com/gopcb/pcbcore/geom"

// PadShape selects a pin's or via's copper shape.
type PadShape int

const (
	Round PadShape = iota
	Square
	Octagon
)

// Pin is a through-hole element present on every layer.
type Pin struct {
	Center        geom.Point
	CopperDiam    geom.Coord
	DrillDiam     geom.Coord
	Keepaway      geom.Coord
	Shape         PadShape
	Net           string
	Thermal       bool // connected to an overlapping plane via a thermal relief
}

// BoundingBox returns the pin's outer (copper) bounding box.
func (p Pin) BoundingBox() geom.Box {
	return geom.BoxFromCircle(p.Center, p.CopperDiam/2)
}

// Pad is a surface-mount element confined to one side of the board: a
// capsule between two endpoints.
type Pad struct {
	A, B      geom.Point
	Thickness geom.Coord
	Square    bool // square (vs. round) end caps
	Layer     int  // 0 = top/component side, 1 = bottom/solder side
	Net       string
}

// BoundingBox returns the pad's bounding box, including its half-
// thickness bloat on every side.
func (p Pad) BoundingBox() geom.Box {
	r := p.Thickness / 2
	b := geom.BoxFromPoint(p.A).Union(geom.BoxFromPoint(p.B))
	return b.Bloat(r)
}

// Via is a router-placed, pin-shaped connector between layer groups.
type Via struct {
	Center     geom.Point
	Diameter   geom.Coord
	HoleDiam   geom.Coord
	Keepaway   geom.Coord
	LayerGroup int // shadow placement is handled by the router, not here
	Net        string
}

// BoundingBox returns the via's outer bounding box.
func (v Via) BoundingBox() geom.Box {
	return geom.BoxFromCircle(v.Center, v.Diameter/2)
}

// Line is a copper trace segment.
type Line struct {
	A, B       geom.Point
	Thickness  geom.Coord
	LayerGroup int
	Net        string
}

// BoundingBox returns the line's bounding box including half-thickness
// bloat.
func (l Line) BoundingBox() geom.Box {
	r := l.Thickness / 2
	b := geom.BoxFromPoint(l.A).Union(geom.BoxFromPoint(l.B))
	return b.Bloat(r)
}

// IsOrthogonal reports whether the line runs purely horizontally or
// vertically, so no dicing is required before indexing it.
func (l Line) IsOrthogonal() bool {
	return l.A.X == l.B.X || l.A.Y == l.B.Y
}

// Arc is a circular arc segment: center, radii, start angle and sweep
// (degrees, CCW positive).
type Arc struct {
	Center             geom.Point
	RadiusX, RadiusY   geom.Coord
	StartAngle, Sweep  float64
	Thickness          geom.Coord
	LayerGroup         int
	Net                string
}

// BoundingBox conservatively returns the arc's full ellipse bounding box
// (ignoring start/sweep), bloated by half-thickness; this over-approximates
// but is always a safe bound for clearance/indexing purposes.
func (a Arc) BoundingBox() geom.Box {
	r := a.Thickness / 2
	return geom.BoxFromCircle(a.Center, max(a.RadiusX, a.RadiusY)).Bloat(r)
}

func max(a, b geom.Coord) geom.Coord {
	if a > b {
		return a
	}
	return b
}

// Polygon is a user-drawn copper pour or keep-out plane. Clipped is the
// cached result of subtracting every intruding object's clearance from
// Outline; it is nil until the clearance manager first builds it.
type Polygon struct {
	Outline    geom.Region
	LayerGroup int
	Net        string
	IsPlane    bool // large clearing polygon; gets thermal reliefs instead of full clearance
	Clipped    *geom.Region
}

// RouteStyle is the named trace-width/clearance/via tuple attached to
// each net.
type RouteStyle struct {
	Name      string
	Thick     geom.Coord
	ViaDiam   geom.Coord
	ViaHole   geom.Coord
	Keepaway  geom.Coord
}

// Bloat returns the style's per-object inflation: keepaway + ceil(thick/2).
func (s RouteStyle) Bloat() geom.Coord {
	return s.Keepaway + (s.Thick+1)/2
}

// DefaultRouteStyle is used when a net has no explicit style assigned.
var DefaultRouteStyle = RouteStyle{Name: "default", Thick: 1000, ViaDiam: 2000, ViaHole: 800, Keepaway: 500}
