// Package geom defines the integer geometric primitives shared by every
// other package in this module: points, boxes and oriented contours.
//
// All coordinates are 32-bit signed integers in a unit of roughly
// 1/100000 inch, matching the board's native resolution. A Box is the
// half-open rectangle [X1, X2) x [Y1, Y2).
package geom


// Coord is a single axis coordinate.
type Coord = int32

// Point is a location in board space.
type Point struct {
	X, Y Coord
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Box is the half-open axis-aligned rectangle [X1,X2) x [Y1,Y2).
type Box struct {
	X1, Y1, X2, Y2 Coord
}

// NewBox returns a well-formed Box, swapping coordinates as needed so
// that X1<=X2 and Y1<=Y2.
func NewBox(x1, y1, x2, y2 Coord) Box {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Box{x1, y1, x2, y2}
}

// BoxFromPoint returns the degenerate zero-area box at p.
func BoxFromPoint(p Point) Box { return Box{p.X, p.Y, p.X, p.Y} }

// BoxFromCircle returns the bounding box of a circle of the given radius
// centered at c.
func BoxFromCircle(c Point, radius Coord) Box {
	return Box{c.X - radius, c.Y - radius, c.X + radius, c.Y + radius}
}

// Valid reports whether the box is well-formed (X1<=X2 and Y1<=Y2).
func (b Box) Valid() bool { return b.X1 <= b.X2 && b.Y1 <= b.Y2 }

// Empty reports whether the box has zero area.
func (b Box) Empty() bool { return b.X1 >= b.X2 || b.Y1 >= b.Y2 }

// Width returns X2-X1.
func (b Box) Width() Coord { return b.X2 - b.X1 }

// Height returns Y2-Y1.
func (b Box) Height() Coord { return b.Y2 - b.Y1 }

// Center returns the box's center point (truncated towards zero on odd
// dimensions).
func (b Box) Center() Point {
	return Point{(b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2}
}

// Area returns the box's area as an int64 to avoid overflow on large
// boards.
func (b Box) Area() int64 {
	if b.Empty() {
		return 0
	}
	return int64(b.Width()) * int64(b.Height())
}

// HalfPerimeter returns X2-X1 + Y2-Y1, used by the autoplacer's wirelength
// estimator.
func (b Box) HalfPerimeter() int64 {
	return int64(b.Width()) + int64(b.Height())
}

// Bloat returns b expanded by d on every side. d may be negative to
// shrink; the result is not re-validated.
func (b Box) Bloat(d Coord) Box {
	return Box{b.X1 - d, b.Y1 - d, b.X2 + d, b.Y2 + d}
}

// Intersects reports whether a and b share at least one point, treating
// both as half-open rectangles.
func (a Box) Intersects(b Box) bool {
	return a.X1 < b.X2 && b.X1 < a.X2 && a.Y1 < b.Y2 && b.Y1 < a.Y2
}

// Contains reports whether b lies entirely within a.
func (a Box) Contains(b Box) bool {
	return a.X1 <= b.X1 && b.X2 <= a.X2 && a.Y1 <= b.Y1 && b.Y2 <= a.Y2
}

// ContainsPoint reports whether p lies within a (half-open).
func (a Box) ContainsPoint(p Point) bool {
	return a.X1 <= p.X && p.X < a.X2 && a.Y1 <= p.Y && p.Y < a.Y2
}

// Union returns the smallest box containing both a and b.
func (a Box) Union(b Box) Box {
	return Box{
		min(a.X1, b.X1), min(a.Y1, b.Y1),
		max(a.X2, b.X2), max(a.Y2, b.Y2),
	}
}

// Intersection returns the overlapping region of a and b. The result is
// empty (and Valid() may be false) if they do not overlap.
func (a Box) Intersection(b Box) Box {
	return Box{max(a.X1, b.X1), max(a.Y1, b.Y1), min(a.X2, b.X2), min(a.Y2, b.Y2)}
}

// IntersectionArea returns the area of the overlap between a and b, or 0
// if they do not overlap.
func (a Box) IntersectionArea(b Box) int64 {
	r := a.Intersection(b)
	if r.Empty() {
		return 0
	}
	return r.Area()
}

// ManhattanDistance returns |dx|+|dy| between the centers of a and b,
// used as the A* heuristic base before layer weighting.
func (a Point) ManhattanDistance(b Point) int64 {
	return int64(abs(a.X-b.X)) + int64(abs(a.Y-b.Y))
}

func min(a, b Coord) Coord {
	if a < b {
		return a
	}
	return b
}

func max(a, b Coord) Coord {
	if a > b {
		return a
	}
	return b
}

func abs(a Coord) Coord {
	if a < 0 {
		return -a
	}
	return a
}
