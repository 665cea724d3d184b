package geom

// Orientation distinguishes an outer boundary from a hole.
type Orientation int

const (
	// CCW is the orientation of outer contours (counter-clockwise).
	CCW Orientation = iota
	// CW is the orientation of hole contours (clockwise).
	CW
)

// Contour is a closed sequence of vertices with an orientation flag. The
// last vertex is implicitly connected back to the first; no vertex is
// repeated.
type Contour struct {
	Points []Point
	Orient Orientation
}

// BoundingBox returns the smallest Box enclosing every vertex of c.
func (c Contour) BoundingBox() Box {
	if len(c.Points) == 0 {
		return Box{}
	}
	b := BoxFromPoint(c.Points[0])
	for _, p := range c.Points[1:] {
		b = b.Union(BoxFromPoint(p))
	}
	return b
}

// SignedArea2 returns twice the signed area of c (shoelace formula).
// Positive for CCW contours, negative for CW, under the usual
// math-convention (Y increasing upward); callers care only about sign
// and relative magnitude, not the convention.
func (c Contour) SignedArea2() int64 {
	n := len(c.Points)
	if n < 3 {
		return 0
	}
	var area int64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += int64(c.Points[i].X)*int64(c.Points[j].Y) - int64(c.Points[j].X)*int64(c.Points[i].Y)
	}
	return area
}

// Area returns the unsigned area enclosed by c.
func (c Contour) Area() int64 {
	a := c.SignedArea2()
	if a < 0 {
		a = -a
	}
	return a / 2
}

// Reversed returns c with its vertex order (and therefore orientation)
// flipped.
func (c Contour) Reversed() Contour {
	n := len(c.Points)
	pts := make([]Point, n)
	for i, p := range c.Points {
		pts[n-1-i] = p
	}
	o := CCW
	if c.Orient == CCW {
		o = CW
	}
	return Contour{Points: pts, Orient: o}
}

// ContainsPoint reports whether p lies strictly inside c using the
// standard ray-casting parity test. Degenerate (on-boundary) results are
// unspecified, matching the source engine's treatment of boundary cases
// as a caller concern.
func (c Contour) ContainsPoint(p Point) bool {
	inside := false
	n := len(c.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := c.Points[i], c.Points[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xint := int64(pj.X-pi.X)*int64(p.Y-pi.Y)/int64(pj.Y-pi.Y) + int64(pi.X)
			if int64(p.X) < xint {
				inside = !inside
			}
		}
	}
	return inside
}

// Piece is an outer contour plus zero or more holes strictly contained
// within it. Holes do not overlap one another.
type Piece struct {
	Outer Contour
	Holes []Contour
}

// BoundingBox returns the bounding box of the piece's outer contour.
func (p Piece) BoundingBox() Box { return p.Outer.BoundingBox() }

// ContainsPoint reports whether p lies inside the outer contour and
// outside every hole.
func (pc Piece) ContainsPoint(p Point) bool {
	if !pc.Outer.ContainsPoint(p) {
		return false
	}
	for _, h := range pc.Holes {
		if h.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// Region is a planar region: a set of disjoint pieces (outer contour +
// holes). An empty Region represents the empty set.
type Region struct {
	Pieces []Piece
}

// BoundingBox returns the union of every piece's bounding box.
func (r Region) BoundingBox() Box {
	var b Box
	for i, pc := range r.Pieces {
		if i == 0 {
			b = pc.BoundingBox()
		} else {
			b = b.Union(pc.BoundingBox())
		}
	}
	return b
}

// Empty reports whether the region has no pieces.
func (r Region) Empty() bool { return len(r.Pieces) == 0 }

// Area returns the total area of the region (outer areas minus hole
// areas).
func (r Region) Area() int64 {
	var total int64
	for _, pc := range r.Pieces {
		total += pc.Outer.Area()
		for _, h := range pc.Holes {
			total -= h.Area()
		}
	}
	return total
}

// Clone deep-copies the region so mutation of the copy never aliases the
// original's backing slices.
func (r Region) Clone() Region {
	out := Region{Pieces: make([]Piece, len(r.Pieces))}
	for i, pc := range r.Pieces {
		np := Piece{Outer: cloneContour(pc.Outer)}
		if len(pc.Holes) > 0 {
			np.Holes = make([]Contour, len(pc.Holes))
			for j, h := range pc.Holes {
				np.Holes[j] = cloneContour(h)
			}
		}
		out.Pieces[i] = np
	}
	return out
}

func cloneContour(c Contour) Contour {
	pts := make([]Point, len(c.Points))
	copy(pts, c.Points)
	return Contour{Points: pts, Orient: c.Orient}
}

// RectContour returns the single CCW rectangular contour for b.
func RectContour(b Box) Contour {
	return Contour{
		Points: []Point{
			{b.X1, b.Y1},
			{b.X2, b.Y1},
			{b.X2, b.Y2},
			{b.X1, b.Y2},
		},
		Orient: CCW,
	}
}

// ContainsPoint reports whether p lies inside any piece of r.
func (r Region) ContainsPoint(p Point) bool {
	for _, pc := range r.Pieces {
		if pc.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// RectRegion returns the single-piece region covering b.
func RectRegion(b Box) Region {
	if b.Empty() {
		return Region{}
	}
	return Region{Pieces: []Piece{{Outer: RectContour(b)}}}
}
