// Package fastmath collects small numeric helpers: trig-free
// approximations and clamps used on hot paths (CVC angle ordering,
// annealer temperature clamps) where a full math.Atan2/math.Exp would
// be needlessly precise for an ordering or saturation decision.
package fastmath

import "math"

// AngleProxy returns a monotone proxy for the angle of vector (dx,dy),
// increasing with the true angle around the circle but computed without
// trigonometry: |dy|/(|dx|+|dy|) adjusted per quadrant. Two vectors
// compare correctly by this proxy wherever they would by atan2, which
// is all CVC junction ordering needs.
func AngleProxy(dx, dy float64) float64 {
	adx, ady := math.Abs(dx), math.Abs(dy)
	var base float64
	if adx+ady == 0 {
		return 0
	}
	ratio := ady / (adx + ady)
	switch {
	case dx >= 0 && dy >= 0:
		base = 0
	case dx < 0 && dy >= 0:
		base = 1
		ratio = 1 - ratio
	case dx < 0 && dy < 0:
		base = 2
	default:
		base = 3
		ratio = 1 - ratio
	}
	return base + ratio
}

// Clamp returns v clamped to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt clamps an int32 to [lo, hi].
func ClampInt(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
