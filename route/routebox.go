// Package route unifies every board and router-internal object into a
// single RouteBox record indexed per layer group, per spec §3.4: pins,
// pads, vias, lines, planes and transient expansion areas all become
// Box values stored in a Model's per-layer R-trees.
//
// The source router links same-net/same-subnet/original-subnet/
// different-net relationships with four intrusive circular lists
// spliced directly into each object; this package replaces all four
// with disjoint-set-union structures over each Box's stable index
// (container/unionfind), per the Design Notes redesign guidance. The
// same keep-HOW-replace-WHAT move turns the source's reference-counted
// "homeless" expansion areas into a plain refs counter backed by Go's
// own GC for the underlying memory, freeing only the tree/MTS
// registration explicitly.
package route

import "github.com/gopcb/pcbcore/geom"

// Type tags what a Box represents.
type Type int

const (
	TypePad Type = iota
	TypePin
	TypeVia
	TypeViaShadow
	TypeLine
	TypeOther
	TypeExpansionArea
	TypePlane
	TypeThermal
)

// Flags are the per-box bits of spec §3.4.
type Flags uint32

const (
	FlagFixed Flags = 1 << iota
	FlagSource
	FlagTarget
	FlagNoBloat
	FlagCircular
	FlagHomeless
	FlagIsOdd
	FlagTouched
	FlagSubnetProcessed
	FlagIsVia
	FlagBLtoUR
	FlagClearPoly
	FlagIsBad
	FlagIsThermal
)

// Box is the router's unified record for every object on a layer
// group: its bloated outer box, true inner extent ("sbox"), type,
// owning net, and a parent pointer (to the board element it was built
// from, or for an expansion area, the Box it grew out of).
type Box struct {
	Outer      geom.Box
	Inner      geom.Box
	LayerGroup int
	Type       Type
	Net        string
	Parent     *Box
	Flags      Flags

	refs int // homeless expansion areas: live while refs > 0
	id   int // stable index into the owning Model's union-find partitions
}

// BoundingBox implements rtree.Item using the bloated outer box.
func (b *Box) BoundingBox() geom.Box { return b.Outer }

// Has reports whether every bit in f is set.
func (b *Box) Has(f Flags) bool { return b.Flags&f == f }

// Set raises the given flag bits.
func (b *Box) Set(f Flags) { b.Flags |= f }

// Clear lowers the given flag bits.
func (b *Box) Clear(f Flags) { b.Flags &^= f }

// Retain increments a homeless expansion area's reference count. Fixed
// boxes ignore this; only TypeExpansionArea boxes carrying FlagHomeless
// are meant to be retained/released.
func (b *Box) Retain() { b.refs++ }

// Release decrements the reference count and reports whether it
// reached zero (the caller should then drop the box from any heap
// entries or back-pointers still holding it).
func (b *Box) Release() bool {
	if b.refs > 0 {
		b.refs--
	}
	return b.refs == 0
}

// Refs returns the current reference count.
func (b *Box) Refs() int { return b.refs }
