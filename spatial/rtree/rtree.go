// Package rtree implements an R-tree spatial index of axis-aligned
// bounding boxes, used to hold one index per layer group for both the
// router's RouteBox model and the MTS free-space index.
//
// Node split uses a quadratic-split/choose-subtree shape: pick the
// child whose box needs least enlargement; split by the two
// farthest-apart seeds, then distribute the rest by least enlargement,
// with bulk loading grouping entries by their longest axis.
package rtree

import (
	"sort"

	"github.com/gopcb/pcbcore/geom"
)

const (
	maxEntries = 8
	minEntries = maxEntries / 2
)

// Item is anything that can report its own bounding box.
type Item interface {
	BoundingBox() geom.Box
}

type entry[T Item] struct {
	box   geom.Box
	child *node[T] // nil for leaf entries
	item  T
	leaf  bool
}

type node[T Item] struct {
	entries []entry[T]
	isLeaf  bool
	parent  *node[T]
}

func (n *node[T]) boundingBox() geom.Box {
	var b geom.Box
	for i, e := range n.entries {
		if i == 0 {
			b = e.box
		} else {
			b = b.Union(e.box)
		}
	}
	return b
}

// Tree is an R-tree of Item values.
type Tree[T Item] struct {
	root  *node[T]
	count int
}

// New returns an empty R-tree.
func New[T Item]() *Tree[T] {
	return &Tree[T]{root: &node[T]{isLeaf: true}}
}

// Len returns the number of items currently indexed.
func (t *Tree[T]) Len() int { return t.count }

// Insert adds item into the tree.
func (t *Tree[T]) Insert(item T) {
	e := entry[T]{box: item.BoundingBox(), item: item, leaf: true}
	leaf := t.chooseLeaf(t.root, e.box)
	leaf.entries = append(leaf.entries, e)
	t.count++
	t.adjustAfterInsert(leaf)
}

func (t *Tree[T]) chooseLeaf(n *node[T], box geom.Box) *node[T] {
	for !n.isLeaf {
		best := 0
		bestEnlargement := enlargement(n.entries[0].box, box)
		bestArea := n.entries[0].box.Area()
		for i := 1; i < len(n.entries); i++ {
			enl := enlargement(n.entries[i].box, box)
			area := n.entries[i].box.Area()
			if enl < bestEnlargement || (enl == bestEnlargement && area < bestArea) {
				best = i
				bestEnlargement = enl
				bestArea = area
			}
		}
		n = n.entries[best].child
	}
	return n
}

func enlargement(box, add geom.Box) int64 {
	return box.Union(add).Area() - box.Area()
}

func (t *Tree[T]) adjustAfterInsert(n *node[T]) {
	for {
		if len(n.entries) > maxEntries {
			n1, n2 := split(n)
			if n.parent == nil {
				newRoot := &node[T]{isLeaf: false}
				newRoot.entries = []entry[T]{
					{box: n1.boundingBox(), child: n1},
					{box: n2.boundingBox(), child: n2},
				}
				n1.parent = newRoot
				n2.parent = newRoot
				t.root = newRoot
				return
			}
			parent := n.parent
			replaceChild(parent, n, n1)
			n1.parent = parent
			parent.entries = append(parent.entries, entry[T]{box: n2.boundingBox(), child: n2})
			n2.parent = parent
			n = parent
			continue
		}
		if n.parent == nil {
			return
		}
		updateBox(n.parent, n)
		n = n.parent
	}
}

func replaceChild[T Item](parent *node[T], old, replacement *node[T]) {
	for i := range parent.entries {
		if parent.entries[i].child == old {
			parent.entries[i].child = replacement
			parent.entries[i].box = replacement.boundingBox()
			return
		}
	}
}

func updateBox[T Item](parent *node[T], child *node[T]) {
	for i := range parent.entries {
		if parent.entries[i].child == child {
			parent.entries[i].box = child.boundingBox()
			return
		}
	}
}

// split performs a quadratic split: pick the two entries that would
// waste the most area if grouped together as seeds, then distribute the
// rest by least enlargement, respecting minEntries on both sides.
func split[T Item](n *node[T]) (*node[T], *node[T]) {
	entries := n.entries
	s1, s2 := pickSeeds(entries)
	a := &node[T]{isLeaf: n.isLeaf}
	b := &node[T]{isLeaf: n.isLeaf}
	a.entries = append(a.entries, entries[s1])
	b.entries = append(b.entries, entries[s2])

	remaining := make([]entry[T], 0, len(entries)-2)
	for i, e := range entries {
		if i != s1 && i != s2 {
			remaining = append(remaining, e)
		}
	}

	aBox := a.entries[0].box
	bBox := b.entries[0].box
	for len(remaining) > 0 {
		if len(a.entries)+len(remaining) <= minEntries {
			a.entries = append(a.entries, remaining...)
			remaining = nil
			break
		}
		if len(b.entries)+len(remaining) <= minEntries {
			b.entries = append(b.entries, remaining...)
			remaining = nil
			break
		}
		bestIdx := 0
		bestDiff := enlargement(aBox, remaining[0].box) - enlargement(bBox, remaining[0].box)
		for i := 1; i < len(remaining); i++ {
			diff := enlargement(aBox, remaining[i].box) - enlargement(bBox, remaining[i].box)
			if abs64(diff) > abs64(bestDiff) {
				bestIdx = i
				bestDiff = diff
			}
		}
		e := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		if bestDiff < 0 {
			a.entries = append(a.entries, e)
			aBox = aBox.Union(e.box)
		} else {
			b.entries = append(b.entries, e)
			bBox = bBox.Union(e.box)
		}
	}
	if !n.isLeaf {
		for _, e := range a.entries {
			e.child.parent = a
		}
		for _, e := range b.entries {
			e.child.parent = b
		}
	}
	return a, b
}

func pickSeeds[T Item](entries []entry[T]) (int, int) {
	bestI, bestJ := 0, 1
	var worst int64 = -1
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			combined := entries[i].box.Union(entries[j].box)
			waste := combined.Area() - entries[i].box.Area() - entries[j].box.Area()
			if waste > worst {
				worst = waste
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Action is the tri-state result a search callback returns, replacing
// the source R-tree's longjmp-based early-termination protocol with an
// explicit control value (see Design Notes).
type Action int

const (
	// Continue visits siblings/children normally.
	Continue Action = iota
	// Prune skips the remainder of the current subtree without
	// affecting sibling subtrees.
	Prune
	// Stop halts the entire search immediately.
	Stop
)

// RegionFunc prunes subtrees top-down by their aggregate bounding box.
type RegionFunc func(box geom.Box) Action

// LeafFunc filters individual items; returning Stop halts the whole
// search after processing this item.
type LeafFunc[T Item] func(item T, box geom.Box) Action

// IntersectsRegion returns a RegionFunc that descends only into boxes
// overlapping query.
func IntersectsRegion(query geom.Box) RegionFunc {
	return func(box geom.Box) Action {
		if box.Intersects(query) {
			return Continue
		}
		return Prune
	}
}

// IntersectsLeaf returns a LeafFunc that accepts items overlapping
// query, continuing the search after each.
func IntersectsLeaf[T Item](query geom.Box) LeafFunc[T] {
	return func(item T, box geom.Box) Action {
		if box.Intersects(query) {
			return Continue
		}
		return Prune
	}
}

// Search walks the tree, calling regionFn to decide whether to descend
// into each subtree and leafFn for every leaf entry reached. It returns
// every item for which leafFn returned Continue or Stop (Prune rejects
// the item), stopping early if either callback returns Stop.
func (t *Tree[T]) Search(regionFn RegionFunc, leafFn LeafFunc[T]) []T {
	var out []T
	t.searchNode(t.root, regionFn, leafFn, &out)
	return out
}

func (t *Tree[T]) searchNode(n *node[T], regionFn RegionFunc, leafFn LeafFunc[T], out *[]T) bool {
	if n.isLeaf {
		for _, e := range n.entries {
			switch leafFn(e.item, e.box) {
			case Continue:
				*out = append(*out, e.item)
			case Prune:
				// rejected, keep scanning siblings
			case Stop:
				*out = append(*out, e.item)
				return true
			}
		}
		return false
	}
	for _, e := range n.entries {
		switch regionFn(e.box) {
		case Prune:
			continue
		case Stop:
			return true
		case Continue:
			if t.searchNode(e.child, regionFn, leafFn, out) {
				return true
			}
		}
	}
	return false
}

// BulkLoad builds a Tree from items in a single pass instead of one
// Insert per item, for the router's initial data-preparation step
// (every pin/pad/via/line/arc/polygon of a layer group is known
// up front before the first query). Entries are recursively bisected
// along the longest axis of their combined bounding box until each
// chunk holds at most maxEntries, then the resulting leaves are grouped
// bottom-up into parent levels of the same fan-out until a single root
// remains — the chunk-by-longest-axis idea is grounded in
// recast/chunkytrimesh.go's subdivide, adapted from a flat leaf-only
// triangle-chunk array into a proper multi-level tree so the usual
// Search/Delete machinery applies unchanged.
func BulkLoad[T Item](items []T) *Tree[T] {
	if len(items) == 0 {
		return New[T]()
	}
	entries := make([]entry[T], len(items))
	for i, it := range items {
		entries[i] = entry[T]{box: it.BoundingBox(), item: it, leaf: true}
	}
	chunks := subdivideChunks(entries, maxEntries)
	level := make([]*node[T], len(chunks))
	for i, c := range chunks {
		level[i] = &node[T]{isLeaf: true, entries: c}
	}
	for len(level) > 1 {
		level = groupLevel(level)
	}
	return &Tree[T]{root: level[0], count: len(items)}
}

// subdivideChunks recursively splits entries in half along the longer
// axis of their combined bounding box (by entry-center order) until
// every chunk's length is at most capacity.
func subdivideChunks[T Item](entries []entry[T], capacity int) [][]entry[T] {
	if len(entries) <= capacity {
		return [][]entry[T]{entries}
	}
	box := combinedBox(entries)
	if box.Width() >= box.Height() {
		sort.Slice(entries, func(i, j int) bool {
			return centerX(entries[i].box) < centerX(entries[j].box)
		})
	} else {
		sort.Slice(entries, func(i, j int) bool {
			return centerY(entries[i].box) < centerY(entries[j].box)
		})
	}
	mid := len(entries) / 2
	left := subdivideChunks(entries[:mid], capacity)
	right := subdivideChunks(entries[mid:], capacity)
	return append(left, right...)
}

// groupLevel wraps a level of sibling nodes into parent nodes of at most
// maxEntries children each, preserving the level's existing order (which
// subdivideChunks already arranged with spatial locality).
func groupLevel[T Item](level []*node[T]) []*node[T] {
	var out []*node[T]
	for i := 0; i < len(level); i += maxEntries {
		end := i + maxEntries
		if end > len(level) {
			end = len(level)
		}
		group := level[i:end]
		parent := &node[T]{isLeaf: false, entries: make([]entry[T], len(group))}
		for j, c := range group {
			parent.entries[j] = entry[T]{box: c.boundingBox(), child: c}
			c.parent = parent
		}
		out = append(out, parent)
	}
	return out
}

func combinedBox[T Item](entries []entry[T]) geom.Box {
	b := entries[0].box
	for _, e := range entries[1:] {
		b = b.Union(e.box)
	}
	return b
}

func centerX(b geom.Box) int64 { return int64(b.X1) + int64(b.X2) }
func centerY(b geom.Box) int64 { return int64(b.Y1) + int64(b.Y2) }

// Any reports whether at least one indexed item intersects query,
// without building a result slice (early-exit search).
func (t *Tree[T]) Any(query geom.Box) bool {
	found := false
	t.searchNode(t.root, IntersectsRegion(query), func(item T, box geom.Box) Action {
		if box.Intersects(query) {
			found = true
			return Stop
		}
		return Prune
	}, &[]T{})
	return found
}

// SearchBox returns every item whose box intersects query.
func (t *Tree[T]) SearchBox(query geom.Box) []T {
	return t.Search(IntersectsRegion(query), IntersectsLeaf[T](query))
}

// Delete removes the first item for which match returns true whose
// bounding box intersects approxBox (a tight hint, typically the item's
// own last-known box), reinserting any orphaned siblings of underfull
// nodes to restore the minimum fill invariant.
func (t *Tree[T]) Delete(approxBox geom.Box, match func(T) bool) bool {
	leaf, idx := t.findLeaf(t.root, approxBox, match)
	if leaf == nil {
		return false
	}
	leaf.entries = append(leaf.entries[:idx], leaf.entries[idx+1:]...)
	t.count--
	t.condenseTree(leaf)
	if !t.root.isLeaf && len(t.root.entries) == 1 {
		t.root = t.root.entries[0].child
		t.root.parent = nil
	}
	return true
}

func (t *Tree[T]) findLeaf(n *node[T], box geom.Box, match func(T) bool) (*node[T], int) {
	if n.isLeaf {
		for i, e := range n.entries {
			if e.box.Intersects(box) && match(e.item) {
				return n, i
			}
		}
		return nil, 0
	}
	for _, e := range n.entries {
		if e.box.Intersects(box) {
			if leaf, idx := t.findLeaf(e.child, box, match); leaf != nil {
				return leaf, idx
			}
		}
	}
	return nil, 0
}

func (t *Tree[T]) condenseTree(n *node[T]) {
	var orphanLeaves []entry[T]
	for n.parent != nil {
		parent := n.parent
		if len(n.entries) < minEntries && n != t.root {
			removeChild(parent, n)
			orphanLeaves = append(orphanLeaves, collectLeaves(n)...)
		} else {
			updateBox(parent, n)
		}
		n = parent
	}
	for _, e := range orphanLeaves {
		leaf := t.chooseLeaf(t.root, e.box)
		leaf.entries = append(leaf.entries, e)
		t.count++ // re-balances the decrement Delete already applied? see note below
		t.adjustAfterInsert(leaf)
	}
	// Delete() already decremented count once per removed item; the
	// reinsertion loop above restores it for every orphan so the net
	// count reflects only the single deleted item.
	t.count -= len(orphanLeaves)
}

func removeChild[T Item](parent *node[T], child *node[T]) {
	for i := range parent.entries {
		if parent.entries[i].child == child {
			parent.entries = append(parent.entries[:i], parent.entries[i+1:]...)
			return
		}
	}
}

func collectLeaves[T Item](n *node[T]) []entry[T] {
	if n.isLeaf {
		out := make([]entry[T], len(n.entries))
		copy(out, n.entries)
		return out
	}
	var out []entry[T]
	for _, e := range n.entries {
		out = append(out, collectLeaves(e.child)...)
	}
	return out
}
