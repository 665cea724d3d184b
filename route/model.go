package route

import (
	"github.com/gopcb/pcbcore/container/unionfind"
	"github.com/gopcb/pcbcore/geom"
	"github.com/gopcb/pcbcore/spatial/rtree"
)

// Model owns every Box in the design: one R-tree per layer group plus
// the subnet-connectivity partitions spec §3.4 describes as intrusive
// circular lists.
type Model struct {
	boxes []*Box
	trees map[int]*rtree.Tree[*Box]

	// subnet tracks same_subnet: boxes merged as the router completes
	// connections this pass.
	subnet *unionfind.UnionFind
	// originalSubnet is a snapshot of subnet taken at the start of the
	// current pass (original_subnet: "reset between passes").
	originalSubnet *unionfind.UnionFind

	// netRep and netOrder implement different_net's "one representative
	// per distinct net" without an intrusive ring: a map plus the
	// insertion order for deterministic iteration.
	netRep   map[string]*Box
	netOrder []string
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{
		trees:          make(map[int]*rtree.Tree[*Box]),
		subnet:         unionfind.New(0),
		originalSubnet: unionfind.New(0),
		netRep:         make(map[string]*Box),
	}
}

// Add registers b with the model: assigns its stable index, grows the
// subnet partitions, records it as its net's representative if it is
// the first box seen on that net, and inserts it into its layer
// group's R-tree.
func (m *Model) Add(b *Box) int {
	b.id = len(m.boxes)
	m.boxes = append(m.boxes, b)
	m.subnet.Grow(len(m.boxes))
	m.originalSubnet.Grow(len(m.boxes))
	if b.Net != "" {
		if _, ok := m.netRep[b.Net]; !ok {
			m.netRep[b.Net] = b
			m.netOrder = append(m.netOrder, b.Net)
		}
	}
	m.treeFor(b.LayerGroup).Insert(b)
	return b.id
}

// AddBulk registers every Box in boxes under layerGroup at once via
// rtree.BulkLoad, for initial data-preparation (spec §4.5.1) where the
// full fixed-obstacle set for a layer group is known up front: it does
// the same per-box bookkeeping Add does (stable index, subnet-partition
// growth, net representative) but builds that layer group's R-tree in
// one bulk pass instead of len(boxes) individual inserts. It assumes
// layerGroup's tree is still empty; call it once per layer group before
// any Add targeting the same group.
func (m *Model) AddBulk(layerGroup int, boxes []*Box) {
	for _, b := range boxes {
		b.LayerGroup = layerGroup
		b.id = len(m.boxes)
		m.boxes = append(m.boxes, b)
		m.subnet.Grow(len(m.boxes))
		m.originalSubnet.Grow(len(m.boxes))
		if b.Net != "" {
			if _, ok := m.netRep[b.Net]; !ok {
				m.netRep[b.Net] = b
				m.netOrder = append(m.netOrder, b.Net)
			}
		}
	}
	m.trees[layerGroup] = rtree.BulkLoad(boxes)
}

// Remove drops b from its layer group's R-tree. It does not touch
// subnet membership or net bookkeeping, matching the source's "fixed
// boxes live as long as the route data; expansion areas are freed on
// last release" lifecycle split.
func (m *Model) Remove(b *Box) bool {
	t, ok := m.trees[b.LayerGroup]
	if !ok {
		return false
	}
	return t.Delete(b.Outer, func(other *Box) bool { return other == b })
}

func (m *Model) treeFor(layerGroup int) *rtree.Tree[*Box] {
	t, ok := m.trees[layerGroup]
	if !ok {
		t = rtree.New[*Box]()
		m.trees[layerGroup] = t
	}
	return t
}

// SearchLayer returns every Box in layerGroup whose outer box
// intersects query.
func (m *Model) SearchLayer(layerGroup int, query geom.Box) []*Box {
	t, ok := m.trees[layerGroup]
	if !ok {
		return nil
	}
	return t.SearchBox(query)
}

// AnyBlocker reports whether any Box in layerGroup intersecting query
// is accepted by blocks (e.g. excludes nobloat/same-net boxes).
func (m *Model) AnyBlocker(layerGroup int, query geom.Box, blocks func(*Box) bool) bool {
	t, ok := m.trees[layerGroup]
	if !ok {
		return false
	}
	found := false
	t.Search(rtree.IntersectsRegion(query), func(item *Box, box geom.Box) rtree.Action {
		if box.Intersects(query) && blocks(item) {
			found = true
			return rtree.Stop
		}
		return rtree.Prune
	})
	return found
}

// ConnectSubnet merges a and b's same_subnet sets; called when a newly
// emitted trace or via connects them.
func (m *Model) ConnectSubnet(a, b *Box) { m.subnet.Union(a.id, b.id) }

// SameSubnet reports whether a and b are already connected this pass.
func (m *Model) SameSubnet(a, b *Box) bool { return m.subnet.Connected(a.id, b.id) }

// OriginalSameSubnet reports whether a and b were already connected at
// the start of the current pass, before any routing done this pass.
func (m *Model) OriginalSameSubnet(a, b *Box) bool {
	return m.originalSubnet.Connected(a.id, b.id)
}

// BeginPass snapshots the current subnet grouping into original_subnet
// (spec §3.4: "Initial subnet grouping, reset between passes").
func (m *Model) BeginPass() {
	m.originalSubnet = m.subnet.Clone()
}

// DistinctNets returns every net name seen, in first-registration
// order (the different_net representative ring, without the ring).
func (m *Model) DistinctNets() []string {
	out := make([]string, len(m.netOrder))
	copy(out, m.netOrder)
	return out
}

// NetRepresentative returns the first Box registered for net, or nil.
func (m *Model) NetRepresentative(net string) *Box { return m.netRep[net] }

// Boxes returns every Box registered with the model, in registration
// order.
func (m *Model) Boxes() []*Box {
	out := make([]*Box, len(m.boxes))
	copy(out, m.boxes)
	return out
}

// SameNet returns every registered Box sharing net.
func (m *Model) SameNet(net string) []*Box {
	var out []*Box
	for _, b := range m.boxes {
		if b.Net == net {
			out = append(out, b)
		}
	}
	return out
}
