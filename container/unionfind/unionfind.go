// Package unionfind implements a disjoint-set-union structure over
// stable integer indices. route.Model uses it in place of intrusive
// same-subnet/original-subnet/different-net circular lists:
// connectivity merges become Union calls and membership tests become
// Find comparisons instead of splicing and walking linked rings.
package unionfind

// UnionFind is a standard union-by-rank, path-compressed disjoint-set
// structure indexed by small dense integers (a RouteBox's stable index
// in its owning Model).
type UnionFind struct {
	parent []int
	rank   []int
}

// New returns a UnionFind with n singleton sets {0}, {1}, ..., {n-1}.
func New(n int) *UnionFind {
	u := &UnionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

// Grow extends the structure with additional singleton sets so indices
// up to n-1 are valid, leaving existing sets untouched.
func (u *UnionFind) Grow(n int) {
	for len(u.parent) < n {
		u.parent = append(u.parent, len(u.parent))
		u.rank = append(u.rank, 0)
	}
}

// Len returns the number of elements the structure currently covers.
func (u *UnionFind) Len() int { return len(u.parent) }

// Find returns the representative of x's set, compressing the path
// traversed.
func (u *UnionFind) Find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// Union merges the sets containing a and b.
func (u *UnionFind) Union(a, b int) {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

// Connected reports whether a and b are in the same set.
func (u *UnionFind) Connected(a, b int) bool { return u.Find(a) == u.Find(b) }

// Reset restores every element to its own singleton set without
// reallocating, used between passes to rebuild original_subnet
// grouping from scratch.
func (u *UnionFind) Reset() {
	for i := range u.parent {
		u.parent[i] = i
		u.rank[i] = 0
	}
}

// Clone returns an independent copy of the current partition, used to
// snapshot same_subnet into original_subnet at the start of a pass.
func (u *UnionFind) Clone() *UnionFind {
	c := &UnionFind{parent: make([]int, len(u.parent)), rank: make([]int, len(u.rank))}
	copy(c.parent, u.parent)
	copy(c.rank, u.rank)
	return c
}
