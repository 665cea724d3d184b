// Package heap implements the 1-indexed-in-spirit binary min-heap used
// by the router's A*-like expansion search and the polygon engine's
// hole-to-outer matching. It follows the usual bubble-up/trickle-down
// shape of a priority node queue, generalized to arbitrary payloads
// keyed by a float64 cost, with a destructor hook run on bulk free.
package heap

// Entry is one (cost, data) pair stored in the heap.
type Entry[T any] struct {
	Cost float64
	Data T

	index int // position in the backing slice, kept in sync for Replace/Remove
}

// Heap is a min-priority queue ordered by Entry.Cost. The zero value is
// an empty, ready-to-use heap.
type Heap[T any] struct {
	entries []*Entry[T]
}

// New returns an empty heap with the given initial capacity hint.
func New[T any](capHint int) *Heap[T] {
	return &Heap[T]{entries: make([]*Entry[T], 0, capHint)}
}

// Len returns the number of entries in the heap.
func (h *Heap[T]) Len() int { return len(h.entries) }

// Empty reports whether the heap holds no entries.
func (h *Heap[T]) Empty() bool { return len(h.entries) == 0 }

// Insert adds data with the given cost and returns the Entry handle, which
// remains valid (and can be passed to Replace) until the entry is popped
// or the heap is freed.
func (h *Heap[T]) Insert(cost float64, data T) *Entry[T] {
	e := &Entry[T]{Cost: cost, Data: data, index: len(h.entries)}
	h.entries = append(h.entries, e)
	h.bubbleUp(e.index)
	return e
}

// Min returns the lowest-cost entry without removing it. It panics if the
// heap is empty.
func (h *Heap[T]) Min() *Entry[T] { return h.entries[0] }

// ExtractMin removes and returns the lowest-cost entry. It panics if the
// heap is empty.
func (h *Heap[T]) ExtractMin() *Entry[T] {
	top := h.entries[0]
	n := len(h.entries)
	last := h.entries[n-1]
	h.entries = h.entries[:n-1]
	top.index = -1
	if n > 1 {
		last.index = 0
		h.entries[0] = last
		h.trickleDown(0)
	}
	return top
}

// Replace lowers (or raises) e's cost in place and restores heap order.
// It is used to tighten an edge's priority once a cheaper path to its
// cost-point is found, without a full remove+insert.
func (h *Heap[T]) Replace(e *Entry[T], newCost float64) {
	old := e.Cost
	e.Cost = newCost
	if e.index < 0 {
		return
	}
	if newCost < old {
		h.bubbleUp(e.index)
	} else {
		h.trickleDown(e.index)
	}
}

// Free discards every entry, invoking destroy on each payload first. This
// mirrors the source heap's bulk-free with a per-entry destructor,
// adapted here so the router's arena-backed expansion areas can release
// their reference count when the search arena is torn down.
func (h *Heap[T]) Free(destroy func(T)) {
	if destroy != nil {
		for _, e := range h.entries {
			destroy(e.Data)
		}
	}
	h.entries = h.entries[:0]
}

func (h *Heap[T]) bubbleUp(i int) {
	e := h.entries[i]
	for i > 0 {
		parent := (i - 1) / 2
		if h.entries[parent].Cost <= e.Cost {
			break
		}
		h.entries[i] = h.entries[parent]
		h.entries[i].index = i
		i = parent
	}
	h.entries[i] = e
	e.index = i
}

func (h *Heap[T]) trickleDown(i int) {
	e := h.entries[i]
	n := len(h.entries)
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if child+1 < n && h.entries[child+1].Cost < h.entries[child].Cost {
			child++
		}
		if h.entries[child].Cost >= e.Cost {
			break
		}
		h.entries[i] = h.entries[child]
		h.entries[i].index = i
		i = child
	}
	h.entries[i] = e
	e.index = i
}
