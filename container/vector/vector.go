// Package vector implements a growable ordered array used as a LIFO/FIFO
// work list by the router's expansion engine and the polygon engine's
// restart queues.
package vector

import "github.com/gopcb/pcbcore/internal/assert"

// Vector is a contiguous growable buffer of T. The zero value is an
// empty, ready-to-use vector.
type Vector[T any] struct {
	elems []T
}

// New returns an empty Vector with the given initial capacity hint.
func New[T any](capHint int) *Vector[T] {
	return &Vector[T]{elems: make([]T, 0, capHint)}
}

// Len returns the number of elements currently stored.
func (v *Vector[T]) Len() int { return len(v.elems) }

// Append adds x to the end of the vector.
func (v *Vector[T]) Append(x T) {
	v.elems = append(v.elems, x)
}

// AppendMany adds every element of xs to the end of the vector, in order.
func (v *Vector[T]) AppendMany(xs []T) {
	v.elems = append(v.elems, xs...)
}

// InsertMany inserts xs starting at index i, shifting existing elements
// at and after i to the right.
func (v *Vector[T]) InsertMany(i int, xs []T) {
	if i < 0 || i > len(v.elems) {
		panic("vector: insert index out of range")
	}
	v.elems = append(v.elems[:i:i], append(append([]T{}, xs...), v.elems[i:]...)...)
}

// At returns the element at index i.
func (v *Vector[T]) At(i int) T {
	assert.True(i >= 0 && i < len(v.elems), "vector: At index %d out of range [0,%d)", i, len(v.elems))
	return v.elems[i]
}

// Set replaces the element at index i.
func (v *Vector[T]) Set(i int, x T) {
	assert.True(i >= 0 && i < len(v.elems), "vector: Set index %d out of range [0,%d)", i, len(v.elems))
	v.elems[i] = x
}

// RemoveLast removes and returns the last element. It panics if the
// vector is empty.
func (v *Vector[T]) RemoveLast() T {
	n := len(v.elems)
	assert.True(n > 0, "vector: RemoveLast on an empty vector")
	x := v.elems[n-1]
	v.elems = v.elems[:n-1]
	return x
}

// RemoveAt removes the element at index i, preserving order of the
// remaining elements (O(n) shift, matching the source vector_t's
// memmove-based remove).
func (v *Vector[T]) RemoveAt(i int) {
	v.elems = append(v.elems[:i], v.elems[i+1:]...)
}

// Replace overwrites count elements starting at i with xs.
func (v *Vector[T]) Replace(i, count int, xs []T) {
	tail := append([]T{}, v.elems[i+count:]...)
	v.elems = append(v.elems[:i:i], xs...)
	v.elems = append(v.elems, tail...)
}

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool { return len(v.elems) == 0 }

// Clear removes all elements without releasing the backing array.
func (v *Vector[T]) Clear() { v.elems = v.elems[:0] }

// Slice returns the vector's contents as a plain slice. The returned
// slice aliases the vector's storage; callers must not retain it across
// further mutation.
func (v *Vector[T]) Slice() []T { return v.elems }

// PushBack is an alias for Append, used where the vector plays the role
// of a FIFO work queue alongside PopFront.
func (v *Vector[T]) PushBack(x T) { v.Append(x) }

// PopFront removes and returns the first element (FIFO use). O(n); the
// router's work lists are small enough that this does not matter.
func (v *Vector[T]) PopFront() T {
	x := v.elems[0]
	v.elems = v.elems[1:]
	return x
}
