// Package seq provides the growth-bounded dynamic array used throughout the
// netlist builder. Capacity follows a fixed policy: small arrays round up to
// the next power of two (minimum 4), large arrays (above 128 elements) grow
// linearly in blocks of 128. Keeping the policy explicit and observable makes
// the allocation behavior of a large parse predictable.
package seq

import "fmt"

const (
	// minimumSize is the smallest capacity ever allocated. Must be a power
	// of two.
	minimumSize = 4

	// upperGrowthBound is the element count past which growth switches from
	// doubling to linear blocks. Must be a power of two.
	upperGrowthBound = 128
)

// RequiredCap returns the capacity the array allocates for n elements:
// the smallest power of two >= max(4, n) while n <= 128, and the smallest
// multiple of 128 >= n above that.
func RequiredCap(n int) int {
	if n < 0 {
		panic(fmt.Sprintf("seq: negative element count %d", n))
	}
	if n <= minimumSize {
		return minimumSize
	}
	if n > upperGrowthBound {
		if n%upperGrowthBound == 0 {
			return n
		}
		return upperGrowthBound * (n/upperGrowthBound + 1)
	}
	c := minimumSize
	for c < n {
		c <<= 1
	}
	return c
}

// Array is a growable array of T with positional insertion and removal.
// The zero value is an empty array ready for use.
type Array[T comparable] struct {
	elems []T
}

// FromSlice builds an Array holding the given elements. The input slice is
// copied.
func FromSlice[T comparable](elems []T) *Array[T] {
	a := &Array[T]{}
	a.grow(len(elems))
	a.elems = a.elems[:len(elems)]
	copy(a.elems, elems)
	return a
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.elems) }

// Cap returns the allocated capacity.
func (a *Array[T]) Cap() int { return cap(a.elems) }

// At returns the element at index i. Out-of-range indices panic.
func (a *Array[T]) At(i int) T {
	if i < 0 || i >= len(a.elems) {
		panic(fmt.Sprintf("seq: index %d out of range [0,%d)", i, len(a.elems)))
	}
	return a.elems[i]
}

// Set replaces the element at index i. Out-of-range indices panic.
func (a *Array[T]) Set(i int, v T) {
	if i < 0 || i >= len(a.elems) {
		panic(fmt.Sprintf("seq: index %d out of range [0,%d)", i, len(a.elems)))
	}
	a.elems[i] = v
}

// Append adds v at the end, growing the backing store if needed.
func (a *Array[T]) Append(v T) {
	a.grow(len(a.elems) + 1)
	a.elems = append(a.elems, v)
}

// InsertAt places v at index i, shifting later elements up by one.
// i may equal Len(), which appends. Any other out-of-range index panics.
func (a *Array[T]) InsertAt(v T, i int) {
	n := len(a.elems)
	if i < 0 || i > n {
		panic(fmt.Sprintf("seq: insert index %d out of range [0,%d]", i, n))
	}
	a.grow(n + 1)
	a.elems = a.elems[:n+1]
	copy(a.elems[i+1:], a.elems[i:n])
	a.elems[i] = v
}

// RemoveAt deletes the element at index i. With preserveOrder the later
// elements shift down by one; without it the last element is swapped into
// the hole, which is O(1) but reorders the array. Out-of-range indices panic.
func (a *Array[T]) RemoveAt(i int, preserveOrder bool) {
	n := len(a.elems)
	if i < 0 || i >= n {
		panic(fmt.Sprintf("seq: remove index %d out of range [0,%d)", i, n))
	}
	if preserveOrder {
		copy(a.elems[i:], a.elems[i+1:])
	} else if i < n-1 {
		a.elems[i] = a.elems[n-1]
	}
	var zero T
	a.elems[n-1] = zero
	a.elems = a.elems[:n-1]
}

// RemoveValue deletes the first element equal to v and reports whether one
// was found.
func (a *Array[T]) RemoveValue(v T, preserveOrder bool) bool {
	i := a.Index(v)
	if i < 0 {
		return false
	}
	a.RemoveAt(i, preserveOrder)
	return true
}

// Index returns the position of the first element equal to v, or -1.
func (a *Array[T]) Index(v T) int {
	for i, e := range a.elems {
		if e == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is present.
func (a *Array[T]) Contains(v T) bool { return a.Index(v) >= 0 }

// Slice returns the backing slice. Callers must treat it as read-only unless
// they own the Array and will not use it afterwards.
func (a *Array[T]) Slice() []T { return a.elems }

// grow ensures capacity for n elements without changing the length.
func (a *Array[T]) grow(n int) {
	c := RequiredCap(n)
	if c <= cap(a.elems) {
		return
	}
	next := make([]T, len(a.elems), c)
	copy(next, a.elems)
	a.elems = next
}
