package model

import (
	"fmt"
	"iter"
	"slices"
)

// List is a read-only ordered sequence.
//
// List has no methods that change its contents, and Slice returns a copy, so
// the backing array never escapes. The zero value is an empty list.
type List[T comparable] struct {
	items []T
}

// NewList returns a list holding a copy of items.
func NewList[T comparable](items ...T) List[T] {
	if len(items) == 0 {
		return List[T]{}
	}
	return List[T]{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (l List[T]) Len() int {
	return len(l.items)
}

// IsEmpty reports whether the list has no elements.
func (l List[T]) IsEmpty() bool {
	return len(l.items) == 0
}

// At returns the element at index i. It panics if i is out of range.
func (l List[T]) At(i int) T {
	return l.items[i]
}

// All returns an iterator over index/value pairs.
func (l List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements.
func (l List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns a copy of the elements. The result is never nil.
func (l List[T]) Slice() []T {
	if len(l.items) == 0 {
		return []T{}
	}
	return slices.Clone(l.items)
}

// Contains reports whether v is in the list.
func (l List[T]) Contains(v T) bool {
	return slices.Contains(l.items, v)
}

// Equal reports whether both lists hold equal elements in the same order.
func (l List[T]) Equal(other List[T]) bool {
	return slices.Equal(l.items, other.items)
}

// String implements fmt.Stringer.
func (l List[T]) String() string {
	return fmt.Sprint(l.items)
}
