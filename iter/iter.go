// Package iter provides representation-agnostic traversal over both
// heap.Value and wire.Value trees using Go's range-over-func iterators
// (iter.Seq/iter.Seq2): dereferencing an element always yields the
// representation's Value by value (both heap.Value and wire.Value are
// small, copyable structs already), and the same two small interfaces
// drive iteration over either representation's object/array structure.
package iter

import goiter "iter"

// Keyed is satisfied by an object-like value: something indexable by
// string key in a defined iteration order.
type Keyed[V any] interface {
	Len() int
	At(i int) (string, V, error)
}

// Indexed is satisfied by an array-like value: something indexable by
// position.
type Indexed[V any] interface {
	Len() int
	Index(i int) (V, error)
}

// Entries returns a sequence over a Keyed container's key/value pairs in
// its stored order. Errors from At are swallowed by stopping iteration
// early, matching range-over-func's "no error channel" convention; callers
// needing strict error surfacing should walk the container directly via
// At instead.
func Entries[V any](k Keyed[V]) goiter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i := 0; i < k.Len(); i++ {
			key, val, err := k.At(i)
			if err != nil {
				return
			}
			if !yield(key, val) {
				return
			}
		}
	}
}

// Elements returns a sequence over an Indexed container's elements in
// position order.
func Elements[V any](ix Indexed[V]) goiter.Seq[V] {
	return func(yield func(V) bool) {
		for i := 0; i < ix.Len(); i++ {
			val, err := ix.Index(i)
			if err != nil {
				return
			}
			if !yield(val) {
				return
			}
		}
	}
}

// Keys returns a sequence over a Keyed container's keys alone, for callers
// that don't need the values (e.g. counting or set-membership checks).
func Keys[V any](k Keyed[V]) goiter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < k.Len(); i++ {
			key, _, err := k.At(i)
			if err != nil {
				return
			}
			if !yield(key) {
				return
			}
		}
	}
}
