// Package refcount implements the owning/non-owning sharable pointer
// abstraction the core is parameterized over (spec §5, §9 "Refcount
// parameterization"). It is grounded on the teacher module's pooled,
// explicit-lifecycle buffer idiom (internal/pool.ByteBuffer's
// acquire/Reset/release pairing) generalized from a single pooled slice to
// an atomically refcounted handle shared across copies of a heap or wire
// value.
//
// Two concrete generic types implement the distinction at the type level,
// per spec §9's resolved Open Question: Owning[T] (copyable, increments
// the shared count on Clone, decrements and may finalize on Release) and
// View[T] (borrows without ever touching the count; must not outlive its
// owner, a caller obligation the type system cannot enforce any more than
// the original library enforced it at compile time).
package refcount

import "sync/atomic"

// Finalizer is called exactly once, when the last Owning[T] referencing a
// shared value is released.
type Finalizer[T any] func(T)

type box[T any] struct {
	value    T
	count    atomic.Int32 // holders beyond the first; 0 means exactly one holder
	finalize Finalizer[T]
}

// Owning is a copyable, reference-counted handle to a shared value of type
// T. Copying an Owning (via Clone) increments the shared count; Release
// decrements it and runs the finalizer when the count reaches zero.
type Owning[T any] struct {
	b *box[T]
}

// NewOwning creates a fresh Owning handle with one holder. finalize may be
// nil if T needs no cleanup (the common case: T is a Go map/slice that the
// garbage collector reclaims on its own — the finalizer hook exists for
// embedders wrapping externally-owned memory, e.g. a raw buffer wrap per
// spec §6.3).
func NewOwning[T any](value T, finalize Finalizer[T]) Owning[T] {
	return Owning[T]{b: &box[T]{value: value, finalize: finalize}}
}

// Value returns the shared value. It is valid for as long as this handle
// (or any clone/view derived from it) has not been the last one released.
func (o Owning[T]) Value() T { return o.b.value }

// Valid reports whether this handle still refers to a live box. A
// zero-value Owning (e.g. from an empty heap.Value) is invalid.
func (o Owning[T]) Valid() bool { return o.b != nil }

// Holders returns the number of additional holders beyond this one (0 means
// this handle is the sole owner). Exposed for §7's documented observable
// exception: a failed mutation may have already forked an aggregate, which
// is only detectable by holder count, never by value.
func (o Owning[T]) Holders() int32 {
	if o.b == nil {
		return 0
	}

	return o.b.count.Load()
}

// Shared reports whether any other holder exists, i.e. whether a mutation
// must trigger copy-on-write before proceeding (spec §4.2.3).
func (o Owning[T]) Shared() bool { return o.Holders() > 0 }

// Clone increments the shared count and returns a new handle to the same
// box. Both the receiver and the returned handle must each be Released
// exactly once.
func (o Owning[T]) Clone() Owning[T] {
	if o.b != nil {
		o.b.count.Add(1)
	}

	return o
}

// Release decrements the shared count. When the count was already at zero
// (this was the last holder), the finalizer (if any) runs and the handle
// becomes invalid. Release is idempotent-safe only if the caller does not
// call it twice on handles obtained from the same Clone — matching
// conventional atomic-refcount smart pointer discipline.
func (o *Owning[T]) Release() {
	if o.b == nil {
		return
	}

	if o.b.count.Add(-1) < 0 && o.b.finalize != nil {
		o.b.finalize(o.b.value)
	}
	o.b = nil
}

// View returns a non-owning handle over this Owning's box. It never
// touches the refcount: per spec §5/§9 the caller is solely responsible
// for ensuring the View does not outlive the Owning it was taken from.
func (o Owning[T]) View() View[T] {
	return View[T]{b: o.b}
}

// View is a non-owning, refcount-free borrow of a shared value. It is
// cheaper to copy than Owning (no atomic traffic) but carries no lifetime
// guarantee of its own.
type View[T any] struct {
	b *box[T]
}

// Value returns the borrowed value.
func (v View[T]) Value() T { return v.b.value }

// Valid reports whether this view refers to a box at all.
func (v View[T]) Valid() bool { return v.b != nil }
