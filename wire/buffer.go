// Package wire implements the immutable, finalized representation: a
// contiguous byte buffer laid out per package layout's raw types, read
// without any upfront decode pass.
//
// A Buffer wraps a single []byte payload plus a lazily-addressed vtable,
// and every field accessor reads directly from the backing array, over a
// recursive object/array tree; only string accessors copy, since a Go
// string conversion copies its bytes.
package wire

import "github.com/arloliu/meson/internal/refcount"

// Buffer is an owning handle to a finalized byte buffer. Cloning a Buffer
// (e.g. when a document is shared across goroutines) increments a refcount
// rather than copying bytes; Release must be called exactly once per
// Buffer obtained from New or Clone.
type Buffer struct {
	h refcount.Owning[[]byte]
}

// New wraps raw as a freshly-owned finalized buffer. raw is not copied: the
// caller must not retain or mutate it afterward.
func New(raw []byte) Buffer {
	return Buffer{h: refcount.NewOwning(raw, nil)}
}

// Bytes returns the underlying finalized bytes. The returned slice must be
// treated as read-only: the finalized representation's whole contract rests
// on its buffer never changing after construction.
func (b Buffer) Bytes() []byte { return b.h.Value() }

// Valid reports whether b still refers to a live buffer.
func (b Buffer) Valid() bool { return b.h.Valid() }

// Clone increments the buffer's shared count and returns a new owning
// handle to the same bytes.
func (b Buffer) Clone() Buffer { return Buffer{h: b.h.Clone()} }

// Release decrements the shared count, allowing the backing array to be
// garbage collected once the last holder releases.
func (b *Buffer) Release() { b.h.Release() }

// View returns a non-owning borrow of this buffer's bytes, cheaper to pass
// down a read-only call chain than cloning the owning handle.
func (b Buffer) View() BufferView { return BufferView{v: b.h.View()} }

// BufferView is a non-owning borrow of a finalized byte buffer. It must not
// outlive the Buffer (or any of its clones) it was taken from.
type BufferView struct {
	v refcount.View[[]byte]
}

// Bytes returns the borrowed, read-only finalized bytes.
func (v BufferView) Bytes() []byte { return v.v.Value() }

// Valid reports whether v still refers to a live buffer.
func (v BufferView) Valid() bool { return v.v.Valid() }

// bytesSource is satisfied by both Buffer and BufferView, letting Value
// hold either an owning or a borrowed backing array uniformly.
type bytesSource interface {
	Bytes() []byte
}
