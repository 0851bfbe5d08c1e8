package wire

import (
	"sort"

	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/wire/layout"
)

// aggregate is the shared cursor-plus-header state for both Object and
// Array: a [total_size:u32][count:u32] header followed by count packed
// vtable entries. Object and Array differ only in whether a vtable
// entry's offset addresses a key region (object) or a value region
// directly (array).
type aggregate struct {
	v     Value
	count int
}

func newAggregate(v Value) aggregate {
	b := v.bytes()
	count := int(le.Uint32(b[v.start+4:]))

	return aggregate{v: v, count: count}
}

// TotalSize returns the aggregate region's total byte size, including its
// own header and vtable.
func (a aggregate) TotalSize() uint32 {
	return le.Uint32(a.v.bytes()[a.v.start:])
}

// Len returns the number of entries (keys or elements) in the aggregate.
func (a aggregate) Len() int { return a.count }

func (a aggregate) vtableEntryOffset(i int) int {
	return a.v.start + layout.AggregateHeaderSize + i*layout.VTableEntrySize
}

func (a aggregate) vtableEntry(i int) (raw layout.RawType, offset uint32) {
	b := a.v.bytes()
	off := a.vtableEntryOffset(i)

	return layout.DecodeVTableEntry(b[off : off+layout.VTableEntrySize])
}

func (a aggregate) valueAt(i int) Value {
	raw, offset := a.vtableEntry(i)
	start := int(offset)

	if a.v.raw == layout.RawObject {
		// offset addresses the entry's self-describing key region; the
		// value immediately follows it, padded up to its own natural
		// alignment the same way finalize.writeValue pads before writing it.
		start += keyRegionSizeAt(a.v.bytes(), int(offset))
		start = layout.Align(start, layout.AlignOf(raw))
	}

	return Value{raw: raw, start: start, src: a.v.src}
}

// Object is a finalized object region: a sorted-by-key vtable over
// key/value pairs, supporting O(log n) lookup by binary search.
type Object struct {
	a aggregate
}

// Len returns the number of keys in the object.
func (o Object) Len() int { return o.a.Len() }

// keyAt reads the self-describing key region addressed by vtable entry i.
// Unlike value regions (whose type is already known from the vtable
// entry's raw_type field), a key region carries its own leading 1-byte raw
// type tag, since the vtable entry's raw_type field records the *value*'s
// type, not the key's string tier.
func (o Object) keyAt(i int) string {
	_, offset := o.a.vtableEntry(i)
	b := o.a.v.bytes()
	tag := layout.RawType(b[offset])

	return readStringAt(b, int(offset)+1, tag)
}

// Keys returns the object's keys in their stored (sorted) order.
func (o Object) Keys() []string {
	keys := make([]string, o.a.Len())
	for i := range keys {
		keys[i] = o.keyAt(i)
	}

	return keys
}

// Lookup finds key via binary search over the sorted vtable, returning its
// value and true, or the zero Value and false if absent.
func (o Object) Lookup(key string) (Value, bool) {
	n := o.a.Len()
	idx := sort.Search(n, func(i int) bool {
		return o.keyAt(i) >= key
	})
	if idx < n && o.keyAt(idx) == key {
		return o.a.valueAt(idx), true
	}

	return Value{}, false
}

// Get is Lookup with an errs.ErrOutOfRange-shaped error on absence.
func (o Object) Get(key string) (Value, error) {
	v, ok := o.Lookup(key)
	if !ok {
		return Value{}, errs.OutOfRange("wire.Object.Get", -1)
	}

	return v, nil
}

// GetOr returns the value for key, or def if absent.
func (o Object) GetOr(key string, def Value) Value {
	v, ok := o.Lookup(key)
	if !ok {
		return def
	}

	return v
}

// At returns the i'th key/value pair in stored order.
func (o Object) At(i int) (key string, val Value, err error) {
	if i < 0 || i >= o.a.Len() {
		return "", Value{}, errs.OutOfRange("wire.Object.At", i)
	}

	return o.keyAt(i), o.a.valueAt(i), nil
}

// Array is a finalized array region: a vtable of elements addressed
// directly by index, with O(1) lookup.
type Array struct {
	a aggregate
}

// Len returns the number of elements in the array.
func (a Array) Len() int { return a.a.Len() }

// Index returns the element at position i, or an error if out of range.
func (a Array) Index(i int) (Value, error) {
	if i < 0 || i >= a.a.Len() {
		return Value{}, errs.OutOfRange("wire.Array.Index", i)
	}

	return a.a.valueAt(i), nil
}

// At is an alias for Index.
func (a Array) At(i int) (Value, error) { return a.Index(i) }
