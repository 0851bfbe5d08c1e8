// Package finalize converts a mutable heap.Value tree into its immutable
// finalized wire.Buffer form.
//
// Values accumulate in the mutable heap tree and are only materialized
// into the final byte layout in one pass at the end, sizing the output
// buffer with an upper-bound estimate first to avoid reallocation
// mid-write. UpperBound performs that size-estimation pre-pass over a
// recursive object/array tree.
package finalize

import (
	"github.com/arloliu/meson/heap"
	"github.com/arloliu/meson/wire"
	"github.com/arloliu/meson/wire/layout"
)

// UpperBound returns a safe over-estimate, in bytes, of the finalized size
// of v. It never under-estimates: every aggregate adds one alignment
// gap's worth of slack per nested region so the real write pass never
// needs to grow its buffer.
func UpperBound(v heap.Value) int {
	switch v.Kind() {
	case layout.KindNull:
		return 0
	case layout.KindBoolean:
		return 1
	case layout.KindInteger:
		n, _ := v.Integer()

		return wire.IntegerRegionSize(n) + layout.IntegerAlign64 - 1
	case layout.KindDecimal:
		f, _ := v.Decimal()

		return wire.DecimalRegionSize(f) + layout.DecimalAlign64 - 1
	case layout.KindString:
		s, _ := v.Str()

		return wire.StringRegionSize(s)
	case layout.KindObject:
		obj, _ := v.Object()
		size := layout.AggregateHeaderSize + obj.Len()*layout.VTableEntrySize
		for i := 0; i < obj.Len(); i++ {
			key, val, _ := obj.At(i)
			size += wire.KeyRegionSize(key) + UpperBound(val)
		}

		return size + layout.AggregateAlign - 1
	case layout.KindArray:
		arr, _ := v.Array()
		size := layout.AggregateHeaderSize + arr.Len()*layout.VTableEntrySize
		for i := 0; i < arr.Len(); i++ {
			el, _ := arr.Index(i)
			size += UpperBound(el)
		}

		return size + layout.AggregateAlign - 1
	default:
		return 0
	}
}
