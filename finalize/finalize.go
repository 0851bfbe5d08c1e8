package finalize

import (
	"github.com/arloliu/meson/endian"
	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/heap"
	"github.com/arloliu/meson/internal/pool"
	"github.com/arloliu/meson/wire"
	"github.com/arloliu/meson/wire/layout"
	"golang.org/x/sync/errgroup"
)

var le = endian.GetLittleEndianEngine()

// Finalize converts a heap.Value tree into its immutable finalized form.
// The root must be an object; finalization of a non-object root is a
// state error, not a type error, since any heap.Value is otherwise a
// perfectly valid value — it is simply not a valid document root.
func Finalize(root heap.Value) (wire.Buffer, error) {
	if !root.IsObject() {
		return wire.Buffer{}, errs.State("finalize.Finalize", "document root must be an object")
	}

	bb := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(bb)

	bb.Grow(layout.AggregateAlign + UpperBound(root))
	bb.ExtendOrGrow(layout.AggregateAlign)

	bb.B[0] = byte(layout.RawObject)

	out, _, err := writeValue(bb.B, root)
	if err != nil {
		return wire.Buffer{}, err
	}

	final := make([]byte, len(out))
	copy(final, out)

	return wire.New(final), nil
}

// FinalizeAll finalizes each of docs concurrently, grounded on the
// errgroup fan-out/collect pattern used for concurrent leaf pipelines.
// Results preserve input order. The first error encountered is returned
// once every goroutine has finished; the other documents are still
// finalized, since nothing cancels them.
func FinalizeAll(docs []heap.Value) ([]wire.Buffer, error) {
	out := make([]wire.Buffer, len(docs))

	var g errgroup.Group
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			buf, err := Finalize(doc)
			if err != nil {
				return err
			}
			out[i] = buf

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// writeValue appends v's region to buf (padding first for v's natural
// alignment), returning the extended buffer and the absolute start offset
// of the region just written — the offset a parent vtable entry records.
func writeValue(buf []byte, v heap.Value) ([]byte, uint32, error) {
	switch v.Kind() {
	case layout.KindNull:
		return buf, uint32(len(buf)), nil
	case layout.KindBoolean:
		b, _ := v.Boolean()
		start := uint32(len(buf))
		if b {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}

		return buf, start, nil
	case layout.KindInteger:
		n, _ := v.Integer()
		buf = alignTo(buf, layout.AlignOf(layout.IntegerTierFor(n)))
		start := uint32(len(buf))
		_, buf = wire.AppendInteger(buf, n)

		return buf, start, nil
	case layout.KindDecimal:
		f, _ := v.Decimal()
		tier := layout.RawDecimal
		if !layout.DecimalFitsFloat32(f) {
			tier = layout.RawLongDecimal
		}
		buf = alignTo(buf, layout.AlignOf(tier))
		start := uint32(len(buf))
		_, buf = wire.AppendDecimal(buf, f)

		return buf, start, nil
	case layout.KindString:
		s, _ := v.Str()
		start := uint32(len(buf))
		_, buf = wire.AppendString(buf, s)

		return buf, start, nil
	case layout.KindObject:
		return writeObject(buf, v)
	case layout.KindArray:
		return writeArray(buf, v)
	default:
		return buf, 0, errs.Type("finalize.writeValue", "", -1, "unknown value kind")
	}
}

func alignTo(buf []byte, alignment int) []byte {
	target := layout.Align(len(buf), alignment)
	for len(buf) < target {
		buf = append(buf, 0)
	}

	return buf
}

func writeObject(buf []byte, v heap.Value) ([]byte, uint32, error) {
	obj, err := v.Object()
	if err != nil {
		return buf, 0, err
	}

	buf = alignTo(buf, layout.AggregateAlign)
	start := uint32(len(buf))

	n := obj.Len()
	headerStart := len(buf)
	buf = append(buf, make([]byte, layout.AggregateHeaderSize)...)
	vtableStart := len(buf)
	buf = append(buf, make([]byte, n*layout.VTableEntrySize)...)

	keys := obj.SortedKeys()
	type entry struct {
		raw    layout.RawType
		offset uint32
	}
	entries := make([]entry, n)

	for i, key := range keys {
		val, _ := obj.Get(key)

		keyOffset := uint32(len(buf))
		buf = wire.AppendKeyRegion(buf, key)

		buf, _, err = writeValue(buf, val)
		if err != nil {
			return buf, 0, err
		}

		raw := rawTagForScalarOrAggregate(val)
		entries[i] = entry{raw: raw, offset: keyOffset}
	}

	for i, e := range entries {
		enc, err := layout.EncodeVTableEntry(e.raw, e.offset)
		if err != nil {
			return buf, 0, errs.Length("finalize.writeObject", err.Error())
		}
		copy(buf[vtableStart+i*layout.VTableEntrySize:], enc[:])
	}

	totalSize := len(buf) - headerStart
	if totalSize > layout.MaxAggregateSize {
		return buf, 0, errs.Length("finalize.writeObject", "object region exceeds max_aggregate_size")
	}
	le.PutUint32(buf[headerStart:], uint32(totalSize))
	le.PutUint32(buf[headerStart+4:], uint32(n))

	return buf, start, nil
}

func writeArray(buf []byte, v heap.Value) ([]byte, uint32, error) {
	arr, err := v.Array()
	if err != nil {
		return buf, 0, err
	}

	buf = alignTo(buf, layout.AggregateAlign)
	start := uint32(len(buf))

	n := arr.Len()
	headerStart := len(buf)
	buf = append(buf, make([]byte, layout.AggregateHeaderSize)...)
	vtableStart := len(buf)
	buf = append(buf, make([]byte, n*layout.VTableEntrySize)...)

	type entry struct {
		raw    layout.RawType
		offset uint32
	}
	entries := make([]entry, n)

	for i := 0; i < n; i++ {
		el, elErr := arr.Index(i)
		if elErr != nil {
			return buf, 0, elErr
		}

		var offset uint32
		buf, offset, err = writeValue(buf, el)
		if err != nil {
			return buf, 0, err
		}

		entries[i] = entry{raw: rawTagForScalarOrAggregate(el), offset: offset}
	}

	for i, e := range entries {
		enc, err := layout.EncodeVTableEntry(e.raw, e.offset)
		if err != nil {
			return buf, 0, errs.Length("finalize.writeArray", err.Error())
		}
		copy(buf[vtableStart+i*layout.VTableEntrySize:], enc[:])
	}

	totalSize := len(buf) - headerStart
	if totalSize > layout.MaxAggregateSize {
		return buf, 0, errs.Length("finalize.writeArray", "array region exceeds max_aggregate_size")
	}
	le.PutUint32(buf[headerStart:], uint32(totalSize))
	le.PutUint32(buf[headerStart+4:], uint32(n))

	return buf, start, nil
}

func rawTagForScalarOrAggregate(v heap.Value) layout.RawType {
	switch v.Kind() {
	case layout.KindObject:
		return layout.RawObject
	case layout.KindArray:
		return layout.RawArray
	case layout.KindString:
		s, _ := v.Str()
		tier, _ := layout.StringTierFor(len(s))

		return tier
	case layout.KindInteger:
		n, _ := v.Integer()

		return layout.IntegerTierFor(n)
	case layout.KindDecimal:
		f, _ := v.Decimal()
		if layout.DecimalFitsFloat32(f) {
			return layout.RawDecimal
		}

		return layout.RawLongDecimal
	case layout.KindBoolean:
		return layout.RawBoolean
	default:
		return layout.RawNull
	}
}
