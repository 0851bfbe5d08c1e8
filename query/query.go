// Package query implements the document library's path-based accessors:
// get_nested, walking a sequence of keys/indices down either
// representation, and a Unicode-normalizing (NFC) key lookup supplementing the
// exact-match object lookup for callers working with human-authored,
// non-ASCII key sets, plus project/inject span operators.
//
// Composes the lower-level heap/wire accessors behind one path-walking
// entry point, the same role a façade plays over several narrower
// constructors.
package query

import (
	"strings"

	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/heap"
	"github.com/arloliu/meson/wire"
)

// Step is one segment of a path: either a Key (object member) or an Index
// (array element). Exactly one of Key/IsIndex should be set by the
// caller; use KeyStep/IndexStep to construct one unambiguously.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeyStep returns a Step addressing an object member.
func KeyStep(key string) Step { return Step{Key: key} }

// IndexStep returns a Step addressing an array element.
func IndexStep(i int) Step { return Step{Index: i, IsIndex: true} }

// GetNestedHeap walks path down a heap.Value tree, returning the value at
// the end of the path or an error at the first missing key, out-of-range
// index, or kind mismatch.
func GetNestedHeap(root heap.Value, path ...Step) (heap.Value, error) {
	cur := root
	for _, step := range path {
		var err error
		cur, err = stepHeap(cur, step)
		if err != nil {
			return heap.Value{}, err
		}
	}

	return cur, nil
}

func stepHeap(v heap.Value, step Step) (heap.Value, error) {
	if step.IsIndex {
		arr, err := v.Array()
		if err != nil {
			return heap.Value{}, err
		}

		return arr.Index(step.Index)
	}

	obj, err := v.Object()
	if err != nil {
		return heap.Value{}, err
	}

	val, ok := obj.Get(step.Key)
	if !ok {
		return heap.Value{}, errs.OutOfRange("query.GetNestedHeap", -1)
	}

	return val, nil
}

// GetNestedWire walks path down a wire.Value tree, returning the value at
// the end of the path or an error at the first missing key, out-of-range
// index, or kind mismatch.
func GetNestedWire(root wire.Value, path ...Step) (wire.Value, error) {
	cur := root
	for _, step := range path {
		var err error
		cur, err = stepWire(cur, step)
		if err != nil {
			return wire.Value{}, err
		}
	}

	return cur, nil
}

func stepWire(v wire.Value, step Step) (wire.Value, error) {
	if step.IsIndex {
		arr, err := v.Array()
		if err != nil {
			return wire.Value{}, err
		}

		return arr.Index(step.Index)
	}

	obj, err := v.Object()
	if err != nil {
		return wire.Value{}, err
	}

	return obj.Get(step.Key)
}

// Project builds a new heap object containing only the given top-level
// keys of src, in the order requested, skipping any that are absent. It
// is a read-only view restriction materialized as a fresh object, since
// the heap has no lazy-view type.
func Project(src *heap.Object, keys []string) *heap.Object {
	result := heap.NewObject()
	out, _ := result.Object()

	for _, k := range keys {
		if v, ok := src.Get(k); ok {
			out.Set(k, v.Clone())
		}
	}

	return out
}

// Inject returns a new object holding the union of dst and patch: every key
// of dst, then every key of patch, with patch's values overriding dst's on
// a collision. Neither dst nor patch is mutated.
func Inject(dst *heap.Object, patch *heap.Object) *heap.Object {
	result := heap.NewObject()
	out, _ := result.Object()

	for i := 0; i < dst.Len(); i++ {
		key, val, _ := dst.At(i)
		out.Set(key, val.Clone())
	}
	for i := 0; i < patch.Len(); i++ {
		key, val, _ := patch.At(i)
		out.Set(key, val.Clone())
	}

	return out
}

// GetNestedPath walks a separator-delimited path of object keys down a
// heap.Value tree, returning the null value at the first missing key or
// non-object step rather than an error — the lenient, string-path
// counterpart to GetNestedHeap's explicit Step sequence (get_nested, spec
// §4.6). sep defaults to "." when empty. An empty path returns root
// itself.
func GetNestedPath(root heap.Value, path string, sep string) heap.Value {
	if path == "" {
		return root
	}
	if sep == "" {
		sep = "."
	}

	cur := root
	for _, key := range strings.Split(path, sep) {
		cur = cur.Get(key)
	}

	return cur
}

// GetNestedWirePath is GetNestedPath over the finalized representation.
func GetNestedWirePath(root wire.Value, path string, sep string) wire.Value {
	if path == "" {
		return root
	}
	if sep == "" {
		sep = "."
	}

	cur := root
	for _, key := range strings.Split(path, sep) {
		cur = cur.Get(key)
	}

	return cur
}
