// Package document is the public façade over both representations: three
// type-erased façades — mutable, finalized, union — plus six
// strongly-typed narrowing wrappers over the union.
//
// heap.Value and wire.Value are themselves the mutable and finalized
// type-erased façades; Document is the third, union façade that erases
// which of the two backs a given value. New/Parse/Finalize/Lift are the
// convenience constructors that move a value between representations, and
// Object/Array/String/Number/Boolean/Null are thin validating newtypes
// that fail fast at construction if the wrapped Document is the wrong
// kind, rather than leaving unchecked type assertions scattered through
// caller code.
package document

import (
	"github.com/arloliu/meson/codec/json"
	"github.com/arloliu/meson/codec/yaml"
	"github.com/arloliu/meson/definalize"
	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/finalize"
	"github.com/arloliu/meson/heap"
	"github.com/arloliu/meson/query"
	"github.com/arloliu/meson/wire"
	"github.com/arloliu/meson/wire/layout"
)

// Document is the representation-erased union façade: any heap.Value or
// wire.Value satisfies it, since both already expose the same
// introspection surface.
type Document interface {
	Kind() layout.Kind
	IsObject() bool
	IsArray() bool
	IsAggregate() bool
	IsStr() bool
	IsInteger() bool
	IsDecimal() bool
	IsNumeric() bool
	IsBoolean() bool
	IsNull() bool
	IsPrimitive() bool
	IsFinalized() bool
}

var (
	_ Document = heap.Value{}
	_ Document = wire.Value{}
)

// Format selects a text encoding for Parse/Marshal.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// New returns a fresh, empty mutable document object.
func New() heap.Value {
	return heap.NewObject()
}

// Parse decodes data in the given format into a mutable document tree.
func Parse(data []byte, format Format, opts json.Options) (heap.Value, error) {
	switch format {
	case FormatJSON:
		return json.Parse(data, opts)
	case FormatYAML:
		return yaml.Parse(data)
	default:
		return heap.Value{}, errs.InvalidArgument("document.Parse", "unknown format")
	}
}

// Marshal serializes a mutable document tree in the given format.
func Marshal(v heap.Value, format Format, opts json.Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.Marshal(v, opts)
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		return nil, errs.InvalidArgument("document.Marshal", "unknown format")
	}
}

// Finalize converts a mutable document tree into its immutable finalized
// form.
func Finalize(v heap.Value) (wire.Buffer, error) {
	return finalize.Finalize(v)
}

// Lift converts a finalized document buffer back into an editable mutable
// tree.
func Lift(buf wire.Buffer) (heap.Value, error) {
	return definalize.Lift(buf)
}

// GetNested walks a separator-delimited path of object keys down a mutable
// document tree, returning null at the first missing key or non-object
// step instead of an error. sep defaults to "." when empty, and an empty
// path returns v itself.
func GetNested(v heap.Value, path string, sep string) heap.Value {
	return query.GetNestedPath(v, path, sep)
}

// GetNestedWire is GetNested over a finalized document tree.
func GetNestedWire(v wire.Value, path string, sep string) wire.Value {
	return query.GetNestedWirePath(v, path, sep)
}
