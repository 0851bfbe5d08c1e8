// Package heap implements the mutable representation: a tree of
// reference-counted nodes supporting in-place edits with copy-on-write
// forking when a node is shared (spec §4.2, §4.2.3).
//
// Grounded on the teacher module's blob encoder accumulation pattern
// (blob/numeric_encoder.go, blob/text_encoder.go collect values into
// growable internal slices before a final Finish() pass) generalized from
// a flat columnar accumulator to a recursive, shareable tree, plus
// internal/collision.Tracker's hash/name duplicate-detection idiom folded
// into Object's key lookup.
package heap

import (
	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/wire/layout"
)

// Value is a tagged union over the seven user-visible kinds, used
// throughout the mutable representation. The zero Value has no kind and
// is not a null; NewNull returns the null value.
//
// Value is a small, copyable struct: copying it never deep-copies an
// aggregate's contents, only its reference-counted handle, matching the
// shared-until-written COW contract (spec §4.2.3).
type Value struct {
	kind layout.Kind
	i    int64
	f    float64
	b    bool
	s    string
	obj  *Object
	arr  *Array
}

// NewNull returns the null value.
func NewNull() Value { return Value{kind: layout.KindNull} }

// NewBoolean returns a boolean value.
func NewBoolean(b bool) Value { return Value{kind: layout.KindBoolean, b: b} }

// NewInteger returns an integer value.
func NewInteger(i int64) Value { return Value{kind: layout.KindInteger, i: i} }

// NewDecimal returns a decimal value.
func NewDecimal(f float64) Value { return Value{kind: layout.KindDecimal, f: f} }

// NewString returns a string value. s is copied by reference (Go strings
// are immutable), matching the small-string-optimization intent of spec
// §4.1.4 without needing a distinct representation at the heap layer.
func NewString(s string) Value { return Value{kind: layout.KindString, s: s} }

// NewObject returns an object value wrapping a freshly created, unshared
// Object.
func NewObject() Value {
	return Value{kind: layout.KindObject, obj: newObject()}
}

// NewArray returns an array value wrapping a freshly created, unshared
// Array.
func NewArray() Value {
	return Value{kind: layout.KindArray, arr: newArray()}
}

// Kind returns the value's user-visible kind.
func (v Value) Kind() layout.Kind { return v.kind }

func (v Value) IsObject() bool    { return v.kind == layout.KindObject }
func (v Value) IsArray() bool     { return v.kind == layout.KindArray }
func (v Value) IsAggregate() bool { return v.IsObject() || v.IsArray() }
func (v Value) IsStr() bool       { return v.kind == layout.KindString }
func (v Value) IsInteger() bool   { return v.kind == layout.KindInteger }
func (v Value) IsDecimal() bool   { return v.kind == layout.KindDecimal }
func (v Value) IsNumeric() bool   { return v.IsInteger() || v.IsDecimal() }
func (v Value) IsBoolean() bool   { return v.kind == layout.KindBoolean }
func (v Value) IsNull() bool      { return v.kind == layout.KindNull }
func (v Value) IsPrimitive() bool { return !v.IsAggregate() }

// IsFinalized always reports false: a heap.Value is, by construction, the
// mutable representation. Symmetric with wire.Value.IsFinalized for
// representation-agnostic callers (see package iter).
func (v Value) IsFinalized() bool { return false }

// Object narrows v to its Object, or an error if v is not an object.
func (v Value) Object() (*Object, error) {
	if !v.IsObject() {
		return nil, errs.Type("heap.Value.Object", "", -1, "value is not an object")
	}

	return v.obj, nil
}

// Array narrows v to its Array, or an error if v is not an array.
func (v Value) Array() (*Array, error) {
	if !v.IsArray() {
		return nil, errs.Type("heap.Value.Array", "", -1, "value is not an array")
	}

	return v.arr, nil
}

// Str returns the value's string contents, or an error if v is not a
// string.
func (v Value) Str() (string, error) {
	if !v.IsStr() {
		return "", errs.Type("heap.Value.Str", "", -1, "value is not a string")
	}

	return v.s, nil
}

// StrOr returns the value's string contents, or def if v is not a string.
func (v Value) StrOr(def string) string {
	if !v.IsStr() {
		return def
	}

	return v.s
}

// Integer returns the value's integer contents, or an error if v is not an
// integer.
func (v Value) Integer() (int64, error) {
	if !v.IsInteger() {
		return 0, errs.Type("heap.Value.Integer", "", -1, "value is not an integer")
	}

	return v.i, nil
}

// IntegerOr returns the value's integer contents, or def if v is not an
// integer.
func (v Value) IntegerOr(def int64) int64 {
	if !v.IsInteger() {
		return def
	}

	return v.i
}

// Decimal returns the value's decimal contents, or an error if v is not a
// decimal.
func (v Value) Decimal() (float64, error) {
	if !v.IsDecimal() {
		return 0, errs.Type("heap.Value.Decimal", "", -1, "value is not a decimal")
	}

	return v.f, nil
}

// DecimalOr returns the value's decimal contents, or def if v is not a
// decimal.
func (v Value) DecimalOr(def float64) float64 {
	if !v.IsDecimal() {
		return def
	}

	return v.f
}

// Numeric returns the value widened to float64 whether it is an integer or
// decimal, or an error if v is neither.
func (v Value) Numeric() (float64, error) {
	switch v.kind {
	case layout.KindInteger:
		return float64(v.i), nil
	case layout.KindDecimal:
		return v.f, nil
	default:
		return 0, errs.Type("heap.Value.Numeric", "", -1, "value is not numeric")
	}
}

// Boolean returns the value's boolean contents, or an error if v is not a
// boolean.
func (v Value) Boolean() (bool, error) {
	if !v.IsBoolean() {
		return false, errs.Type("heap.Value.Boolean", "", -1, "value is not a boolean")
	}

	return v.b, nil
}

// BooleanOr returns the value's boolean contents, or def if v is not a
// boolean.
func (v Value) BooleanOr(def bool) bool {
	if !v.IsBoolean() {
		return def
	}

	return v.b
}

// Get returns the member stored under key if v is an object and key is
// present, or the null value otherwise — never an error. This is the
// lenient counterpart to Object().Get, used by path-walking accessors
// (package query's get_nested) that must return null at the first missing
// or mismatched step rather than surface an error.
func (v Value) Get(key string) Value {
	if !v.IsObject() {
		return NewNull()
	}

	return v.obj.GetOr(key, NewNull())
}

// GetOr returns the member stored under key if v is an object and key is
// present, or def otherwise.
func (v Value) GetOr(key string, def Value) Value {
	if !v.IsObject() {
		return def
	}

	val, ok := v.obj.Get(key)
	if !ok {
		return def
	}

	return val
}

// Index returns the i'th element if v is an array and i is in range, or
// the null value otherwise — never an error. The lenient counterpart to
// Array().Index.
func (v Value) Index(i int) Value {
	if !v.IsArray() {
		return NewNull()
	}

	val, err := v.arr.Index(i)
	if err != nil {
		return NewNull()
	}

	return val
}

// IndexOr returns the i'th element if v is an array and i is in range, or
// def otherwise.
func (v Value) IndexOr(i int, def Value) Value {
	if !v.IsArray() {
		return def
	}

	val, err := v.arr.Index(i)
	if err != nil {
		return def
	}

	return val
}

// Clone returns a Value safe to store into a second container alongside
// v. For scalars this is a plain copy; for aggregates it increments the
// underlying node's holder count so a subsequent write through either copy
// forks rather than corrupting the other (spec §4.2.3, §5).
func (v Value) Clone() Value {
	switch v.kind {
	case layout.KindObject:
		return Value{kind: v.kind, obj: v.obj.clone()}
	case layout.KindArray:
		return Value{kind: v.kind, arr: v.arr.clone()}
	default:
		return v
	}
}

// Equal reports whether v and other encode equal document values,
// recursing into shared aggregate structure only far enough to find a
// difference (spec §4.2's comparison contract for the mutable
// representation — no byte-shortcut is possible here since heap nodes
// carry no canonical serialized form).
func Equal(v, other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case layout.KindObject:
		return v.obj.equal(other.obj)
	case layout.KindArray:
		return v.arr.equal(other.arr)
	case layout.KindString:
		return v.s == other.s
	case layout.KindInteger:
		return v.i == other.i
	case layout.KindDecimal:
		return v.f == other.f
	case layout.KindBoolean:
		return v.b == other.b
	case layout.KindNull:
		return true
	default:
		return false
	}
}
