package wire

import (
	"github.com/arloliu/meson/endian"
	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/wire/layout"
)

var le = endian.GetLittleEndianEngine()

// Value is a cursor into a finalized buffer: a raw type tag plus a byte
// offset where that value's region begins. Value is a small value type,
// cheap to copy and pass by value throughout this package and its
// callers — dereferencing one is pointer arithmetic over an existing
// buffer, never a fresh allocation.
type Value struct {
	raw   layout.RawType
	start int
	src   bytesSource
}

// Null returns a null Value unanchored to any buffer. Used as the miss
// result of the lenient Get/Index accessors, since the zero Value (raw ==
// 0, the object/array discriminant's zero value) is not itself a null
// tag and must not be mistaken for one.
func Null() Value { return Value{raw: layout.RawNull} }

// Root returns the document root Value of a finalized buffer. The root is
// always an object or array region beginning at offset
// layout.AggregateAlign (8); byte 0 holds the root's raw type tag.
func Root(src bytesSource) (Value, error) {
	b := src.Bytes()
	if len(b) < layout.AggregateAlign+layout.AggregateHeaderSize {
		return Value{}, errs.State("wire.Root", "buffer too small to contain a root aggregate")
	}

	// Object and array share the same [total_size][count] header shape, so
	// the header alone does not say which one the root is. The finalizer
	// therefore writes the root's raw type into byte 0, pads the rest of the
	// first 8-byte word with zeros, and begins the aggregate header at
	// offset 8.
	tag := layout.RawType(b[0])
	if tag != layout.RawObject && tag != layout.RawArray {
		return Value{}, errs.Parse("wire.Root", "root tag byte is not object or array")
	}

	return Value{raw: tag, start: layout.AggregateAlign, src: src}, nil
}

func (v Value) bytes() []byte { return v.src.Bytes() }

// GetType returns the value's raw type discriminator.
func (v Value) GetType() layout.RawType { return v.raw }

// Kind returns the value's user-visible kind.
func (v Value) Kind() layout.Kind { return v.raw.Kind() }

// IsFinalized always reports true: every wire.Value is, by construction,
// backed by a finalized buffer. The method exists so callers writing
// representation-agnostic code (see package iter) can branch on it
// symmetrically with heap.Value.
func (v Value) IsFinalized() bool { return true }

func (v Value) IsObject() bool    { return v.raw == layout.RawObject }
func (v Value) IsArray() bool     { return v.raw == layout.RawArray }
func (v Value) IsAggregate() bool { return v.IsObject() || v.IsArray() }
func (v Value) IsStr() bool       { return v.raw.IsStringTag() }
func (v Value) IsInteger() bool   { return v.Kind() == layout.KindInteger }
func (v Value) IsDecimal() bool   { return v.Kind() == layout.KindDecimal }
func (v Value) IsNumeric() bool   { return v.IsInteger() || v.IsDecimal() }
func (v Value) IsBoolean() bool   { return v.raw == layout.RawBoolean }
func (v Value) IsNull() bool      { return v.raw == layout.RawNull }
func (v Value) IsPrimitive() bool { return !v.IsAggregate() }

// Object narrows v to an Object view, failing with errs.ErrTypeError if v
// is not an object region.
func (v Value) Object() (Object, error) {
	if !v.IsObject() {
		return Object{}, errs.Type("wire.Value.Object", "", -1, "value is not an object")
	}

	return Object{a: newAggregate(v)}, nil
}

// Array narrows v to an Array view, failing with errs.ErrTypeError if v is
// not an array region.
func (v Value) Array() (Array, error) {
	if !v.IsArray() {
		return Array{}, errs.Type("wire.Value.Array", "", -1, "value is not an array")
	}

	return Array{a: newAggregate(v)}, nil
}

// Str returns the value's string contents, or an error if v is not a
// string. The returned string is a copy of the bytes in the finalized
// buffer and stays valid after the buffer is released.
func (v Value) Str() (string, error) {
	if !v.IsStr() {
		return "", errs.Type("wire.Value.Str", "", -1, "value is not a string")
	}

	return readStringAt(v.bytes(), v.start, v.raw), nil
}

// StrOr returns the value's string contents, or def if v is not a string.
func (v Value) StrOr(def string) string {
	s, err := v.Str()
	if err != nil {
		return def
	}

	return s
}

// Integer returns the value's integer contents widened to int64, or an
// error if v is not an integer.
func (v Value) Integer() (int64, error) {
	if !v.IsInteger() {
		return 0, errs.Type("wire.Value.Integer", "", -1, "value is not an integer")
	}

	return readIntegerAt(v.bytes(), v.start, v.raw), nil
}

// IntegerOr returns the value's integer contents, or def if v is not an
// integer.
func (v Value) IntegerOr(def int64) int64 {
	n, err := v.Integer()
	if err != nil {
		return def
	}

	return n
}

// Decimal returns the value's floating point contents widened to float64,
// or an error if v is not a decimal.
func (v Value) Decimal() (float64, error) {
	if !v.IsDecimal() {
		return 0, errs.Type("wire.Value.Decimal", "", -1, "value is not a decimal")
	}

	return readDecimalAt(v.bytes(), v.start, v.raw), nil
}

// DecimalOr returns the value's decimal contents, or def if v is not a
// decimal.
func (v Value) DecimalOr(def float64) float64 {
	f, err := v.Decimal()
	if err != nil {
		return def
	}

	return f
}

// Numeric returns the value's numeric contents widened to float64 whether
// it is an integer or a decimal tier, or an error if v is neither.
func (v Value) Numeric() (float64, error) {
	if v.IsInteger() {
		n, _ := v.Integer()

		return float64(n), nil
	}
	if v.IsDecimal() {
		return v.Decimal()
	}

	return 0, errs.Type("wire.Value.Numeric", "", -1, "value is not numeric")
}

// Boolean returns the value's boolean contents, or an error if v is not a
// boolean.
func (v Value) Boolean() (bool, error) {
	if !v.IsBoolean() {
		return false, errs.Type("wire.Value.Boolean", "", -1, "value is not a boolean")
	}

	return v.bytes()[v.start] != 0, nil
}

// BooleanOr returns the value's boolean contents, or def if v is not a
// boolean.
func (v Value) BooleanOr(def bool) bool {
	b, err := v.Boolean()
	if err != nil {
		return def
	}

	return b
}

// Get returns the member stored under key if v is an object and key is
// present, or Null() otherwise — never an error. The lenient counterpart
// to Object().Get, mirroring heap.Value.Get so path-walking accessors can
// treat both representations the same way.
func (v Value) Get(key string) Value {
	obj, err := v.Object()
	if err != nil {
		return Null()
	}

	return obj.GetOr(key, Null())
}

// GetOr returns the member stored under key if v is an object and key is
// present, or def otherwise.
func (v Value) GetOr(key string, def Value) Value {
	obj, err := v.Object()
	if err != nil {
		return def
	}

	return obj.GetOr(key, def)
}

// Index returns the i'th element if v is an array and i is in range, or
// Null() otherwise — never an error. The lenient counterpart to
// Array().Index.
func (v Value) Index(i int) Value {
	arr, err := v.Array()
	if err != nil {
		return Null()
	}

	val, err := arr.Index(i)
	if err != nil {
		return Null()
	}

	return val
}

// IndexOr returns the i'th element if v is an array and i is in range, or
// def otherwise.
func (v Value) IndexOr(i int, def Value) Value {
	arr, err := v.Array()
	if err != nil {
		return def
	}

	val, err := arr.Index(i)
	if err != nil {
		return def
	}

	return val
}
