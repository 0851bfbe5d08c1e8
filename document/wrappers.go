package document

import (
	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/heap"
	"github.com/arloliu/meson/wire"
)

// Object is a validating newtype over a Document known to be an object.
type Object struct{ d Document }

// AsObject narrows d to an Object, failing if d is not an object.
func AsObject(d Document) (Object, error) {
	if !d.IsObject() {
		return Object{}, errs.Type("document.AsObject", "", -1, "value is not an object")
	}

	return Object{d: d}, nil
}

// Len returns the object's field count.
func (o Object) Len() int {
	switch v := o.d.(type) {
	case heap.Value:
		obj, _ := v.Object()

		return obj.Len()
	case wire.Value:
		obj, _ := v.Object()

		return obj.Len()
	default:
		return 0
	}
}

// Get looks up key, returning the erased Document value and whether it was
// found.
func (o Object) Get(key string) (Document, bool) {
	switch v := o.d.(type) {
	case heap.Value:
		obj, _ := v.Object()

		return obj.Get(key)
	case wire.Value:
		obj, _ := v.Object()

		return obj.Lookup(key)
	default:
		return nil, false
	}
}

// Array is a validating newtype over a Document known to be an array.
type Array struct{ d Document }

// AsArray narrows d to an Array, failing if d is not an array.
func AsArray(d Document) (Array, error) {
	if !d.IsArray() {
		return Array{}, errs.Type("document.AsArray", "", -1, "value is not an array")
	}

	return Array{d: d}, nil
}

// Len returns the array's element count.
func (a Array) Len() int {
	switch v := a.d.(type) {
	case heap.Value:
		arr, _ := v.Array()

		return arr.Len()
	case wire.Value:
		arr, _ := v.Array()

		return arr.Len()
	default:
		return 0
	}
}

// Index returns the element at i, or an error if i is out of range.
func (a Array) Index(i int) (Document, error) {
	switch v := a.d.(type) {
	case heap.Value:
		arr, _ := v.Array()

		return arr.Index(i)
	case wire.Value:
		arr, _ := v.Array()

		return arr.Index(i)
	default:
		return nil, errs.Type("document.Array.Index", "", i, "not an array")
	}
}

// String is a validating newtype over a Document known to be a string.
type String struct{ d Document }

// AsString narrows d to a String, failing if d is not a string.
func AsString(d Document) (String, error) {
	if !d.IsStr() {
		return String{}, errs.Type("document.AsString", "", -1, "value is not a string")
	}

	return String{d: d}, nil
}

// Value returns the underlying string contents.
func (s String) Value() string {
	switch v := s.d.(type) {
	case heap.Value:
		str, _ := v.Str()

		return str
	case wire.Value:
		str, _ := v.Str()

		return str
	default:
		return ""
	}
}

// Number is a validating newtype over a Document known to be numeric
// (integer or decimal).
type Number struct{ d Document }

// AsNumber narrows d to a Number, failing if d is not numeric.
func AsNumber(d Document) (Number, error) {
	if !d.IsNumeric() {
		return Number{}, errs.Type("document.AsNumber", "", -1, "value is not numeric")
	}

	return Number{d: d}, nil
}

// Float64 widens the underlying integer or decimal to float64.
func (n Number) Float64() float64 {
	switch v := n.d.(type) {
	case heap.Value:
		f, _ := v.Numeric()

		return f
	case wire.Value:
		f, _ := v.Numeric()

		return f
	default:
		return 0
	}
}

// IsInteger reports whether the underlying value is an integer rather than
// a decimal.
func (n Number) IsInteger() bool { return n.d.IsInteger() }

// Boolean is a validating newtype over a Document known to be a boolean.
type Boolean struct{ d Document }

// AsBoolean narrows d to a Boolean, failing if d is not a boolean.
func AsBoolean(d Document) (Boolean, error) {
	if !d.IsBoolean() {
		return Boolean{}, errs.Type("document.AsBoolean", "", -1, "value is not a boolean")
	}

	return Boolean{d: d}, nil
}

// Value returns the underlying boolean.
func (b Boolean) Value() bool {
	switch v := b.d.(type) {
	case heap.Value:
		val, _ := v.Boolean()

		return val
	case wire.Value:
		val, _ := v.Boolean()

		return val
	default:
		return false
	}
}

// Null is a validating newtype over a Document known to be null.
type Null struct{ d Document }

// AsNull narrows d to a Null, failing if d is not null.
func AsNull(d Document) (Null, error) {
	if !d.IsNull() {
		return Null{}, errs.Type("document.AsNull", "", -1, "value is not null")
	}

	return Null{d: d}, nil
}
