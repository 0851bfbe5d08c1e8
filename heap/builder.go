package heap

import (
	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/wire/layout"
)

// Builder assembles a heap.Value tree from a flat stream of structural
// events, the shape every streaming front-end (codec/json, codec/yaml)
// drives it with: BeginObject/Key/BeginArray/Scalar/EndObject/EndArray.
// This mirrors a SAX-style push parser feeding a DOM builder rather than
// requiring each codec to know about Object/Array's COW internals
// directly.
//
// Grounded on the teacher's blob encoder accumulation style (Start*/Add*/
// Finish methods on NumericEncoder/TextEncoder build up one blob across a
// sequence of calls before a final materialize step); Builder generalizes
// that call sequence to arbitrary nesting depth via an explicit frame
// stack instead of a single flat accumulator.
type Builder struct {
	root    Value
	done    bool
	stack   []frame
	pendKey string
	haveKey bool
}

type frame struct {
	kind  frameKind
	obj   *Object
	arr   *Array
}

type frameKind uint8

const (
	frameObject frameKind = iota + 1
	frameArray
)

// NewBuilder returns a fresh Builder ready to receive events.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) top() (*frame, error) {
	if len(b.stack) == 0 {
		return nil, errs.State("heap.Builder", "no open object or array")
	}

	return &b.stack[len(b.stack)-1], nil
}

// BeginObject opens a new object, either as the document root or nested
// under the currently open key/array slot.
func (b *Builder) BeginObject() error {
	obj := newObject()
	if err := b.push(Value{kind: layout.KindObject, obj: obj}); err != nil {
		return err
	}
	b.stack = append(b.stack, frame{kind: frameObject, obj: obj})

	return nil
}

// EndObject closes the most recently opened object.
func (b *Builder) EndObject() error {
	f, err := b.top()
	if err != nil {
		return err
	}
	if f.kind != frameObject {
		return errs.State("heap.Builder.EndObject", "current frame is not an object")
	}
	b.stack = b.stack[:len(b.stack)-1]

	return nil
}

// BeginArray opens a new array, either as the document root or nested
// under the currently open key/array slot.
func (b *Builder) BeginArray() error {
	arr := newArray()
	if err := b.push(Value{kind: layout.KindArray, arr: arr}); err != nil {
		return err
	}
	b.stack = append(b.stack, frame{kind: frameArray, arr: arr})

	return nil
}

// EndArray closes the most recently opened array.
func (b *Builder) EndArray() error {
	f, err := b.top()
	if err != nil {
		return err
	}
	if f.kind != frameArray {
		return errs.State("heap.Builder.EndArray", "current frame is not an array")
	}
	b.stack = b.stack[:len(b.stack)-1]

	return nil
}

// Key records the key the next value (scalar or aggregate) will be stored
// under. Key must be called only while the current frame is an object.
func (b *Builder) Key(key string) error {
	f, err := b.top()
	if err != nil {
		return err
	}
	if f.kind != frameObject {
		return errs.State("heap.Builder.Key", "current frame is not an object")
	}
	b.pendKey = key
	b.haveKey = true

	return nil
}

// Scalar adds a non-aggregate value (string, integer, decimal, boolean, or
// null) to the currently open object (using the most recent Key) or array.
func (b *Builder) Scalar(v Value) error {
	return b.push(v)
}

// push places v into the currently open container (or sets it as the
// document root if no container is open yet), consuming any pending key.
func (b *Builder) push(v Value) error {
	if len(b.stack) == 0 {
		if b.done {
			return errs.State("heap.Builder", "document root already set")
		}
		b.root = v
		b.done = true

		return nil
	}

	f := &b.stack[len(b.stack)-1]
	switch f.kind {
	case frameObject:
		if !b.haveKey {
			return errs.State("heap.Builder", "value pushed into object with no pending key")
		}
		f.obj.Set(b.pendKey, v)
		b.haveKey = false
	case frameArray:
		f.arr.Append(v)
	}

	return nil
}

// Build returns the completed root Value. It is an error to call Build
// before every BeginObject/BeginArray has a matching End call.
func (b *Builder) Build() (Value, error) {
	if len(b.stack) != 0 {
		return Value{}, errs.State("heap.Builder.Build", "unclosed object or array")
	}
	if !b.done {
		return Value{}, errs.State("heap.Builder.Build", "no value was ever pushed")
	}

	return b.root, nil
}
