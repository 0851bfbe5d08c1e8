package heap

import (
	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/internal/refcount"
)

// arrNode is the shared, mutable backing store for an Array, forked on
// write when shared, exactly as objNode is for Object.
type arrNode struct {
	vals []Value
}

func cloneArrNode(n *arrNode) *arrNode {
	return &arrNode{vals: append([]Value(nil), n.vals...)}
}

// Array is a mutable, index-ordered sequence (spec §4.2.2).
type Array struct {
	h refcount.Owning[*arrNode]
}

func newArray() *Array {
	return &Array{h: refcount.NewOwning(&arrNode{}, nil)}
}

func (a *Array) node() *arrNode { return a.h.Value() }

func (a *Array) clone() *Array {
	return &Array{h: a.h.Clone()}
}

func (a *Array) ensureUnique() {
	if !a.h.Shared() {
		return
	}

	cloned := cloneArrNode(a.node())
	a.h.Release()
	a.h = refcount.NewOwning(cloned, nil)
}

// Len returns the number of elements in the array.
func (a *Array) Len() int { return len(a.node().vals) }

// Index returns the element at position i, or an error if out of range.
func (a *Array) Index(i int) (Value, error) {
	n := a.node()
	if i < 0 || i >= len(n.vals) {
		return Value{}, errs.OutOfRange("heap.Array.Index", i)
	}

	return n.vals[i], nil
}

// Append adds val to the end of the array, forking first if shared. Append
// adopts val per the same ownership-transfer convention as Object.Set.
func (a *Array) Append(val Value) {
	a.ensureUnique()
	n := a.node()
	n.vals = append(n.vals, val)
}

// Set overwrites the element at position i, forking first if shared.
func (a *Array) Set(i int, val Value) error {
	if i < 0 || i >= a.Len() {
		return errs.OutOfRange("heap.Array.Set", i)
	}

	a.ensureUnique()
	a.node().vals[i] = val

	return nil
}

// Insert inserts val at position i, shifting subsequent elements right.
func (a *Array) Insert(i int, val Value) error {
	if i < 0 || i > a.Len() {
		return errs.OutOfRange("heap.Array.Insert", i)
	}

	a.ensureUnique()
	n := a.node()
	n.vals = append(n.vals, Value{})
	copy(n.vals[i+1:], n.vals[i:])
	n.vals[i] = val

	return nil
}

// Remove deletes the element at position i, shifting subsequent elements
// left.
func (a *Array) Remove(i int) error {
	if i < 0 || i >= a.Len() {
		return errs.OutOfRange("heap.Array.Remove", i)
	}

	a.ensureUnique()
	n := a.node()
	n.vals = append(n.vals[:i], n.vals[i+1:]...)

	return nil
}

func (a *Array) equal(other *Array) bool {
	if a.Len() != other.Len() {
		return false
	}

	for i := 0; i < a.Len(); i++ {
		v1, _ := a.Index(i)
		v2, _ := other.Index(i)
		if !Equal(v1, v2) {
			return false
		}
	}

	return true
}
