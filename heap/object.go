package heap

import (
	"sort"

	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/internal/hash"
	"github.com/arloliu/meson/internal/refcount"
)

// objNode is the shared, mutable backing store for an Object. It is forked
// (copied) whenever a write reaches it while more than one Object handle
// references it — the copy-on-write contract operates at this node
// granularity, not per key (spec §4.2.3): a Set on one key forks the whole
// node, but the child Values already stored in it keep their own
// independent refcounts untouched by the fork.
//
// Grounded on internal/collision.Tracker's hash-to-name map plus ordered
// name list, generalized from metric-name tracking during blob encoding to
// general-purpose object key storage with the same collision fallback.
type objNode struct {
	keys    []string
	vals    []Value
	hashIdx map[uint64]int // xxhash(key) -> index into keys/vals
}

func cloneObjNode(n *objNode) *objNode {
	clone := &objNode{
		keys:    append([]string(nil), n.keys...),
		vals:    append([]Value(nil), n.vals...),
		hashIdx: make(map[uint64]int, len(n.hashIdx)),
	}
	for h, idx := range n.hashIdx {
		clone.hashIdx[h] = idx
	}

	return clone
}

// Object is a mutable, ordered key/value map (spec §4.2.1). Keys are
// tracked in insertion order; lookup is O(1) in the common case via an
// xxhash index, falling back to a linear scan only when two distinct keys
// collide under that hash.
type Object struct {
	h refcount.Owning[*objNode]
}

func newObject() *Object {
	return &Object{h: refcount.NewOwning(&objNode{hashIdx: make(map[uint64]int)}, nil)}
}

func (o *Object) node() *objNode { return o.h.Value() }

// clone returns a new Object handle sharing the same underlying node,
// incrementing its holder count. Used by Value.Clone when an aggregate
// Value is duplicated into a second container.
func (o *Object) clone() *Object {
	return &Object{h: o.h.Clone()}
}

// ensureUnique forks the node if any other Object handle shares it,
// giving this handle exclusive ownership before a write proceeds.
func (o *Object) ensureUnique() {
	if !o.h.Shared() {
		return
	}

	cloned := cloneObjNode(o.node())
	o.h.Release()
	o.h = refcount.NewOwning(cloned, nil)
}

// Len returns the number of keys in the object.
func (o *Object) Len() int { return len(o.node().keys) }

// Keys returns the object's keys in insertion order. The returned slice
// must not be mutated by the caller.
func (o *Object) Keys() []string { return o.node().keys }

func (o *Object) indexOf(key string) (int, bool) {
	n := o.node()
	h := hash.ID(key)

	idx, ok := n.hashIdx[h]
	if !ok {
		return 0, false
	}
	if n.keys[idx] == key {
		return idx, true
	}

	// Hash collision: fall back to a linear scan for the true index.
	for i, k := range n.keys {
		if k == key {
			return i, true
		}
	}

	return 0, false
}

// Get returns the value stored under key, or false if key is absent.
func (o *Object) Get(key string) (Value, bool) {
	idx, ok := o.indexOf(key)
	if !ok {
		return Value{}, false
	}

	return o.node().vals[idx], true
}

// GetOr returns the value stored under key, or def if key is absent.
func (o *Object) GetOr(key string, def Value) Value {
	v, ok := o.Get(key)
	if !ok {
		return def
	}

	return v
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.indexOf(key)

	return ok
}

// Set inserts or overwrites the value stored under key, forking the node
// first if it is shared. Set adopts val: if the caller needs to keep using
// val elsewhere, it must call val.Clone() before passing it in (spec §5's
// explicit-ownership-transfer convention).
func (o *Object) Set(key string, val Value) {
	o.ensureUnique()

	n := o.node()
	if idx, ok := o.indexOf(key); ok {
		n.vals[idx] = val

		return
	}

	n.keys = append(n.keys, key)
	n.vals = append(n.vals, val)
	n.hashIdx[hash.ID(key)] = len(n.keys) - 1
}

// Delete removes key, forking the node first if shared. Reports whether
// key was present.
func (o *Object) Delete(key string) bool {
	idx, ok := o.indexOf(key)
	if !ok {
		return false
	}

	o.ensureUnique()
	n := o.node()

	removedKey := n.keys[idx]
	n.keys = append(n.keys[:idx], n.keys[idx+1:]...)
	n.vals = append(n.vals[:idx], n.vals[idx+1:]...)
	delete(n.hashIdx, hash.ID(removedKey))

	// Every index at or after idx shifted down by one.
	for k, i := range n.hashIdx {
		if i > idx {
			n.hashIdx[k] = i - 1
		}
	}

	return true
}

// At returns the i'th key/value pair in insertion order, or an error if i
// is out of range.
func (o *Object) At(i int) (key string, val Value, err error) {
	n := o.node()
	if i < 0 || i >= len(n.keys) {
		return "", Value{}, errs.OutOfRange("heap.Object.At", i)
	}

	return n.keys[i], n.vals[i], nil
}

// SortedKeys returns a copy of the object's keys in sorted order, the
// order the finalizer writes object vtables in (spec §4.1.1, §4.3).
func (o *Object) SortedKeys() []string {
	keys := append([]string(nil), o.node().keys...)
	sort.Strings(keys)

	return keys
}

func (o *Object) equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}

	for i := 0; i < o.Len(); i++ {
		key, val, _ := o.At(i)
		otherVal, ok := other.Get(key)
		if !ok || !Equal(val, otherVal) {
			return false
		}
	}

	return true
}
