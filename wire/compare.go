package wire

import "bytes"

// Equal reports whether a and b encode equal document values. Both are
// finalized, so when two aggregates begin at the same offset and their
// regions are byte-identical (e.g. the roots of two buffers produced by
// finalizing equal heap trees with this module's canonical narrowest-form
// encoding) a byte comparison of their regions suffices; vtable offsets
// are absolute, so regions at different offsets are never compared that
// way. Otherwise Equal falls back to the structural recursive comparison every
// representation must support (spec §4.1.8, §9 Open Question: wire-to-wire
// comparison).
//
// Grounded on the teacher's blob comparison helpers (tests/comparison
// helpers compare decoded values field by field rather than raw bytes,
// since blob encodings are not required to be canonical); this format
// additionally offers the byte-shortcut because finalize.Finalize is
// deterministic and canonical for a given heap tree.
func Equal(a, b Value) bool {
	if a.raw != b.raw {
		return false
	}

	if a.IsAggregate() && a.start == b.start {
		ra, rb := a.bytes(), b.bytes()
		size := int(le.Uint32(ra[a.start:]))
		if size == int(le.Uint32(rb[b.start:])) && a.start+size <= len(ra) && b.start+size <= len(rb) &&
			bytes.Equal(ra[a.start:a.start+size], rb[b.start:b.start+size]) {
			return true
		}
	}

	switch {
	case a.IsObject():
		return equalObjects(a, b)
	case a.IsArray():
		return equalArrays(a, b)
	case a.IsStr():
		sa, _ := a.Str()
		sb, _ := b.Str()

		return sa == sb
	case a.IsInteger():
		na, _ := a.Integer()
		nb, _ := b.Integer()

		return na == nb
	case a.IsDecimal():
		fa, _ := a.Decimal()
		fb, _ := b.Decimal()

		return fa == fb
	case a.IsBoolean():
		ba, _ := a.Boolean()
		bb, _ := b.Boolean()

		return ba == bb
	case a.IsNull():
		return true
	default:
		return false
	}
}

func equalObjects(a, b Value) bool {
	oa, _ := a.Object()
	ob, _ := b.Object()
	if oa.Len() != ob.Len() {
		return false
	}

	for i := 0; i < oa.Len(); i++ {
		ka, va, _ := oa.At(i)
		vb, ok := ob.Lookup(ka)
		if !ok || !Equal(va, vb) {
			return false
		}
	}

	return true
}

func equalArrays(a, b Value) bool {
	aa, _ := a.Array()
	ab, _ := b.Array()
	if aa.Len() != ab.Len() {
		return false
	}

	for i := 0; i < aa.Len(); i++ {
		va, _ := aa.Index(i)
		vb, _ := ab.Index(i)
		if !Equal(va, vb) {
			return false
		}
	}

	return true
}
