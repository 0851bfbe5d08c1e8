package wire

import "github.com/arloliu/meson/wire/layout"

// AppendKeyRegion appends a self-describing object key region to dst: a
// leading 1-byte raw type tag (one of the three string tiers) followed by
// the tier-appropriate length-prefixed, NUL-terminated bytes.
//
// Object key regions need this extra tag byte that value regions don't:
// a value's type is already recorded in its vtable entry's raw_type field,
// but an object's vtable entry raw_type records the *value's* type, leaving
// the key's own string tier otherwise undiscoverable. This mirrors how the
// finalized format treats every region as self-describing (spec §4.1)
// wherever the surrounding structure doesn't already supply the
// discriminant.
//
// Grounded on the teacher's encoding/varstring.go buffer-growth idiom,
// extended with the leading tag byte this format's object keys require.
func AppendKeyRegion(dst []byte, key string) []byte {
	tier, _ := layout.StringTierFor(len(key))
	dst = append(dst, byte(tier))

	return appendString(dst, key)
}

// KeyRegionSize returns the total byte size of a key region (tag + prefix
// + bytes + NUL) for the given key, used by the finalizer's upper_bound
// pre-pass and offset bookkeeping.
func KeyRegionSize(key string) int {
	return 1 + stringRegionSize(key)
}

// keyRegionSizeAt returns the byte size of the key region stored at
// offset, read from its own leading tag and length prefix so the value
// that follows it can be located without a side table.
func keyRegionSizeAt(b []byte, offset int) int {
	tag := layout.RawType(b[offset])
	prefixSize := layout.LengthPrefixSize(tag)

	var length int
	switch tag {
	case layout.RawSmallString:
		length = int(b[offset+1])
	case layout.RawString:
		length = int(le.Uint16(b[offset+1:]))
	case layout.RawBigString:
		length = int(le.Uint32(b[offset+1:]))
	}

	return 1 + prefixSize + length + 1 // tag + prefix + bytes + NUL
}
