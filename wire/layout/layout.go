// Package layout declares the finalized binary layout's constants: the
// internal raw-type discriminator (finer than the seven user-visible
// kinds), alignment rules, and the packed vtable entry encoding used by
// both object and array regions. It has no dependency on heap or wire so
// that finalize, definalize, and wire can all share one definition of the
// wire format without an import cycle.
//
// Grounded on the teacher's section package (section/const.go,
// section/numeric_flag.go): a packed-field header with bit-masked sub-fields
// and a single source of truth for offsets/sizes. This module's layout has
// no flags header (the finalized format is self-describing per value, not
// per blob), so the packed field here is only the per-entry (raw_type,
// offset) pair rather than a blob-wide options word.
package layout

import (
	"fmt"
	"math"
)

// RawType is the finalized representation's type discriminator. It is
// strictly finer-grained than the seven user-visible Kind values: three
// string encodings and three integer widths collapse to one Kind each.
type RawType uint8

const (
	RawObject RawType = iota + 1
	RawArray
	RawSmallString // length <= 255, 1-byte length prefix
	RawString      // length <= 65535, 2-byte length prefix
	RawBigString   // length <= 2^32-1, 4-byte length prefix
	RawShortInteger
	RawInteger
	RawLongInteger
	RawDecimal
	RawLongDecimal
	RawBoolean
	RawNull
)

func (r RawType) String() string {
	switch r {
	case RawObject:
		return "object"
	case RawArray:
		return "array"
	case RawSmallString:
		return "small_string"
	case RawString:
		return "string"
	case RawBigString:
		return "big_string"
	case RawShortInteger:
		return "short_integer"
	case RawInteger:
		return "integer"
	case RawLongInteger:
		return "long_integer"
	case RawDecimal:
		return "decimal"
	case RawLongDecimal:
		return "long_decimal"
	case RawBoolean:
		return "boolean"
	case RawNull:
		return "null"
	default:
		return "unknown"
	}
}

// Kind is one of the seven user-visible value kinds. Introspection
// predicates over Kind are mutually exclusive (spec §3 invariants).
type Kind uint8

const (
	KindObject Kind = iota + 1
	KindArray
	KindString
	KindInteger
	KindDecimal
	KindBoolean
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Kind maps a raw type down to its user-visible kind.
func (r RawType) Kind() Kind {
	switch r {
	case RawObject:
		return KindObject
	case RawArray:
		return KindArray
	case RawSmallString, RawString, RawBigString:
		return KindString
	case RawShortInteger, RawInteger, RawLongInteger:
		return KindInteger
	case RawDecimal, RawLongDecimal:
		return KindDecimal
	case RawBoolean:
		return KindBoolean
	case RawNull:
		return KindNull
	default:
		return 0
	}
}

// IsStringTag reports whether r is one of the three string raw types.
func (r RawType) IsStringTag() bool {
	return r == RawSmallString || r == RawString || r == RawBigString
}

// Sizes and alignment rules (spec §4.1.5).
const (
	AggregateAlign = 8 // object/array regions are 8-byte aligned
	IntegerAlign16 = 2
	IntegerAlign32 = 4
	IntegerAlign64 = 8
	DecimalAlign32 = 4
	DecimalAlign64 = 8
	StringAlign    = 1
	BooleanSize    = 1
	NullSize       = 0

	// AggregateHeaderSize is the fixed [total_size:u32][count:u32] prefix
	// shared by object and array regions.
	AggregateHeaderSize = 8

	// VTableEntrySize is the packed {raw_type:u8, offset:u24} entry width.
	VTableEntrySize = 4

	// MaxAggregateSize is 2^32-1, the largest total_size an object/array
	// region may encode (spec §3 invariant, enforced as errs.ErrLengthError).
	MaxAggregateSize = math.MaxUint32
)

// Align rounds n up to the given power-of-two alignment.
func Align(n int, alignment int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// AlignOf returns the natural alignment for a value of raw type r, used by
// both the finalizer's padding logic and upper_bound's over-estimate.
func AlignOf(r RawType) int {
	switch r {
	case RawObject, RawArray:
		return AggregateAlign
	case RawLongInteger, RawLongDecimal:
		return IntegerAlign64
	case RawInteger, RawDecimal:
		return IntegerAlign32
	case RawShortInteger:
		return IntegerAlign16
	default:
		return StringAlign
	}
}

// EncodeVTableEntry packs a (raw_type, offset) pair into the wire format's
// 4-byte vtable entry: byte 0 is raw_type, bytes 1-3 are the little-endian
// 24-bit offset.
func EncodeVTableEntry(raw RawType, offset uint32) ([VTableEntrySize]byte, error) {
	var b [VTableEntrySize]byte
	if offset > 0xFFFFFF {
		return b, fmt.Errorf("layout: offset %d exceeds 24-bit vtable entry range", offset)
	}
	b[0] = byte(raw)
	b[1] = byte(offset)
	b[2] = byte(offset >> 8)
	b[3] = byte(offset >> 16)

	return b, nil
}

// DecodeVTableEntry unpacks a 4-byte vtable entry.
func DecodeVTableEntry(b []byte) (raw RawType, offset uint32) {
	raw = RawType(b[0])
	offset = uint32(b[1]) | uint32(b[2])<<8 | uint32(b[3])<<16

	return raw, offset
}

// StringTierFor returns the narrowest raw string type able to hold a
// string of the given byte length, or an error if it exceeds 2^32-1.
func StringTierFor(byteLen int) (RawType, error) {
	switch {
	case byteLen <= 0xFF:
		return RawSmallString, nil
	case byteLen <= 0xFFFF:
		return RawString, nil
	case int64(byteLen) <= math.MaxUint32:
		return RawBigString, nil
	default:
		return 0, fmt.Errorf("layout: string length %d exceeds max_aggregate_size", byteLen)
	}
}

// LengthPrefixSize returns the byte width of the length prefix for a string
// raw type (1, 2, or 4 bytes).
func LengthPrefixSize(r RawType) int {
	switch r {
	case RawSmallString:
		return 1
	case RawString:
		return 2
	case RawBigString:
		return 4
	default:
		return 0
	}
}

// IntegerTierFor returns the narrowest raw integer type able to losslessly
// hold v.
func IntegerTierFor(v int64) RawType {
	switch {
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return RawShortInteger
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return RawInteger
	default:
		return RawLongInteger
	}
}

// IntegerSize returns the byte width of the given integer raw type.
func IntegerSize(r RawType) int {
	switch r {
	case RawShortInteger:
		return 2
	case RawInteger:
		return 4
	case RawLongInteger:
		return 8
	default:
		return 0
	}
}

// DecimalFitsFloat32 reports whether v round-trips exactly through float32,
// the finalizer's rule for choosing `decimal` (f32) over `long_decimal` (f64).
func DecimalFitsFloat32(v float64) bool {
	return float64(float32(v)) == v
}
