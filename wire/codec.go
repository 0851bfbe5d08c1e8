package wire

import "github.com/arloliu/meson/wire/layout"

// This file exports the region writer/sizer primitives package finalize
// needs to serialize a heap tree into this format, without exposing the
// lower-level read/write helpers (readStringAt and friends) that only make
// sense once a Value already exists to anchor them.

// AppendString appends a value string region (no leading type tag — the
// caller's vtable entry already records the tier) to dst, returning the
// raw type tier chosen and the extended slice.
func AppendString(dst []byte, s string) (layout.RawType, []byte) {
	tier, _ := layout.StringTierFor(len(s))

	return tier, appendString(dst, s)
}

// StringRegionSize returns the byte size of s's value string region.
func StringRegionSize(s string) int { return stringRegionSize(s) }

// AppendInteger appends a value integer region in its narrowest tier to
// dst, returning the chosen tier and the extended slice.
func AppendInteger(dst []byte, v int64) (layout.RawType, []byte) {
	return layout.IntegerTierFor(v), appendInteger(dst, v)
}

// IntegerRegionSize returns the byte size of v's narrowest-tier integer
// region.
func IntegerRegionSize(v int64) int {
	return layout.IntegerSize(layout.IntegerTierFor(v))
}

// AppendDecimal appends a value decimal region in its narrowest tier to
// dst, returning the chosen tier and the extended slice.
func AppendDecimal(dst []byte, v float64) (layout.RawType, []byte) {
	if layout.DecimalFitsFloat32(v) {
		return layout.RawDecimal, appendDecimal(dst, v)
	}

	return layout.RawLongDecimal, appendDecimal(dst, v)
}

// DecimalRegionSize returns the byte size of v's narrowest-tier decimal
// region.
func DecimalRegionSize(v float64) int {
	if layout.DecimalFitsFloat32(v) {
		return 4
	}

	return 8
}
