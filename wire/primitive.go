package wire

import (
	"math"

	"github.com/arloliu/meson/wire/layout"
)

// readStringAt reads a length-prefixed, NUL-terminated string region
// beginning at offset. The prefix width is determined by tier; the NUL
// terminator is not part of the returned string (spec §4.1.4).
//
// Grounded on the teacher's encoding/varstring.go length-prefix reader,
// generalized from its single fixed prefix width to the three wire string
// tiers.
func readStringAt(b []byte, offset int, tier layout.RawType) string {
	prefixSize := layout.LengthPrefixSize(tier)

	var length int
	switch tier {
	case layout.RawSmallString:
		length = int(b[offset])
	case layout.RawString:
		length = int(le.Uint16(b[offset:]))
	case layout.RawBigString:
		length = int(le.Uint32(b[offset:]))
	}

	start := offset + prefixSize

	return string(b[start : start+length])
}

// appendString appends a length-prefixed, NUL-terminated string region to
// dst in the narrowest tier able to hold s, returning the extended slice.
func appendString(dst []byte, s string) []byte {
	tier, _ := layout.StringTierFor(len(s))

	switch tier {
	case layout.RawSmallString:
		dst = append(dst, byte(len(s)))
	case layout.RawString:
		dst = le.AppendUint16(dst, uint16(len(s)))
	case layout.RawBigString:
		dst = le.AppendUint32(dst, uint32(len(s)))
	}
	dst = append(dst, s...)
	dst = append(dst, 0) // NUL terminator

	return dst
}

// stringRegionSize returns the total byte size (prefix + bytes + NUL) of a
// string region holding s, used by upper_bound and the finalizer's offset
// bookkeeping.
func stringRegionSize(s string) int {
	tier, _ := layout.StringTierFor(len(s))

	return layout.LengthPrefixSize(tier) + len(s) + 1
}

func readIntegerAt(b []byte, offset int, tier layout.RawType) int64 {
	switch tier {
	case layout.RawShortInteger:
		return int64(int16(le.Uint16(b[offset:])))
	case layout.RawInteger:
		return int64(int32(le.Uint32(b[offset:])))
	case layout.RawLongInteger:
		return int64(le.Uint64(b[offset:]))
	default:
		return 0
	}
}

func appendInteger(dst []byte, v int64) []byte {
	tier := layout.IntegerTierFor(v)
	switch tier {
	case layout.RawShortInteger:
		dst = le.AppendUint16(dst, uint16(int16(v)))
	case layout.RawInteger:
		dst = le.AppendUint32(dst, uint32(int32(v)))
	case layout.RawLongInteger:
		dst = le.AppendUint64(dst, uint64(v))
	}

	return dst
}

func readDecimalAt(b []byte, offset int, tier layout.RawType) float64 {
	switch tier {
	case layout.RawDecimal:
		return float64(math.Float32frombits(le.Uint32(b[offset:])))
	case layout.RawLongDecimal:
		return math.Float64frombits(le.Uint64(b[offset:]))
	default:
		return 0
	}
}

func appendDecimal(dst []byte, v float64) []byte {
	if layout.DecimalFitsFloat32(v) {
		return le.AppendUint32(dst, math.Float32bits(float32(v)))
	}

	return le.AppendUint64(dst, math.Float64bits(v))
}
