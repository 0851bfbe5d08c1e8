// Package format declares the small enum shared between the finalized
// wire layout's optional compression envelope and the compress package.
// The seven user-visible value kinds and the finer-grained wire raw types
// live in package wire/layout; this package holds only the compression selector
// so codec/snapshot and compress can agree on a wire-stable numeric id
// without importing either package.
package format

// CompressionType identifies the compression algorithm applied to a
// codec/snapshot envelope (see SPEC_FULL.md §6.5). It is never part of the
// normative finalized object/array/string layout in package wire — only of
// the optional outer envelope wrapped around a complete finalized buffer.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
