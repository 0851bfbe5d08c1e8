// Package snapshot implements the optional envelope format that wraps a
// complete finalized document buffer with a compression algorithm tag and
// its uncompressed length, so a reader can decompress and validate without
// any out-of-band configuration.
//
// Envelope layout (little-endian, fixed 8-byte header):
//
//	offset 0: magic byte, always envelopeMagic
//	offset 1: format.CompressionType (1 byte)
//	offset 2: reserved (2 bytes, zero)
//	offset 4: uncompressed length (uint32)
//	offset 8: compressed (or raw, if CompressionNone) payload bytes
//
// A fixed leading header of packed fields followed by a variable payload,
// built on the compress package's Codec/CompressionType split.
package snapshot

import (
	"github.com/arloliu/meson/compress"
	"github.com/arloliu/meson/endian"
	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/format"
)

const (
	envelopeMagic  byte = 0xE5
	headerSize          = 8
)

var le = endian.GetLittleEndianEngine()

// Wrap compresses raw (a finalized document buffer's bytes) using the
// codec for compression, and prepends the envelope header.
func Wrap(raw []byte, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, errs.InvalidArgument("snapshot.Wrap", err.Error())
	}

	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, errs.State("snapshot.Wrap", "compression failed: "+err.Error())
	}

	out := make([]byte, headerSize+len(payload))
	out[0] = envelopeMagic
	out[1] = byte(compression)
	le.PutUint32(out[4:8], uint32(len(raw)))
	copy(out[headerSize:], payload)

	return out, nil
}

// Unwrap validates the envelope header and decompresses its payload back
// into a finalized document buffer's raw bytes.
func Unwrap(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, errs.Parse("snapshot.Unwrap", "envelope shorter than header")
	}
	if data[0] != envelopeMagic {
		return nil, errs.Parse("snapshot.Unwrap", "bad envelope magic")
	}

	compression := format.CompressionType(data[1])
	uncompressedLen := le.Uint32(data[4:8])

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, errs.Parse("snapshot.Unwrap", err.Error())
	}

	raw, err := codec.Decompress(data[headerSize:])
	if err != nil {
		return nil, errs.State("snapshot.Unwrap", "decompression failed: "+err.Error())
	}
	if uint32(len(raw)) != uncompressedLen {
		return nil, errs.Parse("snapshot.Unwrap", "decompressed length does not match envelope header")
	}

	return raw, nil
}
