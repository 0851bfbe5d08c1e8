package wire

import "github.com/arloliu/meson/errs"

// WrapBuffer wraps an externally-owned, already-finalized byte slice as a
// Buffer without copying it, per spec §6.3's "wrap an aligned external
// buffer" contract. raw must begin with a valid root tag (object or
// array); callers that cannot guarantee raw's lifetime should use
// WrapBufferCopy instead.
func WrapBuffer(raw []byte) (Buffer, error) {
	if _, err := Root(bytesSlice(raw)); err != nil {
		return Buffer{}, errs.InvalidArgument("wire.WrapBuffer", err.Error())
	}

	return New(raw), nil
}

// WrapBufferCopy copies raw and wraps the copy as a Buffer, for callers
// that cannot guarantee the original slice's lifetime or mutability
// (spec §6.3).
func WrapBufferCopy(raw []byte) (Buffer, error) {
	cp := make([]byte, len(raw))
	copy(cp, raw)

	return WrapBuffer(cp)
}

type bytesSlice []byte

func (b bytesSlice) Bytes() []byte { return b }
