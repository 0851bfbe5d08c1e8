package query

import (
	"golang.org/x/text/unicode/norm"

	"github.com/arloliu/meson/heap"
)

// NormalizedLookup finds obj's value for key after normalizing both the
// lookup key and the object's stored keys to Unicode NFC, so callers
// comparing human-authored keys from different input sources (composed
// vs. decomposed accents, for instance) don't miss a match over a byte
// difference the object's exact-match Lookup wouldn't see: byte-exact
// lookup is otherwise brittle against Unicode's multiple valid encodings
// of one logical string.
func NormalizedLookup(obj *heap.Object, key string) (heap.Value, bool) {
	target := norm.NFC.String(key)

	for i := 0; i < obj.Len(); i++ {
		k, v, _ := obj.At(i)
		if norm.NFC.String(k) == target {
			return v, true
		}
	}

	return heap.Value{}, false
}
