// Package compress provides compression and decompression codecs for the
// codec/snapshot envelope that wraps a finalized document buffer.
//
// Compression is applied to the whole finalized buffer as a single opaque
// byte slice, after the heap tree has already been finalized into the wire
// layout (package finalize). The snapshot envelope records which algorithm
// was used so a reader can select the matching decompressor without
// out-of-band configuration.
//
// # Supported Algorithms
//
// **NoOp Compression** (format.CompressionNone)
//
//	codec := compress.NewNoOpCompressor()
//	compressed, _ := codec.Compress(data)    // Returns data unchanged
//	original, _ := codec.Decompress(compressed)
//
// Use when documents are small or already incompressible.
//
// **Zstandard (Zstd)** (format.CompressionZstd)
//
//	codec := compress.NewZstdCompressor()
//	compressed, _ := codec.Compress(data)    // Best compression ratio
//
// Best compression ratio; moderate speed. Good for archival snapshots and
// network transmission where bandwidth matters more than CPU.
//
// **S2 (Snappy successor)** (format.CompressionS2)
//
//	codec := compress.NewS2Compressor()
//
// Balanced speed and ratio; a good default for snapshots written on a hot
// path.
//
// **LZ4** (format.CompressionLZ4)
//
//	codec := compress.NewLZ4Compressor()
//
// Fastest decompression; moderate compression ratio. Good for read-heavy
// workloads where snapshots are decompressed far more often than they are
// produced.
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// CreateCodec and GetCodec construct/retrieve a Codec from a
// format.CompressionType, the numeric id persisted in a snapshot envelope's
// header (see package codec/snapshot).
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use.
package compress
