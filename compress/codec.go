// Package compress provides the three leaf-body compression algorithms
// vach supports: LZ4, Snappy and Brotli, each in their self-describing
// frame format so a fetched leaf body can be decompressed independently
// of any other leaf in the container.
//
// The Compressor/Decompressor/Codec interface split and the
// algorithm-keyed factory function follow mebo's compress package
// (Codec interface, CreateCodec); the algorithm set itself is vach's own
// (spec.md §4.3), not mebo's.
package compress

import (
	"fmt"

	"github.com/corewald/vach/errs"
	"github.com/corewald/vach/flags"
	"github.com/corewald/vach/format"
)

// Compressor compresses a full in-memory buffer.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a full in-memory buffer previously produced
// by the matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions for one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// New returns the Codec for the given algorithm. quality is only
// meaningful for format.Brotli, where it must be in
// [format.BrotliMinQuality, format.BrotliMaxQuality]; it is ignored for
// LZ4 and Snappy.
func New(algo format.Algorithm, quality int) (Codec, error) {
	switch algo {
	case format.LZ4:
		return LZ4Codec{}, nil
	case format.Snappy:
		return SnappyCodec{}, nil
	case format.Brotli:
		if quality < format.BrotliMinQuality || quality > format.BrotliMaxQuality {
			return nil, fmt.Errorf("%w: brotli quality %d outside [%d,%d]",
				errs.ErrDecompression, quality, format.BrotliMinQuality, format.BrotliMaxQuality)
		}

		return BrotliCodec{Quality: quality}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %v", errs.ErrDecompression, algo)
	}
}

// NewDecoder returns a Decompressor for algo. Unlike New, it performs no
// quality validation: the Brotli quality a leaf was compressed with is
// not recorded anywhere the decoder needs, since Brotli's frame format
// is self-describing on the decode side.
func NewDecoder(algo format.Algorithm) (Decompressor, error) {
	switch algo {
	case format.LZ4:
		return LZ4Codec{}, nil
	case format.Snappy:
		return SnappyCodec{}, nil
	case format.Brotli:
		return BrotliCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %v", errs.ErrDecompression, algo)
	}
}

// FromFlags infers which algorithm an already-stored, COMPRESSED entry
// used, from its flag bits. Per spec.md §4.3/§9, a COMPRESSED entry with
// no algorithm bit — or with more than one — is a hard error; the
// reference implementation never permissively defaults to LZ4.
func FromFlags(f flags.Flags) (format.Algorithm, error) {
	bits := f.AlgorithmBits()
	switch bits {
	case flags.LZ4:
		return format.LZ4, nil
	case flags.Snappy:
		return format.Snappy, nil
	case flags.Brotli:
		return format.Brotli, nil
	default:
		return 0, fmt.Errorf("%w: ambiguous or missing algorithm flag bits", errs.ErrDecompression)
	}
}

// FlagFor returns the single reserved bit corresponding to algo.
func FlagFor(algo format.Algorithm) (flags.Flags, error) {
	switch algo {
	case format.LZ4:
		return flags.LZ4, nil
	case format.Snappy:
		return flags.Snappy, nil
	case format.Brotli:
		return flags.Brotli, nil
	default:
		return 0, fmt.Errorf("%w: unsupported algorithm %v", errs.ErrDecompression, algo)
	}
}
