// Package format declares the small value types shared between a leaf
// descriptor and the compressor: which algorithm to use, and when to use
// it. The enum-plus-String() shape follows mebo's format package
// (EncodingType/CompressionType), repointed at vach's three compression
// algorithms instead of mebo's encoding strategies.
package format

// Algorithm selects one of the three compression schemes a leaf's body
// may be stored under.
type Algorithm uint8

const (
	LZ4 Algorithm = iota + 1
	Snappy
	Brotli
)

func (a Algorithm) String() string {
	switch a {
	case LZ4:
		return "LZ4"
	case Snappy:
		return "Snappy"
	case Brotli:
		return "Brotli"
	default:
		return "Unknown"
	}
}

// CompressMode controls whether and how a leaf's body is compressed
// during the writer's prepare stage.
type CompressMode uint8

const (
	// Never stores the body as-is.
	Never CompressMode = iota
	// Always compresses the body with the leaf's chosen Algorithm.
	Always
	// Detect compresses into a scratch buffer and keeps whichever of
	// {original, compressed} is shorter, preferring compressed on a tie.
	Detect
)

func (m CompressMode) String() string {
	switch m {
	case Never:
		return "Never"
	case Always:
		return "Always"
	case Detect:
		return "Detect"
	default:
		return "Unknown"
	}
}

// BrotliMinQuality and BrotliMaxQuality bound the Brotli quality
// parameter; values outside this range are rejected before any bytes are
// written (spec.md §8, "Boundary behaviors").
const (
	BrotliMinQuality = 1
	BrotliMaxQuality = 11
	// BrotliWindow is the fixed LZ77 window size bits used for every
	// Brotli-compressed leaf body.
	BrotliWindow = 21
)
