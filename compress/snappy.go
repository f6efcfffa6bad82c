package compress

import (
	"bytes"
	"fmt"

	"github.com/corewald/vach/errs"
	"github.com/klauspost/compress/s2"
)

// SnappyCodec compresses leaf bodies using the standard Snappy frame
// format.
//
// The teacher uses klauspost/compress/s2 directly as its own codec
// (compress/s2.go in mebo, S2Compressor). vach keeps the same
// dependency but drives s2.NewWriter with s2.WriterSnappyCompat(), which
// makes the writer emit frames a stock Snappy decoder understands —
// matching spec.md §4.3/§6's requirement for genuine Snappy frame
// output rather than the native (faster, incompatible) S2 format.
type SnappyCodec struct{}

var _ Codec = SnappyCodec{}

func (SnappyCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := s2.NewWriter(&buf, s2.WriterSnappyCompat())

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: snappy compress: %w", errs.ErrDecompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: snappy compress: %w", errs.ErrDecompression, err)
	}

	return buf.Bytes(), nil
}

func (SnappyCodec) Decompress(data []byte) ([]byte, error) {
	r := s2.NewReader(bytes.NewReader(data))

	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: snappy decompress: %w", errs.ErrDecompression, err)
	}

	return out.Bytes(), nil
}
