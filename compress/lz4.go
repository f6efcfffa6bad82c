package compress

import (
	"bytes"
	"fmt"

	"github.com/corewald/vach/errs"
	"github.com/pierrec/lz4/v4"
)

// LZ4Codec compresses leaf bodies using the LZ4 frame format, so a
// decompressor can recover a body's exact length without consulting
// anything outside the compressed stream itself.
//
// The teacher's own LZ4Compressor (compress/lz4.go in mebo) drives the
// block API (lz4.Compressor.CompressBlock) because mebo already knows
// each payload's length from its own header; vach's leaf bodies are
// fetched independently of any header field recording their
// uncompressed size, so the frame API is used here instead.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: lz4 compress: %w", errs.ErrDecompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: lz4 compress: %w", errs.ErrDecompression, err)
	}

	return buf.Bytes(), nil
}

func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))

	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: lz4 decompress: %w", errs.ErrDecompression, err)
	}

	return out.Bytes(), nil
}
