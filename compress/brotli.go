package compress

import (
	"bytes"
	"fmt"

	"github.com/andybalholm/brotli"
	"github.com/corewald/vach/errs"
	"github.com/corewald/vach/format"
)

// BrotliCodec compresses leaf bodies with Brotli at a fixed window size
// and caller-chosen quality. Quality must be validated by the caller
// (compress.New does this) before constructing a BrotliCodec directly.
//
// No example repo in the retrieval pack imports a Brotli encoder; this
// dependency is added from the wider Go ecosystem specifically to meet
// spec.md §4.3/§6's Brotli requirement (quality 1-11, window 21).
type BrotliCodec struct {
	Quality int
}

var _ Codec = BrotliCodec{}

func (c BrotliCodec) Compress(data []byte) ([]byte, error) {
	if c.Quality < format.BrotliMinQuality || c.Quality > format.BrotliMaxQuality {
		return nil, fmt.Errorf("%w: brotli quality %d outside [%d,%d]",
			errs.ErrDecompression, c.Quality, format.BrotliMinQuality, format.BrotliMaxQuality)
	}

	var buf bytes.Buffer
	w := brotli.NewWriterOptions(&buf, brotli.WriterOptions{
		Quality: c.Quality,
		LGWin:   format.BrotliWindow,
	})

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: brotli compress: %w", errs.ErrDecompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: brotli compress: %w", errs.ErrDecompression, err)
	}

	return buf.Bytes(), nil
}

func (BrotliCodec) Decompress(data []byte) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(data))

	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: brotli decompress: %w", errs.ErrDecompression, err)
	}

	return out.Bytes(), nil
}
