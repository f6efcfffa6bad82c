// Package writer implements vach's container-producing pipeline: a
// parallel "prepare" stage (compress, then encrypt, each leaf
// independently) feeding a single serial "commit" stage that stamps
// monotonically increasing offsets, accumulates the registry, signs
// entries that request it, and finally writes the header and registry
// to the sink.
//
// No example repo in the retrieval pack implements a concurrent
// producer/single consumer pipeline; the worker pool here is built on
// golang.org/x/sync/errgroup (observed as an indirect dependency of
// tinyrange-cc) rather than a hand-rolled sync.WaitGroup and error
// channel.
package writer

import (
	"fmt"
	"io"

	"github.com/corewald/vach/compress"
	"github.com/corewald/vach/crypto"
	"github.com/corewald/vach/errs"
	"github.com/corewald/vach/flags"
	"github.com/corewald/vach/format"
	"github.com/corewald/vach/internal/idset"
	"github.com/corewald/vach/internal/pool"
	"github.com/corewald/vach/leaf"
	"github.com/corewald/vach/section"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is invoked once per leaf, in commit order, after its
// entry has been finalized and its body written to the sink. The entry
// itself reaches the sink only when the registry is written, after the
// last leaf.
type ProgressFunc func(entry section.Entry, body []byte)

// preparedLeaf is what the prepare stage hands to the commit stage: the
// fully processed body and a partial entry missing only location/offset
// (and, if requested, a signature).
type preparedLeaf struct {
	id             string
	body           []byte
	entryFlags     flags.Flags
	contentVersion uint8
	sign           bool
}

// Dump processes leaves according to cfg and writes a complete container
// to sink, returning the total number of bytes written. A nil cfg uses
// NewConfig's defaults.
//
// Dump fails fast, before any bytes are written, on a duplicate leaf id,
// on a compressing leaf whose algorithm or Brotli quality is invalid, or
// on an encryption request with no signing key configured (spec.md
// §4.6, "Encryption precondition").
func Dump(sink io.WriteSeeker, leaves []leaf.Leaf, cfg *Config, progress ProgressFunc) (uint64, error) {
	var err error
	if cfg == nil {
		cfg, err = NewConfig()
		if err != nil {
			return 0, err
		}
	}

	if len(leaves) > int(^uint16(0)) {
		return 0, fmt.Errorf("%w: %d leaves exceeds the 16-bit capacity field", errs.ErrMalformedArchive, len(leaves))
	}

	tracker := idset.NewTracker(len(leaves))
	for _, l := range leaves {
		if err := tracker.Add(l.ID); err != nil {
			return 0, err
		}
		if l.Config.Encrypt && cfg.Signer == nil {
			return 0, errs.ErrNoKeypair
		}
		if l.Config.Compress != format.Never {
			if _, err := compress.New(l.Config.Algorithm, l.Config.BrotliQuality); err != nil {
				return 0, fmt.Errorf("leaf %q: %w", l.ID, err)
			}
		}
	}

	var encryptor *crypto.Encryptor
	if anyEncrypted(leaves) {
		encryptor, err = crypto.NewEncryptor(cfg.Signer.VerifyingKey(), cfg.Magic)
		if err != nil {
			return 0, err
		}
	}

	dataRegionStart := uint64(section.HeaderSize)
	for _, l := range leaves {
		dataRegionStart += uint64(section.PrefixSize + len(l.ID))
		if cfg.Signer != nil && l.Config.Sign {
			dataRegionStart += uint64(section.SignatureSize)
		}
	}

	results := make(chan preparedLeaf, len(leaves))

	g := new(errgroup.Group)
	g.SetLimit(cfg.NumWorkers)

	for _, l := range leaves {
		g.Go(func() error {
			rec, err := prepareLeaf(l, encryptor)
			if err != nil {
				return fmt.Errorf("leaf %q: %w", l.ID, err)
			}
			results <- rec

			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	registry := make([]byte, 0, dataRegionStart-uint64(section.HeaderSize))

	if _, seekErr := sink.Seek(int64(dataRegionStart), io.SeekStart); seekErr != nil { //nolint:gosec // container sizes fit int64
		return 0, seekErr
	}

	current := dataRegionStart

	for rec := range results {
		entry := section.Entry{
			Flags:          rec.entryFlags,
			ContentVersion: rec.contentVersion,
			Location:       current,
			Offset:         uint64(len(rec.body)),
			ID:             rec.id,
		}

		if rec.sign && cfg.Signer != nil {
			entry.Flags.ForceSet(flags.Signed, true)

			signedPrefix, prefixErr := entry.SignedPrefix()
			if prefixErr != nil {
				return 0, prefixErr
			}

			message := make([]byte, 0, len(rec.body)+len(signedPrefix))
			message = append(message, rec.body...)
			message = append(message, signedPrefix...)
			entry.Signature = cfg.Signer.Sign(message)
		}

		entryBytes, entryErr := entry.Bytes(false)
		if entryErr != nil {
			return 0, entryErr
		}

		registry = append(registry, entryBytes...)

		if _, writeErr := sink.Write(rec.body); writeErr != nil {
			return 0, writeErr
		}

		current += entry.Offset

		if progress != nil {
			progress(entry, rec.body)
		}
	}

	if waitErr := g.Wait(); waitErr != nil {
		return 0, waitErr
	}

	headerFlags := cfg.UserFlags
	if cfg.Signer != nil {
		headerFlags.ForceSet(flags.Signed, true)
	}

	header := section.NewHeader(cfg.Magic, headerFlags, uint16(len(leaves))) //nolint:gosec // bounds checked above

	if _, err := sink.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	if _, err := sink.Write(header.Bytes()); err != nil {
		return 0, err
	}

	if _, err := sink.Seek(int64(section.HeaderSize), io.SeekStart); err != nil {
		return 0, err
	}
	if _, err := sink.Write(registry); err != nil {
		return 0, err
	}

	return current, nil
}

func anyEncrypted(leaves []leaf.Leaf) bool {
	for _, l := range leaves {
		if l.Config.Encrypt {
			return true
		}
	}

	return false
}

// prepareLeaf implements spec.md §4.6's per-leaf processing: read the
// source fully, compress per its mode, then encrypt if requested.
func prepareLeaf(l leaf.Leaf, encryptor *crypto.Encryptor) (preparedLeaf, error) {
	bb := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(bb)

	if _, err := io.Copy(bb, l.Source); err != nil {
		return preparedLeaf{}, err
	}

	// bb is returned to the pool on defer, so the leaf's own copy of its
	// source bytes must not alias bb's backing array.
	data := append([]byte(nil), bb.Bytes()...)

	entryFlags := flags.FromBits(l.Config.UserFlags)

	switch l.Config.Compress {
	case format.Never:
	case format.Always:
		compressed, algoFlag, err := compressBody(data, l.Config)
		if err != nil {
			return preparedLeaf{}, err
		}
		data = compressed
		entryFlags.ForceSet(flags.Compressed|algoFlag, true)
	case format.Detect:
		compressed, algoFlag, err := compressBody(data, l.Config)
		if err != nil {
			return preparedLeaf{}, err
		}
		if len(compressed) <= len(data) {
			data = compressed
			entryFlags.ForceSet(flags.Compressed|algoFlag, true)
		}
	}

	if l.Config.Encrypt {
		data = encryptor.Encrypt(data)
		entryFlags.ForceSet(flags.Encrypted, true)
	}

	return preparedLeaf{
		id:             l.ID,
		body:           data,
		entryFlags:     entryFlags,
		contentVersion: l.Config.ContentVersion,
		sign:           l.Config.Sign,
	}, nil
}

func compressBody(data []byte, cfg leaf.Config) ([]byte, flags.Flags, error) {
	codec, err := compress.New(cfg.Algorithm, cfg.BrotliQuality)
	if err != nil {
		return nil, 0, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, 0, err
	}

	algoFlag, err := compress.FlagFor(cfg.Algorithm)
	if err != nil {
		return nil, 0, err
	}

	return compressed, algoFlag, nil
}
