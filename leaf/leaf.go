// Package leaf describes one named blob queued for a dump: its source
// bytes plus the per-leaf compression, encryption and signing choices
// the writer applies while staging it.
//
// Builder's chained setters (each returning *Builder) follow the
// EntryFactory pattern in the retrieval pack's tinyrange-cc archive
// package (Kind/Name/Linkname/Size/Mode/Owner/ModTime, each returning
// *EntryFactory); vach's leaves carry compression/crypto knobs instead of
// filesystem metadata.
package leaf

import (
	"io"

	"github.com/corewald/vach/format"
)

// Config collects the per-leaf choices a Builder accumulates. It is
// immutable once handed to the writer.
type Config struct {
	ContentVersion uint8
	UserFlags      uint32
	Compress       format.CompressMode
	Algorithm      format.Algorithm
	BrotliQuality  int
	Encrypt        bool
	Sign           bool
}

// DefaultBrotliQuality is used when a leaf selects Brotli without
// overriding the quality explicitly.
const DefaultBrotliQuality = 11

// DefaultConfig is the configuration a freshly built leaf starts from:
// uncompressed, unencrypted, unsigned, content version 0.
func DefaultConfig() Config {
	return Config{
		Compress:      format.Never,
		Algorithm:     format.LZ4,
		BrotliQuality: DefaultBrotliQuality,
	}
}

// Leaf is one blob queued for a dump.
type Leaf struct {
	ID     string
	Source io.Reader
	Config Config
}

// Builder accumulates a Leaf's configuration through chained calls.
type Builder struct {
	leaf Leaf
}

// New starts a Builder for a blob read from source and stored under id.
func New(source io.Reader, id string) *Builder {
	return &Builder{leaf: Leaf{ID: id, Source: source, Config: DefaultConfig()}}
}

// Version sets the leaf's content version, an opaque byte the caller can
// use to version a resource's encoding independently of the container
// format version.
func (b *Builder) Version(v uint8) *Builder {
	b.leaf.Config.ContentVersion = v

	return b
}

// Flags sets the leaf's caller-owned flag bits (the free lower 16 bits
// of the registry entry's flag word). Reserved bits passed here are
// silently masked off; the writer owns those.
func (b *Builder) Flags(bits uint32) *Builder {
	b.leaf.Config.UserFlags = bits & 0x0000FFFF

	return b
}

// Compress sets whether and how the writer compresses this leaf's body.
func (b *Builder) Compress(mode format.CompressMode) *Builder {
	b.leaf.Config.Compress = mode

	return b
}

// CompressionAlgo selects which algorithm Compress(Always)/Compress(Detect)
// uses. For Brotli, quality defaults to DefaultBrotliQuality unless
// BrotliQuality is also called.
func (b *Builder) CompressionAlgo(algo format.Algorithm) *Builder {
	b.leaf.Config.Algorithm = algo

	return b
}

// BrotliQuality overrides the Brotli quality level for this leaf; it has
// no effect unless CompressionAlgo(format.Brotli) is also selected.
func (b *Builder) BrotliQuality(q int) *Builder {
	b.leaf.Config.BrotliQuality = q

	return b
}

// Encrypt marks this leaf's body for AES-256-GCM sealing under the
// dump's keypair.
func (b *Builder) Encrypt(on bool) *Builder {
	b.leaf.Config.Encrypt = on

	return b
}

// Sign marks this leaf's registry entry for Ed25519 signing.
func (b *Builder) Sign(on bool) *Builder {
	b.leaf.Config.Sign = on

	return b
}

// Template copies another leaf's configuration onto this one, leaving
// the id and source untouched. It is meant to stamp out a batch of
// leaves sharing the same compression/crypto policy.
func (b *Builder) Template(other Leaf) *Builder {
	b.leaf.Config = other.Config

	return b
}

// Build returns the finished Leaf.
func (b *Builder) Build() Leaf {
	return b.leaf
}
