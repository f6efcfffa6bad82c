// Package vach packs named byte blobs ("leaves") into a single sealed
// container file, with independent per-leaf compression, authenticated
// encryption, and signing, then enumerates and fetches them back with
// random access.
//
// A container is a header, a registry of one entry per leaf, and a data
// region holding each leaf's stored bytes. Writing always produces a
// fresh container — there is no in-place append or mutation of an
// existing one.
//
// # Writing
//
//	k, _ := keys.Generate()
//	leaves := []leaf.Leaf{
//		leaf.New(strings.NewReader("Hello, Cassandra!"), "greeting").
//			Sign(true).
//			Build(),
//	}
//	cfg, _ := writer.NewConfig(writer.WithSigner(k))
//	n, err := writer.Dump(sink, leaves, cfg, nil)
//
// # Reading
//
//	archive, err := reader.OpenWithKey(source, k.VerifyingKey())
//	res, err := archive.Fetch("greeting")
//
// This root package re-exports the handful of names most callers reach
// for first; it adds no behavior of its own. The full surface — leaf
// templating, progress callbacks, worker-count tuning, flag
// introspection — lives in the leaf, writer, reader, section, flags and
// keys packages, each importable directly.
//
// The convenience-wrapper shape (a thin, heavily documented root package
// forwarding to the real subpackages) follows the teacher's own
// top-level package.
package vach

import (
	"io"

	"github.com/corewald/vach/crypto"
	"github.com/corewald/vach/keys"
	"github.com/corewald/vach/leaf"
	"github.com/corewald/vach/reader"
	"github.com/corewald/vach/writer"
)

// NewLeaf starts a leaf.Builder for a blob read from source and stored
// under id. It is exactly leaf.New; it exists here so the most common
// writer call site needs only this package's import.
func NewLeaf(source io.Reader, id string) *leaf.Builder {
	return leaf.New(source, id)
}

// GenerateKeypair creates a fresh, random Ed25519 signing key. Its
// VerifyingKey half is also the AES-256-GCM key Encrypt/Decrypt derive
// from.
func GenerateKeypair() (crypto.Signer, error) {
	return keys.Generate()
}

// Dump processes leaves according to cfg and writes a complete container
// to sink, returning the total number of bytes written. It is exactly
// writer.Dump.
func Dump(sink io.WriteSeeker, leaves []leaf.Leaf, cfg *writer.Config, progress writer.ProgressFunc) (uint64, error) {
	return writer.Dump(sink, leaves, cfg, progress)
}

// Open parses source's header and registry without a verifying key.
// Encrypted or signed entries can still be enumerated but not decrypted,
// and signatures cannot be checked. It is exactly reader.Open.
func Open(source io.ReadSeeker) (*reader.Archive, error) {
	return reader.Open(source)
}

// OpenWithKey parses source's header and registry, and enables
// decryption and signature verification for the lifetime of the
// returned archive. It is exactly reader.OpenWithKey.
func OpenWithKey(source io.ReadSeeker, verifyingKey [crypto.VerifyingKeySize]byte) (*reader.Archive, error) {
	return reader.OpenWithKey(source, verifyingKey)
}
