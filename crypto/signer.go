package crypto

import (
	"crypto/ed25519"
	"fmt"

	"github.com/corewald/vach/errs"
)

// SigningKeySize, VerifyingKeySize and SignatureSize are the fixed
// Ed25519 byte lengths used throughout the archive format.
const (
	SigningKeySize   = ed25519.PrivateKeySize // 64 bytes (secret || public)
	VerifyingKeySize = ed25519.PublicKeySize  // 32 bytes
	SignatureSize    = ed25519.SignatureSize  // 64 bytes
)

// Signer signs messages with an Ed25519 signing key.
type Signer struct {
	key ed25519.PrivateKey
}

// NewSigner wraps a 64-byte Ed25519 signing key (secret || public).
func NewSigner(key [SigningKeySize]byte) Signer {
	return Signer{key: ed25519.PrivateKey(key[:])}
}

// Bytes returns the raw 64-byte signing key (secret || public).
func (s Signer) Bytes() [SigningKeySize]byte {
	var out [SigningKeySize]byte
	copy(out[:], s.key)

	return out
}

// Seed returns the 32-byte Ed25519 seed the signing key was expanded
// from — the bare form keys.ReadSigningKey/WriteSigningKey round-trip,
// as distinct from Bytes' 64-byte secret||public form.
func (s Signer) Seed() [ed25519.SeedSize]byte {
	var out [ed25519.SeedSize]byte
	copy(out[:], s.key.Seed())

	return out
}

// VerifyingKey returns the 32-byte public half of the signing key —
// this is also the AES key Encryptor derives encryption from.
func (s Signer) VerifyingKey() [VerifyingKeySize]byte {
	var out [VerifyingKeySize]byte
	copy(out[:], s.key.Public().(ed25519.PublicKey))

	return out
}

// Sign signs message, returning a 64-byte Ed25519 signature.
func (s Signer) Sign(message []byte) [SignatureSize]byte {
	var out [SignatureSize]byte
	copy(out[:], ed25519.Sign(s.key, message))

	return out
}

// Verifier checks Ed25519 signatures against a verifying key.
type Verifier struct {
	key ed25519.PublicKey
}

// NewVerifier wraps a 32-byte Ed25519 verifying key.
func NewVerifier(key [VerifyingKeySize]byte) Verifier {
	return Verifier{key: ed25519.PublicKey(key[:])}
}

// Key returns the 32-byte verifying key, also usable as the Encryptor's
// AES key.
func (v Verifier) Key() [VerifyingKeySize]byte {
	var out [VerifyingKeySize]byte
	copy(out[:], v.key)

	return out
}

// Verify checks message against signature using the standard library's
// strict (non-malleable) Ed25519 verification — it rejects non-canonical
// signature encodings rather than the permissive batch-verification
// rules some third-party libraries default to (spec.md §4.5).
func (v Verifier) Verify(message []byte, signature [SignatureSize]byte) bool {
	return ed25519.Verify(v.key, message, signature[:])
}

// VerifyStrict is Verify plus an explicit error for the "hard failure"
// cases spec.md §7 calls out (malformed key/signature material).
func (v Verifier) VerifyStrict(message []byte, signature [SignatureSize]byte) error {
	if len(v.key) != VerifyingKeySize {
		return fmt.Errorf("%w: verifying key has wrong length", errs.ErrParse)
	}
	if !v.Verify(message, signature) {
		return fmt.Errorf("%w: signature verification failed", errs.ErrCrypto)
	}

	return nil
}
