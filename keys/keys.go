// Package keys generates and parses the byte forms of Ed25519 signing
// keys, verifying keys, and combined keypairs used throughout vach.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/corewald/vach/crypto"
	"github.com/corewald/vach/errs"
)

// Generate creates a fresh, random Ed25519 signing key.
func Generate() (crypto.Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return crypto.Signer{}, fmt.Errorf("%w: %w", errs.ErrParse, err)
	}

	var key [crypto.SigningKeySize]byte
	copy(key[:], priv)

	return crypto.NewSigner(key), nil
}

// ReadSigningKey reads a 32-byte Ed25519 seed from r and expands it into
// a full signing key.
func ReadSigningKey(r io.Reader) (crypto.Signer, error) {
	var seed [ed25519.SeedSize]byte
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return crypto.Signer{}, fmt.Errorf("%w: %w", errs.ErrParse, err)
	}

	priv := ed25519.NewKeyFromSeed(seed[:])

	var key [crypto.SigningKeySize]byte
	copy(key[:], priv)

	return crypto.NewSigner(key), nil
}

// ReadVerifyingKey reads a 32-byte Ed25519 public key from r.
func ReadVerifyingKey(r io.Reader) (crypto.Verifier, error) {
	var key [crypto.VerifyingKeySize]byte
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return crypto.Verifier{}, fmt.Errorf("%w: %w", errs.ErrParse, err)
	}

	return crypto.NewVerifier(key), nil
}

// ReadKeypair reads a 64-byte Ed25519 keypair (secret || public) from r.
func ReadKeypair(r io.Reader) (crypto.Signer, error) {
	var key [crypto.SigningKeySize]byte
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return crypto.Signer{}, fmt.Errorf("%w: %w", errs.ErrParse, err)
	}

	return crypto.NewSigner(key), nil
}

// WriteSigningKey writes the bare 32-byte Ed25519 seed to w — the form
// ReadSigningKey reads back, as distinct from WriteKeypair's 64-byte
// secret||public form.
func WriteSigningKey(w io.Writer, s crypto.Signer) error {
	seed := s.Seed()
	if _, err := w.Write(seed[:]); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrParse, err)
	}

	return nil
}

// WriteKeypair writes the 64-byte signing key form (secret || public) to w.
func WriteKeypair(w io.Writer, s crypto.Signer) error {
	full := s.Bytes()
	if _, err := w.Write(full[:]); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrParse, err)
	}

	return nil
}

// WriteVerifyingKey writes the 32-byte verifying key to w.
func WriteVerifyingKey(w io.Writer, v crypto.Verifier) error {
	key := v.Key()
	if _, err := w.Write(key[:]); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrParse, err)
	}

	return nil
}
