// Package crypto implements vach's two cryptographic primitives: an
// AES-256-GCM wrapper keyed by the verifying key, and an Ed25519
// signer/verifier. Keying encryption off the verifying key means the one
// Ed25519 keypair unlocks all three capabilities (sign, verify,
// en/decrypt) without a second key-management channel (spec.md §4.4).
//
// No example repo in the retrieval pack vendors a third-party AEAD or
// Ed25519 implementation; the standard library's crypto/cipher and
// crypto/ed25519 are themselves the idiomatic, audited choice for both
// primitives in Go, so they are used directly rather than introducing an
// otherwise-unneeded dependency (see DESIGN.md).
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/corewald/vach/errs"
)

// KeySize is the byte length of the AES-256 key, equal to the Ed25519
// verifying-key encoding it is derived from.
const KeySize = 32

// NonceSize is the byte length of the GCM nonce.
const NonceSize = 12

// noncePrefix is the fixed 7-byte prefix prepended to a container's
// 5-byte magic to build the deterministic 12-byte nonce (spec.md §6).
var noncePrefix = [7]byte{0xB2, 0x05, 0xEF, 0xE4, 0xA5, 0x2C, 0xA9}

// Encryptor performs AES-256-GCM encryption/decryption with a nonce
// derived deterministically from the container's magic.
//
// This is a deliberate simplification carried over unchanged from
// spec.md §9: there is no per-leaf nonce and no KDF, so reusing one
// keypair to encrypt multiple containers with the same magic reuses the
// same nonce across them. Implementers replicating this format must
// reproduce the derivation exactly for cross-implementation
// compatibility.
type Encryptor struct {
	aead  cipher.AEAD
	nonce [NonceSize]byte
}

// NewEncryptor builds an Encryptor keyed by a 32-byte verifying-key
// encoding, for the given container magic.
func NewEncryptor(verifyingKey [KeySize]byte, magic [5]byte) (*Encryptor, error) {
	block, err := aes.NewCipher(verifyingKey[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCrypto, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCrypto, err)
	}

	e := &Encryptor{aead: aead}
	copy(e.nonce[0:7], noncePrefix[:])
	copy(e.nonce[7:12], magic[:])

	return e, nil
}

// Encrypt seals plaintext, appending the 16-byte authentication tag.
func (e *Encryptor) Encrypt(plaintext []byte) []byte {
	return e.aead.Seal(nil, e.nonce[:], plaintext, nil)
}

// Decrypt opens a ciphertext+tag buffer produced by Encrypt. A tag
// mismatch is reported as errs.ErrCrypto.
func (e *Encryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	plaintext, err := e.aead.Open(nil, e.nonce[:], ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCrypto, err)
	}

	return plaintext, nil
}
