// Package errs declares the sentinel errors shared by the vach packages.
//
// Callers match these with errors.Is; wrapping (fmt.Errorf with %w) is used
// throughout the module to attach context without losing the sentinel.
package errs

import "errors"

var (
	// ErrMissingFeature is returned when an operation needs an optional
	// capability (compression, crypto) that the build does not provide.
	ErrMissingFeature = errors.New("vach: missing feature")

	// ErrParse is returned when key or signature bytes fail to decode.
	ErrParse = errors.New("vach: parse error")

	// ErrMalformedArchive is returned when the header magic does not match.
	ErrMalformedArchive = errors.New("vach: malformed archive")

	// ErrIncompatibleVersion is returned when the header version does not
	// match the version this package implements.
	ErrIncompatibleVersion = errors.New("vach: incompatible archive version")

	// ErrMissingResource is returned by fetch for an unknown identifier.
	ErrMissingResource = errors.New("vach: missing resource")

	// ErrDuplicateLeafID is returned by dump when two leaves share an id.
	ErrDuplicateLeafID = errors.New("vach: duplicate leaf id")

	// ErrNoKeypair is returned when encryption is requested without a
	// signing key, or an encrypted entry is encountered with no key.
	ErrNoKeypair = errors.New("vach: no keypair")

	// ErrCrypto is returned on AEAD authentication or Ed25519 hard failures.
	ErrCrypto = errors.New("vach: crypto error")

	// ErrRestrictedFlag is returned when a caller attempts to set a
	// reserved flag bit through the public setter.
	ErrRestrictedFlag = errors.New("vach: restricted flag")

	// ErrIDSizeOverflow is returned when an identifier is 2^16 bytes or longer.
	ErrIDSizeOverflow = errors.New("vach: identifier too large")

	// ErrDecompression is returned for codec-layer failures, invalid
	// Brotli quality, or ambiguous/missing algorithm flag bits.
	ErrDecompression = errors.New("vach: decompression error")
)
