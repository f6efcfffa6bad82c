// Package section implements the fixed-layout header and variable-length
// registry-entry records that make up a vach container's non-data
// regions.
//
// The split between a Header and an Entry type, each with a Bytes method
// and a decode function (HeaderFromBytes, DecodeEntry) operating on
// little-endian fields at fixed byte offsets,
// follows mebo's section package (NumericHeader.Parse/Bytes); the entry
// layout itself is vach's own (spec.md §3/§6), since mebo's index
// entries are fixed-size and vach's carry a variable-length identifier.
package section

import (
	"github.com/corewald/vach/endian"
	"github.com/corewald/vach/errs"
	"github.com/corewald/vach/flags"
)

// enc is the byte order every multi-byte header and entry field is
// encoded with. vach containers are little-endian only; the engine
// abstraction exists so a future dialect could swap it.
var enc = endian.GetLittleEndianEngine()

const (
	// MagicLength is the byte length of a container's magic tag.
	MagicLength = 5
	// HeaderSize is the fixed on-disk size of the header region.
	HeaderSize = 13
	// CurrentVersion is the format version this package implements.
	CurrentVersion uint16 = 30
)

// DefaultMagic is the magic tag used when a writer config does not
// override it.
var DefaultMagic = [MagicLength]byte{'V', 'f', 'A', 'C', 'H'}

// Header is the container's 13-byte leading region.
type Header struct {
	Magic    [MagicLength]byte
	Flags    flags.Flags
	Version  uint16
	Capacity uint16
}

// NewHeader builds a header for a fresh container with the given magic,
// global flags and entry count. Version is always CurrentVersion.
func NewHeader(magic [MagicLength]byte, f flags.Flags, capacity uint16) Header {
	return Header{
		Magic:    magic,
		Flags:    f,
		Version:  CurrentVersion,
		Capacity: capacity,
	}
}

// Bytes serializes the header into its fixed 13-byte little-endian form.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:5], h.Magic[:])
	enc.PutUint32(b[5:9], h.Flags.Bits())
	enc.PutUint16(b[9:11], h.Version)
	enc.PutUint16(b[11:13], h.Capacity)

	return b
}

// HeaderFromBytes parses a Header from exactly HeaderSize bytes. It does
// not validate magic or version; call Validate for that.
func HeaderFromBytes(data []byte) (Header, error) {
	if len(data) != HeaderSize {
		return Header{}, errs.ErrMalformedArchive
	}

	var h Header
	copy(h.Magic[:], data[0:5])
	h.Flags = flags.FromBits(enc.Uint32(data[5:9]))
	h.Version = enc.Uint16(data[9:11])
	h.Capacity = enc.Uint16(data[11:13])

	return h, nil
}

// Validate checks the header's magic and version against the expected
// values, failing fast on a dialect mismatch.
func Validate(h Header, wantMagic [MagicLength]byte) error {
	if h.Magic != wantMagic {
		return errs.ErrMalformedArchive
	}
	if h.Version != CurrentVersion {
		return errs.ErrIncompatibleVersion
	}

	return nil
}
