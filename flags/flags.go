// Package flags implements the 32-bit bitfield shared by vach containers
// and registry entries.
//
// The word is partitioned by a fixed mask: the upper 16 bits are reserved
// for the format itself (compression algorithm, signed, encrypted); the
// lower 16 bits are free for callers to use however they like. This
// mirrors the packed Options/EncodingType fields in mebo's section
// package (bit masks + guarded accessors), scoped here to a single u32
// with a public/guarded setter and an internal/unguarded one.
package flags

import "github.com/corewald/vach/errs"

// Flags is a packed 32-bit bitfield.
type Flags uint32

// Reserved bits, per spec: the upper 16 bits of the word. Only the bits
// named below carry meaning; the rest of the upper half is unused but
// still off-limits to callers.
const (
	Compressed Flags = 1 << 31
	LZ4        Flags = 1 << 30
	Snappy     Flags = 1 << 29
	Brotli     Flags = 1 << 28
	Signed     Flags = 1 << 27
	Encrypted  Flags = 1 << 25
)

// ReservedMask covers the upper 16 bits of the word (format-owned).
const ReservedMask Flags = 0xFFFF0000

// FromBits constructs Flags from a raw u32.
func FromBits(bits uint32) Flags {
	return Flags(bits)
}

// Bits returns the raw u32 backing this Flags value.
func (f Flags) Bits() uint32 {
	return uint32(f)
}

// Contains reports whether any bit in mask is set.
func (f Flags) Contains(mask Flags) bool {
	return f&mask != 0
}

// Set toggles the bits in mask on or off, and fails if mask intersects
// the reserved bits. This is the only mutator callers outside this
// module should use.
func (f *Flags) Set(mask Flags, toggle bool) (uint32, error) {
	if mask&ReservedMask != 0 {
		return uint32(*f), errs.ErrRestrictedFlag
	}

	f.ForceSet(mask, toggle)

	return uint32(*f), nil
}

// ForceSet toggles the bits in mask on or off without the reserved-bit
// guard. It exists for the writer/reader, which must set COMPRESSED,
// algorithm, SIGNED and ENCRYPTED bits; callers outside this module
// should prefer Set.
func (f *Flags) ForceSet(mask Flags, toggle bool) {
	if toggle {
		*f |= mask
	} else {
		*f &^= mask
	}
}

// AlgorithmBits returns the subset of f occupied by the three
// compression-algorithm bits (LZ4, Snappy, Brotli).
func (f Flags) AlgorithmBits() Flags {
	return f & (LZ4 | Snappy | Brotli)
}

// String renders a short, fixed-width summary, e.g. "Flags[CE-]" for a
// compressed, encrypted, unsigned entry — mirrors the compact Display
// implementations seen throughout the retrieval pack's bitflag types.
func (f Flags) String() string {
	b := [3]byte{'-', '-', '-'}
	if f.Contains(Compressed) {
		b[0] = 'C'
	}
	if f.Contains(Encrypted) {
		b[1] = 'E'
	}
	if f.Contains(Signed) {
		b[2] = 'S'
	}

	return "Flags[" + string(b[:]) + "]"
}
