package section

import (
	"io"

	"github.com/corewald/vach/errs"
	"github.com/corewald/vach/flags"
)

const (
	// PrefixSize is the fixed portion of a registry entry preceding its
	// optional signature and its identifier bytes: flags(4) +
	// content_version(1) + location(8) + offset(8) + id_len(2).
	PrefixSize = 23
	// SignatureSize is the byte length of an Ed25519 signature.
	SignatureSize = 64
	// MaxIDLength is the exclusive upper bound on identifier length: the
	// u16 id_len field holds at most MaxIDLength-1, so identifiers must be
	// strictly shorter than this.
	MaxIDLength = 1 << 16
)

// Entry is one registry record, describing a single stored leaf.
type Entry struct {
	Flags          flags.Flags
	ContentVersion uint8
	Location       uint64
	Offset         uint64
	Signature      [SignatureSize]byte
	ID             string
}

// Size returns this entry's serialized length given whether its
// signature is included.
func (e Entry) Size(includeSignature bool) int {
	n := PrefixSize + len(e.ID)
	if includeSignature && e.Flags.Contains(flags.Signed) {
		n += SignatureSize
	}

	return n
}

// Bytes serializes the entry. When skipSignature is true, or the entry
// is unsigned, the signature field is omitted entirely — not just
// zeroed — matching the on-disk layout in spec.md §3/§6, where the
// signature is present iff the SIGNED bit is set.
func (e Entry) Bytes(skipSignature bool) ([]byte, error) {
	if len(e.ID) >= MaxIDLength {
		return nil, errs.ErrIDSizeOverflow
	}

	includeSig := !skipSignature && e.Flags.Contains(flags.Signed)

	buf := make([]byte, 0, e.Size(includeSig))
	var prefix [PrefixSize]byte
	enc.PutUint32(prefix[0:4], e.Flags.Bits())
	prefix[4] = e.ContentVersion
	enc.PutUint64(prefix[5:13], e.Location)
	enc.PutUint64(prefix[13:21], e.Offset)
	enc.PutUint16(prefix[21:23], uint16(len(e.ID))) //nolint:gosec // bounds checked above

	buf = append(buf, prefix[:]...)
	if includeSig {
		buf = append(buf, e.Signature[:]...)
	}
	buf = append(buf, e.ID...)

	return buf, nil
}

// SignedPrefix returns the bytes the signer/verifier hashes alongside a
// leaf's stored body: this entry's serialized form with the signature
// field omitted (Bytes(true)), regardless of whether SIGNED is set. This
// is what spec.md §4.5 calls entry_to_bytes(skip_signature=true).
func (e Entry) SignedPrefix() ([]byte, error) {
	if len(e.ID) >= MaxIDLength {
		return nil, errs.ErrIDSizeOverflow
	}

	var prefix [PrefixSize]byte
	enc.PutUint32(prefix[0:4], e.Flags.Bits())
	prefix[4] = e.ContentVersion
	enc.PutUint64(prefix[5:13], e.Location)
	enc.PutUint64(prefix[13:21], e.Offset)
	enc.PutUint16(prefix[21:23], uint16(len(e.ID))) //nolint:gosec // bounds checked above

	out := make([]byte, 0, PrefixSize+len(e.ID))
	out = append(out, prefix[:]...)
	out = append(out, e.ID...)

	return out, nil
}

// DecodeEntry reads one registry entry from r, which must be positioned
// at the start of the entry. It reads exactly as many bytes as the entry
// occupies: the fixed prefix, the signature if the SIGNED bit is set,
// then the identifier.
func DecodeEntry(r io.Reader) (Entry, error) {
	var prefix [PrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Entry{}, err
	}

	var e Entry
	e.Flags = flags.FromBits(enc.Uint32(prefix[0:4]))
	e.ContentVersion = prefix[4]
	e.Location = enc.Uint64(prefix[5:13])
	e.Offset = enc.Uint64(prefix[13:21])
	idLen := enc.Uint16(prefix[21:23])

	if e.Flags.Contains(flags.Signed) {
		if _, err := io.ReadFull(r, e.Signature[:]); err != nil {
			return Entry{}, err
		}
	}

	id := make([]byte, idLen)
	if idLen > 0 {
		if _, err := io.ReadFull(r, id); err != nil {
			return Entry{}, err
		}
	}
	e.ID = string(id)

	return e, nil
}
