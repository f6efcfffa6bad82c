package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/corewald/vach/errs"
	"github.com/corewald/vach/flags"
	"github.com/corewald/vach/format"
	"github.com/corewald/vach/keys"
	"github.com/corewald/vach/leaf"
	"github.com/corewald/vach/section"
	"github.com/stretchr/testify/require"
)

// sink is an in-memory io.WriteSeeker backed by a growable byte slice.
type sink struct {
	buf []byte
	pos int64
}

func (s *sink) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	copy(s.buf[s.pos:end], p)
	s.pos = end

	return len(p), nil
}

func (s *sink) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		s.pos = offset
	case 1:
		s.pos += offset
	case 2:
		s.pos = int64(len(s.buf)) + offset
	}

	return s.pos, nil
}

func TestDump_PlainRoundTrip(t *testing.T) {
	leaves := []leaf.Leaf{
		leaf.New(strings.NewReader("Hello, Cassandra!"), "greeting").Build(),
	}

	var sk sink
	n, err := Dump(&sk, leaves, nil, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(len(sk.buf)), n)

	h, err := section.HeaderFromBytes(sk.buf[:section.HeaderSize])
	require.NoError(t, err)
	require.Equal(t, section.DefaultMagic, h.Magic)
	require.Equal(t, uint16(1), h.Capacity)
}

func TestDump_DuplicateLeafID(t *testing.T) {
	leaves := []leaf.Leaf{
		leaf.New(strings.NewReader("A"), "x").Build(),
		leaf.New(strings.NewReader("B"), "x").Build(),
	}

	var sk sink
	_, err := Dump(&sk, leaves, nil, nil)
	require.ErrorIs(t, err, errs.ErrDuplicateLeafID)
}

func TestDump_EncryptWithoutKeyFails(t *testing.T) {
	leaves := []leaf.Leaf{
		leaf.New(strings.NewReader("secret"), "s").Encrypt(true).Build(),
	}

	var sk sink
	_, err := Dump(&sk, leaves, nil, nil)
	require.ErrorIs(t, err, errs.ErrNoKeypair)
}

func TestDump_DetectCompression(t *testing.T) {
	body := bytes.Repeat([]byte{0x0C}, 4096)
	leaves := []leaf.Leaf{
		leaf.New(bytes.NewReader(body), "blob").
			Compress(format.Detect).
			CompressionAlgo(format.LZ4).
			Build(),
	}

	var committed section.Entry
	progress := func(entry section.Entry, data []byte) {
		committed = entry
	}

	var sk sink
	_, err := Dump(&sk, leaves, nil, progress)
	require.NoError(t, err)

	require.Less(t, committed.Offset, uint64(len(body)))
	require.True(t, committed.Flags.Contains(flags.Compressed))
	require.True(t, committed.Flags.Contains(flags.LZ4))
}

func TestDump_SignedForcesHeaderFlag(t *testing.T) {
	s, err := keys.Generate()
	require.NoError(t, err)

	cfg, err := NewConfig(WithSigner(s))
	require.NoError(t, err)

	leaves := []leaf.Leaf{
		leaf.New(strings.NewReader("a"), "a").Build(),
	}

	var sk sink
	_, err = Dump(&sk, leaves, cfg, nil)
	require.NoError(t, err)

	h, err := section.HeaderFromBytes(sk.buf[:section.HeaderSize])
	require.NoError(t, err)
	require.True(t, h.Flags.Contains(flags.Signed))
}

func TestDump_ZeroLeaves(t *testing.T) {
	var sk sink
	n, err := Dump(&sk, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(section.HeaderSize), n)

	h, err := section.HeaderFromBytes(sk.buf[:section.HeaderSize])
	require.NoError(t, err)
	require.Equal(t, uint16(0), h.Capacity)
}

func TestDump_SingleWorkerIsDeterministic(t *testing.T) {
	// Each dump drains its leaves' sources, so every dump gets fresh leaves
	// with the same ids and contents.
	newLeaves := func() []leaf.Leaf {
		return []leaf.Leaf{
			leaf.New(strings.NewReader("1"), "one").Build(),
			leaf.New(strings.NewReader("2"), "two").Build(),
			leaf.New(strings.NewReader("3"), "three").Build(),
		}
	}

	cfg, err := NewConfig(WithNumWorkers(1))
	require.NoError(t, err)

	var a, b sink
	_, err = Dump(&a, newLeaves(), cfg, nil)
	require.NoError(t, err)
	_, err = Dump(&b, newLeaves(), cfg, nil)
	require.NoError(t, err)

	require.Equal(t, a.buf, b.buf)
}
