package vach

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/corewald/vach/leaf"
	"github.com/corewald/vach/writer"
	"github.com/stretchr/testify/require"
)

// memSink is a minimal in-memory io.WriteSeeker for exercising the
// root-package convenience wrappers end to end.
type memSink struct {
	buf []byte
	pos int64
}

func (s *memSink) Write(p []byte) (int, error) {
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

func (s *memSink) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = offset
	case io.SeekCurrent:
		s.pos += offset
	case io.SeekEnd:
		s.pos = int64(len(s.buf)) + offset
	}

	return s.pos, nil
}

func TestEndToEnd_SignedAndEncrypted(t *testing.T) {
	k, err := GenerateKeypair()
	require.NoError(t, err)

	cfg, err := writer.NewConfig(writer.WithSigner(k))
	require.NoError(t, err)

	greeting := NewLeaf(strings.NewReader("Hello, Cassandra!"), "greeting").Sign(true).Build()
	secret := NewLeaf(bytes.NewReader([]byte("classified")), "secret").Encrypt(true).Build()

	var sk memSink
	n, err := Dump(&sk, []leaf.Leaf{greeting, secret}, cfg, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(len(sk.buf)), n)

	archive, err := OpenWithKey(bytes.NewReader(sk.buf), k.VerifyingKey())
	require.NoError(t, err)

	res, err := archive.Fetch("greeting")
	require.NoError(t, err)
	require.Equal(t, "Hello, Cassandra!", string(res.Data))
	require.True(t, res.Verified)

	res, err = archive.Fetch("secret")
	require.NoError(t, err)
	require.Equal(t, "classified", string(res.Data))
}

func TestEndToEnd_UnsignedNoKeyRoundTrip(t *testing.T) {
	leaves := []leaf.Leaf{
		NewLeaf(strings.NewReader("plain"), "plain").Build(),
	}

	var sk memSink
	_, err := Dump(&sk, leaves, nil, nil)
	require.NoError(t, err)

	archive, err := Open(bytes.NewReader(sk.buf))
	require.NoError(t, err)

	res, err := archive.Fetch("plain")
	require.NoError(t, err)
	require.Equal(t, "plain", string(res.Data))
	require.False(t, res.Verified)
}
