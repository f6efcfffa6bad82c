package leaf

import (
	"strings"
	"testing"

	"github.com/corewald/vach/format"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Chaining(t *testing.T) {
	l := New(strings.NewReader("payload"), "greeting.txt").
		Version(3).
		Flags(0xFFFF00FF). // upper bits must be masked off
		Compress(format.Always).
		CompressionAlgo(format.Brotli).
		BrotliQuality(5).
		Encrypt(true).
		Sign(true).
		Build()

	require.Equal(t, "greeting.txt", l.ID)
	require.Equal(t, uint8(3), l.Config.ContentVersion)
	require.Equal(t, uint32(0x000000FF), l.Config.UserFlags)
	require.Equal(t, format.Always, l.Config.Compress)
	require.Equal(t, format.Brotli, l.Config.Algorithm)
	require.Equal(t, 5, l.Config.BrotliQuality)
	require.True(t, l.Config.Encrypt)
	require.True(t, l.Config.Sign)
}

func TestBuilder_Template(t *testing.T) {
	base := New(strings.NewReader("a"), "base").
		Compress(format.Always).
		Sign(true).
		Build()

	derived := New(strings.NewReader("b"), "derived").Template(base).Build()

	require.Equal(t, "derived", derived.ID)
	require.Equal(t, format.Always, derived.Config.Compress)
	require.True(t, derived.Config.Sign)
}

func TestDefaultConfig(t *testing.T) {
	l := New(strings.NewReader(""), "empty").Build()

	require.Equal(t, format.Never, l.Config.Compress)
	require.False(t, l.Config.Encrypt)
	require.False(t, l.Config.Sign)
}
