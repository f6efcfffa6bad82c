package flags

import (
	"testing"

	"github.com/corewald/vach/errs"
	"github.com/stretchr/testify/require"
)

func TestSet_RestrictedFlag(t *testing.T) {
	var f Flags

	bits, err := f.Set(Compressed, true)
	require.ErrorIs(t, err, errs.ErrRestrictedFlag)
	require.Equal(t, uint32(0), bits)
	require.Equal(t, Flags(0), f)
}

func TestSet_CallerBits(t *testing.T) {
	var f Flags

	bits, err := f.Set(0x0001, true)
	require.NoError(t, err)
	require.Equal(t, uint32(1), bits)
	require.True(t, f.Contains(0x0001))

	bits, err = f.Set(0x0001, false)
	require.NoError(t, err)
	require.Equal(t, uint32(0), bits)
}

func TestForceSet_BypassesGuard(t *testing.T) {
	var f Flags
	f.ForceSet(Compressed|LZ4, true)

	require.True(t, f.Contains(Compressed))
	require.Equal(t, LZ4, f.AlgorithmBits())
}

func TestAlgorithmBits(t *testing.T) {
	var f Flags
	f.ForceSet(Snappy, true)

	require.Equal(t, Snappy, f.AlgorithmBits())
}

func TestString(t *testing.T) {
	var f Flags
	f.ForceSet(Compressed|Encrypted|Signed, true)

	require.Equal(t, "Flags[CES]", f.String())
}

func TestFromBitsRoundTrip(t *testing.T) {
	f := FromBits(0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), f.Bits())
}
