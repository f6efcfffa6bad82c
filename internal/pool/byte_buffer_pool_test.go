package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(BlobBufferDefaultSize)
	bb.B = append(bb.B, []byte("hello")...)

	bytes := bb.Bytes()

	assert.Equal(t, []byte("hello"), bytes)
	// Should return the same underlying slice
	assert.True(t, &bb.B[0] == &bytes[0], "Bytes() should return the same underlying slice")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(BlobBufferDefaultSize)
	bb.B = append(bb.B, []byte("some data")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(BlobBufferDefaultSize)

	n, err := bb.Write([]byte("test"))

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("test"), bb.B)
}

func TestByteBuffer_Write_Multiple(t *testing.T) {
	bb := NewByteBuffer(BlobBufferDefaultSize)

	_, _ = bb.Write([]byte("hello, "))
	_, _ = bb.Write([]byte("world"))

	assert.Equal(t, []byte("hello, world"), bb.B)
}

func TestByteBuffer_LargeDataWrite(t *testing.T) {
	bb := NewByteBuffer(16)
	data := make([]byte, BlobBufferDefaultSize*2)
	for i := range data {
		data[i] = byte(i)
	}

	n, err := bb.Write(data)

	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, bb.B)
}

func TestByteBuffer_ResetAndReuse(t *testing.T) {
	bb := NewByteBuffer(BlobBufferDefaultSize)

	_, _ = bb.Write([]byte("first"))
	bb.Reset()
	_, _ = bb.Write([]byte("second"))

	assert.Equal(t, []byte("second"), bb.B)
}

// =============================================================================
// Default blob pool Tests
// =============================================================================

func TestGetBlobBuffer(t *testing.T) {
	bb := GetBlobBuffer()

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "pooled buffer should be empty")
	assert.GreaterOrEqual(t, cap(bb.B), BlobBufferDefaultSize, "pooled buffer should have at least default capacity")
}

func TestPutBlobBuffer_NilBuffer(t *testing.T) {
	// Should not panic
	assert.NotPanics(t, func() {
		PutBlobBuffer(nil)
	})
}

func TestGetPut_BufferReuse(t *testing.T) {
	// Get a buffer and write some data
	bb1 := GetBlobBuffer()
	bb1.B = append(bb1.B, []byte("test data")...)
	capacity1 := cap(bb1.B)

	// Return it to the pool
	PutBlobBuffer(bb1)

	// Get another buffer - might be the same one
	bb2 := GetBlobBuffer()
	assert.Equal(t, 0, len(bb2.B), "buffer from pool should be reset")

	// If we got the same buffer, capacity should match
	if capacity1 == cap(bb2.B) {
		// Likely the same buffer was reused
		t.Log("Buffer was likely reused from pool")
	}
}

func TestPool_ResetsClearsData(t *testing.T) {
	bb := GetBlobBuffer()
	bb.B = append(bb.B, []byte("sensitive data")...)

	PutBlobBuffer(bb)

	// Get a buffer (might be the same one)
	bb2 := GetBlobBuffer()
	assert.Equal(t, 0, len(bb2.B), "buffer should be empty after retrieval from pool")

	// Even if we got a different buffer, verify the original was reset
	assert.Equal(t, 0, len(bb.B), "PutBlobBuffer should reset the buffer")
}

func TestPool_MultipleGetsAndPuts(t *testing.T) {
	buffers := make([]*ByteBuffer, 10)

	// Get multiple buffers
	for i := range buffers {
		buffers[i] = GetBlobBuffer()
		require.NotNil(t, buffers[i])
		_, _ = buffers[i].Write([]byte("data"))
	}

	// Return all to pool
	for _, bb := range buffers {
		PutBlobBuffer(bb)
	}

	// Get them again - they should all be reset
	for i := 0; i < 10; i++ {
		bb := GetBlobBuffer()
		assert.Equal(t, 0, len(bb.B), "each buffer should be reset")
		PutBlobBuffer(bb)
	}
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 100
	const numIterations = 1000

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				bb := GetBlobBuffer()
				_, _ = bb.Write([]byte("data"))
				assert.Equal(t, 4, len(bb.B))
				PutBlobBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestNewByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(8192, 65536)

	require.NotNil(t, p)

	// Get a buffer and verify size
	bb := p.Get()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), 8192, "buffer should have at least default size")

	p.Put(bb)
}

func TestByteBufferPool_CustomSizes(t *testing.T) {
	tests := []struct {
		name         string
		defaultSize  int
		maxThreshold int
	}{
		{"Small pool", 1024, 4096},
		{"Medium pool", 16384, 131072},
		{"Large pool", 1048576, 8388608},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewByteBufferPool(tc.defaultSize, tc.maxThreshold)
			bb := p.Get()

			require.NotNil(t, bb)
			assert.GreaterOrEqual(t, cap(bb.B), tc.defaultSize)

			p.Put(bb)
		})
	}
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := NewByteBuffer(128)
	p.Put(bb)

	// The oversized buffer was discarded rather than pooled; Get returns a
	// fresh, default-sized one instead.
	got := p.Get()
	assert.Less(t, cap(got.B), 128)
}

func TestByteBufferPool_MaxThreshold_Accept(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := NewByteBuffer(32)
	p.Put(bb)

	// A buffer within the threshold is pooled rather than discarded, so a
	// single-item pool hands it right back on the very next Get.
	got := p.Get()
	assert.Same(t, bb, got, "buffer within threshold should be pooled and returned")
}

func TestByteBufferPool_MaxThreshold_Zero(t *testing.T) {
	// maxThreshold <= 0 disables the discard check entirely.
	p := NewByteBufferPool(16, 0)

	bb := NewByteBuffer(1 << 20)
	p.Put(bb)

	got := p.Get()
	assert.Same(t, bb, got)
}
