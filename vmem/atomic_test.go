// File: vmem/atomic_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vmem_test

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vmem/vmem"
)

// alignedOver builds a Slice over word-aligned backing so every natural
// alignment inside it is reachable by offset alone.
func alignedOver(t *testing.T, words int) ([]uint64, vmem.Slice) {
	t.Helper()
	backing := make([]uint64, words)
	t.Cleanup(func() { runtime.KeepAlive(backing) })
	s := vmem.New(unsafe.Pointer(unsafe.SliceData(backing)), uintptr(words*8))
	return backing, s
}

var allOrderings = []vmem.Ordering{
	vmem.Relaxed, vmem.Acquire, vmem.Release, vmem.AcqRel, vmem.SeqCst,
}

func TestAtomicRoundTrip(t *testing.T) {
	_, s := alignedOver(t, 16)

	for _, ord := range allOrderings {
		require.NoError(t, vmem.Store(s, uint8(0xa5), 1, ord))
		v8, err := vmem.Load[uint8](s, 1, ord)
		require.NoError(t, err)
		assert.Equal(t, uint8(0xa5), v8)

		require.NoError(t, vmem.Store(s, uint16(0xbeef), 6, ord))
		v16, err := vmem.Load[uint16](s, 6, ord)
		require.NoError(t, err)
		assert.Equal(t, uint16(0xbeef), v16)

		require.NoError(t, vmem.Store(s, uint32(0xdeadbeef), 8, ord))
		v32, err := vmem.Load[uint32](s, 8, ord)
		require.NoError(t, err)
		assert.Equal(t, uint32(0xdeadbeef), v32)

		require.NoError(t, vmem.Store(s, int64(-42), 16, ord))
		v64, err := vmem.Load[int64](s, 16, ord)
		require.NoError(t, err)
		assert.Equal(t, int64(-42), v64)
	}
}

func TestAtomicSubwordNeighborsIntact(t *testing.T) {
	backing, s := alignedOver(t, 2)

	require.NoError(t, vmem.Store(s, uint8(0xff), 5, vmem.SeqCst))
	require.NoError(t, vmem.Store(s, uint8(0x11), 4, vmem.SeqCst))
	require.NoError(t, vmem.Store(s, uint8(0x22), 6, vmem.SeqCst))

	v, err := vmem.Load[uint8](s, 5, vmem.SeqCst)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), v)
	assert.Equal(t, uint64(0), backing[0])

	// Last byte of the slice: the containing word reaches past the logical
	// end but the store must only change the target byte.
	require.NoError(t, vmem.Store(s, uint8(0x77), 15, vmem.SeqCst))
	v, err = vmem.Load[uint8](s, 15, vmem.SeqCst)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x77), v)
}

func TestAtomicOutOfBounds(t *testing.T) {
	backing, s := alignedOver(t, 2)

	var oob *vmem.OutOfBoundsError
	err := vmem.Store(s, uint64(1), 12, vmem.SeqCst)
	require.ErrorAs(t, err, &oob)

	_, err = vmem.Load[uint32](s, 16, vmem.SeqCst)
	require.ErrorAs(t, err, &oob)

	err = vmem.Store(s, uint8(1), 16, vmem.SeqCst)
	require.ErrorAs(t, err, &oob)

	// Nothing may have leaked into the region or past it.
	assert.Equal(t, []uint64{0, 0}, backing)
}

func TestAtomicMisaligned(t *testing.T) {
	_, s := alignedOver(t, 2)

	err := vmem.Store(s, uint32(1), 2, vmem.SeqCst)
	require.ErrorIs(t, err, vmem.ErrMisaligned)

	_, err = vmem.Load[uint64](s, 4, vmem.SeqCst)
	require.ErrorIs(t, err, vmem.ErrMisaligned)
}

// The canonical handoff scenario: slice a 1024-byte region at 0x10, store
// through the sub-slice, observe the byte at absolute offset 0x10.
func TestStoreThroughSubslice(t *testing.T) {
	backing, s := alignedOver(t, 128)

	sub, err := s.Offset(0x10)
	require.NoError(t, err)

	v0, err := vmem.Load[uint32](sub, 0, vmem.Acquire)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v0)

	require.NoError(t, vmem.Store(sub, uint8(1), 0, vmem.Release))

	got, err := vmem.Load[uint8](sub, 0, vmem.Acquire)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), got)

	raw := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(backing))), 1024)
	assert.Equal(t, byte(1), raw[0x10])
}
