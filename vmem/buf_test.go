// File: vmem/buf_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vmem_test

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vmem/api"
	"github.com/momentics/hioload-vmem/vmem"
)

func TestNewBuf(t *testing.T) {
	backing := make([]byte, 1024)
	defer runtime.KeepAlive(backing)

	b := vmem.NewBuf(backing)
	assert.Equal(t, 1024, b.BytesTotal())
	assert.Equal(t, 0, b.BytesInit())
	assert.Equal(t, unsafe.Pointer(unsafe.SliceData(backing)), b.StablePtr())

	// Write through the stable pointer, then report one initialized byte.
	*(*byte)(b.StableMutPtr()) = 'a'
	b.SetInit(1)
	assert.Equal(t, 1, b.BytesInit())
	assert.Equal(t, byte('a'), backing[0])
}

func TestBufFromRaw(t *testing.T) {
	backing := make([]byte, 64)
	defer runtime.KeepAlive(backing)

	b := vmem.BufFromRaw(unsafe.Pointer(unsafe.SliceData(backing)), 16, 64)
	assert.Equal(t, 16, b.BytesInit())
	assert.Equal(t, 64, b.BytesTotal())
}

func TestSetInitSequence(t *testing.T) {
	backing := make([]byte, 32)
	defer runtime.KeepAlive(backing)

	b := vmem.NewBuf(backing)
	for _, k := range []int{0, 1, 31, 32, 7} {
		b.SetInit(k)
		assert.Equal(t, k, b.BytesInit())
	}
}

func TestBorrowBuf(t *testing.T) {
	backing, s := sliceOver(t, 256)

	sub, err := s.Offset(64)
	require.NoError(t, err)

	b := sub.BorrowBuf()
	assert.Equal(t, 192, b.BytesTotal())
	assert.Equal(t, 0, b.BytesInit())
	assert.Equal(t, sub.Ptr(), b.StablePtr())

	// The engine fills the buffer and reports progress; the initialized
	// prefix is then viewable as a Slice again.
	*(*byte)(b.StableMutPtr()) = 0x5a
	b.SetInit(1)
	assert.Equal(t, uintptr(1), b.Slice().Len())
	assert.Equal(t, byte(0x5a), backing[64])
	assert.Equal(t, uintptr(192), b.CapSlice().Len())
}

func TestBufImplementsIoBufMut(t *testing.T) {
	backing := make([]byte, 8)
	defer runtime.KeepAlive(backing)

	var m api.IoBufMut = vmem.NewBuf(backing)
	m.SetInit(8)
	assert.Equal(t, 8, m.BytesInit())
}
