// File: tracked/range_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package tracked_test

import (
	"runtime"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vmem/api"
	"github.com/momentics/hioload-vmem/tracked"
	"github.com/momentics/hioload-vmem/vmem"
)

func rangeOver(t *testing.T, n int, block uintptr) ([]byte, *tracked.Range) {
	t.Helper()
	backing := make([]byte, n)
	t.Cleanup(func() { runtime.KeepAlive(backing) })
	s := vmem.New(unsafe.Pointer(unsafe.SliceData(backing)), uintptr(n))
	return backing, tracked.NewRange(s, block)
}

func TestWritesMarkBlocks(t *testing.T) {
	backing, r := rangeOver(t, 64, 8)

	n, err := r.WriteAt([]byte("abcd"), 10)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "abcd", string(backing[10:14]))

	// Bytes 10..14 touch blocks 1 (8..16) only.
	assert.Equal(t, []api.Span{{Off: 8, Len: 8}}, r.Tracker().DirtySpans())

	// A block-spanning write coalesces with the existing run.
	require.NoError(t, r.WriteFull([]byte("0123456789"), 14))
	assert.Equal(t, []api.Span{{Off: 8, Len: 16}}, r.Tracker().DirtySpans())

	r.Tracker().ResetDirty()
	assert.Empty(t, r.Tracker().DirtySpans())
}

func TestReadsDoNotDirty(t *testing.T) {
	_, r := rangeOver(t, 64, 8)

	p := make([]byte, 16)
	_, err := r.ReadAt(p, 0)
	require.NoError(t, err)
	require.NoError(t, r.ReadFull(p[:4], 32))
	assert.Empty(t, r.Tracker().DirtySpans())
}

func TestStreamingWriteMarks(t *testing.T) {
	_, r := rangeOver(t, 64, 16)

	n, err := r.ReadFrom(30, strings.NewReader("streamed!"), 9)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	// Bytes 30..39 touch blocks 1 (16..32) and 2 (32..48).
	assert.Equal(t, []api.Span{{Off: 16, Len: 32}}, r.Tracker().DirtySpans())
}

func TestFinalSpanClipped(t *testing.T) {
	_, r := rangeOver(t, 20, 8)

	_, err := r.WriteAt([]byte{1}, 19)
	require.NoError(t, err)
	assert.Equal(t, []api.Span{{Off: 16, Len: 4}}, r.Tracker().DirtySpans())
}

// Stripping the capability yields a plain view whose writes bypass the
// tracker entirely.
func TestCapabilityStrip(t *testing.T) {
	backing, r := rangeOver(t, 64, 8)

	s := vmem.FromRange(r)
	assert.Equal(t, r.Ptr(), s.Ptr())
	assert.Equal(t, r.Size(), s.Len())

	_, err := s.WriteAt([]byte("quiet"), 0)
	require.NoError(t, err)
	assert.Equal(t, "quiet", string(backing[:5]))
	assert.Empty(t, r.Tracker().DirtySpans())
}
