// File: tracked/range.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Range: a byte range carrying the dirty-tracking capability.

package tracked

import (
	"io"
	"unsafe"

	"github.com/momentics/hioload-vmem/api"
	"github.com/momentics/hioload-vmem/vmem"
)

// Range couples a vmem.Slice with a dirty bitmap. Every write routed
// through the Range marks the touched blocks; reads pass straight through.
// Writes performed on the bare Slice (including one recovered via
// vmem.FromRange) are invisible to the tracker — that is the point of the
// capability split.
type Range struct {
	s  vmem.Slice
	bm *Bitmap
}

// NewRange wraps s with a dirty tracker of the given block granularity.
// blockSize == 0 selects DefaultBlockSize.
func NewRange(s vmem.Slice, blockSize uintptr) *Range {
	return &Range{s: s, bm: NewBitmap(s.Len(), blockSize)}
}

// Ptr implements api.ByteRange.
func (r *Range) Ptr() unsafe.Pointer {
	return r.s.Ptr()
}

// Size implements api.ByteRange.
func (r *Range) Size() uintptr {
	return r.s.Len()
}

// Tracker implements api.TrackedRange.
func (r *Range) Tracker() api.DirtyTracker {
	return r.bm
}

// Slice returns the underlying capability-free view.
func (r *Range) Slice() vmem.Slice {
	return r.s
}

// WriteAt copies p into the region at off and marks the written span.
func (r *Range) WriteAt(p []byte, off uintptr) (int, error) {
	n, err := r.s.WriteAt(p, off)
	r.bm.MarkDirty(off, uintptr(n))
	return n, err
}

// WriteFull copies all of p into the region at off, or fails. Bytes that
// did land are marked even on a partial failure.
func (r *Range) WriteFull(p []byte, off uintptr) error {
	n, err := r.s.WriteAt(p, off)
	r.bm.MarkDirty(off, uintptr(n))
	if err != nil {
		return err
	}
	if n != len(p) {
		return &vmem.PartialAccessError{Expected: len(p), Completed: n}
	}
	return nil
}

// ReadFrom pulls up to count bytes from src into the region at off,
// marking whatever arrived.
func (r *Range) ReadFrom(off uintptr, src io.Reader, count int) (int, error) {
	n, err := r.s.ReadFrom(off, src, count)
	r.bm.MarkDirty(off, uintptr(n))
	return n, err
}

// ReadAt copies from the region into p; reads do not dirty.
func (r *Range) ReadAt(p []byte, off uintptr) (int, error) {
	return r.s.ReadAt(p, off)
}

// ReadFull fills all of p from the region at off, or fails.
func (r *Range) ReadFull(p []byte, off uintptr) error {
	return r.s.ReadFull(p, off)
}

// WriteTo pushes count bytes from the region at off into dst.
func (r *Range) WriteTo(off uintptr, dst io.Writer, count int) (int, error) {
	return r.s.WriteTo(off, dst, count)
}

var _ api.TrackedRange = (*Range)(nil)
