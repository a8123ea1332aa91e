// File: vmem/slice.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Slice: a borrowed, bounds-checked view over raw volatile memory.

package vmem

import (
	"io"
	"unsafe"

	"github.com/momentics/hioload-vmem/api"
)

// Slice is an immutable (address, length) descriptor over a raw memory
// region. The descriptor never changes after construction; sub-slicing
// produces a new descriptor. Byte contents are mutated through it, the
// geometry is not.
//
// Safety contract, carried by every Slice regardless of how it was made:
// for as long as the Slice is in use, [addr, addr+size) must be valid
// memory, and every other concurrent accessor of the same bytes must also
// use volatile-safe access (this package's operations, or equivalent
// atomic/copy primitives). Violating the contract is undefined behavior,
// not a reportable error.
type Slice struct {
	addr uintptr
	size uintptr
}

// New creates a Slice from a raw pointer and a length in bytes.
//
// Unsafe contract: the caller guarantees the memory at ptr is size bytes
// long, stays valid for the lifetime of the Slice and of every sub-slice
// derived from it, and is only ever accessed volatile-safely. No runtime
// check is possible.
func New(ptr unsafe.Pointer, size uintptr) Slice {
	return Slice{addr: uintptr(ptr), size: size}
}

// FromRange creates a Slice from any capability-bearing byte range,
// stripping the capability. Passing an api.TrackedRange here drops its
// dirty tracker: callers that need write tracking must keep the tracked
// value and route writes through it instead.
func FromRange(r api.ByteRange) Slice {
	return New(r.Ptr(), r.Size())
}

// Ptr returns the base address of the view. No bounds are implied for any
// single use; combine with Len.
func (s Slice) Ptr() unsafe.Pointer {
	return unsafe.Pointer(s.addr)
}

// Len returns the view length in bytes.
func (s Slice) Len() uintptr {
	return s.size
}

// IsEmpty reports whether the view has zero length.
func (s Slice) IsEmpty() bool {
	return s.size == 0
}

// Size implements api.ByteRange.
func (s Slice) Size() uintptr {
	return s.size
}

// Offset returns a sub-slice of s starting at off. Offsetting by exactly
// Len() yields a valid empty slice. The result shares s's safety contract;
// no liveness is re-validated, only geometry is recomputed.
func (s Slice) Offset(off uintptr) (Slice, error) {
	newAddr := s.addr + off
	if newAddr < s.addr {
		return Slice{}, &OverflowError{Base: s.addr, Offset: off}
	}
	if off > s.size {
		return Slice{}, &OutOfBoundsError{Addr: newAddr}
	}
	return Slice{addr: newAddr, size: s.size - off}, nil
}

// bytes materializes the region as a byte slice for copy-based access.
// Callers must stay within the view's checked bounds.
func (s Slice) bytes() []byte {
	if s.size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(s.addr)), s.size)
}

// WriteAt copies bytes from p into the region starting at off. It copies
// min(len(p), Len()-off) bytes and returns the count; it never writes
// outside the view. off beyond the end is an out-of-bounds error.
func (s Slice) WriteAt(p []byte, off uintptr) (int, error) {
	tail, err := s.Offset(off)
	if err != nil {
		return 0, err
	}
	return copy(tail.bytes(), p), nil
}

// ReadAt copies bytes from the region starting at off into p. It copies
// min(len(p), Len()-off) bytes and returns the count; it never reads
// outside the view.
func (s Slice) ReadAt(p []byte, off uintptr) (int, error) {
	tail, err := s.Offset(off)
	if err != nil {
		return 0, err
	}
	return copy(p, tail.bytes()), nil
}

// WriteFull copies all of p into the region at off, or fails. A request
// longer than the remaining region is a PartialAccessError after copying
// what fits.
func (s Slice) WriteFull(p []byte, off uintptr) error {
	n, err := s.WriteAt(p, off)
	if err != nil {
		return err
	}
	if n != len(p) {
		return &PartialAccessError{Expected: len(p), Completed: n}
	}
	return nil
}

// ReadFull fills all of p from the region at off, or fails. The transfer
// direction is region into p; it must never share the write path.
func (s Slice) ReadFull(p []byte, off uintptr) error {
	n, err := s.ReadAt(p, off)
	if err != nil {
		return err
	}
	if n != len(p) {
		return &PartialAccessError{Expected: len(p), Completed: n}
	}
	return nil
}

// ReadFrom pulls up to count bytes from src into the region at off,
// reading repeatedly until count bytes arrive or src reports EOF. EOF
// before count is success with the partial count; any other stream error
// is returned with the progress so far. count beyond the remaining region
// is out of bounds.
func (s Slice) ReadFrom(off uintptr, src io.Reader, count int) (int, error) {
	dst, err := s.ioSpan(off, count)
	if err != nil {
		return 0, err
	}
	total := 0
	for total < count {
		n, err := src.Read(dst[total:])
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadExactFrom is ReadFrom but a short pull is an error.
func (s Slice) ReadExactFrom(off uintptr, src io.Reader, count int) error {
	n, err := s.ReadFrom(off, src, count)
	if err != nil {
		return err
	}
	if n != count {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// WriteTo pushes count bytes from the region at off into dst, writing
// repeatedly until count bytes are accepted or dst reports an error. A
// zero-progress write is reported as io.ErrShortWrite. count beyond the
// remaining region is out of bounds.
func (s Slice) WriteTo(off uintptr, dst io.Writer, count int) (int, error) {
	src, err := s.ioSpan(off, count)
	if err != nil {
		return 0, err
	}
	total := 0
	for total < count {
		n, err := dst.Write(src[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// WriteAllTo is WriteTo but a short push is an error.
func (s Slice) WriteAllTo(off uintptr, dst io.Writer, count int) error {
	n, err := s.WriteTo(off, dst, count)
	if err != nil {
		return err
	}
	if n != count {
		return io.ErrShortWrite
	}
	return nil
}

// ioSpan bounds-checks [off, off+count) and returns it as a byte slice.
func (s Slice) ioSpan(off uintptr, count int) ([]byte, error) {
	if count < 0 {
		return nil, api.ErrInvalidArgument
	}
	tail, err := s.Offset(off)
	if err != nil {
		return nil, err
	}
	if uintptr(count) > tail.size {
		return nil, &OutOfBoundsError{Addr: tail.addr + uintptr(count)}
	}
	return tail.bytes()[:count], nil
}

var _ api.ByteRange = Slice{}
