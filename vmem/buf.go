// File: vmem/buf.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buf: the lifetime-erased companion of Slice for asynchronous I/O handoff.

package vmem

import (
	"unsafe"

	"github.com/momentics/hioload-vmem/api"
)

// Buf is an (address, initialized, capacity) triple an asynchronous I/O
// engine can hold across a suspension point. Unlike Slice it carries no
// borrow scope at all: it is an index into memory, not a reference.
//
// Unsafe contract, on top of the Slice contract: the caller must ensure a
// Buf does not outlive the memory (or Slice) it was created from, that the
// backing address stays stable while the Buf exists, and that nobody else
// touches the region while the consuming engine holds the Buf.
type Buf struct {
	addr uintptr
	size int
	cap  int
}

// NewBuf creates a Buf over b with no bytes initialized.
//
// Unsafe contract: b's backing array must stay live and untouched by others
// for the life of the Buf.
func NewBuf(b []byte) *Buf {
	return &Buf{
		addr: uintptr(unsafe.Pointer(unsafe.SliceData(b))),
		cap:  len(b),
	}
}

// BufFromRaw creates a Buf from explicit parts.
//
// Unsafe contract: same as NewBuf, and the caller asserts size <= cap.
func BufFromRaw(ptr unsafe.Pointer, size, cap int) *Buf {
	return &Buf{addr: uintptr(ptr), size: size, cap: cap}
}

// BorrowBuf temporarily erases the slice's borrow scope for an I/O handoff.
//
// Unsafe contract: the Buf must not outlive s, and s must not be accessed
// concurrently while the Buf is outstanding.
func (s Slice) BorrowBuf() *Buf {
	return &Buf{addr: s.addr, cap: int(s.size)}
}

// StablePtr implements api.IoBuf. The address never changes for the life
// of the Buf.
func (b *Buf) StablePtr() unsafe.Pointer {
	return unsafe.Pointer(b.addr)
}

// BytesInit implements api.IoBuf.
func (b *Buf) BytesInit() int {
	return b.size
}

// BytesTotal implements api.IoBuf.
func (b *Buf) BytesTotal() int {
	return b.cap
}

// StableMutPtr implements api.IoBufMut.
func (b *Buf) StableMutPtr() unsafe.Pointer {
	return unsafe.Pointer(b.addr)
}

// SetInit implements api.IoBufMut. It is the sole mutator: the consuming
// engine reports how many bytes it actually initialized. Precondition
// (unchecked): pos <= BytesTotal().
func (b *Buf) SetInit(pos int) {
	b.size = pos
}

// Slice views the initialized prefix of the buffer, under the original
// safety contract.
func (b *Buf) Slice() Slice {
	return Slice{addr: b.addr, size: uintptr(b.size)}
}

// CapSlice views the buffer's full capacity, under the original safety
// contract.
func (b *Buf) CapSlice() Slice {
	return Slice{addr: b.addr, size: uintptr(b.cap)}
}

var (
	_ api.IoBuf    = (*Buf)(nil)
	_ api.IoBufMut = (*Buf)(nil)
)
