// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake buffer implementation for testing api.IoBuf consumers.

package fake

import (
	"unsafe"

	"github.com/momentics/hioload-vmem/api"
)

// Buf is a heap-backed api.IoBufMut with mutation accounting.
type Buf struct {
	data     []byte
	size     int
	SetInits []int // every pos passed to SetInit, in order
}

// NewBuf creates a fake buffer of the given capacity.
func NewBuf(capacity int) *Buf {
	return &Buf{data: make([]byte, capacity)}
}

// NewBufFilled creates a fake buffer whose whole capacity is initialized
// with the given bytes.
func NewBufFilled(p []byte) *Buf {
	data := make([]byte, len(p))
	copy(data, p)
	return &Buf{data: data, size: len(p)}
}

// StablePtr implements api.IoBuf.
func (b *Buf) StablePtr() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(b.data))
}

// StableMutPtr implements api.IoBufMut.
func (b *Buf) StableMutPtr() unsafe.Pointer {
	return b.StablePtr()
}

// BytesInit implements api.IoBuf.
func (b *Buf) BytesInit() int {
	return b.size
}

// BytesTotal implements api.IoBuf.
func (b *Buf) BytesTotal() int {
	return len(b.data)
}

// SetInit implements api.IoBufMut and records the call.
func (b *Buf) SetInit(pos int) {
	b.size = pos
	b.SetInits = append(b.SetInits, pos)
}

// Bytes returns the initialized prefix.
func (b *Buf) Bytes() []byte {
	return b.data[:b.size]
}

var _ api.IoBufMut = (*Buf)(nil)
