// File: vmem/atomic.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Typed atomic loads and stores against a Slice.
//
// These are the one place where hardware ordering guarantees are part of
// the contract: the region may be concurrently observed by another actor,
// so every access here goes through sync/atomic. Go's sync/atomic operations
// are sequentially consistent, so every requested Ordering is honored at
// least as strongly as asked.
//
// 8- and 16-bit widths have no native sync/atomic primitives. They are
// implemented as a CAS loop on the aligned 32-bit word containing the
// target bytes. An aligned word never crosses a page boundary, so the
// access stays on memory backed by the same page as the target byte even
// when the word extends past the slice's logical end. Under the package
// contract all concurrent accessors of the region are volatile-safe, so
// the read-modify-write of neighbouring bytes cannot lose plain stores.

package vmem

import (
	"sync/atomic"
	"unsafe"
)

// Ordering selects the memory-ordering mode of an atomic access, mirroring
// the standard acquire/release vocabulary. The Go memory model exposes a
// single, sequentially consistent flavor of atomics; all modes therefore
// execute with SeqCst strength, which satisfies every weaker request.
type Ordering int

const (
	Relaxed Ordering = iota
	Acquire
	Release
	AcqRel
	SeqCst
)

// AtomicAccess constrains typed atomic access to fixed-width integer types
// whose bit patterns are safe for hardware atomic operations.
type AtomicAccess interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Store atomically writes val into s at byte offset off with (at least) the
// requested ordering. The access must lie fully inside the slice and off
// must be a multiple of the access width.
func Store[T AtomicAccess](s Slice, val T, off uintptr, _ Ordering) error {
	width := unsafe.Sizeof(val)
	if err := s.checkAtomic(off, width); err != nil {
		return err
	}
	p := unsafe.Pointer(s.addr + off)
	switch width {
	case 1:
		storeSubword(p, uint32(*(*uint8)(unsafe.Pointer(&val))), 1)
	case 2:
		storeSubword(p, uint32(*(*uint16)(unsafe.Pointer(&val))), 2)
	case 4:
		atomic.StoreUint32((*uint32)(p), *(*uint32)(unsafe.Pointer(&val)))
	case 8:
		atomic.StoreUint64((*uint64)(p), *(*uint64)(unsafe.Pointer(&val)))
	}
	return nil
}

// Load atomically reads a T from s at byte offset off with (at least) the
// requested ordering.
func Load[T AtomicAccess](s Slice, off uintptr, _ Ordering) (T, error) {
	var out T
	width := unsafe.Sizeof(out)
	if err := s.checkAtomic(off, width); err != nil {
		return out, err
	}
	p := unsafe.Pointer(s.addr + off)
	switch width {
	case 1:
		v := uint8(loadSubword(p, 1))
		out = *(*T)(unsafe.Pointer(&v))
	case 2:
		v := uint16(loadSubword(p, 2))
		out = *(*T)(unsafe.Pointer(&v))
	case 4:
		v := atomic.LoadUint32((*uint32)(p))
		out = *(*T)(unsafe.Pointer(&v))
	case 8:
		v := atomic.LoadUint64((*uint64)(p))
		out = *(*T)(unsafe.Pointer(&v))
	}
	return out, nil
}

// checkAtomic validates bounds and natural alignment for a width-byte
// access at off.
func (s Slice) checkAtomic(off, width uintptr) error {
	end := off + width
	if end < off {
		return &OverflowError{Base: s.addr, Offset: off}
	}
	if end > s.size {
		return &OutOfBoundsError{Addr: s.addr + off}
	}
	if (s.addr+off)%width != 0 {
		return ErrMisaligned
	}
	return nil
}

// hostBigEndian is resolved once; sub-word CAS shifts depend on byte order.
var hostBigEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 0
}()

// subwordShift returns the bit position of a width-byte value at addr
// inside its aligned containing 32-bit word.
func subwordShift(addr, width uintptr) uint {
	b := addr & 3
	if hostBigEndian {
		b = 4 - width - b
	}
	return uint(b * 8)
}

func storeSubword(p unsafe.Pointer, v uint32, width uintptr) {
	addr := uintptr(p)
	word := (*uint32)(unsafe.Pointer(addr &^ 3))
	shift := subwordShift(addr, width)
	mask := (uint32(1)<<(8*uint(width)) - 1) << shift
	for {
		old := atomic.LoadUint32(word)
		upd := (old &^ mask) | (v << shift)
		if atomic.CompareAndSwapUint32(word, old, upd) {
			return
		}
	}
}

func loadSubword(p unsafe.Pointer, width uintptr) uint32 {
	addr := uintptr(p)
	word := (*uint32)(unsafe.Pointer(addr &^ 3))
	shift := subwordShift(addr, width)
	return (atomic.LoadUint32(word) >> shift) & (uint32(1)<<(8*uint(width)) - 1)
}
