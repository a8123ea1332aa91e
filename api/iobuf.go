// File: api/iobuf.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ownable buffer contract for zero-copy asynchronous I/O.
//
// An asynchronous I/O engine retains buffer values across suspension points,
// so it cannot hold a lifetime-checked view. Instead it takes a value that
// reports a stable pointer, how many bytes are initialized, and the total
// capacity, and it reports progress back through the single SetInit mutator.
// This two-part contract is the entire boundary between buffer producers
// (vmem.Buf, fake.Buf) and buffer consumers (asyncio.Engine).

package api

import "unsafe"

// IoBuf is a read-side buffer handed to an I/O engine.
//
// The pointer returned by StablePtr must not change for the life of the
// value; consumers retain it across suspension points.
type IoBuf interface {
	// StablePtr returns the base address of the buffer memory.
	StablePtr() unsafe.Pointer

	// BytesInit returns the number of bytes initialized so far.
	BytesInit() int

	// BytesTotal returns the total usable capacity in bytes.
	BytesTotal() int
}

// IoBufMut is a write-side buffer handed to an I/O engine.
type IoBufMut interface {
	IoBuf

	// StableMutPtr returns the writable base address of the buffer memory.
	StableMutPtr() unsafe.Pointer

	// SetInit records that the first pos bytes are now initialized.
	// Precondition (unchecked): pos <= BytesTotal(). Only the engine that
	// currently owns the buffer may call it.
	SetInit(pos int)
}
