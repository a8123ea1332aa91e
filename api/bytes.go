// File: api/bytes.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Byte-range abstractions shared across the library.
//
// A ByteRange is the minimal description of a raw memory region: base
// pointer plus size. TrackedRange extends it with an optional dirty-tracking
// capability. Consumers that do not care about tracking accept a plain
// ByteRange and the capability is stripped at the boundary (vmem.FromRange).

package api

import "unsafe"

// ByteRange describes a raw memory region by base pointer and size.
//
// Implementations promise the region stays valid and volatile-access-safe
// for as long as the ByteRange value is in use.
type ByteRange interface {
	// Ptr returns the base address of the region.
	Ptr() unsafe.Pointer

	// Size returns the region length in bytes.
	Size() uintptr
}

// Span is a half-open byte interval [Off, Off+Len) within a region.
type Span struct {
	Off uintptr
	Len uintptr
}

// DirtyTracker records which byte spans of a region have been written.
//
// Tracking granularity is implementation-defined (typically page-sized
// blocks); reported spans may over-approximate, never under-approximate.
type DirtyTracker interface {
	// MarkDirty records a write of n bytes at off.
	MarkDirty(off, n uintptr)

	// DirtySpans returns the currently dirty spans in ascending order.
	DirtySpans() []Span

	// ResetDirty clears all dirty state.
	ResetDirty()
}

// TrackedRange is a ByteRange carrying the dirty-tracking capability.
type TrackedRange interface {
	ByteRange

	// Tracker exposes the range's dirty tracker.
	Tracker() DirtyTracker
}
