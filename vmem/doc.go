// File: vmem/doc.go
// Package vmem
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Volatile memory views for zero-copy I/O pipelines.
//
// vmem.Slice is a borrowed (address, length) view over a caller-supplied
// memory region that may be concurrently accessed by another execution
// context: memory shared with another process, a mapped device region, or a
// buffer handed to a kernel-level transport. The slice owns nothing and
// frees nothing; it only promises that its own accesses are genuine
// loads/stores and that every sub-slice is produced with bounds and overflow
// checks instead of panics.
//
// vmem.Buf is the lifetime-erased companion: an address/used/capacity triple
// an asynchronous I/O engine can retain across a suspension point. It
// implements api.IoBuf and api.IoBufMut.
//
// Dirty tracking is deliberately absent here. A capability-bearing range
// (api.TrackedRange) is stripped down to address+length by FromRange; the
// tracked package layers write tracking back on top for callers that opt in.

package vmem
