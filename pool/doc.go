// File: pool/doc.go
// Package pool
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Size-classed recycling of region.Region allocations.
//
// Requests are rounded up to a power-of-two size class and served from a
// per-class free list, so repeated borrow/return cycles of I/O buffers
// avoid fresh mappings. The pool hands out whole regions; views into them
// are taken with Region.Slice as usual.

package pool
