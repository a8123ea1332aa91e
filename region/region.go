// File: region/region.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package region

import (
	"sync"
	"unsafe"

	"github.com/momentics/hioload-vmem/api"
	"github.com/momentics/hioload-vmem/vmem"
)

// Region is an owned block of memory, mmap- or heap-backed.
type Region struct {
	mu     sync.Mutex
	data   []byte
	mapped bool
	closed bool
}

// New allocates a region of exactly size bytes.
func New(size int) (*Region, error) {
	if size <= 0 {
		return nil, api.ErrInvalidArgument
	}
	data, mapped, err := platformAlloc(size)
	if err != nil {
		return nil, err
	}
	return &Region{data: data, mapped: mapped}, nil
}

// Bytes returns the region's memory. Nil after Close.
func (r *Region) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	return r.data
}

// Len returns the region size in bytes, 0 after Close.
func (r *Region) Len() int {
	return len(r.Bytes())
}

// Slice returns a vmem view of the whole region.
//
// The view is subject to the vmem safety contract: it must not be used
// after Close, and all concurrent access must be volatile-safe.
func (r *Region) Slice() vmem.Slice {
	b := r.Bytes()
	return vmem.New(unsafe.Pointer(unsafe.SliceData(b)), uintptr(len(b)))
}

// Close releases the region. Idempotent. Every view or buffer derived from
// the region is invalid afterwards.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	data := r.data
	r.data = nil
	if r.mapped {
		return platformRelease(data)
	}
	return nil
}
