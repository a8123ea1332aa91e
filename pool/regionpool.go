// File: pool/regionpool.go
// Package pool implements size-classed region recycling.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-vmem/api"
	"github.com/momentics/hioload-vmem/region"
)

// Predefined (power-of-two) region size classes (bytes).
// This table can be tuned for deployment needs.
var sizeClasses = [...]int{
	4 * 1024,        // 4K
	8 * 1024,        // 8K
	16 * 1024,       // 16K
	32 * 1024,       // 32K
	64 * 1024,       // 64K
	128 * 1024,      // 128K
	256 * 1024,      // 256K
	512 * 1024,      // 512K
	1 * 1024 * 1024, // 1M
	2 * 1024 * 1024, // 2M
	4 * 1024 * 1024, // 4M
}

// sizeClassFor returns the smallest class >= requested size. A request
// beyond the biggest class becomes its own exact-size class, so Get never
// hands back less than was asked for.
func sizeClassFor(size int) int {
	for _, c := range sizeClasses {
		if size <= c {
			return c
		}
	}
	return size
}

const perClassCapacity = 256

// Manager routes Get/Put through per-class free lists.
type Manager struct {
	mu    sync.Mutex
	class map[int]*classPool

	totalAlloc atomic.Int64
	totalFree  atomic.Int64
}

// classPool holds idle regions of one size class.
type classPool struct {
	idle chan *region.Region
}

// NewManager creates an empty pool manager.
func NewManager() *Manager {
	return &Manager{class: make(map[int]*classPool)}
}

// Get returns a region of at least size bytes, reusing an idle one when
// the class has it.
func (m *Manager) Get(size int) (*region.Region, error) {
	if size <= 0 {
		return nil, api.ErrInvalidArgument
	}
	clz := sizeClassFor(size)
	cp := m.getOrCreate(clz)
	select {
	case r := <-cp.idle:
		return r, nil
	default:
	}
	r, err := region.New(clz)
	if err != nil {
		return nil, err
	}
	m.totalAlloc.Add(1)
	return r, nil
}

// Put returns a region for reuse. Regions whose class free list is full
// are closed instead. The caller must no longer hold views into r.
func (m *Manager) Put(r *region.Region) {
	if r == nil || r.Len() == 0 {
		return
	}
	cp := m.getOrCreate(sizeClassFor(r.Len()))
	select {
	case cp.idle <- r:
	default:
		r.Close()
		m.totalFree.Add(1)
	}
}

// Drain closes every idle region.
func (m *Manager) Drain() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cp := range m.class {
	drained:
		for {
			select {
			case r := <-cp.idle:
				r.Close()
				m.totalFree.Add(1)
			default:
				break drained
			}
		}
	}
}

// Stats exposes allocation/reuse accounting.
func (m *Manager) Stats() api.PoolStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	per := make(map[int]int64, len(m.class))
	var idle int64
	for clz, cp := range m.class {
		n := int64(len(cp.idle))
		per[clz] = n
		idle += n
	}
	alloc := m.totalAlloc.Load()
	free := m.totalFree.Load()
	// Regions parked on a free list are neither closed nor held by a
	// caller; they must not count as in-use.
	return api.PoolStats{
		TotalAlloc: alloc,
		TotalFree:  free,
		InUse:      alloc - free - idle,
		PerClass:   per,
	}
}

// getOrCreate returns the class pool, lazily allocating on first use.
func (m *Manager) getOrCreate(clz int) *classPool {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp, ok := m.class[clz]
	if !ok {
		cp = &classPool{idle: make(chan *region.Region, perClassCapacity)}
		m.class[clz] = cp
	}
	return cp
}
