// File: tracked/bitmap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Atomic block-granular dirty bitmap.

package tracked

import (
	"sync/atomic"

	"github.com/momentics/hioload-vmem/api"
)

// DefaultBlockSize is the tracking granularity when none is given.
const DefaultBlockSize = 4096

// Bitmap records dirty blocks of a fixed-size region. One bit per block,
// packed into atomically updated 64-bit words, so concurrent writers may
// mark without locking. Reported spans over-approximate to block bounds,
// never under-approximate.
type Bitmap struct {
	size      uintptr
	blockSize uintptr
	words     []atomic.Uint64
}

// NewBitmap creates a bitmap covering size bytes at blockSize granularity.
// blockSize <= 0 selects DefaultBlockSize.
func NewBitmap(size, blockSize uintptr) *Bitmap {
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}
	blocks := (size + blockSize - 1) / blockSize
	return &Bitmap{
		size:      size,
		blockSize: blockSize,
		words:     make([]atomic.Uint64, (blocks+63)/64),
	}
}

// MarkDirty records a write of n bytes at off. Out-of-range portions are
// clipped; marking never panics.
func (b *Bitmap) MarkDirty(off, n uintptr) {
	if n == 0 || off >= b.size {
		return
	}
	end := off + n
	if end < off || end > b.size {
		end = b.size
	}
	first := off / b.blockSize
	last := (end - 1) / b.blockSize
	for blk := first; blk <= last; blk++ {
		w := &b.words[blk/64]
		bit := uint64(1) << (blk % 64)
		for {
			old := w.Load()
			if old&bit != 0 || w.CompareAndSwap(old, old|bit) {
				break
			}
		}
	}
}

// DirtySpans returns the dirty spans in ascending order, adjacent blocks
// coalesced, the final span clipped to the region size.
func (b *Bitmap) DirtySpans() []api.Span {
	var spans []api.Span
	blocks := (b.size + b.blockSize - 1) / b.blockSize
	var open bool
	var start uintptr
	for blk := uintptr(0); blk < blocks; blk++ {
		dirty := b.words[blk/64].Load()&(uint64(1)<<(blk%64)) != 0
		switch {
		case dirty && !open:
			open = true
			start = blk
		case !dirty && open:
			open = false
			spans = append(spans, b.span(start, blk))
		}
	}
	if open {
		spans = append(spans, b.span(start, blocks))
	}
	return spans
}

// span converts a [startBlk, endBlk) block run into a byte span clipped to
// the region size.
func (b *Bitmap) span(startBlk, endBlk uintptr) api.Span {
	off := startBlk * b.blockSize
	end := endBlk * b.blockSize
	if end > b.size {
		end = b.size
	}
	return api.Span{Off: off, Len: end - off}
}

// ResetDirty clears all dirty state.
func (b *Bitmap) ResetDirty() {
	for i := range b.words {
		b.words[i].Store(0)
	}
}

var _ api.DirtyTracker = (*Bitmap)(nil)
