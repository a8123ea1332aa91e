// File: region/region_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package region_test

import (
	"testing"

	"github.com/momentics/hioload-vmem/api"
	"github.com/momentics/hioload-vmem/region"
	"github.com/momentics/hioload-vmem/vmem"
)

func TestRegionLifecycle(t *testing.T) {
	r, err := region.New(4096)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Len() != 4096 {
		t.Fatalf("Len = %d, want 4096", r.Len())
	}

	s := r.Slice()
	if s.Len() != 4096 {
		t.Fatalf("slice len = %d, want 4096", s.Len())
	}
	if _, err := s.WriteAt([]byte("persist"), 100); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if got := string(r.Bytes()[100:107]); got != "persist" {
		t.Fatalf("backing = %q, want %q", got, "persist")
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if r.Bytes() != nil {
		t.Fatal("Bytes after Close must be nil")
	}
	// Close is idempotent.
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestRegionInvalidSize(t *testing.T) {
	if _, err := region.New(0); err != api.ErrInvalidArgument {
		t.Fatalf("New(0) err = %v, want ErrInvalidArgument", err)
	}
	if _, err := region.New(-1); err != api.ErrInvalidArgument {
		t.Fatalf("New(-1) err = %v, want ErrInvalidArgument", err)
	}
}

func TestRegionHugeAllocation(t *testing.T) {
	// Larger than a hugepage so the Linux build exercises the MAP_HUGETLB
	// attempt and its fallbacks.
	r, err := region.New(3 << 20)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	s := r.Slice()
	if err := vmem.Store(s, uint64(0xfeedface), 0, vmem.SeqCst); err != nil {
		t.Fatalf("Store: %v", err)
	}
	v, err := vmem.Load[uint64](s, 0, vmem.SeqCst)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v != 0xfeedface {
		t.Fatalf("Load = %#x, want 0xfeedface", v)
	}
}
