// File: region/region_linux.go
//go:build linux
// +build linux

// Package region: Linux allocation via anonymous mmap.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Sizes of at least one hugepage are first attempted with MAP_HUGETLB
// (2 MiB pages); on failure the mapping degrades to regular pages, and on
// mmap failure altogether to the Go heap.

package region

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const hugePageSize = 2 << 20

func platformAlloc(size int) ([]byte, bool, error) {
	if size >= hugePageSize {
		length := ((size + hugePageSize - 1) / hugePageSize) * hugePageSize
		data, err := unix.Mmap(-1, 0, length,
			unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_ANONYMOUS|unix.MAP_PRIVATE|unix.MAP_HUGETLB)
		if err == nil {
			return data[:size], true, nil
		}
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANONYMOUS|unix.MAP_PRIVATE)
	if err != nil {
		// mmap exhausted; the heap still satisfies the contract.
		return make([]byte, size), false, nil
	}
	return data, true, nil
}

func platformRelease(data []byte) error {
	if err := unix.Munmap(data[:cap(data)]); err != nil {
		return errors.Wrap(err, "munmap region")
	}
	return nil
}
