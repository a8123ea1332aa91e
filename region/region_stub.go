// File: region/region_stub.go
//go:build !linux
// +build !linux

// Package region: heap fallback for platforms without the mmap path.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package region

func platformAlloc(size int) ([]byte, bool, error) {
	return make([]byte, size), false, nil
}

func platformRelease([]byte) error {
	return nil
}
