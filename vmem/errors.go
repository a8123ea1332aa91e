// File: vmem/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for the vmem package.

package vmem

import (
	"errors"
	"fmt"
)

// ErrMisaligned indicates an atomic access whose address is not a multiple
// of the access width.
var ErrMisaligned = errors.New("misaligned atomic access")

// OutOfBoundsError reports an address outside the slice's valid range.
type OutOfBoundsError struct {
	Addr uintptr
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("address 0x%x is out of bounds", e.Addr)
}

// OverflowError reports that base+offset would wrap the address space.
type OverflowError struct {
	Base   uintptr
	Offset uintptr
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("address 0x%x offset by 0x%x would overflow", e.Base, e.Offset)
}

// PartialAccessError reports an exact-size transfer that moved fewer bytes
// than requested.
type PartialAccessError struct {
	Expected  int
	Completed int
}

func (e *PartialAccessError) Error() string {
	return fmt.Sprintf("incomplete access: expected 0x%x bytes, completed 0x%x", e.Expected, e.Completed)
}
