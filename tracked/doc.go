// File: tracked/doc.go
// Package tracked
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Write tracking layered on top of vmem.Slice.
//
// The vmem core never records which bytes were modified; that capability
// lives here, where callers explicitly opt in. tracked.Range implements
// api.TrackedRange: a byte range plus an atomic block-granular dirty
// bitmap. Handing a Range to vmem.FromRange strips the capability and
// yields a plain view again.

package tracked
