// File: region/doc.go
// Package region
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Caller-owned memory regions backing vmem views.
//
// The vmem core never allocates or frees memory; this package is one
// producer of the regions it views. On Linux regions are mapped anonymously
// via golang.org/x/sys/unix (attempting hugepages for large sizes, in the
// spirit of high-throughput I/O buffers), with a Go-heap fallback; other
// platforms use the heap directly. A Region owns its memory and must not
// be closed while any vmem.Slice or vmem.Buf derived from it is in use.

package region
