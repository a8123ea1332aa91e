// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake byte-stream implementations for testing streaming and engine I/O.

package fake

import (
	"io"
	"sync"
)

// Source is an io.Reader that yields scripted chunks, then a final error
// (io.EOF unless overridden). A chunked source exercises the repeated-pull
// loops in vmem streaming reads.
type Source struct {
	chunks   [][]byte
	final    error
	chunkIdx int
	offset   int
}

// NewSource builds a source yielding the given chunks then io.EOF.
func NewSource(chunks ...[]byte) *Source {
	return &Source{chunks: chunks, final: io.EOF}
}

// FailWith replaces the final io.EOF with err.
func (s *Source) FailWith(err error) *Source {
	s.final = err
	return s
}

// Read implements io.Reader; each call yields at most one chunk.
func (s *Source) Read(p []byte) (int, error) {
	for s.chunkIdx < len(s.chunks) {
		chunk := s.chunks[s.chunkIdx]
		if s.offset < len(chunk) {
			n := copy(p, chunk[s.offset:])
			s.offset += n
			return n, nil
		}
		s.chunkIdx++
		s.offset = 0
	}
	return 0, s.final
}

// Sink is an io.Writer capturing everything written, optionally accepting
// at most PerCall bytes per call to exercise short-write handling.
type Sink struct {
	Data    []byte
	PerCall int // max bytes accepted per Write call; 0 = unlimited
	Fail    error
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	if s.Fail != nil {
		return 0, s.Fail
	}
	n := len(p)
	if s.PerCall > 0 && n > s.PerCall {
		n = s.PerCall
	}
	s.Data = append(s.Data, p[:n]...)
	return n, nil
}

// ReaderAt serves reads from a fixed byte string, concurrency-safe.
type ReaderAt struct {
	mu   sync.Mutex
	data []byte
}

// NewReaderAt builds a ReaderAt over p.
func NewReaderAt(p []byte) *ReaderAt {
	data := make([]byte, len(p))
	copy(data, p)
	return &ReaderAt{data: data}
}

// ReadAt implements io.ReaderAt.
func (r *ReaderAt) ReadAt(p []byte, off int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriterAt captures positional writes into a growing buffer,
// concurrency-safe.
type WriterAt struct {
	mu   sync.Mutex
	data []byte
}

// WriteAt implements io.WriterAt.
func (w *WriterAt) WriteAt(p []byte, off int64) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	end := off + int64(len(p))
	if int64(len(w.data)) < end {
		grown := make([]byte, end)
		copy(grown, w.data)
		w.data = grown
	}
	return copy(w.data[off:end], p), nil
}

// Bytes returns everything written so far.
func (w *WriterAt) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]byte, len(w.data))
	copy(out, w.data)
	return out
}
