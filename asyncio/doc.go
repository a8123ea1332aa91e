// File: asyncio/doc.go
// Package asyncio
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buffer-owning asynchronous I/O engine.
//
// The engine is the consuming side of the api.IoBuf / api.IoBufMut
// contract: callers hand over a buffer value together with a source or
// sink, workers move the bytes, and a completion carrying the buffer and
// the transfer result comes back through a FIFO completion queue. While an
// operation is in flight the engine logically owns the buffer; the caller
// must not touch the underlying memory until the completion returns it.
//
// On read completion the engine calls SetInit with the byte count that
// actually arrived — the single mutator the buffer contract allows. An
// operation never swallows a buffer: cancellation-by-Close still delivers
// a completion for every accepted submission.

package asyncio
