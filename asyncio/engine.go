// File: asyncio/engine.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Engine: worker pool with a submission channel and a FIFO completion
// queue, in the shape of a submission/completion ring pair.

package asyncio

import (
	"io"
	"sync"
	"unsafe"

	"github.com/eapache/queue"
	"github.com/pkg/errors"

	"github.com/momentics/hioload-vmem/api"
	"github.com/momentics/hioload-vmem/control"
)

// OpKind distinguishes completed operation types.
type OpKind int

const (
	OpRead OpKind = iota
	OpWrite
)

// Completion reports a finished operation and returns the buffer to the
// caller. For reads, N bytes were initialized and SetInit(N) has already
// been called on the buffer. For writes, N bytes were pushed to the sink.
// Err is nil on full success; a partial read stopped by EOF is a success
// with N < BytesTotal.
type Completion struct {
	Kind OpKind
	Buf  api.IoBuf
	N    int
	Err  error
}

type op struct {
	kind OpKind
	rbuf api.IoBufMut
	wbuf api.IoBuf
	src  io.ReaderAt
	dst  io.WriterAt
	off  int64
}

// Engine moves bytes between readers/writers and ownable buffers on a
// fixed pool of workers.
type Engine struct {
	workers    int
	queueDepth int
	metrics    *control.MetricsRegistry

	subCh chan op
	wg    sync.WaitGroup

	mu     sync.Mutex
	cond   *sync.Cond
	cq     *queue.Queue
	closed bool
	probes *control.DebugProbes

	inflight sync.WaitGroup
}

// New creates and starts an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		workers:    2,
		queueDepth: 256,
	}
	for _, o := range opts {
		o(e)
	}
	e.subCh = make(chan op, e.queueDepth)
	e.cq = queue.New()
	e.cond = sync.NewCond(&e.mu)
	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker()
	}
	return e
}

// SubmitRead asks the engine to read up to buf.BytesTotal() bytes from src
// at off into buf. The engine owns buf until its completion is delivered.
func (e *Engine) SubmitRead(src io.ReaderAt, off int64, buf api.IoBufMut) error {
	if src == nil || buf == nil {
		return api.ErrInvalidArgument
	}
	return e.submit(op{kind: OpRead, rbuf: buf, src: src, off: off})
}

// SubmitWrite asks the engine to write buf's initialized bytes to dst at
// off. The engine owns buf until its completion is delivered.
func (e *Engine) SubmitWrite(dst io.WriterAt, off int64, buf api.IoBuf) error {
	if dst == nil || buf == nil {
		return api.ErrInvalidArgument
	}
	return e.submit(op{kind: OpWrite, wbuf: buf, dst: dst, off: off})
}

func (e *Engine) submit(o op) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return api.ErrEngineClosed
	}
	e.inflight.Add(1)
	e.mu.Unlock()

	e.count("asyncio.submitted")
	e.subCh <- o
	return nil
}

// Wait blocks until a completion is available. After Close it keeps
// draining remaining completions and then reports api.ErrEngineClosed.
func (e *Engine) Wait() (Completion, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for e.cq.Length() == 0 {
		if e.closed {
			return Completion{}, api.ErrEngineClosed
		}
		e.cond.Wait()
	}
	return e.cq.Remove().(Completion), nil
}

// TryWait pops a completion without blocking.
func (e *Engine) TryWait() (Completion, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cq.Length() == 0 {
		return Completion{}, false
	}
	return e.cq.Remove().(Completion), true
}

// Pending returns the number of undelivered completions.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cq.Length()
}

// Close stops accepting submissions, waits for in-flight operations to
// complete (their completions stay retrievable via Wait/TryWait), and
// stops the workers. Idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.inflight.Wait()
	close(e.subCh)
	e.wg.Wait()

	e.mu.Lock()
	e.cond.Broadcast()
	probes := e.probes
	e.probes = nil
	e.mu.Unlock()

	// A stopped engine has no state worth probing.
	if probes != nil {
		probes.UnregisterProbe(engineProbeName)
	}
	return nil
}

const engineProbeName = "asyncio.engine"

// RegisterProbes exports engine state into a debug probe registry; Close
// withdraws the probe again.
func (e *Engine) RegisterProbes(dp *control.DebugProbes) {
	e.mu.Lock()
	e.probes = dp
	e.mu.Unlock()
	dp.RegisterProbe(engineProbeName, func() any {
		e.mu.Lock()
		defer e.mu.Unlock()
		return map[string]any{
			"workers":     e.workers,
			"queue_depth": e.queueDepth,
			"pending":     e.cq.Length(),
			"closed":      e.closed,
		}
	})
}

func (e *Engine) worker() {
	defer e.wg.Done()
	for o := range e.subCh {
		var c Completion
		switch o.kind {
		case OpRead:
			c = e.execRead(o)
		case OpWrite:
			c = e.execWrite(o)
		}
		e.deliver(c)
		e.inflight.Done()
	}
}

// execRead pulls bytes from the source into the buffer's full capacity and
// reports the achieved length through SetInit, error or not: the buffer
// always comes back in a defined state.
func (e *Engine) execRead(o op) Completion {
	total := o.rbuf.BytesTotal()
	var n int
	var err error
	if total > 0 {
		dst := unsafe.Slice((*byte)(o.rbuf.StableMutPtr()), total)
		n, err = o.src.ReadAt(dst, o.off)
	}
	o.rbuf.SetInit(n)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		err = errors.Wrap(err, "asyncio read")
	}
	e.count("asyncio.completed")
	e.countN("asyncio.bytes_read", int64(n))
	return Completion{Kind: OpRead, Buf: o.rbuf, N: n, Err: err}
}

// execWrite pushes the buffer's initialized prefix to the sink.
func (e *Engine) execWrite(o op) Completion {
	size := o.wbuf.BytesInit()
	var n int
	var err error
	if size > 0 {
		src := unsafe.Slice((*byte)(o.wbuf.StablePtr()), size)
		n, err = o.dst.WriteAt(src, o.off)
	}
	if err != nil {
		err = errors.Wrap(err, "asyncio write")
	}
	e.count("asyncio.completed")
	e.countN("asyncio.bytes_written", int64(n))
	return Completion{Kind: OpWrite, Buf: o.wbuf, N: n, Err: err}
}

func (e *Engine) deliver(c Completion) {
	e.mu.Lock()
	e.cq.Add(c)
	e.cond.Signal()
	e.mu.Unlock()
}

func (e *Engine) count(key string) {
	if e.metrics != nil {
		e.metrics.Inc(key)
	}
}

func (e *Engine) countN(key string, n int64) {
	if e.metrics != nil {
		e.metrics.Add(key, n)
	}
}
