// File: asyncio/options.go
// Package asyncio defines functional options for the Engine.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package asyncio

import "github.com/momentics/hioload-vmem/control"

// Option customizes engine initialization.
type Option func(*Engine)

// WithWorkers sets the number of I/O worker goroutines.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithQueueDepth sets the submission queue capacity.
func WithQueueDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.queueDepth = n
		}
	}
}

// WithMetrics mirrors engine counters into a control.MetricsRegistry.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(e *Engine) {
		e.metrics = mr
	}
}
