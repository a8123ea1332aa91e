// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and debug introspection layer.
//
// Provides concurrent-safe telemetry primitives for the library's moving
// parts (the asyncio engine, region pools): monotonic counters, gauge
// snapshots, and named debug probes for state export.
package control
