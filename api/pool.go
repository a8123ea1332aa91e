// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Accounting types for region pooling.

package api

// PoolStats aggregates region allocation/reuse stats.
type PoolStats struct {
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
	PerClass   map[int]int64
}
