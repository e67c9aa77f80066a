package types

import (
	"time"
)

// FunctionStats accumulates call latency for one native function.
type FunctionStats struct {
	Calls uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// MeterSnapshot is a point-in-time copy of the call meter's accumulated
// state, keyed by native function name. Failures counts recording errors
// that were swallowed so they could not affect the wrapped calls.
type MeterSnapshot struct {
	Functions map[string]FunctionStats
	Failures  uint64
}
