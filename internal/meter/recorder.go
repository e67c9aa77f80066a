//go:build hostmeter

package meter

import (
	"sync"
	"time"

	"github.com/hostbind/hostbind/types"
)

// Recorder accumulates call statistics keyed by native function name.
// Begin and End bracket one outgoing call.
type Recorder struct {
	mu       sync.Mutex
	stats    map[string]*types.FunctionStats
	failures uint64
}

// Token carries the start time from Begin to End.
type Token struct {
	start time.Time
}

func New() *Recorder {
	return &Recorder{stats: make(map[string]*types.FunctionStats)}
}

func (r *Recorder) Begin() Token {
	return Token{start: time.Now()}
}

// End records one completed call. Any internal failure is swallowed and
// counted; it never reaches the caller.
func (r *Recorder) End(name string, t Token) {
	defer func() {
		if rec := recover(); rec != nil {
			r.mu.Lock()
			r.failures++
			r.mu.Unlock()
		}
	}()
	elapsed := time.Since(t.start)
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.stats[name]
	if s == nil {
		s = &types.FunctionStats{Min: elapsed, Max: elapsed}
		r.stats[name] = s
	}
	s.Calls++
	s.Total += elapsed
	if elapsed < s.Min {
		s.Min = elapsed
	}
	if elapsed > s.Max {
		s.Max = elapsed
	}
}

// Snapshot copies the accumulated state. The recorder keeps accumulating;
// snapshots are independent of later calls.
func (r *Recorder) Snapshot() types.MeterSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := types.MeterSnapshot{
		Functions: make(map[string]types.FunctionStats, len(r.stats)),
		Failures:  r.failures,
	}
	for name, s := range r.stats {
		out.Functions[name] = *s
	}
	return out
}
