// Package meter records per-function latency around outgoing native calls.
//
// The recorder is compiled in only under the "hostmeter" build tag. The
// default build substitutes empty types and empty inlinable methods, so the
// instrumented call sites in the hostbind package cost nothing when metering
// is off. Recording never fails a wrapped call: internal errors are swallowed
// and surfaced as a failure count in the snapshot.
package meter
