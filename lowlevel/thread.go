package lowlevel

// ThreadID identifies an OS thread. The affinity guard compares the value
// captured at initialization against the current one on every
// main-thread-only call, so CurrentThreadID must stay cheap: a single
// syscall, no locks, no allocation.
type ThreadID uint64
