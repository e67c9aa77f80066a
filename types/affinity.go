// Package types provides core types used throughout the hostbind package.
package types

// AffinityClass describes which host thread an operation may be called from.
// It is a static attribute of each wrapped native function, not of a call.
type AffinityClass uint8

const (
	// MainThreadOnly operations must run on the thread that initialized the
	// host handle. Calling them from anywhere else risks corrupting host
	// memory, so the guard refuses to forward such calls.
	MainThreadOnly AffinityClass = iota
	// AudioThreadSafe operations are meant to be called from within the
	// host's real-time audio callback. The guard performs no identity check
	// for them; the restriction is contractual.
	AudioThreadSafe
	// AnyThread operations are safe from every thread.
	AnyThread
)

func (c AffinityClass) String() string {
	switch c {
	case MainThreadOnly:
		return "main-thread-only"
	case AudioThreadSafe:
		return "audio-thread-safe"
	case AnyThread:
		return "any-thread"
	default:
		return "unknown"
	}
}
