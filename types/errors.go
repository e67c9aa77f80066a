package types

import (
	"fmt"
)

// WrongThreadError is returned when a main-thread-only operation is invoked
// from a different thread. The call never reaches the native API; the caller
// must switch to the host's main thread and retry there.
type WrongThreadError struct {
	Function string
	Required AffinityClass
}

var _ error = (*WrongThreadError)(nil)

func (e *WrongThreadError) Error() string {
	return fmt.Sprintf("%s must be called from the host's main thread (%s)", e.Function, e.Required)
}

// NotInitializedError is returned when the host handle is used before
// Initialize has run. This indicates a programming error in the caller.
type NotInitializedError struct{}

var _ error = (*NotInitializedError)(nil)

func (e *NotInitializedError) Error() string {
	return "host handle not initialized"
}

// StalePointerError is returned when a typed pointer fails revalidation. The
// underlying entity was deleted or replaced by the host; the caller should
// discard the pointer and re-query the entity.
type StalePointerError struct {
	Kind PointerKind
}

var _ error = (*StalePointerError)(nil)

func (e *StalePointerError) Error() string {
	return fmt.Sprintf("%s pointer no longer refers to a live entity", e.Kind)
}

// MalformedMidiBufferError is returned when a raw MIDI buffer cannot be
// decoded or an event sequence cannot be encoded. Pos is the byte offset
// (decode) or event index (encode) where scanning stopped.
type MalformedMidiBufferError struct {
	Pos int
	Msg string
}

var _ error = (*MalformedMidiBufferError)(nil)

func (e *MalformedMidiBufferError) Error() string {
	return fmt.Sprintf("malformed midi buffer at %d: %s", e.Pos, e.Msg)
}

// AlreadyRegisteredError is returned when a registration slot is occupied,
// e.g. a second control surface listener while one is active.
type AlreadyRegisteredError struct {
	What string
}

var _ error = (*AlreadyRegisteredError)(nil)

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("%s is already registered", e.What)
}

// NotRegisteredError is returned when an operation requires an active
// registration that does not exist.
type NotRegisteredError struct {
	What string
}

var _ error = (*NotRegisteredError)(nil)

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("%s is not registered", e.What)
}

// FunctionUnavailableError is returned when the loaded function table has no
// slot for the requested native function. Older host versions export fewer
// functions; callers should feature-detect instead of relying on the call.
type FunctionUnavailableError struct {
	Function string
}

var _ error = (*FunctionUnavailableError)(nil)

func (e *FunctionUnavailableError) Error() string {
	return fmt.Sprintf("native function %s is not available in this host", e.Function)
}
