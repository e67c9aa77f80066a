package hostbind

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hostbind/hostbind/types"
)

// CommandID identifies a host action. IDs are allocated by the host at
// registration time and are unique within the process, not across restarts;
// persist command names, not IDs.
type CommandID uint32

// RunHandler executes a command. flag carries the host's invocation detail
// (e.g. toolbar vs. menu) and is usually ignored.
type RunHandler func(flag int32)

// ToggleHandler reports a command's current toggle state.
type ToggleHandler func() types.ToggleState

type commandBinding struct {
	name   string
	run    RunHandler
	toggle ToggleHandler
}

// CommandRegistry maps host-allocated command IDs to handlers. Both maps are
// mutated only from the main thread (registration and every host callback
// run there), so the single-writer discipline replaces locking.
type CommandRegistry struct {
	host     *Host
	ids      map[string]CommandID
	bindings map[CommandID]*commandBinding
}

// Register asks the host to allocate an ID for the named command. Calling it
// again with the same name returns the cached ID without another host round
// trip, so a hot-reloaded plugin re-registering its commands is harmless.
// Main thread only.
func (r *CommandRegistry) Register(name string) (CommandID, error) {
	if r.host.table.RegisterCommandName == nil {
		return 0, unavailable("plugin_register(command_id)")
	}
	if err := r.host.requireMain("plugin_register(command_id)"); err != nil {
		return 0, err
	}
	if id, ok := r.ids[name]; ok {
		return id, nil
	}
	t := r.host.meter.Begin()
	raw := r.host.table.RegisterCommandName(name)
	r.host.meter.End("plugin_register(command_id)", t)
	if raw <= 0 {
		return 0, fmt.Errorf("host refused to allocate an id for command %q", name)
	}
	id := CommandID(raw)
	r.ids[name] = id
	r.bindings[id] = &commandBinding{name: name}
	return id, nil
}

// Bind attaches handlers to a registered command. toggle may be nil for
// commands without an on/off state; they report NotTogglable. Binding an ID
// this registry did not allocate is refused so that stray IDs from other
// components sharing the callback surface cannot be captured by accident.
// Main thread only.
func (r *CommandRegistry) Bind(id CommandID, run RunHandler, toggle ToggleHandler) error {
	if err := r.host.requireMain("command bind"); err != nil {
		return err
	}
	b, ok := r.bindings[id]
	if !ok {
		return &types.NotRegisteredError{What: fmt.Sprintf("command id %d", id)}
	}
	b.run = run
	b.toggle = toggle
	return nil
}

// Unbind detaches the handlers from a command. The host keeps the ID
// allocated; only the dispatch target goes away. Main thread only.
func (r *CommandRegistry) Unbind(id CommandID) error {
	if err := r.host.requireMain("command unbind"); err != nil {
		return err
	}
	b, ok := r.bindings[id]
	if !ok {
		return &types.NotRegisteredError{What: fmt.Sprintf("command id %d", id)}
	}
	b.run = nil
	b.toggle = nil
	return nil
}

// Deregister withdraws a named command from the host entirely: its action
// disappears from the host's action list and the ID becomes invalid. Use
// this on plugin shutdown; for temporarily disabling a command, Unbind is
// enough. Main thread only.
func (r *CommandRegistry) Deregister(name string) error {
	if err := r.host.requireMain("plugin_register(-command_id)"); err != nil {
		return err
	}
	id, ok := r.ids[name]
	if !ok {
		return &types.NotRegisteredError{What: fmt.Sprintf("command %q", name)}
	}
	if r.host.table.UnregisterCommandName != nil {
		t := r.host.meter.Begin()
		r.host.table.UnregisterCommandName(name)
		r.host.meter.End("plugin_register(-command_id)", t)
	}
	delete(r.ids, name)
	delete(r.bindings, id)
	return nil
}

// OnCommand is the entry point behind the host's "execute command" callback;
// the interop layer forwards every invocation here on the main thread.
// Returns whether the command was handled. Unknown IDs are normal — the
// callback surface is shared with other extensions — so they are logged at
// debug level and declined, never treated as an error. A panicking handler
// is caught here: nothing may propagate across the native boundary.
func (r *CommandRegistry) OnCommand(id CommandID, flag int32) (handled bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.host.logger.Error("command handler panicked",
				zap.Uint32("command_id", uint32(id)),
				zap.Any("panic", rec))
			handled = true
		}
	}()
	b, ok := r.bindings[id]
	if !ok || b.run == nil {
		r.host.logger.Debug("ignoring unknown command id", zap.Uint32("command_id", uint32(id)))
		return false
	}
	b.run(flag)
	return true
}

// OnToggleCommandState is the entry point behind the host's "query toggle
// state" callback. Commands without a toggle handler, and IDs this registry
// does not own, report NotTogglable (-1 in the native convention).
func (r *CommandRegistry) OnToggleCommandState(id CommandID) (state int32) {
	defer func() {
		if rec := recover(); rec != nil {
			r.host.logger.Error("toggle handler panicked",
				zap.Uint32("command_id", uint32(id)),
				zap.Any("panic", rec))
			state = int32(types.NotTogglable)
		}
	}()
	b, ok := r.bindings[id]
	if !ok || b.toggle == nil {
		return int32(types.NotTogglable)
	}
	return int32(b.toggle())
}

// PerformCommand runs an action from the main section, native or registered.
// Main thread only.
func (h *Host) PerformCommand(id CommandID, proj types.Project) error {
	if h.table.MainOnCommandEx == nil {
		return unavailable("Main_OnCommandEx")
	}
	if err := h.requireMain("Main_OnCommandEx"); err != nil {
		return err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.MainOnCommandEx(int32(id), 0, proj.Raw())
	h.meter.End("Main_OnCommandEx", t)
	return nil
}

// LookupNamedCommand resolves a command name ("_SWS_ABOUT" style) to its ID
// in this session, 0 when unknown. Main thread only.
func (h *Host) LookupNamedCommand(name string) (CommandID, error) {
	if h.table.NamedCommandLookup == nil {
		return 0, unavailable("NamedCommandLookup")
	}
	if err := h.requireMain("NamedCommandLookup"); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	id := h.table.NamedCommandLookup(name)
	h.meter.End("NamedCommandLookup", t)
	if id < 0 {
		id = 0
	}
	return CommandID(id), nil
}

// ReverseLookupCommand resolves a command ID back to its registered name,
// "" for native actions that have none. Main thread only.
func (h *Host) ReverseLookupCommand(id CommandID) (string, error) {
	if h.table.ReverseNamedCommandLookup == nil {
		return "", unavailable("ReverseNamedCommandLookup")
	}
	if err := h.requireMain("ReverseNamedCommandLookup"); err != nil {
		return "", err
	}
	t := h.meter.Begin()
	name := h.table.ReverseNamedCommandLookup(int32(id))
	h.meter.End("ReverseNamedCommandLookup", t)
	return name, nil
}

// ToggleCommandState asks the host for a command's toggle state, including
// commands owned by other extensions. Main thread only.
func (h *Host) ToggleCommandState(id CommandID) (types.ToggleState, error) {
	if h.table.GetToggleCommandState == nil {
		return types.NotTogglable, unavailable("GetToggleCommandState")
	}
	if err := h.requireMain("GetToggleCommandState"); err != nil {
		return types.NotTogglable, err
	}
	t := h.meter.Begin()
	raw := h.table.GetToggleCommandState(int32(id))
	h.meter.End("GetToggleCommandState", t)
	if raw < 0 {
		return types.NotTogglable, nil
	}
	if raw == 0 {
		return types.ToggleOff, nil
	}
	return types.ToggleOn, nil
}
