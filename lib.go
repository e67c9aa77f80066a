// Package hostbind is the typed access layer between a raw function-table
// binding to a DAW host's native API and application code.
//
// The native API is a bag of untyped handles and function pointers with
// strict, undocumented rules about which thread may call what and how long a
// returned handle stays valid. This package turns those rules into a
// contract: every wrapped call runs through a thread-affinity guard, raw
// handles come back as typed pointers that must be revalidated across host
// reentrancy boundaries, and host-initiated callbacks (control surface
// notifications, command dispatch) are translated and delivered behind a
// recover barrier so that no failure ever crosses back into the host's call
// stack.
//
// The function table itself is resolved by the plugin interop layer before
// Initialize runs; see the lowlevel package for its shape. Initialize must be
// called on the host's main thread, exactly once per process.
package hostbind

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hostbind/hostbind/internal/meter"
	"github.com/hostbind/hostbind/lowlevel"
	"github.com/hostbind/hostbind/types"
)

// Host is the process-wide handle to the native API. All host interaction is
// serialized through its methods, which gives one place to apply the
// affinity guard and the optional call meter uniformly.
type Host struct {
	table      *lowlevel.FunctionTable
	ctx        lowlevel.PluginContext
	mainThread lowlevel.ThreadID
	logger     *zap.Logger
	meter      *meter.Recorder

	surface  *SurfaceDispatcher
	commands *CommandRegistry
}

var (
	instance   *Host
	instanceMu sync.Mutex
)

// Option configures the Host during Initialize.
type Option func(*Host)

// WithLogger sets the logger used as the error sink for callback-boundary
// failures and for debug output. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Initialize creates the process-wide host handle. The calling thread is
// recorded as the host's main thread; every main-thread-only call is checked
// against it, so this must run on the thread the host drives its control
// logic from (the interop layer keeps that thread OS-locked). A second call
// fails: the native API is a single process-wide resource and the handle is
// never torn down and re-created.
func Initialize(table *lowlevel.FunctionTable, ctx lowlevel.PluginContext, opts ...Option) (*Host, error) {
	if table == nil {
		return nil, fmt.Errorf("function table must not be nil")
	}
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance != nil {
		return nil, &types.AlreadyRegisteredError{What: "host handle"}
	}
	h := &Host{
		table:      table,
		ctx:        ctx,
		mainThread: lowlevel.CurrentThreadID(),
		logger:     zap.NewNop(),
		meter:      meter.New(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.surface = &SurfaceDispatcher{host: h}
	h.commands = &CommandRegistry{
		host:     h,
		ids:      make(map[string]CommandID),
		bindings: make(map[CommandID]*commandBinding),
	}
	instance = h
	return h, nil
}

// Current returns the host handle created by Initialize.
func Current() (*Host, error) {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == nil {
		return nil, &types.NotInitializedError{}
	}
	return instance, nil
}

// Surface returns the control surface dispatcher.
func (h *Host) Surface() *SurfaceDispatcher { return h.surface }

// Commands returns the command registry.
func (h *Host) Commands() *CommandRegistry { return h.commands }

// MeterSnapshot returns the call meter's accumulated state. Without the
// hostmeter build tag the meter is compiled out and the snapshot is empty.
func (h *Host) MeterSnapshot() types.MeterSnapshot { return h.meter.Snapshot() }

// requireMain enforces the affinity contract for a main-thread-only
// function: a pure thread-id comparison, no locks, no allocation on the
// happy path. On mismatch the native call is never issued; forwarding it
// would risk host memory corruption rather than a recoverable error.
func (h *Host) requireMain(fn string) error {
	if lowlevel.CurrentThreadID() != h.mainThread {
		return &types.WrongThreadError{Function: fn, Required: types.MainThreadOnly}
	}
	return nil
}

func unavailable(fn string) error {
	return &types.FunctionUnavailableError{Function: fn}
}

// validatePointer re-checks that p still denotes a live entity of its kind.
// The zero Project means "current project" and needs no validation. Hosts
// too old to export a validation function get a documented pass-through;
// the caller then carries the liveness risk the native API always had.
func (h *Host) validatePointer(proj types.Project, p types.Pointer) error {
	if p.Kind() == types.KindProject && p.Raw() == 0 {
		return nil
	}
	if h.table.ValidatePtr2 == nil {
		return nil
	}
	t := h.meter.Begin()
	ok := h.table.ValidatePtr2(proj.Raw(), p.Raw(), string(p.Kind()))
	h.meter.End("ValidatePtr2", t)
	if !ok {
		return &types.StalePointerError{Kind: p.Kind()}
	}
	return nil
}

// ValidatePointer is the explicit revalidate operation: it re-asks the host
// whether p still denotes a live entity of the expected kind in proj (proj
// is ignored when p is itself a project). Call it before reusing a typed
// pointer obtained in an earlier reentrancy epoch, e.g. before the current
// callback invocation or across an undo boundary. Main thread only.
func (h *Host) ValidatePointer(proj types.Project, p types.Pointer) (bool, error) {
	if h.table.ValidatePtr2 == nil {
		return false, unavailable("ValidatePtr2")
	}
	if err := h.requireMain("ValidatePtr2"); err != nil {
		return false, err
	}
	t := h.meter.Begin()
	ok := h.table.ValidatePtr2(proj.Raw(), p.Raw(), string(p.Kind()))
	h.meter.End("ValidatePtr2", t)
	return ok, nil
}

// ShowConsoleMsg prints to the host's console. Safe from any thread. Send
// "\n" for a newline and "" to clear the console.
func (h *Host) ShowConsoleMsg(msg string) error {
	if h.table.ShowConsoleMsg == nil {
		return unavailable("ShowConsoleMsg")
	}
	t := h.meter.Begin()
	h.table.ShowConsoleMsg(msg)
	h.meter.End("ShowConsoleMsg", t)
	return nil
}

// ClearConsole clears the host console. Main thread only.
func (h *Host) ClearConsole() error {
	if h.table.ClearConsole == nil {
		return unavailable("ClearConsole")
	}
	if err := h.requireMain("ClearConsole"); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.ClearConsole()
	h.meter.End("ClearConsole", t)
	return nil
}

// AppVersion reports the host's version string. Safe from any thread.
func (h *Host) AppVersion() (string, error) {
	if h.table.GetAppVersion == nil {
		return "", unavailable("GetAppVersion")
	}
	t := h.meter.Begin()
	v := h.table.GetAppVersion()
	h.meter.End("GetAppVersion", t)
	return v, nil
}

// GenGUID asks the host for a fresh GUID string. Main thread only.
func (h *Host) GenGUID() (string, error) {
	if h.table.GenGUID == nil {
		return "", unavailable("GenGUID")
	}
	if err := h.requireMain("GenGUID"); err != nil {
		return "", err
	}
	t := h.meter.Begin()
	g := h.table.GenGUID()
	h.meter.End("GenGUID", t)
	return g, nil
}

// IsInRealTimeAudio reports whether the current thread is the host's
// real-time audio thread (or an anticipative processing worker). Safe from
// any thread; useful for asserting audio-context preconditions.
func (h *Host) IsInRealTimeAudio() (bool, error) {
	if h.table.IsInRealTimeAudio == nil {
		return false, unavailable("IsInRealTimeAudio")
	}
	t := h.meter.Begin()
	in := h.table.IsInRealTimeAudio()
	h.meter.End("IsInRealTimeAudio", t)
	return in, nil
}

// RegisterAudioHook installs (or, with register false, removes) a native
// audio hardware hook and returns the host's resulting hook count, 0 when
// the host refused the hook. hook is the raw address of an interop-layer
// hook record; like the Unchecked pointer constructors this is an escape
// hatch for the shim, not for application code. Main thread only.
func (h *Host) RegisterAudioHook(register bool, hook uintptr) (int, error) {
	if h.table.AudioRegHardwareHook == nil {
		return 0, unavailable("Audio_RegHardwareHook")
	}
	if err := h.requireMain("Audio_RegHardwareHook"); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	n := h.table.AudioRegHardwareHook(register, hook)
	h.meter.End("Audio_RegHardwareHook", t)
	return int(n), nil
}

// MainWindow returns the host's main window handle. Main thread only.
func (h *Host) MainWindow() (uintptr, error) {
	if h.table.GetMainHwnd == nil {
		return 0, unavailable("GetMainHwnd")
	}
	if err := h.requireMain("GetMainHwnd"); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	hwnd := h.table.GetMainHwnd()
	h.meter.End("GetMainHwnd", t)
	return hwnd, nil
}

// MessageBoxKind selects the button set of a host message box.
type MessageBoxKind int32

const (
	MessageBoxOK MessageBoxKind = iota
	MessageBoxOKCancel
	MessageBoxAbortRetryIgnore
	MessageBoxYesNoCancel
	MessageBoxYesNo
	MessageBoxRetryCancel
)

// ShowMessageBox opens a modal host message box and returns the pressed
// button's host code. Main thread only.
func (h *Host) ShowMessageBox(msg, title string, kind MessageBoxKind) (int32, error) {
	if h.table.ShowMessageBox == nil {
		return 0, unavailable("ShowMessageBox")
	}
	if err := h.requireMain("ShowMessageBox"); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	ret := h.table.ShowMessageBox(msg, title, int32(kind))
	h.meter.End("ShowMessageBox", t)
	return ret, nil
}
