// Package lowlevel declares the raw binding surface this module consumes.
//
// The host exports its API as a table of C function pointers. A separate
// loader (part of the plugin interop layer, not of this module) resolves the
// exports at plugin load time and fills a FunctionTable with Go-typed
// adapters, leaving slots nil for functions the running host version does not
// export. This package owns only the table's shape; it performs no symbol
// resolution and no calls of its own.
package lowlevel

// FunctionTable holds one slot per native entry point. Raw entity handles
// cross this boundary as uintptr; the hostbind package wraps them into typed
// pointers. A nil slot means the function is absent in the loaded host, and
// the wrapping layer reports it as unavailable instead of calling through.
type FunctionTable struct {
	// Projects.
	EnumProjects                func(idx int32, wantFileName bool) (proj uintptr, fileName string)
	GetCurrentProjectInLoadSave func() uintptr

	// Tracks.
	CountTracks                func(proj uintptr) int32
	GetTrack                   func(proj uintptr, trackIdx int32) uintptr
	GetMasterTrack             func(proj uintptr) uintptr
	InsertTrackAtIndex         func(idx int32, wantDefaults bool)
	DeleteTrack                func(track uintptr)
	GetMediaTrackInfoValue     func(track uintptr, param string) float64
	SetMediaTrackInfoValue     func(track uintptr, param string, value float64) bool
	GetSetMediaTrackInfoString func(track uintptr, param string, value string, set bool) (string, bool)
	GetTrackGUID               func(track uintptr) string
	GetTrackUIVolPan           func(track uintptr) (volume, pan float64, ok bool)
	SetTrackSelected           func(track uintptr, selected bool)
	SetOnlyTrackSelected       func(track uintptr)
	CountSelectedTracks        func(proj uintptr, wantMaster bool) int32
	GetSelectedTrack           func(proj uintptr, selIdx int32, wantMaster bool) uintptr

	// Pointer validation. Checks that ptr still denotes a live entity of the
	// named kind inside proj (proj is ignored when ptr is itself a project).
	ValidatePtr2 func(proj uintptr, ptr uintptr, kind string) bool

	// Console and UI.
	ShowConsoleMsg func(msg string)
	ClearConsole   func()
	ShowMessageBox func(msg, title string, kind int32) int32
	GetMainHwnd    func() uintptr

	// Actions and commands.
	MainOnCommandEx           func(command int32, flag int32, proj uintptr)
	NamedCommandLookup        func(name string) int32
	ReverseNamedCommandLookup func(command int32) string
	GetToggleCommandState     func(command int32) int32
	RegisterCommandName       func(name string) int32
	UnregisterCommandName     func(name string)
	PluginRegister            func(name string, infostruct uintptr) int32

	// Undo.
	UndoBeginBlock   func(proj uintptr)
	UndoEndBlock     func(proj uintptr, desc string, extraFlags int32)
	UndoCanUndo      func(proj uintptr) (desc string, ok bool)
	UndoCanRedo      func(proj uintptr) (desc string, ok bool)
	UndoDoUndo       func(proj uintptr) bool
	UndoDoRedo       func(proj uintptr) bool
	MarkProjectDirty func(proj uintptr)
	IsProjectDirty   func(proj uintptr) bool

	// Transport and tempo.
	MasterGetTempo    func() float64
	SetCurrentBPM     func(proj uintptr, bpm float64, wantUndo bool)
	MasterGetPlayRate func(proj uintptr) float64
	GetPlayState      func() int32
	OnPlayButton      func()
	OnStopButton      func()
	DB2Slider         func(db float64) float64
	Slider2DB         func(slider float64) float64

	// Control surface feedback (outgoing; incoming notifications arrive via
	// the interop layer's surface instance, see PluginContext).
	CSurfSetSurfaceVolume              func(track uintptr, volume float64, ignoreSurf uintptr)
	CSurfSetSurfacePan                 func(track uintptr, pan float64, ignoreSurf uintptr)
	CSurfSetSurfaceMute                func(track uintptr, mute bool, ignoreSurf uintptr)
	CSurfSetSurfaceSolo                func(track uintptr, solo bool, ignoreSurf uintptr)
	CSurfOnVolumeChange                func(track uintptr, volume float64, relative bool) float64
	CSurfOnPanChange                   func(track uintptr, pan float64, relative bool) float64
	TrackListUpdateAllExternalSurfaces func()

	// MIDI.
	GetMaxMidiInputs    func() int32
	GetMaxMidiOutputs   func() int32
	GetMIDIInputName    func(dev int32) (name string, present bool)
	GetMIDIOutputName   func(dev int32) (name string, present bool)
	GetMidiInput        func(idx int32) uintptr
	GetMidiOutput       func(idx int32) uintptr
	MidiInputGetReadBuf func(input uintptr) []byte
	MidiOutputSend      func(output uintptr, buf []byte)
	StuffMIDIMessage    func(mode int32, b1, b2, b3 byte)

	// Misc.
	GetAppVersion        func() string
	GenGUID              func() string
	IsInRealTimeAudio    func() bool
	AudioRegHardwareHook func(register bool, hook uintptr) int32
}

// PluginContext carries the host-provided plugin environment captured by the
// interop layer at load time.
type PluginContext struct {
	// MainHwnd is the host's main window handle.
	MainHwnd uintptr
	// Instance is the plugin module instance handle.
	Instance uintptr
	// ControlSurfaceInstance is the interop layer's static surface object.
	// Its virtual methods forward into the hostbind surface dispatcher; the
	// dispatcher hands this value to PluginRegister("csurfinst", ...) when a
	// listener is registered.
	ControlSurfaceInstance uintptr
}
