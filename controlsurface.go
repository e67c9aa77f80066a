package hostbind

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hostbind/hostbind/types"
)

// ControlSurface is the capability set of host-initiated notifications. The
// host enumerates these; implementers embed SurfaceBase and override only
// the hooks they care about.
//
// All notifications arrive synchronously on the host's main thread. Track
// pointers passed to a notification are live for that invocation only.
type ControlSurface interface {
	// SetTrackListChange fires after tracks were added, removed or
	// reordered. Every previously obtained track pointer must be
	// revalidated afterwards.
	SetTrackListChange()
	SetSurfaceVolume(track types.MediaTrack, volume float64)
	SetSurfacePan(track types.MediaTrack, pan float64)
	SetSurfaceMute(track types.MediaTrack, mute bool)
	SetSurfaceSolo(track types.MediaTrack, solo bool)
	SetSurfaceSelected(track types.MediaTrack, selected bool)
	SetSurfaceRecArm(track types.MediaTrack, armed bool)
	SetPlayState(state PlayState)
	SetRepeatState(repeat bool)
	SetTrackTitle(track types.MediaTrack, title string)
	OnTrackSelection(track types.MediaTrack)
	SetBPMAndPlayRate(bpm, playRate float64)
	SetInputMonitor(track types.MediaTrack, mode int)
	SetFocusedFX(track types.MediaTrack, fxIndex int)
}

// SurfaceBase is a no-op implementation of every ControlSurface hook, meant
// for embedding.
type SurfaceBase struct{}

var _ ControlSurface = SurfaceBase{}

func (SurfaceBase) SetTrackListChange()                       {}
func (SurfaceBase) SetSurfaceVolume(types.MediaTrack, float64) {}
func (SurfaceBase) SetSurfacePan(types.MediaTrack, float64)    {}
func (SurfaceBase) SetSurfaceMute(types.MediaTrack, bool)      {}
func (SurfaceBase) SetSurfaceSolo(types.MediaTrack, bool)      {}
func (SurfaceBase) SetSurfaceSelected(types.MediaTrack, bool)  {}
func (SurfaceBase) SetSurfaceRecArm(types.MediaTrack, bool)    {}
func (SurfaceBase) SetPlayState(PlayState)                     {}
func (SurfaceBase) SetRepeatState(bool)                        {}
func (SurfaceBase) SetTrackTitle(types.MediaTrack, string)     {}
func (SurfaceBase) OnTrackSelection(types.MediaTrack)          {}
func (SurfaceBase) SetBPMAndPlayRate(float64, float64)         {}
func (SurfaceBase) SetInputMonitor(types.MediaTrack, int)      {}
func (SurfaceBase) SetFocusedFX(types.MediaTrack, int)         {}

// SurfaceDispatcher routes the host's control surface notifications to one
// registered listener, translating raw arguments into typed ones on the way.
// The listener slot is written only from the main thread and read only on
// the main thread (every notification runs there), so it needs no lock.
type SurfaceDispatcher struct {
	host     *Host
	listener ControlSurface
}

const surfaceRegName = "csurfinst"

// Register stores the listener and announces the interop layer's surface
// instance to the host. While a listener is active a second Register is
// rejected: replacing it silently would lose notifications for the first
// owner without either side noticing. The announcement is mandatory — a host
// without plugin_register, or an interop layer that provided no surface
// instance, cannot deliver notifications, so Register fails rather than
// leaving a listener that can never be called. Main thread only.
func (d *SurfaceDispatcher) Register(listener ControlSurface) error {
	if listener == nil {
		return fmt.Errorf("control surface listener must not be nil")
	}
	if d.host.table.PluginRegister == nil {
		return unavailable("plugin_register(csurfinst)")
	}
	if d.host.ctx.ControlSurfaceInstance == 0 {
		return fmt.Errorf("plugin context carries no control surface instance")
	}
	if err := d.host.requireMain("plugin_register(csurfinst)"); err != nil {
		return err
	}
	if d.listener != nil {
		return &types.AlreadyRegisteredError{What: "control surface listener"}
	}
	t := d.host.meter.Begin()
	d.host.table.PluginRegister(surfaceRegName, d.host.ctx.ControlSurfaceInstance)
	d.host.meter.End("plugin_register(csurfinst)", t)
	d.listener = listener
	return nil
}

// Unregister withdraws the surface instance from the host and drops the
// listener. Main thread only.
func (d *SurfaceDispatcher) Unregister() error {
	if err := d.host.requireMain("plugin_register(-csurfinst)"); err != nil {
		return err
	}
	if d.listener == nil {
		return &types.NotRegisteredError{What: "control surface listener"}
	}
	// Register guarantees the slot and the surface instance exist.
	t := d.host.meter.Begin()
	d.host.table.PluginRegister("-"+surfaceRegName, d.host.ctx.ControlSurfaceInstance)
	d.host.meter.End("plugin_register(-csurfinst)", t)
	d.listener = nil
	return nil
}

// Registered reports whether a listener is active.
func (d *SurfaceDispatcher) Registered() bool { return d.listener != nil }

// deliver invokes one notification hook behind a recover barrier. The host
// is in the middle of walking its surface list when these run; a panic
// escaping here would unwind across the native boundary and kill the whole
// process, so failures are logged to the error sink and swallowed.
func (d *SurfaceDispatcher) deliver(name string, fn func(ControlSurface)) {
	l := d.listener
	if l == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			d.host.logger.Error("control surface listener panicked",
				zap.String("notification", name),
				zap.Any("panic", rec))
		}
	}()
	fn(l)
}

// The Raw* methods below are the fixed entry points the interop layer's
// surface instance forwards into, one per native virtual method. Their
// argument shapes are dictated by the host.

func (d *SurfaceDispatcher) RawSetTrackListChange() {
	d.deliver("SetTrackListChange", func(l ControlSurface) {
		l.SetTrackListChange()
	})
}

func (d *SurfaceDispatcher) RawSetSurfaceVolume(track uintptr, volume float64) {
	d.deliver("SetSurfaceVolume", func(l ControlSurface) {
		l.SetSurfaceVolume(types.UncheckedMediaTrack(track), volume)
	})
}

func (d *SurfaceDispatcher) RawSetSurfacePan(track uintptr, pan float64) {
	d.deliver("SetSurfacePan", func(l ControlSurface) {
		l.SetSurfacePan(types.UncheckedMediaTrack(track), pan)
	})
}

func (d *SurfaceDispatcher) RawSetSurfaceMute(track uintptr, mute bool) {
	d.deliver("SetSurfaceMute", func(l ControlSurface) {
		l.SetSurfaceMute(types.UncheckedMediaTrack(track), mute)
	})
}

func (d *SurfaceDispatcher) RawSetSurfaceSolo(track uintptr, solo bool) {
	d.deliver("SetSurfaceSolo", func(l ControlSurface) {
		l.SetSurfaceSolo(types.UncheckedMediaTrack(track), solo)
	})
}

func (d *SurfaceDispatcher) RawSetSurfaceSelected(track uintptr, selected bool) {
	d.deliver("SetSurfaceSelected", func(l ControlSurface) {
		l.SetSurfaceSelected(types.UncheckedMediaTrack(track), selected)
	})
}

func (d *SurfaceDispatcher) RawSetSurfaceRecArm(track uintptr, armed bool) {
	d.deliver("SetSurfaceRecArm", func(l ControlSurface) {
		l.SetSurfaceRecArm(types.UncheckedMediaTrack(track), armed)
	})
}

func (d *SurfaceDispatcher) RawSetPlayState(playing, paused, recording bool) {
	d.deliver("SetPlayState", func(l ControlSurface) {
		l.SetPlayState(PlayState{Playing: playing, Paused: paused, Recording: recording})
	})
}

func (d *SurfaceDispatcher) RawSetRepeatState(repeat bool) {
	d.deliver("SetRepeatState", func(l ControlSurface) {
		l.SetRepeatState(repeat)
	})
}

func (d *SurfaceDispatcher) RawSetTrackTitle(track uintptr, title string) {
	d.deliver("SetTrackTitle", func(l ControlSurface) {
		l.SetTrackTitle(types.UncheckedMediaTrack(track), title)
	})
}

func (d *SurfaceDispatcher) RawOnTrackSelection(track uintptr) {
	d.deliver("OnTrackSelection", func(l ControlSurface) {
		l.OnTrackSelection(types.UncheckedMediaTrack(track))
	})
}

func (d *SurfaceDispatcher) RawSetBPMAndPlayRate(bpm, playRate float64) {
	d.deliver("SetBPMAndPlayRate", func(l ControlSurface) {
		l.SetBPMAndPlayRate(bpm, playRate)
	})
}

func (d *SurfaceDispatcher) RawSetInputMonitor(track uintptr, mode int32) {
	d.deliver("SetInputMonitor", func(l ControlSurface) {
		l.SetInputMonitor(types.UncheckedMediaTrack(track), int(mode))
	})
}

func (d *SurfaceDispatcher) RawSetFocusedFX(track uintptr, fxIndex int32) {
	d.deliver("SetFocusedFX", func(l ControlSurface) {
		l.SetFocusedFX(types.UncheckedMediaTrack(track), int(fxIndex))
	})
}
