package hostbind

import (
	"github.com/hostbind/hostbind/types"
)

// Track info keys understood by the host's generic get/set entry points.
const (
	trackInfoVolume = "D_VOL"
	trackInfoPan    = "D_PAN"
	trackInfoMute   = "B_MUTE"
	trackInfoName   = "P_NAME"
)

// CountTracks returns the number of tracks in proj. Main thread only.
func (h *Host) CountTracks(proj types.Project) (int, error) {
	if h.table.CountTracks == nil {
		return 0, unavailable("CountTracks")
	}
	if err := h.requireMain("CountTracks"); err != nil {
		return 0, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	n := h.table.CountTracks(proj.Raw())
	h.meter.End("CountTracks", t)
	return int(n), nil
}

// Track returns the track at index in proj, or a zero pointer when the index
// is out of range. Main thread only. The returned pointer is live only for
// the current reentrancy epoch; revalidate before reusing it later.
func (h *Host) Track(proj types.Project, index int) (types.MediaTrack, error) {
	if h.table.GetTrack == nil {
		return types.MediaTrack{}, unavailable("GetTrack")
	}
	if err := h.requireMain("GetTrack"); err != nil {
		return types.MediaTrack{}, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return types.MediaTrack{}, err
	}
	t := h.meter.Begin()
	raw := h.table.GetTrack(proj.Raw(), int32(index))
	h.meter.End("GetTrack", t)
	return types.UncheckedMediaTrack(raw), nil
}

// MasterTrack returns the master track of proj. Main thread only.
func (h *Host) MasterTrack(proj types.Project) (types.MediaTrack, error) {
	if h.table.GetMasterTrack == nil {
		return types.MediaTrack{}, unavailable("GetMasterTrack")
	}
	if err := h.requireMain("GetMasterTrack"); err != nil {
		return types.MediaTrack{}, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return types.MediaTrack{}, err
	}
	t := h.meter.Begin()
	raw := h.table.GetMasterTrack(proj.Raw())
	h.meter.End("GetMasterTrack", t)
	return types.UncheckedMediaTrack(raw), nil
}

// InsertTrackAtIndex inserts a new track. Main thread only.
func (h *Host) InsertTrackAtIndex(index int, wantDefaults bool) error {
	if h.table.InsertTrackAtIndex == nil {
		return unavailable("InsertTrackAtIndex")
	}
	if err := h.requireMain("InsertTrackAtIndex"); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.InsertTrackAtIndex(int32(index), wantDefaults)
	h.meter.End("InsertTrackAtIndex", t)
	return nil
}

// DeleteTrack removes the track from its project. The pointer and every
// other pointer to the same track are invalid afterwards. Main thread only.
func (h *Host) DeleteTrack(track types.MediaTrack) error {
	if h.table.DeleteTrack == nil {
		return unavailable("DeleteTrack")
	}
	if err := h.requireMain("DeleteTrack"); err != nil {
		return err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.DeleteTrack(track.Raw())
	h.meter.End("DeleteTrack", t)
	return nil
}

// TrackName returns the track's name. Main thread only.
func (h *Host) TrackName(track types.MediaTrack) (string, error) {
	if h.table.GetSetMediaTrackInfoString == nil {
		return "", unavailable("GetSetMediaTrackInfo_String")
	}
	if err := h.requireMain("GetSetMediaTrackInfo_String"); err != nil {
		return "", err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return "", err
	}
	t := h.meter.Begin()
	name, _ := h.table.GetSetMediaTrackInfoString(track.Raw(), trackInfoName, "", false)
	h.meter.End("GetSetMediaTrackInfo_String", t)
	return name, nil
}

// SetTrackName renames the track. Main thread only.
func (h *Host) SetTrackName(track types.MediaTrack, name string) error {
	if h.table.GetSetMediaTrackInfoString == nil {
		return unavailable("GetSetMediaTrackInfo_String")
	}
	if err := h.requireMain("GetSetMediaTrackInfo_String"); err != nil {
		return err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.GetSetMediaTrackInfoString(track.Raw(), trackInfoName, name, true)
	h.meter.End("GetSetMediaTrackInfo_String", t)
	return nil
}

// TrackGUID returns the track's GUID string, which is stable across pointer
// invalidation and therefore the right value to persist. Main thread only.
func (h *Host) TrackGUID(track types.MediaTrack) (string, error) {
	if h.table.GetTrackGUID == nil {
		return "", unavailable("GetTrackGUID")
	}
	if err := h.requireMain("GetTrackGUID"); err != nil {
		return "", err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return "", err
	}
	t := h.meter.Begin()
	guid := h.table.GetTrackGUID(track.Raw())
	h.meter.End("GetTrackGUID", t)
	return guid, nil
}

func (h *Host) trackInfoValue(fn string, track types.MediaTrack, key string) (float64, error) {
	if h.table.GetMediaTrackInfoValue == nil {
		return 0, unavailable(fn)
	}
	if err := h.requireMain(fn); err != nil {
		return 0, err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	v := h.table.GetMediaTrackInfoValue(track.Raw(), key)
	h.meter.End(fn, t)
	return v, nil
}

func (h *Host) setTrackInfoValue(fn string, track types.MediaTrack, key string, value float64) error {
	if h.table.SetMediaTrackInfoValue == nil {
		return unavailable(fn)
	}
	if err := h.requireMain(fn); err != nil {
		return err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.SetMediaTrackInfoValue(track.Raw(), key, value)
	h.meter.End(fn, t)
	return nil
}

// TrackVolume returns the track's volume as a linear gain factor (1.0 =
// unity). Main thread only.
func (h *Host) TrackVolume(track types.MediaTrack) (float64, error) {
	return h.trackInfoValue("GetMediaTrackInfo_Value", track, trackInfoVolume)
}

// SetTrackVolume sets the track's volume as a linear gain factor. Main
// thread only.
func (h *Host) SetTrackVolume(track types.MediaTrack, volume float64) error {
	return h.setTrackInfoValue("SetMediaTrackInfo_Value", track, trackInfoVolume, volume)
}

// TrackPan returns the track's pan position in -1..1. Main thread only.
func (h *Host) TrackPan(track types.MediaTrack) (float64, error) {
	return h.trackInfoValue("GetMediaTrackInfo_Value", track, trackInfoPan)
}

// SetTrackPan sets the track's pan position in -1..1. Main thread only.
func (h *Host) SetTrackPan(track types.MediaTrack, pan float64) error {
	return h.setTrackInfoValue("SetMediaTrackInfo_Value", track, trackInfoPan, pan)
}

// TrackMuted reports whether the track is muted. Main thread only.
func (h *Host) TrackMuted(track types.MediaTrack) (bool, error) {
	v, err := h.trackInfoValue("GetMediaTrackInfo_Value", track, trackInfoMute)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// SetTrackMuted mutes or unmutes the track. Main thread only.
func (h *Host) SetTrackMuted(track types.MediaTrack, muted bool) error {
	v := 0.0
	if muted {
		v = 1.0
	}
	return h.setTrackInfoValue("SetMediaTrackInfo_Value", track, trackInfoMute, v)
}

// TrackVolPan returns the volume and pan currently shown in the track's UI.
// Main thread only.
func (h *Host) TrackVolPan(track types.MediaTrack) (volume, pan float64, err error) {
	if h.table.GetTrackUIVolPan == nil {
		return 0, 0, unavailable("GetTrackUIVolPan")
	}
	if err := h.requireMain("GetTrackUIVolPan"); err != nil {
		return 0, 0, err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return 0, 0, err
	}
	t := h.meter.Begin()
	volume, pan, ok := h.table.GetTrackUIVolPan(track.Raw())
	h.meter.End("GetTrackUIVolPan", t)
	if !ok {
		return 0, 0, &types.StalePointerError{Kind: track.Kind()}
	}
	return volume, pan, nil
}

// SetTrackSelected changes the track's selection state without touching the
// rest of the selection. Main thread only.
func (h *Host) SetTrackSelected(track types.MediaTrack, selected bool) error {
	if h.table.SetTrackSelected == nil {
		return unavailable("SetTrackSelected")
	}
	if err := h.requireMain("SetTrackSelected"); err != nil {
		return err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.SetTrackSelected(track.Raw(), selected)
	h.meter.End("SetTrackSelected", t)
	return nil
}

// SetOnlyTrackSelected makes track the sole selected track; a zero track
// clears the selection. Main thread only.
func (h *Host) SetOnlyTrackSelected(track types.MediaTrack) error {
	if h.table.SetOnlyTrackSelected == nil {
		return unavailable("SetOnlyTrackSelected")
	}
	if err := h.requireMain("SetOnlyTrackSelected"); err != nil {
		return err
	}
	if !track.IsZero() {
		if err := h.validatePointer(types.CurrentProject(), track); err != nil {
			return err
		}
	}
	t := h.meter.Begin()
	h.table.SetOnlyTrackSelected(track.Raw())
	h.meter.End("SetOnlyTrackSelected", t)
	return nil
}

// CountSelectedTracks counts the selected tracks in proj. Main thread only.
func (h *Host) CountSelectedTracks(proj types.Project, wantMaster bool) (int, error) {
	if h.table.CountSelectedTracks == nil {
		return 0, unavailable("CountSelectedTracks2")
	}
	if err := h.requireMain("CountSelectedTracks2"); err != nil {
		return 0, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	n := h.table.CountSelectedTracks(proj.Raw(), wantMaster)
	h.meter.End("CountSelectedTracks2", t)
	return int(n), nil
}

// SelectedTrack returns the selIndex-th selected track in proj, or a zero
// pointer when there is none. Main thread only.
func (h *Host) SelectedTrack(proj types.Project, selIndex int, wantMaster bool) (types.MediaTrack, error) {
	if h.table.GetSelectedTrack == nil {
		return types.MediaTrack{}, unavailable("GetSelectedTrack2")
	}
	if err := h.requireMain("GetSelectedTrack2"); err != nil {
		return types.MediaTrack{}, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return types.MediaTrack{}, err
	}
	t := h.meter.Begin()
	raw := h.table.GetSelectedTrack(proj.Raw(), int32(selIndex), wantMaster)
	h.meter.End("GetSelectedTrack2", t)
	return types.UncheckedMediaTrack(raw), nil
}

// SurfaceSetVolume pushes a volume value to all registered control surfaces
// so hardware faders follow. Main thread only.
func (h *Host) SurfaceSetVolume(track types.MediaTrack, volume float64) error {
	if h.table.CSurfSetSurfaceVolume == nil {
		return unavailable("CSurf_SetSurfaceVolume")
	}
	if err := h.requireMain("CSurf_SetSurfaceVolume"); err != nil {
		return err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.CSurfSetSurfaceVolume(track.Raw(), volume, h.ctx.ControlSurfaceInstance)
	h.meter.End("CSurf_SetSurfaceVolume", t)
	return nil
}

// SurfaceSetPan pushes a pan value to all registered control surfaces.
// Main thread only.
func (h *Host) SurfaceSetPan(track types.MediaTrack, pan float64) error {
	if h.table.CSurfSetSurfacePan == nil {
		return unavailable("CSurf_SetSurfacePan")
	}
	if err := h.requireMain("CSurf_SetSurfacePan"); err != nil {
		return err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.CSurfSetSurfacePan(track.Raw(), pan, h.ctx.ControlSurfaceInstance)
	h.meter.End("CSurf_SetSurfacePan", t)
	return nil
}

// SurfaceSetMute pushes a mute state to all registered control surfaces.
// Main thread only.
func (h *Host) SurfaceSetMute(track types.MediaTrack, mute bool) error {
	if h.table.CSurfSetSurfaceMute == nil {
		return unavailable("CSurf_SetSurfaceMute")
	}
	if err := h.requireMain("CSurf_SetSurfaceMute"); err != nil {
		return err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.CSurfSetSurfaceMute(track.Raw(), mute, h.ctx.ControlSurfaceInstance)
	h.meter.End("CSurf_SetSurfaceMute", t)
	return nil
}

// SurfaceSetSolo pushes a solo state to all registered control surfaces.
// Main thread only.
func (h *Host) SurfaceSetSolo(track types.MediaTrack, solo bool) error {
	if h.table.CSurfSetSurfaceSolo == nil {
		return unavailable("CSurf_SetSurfaceSolo")
	}
	if err := h.requireMain("CSurf_SetSurfaceSolo"); err != nil {
		return err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.CSurfSetSurfaceSolo(track.Raw(), solo, h.ctx.ControlSurfaceInstance)
	h.meter.End("CSurf_SetSurfaceSolo", t)
	return nil
}

// SurfaceOnVolumeChange feeds a surface-originated volume move into the
// host, which applies automation modes and echoes the result back to other
// surfaces. Returns the volume the host settled on. Main thread only.
func (h *Host) SurfaceOnVolumeChange(track types.MediaTrack, volume float64, relative bool) (float64, error) {
	if h.table.CSurfOnVolumeChange == nil {
		return 0, unavailable("CSurf_OnVolumeChangeEx")
	}
	if err := h.requireMain("CSurf_OnVolumeChangeEx"); err != nil {
		return 0, err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	applied := h.table.CSurfOnVolumeChange(track.Raw(), volume, relative)
	h.meter.End("CSurf_OnVolumeChangeEx", t)
	return applied, nil
}

// SurfaceOnPanChange feeds a surface-originated pan move into the host.
// Main thread only.
func (h *Host) SurfaceOnPanChange(track types.MediaTrack, pan float64, relative bool) (float64, error) {
	if h.table.CSurfOnPanChange == nil {
		return 0, unavailable("CSurf_OnPanChangeEx")
	}
	if err := h.requireMain("CSurf_OnPanChangeEx"); err != nil {
		return 0, err
	}
	if err := h.validatePointer(types.CurrentProject(), track); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	applied := h.table.CSurfOnPanChange(track.Raw(), pan, relative)
	h.meter.End("CSurf_OnPanChangeEx", t)
	return applied, nil
}

// UpdateAllExternalSurfaces asks the host to re-push the full track list
// state to every registered surface. Main thread only.
func (h *Host) UpdateAllExternalSurfaces() error {
	if h.table.TrackListUpdateAllExternalSurfaces == nil {
		return unavailable("TrackList_UpdateAllExternalSurfaces")
	}
	if err := h.requireMain("TrackList_UpdateAllExternalSurfaces"); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.TrackListUpdateAllExternalSurfaces()
	h.meter.End("TrackList_UpdateAllExternalSurfaces", t)
	return nil
}
