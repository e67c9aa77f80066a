package hostbind

import (
	"github.com/hostbind/hostbind/types"
)

// ProjectInfo is one open project tab and, when requested, its file path.
type ProjectInfo struct {
	Project  types.Project
	FilePath string
}

// EnumProject returns the project at the given tab index, -1 for the current
// project. A zero project pointer means no project at that index. Main
// thread only.
func (h *Host) EnumProject(tabIndex int, wantFileName bool) (ProjectInfo, error) {
	if h.table.EnumProjects == nil {
		return ProjectInfo{}, unavailable("EnumProjects")
	}
	if err := h.requireMain("EnumProjects"); err != nil {
		return ProjectInfo{}, err
	}
	t := h.meter.Begin()
	raw, file := h.table.EnumProjects(int32(tabIndex), wantFileName)
	h.meter.End("EnumProjects", t)
	return ProjectInfo{Project: types.UncheckedProject(raw), FilePath: file}, nil
}

// CurrentProjectInLoadSave returns the project currently being loaded or
// saved, a zero pointer outside of load/save. Main thread only.
func (h *Host) CurrentProjectInLoadSave() (types.Project, error) {
	if h.table.GetCurrentProjectInLoadSave == nil {
		return types.Project{}, unavailable("GetCurrentProjectInLoadSave")
	}
	if err := h.requireMain("GetCurrentProjectInLoadSave"); err != nil {
		return types.Project{}, err
	}
	t := h.meter.Begin()
	raw := h.table.GetCurrentProjectInLoadSave()
	h.meter.End("GetCurrentProjectInLoadSave", t)
	return types.UncheckedProject(raw), nil
}

// UndoBeginBlock opens an undo block in proj. Every block must be closed
// with UndoEndBlock; prefer UndoBlock which pairs them. Main thread only.
func (h *Host) UndoBeginBlock(proj types.Project) error {
	if h.table.UndoBeginBlock == nil {
		return unavailable("Undo_BeginBlock2")
	}
	if err := h.requireMain("Undo_BeginBlock2"); err != nil {
		return err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.UndoBeginBlock(proj.Raw())
	h.meter.End("Undo_BeginBlock2", t)
	return nil
}

// UndoEndBlock closes the innermost undo block, labeling the undo point.
// Main thread only.
func (h *Host) UndoEndBlock(proj types.Project, description string) error {
	if h.table.UndoEndBlock == nil {
		return unavailable("Undo_EndBlock2")
	}
	if err := h.requireMain("Undo_EndBlock2"); err != nil {
		return err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.UndoEndBlock(proj.Raw(), description, -1)
	h.meter.End("Undo_EndBlock2", t)
	return nil
}

// UndoBlock runs fn inside an undo block. The block is closed even when fn
// fails, so a half-applied mutation still lands in a single undo point.
// Main thread only.
func (h *Host) UndoBlock(proj types.Project, description string, fn func() error) error {
	if err := h.UndoBeginBlock(proj); err != nil {
		return err
	}
	fnErr := fn()
	if err := h.UndoEndBlock(proj, description); err != nil {
		return err
	}
	return fnErr
}

// UndoCanUndo returns the label of the next undo point, if any. Main thread
// only.
func (h *Host) UndoCanUndo(proj types.Project) (string, bool, error) {
	if h.table.UndoCanUndo == nil {
		return "", false, unavailable("Undo_CanUndo2")
	}
	if err := h.requireMain("Undo_CanUndo2"); err != nil {
		return "", false, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return "", false, err
	}
	t := h.meter.Begin()
	desc, ok := h.table.UndoCanUndo(proj.Raw())
	h.meter.End("Undo_CanUndo2", t)
	return desc, ok, nil
}

// UndoCanRedo returns the label of the next redo point, if any. Main thread
// only.
func (h *Host) UndoCanRedo(proj types.Project) (string, bool, error) {
	if h.table.UndoCanRedo == nil {
		return "", false, unavailable("Undo_CanRedo2")
	}
	if err := h.requireMain("Undo_CanRedo2"); err != nil {
		return "", false, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return "", false, err
	}
	t := h.meter.Begin()
	desc, ok := h.table.UndoCanRedo(proj.Raw())
	h.meter.End("Undo_CanRedo2", t)
	return desc, ok, nil
}

// UndoDoUndo performs one undo step. Undoing is a reentrancy boundary:
// every typed pointer obtained before it must be revalidated afterwards.
// Main thread only.
func (h *Host) UndoDoUndo(proj types.Project) (bool, error) {
	if h.table.UndoDoUndo == nil {
		return false, unavailable("Undo_DoUndo2")
	}
	if err := h.requireMain("Undo_DoUndo2"); err != nil {
		return false, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return false, err
	}
	t := h.meter.Begin()
	ok := h.table.UndoDoUndo(proj.Raw())
	h.meter.End("Undo_DoUndo2", t)
	return ok, nil
}

// UndoDoRedo performs one redo step. Same reentrancy caveat as UndoDoUndo.
// Main thread only.
func (h *Host) UndoDoRedo(proj types.Project) (bool, error) {
	if h.table.UndoDoRedo == nil {
		return false, unavailable("Undo_DoRedo2")
	}
	if err := h.requireMain("Undo_DoRedo2"); err != nil {
		return false, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return false, err
	}
	t := h.meter.Begin()
	ok := h.table.UndoDoRedo(proj.Raw())
	h.meter.End("Undo_DoRedo2", t)
	return ok, nil
}

// MarkProjectDirty flags proj as having unsaved changes. Main thread only.
func (h *Host) MarkProjectDirty(proj types.Project) error {
	if h.table.MarkProjectDirty == nil {
		return unavailable("MarkProjectDirty")
	}
	if err := h.requireMain("MarkProjectDirty"); err != nil {
		return err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.MarkProjectDirty(proj.Raw())
	h.meter.End("MarkProjectDirty", t)
	return nil
}

// IsProjectDirty reports whether proj has unsaved changes. Main thread only.
func (h *Host) IsProjectDirty(proj types.Project) (bool, error) {
	if h.table.IsProjectDirty == nil {
		return false, unavailable("IsProjectDirty")
	}
	if err := h.requireMain("IsProjectDirty"); err != nil {
		return false, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return false, err
	}
	t := h.meter.Begin()
	dirty := h.table.IsProjectDirty(proj.Raw())
	h.meter.End("IsProjectDirty", t)
	return dirty, nil
}

// MasterTempo returns the current project's tempo in BPM. Main thread only.
func (h *Host) MasterTempo() (float64, error) {
	if h.table.MasterGetTempo == nil {
		return 0, unavailable("Master_GetTempo")
	}
	if err := h.requireMain("Master_GetTempo"); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	bpm := h.table.MasterGetTempo()
	h.meter.End("Master_GetTempo", t)
	return bpm, nil
}

// SetCurrentBPM changes proj's tempo, optionally creating an undo point.
// Main thread only.
func (h *Host) SetCurrentBPM(proj types.Project, bpm float64, wantUndo bool) error {
	if h.table.SetCurrentBPM == nil {
		return unavailable("SetCurrentBPM")
	}
	if err := h.requireMain("SetCurrentBPM"); err != nil {
		return err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.SetCurrentBPM(proj.Raw(), bpm, wantUndo)
	h.meter.End("SetCurrentBPM", t)
	return nil
}

// MasterPlayRate returns proj's master play rate factor. Main thread only.
func (h *Host) MasterPlayRate(proj types.Project) (float64, error) {
	if h.table.MasterGetPlayRate == nil {
		return 0, unavailable("Master_GetPlayRate")
	}
	if err := h.requireMain("Master_GetPlayRate"); err != nil {
		return 0, err
	}
	if err := h.validatePointer(proj, proj); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	rate := h.table.MasterGetPlayRate(proj.Raw())
	h.meter.End("Master_GetPlayRate", t)
	return rate, nil
}

// PlayState is the transport state reported by the host.
type PlayState struct {
	Playing   bool
	Paused    bool
	Recording bool
}

const (
	playStatePlaying   = 1 << 0
	playStatePaused    = 1 << 1
	playStateRecording = 1 << 2
)

// TransportPlayState returns the current transport state. Main thread only.
func (h *Host) TransportPlayState() (PlayState, error) {
	if h.table.GetPlayState == nil {
		return PlayState{}, unavailable("GetPlayState")
	}
	if err := h.requireMain("GetPlayState"); err != nil {
		return PlayState{}, err
	}
	t := h.meter.Begin()
	bits := h.table.GetPlayState()
	h.meter.End("GetPlayState", t)
	return PlayState{
		Playing:   bits&playStatePlaying != 0,
		Paused:    bits&playStatePaused != 0,
		Recording: bits&playStateRecording != 0,
	}, nil
}

// TransportPlay presses the transport's play button. Main thread only.
func (h *Host) TransportPlay() error {
	if h.table.OnPlayButton == nil {
		return unavailable("OnPlayButton")
	}
	if err := h.requireMain("OnPlayButton"); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.OnPlayButton()
	h.meter.End("OnPlayButton", t)
	return nil
}

// TransportStop presses the transport's stop button. Main thread only.
func (h *Host) TransportStop() error {
	if h.table.OnStopButton == nil {
		return unavailable("OnStopButton")
	}
	if err := h.requireMain("OnStopButton"); err != nil {
		return err
	}
	t := h.meter.Begin()
	h.table.OnStopButton()
	h.meter.End("OnStopButton", t)
	return nil
}

// DBToSlider converts a dB value to the host's fader slider scale. Pure
// conversion, safe from any thread.
func (h *Host) DBToSlider(db float64) (float64, error) {
	if h.table.DB2Slider == nil {
		return 0, unavailable("DB2SLIDER")
	}
	t := h.meter.Begin()
	v := h.table.DB2Slider(db)
	h.meter.End("DB2SLIDER", t)
	return v, nil
}

// SliderToDB converts a fader slider value to dB. Pure conversion, safe
// from any thread.
func (h *Host) SliderToDB(slider float64) (float64, error) {
	if h.table.Slider2DB == nil {
		return 0, unavailable("SLIDER2DB")
	}
	t := h.meter.Begin()
	v := h.table.Slider2DB(slider)
	h.meter.End("SLIDER2DB", t)
	return v, nil
}
