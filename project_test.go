package hostbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostbind/hostbind/lowlevel"
	"github.com/hostbind/hostbind/types"
)

func TestEnumProject(t *testing.T) {
	table := &lowlevel.FunctionTable{
		EnumProjects: func(idx int32, wantFile bool) (uintptr, string) {
			switch idx {
			case -1:
				return 0xA000, "/songs/current.rpp"
			case 0:
				return 0xA000, "/songs/current.rpp"
			case 1:
				return 0xB000, ""
			default:
				return 0, ""
			}
		},
	}
	h := withHost(t, table)

	current, err := h.EnumProject(-1, true)
	require.NoError(t, err)
	assert.Equal(t, "/songs/current.rpp", current.FilePath)
	assert.False(t, current.Project.IsZero())

	second, err := h.EnumProject(1, false)
	require.NoError(t, err)
	assert.Equal(t, types.UncheckedProject(0xB000), second.Project)

	missing, err := h.EnumProject(2, false)
	require.NoError(t, err)
	assert.True(t, missing.Project.IsZero())
}

func TestUndoStack(t *testing.T) {
	undone := 0
	table := &lowlevel.FunctionTable{
		UndoCanUndo: func(proj uintptr) (string, bool) { return "Add track", true },
		UndoCanRedo: func(proj uintptr) (string, bool) { return "", false },
		UndoDoUndo:  func(proj uintptr) bool { undone++; return true },
	}
	h := withHost(t, table)
	proj := types.CurrentProject()

	desc, ok, err := h.UndoCanUndo(proj)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Add track", desc)

	_, ok, err = h.UndoCanRedo(proj)
	require.NoError(t, err)
	assert.False(t, ok)

	did, err := h.UndoDoUndo(proj)
	require.NoError(t, err)
	assert.True(t, did)
	assert.Equal(t, 1, undone)
}

func TestProjectDirtyFlag(t *testing.T) {
	dirty := false
	table := &lowlevel.FunctionTable{
		MarkProjectDirty: func(proj uintptr) { dirty = true },
		IsProjectDirty:   func(proj uintptr) bool { return dirty },
	}
	h := withHost(t, table)
	proj := types.CurrentProject()

	got, err := h.IsProjectDirty(proj)
	require.NoError(t, err)
	assert.False(t, got)

	require.NoError(t, h.MarkProjectDirty(proj))
	got, err = h.IsProjectDirty(proj)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestTempoAndPlayRate(t *testing.T) {
	bpm := 120.0
	table := &lowlevel.FunctionTable{
		MasterGetTempo:    func() float64 { return bpm },
		SetCurrentBPM:     func(proj uintptr, v float64, wantUndo bool) { bpm = v },
		MasterGetPlayRate: func(proj uintptr) float64 { return 1.5 },
	}
	h := withHost(t, table)

	got, err := h.MasterTempo()
	require.NoError(t, err)
	assert.Equal(t, 120.0, got)

	require.NoError(t, h.SetCurrentBPM(types.CurrentProject(), 90, true))
	got, err = h.MasterTempo()
	require.NoError(t, err)
	assert.Equal(t, 90.0, got)

	rate, err := h.MasterPlayRate(types.CurrentProject())
	require.NoError(t, err)
	assert.Equal(t, 1.5, rate)
}

func TestSliderConversionsAnyThread(t *testing.T) {
	table := &lowlevel.FunctionTable{
		DB2Slider: func(db float64) float64 { return db + 1000 },
		Slider2DB: func(v float64) float64 { return v - 1000 },
	}
	h := withHost(t, table)

	onOtherThread(t, func() {
		v, err := h.DBToSlider(0)
		require.NoError(t, err)
		require.Equal(t, 1000.0, v)

		db, err := h.SliderToDB(1000)
		require.NoError(t, err)
		require.Equal(t, 0.0, db)
	})
}
