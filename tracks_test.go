package hostbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostbind/hostbind/lowlevel"
	"github.com/hostbind/hostbind/types"
)

// trackFixture is a stub host with a handful of live tracks behind
// ValidatePtr2, so tests can delete entities and watch guarded operations
// fail with a stale pointer instead of reaching the native call.
type trackFixture struct {
	live    map[uintptr]bool
	volumes map[uintptr]float64
	names   map[uintptr]string
	setOps  int
}

func newTrackFixture() *trackFixture {
	return &trackFixture{
		live:    map[uintptr]bool{0x10: true, 0x20: true},
		volumes: map[uintptr]float64{0x10: 1.0, 0x20: 0.5},
		names:   map[uintptr]string{0x10: "Drums", 0x20: "Bass"},
	}
}

func (f *trackFixture) table() *lowlevel.FunctionTable {
	return &lowlevel.FunctionTable{
		ValidatePtr2: func(proj, ptr uintptr, kind string) bool {
			return f.live[ptr]
		},
		GetTrack: func(proj uintptr, idx int32) uintptr {
			switch idx {
			case 0:
				return 0x10
			case 1:
				return 0x20
			default:
				return 0
			}
		},
		CountTracks: func(proj uintptr) int32 { return 2 },
		GetMediaTrackInfoValue: func(track uintptr, param string) float64 {
			return f.volumes[track]
		},
		SetMediaTrackInfoValue: func(track uintptr, param string, value float64) bool {
			f.setOps++
			f.volumes[track] = value
			return true
		},
		GetSetMediaTrackInfoString: func(track uintptr, param, value string, set bool) (string, bool) {
			if set {
				f.names[track] = value
			}
			return f.names[track], true
		},
		DeleteTrack: func(track uintptr) {
			delete(f.live, track)
		},
	}
}

func TestTrackRoundTrip(t *testing.T) {
	f := newTrackFixture()
	h := withHost(t, f.table())

	track, err := h.Track(types.CurrentProject(), 0)
	require.NoError(t, err)
	require.False(t, track.IsZero())

	name, err := h.TrackName(track)
	require.NoError(t, err)
	require.Equal(t, "Drums", name)

	require.NoError(t, h.SetTrackName(track, "Percussion"))
	name, err = h.TrackName(track)
	require.NoError(t, err)
	require.Equal(t, "Percussion", name)

	vol, err := h.TrackVolume(track)
	require.NoError(t, err)
	require.Equal(t, 1.0, vol)

	require.NoError(t, h.SetTrackVolume(track, 0.25))
	vol, err = h.TrackVolume(track)
	require.NoError(t, err)
	require.Equal(t, 0.25, vol)
}

func TestStalePointerNeverReachesHost(t *testing.T) {
	f := newTrackFixture()
	h := withHost(t, f.table())

	track, err := h.Track(types.CurrentProject(), 0)
	require.NoError(t, err)

	require.NoError(t, h.DeleteTrack(track))

	// The raw value is unchanged, but the entity is gone.
	err = h.SetTrackVolume(track, 0.9)
	var stale *types.StalePointerError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, types.KindMediaTrack, stale.Kind)

	_, err = h.TrackName(track)
	require.ErrorAs(t, err, &stale)

	// The guarded mutation was refused before the native slot.
	require.Equal(t, 0, f.setOps)

	ok, err := h.ValidatePointer(types.CurrentProject(), track)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPointerEquality(t *testing.T) {
	a := types.UncheckedMediaTrack(0x10)
	b := types.UncheckedMediaTrack(0x10)
	c := types.UncheckedMediaTrack(0x20)

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)

	// Same raw value, different kind: distinct static types, and distinct
	// kinds for anything that erases to the Pointer interface.
	item := types.UncheckedMediaItem(0x10)
	require.NotEqual(t, a.Kind(), item.Kind())
}

func TestSelection(t *testing.T) {
	selected := map[uintptr]bool{}
	table := &lowlevel.FunctionTable{
		SetTrackSelected: func(track uintptr, sel bool) {
			selected[track] = sel
		},
		SetOnlyTrackSelected: func(track uintptr) {
			for k := range selected {
				delete(selected, k)
			}
			if track != 0 {
				selected[track] = true
			}
		},
		CountSelectedTracks: func(proj uintptr, wantMaster bool) int32 {
			return int32(len(selected))
		},
	}
	h := withHost(t, table)

	track := types.UncheckedMediaTrack(0x10)
	require.NoError(t, h.SetTrackSelected(track, true))
	n, err := h.CountSelectedTracks(types.CurrentProject(), false)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, h.SetOnlyTrackSelected(types.MediaTrack{}))
	n, err = h.CountSelectedTracks(types.CurrentProject(), false)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestUndoBlockPairsBeginEnd(t *testing.T) {
	var log []string
	table := &lowlevel.FunctionTable{
		UndoBeginBlock: func(proj uintptr) { log = append(log, "begin") },
		UndoEndBlock: func(proj uintptr, desc string, flags int32) {
			log = append(log, "end:"+desc)
		},
		InsertTrackAtIndex: func(idx int32, defaults bool) { log = append(log, "insert") },
	}
	h := withHost(t, table)

	err := h.UndoBlock(types.CurrentProject(), "Add track", func() error {
		return h.InsertTrackAtIndex(0, true)
	})
	require.NoError(t, err)
	require.Equal(t, []string{"begin", "insert", "end:Add track"}, log)
}

func TestSurfaceFeedbackPassesSurfaceInstance(t *testing.T) {
	var gotIgnore uintptr
	table := &lowlevel.FunctionTable{
		ValidatePtr2: func(proj, ptr uintptr, kind string) bool { return true },
		CSurfSetSurfaceVolume: func(track uintptr, volume float64, ignore uintptr) {
			gotIgnore = ignore
		},
	}
	h := withHost(t, table)

	require.NoError(t, h.SurfaceSetVolume(types.UncheckedMediaTrack(0x10), 0.7))
	// Our own surface is excluded from the echo to avoid feedback loops.
	require.Equal(t, testSurfaceInstance, gotIgnore)
}

func TestTransportPlayState(t *testing.T) {
	table := &lowlevel.FunctionTable{
		GetPlayState: func() int32 { return playStatePlaying | playStateRecording },
	}
	h := withHost(t, table)

	st, err := h.TransportPlayState()
	require.NoError(t, err)
	require.True(t, st.Playing)
	require.False(t, st.Paused)
	require.True(t, st.Recording)
}
