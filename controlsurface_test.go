package hostbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostbind/hostbind/lowlevel"
	"github.com/hostbind/hostbind/types"
)

type pluginRegCall struct {
	name     string
	instance uintptr
}

// recordingSurface captures every notification it receives.
type recordingSurface struct {
	SurfaceBase
	volumes    map[types.MediaTrack]float64
	selections []types.MediaTrack
	plays      []PlayState
	titles     map[types.MediaTrack]string
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{
		volumes: map[types.MediaTrack]float64{},
		titles:  map[types.MediaTrack]string{},
	}
}

func (s *recordingSurface) SetSurfaceVolume(track types.MediaTrack, volume float64) {
	s.volumes[track] = volume
}

func (s *recordingSurface) OnTrackSelection(track types.MediaTrack) {
	s.selections = append(s.selections, track)
}

func (s *recordingSurface) SetPlayState(state PlayState) {
	s.plays = append(s.plays, state)
}

func (s *recordingSurface) SetTrackTitle(track types.MediaTrack, title string) {
	s.titles[track] = title
}

func surfaceHost(t *testing.T) (*Host, *[]pluginRegCall) {
	t.Helper()
	var regs []pluginRegCall
	table := &lowlevel.FunctionTable{
		PluginRegister: func(name string, infostruct uintptr) int32 {
			regs = append(regs, pluginRegCall{name: name, instance: infostruct})
			return 1
		},
	}
	return withHost(t, table), &regs
}

func TestSurfaceRegisterAnnouncesInstance(t *testing.T) {
	h, regs := surfaceHost(t)

	require.NoError(t, h.Surface().Register(newRecordingSurface()))
	require.True(t, h.Surface().Registered())
	require.Equal(t, []pluginRegCall{{name: "csurfinst", instance: testSurfaceInstance}}, *regs)

	require.NoError(t, h.Surface().Unregister())
	require.False(t, h.Surface().Registered())
	require.Equal(t, pluginRegCall{name: "-csurfinst", instance: testSurfaceInstance}, (*regs)[1])
}

func TestSurfaceSecondRegisterRejected(t *testing.T) {
	h, regs := surfaceHost(t)
	first := newRecordingSurface()

	require.NoError(t, h.Surface().Register(first))

	err := h.Surface().Register(newRecordingSurface())
	var already *types.AlreadyRegisteredError
	require.ErrorAs(t, err, &already)
	require.Len(t, *regs, 1)

	// The first listener still receives notifications.
	h.Surface().RawSetSurfaceVolume(0x1000, 0.5)
	assert.Equal(t, 0.5, first.volumes[types.UncheckedMediaTrack(0x1000)])
}

func TestSurfaceRegisterWithoutHostSlot(t *testing.T) {
	// A host without plugin_register can never deliver notifications, so
	// Register must fail instead of storing a listener that looks active.
	h := withHost(t, &lowlevel.FunctionTable{})

	err := h.Surface().Register(newRecordingSurface())
	var unavail *types.FunctionUnavailableError
	require.ErrorAs(t, err, &unavail)
	require.False(t, h.Surface().Registered())
}

func TestSurfaceRegisterWithoutSurfaceInstance(t *testing.T) {
	table := &lowlevel.FunctionTable{
		PluginRegister: func(name string, infostruct uintptr) int32 { return 1 },
	}
	h := withHostCtx(t, table, lowlevel.PluginContext{})

	require.Error(t, h.Surface().Register(newRecordingSurface()))
	require.False(t, h.Surface().Registered())
}

func TestSurfaceRegisterNilListener(t *testing.T) {
	h, _ := surfaceHost(t)
	require.Error(t, h.Surface().Register(nil))
	require.False(t, h.Surface().Registered())
}

func TestSurfaceUnregisterWithoutListener(t *testing.T) {
	h, _ := surfaceHost(t)

	err := h.Surface().Unregister()
	var notReg *types.NotRegisteredError
	require.ErrorAs(t, err, &notReg)
}

func TestSurfaceReRegisterAfterUnregister(t *testing.T) {
	h, _ := surfaceHost(t)
	first := newRecordingSurface()
	second := newRecordingSurface()

	require.NoError(t, h.Surface().Register(first))
	require.NoError(t, h.Surface().Unregister())
	require.NoError(t, h.Surface().Register(second))

	h.Surface().RawOnTrackSelection(0x2000)
	assert.Empty(t, first.selections)
	assert.Equal(t, []types.MediaTrack{types.UncheckedMediaTrack(0x2000)}, second.selections)
}

func TestSurfaceNotificationsTranslateArguments(t *testing.T) {
	h, _ := surfaceHost(t)
	s := newRecordingSurface()
	require.NoError(t, h.Surface().Register(s))

	h.Surface().RawSetSurfaceVolume(0x1000, 0.25)
	h.Surface().RawSetTrackTitle(0x1000, "Drums")
	h.Surface().RawSetPlayState(true, false, true)

	tr := types.UncheckedMediaTrack(0x1000)
	assert.Equal(t, 0.25, s.volumes[tr])
	assert.Equal(t, "Drums", s.titles[tr])
	require.Len(t, s.plays, 1)
	assert.Equal(t, PlayState{Playing: true, Recording: true}, s.plays[0])
}

func TestSurfaceNotificationWithoutListener(t *testing.T) {
	h, _ := surfaceHost(t)

	// Notifications can arrive between registrations; they are dropped.
	require.NotPanics(t, func() {
		h.Surface().RawSetTrackListChange()
		h.Surface().RawSetSurfaceVolume(0x1000, 1.0)
	})
}

type panickingSurface struct {
	SurfaceBase
	after int
}

func (s *panickingSurface) OnTrackSelection(types.MediaTrack) {
	s.after++
	panic("listener bug")
}

func TestSurfaceListenerPanicIsContained(t *testing.T) {
	h, _ := surfaceHost(t)
	s := &panickingSurface{}
	require.NoError(t, h.Surface().Register(s))

	require.NotPanics(t, func() {
		h.Surface().RawOnTrackSelection(0x1000)
		h.Surface().RawOnTrackSelection(0x1000)
	})

	// The listener stays registered and keeps receiving notifications.
	require.True(t, h.Surface().Registered())
	assert.Equal(t, 2, s.after)
}
