package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerKinds(t *testing.T) {
	cases := []struct {
		ptr  Pointer
		kind PointerKind
	}{
		{UncheckedMediaTrack(1), KindMediaTrack},
		{UncheckedMediaItem(1), KindMediaItem},
		{UncheckedTake(1), KindTake},
		{UncheckedPCMSource(1), KindPCMSource},
		{UncheckedTrackEnvelope(1), KindTrackEnvelope},
		{UncheckedProject(1), KindProject},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, c.ptr.Kind())
		assert.Equal(t, uintptr(1), c.ptr.Raw())
	}
}

func TestPointerEqualityIsRawEquality(t *testing.T) {
	a := UncheckedMediaTrack(0x1000)
	b := UncheckedMediaTrack(0x1000)
	c := UncheckedMediaTrack(0x2000)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// Typed pointers are comparable, so they work as map keys.
	m := map[MediaTrack]string{a: "drums"}
	assert.Equal(t, "drums", m[b])
}

func TestPointersOfDifferentKindsNeverCompareEqual(t *testing.T) {
	track := UncheckedMediaTrack(0x1000)
	item := UncheckedMediaItem(0x1000)

	// Same raw value, distinct static types; the type system already keeps
	// them apart, and interface comparison agrees.
	assert.NotEqual(t, Pointer(track), Pointer(item))
}

func TestZeroProjectIsCurrentProject(t *testing.T) {
	p := CurrentProject()
	require.True(t, p.IsZero())
	require.Equal(t, uintptr(0), p.Raw())
}

func TestPointerString(t *testing.T) {
	assert.Equal(t, "MediaTrack*(0x1000)", UncheckedMediaTrack(0x1000).String())
	assert.Equal(t, "ReaProject*(0x0)", CurrentProject().String())
}

func TestIsZero(t *testing.T) {
	assert.True(t, MediaTrack{}.IsZero())
	assert.False(t, UncheckedMediaTrack(1).IsZero())
}
