package types

import (
	"fmt"
)

// PointerKind identifies the entity class a raw host handle refers to. Its
// string form is the exact vocabulary the host's pointer validation function
// understands.
type PointerKind string

const (
	KindMediaTrack    PointerKind = "MediaTrack*"
	KindMediaItem     PointerKind = "MediaItem*"
	KindTake          PointerKind = "MediaItem_Take*"
	KindPCMSource     PointerKind = "PCM_source*"
	KindTrackEnvelope PointerKind = "TrackEnvelope*"
	KindProject       PointerKind = "ReaProject*"
)

// Pointer is the common face of all typed pointers. A Pointer carries no
// liveness guarantee beyond the host call that produced it. Before reusing
// one across a host reentrancy boundary (a later callback invocation, an
// undo/redo, anything that lets the user delete entities) it must be
// revalidated; the host may have freed the entity and even reused the raw
// value for something else.
//
// Two pointers are equal iff their raw values are equal. Equality says
// nothing about logical identity once either side has been invalidated.
type Pointer interface {
	Raw() uintptr
	Kind() PointerKind
}

// MediaTrack refers to a track in a project.
type MediaTrack struct {
	raw uintptr
}

func (p MediaTrack) Raw() uintptr      { return p.raw }
func (p MediaTrack) Kind() PointerKind { return KindMediaTrack }
func (p MediaTrack) IsZero() bool      { return p.raw == 0 }
func (p MediaTrack) String() string    { return formatPointer(p) }

// UncheckedMediaTrack wraps an arbitrary raw value as a MediaTrack. This is
// an interop escape hatch: nothing checks that the value actually denotes a
// track. Normal code receives typed pointers from Host methods only.
func UncheckedMediaTrack(raw uintptr) MediaTrack { return MediaTrack{raw: raw} }

// MediaItem refers to an item on a track.
type MediaItem struct {
	raw uintptr
}

func (p MediaItem) Raw() uintptr      { return p.raw }
func (p MediaItem) Kind() PointerKind { return KindMediaItem }
func (p MediaItem) IsZero() bool      { return p.raw == 0 }
func (p MediaItem) String() string    { return formatPointer(p) }

// UncheckedMediaItem wraps an arbitrary raw value as a MediaItem.
func UncheckedMediaItem(raw uintptr) MediaItem { return MediaItem{raw: raw} }

// Take refers to one take of a media item.
type Take struct {
	raw uintptr
}

func (p Take) Raw() uintptr      { return p.raw }
func (p Take) Kind() PointerKind { return KindTake }
func (p Take) IsZero() bool      { return p.raw == 0 }
func (p Take) String() string    { return formatPointer(p) }

// UncheckedTake wraps an arbitrary raw value as a Take.
func UncheckedTake(raw uintptr) Take { return Take{raw: raw} }

// PCMSource refers to an audio or MIDI source.
type PCMSource struct {
	raw uintptr
}

func (p PCMSource) Raw() uintptr      { return p.raw }
func (p PCMSource) Kind() PointerKind { return KindPCMSource }
func (p PCMSource) IsZero() bool      { return p.raw == 0 }
func (p PCMSource) String() string    { return formatPointer(p) }

// UncheckedPCMSource wraps an arbitrary raw value as a PCMSource.
func UncheckedPCMSource(raw uintptr) PCMSource { return PCMSource{raw: raw} }

// TrackEnvelope refers to an automation envelope on a track.
type TrackEnvelope struct {
	raw uintptr
}

func (p TrackEnvelope) Raw() uintptr      { return p.raw }
func (p TrackEnvelope) Kind() PointerKind { return KindTrackEnvelope }
func (p TrackEnvelope) IsZero() bool      { return p.raw == 0 }
func (p TrackEnvelope) String() string    { return formatPointer(p) }

// UncheckedTrackEnvelope wraps an arbitrary raw value as a TrackEnvelope.
func UncheckedTrackEnvelope(raw uintptr) TrackEnvelope { return TrackEnvelope{raw: raw} }

// Project refers to an open project tab. The zero Project addresses the
// current project in host functions that accept one.
type Project struct {
	raw uintptr
}

func (p Project) Raw() uintptr      { return p.raw }
func (p Project) Kind() PointerKind { return KindProject }
func (p Project) IsZero() bool      { return p.raw == 0 }
func (p Project) String() string    { return formatPointer(p) }

// CurrentProject addresses the current project without naming a tab.
func CurrentProject() Project { return Project{} }

// UncheckedProject wraps an arbitrary raw value as a Project.
func UncheckedProject(raw uintptr) Project { return Project{raw: raw} }

func formatPointer(p Pointer) string {
	return fmt.Sprintf("%s(0x%x)", p.Kind(), p.Raw())
}
