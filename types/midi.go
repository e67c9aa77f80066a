package types

import (
	"encoding/binary"
	"math"

	"gitlab.com/gomidi/midi/v2"
)

// MidiEvent is one MIDI event inside a processing block. Offset is the
// absolute frame offset from the start of the block the event belongs to;
// offsets are not monotonic across blocks. Payload holds the raw message
// bytes and is never interpreted by this layer.
type MidiEvent struct {
	Offset  int
	Payload []byte
}

// Message exposes the payload as a structured MIDI message. Semantics
// (channel, note, velocity, ...) are the domain library's business.
func (e MidiEvent) Message() midi.Message {
	return midi.Message(e.Payload)
}

// The host hands MIDI blocks over as one contiguous buffer of records:
//
//	uint32 LE  frame offset, delta-encoded against the previous record
//	uint32 LE  payload length
//	bytes      payload
//
// repeated until the buffer ends. Deltas accumulate left to right; the
// decoded form carries absolute within-block offsets instead.
const midiRecordHeader = 8

// DecodeMidiBuffer scans a raw event buffer strictly left to right and
// returns the events with their offsets normalized from cumulative deltas to
// absolute within-block positions. Payloads are copied out of buf, so the
// result stays valid after the host reclaims the block. A record whose
// length reaches past the end of the buffer yields MalformedMidiBufferError;
// nothing is ever read out of bounds.
func DecodeMidiBuffer(buf []byte) ([]MidiEvent, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	var events []MidiEvent
	offset := 0
	pos := 0
	for pos < len(buf) {
		if len(buf)-pos < midiRecordHeader {
			return nil, &MalformedMidiBufferError{Pos: pos, Msg: "truncated record header"}
		}
		delta := binary.LittleEndian.Uint32(buf[pos:])
		length := binary.LittleEndian.Uint32(buf[pos+4:])
		pos += midiRecordHeader
		if uint32(len(buf)-pos) < length {
			return nil, &MalformedMidiBufferError{Pos: pos, Msg: "payload length reaches past end of buffer"}
		}
		payload := make([]byte, length)
		copy(payload, buf[pos:pos+int(length)])
		pos += int(length)
		offset += int(delta)
		events = append(events, MidiEvent{Offset: offset, Payload: payload})
	}
	return events, nil
}

// EncodeMidiBuffer re-delta-encodes absolute offsets and serializes the
// events back into the host's record format. For any buffer b previously
// produced by EncodeMidiBuffer, DecodeMidiBuffer(b) followed by
// EncodeMidiBuffer reproduces b byte for byte. Events must be ordered by
// non-decreasing offset and offsets must be non-negative; anything else
// cannot be expressed as deltas and yields MalformedMidiBufferError.
func EncodeMidiBuffer(events []MidiEvent) ([]byte, error) {
	if len(events) == 0 {
		return nil, nil
	}
	size := 0
	for _, e := range events {
		size += midiRecordHeader + len(e.Payload)
	}
	buf := make([]byte, 0, size)
	prev := 0
	for i, e := range events {
		if e.Offset < 0 {
			return nil, &MalformedMidiBufferError{Pos: i, Msg: "negative event offset"}
		}
		if e.Offset < prev {
			return nil, &MalformedMidiBufferError{Pos: i, Msg: "events not ordered by offset"}
		}
		if uint64(e.Offset-prev) > math.MaxUint32 {
			return nil, &MalformedMidiBufferError{Pos: i, Msg: "offset gap exceeds the delta field"}
		}
		var header [midiRecordHeader]byte
		binary.LittleEndian.PutUint32(header[:4], uint32(e.Offset-prev))
		binary.LittleEndian.PutUint32(header[4:], uint32(len(e.Payload)))
		buf = append(buf, header[:]...)
		buf = append(buf, e.Payload...)
		prev = e.Offset
	}
	return buf, nil
}
