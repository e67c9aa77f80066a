package hostbind

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"

	"github.com/hostbind/hostbind/types"
)

// MaxMidiInputs returns the host's MIDI input device slot count. Main
// thread only.
func (h *Host) MaxMidiInputs() (int, error) {
	if h.table.GetMaxMidiInputs == nil {
		return 0, unavailable("GetMaxMidiInputs")
	}
	if err := h.requireMain("GetMaxMidiInputs"); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	n := h.table.GetMaxMidiInputs()
	h.meter.End("GetMaxMidiInputs", t)
	return int(n), nil
}

// MaxMidiOutputs returns the host's MIDI output device slot count. Main
// thread only.
func (h *Host) MaxMidiOutputs() (int, error) {
	if h.table.GetMaxMidiOutputs == nil {
		return 0, unavailable("GetMaxMidiOutputs")
	}
	if err := h.requireMain("GetMaxMidiOutputs"); err != nil {
		return 0, err
	}
	t := h.meter.Begin()
	n := h.table.GetMaxMidiOutputs()
	h.meter.End("GetMaxMidiOutputs", t)
	return int(n), nil
}

// MidiInputName returns the device name in slot dev and whether a device is
// present there. A device that once existed but is disconnected keeps its
// name with present == false. Main thread only.
func (h *Host) MidiInputName(dev int) (name string, present bool, err error) {
	if h.table.GetMIDIInputName == nil {
		return "", false, unavailable("GetMIDIInputName")
	}
	if err := h.requireMain("GetMIDIInputName"); err != nil {
		return "", false, err
	}
	t := h.meter.Begin()
	name, present = h.table.GetMIDIInputName(int32(dev))
	h.meter.End("GetMIDIInputName", t)
	return name, present, nil
}

// MidiOutputName returns the device name in output slot dev. Main thread
// only.
func (h *Host) MidiOutputName(dev int) (name string, present bool, err error) {
	if h.table.GetMIDIOutputName == nil {
		return "", false, unavailable("GetMIDIOutputName")
	}
	if err := h.requireMain("GetMIDIOutputName"); err != nil {
		return "", false, err
	}
	t := h.meter.Begin()
	name, present = h.table.GetMIDIOutputName(int32(dev))
	h.meter.End("GetMIDIOutputName", t)
	return name, present, nil
}

// ReadMidiInput decodes the raw event buffer of input device dev for the
// current processing block. Offsets in the result are absolute within the
// block. Audio thread only: the host exposes a device's read buffer solely
// inside its audio/MIDI processing callback, and the buffer is recycled
// when the callback returns — which is also why the decoded events own
// copies of their payloads. No identity check is performed; calling this
// outside the audio callback reads a buffer in an undefined state.
func (h *Host) ReadMidiInput(dev int) ([]types.MidiEvent, error) {
	if h.table.GetMidiInput == nil || h.table.MidiInputGetReadBuf == nil {
		return nil, unavailable("GetMidiInput")
	}
	t := h.meter.Begin()
	input := h.table.GetMidiInput(int32(dev))
	h.meter.End("GetMidiInput", t)
	if input == 0 {
		return nil, fmt.Errorf("midi input %d is not open", dev)
	}
	t = h.meter.Begin()
	buf := h.table.MidiInputGetReadBuf(input)
	h.meter.End("MidiInput_GetReadBuf", t)
	return types.DecodeMidiBuffer(buf)
}

// SendMidiOutput encodes events back into the host's record format and
// hands them to output device dev for the current block. Events must be
// ordered by offset. Audio thread only, same contract as ReadMidiInput.
func (h *Host) SendMidiOutput(dev int, events []types.MidiEvent) error {
	if h.table.GetMidiOutput == nil || h.table.MidiOutputSend == nil {
		return unavailable("GetMidiOutput")
	}
	buf, err := types.EncodeMidiBuffer(events)
	if err != nil {
		return err
	}
	t := h.meter.Begin()
	output := h.table.GetMidiOutput(int32(dev))
	h.meter.End("GetMidiOutput", t)
	if output == 0 {
		return fmt.Errorf("midi output %d is not open", dev)
	}
	t = h.meter.Begin()
	h.table.MidiOutputSend(output, buf)
	h.meter.End("MidiOutput_Send", t)
	return nil
}

// StuffTarget selects the queue a stuffed MIDI message is pushed into.
type StuffTarget int32

const (
	// StuffVirtualKeyboard feeds the host's virtual MIDI keyboard.
	StuffVirtualKeyboard StuffTarget = 0
	// StuffControlInput feeds the control/learn input path.
	StuffControlInput StuffTarget = 1
	// StuffVirtualKeyboardCurrentChannel feeds the virtual keyboard on its
	// currently selected channel.
	StuffVirtualKeyboardCurrentChannel StuffTarget = 2
)

// StuffMidiOutput targets a hardware MIDI output device directly.
func StuffMidiOutput(dev int) StuffTarget {
	return StuffTarget(16 + dev)
}

// StuffMIDIMessage pushes one short message into the selected host queue.
// The message semantics live entirely in the MIDI domain library; this layer
// only splits off the up-to-three status/data bytes the native call takes,
// so sysex and other long messages are refused. Main thread only.
func (h *Host) StuffMIDIMessage(target StuffTarget, msg midi.Message) error {
	if h.table.StuffMIDIMessage == nil {
		return unavailable("StuffMIDIMessage")
	}
	if err := h.requireMain("StuffMIDIMessage"); err != nil {
		return err
	}
	raw := []byte(msg)
	if len(raw) == 0 || len(raw) > 3 {
		return fmt.Errorf("can only stuff short messages of 1-3 bytes, got %d", len(raw))
	}
	var b [3]byte
	copy(b[:], raw)
	t := h.meter.Begin()
	h.table.StuffMIDIMessage(int32(target), b[0], b[1], b[2])
	h.meter.End("StuffMIDIMessage", t)
	return nil
}
