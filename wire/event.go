package wire

import "encoding/binary"

// HardwareEvent is the closed set of MCU→host messages.
type HardwareEvent interface {
	EventTag() byte
	encodeFields() []byte
}

const (
	TagPong               byte = 0
	TagSectionEvent       byte = 1
	TagSwitchStateChanged byte = 2
	TagAck                byte = 3 // resolved from spec's TBD, see SPEC_FULL.md
	TagDebugMessage       byte = 99
)

const (
	SectionOccupied byte = 0
	SectionFreed    byte = 1
)

type Pong struct {
	SlaveID uint32
	Seq     uint32
}

func (Pong) EventTag() byte { return TagPong }
func (p Pong) encodeFields() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[0:4], p.SlaveID)
	binary.LittleEndian.PutUint32(b[4:8], p.Seq)
	return b
}

type SectionEvent struct {
	SectionID uint32
	EventType byte // SectionOccupied | SectionFreed
}

func (SectionEvent) EventTag() byte { return TagSectionEvent }
func (e SectionEvent) encodeFields() []byte {
	b := make([]byte, 5)
	binary.LittleEndian.PutUint32(b[0:4], e.SectionID)
	b[4] = e.EventType
	return b
}

type SwitchStateChanged struct {
	SwitchID [32]byte
	State    byte
}

func (SwitchStateChanged) EventTag() byte { return TagSwitchStateChanged }
func (e SwitchStateChanged) encodeFields() []byte {
	b := make([]byte, 33)
	copy(b[0:32], e.SwitchID[:])
	b[32] = e.State
	return b
}

// Ack is emitted purely for observability after a locally-consumed command
// that has no more specific event of its own (currently ResetAll). It never
// gates command emission — see SPEC_FULL.md on why no blocking ack flow
// control was carried forward.
type Ack struct{}

func (Ack) EventTag() byte     { return TagAck }
func (Ack) encodeFields() []byte { return nil }

type DebugMessage struct {
	Text string
}

func (DebugMessage) EventTag() byte { return TagDebugMessage }
func (d DebugMessage) encodeFields() []byte {
	b := make([]byte, 4+len(d.Text))
	binary.LittleEndian.PutUint32(b[0:4], uint32(len(d.Text)))
	copy(b[4:], d.Text)
	return b
}

// EncodeEvent produces the complete framed wire bytes for an event.
func EncodeEvent(e HardwareEvent) []byte {
	return EncodeFrame(e.EventTag(), e.encodeFields())
}

// DecodeEvent dispatches on tag to produce the concrete event value.
func DecodeEvent(tag byte, fields []byte) (HardwareEvent, error) {
	switch tag {
	case TagPong:
		if len(fields) != 8 {
			return nil, &E{C: ErrInvalidVariant, Op: "DecodeEvent(Pong)"}
		}
		return Pong{
			SlaveID: binary.LittleEndian.Uint32(fields[0:4]),
			Seq:     binary.LittleEndian.Uint32(fields[4:8]),
		}, nil
	case TagSectionEvent:
		if len(fields) != 5 {
			return nil, &E{C: ErrInvalidVariant, Op: "DecodeEvent(SectionEvent)"}
		}
		return SectionEvent{
			SectionID: binary.LittleEndian.Uint32(fields[0:4]),
			EventType: fields[4],
		}, nil
	case TagSwitchStateChanged:
		if len(fields) != 33 {
			return nil, &E{C: ErrInvalidVariant, Op: "DecodeEvent(SwitchStateChanged)"}
		}
		var id [32]byte
		copy(id[:], fields[0:32])
		return SwitchStateChanged{SwitchID: id, State: fields[32]}, nil
	case TagAck:
		if len(fields) != 0 {
			return nil, &E{C: ErrInvalidVariant, Op: "DecodeEvent(Ack)"}
		}
		return Ack{}, nil
	case TagDebugMessage:
		if len(fields) < 4 {
			return nil, &E{C: ErrInvalidVariant, Op: "DecodeEvent(DebugMessage)"}
		}
		n := binary.LittleEndian.Uint32(fields[0:4])
		if int(n) != len(fields)-4 {
			return nil, &E{C: ErrSizeNotWritten, Op: "DecodeEvent(DebugMessage)"}
		}
		return DebugMessage{Text: string(fields[4:])}, nil
	default:
		return nil, &E{C: ErrInvalidVariant, Op: "DecodeEvent"}
	}
}
