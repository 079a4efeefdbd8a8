package wire

import "encoding/binary"

// HardwareCommand is the closed set of host→MCU messages.
type HardwareCommand interface {
	CommandTag() byte
	encodeFields() []byte
}

const (
	TagPing            byte = 0
	TagSetSectionPower byte = 1
	TagSetSwitchState  byte = 2
	TagResetAll        byte = 99
)

type Ping struct {
	SlaveID uint32
	Seq     uint32
}

func (Ping) CommandTag() byte { return TagPing }
func (p Ping) encodeFields() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[0:4], p.SlaveID)
	binary.LittleEndian.PutUint32(b[4:8], p.Seq)
	return b
}

type SetSectionPower struct {
	SectionID uint32
	Power     byte // SectionPower, see track package
}

func (SetSectionPower) CommandTag() byte { return TagSetSectionPower }
func (c SetSectionPower) encodeFields() []byte {
	b := make([]byte, 5)
	binary.LittleEndian.PutUint32(b[0:4], c.SectionID)
	b[4] = c.Power
	return b
}

type SetSwitchState struct {
	SwitchID [32]byte
	State    byte // SwitchState: 0 = Left, 1 = Right
}

func (SetSwitchState) CommandTag() byte { return TagSetSwitchState }
func (c SetSwitchState) encodeFields() []byte {
	b := make([]byte, 33)
	copy(b[0:32], c.SwitchID[:])
	b[32] = c.State
	return b
}

type ResetAll struct{}

func (ResetAll) CommandTag() byte          { return TagResetAll }
func (ResetAll) encodeFields() []byte      { return nil }

// EncodeCommand produces the complete framed wire bytes for a command.
func EncodeCommand(c HardwareCommand) []byte {
	return EncodeFrame(c.CommandTag(), c.encodeFields())
}

// DecodeCommand dispatches on tag to produce the concrete command value.
func DecodeCommand(tag byte, fields []byte) (HardwareCommand, error) {
	switch tag {
	case TagPing:
		if len(fields) != 8 {
			return nil, &E{C: ErrInvalidVariant, Op: "DecodeCommand(Ping)"}
		}
		return Ping{
			SlaveID: binary.LittleEndian.Uint32(fields[0:4]),
			Seq:     binary.LittleEndian.Uint32(fields[4:8]),
		}, nil
	case TagSetSectionPower:
		if len(fields) != 5 {
			return nil, &E{C: ErrInvalidVariant, Op: "DecodeCommand(SetSectionPower)"}
		}
		return SetSectionPower{
			SectionID: binary.LittleEndian.Uint32(fields[0:4]),
			Power:     fields[4],
		}, nil
	case TagSetSwitchState:
		if len(fields) != 33 {
			return nil, &E{C: ErrInvalidVariant, Op: "DecodeCommand(SetSwitchState)"}
		}
		var id [32]byte
		copy(id[:], fields[0:32])
		return SetSwitchState{SwitchID: id, State: fields[32]}, nil
	case TagResetAll:
		if len(fields) != 0 {
			return nil, &E{C: ErrInvalidVariant, Op: "DecodeCommand(ResetAll)"}
		}
		return ResetAll{}, nil
	default:
		return nil, &E{C: ErrInvalidVariant, Op: "DecodeCommand"}
	}
}

// EncodeSwitchID zero-pads a textual switch name to the fixed 32-byte wire
// representation. Names longer than 32 bytes are rejected.
func EncodeSwitchID(name string) ([32]byte, error) {
	var out [32]byte
	if len(name) > 32 {
		return out, &E{C: ErrInvalidVariant, Op: "EncodeSwitchID", Err: errTooLong}
	}
	copy(out[:], name)
	return out, nil
}

// DecodeSwitchID trims the zero padding back to a string.
func DecodeSwitchID(id [32]byte) string {
	n := 0
	for n < len(id) && id[n] != 0 {
		n++
	}
	return string(id[:n])
}

var errTooLong = Code("wire: switch id exceeds 32 bytes")
