package wire

import "testing"

// TestPingRoundTripBytes is end-to-end scenario 1 from the spec, seeded
// verbatim: encoding Ping{slave_id=0, seq=69} must produce this exact byte
// sequence.
func TestPingRoundTripBytes(t *testing.T) {
	got := EncodeCommand(Ping{SlaveID: 0, Seq: 69})
	want := []byte{0xAA, 0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x45, 0x00, 0x00, 0x00, 0x45}
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d (%x vs %x)", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x (full: %x)", i, got[i], want[i], got)
		}
	}

	var d Deframer
	d.Feed(got)
	tag, fields, ok := d.Next()
	if !ok {
		t.Fatal("expected a decoded frame")
	}
	cmd, err := DecodeCommand(tag, fields)
	if err != nil {
		t.Fatalf("DecodeCommand: %v", err)
	}
	ping, ok := cmd.(Ping)
	if !ok || ping.SlaveID != 0 || ping.Seq != 69 {
		t.Fatalf("decoded %#v, want Ping{0,69}", cmd)
	}
}

func TestCommandRoundTrip(t *testing.T) {
	swID, _ := EncodeSwitchID("pt7")
	cases := []HardwareCommand{
		Ping{SlaveID: 3, Seq: 1234},
		SetSectionPower{SectionID: 24, Power: 4},
		SetSwitchState{SwitchID: swID, State: 1},
		ResetAll{},
	}
	for _, c := range cases {
		frame := EncodeCommand(c)
		var d Deframer
		d.Feed(frame)
		tag, fields, ok := d.Next()
		if !ok {
			t.Fatalf("no frame decoded for %#v", c)
		}
		got, err := DecodeCommand(tag, fields)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != c {
			t.Fatalf("round trip mismatch: got %#v, want %#v", got, c)
		}
	}
}

func TestEventRoundTrip(t *testing.T) {
	swID, _ := EncodeSwitchID("turnout-a")
	cases := []HardwareEvent{
		Pong{SlaveID: 0, Seq: 69},
		SectionEvent{SectionID: 24, EventType: SectionOccupied},
		SwitchStateChanged{SwitchID: swID, State: 0},
		Ack{},
		DebugMessage{Text: "hello"},
	}
	for _, c := range cases {
		frame := EncodeEvent(c)
		var d Deframer
		d.Feed(frame)
		tag, fields, ok := d.Next()
		if !ok {
			t.Fatalf("no frame decoded for %#v", c)
		}
		got, err := DecodeEvent(tag, fields)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != c {
			t.Fatalf("round trip mismatch: got %#v, want %#v", got, c)
		}
	}
}

// TestEncodedFrameLength checks the stated invariant: encoded length == 6 + size.
func TestEncodedFrameLength(t *testing.T) {
	frame := EncodeCommand(SetSectionPower{SectionID: 1, Power: 2})
	size := 1 + len(SetSectionPower{SectionID: 1, Power: 2}.encodeFields())
	if len(frame) != 6+size {
		t.Fatalf("frame length = %d, want %d", len(frame), 6+size)
	}
}

// TestResync feeds a random byte prefix followed by a valid frame and checks
// exactly one frame is decoded, matching scenario 6.
func TestResync(t *testing.T) {
	valid := EncodeEvent(Pong{SlaveID: 0, Seq: 69})

	// [0x00, 0xAA, <truncated frame>, 0xAA, <valid frame>]
	truncated := EncodeEvent(SectionEvent{SectionID: 99, EventType: SectionFreed})
	truncated = truncated[:len(truncated)-2] // cut short, no trailing checksum/byte

	input := append([]byte{0x00}, truncated...)
	input = append(input, valid...)

	var d Deframer
	d.Feed(input)

	tag, fields, ok := d.Next()
	if !ok {
		t.Fatal("expected exactly one decoded frame")
	}
	got, err := DecodeEvent(tag, fields)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != (Pong{SlaveID: 0, Seq: 69}) {
		t.Fatalf("got %#v, want the valid Pong frame", got)
	}

	if _, _, ok := d.Next(); ok {
		t.Fatal("expected no further frames")
	}
}

// TestChecksumSensitivity flips a single payload byte and checks the decoder
// skips the candidate and still finds a subsequent valid frame.
func TestChecksumSensitivity(t *testing.T) {
	good := EncodeEvent(Pong{SlaveID: 1, Seq: 2})
	corrupt := append([]byte(nil), good...)
	corrupt[6] ^= 0xFF // flip a payload byte (index 6 is inside the fields)

	next := EncodeEvent(Ack{})
	input := append(corrupt, next...)

	var d Deframer
	d.Feed(input)
	tag, fields, ok := d.Next()
	if !ok {
		t.Fatal("expected the trailing valid frame to still decode")
	}
	got, err := DecodeEvent(tag, fields)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, isAck := got.(Ack); !isAck {
		t.Fatalf("got %#v, want Ack (corrupt frame should have been skipped)", got)
	}
}

func TestDeframerIncompleteReturnsFalse(t *testing.T) {
	var d Deframer
	d.Feed([]byte{StartByte, 0x05, 0x00})
	if _, _, ok := d.Next(); ok {
		t.Fatal("expected no frame ready on a short buffer")
	}
}
