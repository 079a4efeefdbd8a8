package wire

import "encoding/binary"

// StartByte marks the beginning of every frame on the wire.
const StartByte = 0xAA

// headerLen is the number of bytes before the payload: start byte + u32 size.
const headerLen = 5

// EncodeFrame wraps a tag and its field bytes into a complete frame:
// 0xAA || LE(size) || tag || fields || checksum.
func EncodeFrame(tag byte, fields []byte) []byte {
	payload := make([]byte, 0, 1+len(fields))
	payload = append(payload, tag)
	payload = append(payload, fields...)

	frame := make([]byte, 0, headerLen+len(payload)+1)
	frame = append(frame, StartByte)
	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(len(payload)))
	frame = append(frame, sizeBuf[:]...)
	frame = append(frame, payload...)
	frame = append(frame, checksum(payload))
	return frame
}

func checksum(payload []byte) byte {
	var sum byte
	for _, b := range payload {
		sum += b
	}
	return sum
}

// Deframer implements the streaming, resyncing byte-level parser described
// in the protocol's deframing algorithm: feed it bytes as they arrive, and
// repeatedly call Next until it reports no frame ready.
type Deframer struct {
	buf []byte
}

// Feed appends newly-read bytes to the internal buffer.
func (d *Deframer) Feed(b []byte) {
	d.buf = append(d.buf, b...)
}

// Next attempts to extract one complete frame's tag and fields from the
// buffer, resynchronizing on bad start bytes or checksum mismatches. It
// returns ok == false when no frame is ready yet (ErrIncomplete is not
// returned as an error here — ok communicates exactly that).
func (d *Deframer) Next() (tag byte, fields []byte, ok bool) {
	for {
		if len(d.buf) == 0 {
			return 0, nil, false
		}
		if d.buf[0] != StartByte {
			d.buf = d.buf[1:]
			continue
		}
		if len(d.buf) < headerLen+1 {
			return 0, nil, false
		}
		size := binary.LittleEndian.Uint32(d.buf[1:5])
		total := headerLen + int(size) + 1
		if len(d.buf) < total {
			return 0, nil, false
		}
		payload := d.buf[headerLen : headerLen+int(size)]
		want := d.buf[headerLen+int(size)]
		if checksum(payload) != want {
			// Resync: drop only the start byte and try again.
			d.buf = d.buf[1:]
			continue
		}
		if size < 1 {
			// No tag byte present — malformed; resync the same way.
			d.buf = d.buf[1:]
			continue
		}
		tag = payload[0]
		fields = append([]byte(nil), payload[1:]...)
		d.buf = d.buf[total:]
		return tag, fields, true
	}
}

// Pending reports how many unconsumed bytes remain buffered.
func (d *Deframer) Pending() int { return len(d.buf) }
