package firmware

import (
	"github.com/jangala-dev/liketrain-go/wire"
	"github.com/jangala-dev/liketrain-go/x/shmring"
)

// ingestBufferSize bounds the firmware's raw serial read buffer, the other
// of the two structures the firmware intentionally lets grow.
const ingestBufferSize = 128

// Ingest buffers raw incoming bytes from the firmware's serial/RS-485 input
// and deframes them into commands, executing each against a Dispatcher as
// soon as it is complete.
type Ingest struct {
	ring *shmring.Ring
	def  wire.Deframer
	disp *Dispatcher
}

func NewIngest(disp *Dispatcher) *Ingest {
	return &Ingest{ring: shmring.New(ingestBufferSize), disp: disp}
}

// Feed appends newly-received bytes and executes every command that
// deframes cleanly. Bytes beyond the ring's free space are dropped: the
// firmware has no flow control to push back on a malfunctioning sender.
func (ig *Ingest) Feed(b []byte) {
	ig.ring.TryWriteFrom(b)
	ig.pump()
}

func (ig *Ingest) pump() {
	var scratch [ingestBufferSize]byte
	for {
		n := ig.ring.TryReadInto(scratch[:])
		if n == 0 {
			break
		}
		ig.def.Feed(scratch[:n])
	}

	for {
		tag, fields, ok := ig.def.Next()
		if !ok {
			break
		}
		cmd, err := wire.DecodeCommand(tag, fields)
		if err != nil {
			continue
		}
		ig.disp.HandleIncoming(cmd)
	}
}
