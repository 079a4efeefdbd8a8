package firmware

import "github.com/jangala-dev/liketrain-go/wire"

// maxOutboundEvents bounds the firmware's outbound event queue; the
// firmware intentionally does very little dynamic allocation, and this is
// one of the two structures that grow.
const maxOutboundEvents = 32

// eventQueue is a drop-oldest FIFO of pending HardwareEvent to emit.
type eventQueue struct {
	buf []wire.HardwareEvent
}

func (q *eventQueue) push(ev wire.HardwareEvent) {
	if len(q.buf) >= maxOutboundEvents {
		q.buf = q.buf[1:]
	}
	q.buf = append(q.buf, ev)
}

// drain returns every queued event, oldest first, and empties the queue.
func (q *eventQueue) drain() []wire.HardwareEvent {
	out := q.buf
	q.buf = nil
	return out
}

func (q *eventQueue) len() int { return len(q.buf) }
