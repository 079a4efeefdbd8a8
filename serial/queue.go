package serial

import (
	"sync"

	"github.com/jangala-dev/liketrain-go/wire"
)

// eventQueue is the unbounded buffer behind the worker's event-out channel:
// the reader goroutine's push never blocks or drops, only the final
// forwarding send to the consumer-facing channel can apply backpressure.
type eventQueue struct {
	mu     sync.Mutex
	buf    []wire.HardwareEvent
	notify chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{notify: make(chan struct{}, 1)}
}

func (q *eventQueue) push(ev wire.HardwareEvent) {
	q.mu.Lock()
	q.buf = append(q.buf, ev)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *eventQueue) popAll() []wire.HardwareEvent {
	q.mu.Lock()
	out := q.buf
	q.buf = nil
	q.mu.Unlock()
	return out
}
