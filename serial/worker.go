package serial

import (
	"context"
	"time"

	"github.com/jangala-dev/liketrain-go/wire"
)

const (
	tickInterval = 10 * time.Millisecond
	readTimeout  = 20 * time.Millisecond
	readBufSize  = 256
	cmdBufSize   = 16
)

// Code is a stable, comparable error identifier for the serial layer.
type Code string

func (c Code) Error() string { return string(c) }

// ErrCommandQueueFull means the writer goroutine can't keep up; this is
// fatal for the controller's CommandSender contract.
const ErrCommandQueueFull Code = "serial: command queue full"

// Worker owns a serial Port and bridges it to the wire codec: a ticking
// reader drains complete frames into HardwareEvent, a writer drains
// commands onto the wire in emission order.
type Worker struct {
	port   Port
	cmds   chan wire.HardwareCommand
	events *eventQueue
	out    chan wire.HardwareEvent
}

// NewWorker builds a worker over port. Call Run to start it.
func NewWorker(port Port) *Worker {
	return &Worker{
		port:   port,
		cmds:   make(chan wire.HardwareCommand, cmdBufSize),
		events: newEventQueue(),
		out:    make(chan wire.HardwareEvent),
	}
}

// Events is the decoded, arrival-ordered hardware event stream.
func (w *Worker) Events() <-chan wire.HardwareEvent { return w.out }

// Send implements controller.CommandSender: a non-blocking enqueue for the
// writer goroutine.
func (w *Worker) Send(cmd wire.HardwareCommand) error {
	select {
	case w.cmds <- cmd:
		return nil
	default:
		return ErrCommandQueueFull
	}
}

// Run drives the reader ticker, the command writer, and the event
// forwarder until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	done := make(chan struct{})
	go func() { defer close(done); w.forward(ctx) }()
	go w.write(ctx)
	w.read(ctx)
	<-done
}

func (w *Worker) read(ctx context.Context) {
	var def wire.Deframer
	buf := make([]byte, readBufSize)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rctx, cancel := context.WithTimeout(ctx, readTimeout)
			n, err := w.port.RecvSomeContext(rctx, buf)
			cancel()
			if err != nil || n <= 0 {
				continue
			}
			def.Feed(buf[:n])
			for {
				tag, fields, ok := def.Next()
				if !ok {
					break
				}
				ev, err := wire.DecodeEvent(tag, fields)
				if err != nil {
					continue
				}
				w.events.push(ev)
			}
		}
	}
}

func (w *Worker) write(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-w.cmds:
			_, _ = w.port.Write(wire.EncodeCommand(cmd))
		}
	}
}

func (w *Worker) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.events.notify:
			for _, ev := range w.events.popAll() {
				select {
				case w.out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
