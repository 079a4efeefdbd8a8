package firmware

import (
	"context"
	"time"

	"github.com/jangala-dev/liketrain-go/serial"
	"github.com/jangala-dev/liketrain-go/wire"
)

const (
	nodeTickInterval = 10 * time.Millisecond
	nodeReadTimeout  = 20 * time.Millisecond
	nodeReadBufSize  = 256
)

// Node drives a Dispatcher against a live serial.Port: deframe incoming
// commands, dispatch them, flush the outbound event queue onto the wire,
// and run the Master's per-tick RS-485 forward/poll pass. Used by the
// on-device firmware entrypoint and by the host-side firmware simulator.
type Node struct {
	Port       serial.Port
	Dispatcher *Dispatcher
	Bus        Bus // nil is valid: Tick no-ops without an RS-485 transport

	ingest *Ingest
}

// NewNode builds a Node over the demo layout's section ownership for mode.
func NewNode(port serial.Port, mode NodeMode, bus Bus) *Node {
	disp := NewDispatcher(mode, DefaultSections(mode))
	return &Node{Port: port, Dispatcher: disp, Bus: bus, ingest: NewIngest(disp)}
}

// Run ticks the node until ctx is cancelled.
func (n *Node) Run(ctx context.Context) {
	raw := make([]byte, nodeReadBufSize)
	ticker := time.NewTicker(nodeTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.tick(ctx, raw)
		}
	}
}

func (n *Node) tick(ctx context.Context, raw []byte) {
	rctx, cancel := context.WithTimeout(ctx, nodeReadTimeout)
	nRead, err := n.Port.RecvSomeContext(rctx, raw)
	cancel()
	if err == nil && nRead > 0 {
		n.ingest.Feed(raw[:nRead])
	}

	for _, ev := range n.Dispatcher.DrainEvents() {
		_, _ = n.Port.Write(wire.EncodeEvent(ev))
	}

	if n.Bus != nil {
		_ = n.Dispatcher.Tick(n.Bus)
	}
}
