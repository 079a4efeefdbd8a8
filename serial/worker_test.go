package serial

import (
	"context"
	"testing"
	"time"

	"github.com/jangala-dev/liketrain-go/wire"
)

func TestWorkerRoundTripsPingPong(t *testing.T) {
	hostEnd, firmwareEnd := NewLoopbackPair()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWorker(hostEnd)
	go w.Run(ctx)

	if err := w.Send(wire.Ping{SlaveID: 0, Seq: 69}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// Simulate the firmware: read the command frame, decode it, and write
	// a Pong frame back.
	buf := make([]byte, 64)
	rctx, rcancel := context.WithTimeout(ctx, time.Second)
	n, err := firmwareEnd.RecvSomeContext(rctx, buf)
	rcancel()
	if err != nil {
		t.Fatalf("firmware recv: %v", err)
	}
	var def wire.Deframer
	def.Feed(buf[:n])
	tag, fields, ok := def.Next()
	if !ok {
		t.Fatal("firmware did not receive a complete frame")
	}
	cmd, err := wire.DecodeCommand(tag, fields)
	if err != nil {
		t.Fatalf("DecodeCommand: %v", err)
	}
	ping, ok := cmd.(wire.Ping)
	if !ok || ping.SlaveID != 0 || ping.Seq != 69 {
		t.Fatalf("decoded command = %#v, want Ping{0,69}", cmd)
	}
	if _, err := firmwareEnd.Write(wire.EncodeEvent(wire.Pong{SlaveID: 0, Seq: 69})); err != nil {
		t.Fatalf("firmware write: %v", err)
	}

	select {
	case ev := <-w.Events():
		pong, ok := ev.(wire.Pong)
		if !ok || pong.SlaveID != 0 || pong.Seq != 69 {
			t.Fatalf("event = %#v, want Pong{0,69}", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for decoded Pong event")
	}
}
