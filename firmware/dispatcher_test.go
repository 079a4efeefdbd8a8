package firmware

import (
	"testing"

	"github.com/jangala-dev/liketrain-go/track"
	"github.com/jangala-dev/liketrain-go/wire"
)

func TestExecuteSetSectionPowerOnOwnedSection(t *testing.T) {
	relays := &fakeRelays{}
	sections := map[track.SectionId]*Sequencer{24: NewSequencer(relays)}
	d := NewDispatcher(Slave(1), sections)

	consumed := d.Execute(wire.SetSectionPower{SectionID: 24, Power: byte(track.Full)})
	if !consumed {
		t.Fatal("SetSectionPower on an owned section must return true")
	}
	p, ok := d.CurrentPower(24)
	if !ok || p != track.Full {
		t.Fatalf("CurrentPower(24) = %v, %v; want Full, true", p, ok)
	}
}

func TestExecuteSetSectionPowerUnownedForwards(t *testing.T) {
	d := NewDispatcher(Master(2), nil)
	d.HandleIncoming(wire.SetSectionPower{SectionID: 99, Power: byte(track.Full)})
	if len(d.forward) != 1 {
		t.Fatalf("expected command queued for forwarding, got %d", len(d.forward))
	}
}

func TestExecutePingMatchingID(t *testing.T) {
	d := NewDispatcher(Slave(7), nil)
	if !d.Execute(wire.Ping{SlaveID: 7, Seq: 42}) {
		t.Fatal("Ping addressed to this slave must be consumed")
	}
	events := d.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 pong, got %d", len(events))
	}
	pong, ok := events[0].(wire.Pong)
	if !ok || pong.SlaveID != 7 || pong.Seq != 42 {
		t.Fatalf("event = %#v, want Pong{7,42}", events[0])
	}
}

func TestExecutePingOtherSlaveNotConsumed(t *testing.T) {
	d := NewDispatcher(Slave(7), nil)
	if d.Execute(wire.Ping{SlaveID: 8, Seq: 1}) {
		t.Fatal("Ping addressed elsewhere must not be consumed")
	}
	if len(d.DrainEvents()) != 0 {
		t.Fatal("no pong should have been queued")
	}
}

func TestResetAllReturnsFalseAndZeroesSections(t *testing.T) {
	relays := &fakeRelays{}
	sections := map[track.SectionId]*Sequencer{5: NewSequencer(relays)}
	d := NewDispatcher(Master(1), sections)
	_ = d.Execute(wire.SetSectionPower{SectionID: 5, Power: byte(track.Full)})

	if d.Execute(wire.ResetAll{}) {
		t.Fatal("ResetAll must return false so the master also forwards it to slaves")
	}
	p, _ := d.CurrentPower(5)
	if p != track.Off {
		t.Fatalf("CurrentPower(5) = %v, want Off after ResetAll", p)
	}

	events := d.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event after ResetAll, got %d", len(events))
	}
	if _, ok := events[0].(wire.Ack); !ok {
		t.Fatalf("event = %#v, want Ack", events[0])
	}
}

type fakeBus struct {
	forwarded []wire.HardwareCommand
	responses map[SlaveId]PollResponse
}

func (b *fakeBus) Forward(cmd wire.HardwareCommand) error {
	b.forwarded = append(b.forwarded, cmd)
	return nil
}

func (b *fakeBus) Poll(req PollRequest) (PollResponse, error) {
	return b.responses[req.SlaveID], nil
}

func TestMasterTickForwardsAndMergesSlaveEvents(t *testing.T) {
	d := NewDispatcher(Master(3), nil)
	d.HandleIncoming(wire.SetSwitchState{State: byte(track.Left)}) // unrecognized by C7, always forwarded

	bus := &fakeBus{
		responses: map[SlaveId]PollResponse{
			3: {SlaveID: 3, Events: []wire.HardwareEvent{wire.Pong{SlaveID: 3, Seq: 1}}},
		},
	}
	if err := d.Tick(bus); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(bus.forwarded) != 1 {
		t.Fatalf("expected 1 forwarded command, got %d", len(bus.forwarded))
	}
	events := d.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 merged event, got %d", len(events))
	}
}

func TestSlaveTickIsNoOp(t *testing.T) {
	d := NewDispatcher(Slave(1), nil)
	bus := &fakeBus{}
	if err := d.Tick(bus); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(bus.forwarded) != 0 {
		t.Fatal("a slave never drives RS-485 polling/forwarding itself")
	}
}

func TestOutboundEventQueueDropsOldest(t *testing.T) {
	d := NewDispatcher(Slave(1), nil)
	for i := 0; i < maxOutboundEvents+5; i++ {
		d.Execute(wire.Ping{SlaveID: 1, Seq: uint32(i)})
	}
	events := d.DrainEvents()
	if len(events) != maxOutboundEvents {
		t.Fatalf("queue len = %d, want %d", len(events), maxOutboundEvents)
	}
	first := events[0].(wire.Pong)
	if first.Seq != 5 {
		t.Fatalf("oldest surviving seq = %d, want 5 (5 dropped)", first.Seq)
	}
}
