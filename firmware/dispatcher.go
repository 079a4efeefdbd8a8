package firmware

import (
	"github.com/jangala-dev/liketrain-go/track"
	"github.com/jangala-dev/liketrain-go/wire"
)

// Dispatcher is the firmware's command execution core: local sections with
// their power sequencers, the node's bus mode, and the outbound event FIFO.
type Dispatcher struct {
	mode     NodeMode
	sections map[track.SectionId]*Sequencer
	outbound eventQueue
	forward  []wire.HardwareCommand // pending RS-485 forwards, Master only
}

// NewDispatcher builds a dispatcher for the given mode over the supplied
// locally-owned sections.
func NewDispatcher(mode NodeMode, sections map[track.SectionId]*Sequencer) *Dispatcher {
	if sections == nil {
		sections = make(map[track.SectionId]*Sequencer)
	}
	return &Dispatcher{mode: mode, sections: sections}
}

// Execute dispatches a single command and reports whether it was consumed
// locally. A false return means: on a Master, queue it for RS-485
// forwarding; on a Slave, it simply wasn't addressed here.
func (d *Dispatcher) Execute(cmd wire.HardwareCommand) bool {
	switch c := cmd.(type) {
	case wire.Ping:
		if SlaveId(c.SlaveID) != d.mode.localID() {
			return false
		}
		d.outbound.push(wire.Pong{SlaveID: c.SlaveID, Seq: c.Seq})
		return true

	case wire.SetSectionPower:
		seq, ok := d.sections[track.SectionId(c.SectionID)]
		if !ok {
			return false
		}
		_ = seq.SetPower(track.SectionPower(c.Power))
		return true

	case wire.ResetAll:
		for _, seq := range d.sections {
			_ = seq.SetPower(track.Off)
		}
		d.outbound.push(wire.Ack{})
		return false

	default:
		return false
	}
}

// HandleIncoming runs Execute and, on a Master whose command went
// unconsumed, enqueues it for the next RS-485 forwarding pass.
func (d *Dispatcher) HandleIncoming(cmd wire.HardwareCommand) {
	if d.Execute(cmd) {
		return
	}
	if d.mode.Kind == ModeMaster {
		d.forward = append(d.forward, cmd)
	}
}

// DrainEvents empties and returns the outbound event queue.
func (d *Dispatcher) DrainEvents() []wire.HardwareEvent {
	return d.outbound.drain()
}

// Tick is the Master's per-loop-iteration RS-485 pass: forward every
// pending command, then poll each configured slave and merge its drained
// events into this node's own outbound stream. A no-op on a Slave.
func (d *Dispatcher) Tick(bus Bus) error {
	if d.mode.Kind != ModeMaster {
		return nil
	}
	pending := d.forward
	d.forward = nil
	for _, cmd := range pending {
		if err := bus.Forward(cmd); err != nil {
			return err
		}
	}
	for _, id := range d.mode.SlaveIDs {
		resp, err := bus.Poll(PollRequest{SlaveID: id})
		if err != nil {
			return err
		}
		for _, ev := range resp.Events {
			d.outbound.push(ev)
		}
	}
	return nil
}

// CurrentPower exposes a locally-owned section's sequencer state; ok is
// false for a section this node doesn't own.
func (d *Dispatcher) CurrentPower(id track.SectionId) (track.SectionPower, bool) {
	seq, ok := d.sections[id]
	if !ok {
		return track.Off, false
	}
	return seq.CurrentPower(), true
}
