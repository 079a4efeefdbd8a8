package controller

import (
	"github.com/jangala-dev/liketrain-go/track"
	"github.com/jangala-dev/liketrain-go/wire"
)

// setSectionOccupied implements the Hardware->Scheduled derivation for an
// Occupied event. See DESIGN.md for the preserved anomaly-handling open
// question: on zero or >1 candidate trains, occupancy is left unmutated.
func (c *Controller) setSectionOccupied(id track.SectionId) error {
	if prev, was := c.occupant[id]; was {
		c.log("controller: protocol violation: section %d already occupied by train %d", id, prev)
		return nil
	}

	var candidates []track.TrainId
	for tid, tr := range c.trains {
		if next, ok := tr.GetNextSection(); ok && next == id {
			candidates = append(candidates, tid)
		}
	}
	if len(candidates) != 1 {
		c.log("controller: anomaly: section %d occupied with %d candidate trains", id, len(candidates))
		return nil
	}

	tid := candidates[0]
	tr := c.trains[tid]
	tr.EnteredSection(id)
	c.occupant[id] = tid
	c.tel.SectionOccupancy(id, tid, true)
	c.sched.ScheduleNow(TrainEnteredSection{Train: tid, Section: id})
	return nil
}

// setSectionFreed implements the Hardware->Scheduled derivation for a Freed
// event.
func (c *Controller) setSectionFreed(id track.SectionId) error {
	tid, was := c.occupant[id]
	if !was {
		return nil
	}
	delete(c.occupant, id)
	c.tel.SectionOccupancy(id, tid, false)
	c.sched.ScheduleNow(TrainLeftSection{Train: tid, Section: id})
	return nil
}

func (c *Controller) handleTrainEnteredSection(ev TrainEnteredSection) error {
	tr, ok := c.trains[ev.Train]
	if !ok {
		return ErrTrainNotFound
	}
	transition := tr.GetTransitionToNextSection()
	if transition == nil {
		return nil // route exhausted
	}
	next := transition.Destination()

	if c.sectionAvailableFor(next, ev.Train) {
		c.reserve(next, ev.Train)
		for _, ch := range transition.RequiredSwitchChanges() {
			if err := c.emitSetSwitchState(ch.SwitchID, ch.State); err != nil {
				return err
			}
		}
		return c.emitSetSectionPower(next, track.Full)
	}

	if err := c.emitSetSectionPower(ev.Section, track.Off); err != nil {
		return err
	}
	c.enqueue(next, ev.Train)
	return nil
}

func (c *Controller) handleTrainLeftSection(ev TrainLeftSection) error {
	if holder, ok := c.reserved[ev.Section]; ok && holder == ev.Train {
		delete(c.reserved, ev.Section)
	}

	q := c.queues[ev.Section]
	if len(q) == 0 {
		return c.emitSetSectionPower(ev.Section, track.Off)
	}

	waiter := q[0]
	wTrain, ok := c.trains[waiter]
	if !ok {
		return ErrTrainNotFound
	}
	next, hasNext := wTrain.GetNextSection()
	if !hasNext || next != ev.Section {
		// The waiter has since been re-planned or is stale: stop, per the
		// spec's literal wording, without popping the queue.
		return nil
	}

	c.queues[ev.Section] = q[1:]
	c.reserve(ev.Section, waiter)

	if err := c.emitSetSectionPower(wTrain.CurrentSection(), track.Full); err != nil {
		return err
	}
	if transition := wTrain.GetTransitionToNextSection(); transition != nil {
		for _, ch := range transition.RequiredSwitchChanges() {
			if err := c.emitSetSwitchState(ch.SwitchID, ch.State); err != nil {
				return err
			}
		}
	}
	return c.emitSetSectionPower(ev.Section, track.Full)
}

// sectionAvailableFor reports whether section id can be reserved/entered by
// train t: not occupied by another train, and not reserved by another
// train. A train may hold its own reservation/occupancy.
func (c *Controller) sectionAvailableFor(id track.SectionId, t track.TrainId) bool {
	if occ, ok := c.occupant[id]; ok && occ != t {
		return false
	}
	if res, ok := c.reserved[id]; ok && res != t {
		return false
	}
	return true
}

func (c *Controller) reserve(id track.SectionId, t track.TrainId) {
	c.reserved[id] = t
}

func (c *Controller) enqueue(id track.SectionId, t track.TrainId) {
	for _, q := range c.queues[id] {
		if q == t {
			return // a train appears in at most one entry of one queue
		}
	}
	c.queues[id] = append(c.queues[id], t)
}

func (c *Controller) emitSetSectionPower(id track.SectionId, power track.SectionPower) error {
	if err := c.cmd.Send(wire.SetSectionPower{SectionID: uint32(id), Power: byte(power)}); err != nil {
		return ErrCommandSend
	}
	return nil
}

func (c *Controller) emitSetSwitchState(id track.SwitchId, state track.SwitchState) error {
	wireID, err := wire.EncodeSwitchID(string(id))
	if err != nil {
		return err
	}
	if err := c.cmd.Send(wire.SetSwitchState{SwitchID: wireID, State: byte(state)}); err != nil {
		return ErrCommandSend
	}
	return nil
}
