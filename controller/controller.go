package controller

import (
	"context"
	"os"
	"time"

	"github.com/jangala-dev/liketrain-go/route"
	"github.com/jangala-dev/liketrain-go/scheduler"
	"github.com/jangala-dev/liketrain-go/track"
	"github.com/jangala-dev/liketrain-go/wire"
	"github.com/jangala-dev/liketrain-go/x/fmtx"
)

// CommandSender writes a command out to the firmware. Every call must be
// non-blocking: the controller never blocks while holding controller
// state. A returned error means the channel/port has dropped and is fatal.
type CommandSender interface {
	Send(wire.HardwareCommand) error
}

// Controller is the live, process-local controller state described in the
// data model: section/switch state tables, reservations, per-section
// queues, and the scheduler.
type Controller struct {
	graph *track.Graph
	sched *scheduler.Scheduler
	cmd   CommandSender
	tel   Telemetry
	log   func(format string, args ...any)

	trains   map[track.TrainId]*route.Train
	occupant map[track.SectionId]track.TrainId // presence = occupied
	switchSt map[track.SwitchId]track.SwitchState
	reserved map[track.SectionId]track.TrainId // presence = reserved
	queues   map[track.SectionId][]track.TrainId
}

// New builds a controller over a finalized track graph and a command
// sender. Trains must be added with AddTrain before Run is called.
func New(g *track.Graph, cmd CommandSender) *Controller {
	return &Controller{
		graph:    g,
		sched:    scheduler.New(),
		cmd:      cmd,
		tel:      noopTelemetry{},
		log:      defaultLog,
		trains:   make(map[track.TrainId]*route.Train),
		occupant: make(map[track.SectionId]track.TrainId),
		switchSt: make(map[track.SwitchId]track.SwitchState),
		reserved: make(map[track.SectionId]track.TrainId),
		queues:   make(map[track.SectionId][]track.TrainId),
	}
}

func defaultLog(format string, args ...any) {
	_, _ = fmtx.Fprintf(os.Stderr, format+"\n", args...)
}

// SetTelemetry installs a non-nil observability sink.
func (c *Controller) SetTelemetry(t Telemetry) {
	if t != nil {
		c.tel = t
	}
}

// AddTrain registers a train under the given id.
func (c *Controller) AddTrain(id track.TrainId, t *route.Train) {
	c.trains[id] = t
}

// Run is the controller's single-threaded main loop: it blocks on whichever
// comes first, an incoming hardware event or the scheduler's next due
// time, and drains every due scheduled event before yielding back to the
// outer select.
func (c *Controller) Run(ctx context.Context, events <-chan wire.HardwareEvent) error {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		if err := c.drainScheduled(); err != nil {
			return err
		}

		d, ok := c.sched.NextEventDuration()
		if !ok {
			select {
			case <-ctx.Done():
				return nil
			case ev, chOk := <-events:
				if !chOk {
					return nil
				}
				if err := c.HandleHardwareEvent(ev); err != nil {
					return err
				}
			}
			continue
		}
		if d <= 0 {
			continue
		}

		timer.Reset(d)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return nil
		case ev, chOk := <-events:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			if !chOk {
				return nil
			}
			if err := c.HandleHardwareEvent(ev); err != nil {
				return err
			}
		case <-timer.C:
		}
	}
}

func (c *Controller) drainScheduled() error {
	for {
		ev, ok := c.sched.NextEvent()
		if !ok {
			return nil
		}
		var err error
		switch v := ev.(type) {
		case TrainEnteredSection:
			err = c.handleTrainEnteredSection(v)
		case TrainLeftSection:
			err = c.handleTrainLeftSection(v)
		}
		if err != nil {
			if err == ErrTrainNotFound {
				c.log("controller: dropping scheduled event for unknown train: %v", ev)
				continue
			}
			return err
		}
	}
}

// HandleHardwareEvent dispatches a single decoded wire event. Pong, Ack and
// DebugMessage are observability-only: they are logged or forwarded to
// telemetry and never change controller state.
func (c *Controller) HandleHardwareEvent(ev wire.HardwareEvent) error {
	switch v := ev.(type) {
	case wire.SectionEvent:
		id := track.SectionId(v.SectionID)
		if v.EventType == wire.SectionOccupied {
			return c.setSectionOccupied(id)
		}
		return c.setSectionFreed(id)
	case wire.SwitchStateChanged:
		id := track.SwitchId(wire.DecodeSwitchID(v.SwitchID))
		state := track.SwitchState(v.State)
		c.switchSt[id] = state
		c.tel.SwitchState(id, state)
	case wire.Pong:
		c.log("controller: pong from slave %d seq %d", v.SlaveID, v.Seq)
	case wire.Ack:
		// pure observability; never gates command emission.
	case wire.DebugMessage:
		c.tel.Debug(v.Text)
	}
	return nil
}
