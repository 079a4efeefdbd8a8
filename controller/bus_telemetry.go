package controller

import (
	"github.com/jangala-dev/liketrain-go/bus"
	"github.com/jangala-dev/liketrain-go/track"
	"github.com/jangala-dev/liketrain-go/x/timex"
)

// BusTelemetry publishes controller state transitions on the internal
// pub/sub bus: state/section/<id> and state/switch/<id> as retained
// messages, debug as non-retained ones. It never gates command emission — a slow or absent subscriber
// cannot stall the controller, since Publish only ever does non-blocking,
// drop-oldest sends.
type BusTelemetry struct {
	conn *bus.Connection
}

// NewBusTelemetry wraps a bus connection as a Telemetry sink.
func NewBusTelemetry(conn *bus.Connection) *BusTelemetry {
	return &BusTelemetry{conn: conn}
}

type sectionOccupancyPayload struct {
	Occupant track.TrainId
	Occupied bool
	AtMs     int64
}

func (t *BusTelemetry) SectionOccupancy(id track.SectionId, occupant track.TrainId, occupied bool) {
	t.conn.Publish(t.conn.NewMessage(
		bus.T("state", "section", int(id)),
		sectionOccupancyPayload{Occupant: occupant, Occupied: occupied, AtMs: timex.NowMs()},
		true,
	))
}

func (t *BusTelemetry) SwitchState(id track.SwitchId, state track.SwitchState) {
	t.conn.Publish(t.conn.NewMessage(
		bus.T("state", "switch", string(id)),
		state,
		true,
	))
}

func (t *BusTelemetry) Debug(msg string) {
	t.conn.Publish(t.conn.NewMessage(bus.T("debug"), msg, false))
}
