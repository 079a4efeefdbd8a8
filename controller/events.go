package controller

import "github.com/jangala-dev/liketrain-go/track"

// Scheduled events are the second of the two event sources the controller's
// single-threaded handler drains, alongside hardware events arriving over
// the wire.

type TrainEnteredSection struct {
	Train   track.TrainId
	Section track.SectionId
}

type TrainLeftSection struct {
	Train   track.TrainId
	Section track.SectionId
}

// Telemetry is a pure observability sink: section/switch state transitions
// and firmware debug messages are published here, never in the critical
// path of command/event delivery. A nil Telemetry is a valid no-op.
type Telemetry interface {
	SectionOccupancy(id track.SectionId, occupant track.TrainId, occupied bool)
	SwitchState(id track.SwitchId, state track.SwitchState)
	Debug(msg string)
}

type noopTelemetry struct{}

func (noopTelemetry) SectionOccupancy(track.SectionId, track.TrainId, bool) {}
func (noopTelemetry) SwitchState(track.SwitchId, track.SwitchState)         {}
func (noopTelemetry) Debug(string)                                         {}
