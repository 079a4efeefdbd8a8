package firmware

import "github.com/jangala-dev/liketrain-go/wire"

// PollRequest/PollResponse are the master's internal, non-C1-host-facing
// poll exchange with a slave over the RS-485 bus: at-most-once delivery, no
// ordering guarantee across slaves. Each HardwareEvent inside a response is
// still framed with the wire codec when it actually crosses the bus; Bus
// implementations own that framing.
type PollRequest struct {
	SlaveID SlaveId
}

type PollResponse struct {
	SlaveID SlaveId
	Events  []wire.HardwareEvent
}

// Bus is the RS-485 transport a Master dispatcher drives: forwarding
// locally-unconsumed commands, and polling each configured slave for its
// pending outbound events.
type Bus interface {
	Forward(cmd wire.HardwareCommand) error
	Poll(req PollRequest) (PollResponse, error)
}
