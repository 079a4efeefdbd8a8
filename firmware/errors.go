// Package firmware is the MCU-side counterpart to package controller: a
// command dispatcher (execute locally, forward to RS-485, drain outbound
// events) sitting atop a break-before-make section power sequencer.
package firmware

// Code is a stable, comparable error identifier for the firmware layer.
type Code string

func (c Code) Error() string { return string(c) }

const (
	// ErrPinError means a relay failed to open or close. current_power()
	// still reports the commanded target; the caller is expected to retry
	// or issue ResetAll.
	ErrPinError Code = "firmware: relay pin error"
	// ErrUnknownSlave is returned by a Bus when polled/forwarded to a slave
	// id the bus has no route for.
	ErrUnknownSlave Code = "firmware: unknown slave id"
)
