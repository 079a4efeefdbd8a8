// Package serial is the ambient host I/O worker described in spec.md §5: a
// dedicated goroutine owning the serial port, ticking at a fixed interval,
// draining complete wire frames into events and commands onto the wire in
// emission order. It never touches controller state.
package serial

import "context"

// Port is the minimal transport the worker drives: a synchronous write and
// a context-bounded receive. Concrete implementations live in
// port_host.go (software loopback) and port_rp2xxx.go (real RS-485 UART),
// split by build tag the way the teacher splits its platform factories.
type Port interface {
	Write(p []byte) (int, error)
	RecvSomeContext(ctx context.Context, p []byte) (int, error)
}
