//go:build !rp2040 && !rp2350

package main

import "github.com/jangala-dev/liketrain-go/serial"

// openPort returns a software loopback endpoint on host builds: there is no
// real RS-485 transceiver to open, so the near end is simply left
// unconnected (its peer is never read) for local compilation and testing.
func openPort(cfg map[string]any) serial.Port {
	near, _ := serial.NewLoopbackPair()
	return near
}
