//go:build rp2040 || rp2350

package serial

import (
	"context"
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

// UARTPort wraps a tinygo-uartx UART as a Port, driving an external RS-485
// transceiver's direction-enable pin around every write: high (driver
// enabled) for the duration of the transmission, then back to receive.
type UARTPort struct {
	u      *uartx.UART
	de     machine.Pin
	deHigh bool
}

// DEPinSettleTime covers the transceiver's own driver-enable propagation
// delay; it is well under one wire byte time at any baud rate this bus
// runs at.
const DEPinSettleTime = 50 * time.Microsecond

// NewUARTPort configures baud on u and de as a push-pull output, idling in
// receive (de driven to !deHigh, i.e. low when deHigh is true).
func NewUARTPort(u *uartx.UART, de machine.Pin, baud uint32, deHigh bool) *UARTPort {
	_ = u.Configure(uartx.UARTConfig{})
	u.SetBaudRate(baud)
	de.Configure(machine.PinConfig{Mode: machine.PinOutput})
	de.Set(!deHigh)
	return &UARTPort{u: u, de: de, deHigh: deHigh}
}

func (p *UARTPort) Write(data []byte) (int, error) {
	p.de.Set(p.deHigh)
	time.Sleep(DEPinSettleTime)
	n, err := p.u.Write(data)
	time.Sleep(DEPinSettleTime)
	p.de.Set(!p.deHigh)
	return n, err
}

func (p *UARTPort) RecvSomeContext(ctx context.Context, dst []byte) (int, error) {
	return p.u.RecvSomeContext(ctx, dst)
}
