//go:build rp2040 || rp2350

package main

import (
	"machine"

	"github.com/jangala-dev/liketrain-go/serial"
	"github.com/jangala-dev/liketrain-go/x/strx"
	"github.com/jangala-dev/tinygo-uartx/uartx"
)

// deEnablePin is the RS-485 transceiver's direction-enable GPIO, driven high
// while transmitting.
const deEnablePin = machine.Pin(2)

// openPort resolves cfg's serial_device/baud_rate onto the board's UART and
// wraps it with the RS-485 direction-enable toggle.
func openPort(cfg map[string]any) serial.Port {
	baud := uint32(115200)
	if b, ok := cfg["baud_rate"].(float64); ok {
		baud = uint32(b)
	}

	dev, _ := cfg["serial_device"].(string)
	u := uartByName(strx.Coalesce(dev, "uart0"))
	return serial.NewUARTPort(u, deEnablePin, baud, true)
}

func uartByName(name string) *uartx.UART {
	if name == "uart1" {
		return uartx.UART1
	}
	return uartx.UART0
}
