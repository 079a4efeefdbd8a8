// Command liketrain-firmware-sim runs a whole master+slaves firmware mesh
// in one host process, wired entirely over software serial.LoopbackPort
// pairs: no real RS-485 hardware required. It sends a short scripted
// sequence of host commands at the simulated master and prints every
// decoded event coming back, useful for exercising the wire protocol and
// the dispatcher without a board.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jangala-dev/liketrain-go/firmware"
	"github.com/jangala-dev/liketrain-go/serial"
	"github.com/jangala-dev/liketrain-go/wire"
)

// simBus routes a Master Node's RS-485 traffic to in-process slave Nodes:
// Forward broadcasts onto every slave's listening port, the way a shared
// RS-485 bus reaches every drop; Poll reads a slave's pending events
// directly rather than re-framing them over a loopback port, since the
// poll exchange is explicitly internal to the bus implementation.
type simBus struct {
	slavePorts map[firmware.SlaveId]serial.Port
	slaveNodes map[firmware.SlaveId]*firmware.Node
}

func (b *simBus) Forward(cmd wire.HardwareCommand) error {
	frame := wire.EncodeCommand(cmd)
	for _, p := range b.slavePorts {
		if _, err := p.Write(frame); err != nil {
			return err
		}
	}
	return nil
}

func (b *simBus) Poll(req firmware.PollRequest) (firmware.PollResponse, error) {
	n, ok := b.slaveNodes[req.SlaveID]
	if !ok {
		return firmware.PollResponse{}, firmware.ErrUnknownSlave
	}
	return firmware.PollResponse{SlaveID: req.SlaveID, Events: n.Dispatcher.DrainEvents()}, nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slave1Host, slave1Bus := serial.NewLoopbackPair()
	slave2Host, slave2Bus := serial.NewLoopbackPair()

	slave1 := firmware.NewNode(slave1Bus, firmware.Slave(1), nil)
	slave2 := firmware.NewNode(slave2Bus, firmware.Slave(2), nil)

	bus := &simBus{
		slavePorts: map[firmware.SlaveId]serial.Port{1: slave1Host, 2: slave2Host},
		slaveNodes: map[firmware.SlaveId]*firmware.Node{1: slave1, 2: slave2},
	}

	hostPort, masterBus := serial.NewLoopbackPair()
	master := firmware.NewNode(masterBus, firmware.Master(1, 2), bus)

	go slave1.Run(ctx)
	go slave2.Run(ctx)
	go master.Run(ctx)

	go printIncomingEvents(ctx, hostPort)

	script := []wire.HardwareCommand{
		wire.Ping{SlaveID: 1, Seq: 1},
		wire.Ping{SlaveID: 2, Seq: 1},
		wire.SetSectionPower{SectionID: 20, Power: byte(3)},
		wire.SetSectionPower{SectionID: 24, Power: byte(4)},
	}
	for _, cmd := range script {
		_, _ = hostPort.Write(wire.EncodeCommand(cmd))
		time.Sleep(200 * time.Millisecond)
	}

	time.Sleep(2 * time.Second)
}

func printIncomingEvents(ctx context.Context, port serial.Port) {
	var def wire.Deframer
	buf := make([]byte, 256)
	for {
		rctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		n, err := port.RecvSomeContext(rctx, buf)
		cancel()
		if ctx.Err() != nil {
			return
		}
		if err != nil || n <= 0 {
			continue
		}
		def.Feed(buf[:n])
		for {
			tag, fields, ok := def.Next()
			if !ok {
				break
			}
			ev, err := wire.DecodeEvent(tag, fields)
			if err != nil {
				continue
			}
			fmt.Printf("[sim] event: %#v\n", ev)
		}
	}
}
