// Command liketrain-firmware is the on-device entrypoint: it resolves this
// node's embedded config, brings up the RS-485 UART, and runs a firmware
// Node against it until the process is killed.
package main

import (
	"context"
	"time"

	"github.com/jangala-dev/liketrain-go/bus"
	"github.com/jangala-dev/liketrain-go/config"
	"github.com/jangala-dev/liketrain-go/firmware"
	"github.com/jangala-dev/liketrain-go/serial"
	"github.com/jangala-dev/liketrain-go/wire"
)

// NodeID selects which embedded config (config/embedded/<NodeID>.json) this
// firmware image resolves on boot. Override at build time with
// -ldflags="-X main.NodeID=slave1".
var NodeID = "master"

func main() {
	time.Sleep(3 * time.Second) // let USB/clocks settle before first log line
	ctx := context.Background()

	println("[firmware] resolving config for node:", NodeID)
	cfg, err := config.Resolve(NodeID)
	if err != nil {
		println("[firmware] config resolve failed:", err.Error())
		for {
			time.Sleep(time.Second)
		}
	}

	b := bus.NewBus(4)
	conn := b.NewConnection("firmware")
	svc := config.NewService()
	svc.Start(context.WithValue(ctx, config.CtxNodeKey, NodeID), conn)

	mode := modeFromConfig(cfg)
	port := openPort(cfg)
	node := firmware.NewNode(port, mode, rs485Bus{port})

	println("[firmware] node running, mode kind:", int(mode.Kind))
	node.Run(ctx)
}

func modeFromConfig(cfg map[string]any) firmware.NodeMode {
	modeStr, _ := cfg["mode"].(string)
	if modeStr == "slave" {
		id, _ := cfg["slave_id"].(float64)
		return firmware.Slave(firmware.SlaveId(id))
	}
	var ids []firmware.SlaveId
	if raw, ok := cfg["slave_ids"].([]any); ok {
		for _, v := range raw {
			if f, ok := v.(float64); ok {
				ids = append(ids, firmware.SlaveId(f))
			}
		}
	}
	return firmware.Master(ids...)
}

// rs485Bus forwards a Master's locally-unconsumed commands over the same
// physical RS-485 port the slaves listen on. Polling returns no events: this
// reference build has no separate multi-drop poll-response framing of its
// own yet; see cmd/liketrain-firmware-sim for the in-process test bed that
// wires real slave Nodes behind Poll.
type rs485Bus struct {
	port serial.Port
}

func (b rs485Bus) Forward(cmd wire.HardwareCommand) error {
	_, err := b.port.Write(wire.EncodeCommand(cmd))
	return err
}

func (b rs485Bus) Poll(req firmware.PollRequest) (firmware.PollResponse, error) {
	return firmware.PollResponse{SlaveID: req.SlaveID}, nil
}
