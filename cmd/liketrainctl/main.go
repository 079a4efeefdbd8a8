// Command liketrainctl is an operator debug REPL: it tokenizes typed
// command lines with a shell-style lexer and sends the resulting
// wire.HardwareCommand over a serial port, printing every event that comes
// back. Built against a local firmware.Node over a loopback pair by
// default, useful for poking at the wire protocol without real hardware.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/jangala-dev/liketrain-go/firmware"
	"github.com/jangala-dev/liketrain-go/serial"
	"github.com/jangala-dev/liketrain-go/wire"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctlPort, nodePort := serial.NewLoopbackPair()
	node := firmware.NewNode(nodePort, firmware.Slave(1), nil)
	go node.Run(ctx)
	go printEvents(ctx, ctlPort)

	fmt.Println("liketrainctl: ping <slave> <seq> | power <section> <level 0-4> | switch <name> left|right | reset | quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		toks, err := shlex.Split(line)
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}
		cmd, quit, err := parseCommand(toks)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if quit {
			return
		}
		if _, err := ctlPort.Write(wire.EncodeCommand(cmd)); err != nil {
			fmt.Println("send error:", err)
		}
	}
}

func parseCommand(toks []string) (wire.HardwareCommand, bool, error) {
	if len(toks) == 0 {
		return nil, false, fmt.Errorf("empty command")
	}
	switch toks[0] {
	case "quit", "exit":
		return nil, true, nil
	case "reset":
		return wire.ResetAll{}, false, nil
	case "ping":
		if len(toks) != 3 {
			return nil, false, fmt.Errorf("usage: ping <slave> <seq>")
		}
		slave, err := strconv.ParseUint(toks[1], 10, 32)
		if err != nil {
			return nil, false, err
		}
		seq, err := strconv.ParseUint(toks[2], 10, 32)
		if err != nil {
			return nil, false, err
		}
		return wire.Ping{SlaveID: uint32(slave), Seq: uint32(seq)}, false, nil
	case "power":
		if len(toks) != 3 {
			return nil, false, fmt.Errorf("usage: power <section> <level 0-4>")
		}
		section, err := strconv.ParseUint(toks[1], 10, 32)
		if err != nil {
			return nil, false, err
		}
		level, err := strconv.ParseUint(toks[2], 10, 8)
		if err != nil || level > 4 {
			return nil, false, fmt.Errorf("level must be 0-4")
		}
		return wire.SetSectionPower{SectionID: uint32(section), Power: byte(level)}, false, nil
	case "switch":
		if len(toks) != 3 {
			return nil, false, fmt.Errorf("usage: switch <name> left|right")
		}
		id, err := wire.EncodeSwitchID(toks[1])
		if err != nil {
			return nil, false, err
		}
		var state byte
		switch toks[2] {
		case "left":
			state = 0
		case "right":
			state = 1
		default:
			return nil, false, fmt.Errorf("state must be left or right")
		}
		return wire.SetSwitchState{SwitchID: id, State: state}, false, nil
	default:
		return nil, false, fmt.Errorf("unknown command: %s", toks[0])
	}
}

func printEvents(ctx context.Context, port serial.Port) {
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
			fmt.Printf("< %#v\n", ev)
		}
	}
}
