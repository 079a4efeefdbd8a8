// Command liketrain-controller is the host daemon: it loads the track
// layout, starts a worker over the serial link to the master node, and runs
// the controller's event loop until the context is cancelled. For a
// self-contained demo (no real hardware attached) it pairs the worker with
// an in-process firmware.Node over a loopback port, so the binary is
// runnable end to end without a board.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jangala-dev/liketrain-go/bus"
	"github.com/jangala-dev/liketrain-go/config"
	"github.com/jangala-dev/liketrain-go/controller"
	"github.com/jangala-dev/liketrain-go/firmware"
	"github.com/jangala-dev/liketrain-go/route"
	"github.com/jangala-dev/liketrain-go/serial"
	"github.com/jangala-dev/liketrain-go/track"
	"github.com/jangala-dev/liketrain-go/ttl"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "liketrain-controller:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Resolve("master")
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}

	resource, _ := cfg["ttl_resource"].(string)
	if resource == "" {
		resource = "layout"
	}
	src, err := config.TTLResource(resource)
	if err != nil {
		return fmt.Errorf("load ttl resource: %w", err)
	}
	g, err := ttl.Load(src)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	b := bus.NewBus(16)
	cconn := b.NewConnection("config")
	svc := config.NewService()
	svc.Start(context.WithValue(ctx, config.CtxNodeKey, "master"), cconn)

	hostPort, mcuPort := serial.NewLoopbackPair()
	node := firmware.NewNode(mcuPort, firmware.Master(1, 2), nil)
	go node.Run(ctx)

	worker := serial.NewWorker(hostPort)
	go worker.Run(ctx)

	ctl := controller.New(g, worker)
	ctl.SetTelemetry(controller.NewBusTelemetry(b.NewConnection("telemetry")))

	r, err := route.New([]track.SectionId{10, 11, 20, 21, 24}, track.Forward, g)
	if err != nil {
		return fmt.Errorf("build route: %w", err)
	}
	ctl.AddTrain(1, route.NewTrain("A", r, 0))

	fmt.Println("liketrain-controller: running")
	return ctl.Run(ctx, worker.Events())
}
