package controller

import (
	"testing"

	"github.com/jangala-dev/liketrain-go/bus"
	"github.com/jangala-dev/liketrain-go/track"
)

func TestBusTelemetryPublishesRetainedSectionOccupancy(t *testing.T) {
	b := bus.NewBus(4)
	publisher := b.NewConnection("controller")
	tel := NewBusTelemetry(publisher)

	tel.SectionOccupancy(22, 1, true)

	reader := b.NewConnection("reader")
	sub := reader.Subscribe(bus.T("state", "section", 22))
	defer sub.Unsubscribe()

	msg := <-sub.Channel()
	payload, ok := msg.Payload.(sectionOccupancyPayload)
	if !ok || payload.Occupant != 1 || !payload.Occupied {
		t.Fatalf("payload = %#v, want {Occupant:1 Occupied:true}", msg.Payload)
	}
}

func TestBusTelemetrySwitchState(t *testing.T) {
	b := bus.NewBus(4)
	tel := NewBusTelemetry(b.NewConnection("controller"))
	tel.SwitchState("pt1", track.Right)

	reader := b.NewConnection("reader")
	sub := reader.Subscribe(bus.T("state", "switch", "pt1"))
	defer sub.Unsubscribe()

	msg := <-sub.Channel()
	if msg.Payload.(track.SwitchState) != track.Right {
		t.Fatalf("payload = %v, want Right", msg.Payload)
	}
}
