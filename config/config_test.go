package config

import (
	"context"
	"testing"
	"time"

	"github.com/jangala-dev/liketrain-go/bus"
)

func TestServicePublishEmbeddedRetainedPerKey(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(node string) ([]byte, bool) {
		if node != "master" {
			return nil, false
		}
		return []byte(`{
			"serial_device": "uart0",
			"baud_rate": 115200,
			"mode": "master"
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewService()

	ctx := context.WithValue(context.Background(), CtxNodeKey, "master")
	svc.Start(ctx, conn)

	sub := conn.Subscribe(bus.T(configPrefix, "+"))
	defer sub.Unsubscribe()

	wantCount := 3
	got := map[string]any{}
	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < wantCount && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			key, ok := m.Topic[1].(string)
			if !ok {
				t.Fatalf("topic[1] type %T, want string", m.Topic[1])
			}
			got[key] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(got) != wantCount {
		t.Fatalf("expected %d retained messages, got %d (%v)", wantCount, len(got), got)
	}
	if got["serial_device"] != "uart0" {
		t.Fatalf("serial_device = %#v, want \"uart0\"", got["serial_device"])
	}
	if got["mode"] != "master" {
		t.Fatalf("mode = %#v, want \"master\"", got["mode"])
	}
}

func TestServicePublishConfigMissingNode(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-missing-node")
	svc := NewService()

	if err := svc.publishConfig(context.Background(), conn); err == nil {
		t.Fatal("expected error for missing node id, got nil")
	}
}

func TestServicePublishConfigNoConfigFound(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(node string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(4)
	conn := b.NewConnection("test-no-config")
	svc := NewService()

	ctx := context.WithValue(context.Background(), CtxNodeKey, "unknown-node")
	if err := svc.publishConfig(ctx, conn); err == nil {
		t.Fatal("expected error for missing embedded config, got nil")
	}
}

func TestEmbeddedMasterConfigResolves(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("test-embedded")
	svc := NewService()

	ctx := context.WithValue(context.Background(), CtxNodeKey, "master")
	if err := svc.publishConfig(ctx, conn); err != nil {
		t.Fatalf("publishConfig: %v", err)
	}
}
