// Package config resolves a node's embedded JSON configuration (which
// serial port/baud to open, which TTL layout resource to load, and its
// NodeMode) and publishes each field as a retained message on the internal
// bus, the way the rest of the system learns its own configuration.
package config

import (
	"context"
	"embed"
	"errors"

	"github.com/andreyvit/tinyjson"
	"github.com/jangala-dev/liketrain-go/bus"
)

//go:embed embedded/*.json embedded/*.ttl
var embeddedFS embed.FS

const (
	serviceName  = "config"
	configPrefix = "config"
)

type ctxKey string

// CtxNodeKey is the context key under which the node id to resolve config
// for must be set.
const CtxNodeKey ctxKey = "node"

// EmbeddedConfigLookup resolves a node id to its raw embedded JSON config.
// Overridable for tests.
var EmbeddedConfigLookup = func(node string) ([]byte, bool) {
	b, err := embeddedFS.ReadFile("embedded/" + node + ".json")
	if err != nil {
		return nil, false
	}
	return b, true
}

// Service publishes a node's resolved config onto the bus on start.
type Service struct {
	Name string
}

func NewService() *Service {
	return &Service{Name: serviceName}
}

// Resolve reads and parses the node's embedded config into its top-level
// fields, without touching the bus. main.go and cmd/liketrain-controller
// use this directly; publishConfig below re-exposes the same fields as
// retained bus messages for any component that wants to read its own slice
// of config independently.
func Resolve(node string) (map[string]any, error) {
	if node == "" {
		return nil, errors.New("config: missing node id")
	}

	raw, ok := EmbeddedConfigLookup(node)
	if !ok || len(raw) == 0 {
		return nil, errors.New("config: no embedded config for node: " + node)
	}

	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return nil, errors.New("config: embedded config is not a JSON object")
	}
	return m, nil
}

// TTLResource reads an embedded TTL layout resource by name (without
// extension), e.g. "layout" for config/embedded/layout.ttl.
func TTLResource(name string) (string, error) {
	b, err := embeddedFS.ReadFile("embedded/" + name + ".ttl")
	if err != nil {
		return "", errors.New("config: no embedded TTL resource: " + name)
	}
	return string(b), nil
}

// publishConfig reads the node's embedded config and publishes each
// top-level field as a retained config/<key> message.
func (s *Service) publishConfig(ctx context.Context, conn *bus.Connection) error {
	node, _ := ctx.Value(CtxNodeKey).(string)
	if node == "" {
		return errors.New("config: missing node id in context")
	}

	m, err := Resolve(node)
	if err != nil {
		return err
	}

	for k, v := range m {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go func() { _ = s.publishConfig(ctx, conn) }()
}
