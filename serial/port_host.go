//go:build !rp2040 && !rp2350

package serial

import (
	"context"
	"sync"
)

// LoopbackPort is a host-side software Port: writes to it become readable
// on the paired end, for exercising the worker and firmware simulator
// without real hardware.
type LoopbackPort struct {
	mu   sync.Mutex
	rx   []byte
	rd   chan struct{}
	peer *LoopbackPort
}

// NewLoopbackPair returns two ports wired to each other's write side.
func NewLoopbackPair() (a, b *LoopbackPort) {
	a = &LoopbackPort{rd: make(chan struct{}, 1)}
	b = &LoopbackPort{rd: make(chan struct{}, 1)}
	a.peer, b.peer = b, a
	return a, b
}

func (p *LoopbackPort) Write(data []byte) (int, error) {
	peer := p.peer
	peer.mu.Lock()
	peer.rx = append(peer.rx, data...)
	peer.mu.Unlock()
	select {
	case peer.rd <- struct{}{}:
	default:
	}
	return len(data), nil
}

func (p *LoopbackPort) RecvSomeContext(ctx context.Context, dst []byte) (int, error) {
	if n := p.buffered(); n > 0 {
		return p.drain(dst), nil
	}
	select {
	case <-p.rd:
		return p.drain(dst), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (p *LoopbackPort) buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.rx)
}

func (p *LoopbackPort) drain(dst []byte) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := copy(dst, p.rx)
	p.rx = p.rx[n:]
	return n
}
