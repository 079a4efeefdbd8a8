package route

import (
	"testing"

	"github.com/jangala-dev/liketrain-go/track"
	"github.com/jangala-dev/liketrain-go/ttl"
)

const loopSource = `
S24: -> direct(S22) | <- direct(S21)
S22: -> direct(S21) | <- direct(S24)
S21: -> direct(S24) | <- direct(S22)
`

// TestRouteWalkLoop is end-to-end scenario 4: a closed 24 -> 22 -> 21 -> 24
// loop, walked Forward.
func TestRouteWalkLoop(t *testing.T) {
	g, err := ttl.Load(loopSource)
	if err != nil {
		t.Fatalf("ttl.Load: %v", err)
	}

	vias := []track.SectionId{24, 22, 21, 24}
	r, err := New(vias, track.Forward, g)
	if err != nil {
		t.Fatalf("route.New: %v", err)
	}
	if !r.IsClosed() {
		t.Fatal("expected a closed route")
	}
	if got := r.Transition(0).Destination(); got != 22 {
		t.Fatalf("transition(0).destination() = %d, want 22", got)
	}
	if got := r.Transition(1).Destination(); got != 21 {
		t.Fatalf("transition(1).destination() = %d, want 21", got)
	}
	if got := r.Transition(2).Destination(); got != 24 {
		t.Fatalf("transition(2).destination() = %d, want 24", got)
	}
}

func TestRouteNotWalkableIsRejected(t *testing.T) {
	g, err := ttl.Load(loopSource)
	if err != nil {
		t.Fatalf("ttl.Load: %v", err)
	}
	_, err = New([]track.SectionId{24, 21}, track.Forward, g)
	if err == nil {
		t.Fatal("expected an error: 24 has no forward transition directly to 21")
	}
}

func TestTrainProjection(t *testing.T) {
	g, err := ttl.Load(loopSource)
	if err != nil {
		t.Fatalf("ttl.Load: %v", err)
	}
	r, err := New([]track.SectionId{24, 22, 21, 24}, track.Forward, g)
	if err != nil {
		t.Fatalf("route.New: %v", err)
	}
	tr := NewTrain("A", r, 0)
	if tr.CurrentSection() != 24 {
		t.Fatalf("current section = %d, want 24", tr.CurrentSection())
	}
	next, ok := tr.GetNextSection()
	if !ok || next != 22 {
		t.Fatalf("next section = %d (ok=%v), want 22", next, ok)
	}
	tr.EnteredSection(22)
	if tr.CurrentSection() != 22 {
		t.Fatalf("after entering, current section = %d, want 22", tr.CurrentSection())
	}
}
