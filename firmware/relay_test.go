package firmware

import (
	"errors"
	"testing"
	"time"

	"github.com/jangala-dev/liketrain-go/track"
)

type fakeRelays struct {
	closed   []track.SectionPower
	opened   []track.SectionPower
	failOpen map[track.SectionPower]bool
}

func (f *fakeRelays) Close(level track.SectionPower) error {
	f.closed = append(f.closed, level)
	return nil
}

func (f *fakeRelays) Open(level track.SectionPower) error {
	f.opened = append(f.opened, level)
	if f.failOpen != nil && f.failOpen[level] {
		return errors.New("stuck relay")
	}
	return nil
}

// TestSingleSectionPower is end-to-end scenario 2: SetSectionPower{24,Full}
// ends with the sequencer at Full having closed exactly relay D (the fourth
// relay, the one for Full; the fake records each relay by the level it
// represents).
func TestSingleSectionPower(t *testing.T) {
	relays := &fakeRelays{}
	seq := NewSequencer(relays)

	if err := seq.SetPower(track.Full); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	if seq.CurrentPower() != track.Full {
		t.Fatalf("CurrentPower = %v, want Full", seq.CurrentPower())
	}
	if len(relays.closed) != 1 || relays.closed[0] != track.Full {
		t.Fatalf("closed relays = %v, want exactly [Full]", relays.closed)
	}
	if len(relays.opened) != 0 {
		t.Fatalf("opened relays = %v, want none (Off->L never opens)", relays.opened)
	}
}

// TestBreakBeforeMakeTiming is end-to-end scenario 3: a non-off-to-non-off
// transition opens the old relay, waits the fixed dwell, then closes the
// new one, in that order with no overlap.
func TestBreakBeforeMakeTiming(t *testing.T) {
	relays := &fakeRelays{}
	seq := NewSequencer(relays)

	if err := seq.SetPower(track.Half); err != nil {
		t.Fatalf("initial SetPower: %v", err)
	}

	var slept time.Duration
	seq.sleep = func(d time.Duration) { slept = d }

	if err := seq.SetPower(track.ThreeQuarters); err != nil {
		t.Fatalf("SetPower: %v", err)
	}

	if slept != SwitchingDelay {
		t.Fatalf("dwell = %v, want %v", slept, SwitchingDelay)
	}
	if len(relays.opened) != 1 || relays.opened[0] != track.Half {
		t.Fatalf("opened = %v, want exactly [Half]", relays.opened)
	}
	if len(relays.closed) != 2 || relays.closed[0] != track.Half || relays.closed[1] != track.ThreeQuarters {
		t.Fatalf("closed = %v, want [Half, ThreeQuarters]", relays.closed)
	}
	if seq.CurrentPower() != track.ThreeQuarters {
		t.Fatalf("CurrentPower = %v, want ThreeQuarters", seq.CurrentPower())
	}
}

func TestOffToOffIsNoOp(t *testing.T) {
	relays := &fakeRelays{}
	seq := NewSequencer(relays)
	if err := seq.SetPower(track.Off); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	if len(relays.opened)+len(relays.closed) != 0 {
		t.Fatal("Off->Off should not touch any relay")
	}
}

func TestLToOff(t *testing.T) {
	relays := &fakeRelays{}
	seq := NewSequencer(relays)
	_ = seq.SetPower(track.Quarter)
	relays.closed = nil
	if err := seq.SetPower(track.Off); err != nil {
		t.Fatalf("SetPower: %v", err)
	}
	if len(relays.opened) != 1 || relays.opened[0] != track.Quarter {
		t.Fatalf("opened = %v, want [Quarter]", relays.opened)
	}
	if seq.CurrentPower() != track.Off {
		t.Fatalf("CurrentPower = %v, want Off", seq.CurrentPower())
	}
}

// TestPinErrorLeavesCommandedStateAtTarget: current_power() reflects the
// commanded state, not a readback, even when the relay driver fails.
func TestPinErrorLeavesCommandedStateAtTarget(t *testing.T) {
	relays := &fakeRelays{failOpen: map[track.SectionPower]bool{track.Half: true}}
	seq := NewSequencer(relays)
	_ = seq.SetPower(track.Half)

	err := seq.SetPower(track.Full)
	if !errors.Is(err, ErrPinError) {
		t.Fatalf("err = %v, want ErrPinError", err)
	}
	if seq.CurrentPower() != track.Full {
		t.Fatalf("CurrentPower = %v, want Full even after PinError", seq.CurrentPower())
	}
}
