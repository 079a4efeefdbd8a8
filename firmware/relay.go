package firmware

import (
	"time"

	"github.com/jangala-dev/liketrain-go/track"
	"github.com/jangala-dev/liketrain-go/x/mathx"
)

// SwitchingDelay is the fixed inter-level dwell observed between opening the
// old relay and closing the new one.
const SwitchingDelay = 10 * time.Millisecond

// RelayDriver closes or opens the single relay for a non-off power level.
// Implementations talk to real GPIO on the MCU; that pin-toggling is itself
// out of scope here.
type RelayDriver interface {
	Close(level track.SectionPower) error
	Open(level track.SectionPower) error
}

// Sequencer is a four-relay level selector for one section: at most one
// relay is closed at any instant, and a non-off-to-non-off transition breaks
// before it makes.
type Sequencer struct {
	drv     RelayDriver
	current track.SectionPower
	sleep   func(time.Duration)
}

// NewSequencer builds a sequencer starting at Off.
func NewSequencer(drv RelayDriver) *Sequencer {
	return &Sequencer{drv: drv, sleep: time.Sleep}
}

// CurrentPower reflects the commanded state, not a readback.
func (s *Sequencer) CurrentPower() track.SectionPower { return s.current }

// SetPower drives the relays toward target, breaking before making when
// moving between two non-off levels. On a PinError the sequencer aborts
// mid-transition; current_power() is still left at target, per spec: the
// caller is expected to retry or ResetAll.
func (s *Sequencer) SetPower(target track.SectionPower) error {
	target = track.SectionPower(mathx.Clamp(byte(target), byte(track.Off), byte(track.Full)))
	if target == s.current {
		return nil
	}
	defer func() { s.current = target }()

	switch {
	case s.current == track.Off:
		return s.close(target)
	case target == track.Off:
		return s.open(s.current)
	default:
		if err := s.open(s.current); err != nil {
			return err
		}
		s.sleep(SwitchingDelay)
		return s.close(target)
	}
}

func (s *Sequencer) close(level track.SectionPower) error {
	if err := s.drv.Close(level); err != nil {
		return ErrPinError
	}
	return nil
}

func (s *Sequencer) open(level track.SectionPower) error {
	if err := s.drv.Open(level); err != nil {
		return ErrPinError
	}
	return nil
}
