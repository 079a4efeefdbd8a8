//go:build rp2040 || rp2350

package firmware

import (
	"machine"

	"github.com/jangala-dev/liketrain-go/track"
)

// gpioRelay drives one section's four relays, one GPIO per power level,
// active-high.
type gpioRelay struct {
	pins map[track.SectionPower]machine.Pin
}

func newGPIORelay(base int) *gpioRelay {
	pins := make(map[track.SectionPower]machine.Pin, 4)
	levels := [...]track.SectionPower{track.Quarter, track.Half, track.ThreeQuarters, track.Full}
	for i, lvl := range levels {
		p := machine.Pin(base + i)
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
		pins[lvl] = p
	}
	return &gpioRelay{pins: pins}
}

func (r *gpioRelay) Close(level track.SectionPower) error {
	p, ok := r.pins[level]
	if !ok {
		return ErrPinError
	}
	p.High()
	return nil
}

func (r *gpioRelay) Open(level track.SectionPower) error {
	p, ok := r.pins[level]
	if !ok {
		return ErrPinError
	}
	p.Low()
	return nil
}

// DefaultSections builds the locally-owned section sequencers for mode,
// one gpioRelay per section on a 4-GPIO-per-section block starting at
// GP0, in section-id order.
func DefaultSections(mode NodeMode) map[track.SectionId]*Sequencer {
	ids := ownedSections(mode)
	out := make(map[track.SectionId]*Sequencer, len(ids))
	for i, id := range ids {
		out[id] = NewSequencer(newGPIORelay(i * 4))
	}
	return out
}
