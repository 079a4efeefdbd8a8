//go:build !rp2040 && !rp2350

package firmware

import "github.com/jangala-dev/liketrain-go/track"

// hostRelay is an inert RelayDriver used off real hardware: the firmware
// simulator and tests drive Dispatcher.Execute directly and only need the
// sequencer bookkeeping, not a real pin toggle.
type hostRelay struct{}

func (hostRelay) Close(track.SectionPower) error { return nil }
func (hostRelay) Open(track.SectionPower) error  { return nil }

// DefaultSections builds the locally-owned section sequencers for mode,
// using the demo layout's section ownership split (master: 10 and 11,
// slave 1: 20 and 21, slave 2: 22 and 24).
func DefaultSections(mode NodeMode) map[track.SectionId]*Sequencer {
	ids := ownedSections(mode)
	out := make(map[track.SectionId]*Sequencer, len(ids))
	for _, id := range ids {
		out[id] = NewSequencer(hostRelay{})
	}
	return out
}
