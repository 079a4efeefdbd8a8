package firmware

import "github.com/jangala-dev/liketrain-go/track"

// ownedSections is the demo layout's fixed section-ownership split across
// the master node and its two slaves. A real deployment would carry this in
// config rather than compiled in; SPEC_FULL.md leaves per-node section
// ownership unspecified, so this is the one concrete assignment the
// reference layout (config/embedded/layout.ttl) needs to drive its relays.
func ownedSections(mode NodeMode) []track.SectionId {
	switch mode.Kind {
	case ModeMaster:
		return []track.SectionId{10, 11}
	case ModeSlave:
		switch mode.ID {
		case 1:
			return []track.SectionId{20, 21}
		case 2:
			return []track.SectionId{22, 24}
		}
	}
	return nil
}
