package route

import "github.com/jangala-dev/liketrain-go/track"

// Train holds a name and a Mode: the route it's following, the current
// via-index, and its direction of travel within the current section.
type Train struct {
	Name string
	Mode TrainMode
}

type TrainMode struct {
	Route     *Route
	ViaIndex  int
	Direction track.Direction
}

func NewTrain(name string, r *Route, startIndex int) *Train {
	return &Train{
		Name: name,
		Mode: TrainMode{Route: r, ViaIndex: startIndex, Direction: r.StartingDirection()},
	}
}

// CurrentSection returns the section the train currently occupies.
func (t *Train) CurrentSection() track.SectionId {
	return t.Mode.Route.Via(t.Mode.ViaIndex)
}

// GetTransitionToNextSection returns the precomputed transition for the
// train's next move, or nil if the route is exhausted (open route, final
// via reached).
func (t *Train) GetTransitionToNextSection() *track.Transition {
	return t.Mode.Route.Transition(t.Mode.ViaIndex)
}

// GetNextSection projects the transition's destination, if any.
func (t *Train) GetNextSection() (track.SectionId, bool) {
	tr := t.GetTransitionToNextSection()
	if tr == nil {
		return 0, false
	}
	return tr.Destination(), true
}

// EnteredSection advances the train onto section id, flipping its
// intra-section direction per the transition's destination section end.
func (t *Train) EnteredSection(id track.SectionId) {
	tr := t.GetTransitionToNextSection()
	if tr != nil {
		t.Mode.Direction = track.DirectionFromSectionEnd(tr.DestinationSectionEnd())
	}
	t.Mode.ViaIndex++
	if t.Mode.Route.IsClosed() {
		n := t.Mode.Route.ViaCount() - 1
		t.Mode.ViaIndex = ((t.Mode.ViaIndex % n) + n) % n
	}
	_ = id // the route, not the raw id, is authoritative for position
}
