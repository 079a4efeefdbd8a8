package route

import (
	"strings"

	"github.com/jangala-dev/liketrain-go/track"
	"github.com/jangala-dev/liketrain-go/x/conv"
)

// Route is an ordered list of section visits plus the concrete transition
// chain walking between them.
type Route struct {
	vias              []track.SectionId
	startingDirection track.Direction
	transitions       []*track.Transition
	closed            bool
}

// New walks each adjacent via pair through the graph, choosing — of every
// candidate transition from a reaching b in the running direction — the
// LAST one (deterministic tie-break: the expansion's last branch). This
// order is part of the contract; see DESIGN.md.
func New(vias []track.SectionId, startingDirection track.Direction, g *track.Graph) (*Route, error) {
	if len(vias) == 0 {
		return nil, ErrEmptyVias
	}

	dir := startingDirection
	transitions := make([]*track.Transition, 0, len(vias)-1)
	for i := 0; i < len(vias)-1; i++ {
		a, b := vias[i], vias[i+1]
		candidates, err := g.TransitionsTo(a, dir, b)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, ErrNotWalkable
		}
		chosen := candidates[len(candidates)-1]
		transitions = append(transitions, chosen)
		dir = track.DirectionFromSectionEnd(chosen.DestinationSectionEnd())
	}

	closed := vias[0] == vias[len(vias)-1]
	return &Route{vias: vias, startingDirection: startingDirection, transitions: transitions, closed: closed}, nil
}

// Via returns the via at index i, wrapping modulo len(vias)-1 for closed
// routes (since the first and last via coincide).
func (r *Route) Via(i int) track.SectionId {
	if r.closed {
		n := len(r.vias) - 1
		i = ((i % n) + n) % n
		return r.vias[i]
	}
	return r.vias[i]
}

// Transition returns the transition leaving Via(i), or nil if i is out of
// range for an open route.
func (r *Route) Transition(i int) *track.Transition {
	if r.closed {
		n := len(r.transitions)
		i = ((i % n) + n) % n
		return r.transitions[i]
	}
	if i < 0 || i >= len(r.transitions) {
		return nil
	}
	return r.transitions[i]
}

func (r *Route) IsClosed() bool                       { return r.closed }
func (r *Route) StartingDirection() track.Direction   { return r.startingDirection }
func (r *Route) ViaCount() int                         { return len(r.vias) }

// String pretty-prints the route as a via chain, e.g. "24 -> 22 -> 21 -> 24".
func (r *Route) String() string {
	var b strings.Builder
	var buf [20]byte
	for i, v := range r.vias {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.Write(conv.Itoa(buf[:], int64(v)))
	}
	return b.String()
}
