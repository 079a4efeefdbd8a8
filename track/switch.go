package track

// Switch is a point: two branch positions (Left/Right) selecting which
// neighbour is connected to the common pole (From).
type Switch struct {
	Name    string
	From    SwitchConnection
	ToLeft  SwitchConnection
	ToRight SwitchConnection
}

// Branch returns the SwitchConnection for a given state.
func (sw *Switch) Branch(state SwitchState) SwitchConnection {
	if state == Right {
		return sw.ToRight
	}
	return sw.ToLeft
}

// Valid reports whether From and at least one branch have been bound, per
// the graph-finalization invariant.
func (sw *Switch) Valid() bool {
	return sw.From.Bound && (sw.ToLeft.Bound || sw.ToRight.Bound)
}
