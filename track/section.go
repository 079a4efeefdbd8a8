package track

// Section is an electrically isolated stretch of track with two ends.
type Section struct {
	Name     string
	Forward  Connection
	Backward Connection
}

// Connection returns the Forward or Backward connection for a travel
// direction.
func (s *Section) Connection(dir Direction) Connection {
	if dir == Forward {
		return s.Forward
	}
	return s.Backward
}
