package track

// Code is a stable, comparable error identifier for the track graph layer.
type Code string

func (c Code) Error() string { return string(c) }

const (
	ErrSectionExists    Code = "track: section already exists"
	ErrSectionNotFound  Code = "track: section not found"
	ErrSwitchExists     Code = "track: switch already exists"
	ErrSwitchNotFound   Code = "track: switch not found"
	ErrSwitchFromBound  Code = "track: switch from already connected"
	ErrSwitchToBound    Code = "track: switch branch already connected"
	ErrRecursionExceeded Code = "track: transition expansion exceeded recursion limit"
)
