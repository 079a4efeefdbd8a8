// Package route builds and walks concrete routes over a track.Graph: an
// ordered list of section visits plus the transition chain connecting them.
package route

type Code string

func (c Code) Error() string { return string(c) }

const (
	// ErrNotWalkable means some adjacent via pair has no transition
	// reaching the next via in the running direction.
	ErrNotWalkable Code = "route: not walkable"
	ErrEmptyVias   Code = "route: at least one via is required"
)
