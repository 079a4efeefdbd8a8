// Package ttl parses the track-description language ("TTL": track
// topology language) into a validated track.Graph.
package ttl

// Code is a stable, comparable error identifier for the parser/evaluator
// layer.
type Code string

func (c Code) Error() string { return string(c) }

const (
	ErrSyntax            Code = "ttl: syntax error"
	ErrSwitchFromBound   Code = "ttl: switch from already connected"
	ErrSwitchToBound     Code = "ttl: switch branch already connected"
)
