package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateTruck   = errors.New("duplicate truck id")
	ErrNegativeCapacity = errors.New("truck capacity must not be negative")
	ErrRouteFull        = errors.New("route is at full capacity")
	ErrBrokenPartition  = errors.New("routes do not partition the delivery points")
)

// MalformedMapError reports a distance table or truck line that cannot be used.
// Row and Col are zero-based; -1 means the position does not apply.
type MalformedMapError struct {
	Row    int
	Col    int
	Token  string
	Reason string
}

func (e *MalformedMapError) Error() string {
	switch {
	case e.Row >= 0 && e.Col >= 0:
		return fmt.Sprintf("malformed map: row %d col %d token %q: %s", e.Row, e.Col, e.Token, e.Reason)
	case e.Row >= 0:
		return fmt.Sprintf("malformed map: row %d: %s", e.Row, e.Reason)
	default:
		return "malformed map: " + e.Reason
	}
}

// InfeasibleCapacityError is returned when the declared truck capacities cannot
// hold every delivery point exactly once.
type InfeasibleCapacityError struct {
	Capacity int
	Points   int
}

func (e *InfeasibleCapacityError) Error() string {
	return fmt.Sprintf("infeasible capacity: trucks hold %d points, map has %d delivery points", e.Capacity, e.Points)
}
