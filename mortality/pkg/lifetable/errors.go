package lifetable

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when fewer than three buckets remain
// after min-age filtering, too few to inspect the tail.
var ErrInsufficientData = errors.New("life table needs at least three age buckets")

// ParseError reports a missing column or a malformed field in the
// source table.
type ParseError struct {
	Line  int
	Field string
	Value string
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("line %d: missing column %q", e.Line, e.Field)
	}
	return fmt.Sprintf("line %d: bad %s value %q", e.Line, e.Field, e.Value)
}

// AssumptionError reports a violated precondition of the tail-repair
// heuristic, which is hard-coded to a specific dataset shape.
type AssumptionError struct {
	Reason string
}

func (e *AssumptionError) Error() string {
	return "repair assumption violated: " + e.Reason
}
