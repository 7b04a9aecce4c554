package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrInvalidVertexCount = errors.New("invalid vertex count")
	ErrVertexOutOfRange   = errors.New("vertex id out of range")
	ErrSelfLoop           = errors.New("self-loop")
	ErrDuplicateEdge      = errors.New("duplicate edge")
)

// EdgeError reports which input edge made a graph invalid.
type EdgeError struct {
	Index int   // Position in the input edge sequence
	U, V  int   // Endpoints as given
	Cause error // One of the sentinel errors above
}

// Error implements the error interface.
func (e *EdgeError) Error() string {
	return fmt.Sprintf("edge %d (%d,%d): %v", e.Index, e.U, e.V, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *EdgeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *EdgeError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// IsInvalidGraph returns true if the error indicates rejected graph input.
func IsInvalidGraph(err error) bool {
	return errors.Is(err, ErrInvalidVertexCount) ||
		errors.Is(err, ErrVertexOutOfRange) ||
		errors.Is(err, ErrSelfLoop) ||
		errors.Is(err, ErrDuplicateEdge)
}
