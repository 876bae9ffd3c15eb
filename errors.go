package partition

import (
	"errors"
	"fmt"
)

// Kind tags the category of a partitioning error.
type Kind int

const (
	// InvalidInput marks wrong dimension, mismatched array lengths,
	// negative or NaN weights, or num_partitions == 0.
	InvalidInput Kind = iota
	// UnsupportedCombination marks a request an algorithm cannot honor,
	// e.g. a graph refiner invoked without an adjacency, or Hilbert
	// curve ordering requested in 3D.
	UnsupportedCombination
	// NotConverged is a soft failure: the best partition found is still
	// returned alongside it (see e.g. kmeans.Result.Warning).
	NotConverged
	// ExternalFailure marks a failure in a collaborator: mesh parsing,
	// the external solver bridge.
	ExternalFailure
	// Internal marks an invariant violation. Abort-worthy.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case UnsupportedCombination:
		return "unsupported combination"
	case NotConverged:
		return "not converged"
	case ExternalFailure:
		return "external failure"
	case Internal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type returned by every algorithm in this
// module. It carries the operation that failed, a Kind, and an optional
// wrapped cause.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, &partition.Error{Kind: partition.InvalidInput}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError constructs an *Error for op, classified as kind, wrapping err
// (which may be nil).
func NewError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// IsWarning reports whether err is a soft failure (Kind == NotConverged):
// the value returned alongside it is still a valid, usable Partition.
// Compose and ComposeImprove use this to keep chaining algorithm stages
// instead of aborting on a warning.
func IsWarning(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == NotConverged
	}
	return false
}
