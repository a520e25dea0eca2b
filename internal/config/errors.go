package config

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySequence is reported for a sequence block without values.
	ErrEmptySequence = errors.New("sequence simulation requires at least one value")

	// ErrZeroInterval is reported for a simulation block with a zero interval.
	ErrZeroInterval = errors.New("simulation interval must be greater than 0")

	// ErrUnknownSimulation is reported for a simulation block whose type
	// discriminator names no known variant.
	ErrUnknownSimulation = errors.New("unknown simulation type")

	// ErrMissingIdentifier is reported for a node without an identifier.
	ErrMissingIdentifier = errors.New("node identifier is required")
)

// LoadError reports a configuration source that could not be read or is
// structurally invalid. The whole user tree of that source is dropped.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading node configuration %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError wraps err for path, leaving an existing LoadError untouched.
func NewLoadError(path string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Path: path, Err: err}
}
