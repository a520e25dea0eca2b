package simulation

import (
	"fmt"

	"github.com/specialistvlad/nodesim/internal/config"
)

// State is the generator state of one node. Last holds the last counter
// value or the last sequence index.
type State struct {
	Initialized bool
	Last        int64
}

// Strategy computes the next value of a node.
type Strategy interface {
	// Next returns the new state and the value to write. When write is
	// false the tick is a no-op and the state is returned unchanged.
	Next(prev State) (next State, value config.Value, write bool)
}

// DispatchError reports simulation parameters with no bound strategy. It
// indicates a missing implementation, not a data problem.
type DispatchError struct {
	Params config.Simulation
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("missing simulation strategy for parameters of type %T", e.Params)
}

// For binds the strategy for params. This is the only place that switches
// over the simulation variants.
func For(params config.Simulation) (Strategy, error) {
	switch p := params.(type) {
	case *config.Counter:
		return Counter{params: *p}, nil
	case *config.Sequence:
		return Sequence{params: *p}, nil
	default:
		return nil, &DispatchError{Params: params}
	}
}
