package config

import "time"

// Simulation is the closed set of value-generation parameters a node may
// carry. Only types in this package implement it.
type Simulation interface {
	// Interval is the tick period of the node's timer.
	Interval() time.Duration
	isSimulation()
}

// Counter steps an integer on every tick, optionally wrapping back to Start
// when the value leaves [WrapLowerBound, WrapUpperBound].
type Counter struct {
	IntervalMilliseconds uint32
	Start                int64
	StepBy               int64
	ShouldWrap           bool
	WrapLowerBound       int64
	WrapUpperBound       int64
}

// NewCounter returns counter parameters with the documented defaults.
func NewCounter() *Counter {
	return &Counter{IntervalMilliseconds: DefaultIntervalMs, StepBy: DefaultStepBy}
}

func (c *Counter) Interval() time.Duration {
	return time.Duration(c.IntervalMilliseconds) * time.Millisecond
}

func (*Counter) isSimulation() {}

// Sequence cycles through a fixed list of values.
type Sequence struct {
	IntervalMilliseconds uint32
	Values               []Value
	StepBy               int64
	ShouldRestart        bool
}

// NewSequence returns sequence parameters with the documented defaults.
func NewSequence(values []Value) *Sequence {
	return &Sequence{
		IntervalMilliseconds: DefaultIntervalMs,
		Values:               values,
		StepBy:               DefaultStepBy,
		ShouldRestart:        true,
	}
}

func (s *Sequence) Interval() time.Duration {
	return time.Duration(s.IntervalMilliseconds) * time.Millisecond
}

func (*Sequence) isSimulation() {}

// Validate checks the invariants shared by all loaders. Loaders wrap the
// returned error in a LoadError.
func Validate(sim Simulation) error {
	switch s := sim.(type) {
	case nil:
		return nil
	case *Counter:
		if s.IntervalMilliseconds == 0 {
			return ErrZeroInterval
		}
	case *Sequence:
		if s.IntervalMilliseconds == 0 {
			return ErrZeroInterval
		}
		if len(s.Values) == 0 {
			return ErrEmptySequence
		}
	}
	return nil
}
