package simulation

import "github.com/specialistvlad/nodesim/internal/config"

// Counter emits Start on the first tick and adds StepBy on every later tick.
type Counter struct {
	params config.Counter
}

// NewCounter returns the counter strategy for p.
func NewCounter(p config.Counter) Counter {
	return Counter{params: p}
}

func (c Counter) Next(prev State) (State, config.Value, bool) {
	if !prev.Initialized {
		return State{Initialized: true, Last: c.params.Start}, config.Int(c.params.Start), true
	}

	value := prev.Last + c.params.StepBy
	if c.params.ShouldWrap {
		// Two independent guards, lower bound first.
		if value < c.params.WrapLowerBound {
			value = c.params.Start
		}
		if value > c.params.WrapUpperBound {
			value = c.params.Start
		}
	}
	return State{Initialized: true, Last: value}, config.Int(value), true
}
