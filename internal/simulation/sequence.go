package simulation

import "github.com/specialistvlad/nodesim/internal/config"

// Sequence emits Values[0] on the first tick and then advances the index by
// StepBy, wrapping or holding at the end depending on ShouldRestart.
type Sequence struct {
	params config.Sequence
}

// NewSequence returns the sequence strategy for p. p.Values must not be empty.
func NewSequence(p config.Sequence) Sequence {
	return Sequence{params: p}
}

func (s Sequence) Next(prev State) (State, config.Value, bool) {
	n := int64(len(s.params.Values))
	if n == 0 {
		return prev, config.Value{}, false
	}
	if !prev.Initialized {
		return State{Initialized: true, Last: 0}, s.params.Values[0], true
	}

	index := prev.Last + s.params.StepBy
	if index >= n && !s.params.ShouldRestart {
		return prev, config.Value{}, false
	}

	index %= n
	if index < 0 {
		index += n
	}
	return State{Initialized: true, Last: index}, s.params.Values[index], true
}
