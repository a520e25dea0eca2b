package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/nodesim/internal/addressspace"
	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/ctxlog"
	"github.com/specialistvlad/nodesim/internal/registry"
	"github.com/specialistvlad/nodesim/internal/simulation"
	"github.com/specialistvlad/nodesim/internal/timer"
)

// DefaultFastThreshold is the interval below which the high-resolution timer
// primitive is used.
const DefaultFastThreshold = 50 * time.Millisecond

var (
	// ErrAlreadyRunning is returned by Start on a running scheduler.
	ErrAlreadyRunning = errors.New("scheduler is already running")

	// ErrTerminated is returned by Start on a scheduler that was stopped.
	ErrTerminated = errors.New("scheduler was stopped and cannot be restarted")
)

// Timers is the timer capability the scheduler consumes.
type Timers interface {
	NewTimer(cb func(), interval time.Duration) timer.Handle
	NewFastTimer(cb func(), interval time.Duration) timer.Handle
	Now() time.Time
}

// Writer is the host capability used to publish simulated values.
type Writer interface {
	WriteValue(v *addressspace.Variable, value config.Value, timestamp time.Time) error
}

// State is the lifecycle state of a Scheduler.
type State int

const (
	// Idle is a scheduler that has not been started yet.
	Idle State = iota
	Running
	// Stopped is terminal.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats are counters accumulated across the scheduler's run.
type Stats struct {
	Nodes    int    `json:"nodes"`
	Timers   int    `json:"timers"`
	Ticks    uint64 `json:"ticks"`
	Writes   uint64 `json:"writes"`
	Failures uint64 `json:"failures"`
}

// Scheduler runs the strategies of every node of a registry on its own timer.
type Scheduler struct {
	registry      *registry.Registry
	timers        Timers
	writer        Writer
	fastThreshold time.Duration

	mu      sync.Mutex
	state   State
	handles []timer.Handle
	logger  *slog.Logger

	ticks    atomic.Uint64
	writes   atomic.Uint64
	failures atomic.Uint64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithFastThreshold overrides DefaultFastThreshold.
func WithFastThreshold(d time.Duration) Option {
	return func(s *Scheduler) { s.fastThreshold = d }
}

// New creates an idle scheduler for the nodes of reg.
func New(reg *registry.Registry, timers Timers, writer Writer, opts ...Option) *Scheduler {
	s := &Scheduler{
		registry:      reg,
		timers:        timers,
		writer:        writer,
		fastThreshold: DefaultFastThreshold,
		logger:        ctxlog.FromContext(context.Background()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// binding pairs a node with its strategy.
type binding struct {
	node     *registry.RuntimeNode
	strategy simulation.Strategy
}

// Start creates one timer per registered node. If any node has no strategy
// the returned error wraps a *simulation.DispatchError and no timer is
// created.
func (s *Scheduler) Start(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case Running:
		return ErrAlreadyRunning
	case Stopped:
		return ErrTerminated
	}

	nodes := s.registry.Nodes()
	bindings := make([]binding, 0, len(nodes))
	for _, n := range nodes {
		st, err := simulation.For(n.Params)
		if err != nil {
			return fmt.Errorf("failed to start simulation of node %s: %w", n.Variable.ID(), err)
		}
		bindings = append(bindings, binding{node: n, strategy: st})
	}

	s.logger = logger
	s.handles = make([]timer.Handle, 0, len(bindings))
	for _, b := range bindings {
		b := b
		interval := b.node.Params.Interval()
		tick := func() { s.tick(b) }

		if interval >= s.fastThreshold {
			s.handles = append(s.handles, s.timers.NewTimer(tick, interval))
		} else {
			s.handles = append(s.handles, s.timers.NewFastTimer(tick, interval))
		}
		logger.Debug("Simulation timer created.",
			"node_id", b.node.Variable.ID().String(),
			"interval", interval,
			"fast", interval < s.fastThreshold)
	}

	s.state = Running
	logger.Info("Simulation started.", "nodes", len(bindings))
	return nil
}

// Stop disables every timer created by Start. It may be called at any time;
// afterwards the scheduler is terminal.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.handles {
		h.Disable()
	}
	if s.state == Running {
		s.logger.Info("Simulation stopped.", "timers", len(s.handles))
	}
	s.handles = nil
	s.state = Stopped
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stats returns a snapshot of the scheduler's counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	timers := len(s.handles)
	s.mu.Unlock()
	return Stats{
		Nodes:    s.registry.Len(),
		Timers:   timers,
		Ticks:    s.ticks.Load(),
		Writes:   s.writes.Load(),
		Failures: s.failures.Load(),
	}
}

// tick advances one node. It runs on the node's timer goroutine.
func (s *Scheduler) tick(b binding) {
	s.ticks.Add(1)
	wrote, err := b.node.Advance(b.strategy, func(v config.Value) error {
		return s.writer.WriteValue(b.node.Variable, v, s.timers.Now())
	})
	if err != nil {
		s.failures.Add(1)
		s.logger.Error("Failed to write simulated value.",
			"node_id", b.node.Variable.ID().String(),
			"error", err)
		return
	}
	if wrote {
		s.writes.Add(1)
	}
}
