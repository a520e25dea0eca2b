package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/nodesim/internal/addressspace"
	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/ctxlog"
	"github.com/specialistvlad/nodesim/internal/simulation"
)

// RuntimeNode is one simulated variable together with its generator state.
type RuntimeNode struct {
	Variable *addressspace.Variable
	Params   config.Simulation

	mu    sync.Mutex
	state simulation.State
}

// State returns a copy of the node's generator state.
func (n *RuntimeNode) State() simulation.State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Advance runs one read-modify-write step under the node's lock. write is
// called with the computed value only when the strategy produced one; the
// state is stored only after write succeeds. It reports whether a value was
// written.
func (n *RuntimeNode) Advance(st simulation.Strategy, write func(config.Value) error) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	next, value, ok := st.Next(n.state)
	if !ok {
		return false, nil
	}
	if err := write(value); err != nil {
		return false, err
	}
	n.state = next
	return true, nil
}

// Registry is the arena of RuntimeNodes created during one tree build.
type Registry struct {
	mu    sync.RWMutex
	nodes []*RuntimeNode
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a simulated node with an uninitialized generator state.
func (r *Registry) Register(v *addressspace.Variable, params config.Simulation) *RuntimeNode {
	n := &RuntimeNode{Variable: v, Params: params}
	r.mu.Lock()
	r.nodes = append(r.nodes, n)
	r.mu.Unlock()
	return n
}

// Nodes returns the registered nodes in registration order.
func (r *Registry) Nodes() []*RuntimeNode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*RuntimeNode(nil), r.nodes...)
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// Validate checks that every node has a bound strategy and a positive
// interval. All problems are reported together.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []error

	for _, n := range r.Nodes() {
		id := n.Variable.ID().String()
		if _, err := simulation.For(n.Params); err != nil {
			errs = append(errs, fmt.Errorf("node %s: %w", id, err))
			continue
		}
		if n.Params.Interval() <= 0 {
			errs = append(errs, fmt.Errorf("node %s: %w", id, config.ErrZeroInterval))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Debug("Registry validation passed.", "nodes", r.Len())
	return nil
}
