package builder

import (
	"fmt"

	"github.com/specialistvlad/nodesim/internal/addressspace"
	"github.com/specialistvlad/nodesim/internal/nodeid"
	"github.com/specialistvlad/nodesim/internal/registry"
)

// Host is the address-space capability the builder consumes.
// *addressspace.Space implements it.
type Host interface {
	CreateFolder(parent *addressspace.Folder, path, name string, namespace uint16) (*addressspace.Folder, error)
	CreateVariable(parent *addressspace.Folder, spec addressspace.VariableSpec) (*addressspace.Variable, error)
	NamespaceIndexFor(t addressspace.NamespaceType) (uint16, error)
	NamespaceURI(index uint16) (string, bool)
}

var _ Host = (*addressspace.Space)(nil)

// NodeRef describes one variable created by Build.
type NodeRef struct {
	ID        nodeid.ID
	Namespace uint16
	Path      string
	Variable  *addressspace.Variable
	// Runtime is nil for nodes without simulation parameters.
	Runtime *registry.RuntimeNode
}

// Result is the outcome of a build.
type Result struct {
	// Nodes holds one entry per created variable, in creation order.
	Nodes []NodeRef
	// Registry holds the subset of Nodes that are simulated.
	Registry *registry.Registry
}

// FieldResolutionError reports a configured name that does not resolve to a
// host value. The node is still created with Fallback.
type FieldResolutionError struct {
	NodeID   string
	Field    string
	Value    string
	Fallback string
}

func (e *FieldResolutionError) Error() string {
	return fmt.Sprintf("%s %q of node %s cannot be resolved, defaulting to %q", e.Field, e.Value, e.NodeID, e.Fallback)
}
