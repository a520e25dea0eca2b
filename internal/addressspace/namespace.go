package addressspace

import "fmt"

// NamespaceType names the namespaces the space registers at creation.
type NamespaceType int

const (
	NamespaceStandard NamespaceType = iota
	NamespaceApplications
	NamespaceSimulation
)

// namespaceURIs is indexed by NamespaceType; the position is the namespace index.
var namespaceURIs = []string{
	NamespaceStandard:     "http://opcfoundation.org/UA/",
	NamespaceApplications: "urn:nodesim:applications",
	NamespaceSimulation:   "urn:nodesim:simulation",
}

func (t NamespaceType) String() string {
	switch t {
	case NamespaceStandard:
		return "standard"
	case NamespaceApplications:
		return "applications"
	case NamespaceSimulation:
		return "simulation"
	default:
		return fmt.Sprintf("NamespaceType(%d)", int(t))
	}
}

// NamespaceIndexFor returns the namespace index registered for t.
func (s *Space) NamespaceIndexFor(t NamespaceType) (uint16, error) {
	if t < 0 || int(t) >= len(s.namespaces) {
		return 0, fmt.Errorf("namespace %s is not registered", t)
	}
	return uint16(t), nil
}

// NamespaceURI returns the URI registered at index, if any.
func (s *Space) NamespaceURI(index uint16) (string, bool) {
	if int(index) >= len(s.namespaces) {
		return "", false
	}
	return s.namespaces[index], true
}

// NamespaceCount returns the number of registered namespaces.
func (s *Space) NamespaceCount() int {
	return len(s.namespaces)
}
