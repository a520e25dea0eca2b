package config

// Defaults applied by every loader when a field is absent.
const (
	DefaultDataType    = "Int32"
	DefaultValueRank   = -1
	DefaultAccessLevel = "CurrentReadOrWrite"
	DefaultIntervalMs  = 1000
	DefaultStepBy      = 1
)

// Folder is a namespace grouping in the node tree. It has no identity beyond
// its position; repeated names produce separate host folders.
type Folder struct {
	Name string
	// NamespaceIndex overrides the namespace the folder and its nodes are
	// created in. Nil means the applications namespace.
	NamespaceIndex *int
	Folders        []*Folder
	Nodes          []*Node
}

// Node describes one variable to create in the address space.
type Node struct {
	ID          RawIdentifier
	Name        string
	DataType    string
	ValueRank   int
	AccessLevel string
	Description string
	Value       Value
	Simulation  Simulation
}

// NewNode returns a node with every optional field set to its default.
func NewNode(id RawIdentifier) *Node {
	return &Node{
		ID:          id,
		DataType:    DefaultDataType,
		ValueRank:   DefaultValueRank,
		AccessLevel: DefaultAccessLevel,
	}
}

// RawIdentifier is a node identifier as it was parsed, before normalization.
// Raw holds an int64 for integral numbers, a string for text, or whatever
// other value the document carried (float64, bool, ...).
type RawIdentifier struct {
	Raw any
}

// CountNodes returns the number of nodes in the whole tree rooted at f.
func (f *Folder) CountNodes() int {
	if f == nil {
		return 0
	}
	n := len(f.Nodes)
	for _, child := range f.Folders {
		n += child.CountNodes()
	}
	return n
}
