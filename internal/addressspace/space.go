package addressspace

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/datatype"
	"github.com/specialistvlad/nodesim/internal/nodeid"
)

var (
	// ErrDuplicateNode is returned when a variable identifier is already
	// taken in its namespace.
	ErrDuplicateNode = errors.New("node identifier already exists in namespace")

	// ErrNilParent is returned when a folder or variable is created without a parent.
	ErrNilParent = errors.New("parent folder cannot be nil")

	// ErrInvalidNamespace is returned for a namespace index that is not registered.
	ErrInvalidNamespace = errors.New("namespace index is not registered")
)

// Folder is a handle to a folder node.
type Folder struct {
	id        nodeid.ID
	namespace uint16
	name      string
	path      string
	parent    *Folder

	mu        sync.RWMutex
	folders   []*Folder
	variables []*Variable
}

func (f *Folder) ID() nodeid.ID { return f.id }

func (f *Folder) Namespace() uint16 { return f.namespace }

func (f *Folder) Name() string { return f.name }

// Path is the slash-joined chain of folder names from the root.
func (f *Folder) Path() string { return f.path }

func (f *Folder) Parent() *Folder { return f.parent }

// Folders returns a copy of the direct child folders in creation order.
func (f *Folder) Folders() []*Folder {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]*Folder(nil), f.folders...)
}

// Variables returns a copy of the direct child variables in creation order.
func (f *Folder) Variables() []*Variable {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]*Variable(nil), f.variables...)
}

// VariableSpec describes a variable to create.
type VariableSpec struct {
	ID          nodeid.ID
	Namespace   uint16
	Name        string
	DataType    datatype.BuiltIn
	ValueRank   int
	AccessLevel datatype.AccessLevel
	Description string
	Value       config.Value
}

// Change is delivered to subscribers after every value write.
type Change struct {
	NodeID    string
	Namespace uint16
	Name      string
	Value     config.Value
	Timestamp time.Time
}

type nodeKey struct {
	namespace uint16
	id        nodeid.ID
}

// Space is the in-memory address space.
type Space struct {
	namespaces []string
	root       *Folder

	mu    sync.RWMutex
	index map[nodeKey]*Variable
	order []*Variable

	subs        []*subscription
	subscribers atomic.Pointer[[]func(Change)]
	writes      atomic.Uint64
}

// New creates an empty space with the standard namespaces registered and an
// "Objects" root folder.
func New() *Space {
	s := &Space{
		namespaces: append([]string(nil), namespaceURIs...),
		index:      make(map[nodeKey]*Variable),
	}
	s.root = &Folder{id: nodeid.NewNumeric(85), name: "Objects", path: ""}
	s.subscribers.Store(&[]func(Change){})
	return s
}

// Root returns the root folder all user folders are created under.
func (s *Space) Root() *Folder {
	return s.root
}

// CreateFolder creates a folder under parent. Each call creates a new folder,
// even when a sibling with the same name exists.
func (s *Space) CreateFolder(parent *Folder, path, name string, namespace uint16) (*Folder, error) {
	if parent == nil {
		return nil, ErrNilParent
	}
	if int(namespace) >= len(s.namespaces) {
		return nil, fmt.Errorf("folder %q: %w: %d", name, ErrInvalidNamespace, namespace)
	}

	f := &Folder{
		id:        nodeid.NewString(path),
		namespace: namespace,
		name:      name,
		path:      path,
		parent:    parent,
	}

	parent.mu.Lock()
	parent.folders = append(parent.folders, f)
	parent.mu.Unlock()
	return f, nil
}

// CreateVariable creates a variable under parent with the initial value and
// timestamp set.
func (s *Space) CreateVariable(parent *Folder, spec VariableSpec) (*Variable, error) {
	if parent == nil {
		return nil, ErrNilParent
	}
	if !spec.ID.IsValid() {
		return nil, fmt.Errorf("variable %q has an invalid identifier", spec.Name)
	}
	if int(spec.Namespace) >= len(s.namespaces) {
		return nil, fmt.Errorf("variable %s: %w: %d", spec.ID, ErrInvalidNamespace, spec.Namespace)
	}

	v := &Variable{
		spec:      spec,
		parent:    parent,
		value:     spec.Value,
		timestamp: time.Now(),
	}

	key := nodeKey{namespace: spec.Namespace, id: spec.ID}
	s.mu.Lock()
	if _, exists := s.index[key]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("variable %s in namespace %d: %w", spec.ID, spec.Namespace, ErrDuplicateNode)
	}
	s.index[key] = v
	s.order = append(s.order, v)
	s.mu.Unlock()

	parent.mu.Lock()
	parent.variables = append(parent.variables, v)
	parent.mu.Unlock()
	return v, nil
}

// WriteValue sets the value and source timestamp of v and notifies every
// subscriber of the change.
func (s *Space) WriteValue(v *Variable, value config.Value, timestamp time.Time) error {
	if v == nil {
		return errors.New("variable cannot be nil")
	}

	v.mu.Lock()
	v.value = value
	v.timestamp = timestamp
	v.mu.Unlock()
	s.writes.Add(1)

	change := Change{
		NodeID:    v.spec.ID.String(),
		Namespace: v.spec.Namespace,
		Name:      v.spec.Name,
		Value:     value,
		Timestamp: timestamp,
	}
	for _, fn := range *s.subscribers.Load() {
		fn(change)
	}
	return nil
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription.
func (s *Space) Subscribe(fn func(Change)) (unsubscribe func()) {
	sub := &subscription{fn: fn}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.publishSubscribersLocked()
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.subs {
			if e == sub {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				break
			}
		}
		s.publishSubscribersLocked()
	}
}

type subscription struct {
	fn func(Change)
}

// publishSubscribersLocked stores a fresh copy of the subscriber list for
// lock-free reads on the write path. s.mu must be held.
func (s *Space) publishSubscribersLocked() {
	fns := make([]func(Change), len(s.subs))
	for i, sub := range s.subs {
		fns[i] = sub.fn
	}
	s.subscribers.Store(&fns)
}

// Lookup returns the variable with the given identifier in namespace.
func (s *Space) Lookup(namespace uint16, id nodeid.ID) (*Variable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.index[nodeKey{namespace: namespace, id: id}]
	return v, ok
}

// Variables returns every variable in creation order.
func (s *Space) Variables() []*Variable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Variable(nil), s.order...)
}

// Writes returns the number of value writes since creation.
func (s *Space) Writes() uint64 {
	return s.writes.Load()
}

// Snapshot returns the current state of every variable, sorted by
// namespace and identifier.
func (s *Space) Snapshot() []VariableSnapshot {
	vars := s.Variables()
	out := make([]VariableSnapshot, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].NodeID < out[j].NodeID
	})
	return out
}
