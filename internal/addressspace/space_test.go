package addressspace

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/datatype"
	"github.com/specialistvlad/nodesim/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpec(id nodeid.ID) VariableSpec {
	return VariableSpec{
		ID:          id,
		Namespace:   1,
		Name:        id.String(),
		DataType:    datatype.Int32,
		ValueRank:   -1,
		AccessLevel: datatype.AccessCurrentReadOrWrite,
		Description: id.String(),
	}
}

func TestCreateFolderAndVariable(t *testing.T) {
	s := New()
	f, err := s.CreateFolder(s.Root(), "Telemetry", "Telemetry", 1)
	require.NoError(t, err)
	assert.Equal(t, "Telemetry", f.Name())
	assert.Equal(t, s.Root(), f.Parent())

	spec := newSpec(nodeid.NewNumeric(7))
	spec.Value = config.Int(3)
	v, err := s.CreateVariable(f, spec)
	require.NoError(t, err)

	value, ts := v.Value()
	assert.Equal(t, config.Int(3), value)
	assert.False(t, ts.IsZero())

	got, ok := s.Lookup(1, nodeid.NewNumeric(7))
	require.True(t, ok)
	assert.Same(t, v, got)
	assert.Equal(t, []*Variable{v}, f.Variables())
	assert.Equal(t, []*Folder{f}, s.Root().Folders())
}

func TestCreateFolder_RepeatedNamesAreSeparate(t *testing.T) {
	s := New()
	a, err := s.CreateFolder(s.Root(), "Dup", "Dup", 1)
	require.NoError(t, err)
	b, err := s.CreateFolder(s.Root(), "Dup", "Dup", 1)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Len(t, s.Root().Folders(), 2)
}

func TestCreate_Errors(t *testing.T) {
	s := New()
	_, err := s.CreateFolder(nil, "x", "x", 1)
	assert.ErrorIs(t, err, ErrNilParent)

	_, err = s.CreateFolder(s.Root(), "x", "x", 99)
	assert.ErrorIs(t, err, ErrInvalidNamespace)

	_, err = s.CreateVariable(s.Root(), newSpec(nodeid.ID{}))
	assert.Error(t, err)

	_, err = s.CreateVariable(s.Root(), newSpec(nodeid.NewString("a")))
	require.NoError(t, err)
	_, err = s.CreateVariable(s.Root(), newSpec(nodeid.NewString("a")))
	assert.ErrorIs(t, err, ErrDuplicateNode)

	// Same identifier in another namespace is fine.
	spec := newSpec(nodeid.NewString("a"))
	spec.Namespace = 2
	_, err = s.CreateVariable(s.Root(), spec)
	assert.NoError(t, err)
}

func TestWriteValue_NotifiesSubscribers(t *testing.T) {
	s := New()
	v, err := s.CreateVariable(s.Root(), newSpec(nodeid.NewString("pump")))
	require.NoError(t, err)

	var got []Change
	unsubscribe := s.Subscribe(func(c Change) { got = append(got, c) })

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.WriteValue(v, config.Int(10), ts))

	require.Len(t, got, 1)
	assert.Equal(t, "s=pump", got[0].NodeID)
	assert.Equal(t, config.Int(10), got[0].Value)
	assert.Equal(t, ts, got[0].Timestamp)

	value, vts := v.Value()
	assert.Equal(t, config.Int(10), value)
	assert.Equal(t, ts, vts)

	unsubscribe()
	require.NoError(t, s.WriteValue(v, config.Int(11), ts))
	assert.Len(t, got, 1)
	assert.EqualValues(t, 2, s.Writes())
}

func TestNamespaceIndexFor(t *testing.T) {
	s := New()
	idx, err := s.NamespaceIndexFor(NamespaceApplications)
	require.NoError(t, err)
	assert.EqualValues(t, 1, idx)

	uri, ok := s.NamespaceURI(idx)
	assert.True(t, ok)
	assert.Equal(t, "urn:nodesim:applications", uri)

	_, err = s.NamespaceIndexFor(NamespaceType(42))
	assert.Error(t, err)
}

func TestSnapshot_Sorted(t *testing.T) {
	s := New()
	for _, name := range []string{"b", "a", "c"} {
		_, err := s.CreateVariable(s.Root(), newSpec(nodeid.NewString(name)))
		require.NoError(t, err)
	}
	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "s=a", snap[0].NodeID)
	assert.Equal(t, "s=c", snap[2].NodeID)
	assert.Equal(t, "Int32", snap[0].DataType)
}

// TestSpace_ConcurrentWrites verifies that independent variables can be
// written from many goroutines without data races or lost writes.
func TestSpace_ConcurrentWrites(t *testing.T) {
	s := New()
	const numVars = 50
	vars := make([]*Variable, numVars)
	for i := range vars {
		v, err := s.CreateVariable(s.Root(), newSpec(nodeid.NewString(fmt.Sprintf("v%d", i))))
		require.NoError(t, err)
		vars[i] = v
	}

	var wg sync.WaitGroup
	wg.Add(numVars)
	for i, v := range vars {
		go func(i int, v *Variable) {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				_ = s.WriteValue(v, config.Int(int64(i*1000+n)), time.Now())
			}
		}(i, v)
	}
	wg.Wait()

	assert.EqualValues(t, numVars*100, s.Writes())
	for i, v := range vars {
		value, _ := v.Value()
		assert.Equal(t, config.Int(int64(i*1000+99)), value)
	}
}
