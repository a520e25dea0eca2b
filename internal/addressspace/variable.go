package addressspace

import (
	"sync"
	"time"

	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/datatype"
	"github.com/specialistvlad/nodesim/internal/nodeid"
)

// Variable is a stable handle to a variable node. Its attributes are fixed at
// creation; its value and timestamp change through Space.WriteValue.
type Variable struct {
	spec   VariableSpec
	parent *Folder

	mu        sync.RWMutex
	value     config.Value
	timestamp time.Time
}

func (v *Variable) ID() nodeid.ID { return v.spec.ID }

func (v *Variable) Namespace() uint16 { return v.spec.Namespace }

func (v *Variable) Name() string { return v.spec.Name }

func (v *Variable) Description() string { return v.spec.Description }

func (v *Variable) DataType() datatype.BuiltIn { return v.spec.DataType }

func (v *Variable) ValueRank() int { return v.spec.ValueRank }

func (v *Variable) AccessLevel() datatype.AccessLevel { return v.spec.AccessLevel }

func (v *Variable) Parent() *Folder { return v.parent }

// Value returns the current value and its source timestamp.
func (v *Variable) Value() (config.Value, time.Time) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value, v.timestamp
}

// VariableSnapshot is a point-in-time, serializable view of a variable.
type VariableSnapshot struct {
	NodeID      string       `json:"node_id"`
	Namespace   uint16       `json:"namespace"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Path        string       `json:"path"`
	DataType    string       `json:"data_type"`
	ValueRank   int          `json:"value_rank"`
	AccessLevel uint8        `json:"access_level"`
	Value       config.Value `json:"value"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Snapshot captures the variable's current state.
func (v *Variable) Snapshot() VariableSnapshot {
	value, ts := v.Value()
	path := ""
	if v.parent != nil {
		path = v.parent.Path()
	}
	return VariableSnapshot{
		NodeID:      v.spec.ID.String(),
		Namespace:   v.spec.Namespace,
		Name:        v.spec.Name,
		Description: v.spec.Description,
		Path:        path,
		DataType:    v.spec.DataType.String(),
		ValueRank:   v.spec.ValueRank,
		AccessLevel: uint8(v.spec.AccessLevel),
		Value:       value,
		Timestamp:   ts,
	}
}
