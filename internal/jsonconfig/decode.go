package jsonconfig

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/specialistvlad/nodesim/internal/config"
)

// object is a decoded document object with case-insensitive key lookup.
type object map[string]any

func asObject(v any) (object, bool) {
	m, ok := v.(map[string]any)
	return object(m), ok
}

// get returns the value stored under the first of keys present in o. An
// exact match wins over a case-insensitive one.
func (o object) get(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := o[k]; ok {
			return v, true
		}
	}
	for _, k := range keys {
		for name, v := range o {
			if strings.EqualFold(name, k) {
				return v, true
			}
		}
	}
	return nil, false
}

// present is get with an explicit null treated as absent.
func (o object) present(keys ...string) (any, bool) {
	v, ok := o.get(keys...)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func decodeFolder(o object, at string) (*config.Folder, error) {
	f := &config.Folder{}

	name, err := o.stringField(at, "Folder")
	if err != nil {
		return nil, err
	}
	f.Name = name

	if _, ok := o.present("NamespaceIndex"); ok {
		ns, err := o.intField(at, "NamespaceIndex")
		if err != nil {
			return nil, err
		}
		idx := int(ns)
		f.NamespaceIndex = &idx
	}

	nodes, err := o.listField(at, "NodeList")
	if err != nil {
		return nil, err
	}
	for i, raw := range nodes {
		path := fmt.Sprintf("%s[%d]", join(at, "NodeList"), i)
		obj, ok := asObject(raw)
		if !ok {
			return nil, fmt.Errorf("%s: node must be an object, got %s", path, describe(raw))
		}
		n, err := decodeNode(obj, path)
		if err != nil {
			return nil, err
		}
		f.Nodes = append(f.Nodes, n)
	}

	folders, err := o.listField(at, "FolderList")
	if err != nil {
		return nil, err
	}
	for i, raw := range folders {
		path := fmt.Sprintf("%s[%d]", join(at, "FolderList"), i)
		obj, ok := asObject(raw)
		if !ok {
			return nil, fmt.Errorf("%s: folder must be an object, got %s", path, describe(raw))
		}
		child, err := decodeFolder(obj, path)
		if err != nil {
			return nil, err
		}
		f.Folders = append(f.Folders, child)
	}
	return f, nil
}

func decodeNode(o object, at string) (*config.Node, error) {
	rawID, ok := o.present("NodeId", "Id")
	if !ok {
		return nil, fmt.Errorf("%s: %w", at, config.ErrMissingIdentifier)
	}
	n := config.NewNode(config.RawIdentifier{Raw: identifier(rawID)})

	var err error
	if n.Name, err = o.stringField(at, "Name"); err != nil {
		return nil, err
	}
	if n.Description, err = o.stringField(at, "Description"); err != nil {
		return nil, err
	}
	if _, ok := o.present("DataType"); ok {
		if n.DataType, err = o.stringField(at, "DataType"); err != nil {
			return nil, err
		}
	}
	if _, ok := o.present("AccessLevel"); ok {
		if n.AccessLevel, err = o.stringField(at, "AccessLevel"); err != nil {
			return nil, err
		}
	}
	if _, ok := o.present("ValueRank"); ok {
		rank, err := o.intField(at, "ValueRank")
		if err != nil {
			return nil, err
		}
		n.ValueRank = int(rank)
	}
	if raw, ok := o.present("Value"); ok {
		v, err := config.FromNative(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", join(at, "Value"), err)
		}
		n.Value = v
	}

	if raw, ok := o.present("Parameters", "Simulation"); ok {
		path := join(at, "Parameters")
		obj, ok := asObject(raw)
		if !ok {
			return nil, fmt.Errorf("%s: must be an object, got %s", path, describe(raw))
		}
		sim, err := decodeSimulation(obj, path)
		if err != nil {
			return nil, err
		}
		n.Simulation = sim
	}
	return n, nil
}

// identifier converts a document identifier into the raw form the normalizer
// classifies: int64 for integral numbers, float64 for other numbers and the
// decoded value otherwise.
func identifier(raw any) any {
	switch x := raw.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case int:
		return int64(x)
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x)
		}
		return float64(x)
	default:
		return raw
	}
}

const (
	kindCounter  = "counter"
	kindSequence = "sequence"
)

// simulationKind maps a "$type" discriminator to a variant.
func simulationKind(typeName string) (string, bool) {
	name := typeName
	// Fully qualified names carry the namespace and optionally the assembly.
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "countup", "counter", "countupsimulatedparameters":
		return kindCounter, true
	case "sequence", "sequencesimulatedparameters":
		return kindSequence, true
	default:
		return "", false
	}
}

func decodeSimulation(o object, at string) (config.Simulation, error) {
	kind := kindCounter
	if _, ok := o.present("$type", "type"); ok {
		typeName, err := o.stringField(at, "$type", "type")
		if err != nil {
			return nil, err
		}
		k, ok := simulationKind(typeName)
		if !ok {
			return nil, fmt.Errorf("%s: %w %q", at, config.ErrUnknownSimulation, typeName)
		}
		kind = k
	} else if _, ok := o.get("Values"); ok {
		kind = kindSequence
	}

	var sim config.Simulation
	switch kind {
	case kindSequence:
		s, err := decodeSequence(o, at)
		if err != nil {
			return nil, err
		}
		sim = s
	default:
		c, err := decodeCounter(o, at)
		if err != nil {
			return nil, err
		}
		sim = c
	}

	if err := config.Validate(sim); err != nil {
		return nil, fmt.Errorf("%s: %w", at, err)
	}
	return sim, nil
}

func (o object) interval(at string) (uint32, error) {
	if _, ok := o.present("IntervalMilliseconds", "IntervalMs"); !ok {
		return config.DefaultIntervalMs, nil
	}
	ms, err := o.intField(at, "IntervalMilliseconds", "IntervalMs")
	if err != nil {
		return 0, err
	}
	if ms < 0 || ms > math.MaxUint32 {
		return 0, fmt.Errorf("%s: interval %d is out of range", join(at, "IntervalMilliseconds"), ms)
	}
	return uint32(ms), nil
}

func decodeCounter(o object, at string) (*config.Counter, error) {
	c := config.NewCounter()

	var err error
	if c.IntervalMilliseconds, err = o.interval(at); err != nil {
		return nil, err
	}
	if c.Start, err = o.optionalInt(at, c.Start, "Start"); err != nil {
		return nil, err
	}
	if c.StepBy, err = o.optionalInt(at, c.StepBy, "StepBy"); err != nil {
		return nil, err
	}
	if c.ShouldWrap, err = o.optionalBool(at, c.ShouldWrap, "ShouldRestart", "ShouldWrap"); err != nil {
		return nil, err
	}
	if c.WrapLowerBound, err = o.optionalInt(at, 0, "RestartWhenLessThan", "WrapLowerBound"); err != nil {
		return nil, err
	}
	if c.WrapUpperBound, err = o.optionalInt(at, 0, "RestartWhenGreaterThan", "WrapUpperBound"); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeSequence(o object, at string) (*config.Sequence, error) {
	raw, ok := o.present("Values")
	if !ok {
		return nil, fmt.Errorf("%s: %w", at, config.ErrEmptySequence)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: must be a list, got %s", join(at, "Values"), describe(raw))
	}
	values := make([]config.Value, 0, len(list))
	for i, e := range list {
		v, err := config.FromNative(e)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", join(at, "Values"), i, err)
		}
		values = append(values, v)
	}

	s := config.NewSequence(values)
	var err error
	if s.IntervalMilliseconds, err = o.interval(at); err != nil {
		return nil, err
	}
	if s.StepBy, err = o.optionalInt(at, s.StepBy, "StepBy"); err != nil {
		return nil, err
	}
	if s.ShouldRestart, err = o.optionalBool(at, s.ShouldRestart, "ShouldRestart"); err != nil {
		return nil, err
	}
	return s, nil
}

// stringField returns the string under keys, or "" when absent. Scalars are
// accepted and formatted; lists and objects are rejected.
func (o object) stringField(at string, keys ...string) (string, error) {
	raw, ok := o.present(keys...)
	if !ok {
		return "", nil
	}
	switch x := raw.(type) {
	case string:
		return x, nil
	case json.Number, bool, int, int64, uint64, float64:
		return fmt.Sprint(x), nil
	default:
		return "", fmt.Errorf("%s: must be a string, got %s", join(at, keys[0]), describe(raw))
	}
}

func (o object) intField(at string, keys ...string) (int64, error) {
	raw, _ := o.present(keys...)
	i, ok := toInt(raw)
	if !ok {
		return 0, fmt.Errorf("%s: must be an integer, got %s", join(at, keys[0]), describe(raw))
	}
	return i, nil
}

func (o object) optionalInt(at string, def int64, keys ...string) (int64, error) {
	if _, ok := o.present(keys...); !ok {
		return def, nil
	}
	return o.intField(at, keys...)
}

func (o object) optionalBool(at string, def bool, keys ...string) (bool, error) {
	raw, ok := o.present(keys...)
	if !ok {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s: must be a boolean, got %s", join(at, keys[0]), describe(raw))
	}
	return b, nil
}

func (o object) listField(at string, keys ...string) ([]any, error) {
	raw, ok := o.present(keys...)
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: must be a list, got %s", join(at, keys[0]), describe(raw))
	}
	return list, nil
}

func toInt(raw any) (int64, bool) {
	switch x := raw.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case int:
		return int64(x), true
	case int64:
		return x, true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float64:
		return floatToInt(x)
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func join(at, key string) string {
	if at == "" {
		return key
	}
	return at + "." + key
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, int, int64, uint64, float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
