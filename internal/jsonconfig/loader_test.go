package jsonconfig

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "Folder": "MyTelemetry",
  "FolderList": [
    { "Folder": "Child", "NodeList": [ { "NodeId": "c1" } ] }
  ],
  "NodeList": [
    {
      "NodeId": 1023,
      "Name": "ActualCounter",
      "Parameters": {
        "$type": "OpcPlc.PluginNodes.CountUpSimulatedParameters, opc-plc",
        "IntervalMilliseconds": 500,
        "Start": 5,
        "StepBy": 3,
        "ShouldRestart": true,
        "RestartWhenLessThan": 0,
        "RestartWhenGreaterThan": 100
      }
    },
    {
      "nodeid": "aRandomString",
      "datatype": "Double",
      "value": 3.3,
      "parameters": { "$type": "Sequence", "values": [10, "x", true, 1.5] }
    },
    { "NodeId": "0f7c3e8a-2b64-4cf0-9a39-8a0c1a7f5b11", "AccessLevel": "CurrentRead", "ValueRank": 1 }
  ]
}`

func TestLoad_JSON(t *testing.T) {
	path := testutil.WriteFile(t, "nodes.json", sampleJSON)

	root, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "MyTelemetry", root.Name)
	assert.Nil(t, root.NamespaceIndex)
	require.Len(t, root.Nodes, 3)
	require.Len(t, root.Folders, 1)
	assert.Equal(t, 4, root.CountNodes())

	counterNode := root.Nodes[0]
	assert.Equal(t, int64(1023), counterNode.ID.Raw)
	assert.Equal(t, "ActualCounter", counterNode.Name)
	assert.Equal(t, config.DefaultDataType, counterNode.DataType)
	assert.Equal(t, config.DefaultValueRank, counterNode.ValueRank)
	assert.Equal(t, config.DefaultAccessLevel, counterNode.AccessLevel)
	assert.True(t, counterNode.Value.IsNull())
	assert.Equal(t, &config.Counter{
		IntervalMilliseconds: 500,
		Start:                5,
		StepBy:               3,
		ShouldWrap:           true,
		WrapLowerBound:       0,
		WrapUpperBound:       100,
	}, counterNode.Simulation)

	seqNode := root.Nodes[1]
	assert.Equal(t, "aRandomString", seqNode.ID.Raw)
	assert.Equal(t, "Double", seqNode.DataType)
	assert.Equal(t, config.Float(3.3), seqNode.Value)
	seq, ok := seqNode.Simulation.(*config.Sequence)
	require.True(t, ok)
	assert.Equal(t, []config.Value{config.Int(10), config.String("x"), config.Bool(true), config.Float(1.5)}, seq.Values)
	assert.EqualValues(t, config.DefaultIntervalMs, seq.IntervalMilliseconds)
	assert.EqualValues(t, 1, seq.StepBy)
	assert.True(t, seq.ShouldRestart)

	plain := root.Nodes[2]
	assert.Equal(t, "CurrentRead", plain.AccessLevel)
	assert.Equal(t, 1, plain.ValueRank)
	assert.Nil(t, plain.Simulation)

	assert.Equal(t, "Child", root.Folders[0].Name)
	assert.Equal(t, "c1", root.Folders[0].Nodes[0].ID.Raw)
}

func TestLoad_YAML(t *testing.T) {
	path := testutil.WriteFile(t, "nodes.yaml", `
Folder: FromYaml
NamespaceIndex: 2
NodeList:
  - NodeId: 7
    Parameters:
      $type: CountUp
      IntervalMilliseconds: 10
      ShouldWrap: true
      WrapLowerBound: 0
      WrapUpperBound: 3
  - NodeId: seq
    Simulation:
      Values: [a, b]
      ShouldRestart: false
FolderList:
  - Folder: Nested
`)

	root, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "FromYaml", root.Name)
	require.NotNil(t, root.NamespaceIndex)
	assert.Equal(t, 2, *root.NamespaceIndex)
	require.Len(t, root.Nodes, 2)
	assert.Equal(t, int64(7), root.Nodes[0].ID.Raw)

	c, ok := root.Nodes[0].Simulation.(*config.Counter)
	require.True(t, ok)
	assert.EqualValues(t, 10, c.IntervalMilliseconds)
	assert.True(t, c.ShouldWrap)
	assert.EqualValues(t, 3, c.WrapUpperBound)

	s, ok := root.Nodes[1].Simulation.(*config.Sequence)
	require.True(t, ok, "Values without $type is a sequence")
	assert.Equal(t, []config.Value{config.String("a"), config.String("b")}, s.Values)
	assert.False(t, s.ShouldRestart)

	require.Len(t, root.Folders, 1)
	assert.Equal(t, "Nested", root.Folders[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty sequence",
			content: `{"Folder":"f","NodeList":[{"NodeId":1,"Parameters":{"$type":"Sequence","Values":[]}}]}`,
			wantErr: config.ErrEmptySequence,
		},
		{
			name:    "sequence without values",
			content: `{"Folder":"f","NodeList":[{"NodeId":1,"Parameters":{"$type":"Sequence"}}]}`,
			wantErr: config.ErrEmptySequence,
		},
		{
			name:    "zero interval",
			content: `{"Folder":"f","NodeList":[{"NodeId":1,"Parameters":{"$type":"CountUp","IntervalMilliseconds":0}}]}`,
			wantErr: config.ErrZeroInterval,
		},
		{
			name:    "unknown type",
			content: `{"Folder":"f","NodeList":[{"NodeId":1,"Parameters":{"$type":"Random"}}]}`,
			wantErr: config.ErrUnknownSimulation,
		},
		{
			name:    "missing identifier",
			content: `{"Folder":"f","NodeList":[{"Name":"x"}]}`,
			wantErr: config.ErrMissingIdentifier,
		},
		{
			name:    "object value",
			content: `{"Folder":"f","NodeList":[{"NodeId":1,"Value":{"a":1}}]}`,
			wantMsg: "NodeList[0].Value",
		},
		{
			name:    "negative interval",
			content: `{"Folder":"f","NodeList":[{"NodeId":1,"Parameters":{"IntervalMilliseconds":-5}}]}`,
			wantMsg: "out of range",
		},
		{
			name:    "malformed json",
			content: `{"Folder":`,
			wantMsg: "invalid json",
		},
		{
			name:    "root is a list",
			content: `[]`,
			wantMsg: "document root must be an object",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := testutil.WriteFile(t, "nodes.json", tc.content)
			root, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)
			assert.Nil(t, root)

			var loadErr *config.LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, path, loadErr.Path)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestLoad_IgnoresUnknownFields(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "nodes.json",
			content: `{
  "Folder": "Plant",
  "Comment": "top",
  "Owner": { "team": "ops" },
  "NodeList": [
    {
      "NodeId": 1,
      "Unit": "bar",
      "Tags": ["a", "b"],
      "Parameters": { "$type": "CountUp", "IntervalMilliseconds": 100, "Jitter": 5 }
    }
  ],
  "FolderList": [ { "Folder": "Line", "Extra": null, "NodeList": [ { "NodeId": 2, "Extra": {} } ] } ]
}`,
		},
		{
			name: "yaml",
			file: "nodes.yaml",
			content: `
Folder: Plant
Comment: top
Owner:
  team: ops
NodeList:
  - NodeId: 1
    Unit: bar
    Tags: [a, b]
    Parameters:
      $type: CountUp
      IntervalMilliseconds: 100
      Jitter: 5
FolderList:
  - Folder: Line
    Extra:
    NodeList:
      - NodeId: 2
        Extra: {}
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := NewLoader().Load(context.Background(), testutil.WriteFile(t, tc.file, tc.content))
			require.NoError(t, err)

			assert.Equal(t, "Plant", root.Name)
			assert.Equal(t, 2, root.CountNodes())
			c, ok := root.Nodes[0].Simulation.(*config.Counter)
			require.True(t, ok)
			assert.EqualValues(t, 100, c.IntervalMilliseconds)
			require.Len(t, root.Folders, 1)
			assert.Equal(t, int64(2), root.Folders[0].Nodes[0].ID.Raw)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	_, err := NewLoader().Load(context.Background(), path)

	var loadErr *config.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecode_IdentifierShapes(t *testing.T) {
	root, err := Decode([]byte(`{"NodeList":[{"NodeId":3.5},{"NodeId":true},{"NodeId":4.0},{"NodeId":9007199254740993}]}`), JSON)
	require.NoError(t, err)
	require.Len(t, root.Nodes, 4)

	assert.Equal(t, 3.5, root.Nodes[0].ID.Raw)
	assert.Equal(t, true, root.Nodes[1].ID.Raw)
	assert.Equal(t, 4.0, root.Nodes[2].ID.Raw)
	assert.Equal(t, int64(9007199254740993), root.Nodes[3].ID.Raw, "large integers stay exact")
}

func TestSimulationKind(t *testing.T) {
	testCases := map[string]string{
		"CountUp":                    kindCounter,
		"counter":                    kindCounter,
		"CountUpSimulatedParameters": kindCounter,
		"OpcPlc.PluginNodes.SequenceSimulatedParameters, opc-plc": kindSequence,
		" Sequence ": kindSequence,
	}
	for in, want := range testCases {
		got, ok := simulationKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := simulationKind("Random")
	assert.False(t, ok)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, YAML, FormatFor("a/b.YML"))
	assert.Equal(t, YAML, FormatFor("b.yaml"))
	assert.Equal(t, JSON, FormatFor("b.json"))
	assert.Equal(t, JSON, FormatFor("nodesfile"))
}
