package hclconfig

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top level of a configuration file. Every block keeps a
// remain body so unknown attributes and blocks are ignored at any level.
type fileRoot struct {
	Folders []*folderBlock `hcl:"folder,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

type folderBlock struct {
	Name           string         `hcl:"name,label"`
	NamespaceIndex *int           `hcl:"namespace_index,optional"`
	Nodes          []*nodeBlock   `hcl:"node,block"`
	Folders        []*folderBlock `hcl:"folder,block"`
	Remain         hcl.Body       `hcl:",remain"`
}

type nodeBlock struct {
	ID          hcl.Expression `hcl:"id"`
	Name        *string        `hcl:"name,optional"`
	DataType    *string        `hcl:"data_type,optional"`
	ValueRank   *int           `hcl:"value_rank,optional"`
	AccessLevel *string        `hcl:"access_level,optional"`
	Description *string        `hcl:"description,optional"`
	Value       hcl.Expression `hcl:"value,optional"`
	Counter     *counterBlock  `hcl:"counter,block"`
	Sequence    *sequenceBlock `hcl:"sequence,block"`
	Remain      hcl.Body       `hcl:",remain"`
}

type counterBlock struct {
	IntervalMs     *uint32  `hcl:"interval_ms,optional"`
	Start          *int64   `hcl:"start,optional"`
	StepBy         *int64   `hcl:"step_by,optional"`
	ShouldWrap     *bool    `hcl:"should_wrap,optional"`
	WrapLowerBound *int64   `hcl:"wrap_lower_bound,optional"`
	WrapUpperBound *int64   `hcl:"wrap_upper_bound,optional"`
	Remain         hcl.Body `hcl:",remain"`
}

type sequenceBlock struct {
	IntervalMs    *uint32        `hcl:"interval_ms,optional"`
	Values        hcl.Expression `hcl:"values,optional"`
	StepBy        *int64         `hcl:"step_by,optional"`
	ShouldRestart *bool          `hcl:"should_restart,optional"`
	Remain        hcl.Body       `hcl:",remain"`
}
