package hclconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses the file at path and translates its folder block into the
// format-agnostic model. Every failure is returned as a *config.LoadError.
func (l *Loader) Load(ctx context.Context, path string) (*config.Folder, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, config.NewLoadError(path, fmt.Errorf("failed to parse HCL file %s: %w", path, diags))
	}

	root, err := l.decodeBody(ctx, file.Body)
	if err != nil {
		return nil, config.NewLoadError(path, err)
	}
	logger.Debug("HCL loading complete.", "path", path, "nodes", root.CountNodes())
	return root, nil
}

// Parse decodes HCL source held in memory. filename is used in diagnostics.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*config.Folder, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, config.NewLoadError(filename, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags))
	}
	root, err := l.decodeBody(ctx, file.Body)
	if err != nil {
		return nil, config.NewLoadError(filename, err)
	}
	return root, nil
}

func (l *Loader) decodeBody(ctx context.Context, body hcl.Body) (*config.Folder, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}
	switch len(root.Folders) {
	case 0:
		return nil, errors.New("a top-level folder block is required")
	case 1:
	default:
		return nil, fmt.Errorf("expected one top-level folder block, found %d", len(root.Folders))
	}
	return l.translateFolder(ctx, root.Folders[0], root.Folders[0].Name)
}

func (l *Loader) translateFolder(ctx context.Context, b *folderBlock, at string) (*config.Folder, error) {
	f := &config.Folder{Name: b.Name, NamespaceIndex: b.NamespaceIndex}

	for i, nb := range b.Nodes {
		n, err := l.translateNode(ctx, nb)
		if err != nil {
			return nil, fmt.Errorf("folder %q, node %d: %w", at, i, err)
		}
		f.Nodes = append(f.Nodes, n)
	}
	for _, cb := range b.Folders {
		child, err := l.translateFolder(ctx, cb, at+"/"+cb.Name)
		if err != nil {
			return nil, err
		}
		f.Folders = append(f.Folders, child)
	}
	return f, nil
}

func (l *Loader) translateNode(ctx context.Context, b *nodeBlock) (*config.Node, error) {
	idVal, err := evalExpr(b.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %w", err)
	}
	rawID, err := ctyToIdentifier(idVal)
	if err != nil {
		return nil, fmt.Errorf("invalid id at %s: %w", b.ID.Range(), err)
	}

	n := config.NewNode(config.RawIdentifier{Raw: rawID})
	if b.Name != nil {
		n.Name = *b.Name
	}
	if b.Description != nil {
		n.Description = *b.Description
	}
	if b.DataType != nil {
		n.DataType = *b.DataType
	}
	if b.AccessLevel != nil {
		n.AccessLevel = *b.AccessLevel
	}
	if b.ValueRank != nil {
		n.ValueRank = *b.ValueRank
	}

	if isExprDefined(ctx, b.Value, "value") {
		v, err := evalExpr(b.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid value: %w", err)
		}
		if n.Value, err = ctyToValue(v); err != nil {
			return nil, fmt.Errorf("invalid value at %s: %w", b.Value.Range(), err)
		}
	}

	switch {
	case b.Counter != nil && b.Sequence != nil:
		return nil, errors.New("a node may declare only one of counter or sequence")
	case b.Counter != nil:
		n.Simulation = translateCounter(b.Counter)
	case b.Sequence != nil:
		s, err := l.translateSequence(ctx, b.Sequence)
		if err != nil {
			return nil, err
		}
		n.Simulation = s
	}

	if err := config.Validate(n.Simulation); err != nil {
		return nil, err
	}
	return n, nil
}

func translateCounter(b *counterBlock) *config.Counter {
	c := config.NewCounter()
	if b.IntervalMs != nil {
		c.IntervalMilliseconds = *b.IntervalMs
	}
	if b.Start != nil {
		c.Start = *b.Start
	}
	if b.StepBy != nil {
		c.StepBy = *b.StepBy
	}
	if b.ShouldWrap != nil {
		c.ShouldWrap = *b.ShouldWrap
	}
	if b.WrapLowerBound != nil {
		c.WrapLowerBound = *b.WrapLowerBound
	}
	if b.WrapUpperBound != nil {
		c.WrapUpperBound = *b.WrapUpperBound
	}
	return c
}

func (l *Loader) translateSequence(ctx context.Context, b *sequenceBlock) (*config.Sequence, error) {
	var values []config.Value
	if isExprDefined(ctx, b.Values, "values") {
		v, err := evalExpr(b.Values)
		if err != nil {
			return nil, fmt.Errorf("invalid sequence values: %w", err)
		}
		list, err := ctyToValue(v)
		if err != nil {
			return nil, fmt.Errorf("invalid sequence values: %w", err)
		}
		if list.Kind() != config.KindList && !list.IsNull() {
			return nil, fmt.Errorf("sequence values must be a list, got %s", list.Kind())
		}
		values = list.Elements()
	}

	s := config.NewSequence(values)
	if b.IntervalMs != nil {
		s.IntervalMilliseconds = *b.IntervalMs
	}
	if b.StepBy != nil {
		s.StepBy = *b.StepBy
	}
	if b.ShouldRestart != nil {
		s.ShouldRestart = *b.ShouldRestart
	}
	return s, nil
}
