package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/nodesim/internal/addressspace"
	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/ctxlog"
	"github.com/specialistvlad/nodesim/internal/datatype"
	"github.com/specialistvlad/nodesim/internal/nodeid"
	"github.com/specialistvlad/nodesim/internal/registry"
)

// Build creates the tree rooted at root under parent. A nil root yields an
// empty result.
func Build(ctx context.Context, root *config.Folder, host Host, parent *addressspace.Folder) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	result := &Result{Registry: registry.New()}
	if root == nil {
		logger.Debug("Build: No configuration tree, nothing to create.")
		return result, nil
	}
	if host == nil {
		return nil, errors.New("builder requires a host")
	}

	ns, err := host.NamespaceIndexFor(addressspace.NamespaceApplications)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve applications namespace: %w", err)
	}

	logger.Debug("Build: Starting tree construction.", "configured_nodes", root.CountNodes())
	b := &treeBuilder{host: host, result: result}
	if err := b.folder(ctx, root, parent, "", ns); err != nil {
		return nil, err
	}
	logger.Info("Build: Tree construction successful.",
		"nodes", len(result.Nodes),
		"simulated", result.Registry.Len(),
		"skipped", b.skipped)
	return result, nil
}

type treeBuilder struct {
	host    Host
	result  *Result
	skipped int
}

func (b *treeBuilder) folder(ctx context.Context, cfg *config.Folder, parent *addressspace.Folder, parentPath string, inherited uint16) error {
	path := cfg.Name
	if parentPath != "" {
		path = parentPath + "/" + cfg.Name
	}
	folderCtx := ctxlog.With(ctx, "path", path)
	logger := ctxlog.FromContext(folderCtx)
	ns := b.namespace(logger, cfg, inherited)

	logger.Debug("Build: Creating folder.", "namespace", ns)
	f, err := b.host.CreateFolder(parent, path, cfg.Name, ns)
	if err != nil {
		return fmt.Errorf("failed to create folder %q: %w", path, err)
	}

	for _, n := range cfg.Nodes {
		b.node(folderCtx, n, f, path, ns)
	}
	for _, child := range cfg.Folders {
		if err := b.folder(ctx, child, f, path, ns); err != nil {
			return err
		}
	}
	return nil
}

// namespace returns the namespace the folder and its nodes live in: the
// folder's override when it names a registered namespace, the inherited one
// otherwise.
func (b *treeBuilder) namespace(logger *slog.Logger, cfg *config.Folder, inherited uint16) uint16 {
	if cfg.NamespaceIndex == nil {
		return inherited
	}
	idx := *cfg.NamespaceIndex
	if idx >= 0 && idx <= int(^uint16(0)) {
		if _, ok := b.host.NamespaceURI(uint16(idx)); ok {
			return uint16(idx)
		}
	}
	logger.Error("Namespace index of folder is not registered, using the inherited namespace.",
		"namespace_index", idx,
		"fallback", inherited)
	return inherited
}

func (b *treeBuilder) node(ctx context.Context, n *config.Node, parent *addressspace.Folder, path string, ns uint16) {
	logger := ctxlog.FromContext(ctx)

	id, err := nodeid.Normalize(n.ID.Raw)
	if err != nil {
		logger.Error("Identifier type of node is not supported.",
			"name", n.Name,
			"raw_type", fmt.Sprintf("%T", n.ID.Raw),
			"node_id", id.String(),
			"error", err)
	}
	name, description := nodeid.ApplyNames(id, n.Name, n.Description)
	logger = logger.With("node_id", id.String())

	dt, ok := datatype.Lookup(n.DataType)
	if !ok {
		fallback, _ := datatype.Lookup(config.DefaultDataType)
		logResolution(logger, &FieldResolutionError{
			NodeID: id.String(), Field: "data type", Value: n.DataType, Fallback: config.DefaultDataType,
		})
		dt = fallback
	}

	access, ok := datatype.LookupAccess(n.AccessLevel)
	if !ok {
		fallback, _ := datatype.LookupAccess(config.DefaultAccessLevel)
		logResolution(logger, &FieldResolutionError{
			NodeID: id.String(), Field: "access level", Value: n.AccessLevel, Fallback: config.DefaultAccessLevel,
		})
		access = fallback
	}

	logger.Debug("Build: Creating node.",
		"name", name,
		"id_kind", id.Kind.String(),
		"data_type", dt.String(),
		"namespace", ns)

	v, err := b.host.CreateVariable(parent, addressspace.VariableSpec{
		ID:          id,
		Namespace:   ns,
		Name:        name,
		DataType:    dt,
		ValueRank:   n.ValueRank,
		AccessLevel: access,
		Description: description,
		Value:       n.Value,
	})
	if err != nil {
		b.skipped++
		logger.Error("Failed to create node, skipping it.", "error", err)
		return
	}

	ref := NodeRef{ID: id, Namespace: ns, Path: path, Variable: v}
	if n.Simulation != nil {
		ref.Runtime = b.result.Registry.Register(v, n.Simulation)
	}
	b.result.Nodes = append(b.result.Nodes, ref)
}

func logResolution(logger *slog.Logger, err *FieldResolutionError) {
	logger.Error("Field of node cannot be resolved, using the default.",
		"field", err.Field,
		"value", err.Value,
		"fallback", err.Fallback,
		"error", err)
}
