package app

import (
	"context"
	"errors"

	"github.com/specialistvlad/nodesim/internal/builder"
	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/ctxlog"
	"github.com/specialistvlad/nodesim/internal/registry"
)

// LoadNodes reads the configured node file and creates its tree under the
// root of the address space. Load and build failures are logged and yield an
// empty result, so the host keeps running with no user nodes. Without a node
// file it returns an empty result silently.
func (a *App) LoadNodes(ctx context.Context) *builder.Result {
	logger := ctxlog.FromContext(ctx)
	empty := &builder.Result{Registry: registry.New()}

	path := a.config.NodesFile
	if path == "" {
		logger.Debug("No node file configured.")
		return empty
	}

	loader := config.SelectLoader(path, a.loaders, a.fallback)
	root, err := loader.Load(ctx, path)
	if err != nil {
		logLoadError(ctx, path, err)
		logger.Info("Completed processing user defined node file.")
		return empty
	}

	logger.Info("Processing node information configured in " + path + ".")
	result, err := builder.Build(ctx, root, a.space, a.space.Root())
	if err != nil {
		logLoadError(ctx, path, err)
		result = empty
	}
	logger.Info("Completed processing user defined node file.", "nodes", len(result.Nodes), "simulated", result.Registry.Len())
	return result
}

func logLoadError(ctx context.Context, path string, err error) {
	var loadErr *config.LoadError
	if errors.As(err, &loadErr) {
		err = loadErr.Err
	}
	ctxlog.FromContext(ctx).Error("Error loading user defined node file.", "file", path, "error", err)
}
