package config

import (
	"context"
	"path/filepath"
	"strings"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration at path and translates it into the
	// format-agnostic model with all defaults applied. Failures are
	// reported as *LoadError.
	Load(ctx context.Context, path string) (*Folder, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*Folder, error)

func (f LoaderFunc) Load(ctx context.Context, path string) (*Folder, error) {
	return f(ctx, path)
}

// SelectLoader picks the loader registered for the extension of path
// (lower-cased, including the dot). Paths with no registered extension use
// fallback.
func SelectLoader(path string, byExt map[string]Loader, fallback Loader) Loader {
	if l, ok := byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return l
	}
	return fallback
}
