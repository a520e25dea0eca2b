package jsonconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a configuration document.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatFor returns the format implied by the extension of path. Anything
// that is not .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// Loader is the JSON and YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new JSON/YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads and decodes the document at path. Every failure is returned as
// a *config.LoadError.
func (l *Loader) Load(ctx context.Context, path string) (*config.Folder, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, config.NewLoadError(path, err)
	}

	format := FormatFor(path)
	logger.Debug("Decoding node configuration.", "path", path, "format", format.String(), "bytes", len(data))

	root, err := Decode(data, format)
	if err != nil {
		return nil, config.NewLoadError(path, err)
	}
	logger.Debug("Node configuration decoded.", "path", path, "nodes", root.CountNodes())
	return root, nil
}

// Decode parses a whole document in the given format.
func Decode(data []byte, format Format) (*config.Folder, error) {
	var (
		tree any
		err  error
	)
	switch format {
	case YAML:
		tree, err = parseYAML(data)
	default:
		tree, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}

	obj, ok := asObject(tree)
	if !ok {
		return nil, fmt.Errorf("document root must be an object, got %s", describe(tree))
	}
	return decodeFolder(obj, "")
}

func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return nil, errors.New("invalid json: unexpected data after the document")
	}
	return tree, nil
}

func parseYAML(data []byte) (any, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return normalizeYAML(tree), nil
}
