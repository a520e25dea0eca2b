package jsonconfig

import (
	"fmt"
	"time"
)

// normalizeYAML converts a tree decoded by yaml.v3 into the shapes the JSON
// decoder produces: string-keyed maps, []any lists and scalar leaves.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalizeYAML(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeYAML(e)
		}
		return out
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case float32:
		return float64(x)
	default:
		return v
	}
}
