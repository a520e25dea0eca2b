package nodeid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Parse creates an ID from its canonical string representation, e.g. `i=5`,
// `g=0c2a3b6e-...` or `s=Boiler`.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return ID{}, fmt.Errorf("identifier cannot be empty")
	}

	prefix, value, ok := strings.Cut(raw, "=")
	if !ok {
		return ID{}, fmt.Errorf("identifier %q has no type prefix", raw)
	}

	switch prefix {
	case "i":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return ID{}, fmt.Errorf("invalid numeric identifier %q: %w", raw, err)
		}
		return NewNumeric(n), nil
	case "g":
		g, err := uuid.Parse(value)
		if err != nil {
			return ID{}, fmt.Errorf("invalid guid identifier %q: %w", raw, err)
		}
		return NewGUID(g), nil
	case "s":
		return NewString(value), nil
	default:
		return ID{}, fmt.Errorf("unknown identifier type prefix %q", prefix)
	}
}
