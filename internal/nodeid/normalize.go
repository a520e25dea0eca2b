package nodeid

import (
	"fmt"

	"github.com/google/uuid"
)

// TypeError reports an identifier that was neither an integer nor a string.
// The identifier is still usable: Normalize returns the coerced string form
// together with the error.
type TypeError struct {
	Raw any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("identifier type %T is not supported, only integer, string and guid are; defaulting to string", e.Raw)
}

// Normalize classifies a raw identifier. The returned ID is always valid;
// a non-nil error is a *TypeError describing a coercion.
//
// Normalizing an ID or a uuid.UUID returns it unchanged.
func Normalize(raw any) (ID, error) {
	switch v := raw.(type) {
	case ID:
		if v.IsValid() {
			return v, nil
		}
		return NewString(""), &TypeError{Raw: raw}
	case uuid.UUID:
		return NewGUID(v), nil
	case int64:
		return NewNumeric(v), nil
	case int:
		return NewNumeric(int64(v)), nil
	case int32:
		return NewNumeric(int64(v)), nil
	case uint32:
		return NewNumeric(int64(v)), nil
	case string:
		if g, err := uuid.Parse(v); err == nil {
			return NewGUID(g), nil
		}
		return NewString(v), nil
	case nil:
		return NewString(""), &TypeError{Raw: raw}
	default:
		text := fmt.Sprint(raw)
		// The coerced text may itself be a GUID, as with any other string.
		if g, err := uuid.Parse(text); err == nil {
			return NewGUID(g), &TypeError{Raw: raw}
		}
		return NewString(text), &TypeError{Raw: raw}
	}
}

// ApplyNames returns the browse name and description for a node, filling an
// empty name with the canonical identifier and an empty description with the
// name.
func ApplyNames(id ID, name, description string) (string, string) {
	if name == "" {
		name = id.String()
	}
	if description == "" {
		description = name
	}
	return name, description
}
