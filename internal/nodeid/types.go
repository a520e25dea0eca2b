package nodeid

import (
	"strconv"

	"github.com/google/uuid"
)

// Kind classifies an identifier.
type Kind uint8

const (
	Numeric Kind = iota + 1
	Guid
	String
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Guid:
		return "guid"
	case String:
		return "string"
	default:
		return "invalid"
	}
}

// prefix returns the short form used in the canonical string.
func (k Kind) prefix() string {
	switch k {
	case Numeric:
		return "i="
	case Guid:
		return "g="
	default:
		return "s="
	}
}

// ID is a normalized identifier. Exactly one of the value fields is
// meaningful, selected by Kind. The zero ID is invalid.
type ID struct {
	Kind    Kind
	Numeric int64
	GUID    uuid.UUID
	Text    string
}

// NewNumeric returns a numeric identifier.
func NewNumeric(n int64) ID { return ID{Kind: Numeric, Numeric: n} }

// NewGUID returns a GUID identifier.
func NewGUID(g uuid.UUID) ID { return ID{Kind: Guid, GUID: g} }

// NewString returns a string identifier.
func NewString(s string) ID { return ID{Kind: String, Text: s} }

// IsValid reports whether id carries a classification.
func (id ID) IsValid() bool {
	return id.Kind == Numeric || id.Kind == Guid || id.Kind == String
}

// Value returns the identifier value without its prefix.
func (id ID) Value() string {
	switch id.Kind {
	case Numeric:
		return strconv.FormatInt(id.Numeric, 10)
	case Guid:
		return id.GUID.String()
	default:
		return id.Text
	}
}

// String serializes the identifier into its canonical `i=`, `g=` or `s=` form.
func (id ID) String() string {
	if !id.IsValid() {
		return ""
	}
	return id.Kind.prefix() + id.Value()
}
