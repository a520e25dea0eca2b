package datatype

import (
	"strconv"
	"strings"
)

// BuiltIn is the numeric identifier of a built-in data type.
type BuiltIn uint32

const (
	Null BuiltIn = iota
	Boolean
	SByte
	Byte
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float
	Double
	String
	DateTime
	Guid
	ByteString
	XmlElement
	NodeId
	ExpandedNodeId
	StatusCode
	QualifiedName
	LocalizedText
	ExtensionObject
	DataValue
	Variant
	DiagnosticInfo
	Number
	Integer
	UInteger
	Enumeration
)

var builtInNames = [...]string{
	"Null", "Boolean", "SByte", "Byte", "Int16", "UInt16", "Int32", "UInt32",
	"Int64", "UInt64", "Float", "Double", "String", "DateTime", "Guid",
	"ByteString", "XmlElement", "NodeId", "ExpandedNodeId", "StatusCode",
	"QualifiedName", "LocalizedText", "ExtensionObject", "DataValue", "Variant",
	"DiagnosticInfo", "Number", "Integer", "UInteger", "Enumeration",
}

var builtInByName = func() map[string]BuiltIn {
	m := make(map[string]BuiltIn, len(builtInNames))
	for i, name := range builtInNames {
		m[name] = BuiltIn(i)
	}
	return m
}()

func (b BuiltIn) String() string {
	if int(b) < len(builtInNames) {
		return builtInNames[b]
	}
	return "BuiltIn(" + strconv.FormatUint(uint64(b), 10) + ")"
}

// Lookup resolves a data type by its exact name or by its decimal id.
func Lookup(name string) (BuiltIn, bool) {
	name = strings.TrimSpace(name)
	if b, ok := builtInByName[name]; ok {
		return b, true
	}
	if n, err := strconv.ParseUint(name, 10, 32); err == nil && n < uint64(len(builtInNames)) {
		return BuiltIn(n), true
	}
	return 0, false
}

// AccessLevel is the access level bit mask of a variable.
type AccessLevel byte

const (
	AccessNone               AccessLevel = 0x00
	AccessCurrentRead        AccessLevel = 0x01
	AccessCurrentWrite       AccessLevel = 0x02
	AccessCurrentReadOrWrite AccessLevel = 0x03
	AccessHistoryRead        AccessLevel = 0x04
	AccessHistoryWrite       AccessLevel = 0x08
	AccessHistoryReadOrWrite AccessLevel = 0x0C
	AccessSemanticChange     AccessLevel = 0x10
	AccessStatusWrite        AccessLevel = 0x20
	AccessTimestampWrite     AccessLevel = 0x40
)

var accessByName = map[string]AccessLevel{
	"None":               AccessNone,
	"CurrentRead":        AccessCurrentRead,
	"CurrentWrite":       AccessCurrentWrite,
	"CurrentReadOrWrite": AccessCurrentReadOrWrite,
	"HistoryRead":        AccessHistoryRead,
	"HistoryWrite":       AccessHistoryWrite,
	"HistoryReadOrWrite": AccessHistoryReadOrWrite,
	"SemanticChange":     AccessSemanticChange,
	"StatusWrite":        AccessStatusWrite,
	"TimestampWrite":     AccessTimestampWrite,
}

// LookupAccess resolves an access level by its exact name.
func LookupAccess(name string) (AccessLevel, bool) {
	a, ok := accessByName[name]
	return a, ok
}

// CanRead reports whether the current value may be read.
func (a AccessLevel) CanRead() bool { return a&AccessCurrentRead != 0 }

// CanWrite reports whether the current value may be written by clients.
func (a AccessLevel) CanWrite() bool { return a&AccessCurrentWrite != 0 }
