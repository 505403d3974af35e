// Package model contains the flattened view model of a JSON document
package model

import "strings"

// Invalid is the index used where a node has no parent or no skip target
const Invalid = -1

// Kind is the kind of a display entry
type Kind int

const (
	KindObjectOpen Kind = iota
	KindArrayOpen
	KindString
	KindNumber
	KindBoolean
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObjectOpen:
		return "object"
	case KindArrayOpen:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Collapsible reports whether entries of this kind open a container
func (k Kind) Collapsible() bool {
	return k == KindObjectOpen || k == KindArrayOpen
}

// Entry is one flattened display row
type Entry struct {
	Kind    Kind
	Key     string // Field name, only meaningful when HasKey is set
	HasKey  bool
	Value   string // "{" or "[" for containers, the raw token otherwise
	Indent  int
	LineNum int // 1-based document position, 0 for the tail sentinel
}

// Collapsible reports whether the entry opens an object or array
func (e Entry) Collapsible() bool {
	return e.Kind.Collapsible()
}

const jsonWhitespace = " \t\r\n"

// trimSpace trims JSON whitespace (and only JSON whitespace) from both ends
func trimSpace(s string) string {
	return strings.Trim(s, jsonWhitespace)
}
