// Package jsonparse scans JSON documents in a single pass, either as a stream
// of events or as a small value tree the view model can be built from.
package jsonparse

import (
	"errors"
)

// ErrInvalidJSON is returned when the input is not a single well-formed JSON document
var ErrInvalidJSON = errors.New("invalid JSON document")

// Type is the type tag of a parsed JSON value
type Type int

const (
	Unknown Type = iota // Tag not recognized by the parser adapter
	Object
	Array
	String
	Number
	Boolean
	Null
)

func (t Type) String() string {
	switch t {
	case Object:
		return "object"
	case Array:
		return "array"
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	default:
		return "unknown"
	}
}

// Member is a single object field
type Member struct {
	Key   string
	Value Value
}

// Value is a node of the parsed JSON tree
type Value interface {
	// Type returns the value's type tag
	Type() Type
	// Raw returns the raw source text of the value
	Raw() string
	// Members returns the object's fields in document order (nil for non-objects)
	Members() []Member
	// Elements returns the array's values in document order (nil for non-arrays)
	Elements() []Value
}

// Parse parses data and returns the document root. The whole tree is built
// in one pass over the input.
func Parse(data []byte) (Value, error) {
	b := &treeBuilder{src: string(data)}
	if err := Walk(b.src, b); err != nil {
		return nil, err
	}
	return b.root, nil
}

// node is a parsed value. Containers hold their children.
type node struct {
	typ      Type
	raw      string
	members  []Member
	elements []Value
}

func (n *node) Type() Type        { return n.typ }
func (n *node) Raw() string       { return n.raw }
func (n *node) Members() []Member { return n.members }
func (n *node) Elements() []Value { return n.elements }

// treeBuilder assembles nodes from Walk events
type treeBuilder struct {
	src   string
	root  *node
	open  []*node
	start []int
}

func (b *treeBuilder) add(it Item, n *node) {
	if len(b.open) == 0 {
		b.root = n
		return
	}
	parent := b.open[len(b.open)-1]
	if parent.typ == Object {
		parent.members = append(parent.members, Member{Key: it.Key, Value: n})
	} else {
		parent.elements = append(parent.elements, n)
	}
}

func (b *treeBuilder) BeginContainer(it Item) error {
	n := &node{typ: it.Type}
	b.add(it, n)
	b.open = append(b.open, n)
	b.start = append(b.start, it.Offset)
	return nil
}

func (b *treeBuilder) Primitive(it Item) error {
	b.add(it, &node{typ: it.Type, raw: it.Raw})
	return nil
}

func (b *treeBuilder) EndContainer(end int) error {
	last := len(b.open) - 1
	b.open[last].raw = b.src[b.start[last]:end]
	b.open = b.open[:last]
	b.start = b.start[:last]
	return nil
}
