package model

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pstuifzand/tui-jsonviewer/internal/jsonparse"
)

// ErrMalformedDocument is returned when a document cannot be turned into a view model
var ErrMalformedDocument = errors.New("malformed document")

// Load scans data once and builds its view model. Every node records the
// byte span of its value in data.
func Load(data []byte) (*ViewModel, error) {
	b := &streamBuilder{m: newViewModel()}
	if err := jsonparse.Walk(string(data), b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return b.m.finish()
}

// Build flattens root into a new view model. Nodes built this way have no
// source span.
func Build(root jsonparse.Value) (*ViewModel, error) {
	m := newViewModel()
	if err := m.flatten(root); err != nil {
		return nil, err
	}
	return m.finish()
}

// finish appends the tail, then computes skip links and line numbers. The
// skip pass reads only Kind and Indent and writes skip; the numbering pass
// writes only LineNum, so the two run concurrently.
func (m *ViewModel) finish() (*ViewModel, error) {
	m.appendTail()

	var g errgroup.Group
	g.Go(func() error {
		m.buildSkips()
		return nil
	})
	g.Go(func() error {
		m.SetLineNums()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// streamBuilder appends a node per value reported by jsonparse.Walk
type streamBuilder struct {
	m    *ViewModel
	open []int // containers not yet closed, innermost last
}

func (b *streamBuilder) parent() int {
	if len(b.open) == 0 {
		return Invalid
	}
	return b.open[len(b.open)-1]
}

func (b *streamBuilder) BeginContainer(it jsonparse.Item) error {
	e := Entry{Key: it.Key, HasKey: it.HasKey, Indent: len(b.open), Kind: KindObjectOpen, Value: "{"}
	if it.Type == jsonparse.Array {
		e.Kind, e.Value = KindArrayOpen, "["
	}
	idx := b.m.appendSpan(e, b.parent(), it.Offset, Invalid)
	b.open = append(b.open, idx)
	return nil
}

func (b *streamBuilder) Primitive(it jsonparse.Item) error {
	e := Entry{Key: it.Key, HasKey: it.HasKey, Indent: len(b.open), Kind: primitiveKind(it.Type), Value: it.Raw}
	b.m.appendSpan(e, b.parent(), it.Offset, it.End)
	return nil
}

func (b *streamBuilder) EndContainer(end int) error {
	last := len(b.open) - 1
	b.m.nodes[b.open[last]].end = end
	b.open = b.open[:last]
	return nil
}

// pending is a value waiting to be flattened
type pending struct {
	value  jsonparse.Value
	key    string
	hasKey bool
	depth  int
	parent int
}

// flatten appends one entry per value in document pre-order. Children are
// pushed in reverse so they pop in document order; no recursion is used, so
// nesting depth is bounded only by memory.
func (m *ViewModel) flatten(root jsonparse.Value) error {
	stack := []pending{{value: root, parent: Invalid}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.value == nil {
			return fmt.Errorf("%w: missing value at entry %d", ErrMalformedDocument, len(m.nodes))
		}

		e := Entry{Key: p.key, HasKey: p.hasKey, Indent: p.depth}
		switch t := p.value.Type(); t {
		case jsonparse.Object:
			e.Kind, e.Value = KindObjectOpen, "{"
			idx := m.append(e, p.parent)
			members := p.value.Members()
			for i := len(members) - 1; i >= 0; i-- {
				stack = append(stack, pending{
					value:  members[i].Value,
					key:    members[i].Key,
					hasKey: true,
					depth:  p.depth + 1,
					parent: idx,
				})
			}
		case jsonparse.Array:
			e.Kind, e.Value = KindArrayOpen, "["
			idx := m.append(e, p.parent)
			elements := p.value.Elements()
			for i := len(elements) - 1; i >= 0; i-- {
				stack = append(stack, pending{
					value:  elements[i],
					depth:  p.depth + 1,
					parent: idx,
				})
			}
		case jsonparse.String, jsonparse.Number, jsonparse.Boolean, jsonparse.Null:
			e.Kind = primitiveKind(t)
			e.Value = trimSpace(p.value.Raw())
			m.append(e, p.parent)
		default:
			return fmt.Errorf("%w: unrecognized value type %q at entry %d", ErrMalformedDocument, t, len(m.nodes))
		}
	}
	return nil
}

func primitiveKind(t jsonparse.Type) Kind {
	switch t {
	case jsonparse.String:
		return KindString
	case jsonparse.Number:
		return KindNumber
	case jsonparse.Boolean:
		return KindBoolean
	default:
		return KindNull
	}
}

// buildSkips sets the skip target of every container: the first later node
// whose indent is not deeper than the container's, or the tail.
func (m *ViewModel) buildSkips() {
	tail := m.Tail()
	var open []int
	indent := 0
	for i := 0; i < tail; i++ {
		cur := m.nodes[i].Entry.Indent
		if cur < indent {
			// One or more containers closed right before i
			for len(open) > 0 {
				top := open[len(open)-1]
				if m.nodes[top].Entry.Indent < cur {
					break
				}
				m.nodes[top].skip = i
				open = open[:len(open)-1]
			}
			indent = cur
		}
		if m.nodes[i].Entry.Kind.Collapsible() {
			open = append(open, i)
			indent++
		}
	}
	// Containers running to the end of the document, including a root container
	for _, idx := range open {
		m.nodes[idx].skip = tail
	}
}
