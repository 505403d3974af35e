package model

import (
	"fmt"
	"slices"
)

// Node is an Entry plus its navigation metadata
type Node struct {
	Entry     Entry
	parent    int
	skip      int
	collapsed bool
	start     int // byte span of the value in the source, Invalid if unknown
	end       int
}

// Parent returns the index of the enclosing container's opening node, or Invalid
func (n Node) Parent() int {
	return n.parent
}

// Skip returns the index just past this node's subtree. Invalid for primitives.
func (n Node) Skip() int {
	return n.skip
}

// Span returns the byte range of the node's value in the document it was
// loaded from. Both are Invalid for nodes built from a value tree and for
// the tail.
func (n Node) Span() (start, end int) {
	return n.start, n.end
}

// Collapsed reports whether the node is currently collapsed
func (n Node) Collapsed() bool {
	return n.collapsed
}

// backSkip registers a collapsed node that skips forward to some target
type backSkip struct {
	indent int
	idx    int
}

// ViewModel is the flat, index-addressed sequence of nodes built from one
// document. The last node is always the tail sentinel.
//
// A ViewModel is not safe for concurrent use.
type ViewModel struct {
	nodes []Node

	// backSkips maps a skip target to the collapsed nodes that currently
	// skip to it, ordered by indent (outermost first)
	backSkips map[int][]backSkip
}

func newViewModel() *ViewModel {
	return &ViewModel{
		backSkips: make(map[int][]backSkip),
	}
}

// append adds a node without a source span and returns its index
func (m *ViewModel) append(e Entry, parent int) int {
	return m.appendSpan(e, parent, Invalid, Invalid)
}

func (m *ViewModel) appendSpan(e Entry, parent, start, end int) int {
	m.nodes = append(m.nodes, Node{Entry: e, parent: parent, skip: Invalid, start: start, end: end})
	return len(m.nodes) - 1
}

func (m *ViewModel) appendTail() {
	m.append(Entry{Kind: KindNull}, Invalid)
}

func (m *ViewModel) check(idx int) {
	if idx < 0 || idx >= len(m.nodes) {
		panic(fmt.Sprintf("model: index %d out of range [0, %d]", idx, len(m.nodes)-1))
	}
}

// Len returns the number of nodes including the tail sentinel
func (m *ViewModel) Len() int {
	return len(m.nodes)
}

// Tail returns the index of the tail sentinel, which equals the number of real entries
func (m *ViewModel) Tail() int {
	return len(m.nodes) - 1
}

// IsTail reports whether idx is the tail sentinel
func (m *ViewModel) IsTail(idx int) bool {
	return idx == m.Tail()
}

// At returns the node at idx. It panics when idx is outside [0, Tail()].
func (m *ViewModel) At(idx int) Node {
	m.check(idx)
	return m.nodes[idx]
}

// Forward returns the next visible index after idx
func (m *ViewModel) Forward(idx int) int {
	m.check(idx)
	if n := &m.nodes[idx]; n.collapsed {
		return n.skip
	}
	return idx + 1
}

// Backward returns the previous visible index before idx. When collapsed
// nodes skip to idx, the outermost of them is the visible one and is
// returned. Backward(0) returns Invalid.
func (m *ViewModel) Backward(idx int) int {
	m.check(idx)
	if regs := m.backSkips[idx]; len(regs) > 0 {
		return regs[0].idx
	}
	return idx - 1
}

// SetCollapse collapses the node at idx. No-op for primitives, the tail and
// nodes that are already collapsed.
func (m *ViewModel) SetCollapse(idx int) {
	m.check(idx)
	n := &m.nodes[idx]
	if n.collapsed || !n.Entry.Collapsible() || m.IsTail(idx) {
		return
	}
	n.collapsed = true

	regs := m.backSkips[n.skip]
	pos, found := slices.BinarySearchFunc(regs, n.Entry.Indent, func(r backSkip, indent int) int {
		return r.indent - indent
	})
	if found {
		regs[pos].idx = idx
	} else {
		regs = slices.Insert(regs, pos, backSkip{indent: n.Entry.Indent, idx: idx})
	}
	m.backSkips[n.skip] = regs
}

// SetExpand expands the node at idx. No-op unless the node is collapsed.
func (m *ViewModel) SetExpand(idx int) {
	m.check(idx)
	n := &m.nodes[idx]
	if !n.collapsed {
		return
	}
	n.collapsed = false

	regs := m.backSkips[n.skip]
	regs = slices.DeleteFunc(regs, func(r backSkip) bool {
		return r.idx == idx
	})
	if len(regs) == 0 {
		delete(m.backSkips, n.skip)
	} else {
		m.backSkips[n.skip] = regs
	}
}

// Toggle flips the collapse state of a collapsible node and reports whether
// anything changed
func (m *ViewModel) Toggle(idx int) bool {
	n := m.At(idx)
	if !n.Entry.Collapsible() || m.IsTail(idx) {
		return false
	}
	if n.collapsed {
		m.SetExpand(idx)
	} else {
		m.SetCollapse(idx)
	}
	return true
}

// CollapseAll collapses every collapsible node
func (m *ViewModel) CollapseAll() {
	for i := 0; i < m.Tail(); i++ {
		m.SetCollapse(i)
	}
}

// ExpandAll expands every collapsed node
func (m *ViewModel) ExpandAll() {
	for i := 0; i < m.Tail(); i++ {
		m.SetExpand(i)
	}
}

// SetLineNums numbers every real node 1..Tail() in index order
func (m *ViewModel) SetLineNums() {
	for i := 0; i < m.Tail(); i++ {
		m.nodes[i].Entry.LineNum = i + 1
	}
}

// Ancestors returns the indices of the enclosing containers of idx, nearest first
func (m *ViewModel) Ancestors(idx int) []int {
	var result []int
	for p := m.At(idx).parent; p != Invalid; p = m.nodes[p].parent {
		result = append(result, p)
	}
	return result
}

// ExpandAncestors expands every collapsed container enclosing idx so that
// idx becomes visible. It reports whether any node was expanded.
func (m *ViewModel) ExpandAncestors(idx int) bool {
	changed := false
	for _, p := range m.Ancestors(idx) {
		if m.nodes[p].collapsed {
			m.SetExpand(p)
			changed = true
		}
	}
	return changed
}

// nextSibling returns the index just past the subtree rooted at idx
func (m *ViewModel) nextSibling(idx int) int {
	if n := &m.nodes[idx]; n.Entry.Collapsible() {
		return n.skip
	}
	return idx + 1
}

// ChildIndex returns the position of idx among its parent's children, or -1
// for the root and the tail
func (m *ViewModel) ChildIndex(idx int) int {
	p := m.At(idx).parent
	if p == Invalid {
		return -1
	}
	pos := 0
	for c := p + 1; c != idx; c = m.nextSibling(c) {
		if c >= m.Tail() {
			return -1
		}
		pos++
	}
	return pos
}

// Path returns the breadcrumb segments from the root down to idx: object
// members contribute their key, array elements their position as "[i]",
// and a keyless root "{", "[" or "."
func (m *ViewModel) Path(idx int) []string {
	if m.IsTail(idx) {
		return nil
	}
	chain := append([]int{idx}, m.Ancestors(idx)...)
	slices.Reverse(chain)

	segments := make([]string, 0, len(chain))
	for _, i := range chain {
		n := m.nodes[i]
		switch {
		case n.Entry.HasKey:
			segments = append(segments, n.Entry.Key)
		case n.parent != Invalid:
			segments = append(segments, fmt.Sprintf("[%d]", m.ChildIndex(i)))
		case n.Entry.Kind == KindObjectOpen:
			segments = append(segments, "{")
		case n.Entry.Kind == KindArrayOpen:
			segments = append(segments, "[")
		default:
			segments = append(segments, ".")
		}
	}
	return segments
}
