package ui

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-jsonviewer/internal/model"
)

// MinimumWidth is the narrowest terminal the view draws into
const MinimumWidth = 16

// reservedRows are the breadcrumb and status rows below the entries
const reservedRows = 2

// JSONView is a viewport over a view model. The viewport starts at the top
// entry and the highlight is a screen row, moved by the mouse, or -1 when
// no row is highlighted.
type JSONView struct {
	model       *model.ViewModel
	name        string
	top         int
	highlight   int
	indentWidth int
}

// NewJSONView creates a view showing m from its first entry
func NewJSONView(m *model.ViewModel, name string, indentWidth int) *JSONView {
	return &JSONView{
		model:       m,
		name:        name,
		top:         0,
		highlight:   -1,
		indentWidth: indentWidth,
	}
}

// Model returns the view model being shown
func (v *JSONView) Model() *model.ViewModel {
	return v.model
}

// Name returns the document name shown in the status bar
func (v *JSONView) Name() string {
	return v.name
}

// Top returns the index of the entry on the first row
func (v *JSONView) Top() int {
	return v.top
}

// Highlight returns the highlighted screen row, or -1
func (v *JSONView) Highlight() int {
	return v.highlight
}

// SetHighlight highlights a screen row; -1 clears the highlight
func (v *JSONView) SetHighlight(row int) {
	if row < 0 {
		row = -1
	}
	v.highlight = row
}

// SetIndentWidth changes the number of columns per nesting level
func (v *JSONView) SetIndentWidth(width int) {
	v.indentWidth = width
}

// EntryRows returns how many entry rows fit on a screen of the given height
func EntryRows(height int) int {
	return max(height-reservedRows, 0)
}

// AtTop reports whether the first entry is on the first row
func (v *JSONView) AtTop() bool {
	return v.top == 0
}

// AtBottom reports whether the top entry is the last visible one
func (v *JSONView) AtBottom() bool {
	return v.model.Forward(v.top) == v.model.Tail()
}

// ScrollForward moves the viewport down by up to n visible entries, never
// past the last one. It returns how many entries it moved.
func (v *JSONView) ScrollForward(n int) int {
	moved := 0
	for ; moved < n; moved++ {
		next := v.model.Forward(v.top)
		if next == v.model.Tail() {
			break
		}
		v.top = next
	}
	return moved
}

// ScrollBackward moves the viewport up by up to n visible entries
func (v *JSONView) ScrollBackward(n int) int {
	moved := 0
	for ; moved < n && v.top != 0; moved++ {
		v.top = v.model.Backward(v.top)
	}
	return moved
}

// ScrollToTop shows the first entry on the first row
func (v *JSONView) ScrollToTop() {
	v.top = 0
}

// ScrollToBottom shows the last visible entry on the first row
func (v *JSONView) ScrollToBottom() {
	v.top = v.model.Backward(v.model.Tail())
}

// RowIndex returns the entry shown on screen row y, or the tail when the
// row lies past the end of the document
func (v *JSONView) RowIndex(y int) int {
	idx := v.top
	for i := 0; i < y && idx != v.model.Tail(); i++ {
		idx = v.model.Forward(idx)
	}
	return idx
}

// RowOf returns the screen row showing idx within the first rows rows, or -1
func (v *JSONView) RowOf(idx, rows int) int {
	p := v.top
	for row := 0; row < rows && p != v.model.Tail(); row++ {
		if p == idx {
			return row
		}
		p = v.model.Forward(p)
	}
	return -1
}

// Current returns the entry keyboard commands act on: the highlighted row
// when there is one, otherwise the top row. Returns model.Invalid when the
// highlight is past the end of the document.
func (v *JSONView) Current() int {
	if v.highlight < 0 {
		return v.top
	}
	idx := v.RowIndex(v.highlight)
	if v.model.IsTail(idx) {
		return model.Invalid
	}
	return idx
}

// Reveal makes idx visible and highlights it. The viewport only moves when
// idx is not already among the first rows rows.
func (v *JSONView) Reveal(idx, rows int) {
	v.model.ExpandAncestors(idx)
	if row := v.RowOf(idx, rows); row >= 0 {
		v.highlight = row
		return
	}
	v.top = idx
	v.highlight = 0
}

// Toggle flips the collapse state of idx. It reports false when idx is not
// a container.
func (v *JSONView) Toggle(idx int) bool {
	if idx == model.Invalid || !v.model.At(idx).Entry.Collapsible() {
		return false
	}
	v.model.Toggle(idx)
	return true
}

// Collapse collapses idx when it is an expanded container
func (v *JSONView) Collapse(idx int) bool {
	if idx == model.Invalid {
		return false
	}
	n := v.model.At(idx)
	if !n.Entry.Collapsible() || n.Collapsed() {
		return false
	}
	v.model.SetCollapse(idx)
	return true
}

// Expand expands idx when it is a collapsed container
func (v *JSONView) Expand(idx int) bool {
	if idx == model.Invalid {
		return false
	}
	if !v.model.At(idx).Collapsed() {
		return false
	}
	v.model.SetExpand(idx)
	return true
}

// CollapseAll collapses every container and moves the viewport onto the
// container that now hides the top entry
func (v *JSONView) CollapseAll() {
	v.model.CollapseAll()
	v.keepTopVisible()
}

// ExpandAll expands every container
func (v *JSONView) ExpandAll() {
	v.model.ExpandAll()
}

// keepTopVisible moves the top to its outermost collapsed ancestor, if any
func (v *JSONView) keepTopVisible() {
	for _, p := range v.model.Ancestors(v.top) {
		if v.model.At(p).Collapsed() {
			v.top = p
		}
	}
}

// LastVisible returns the entry on the last filled row of a screen with the
// given number of entry rows
func (v *JSONView) LastVisible(rows int) int {
	last := v.top
	p := v.top
	for row := 0; row < rows && p != v.model.Tail(); row++ {
		last = p
		p = v.model.Forward(p)
	}
	return last
}

// Render draws the entries, the breadcrumb and the status bar
func (v *JSONView) Render(screen *Screen) {
	width, height := screen.Size()
	if width < MinimumWidth {
		return
	}
	rows := EntryRows(height)

	p := v.top
	row := 0
	for ; row < rows && p != v.model.Tail(); row++ {
		v.renderEntry(screen, row, p, width)
		p = v.model.Forward(p)
	}
	for ; row < rows; row++ {
		screen.SetCell(0, row, '~', screen.TildeStyle())
	}

	if height >= 2 {
		v.RenderBreadcrumb(screen, height-2)
	}
	if height >= 1 {
		v.RenderStatus(screen, height-1, rows)
	}
}

func (v *JSONView) renderEntry(screen *Screen, row, idx, width int) {
	e := v.model.At(idx).Entry
	selected := row == v.highlight

	keyStyle := screen.KeyStyle()
	valueStyle := screen.ValueStyle(e.Kind)
	markerStyle := screen.MarkerStyle()
	if selected {
		sel := screen.SelectedStyle()
		screen.FillRow(0, row, sel)
		keyStyle, valueStyle, markerStyle = sel, sel, sel
	}

	col := e.Indent * v.indentWidth
	if e.HasKey {
		key, _ := TruncateAtColumn(e.Key, col, width/3-3)
		col += screen.DrawString(col, row, key, keyStyle)
		col += screen.DrawString(col, row, ": ", keyStyle)
	}

	value, _ := TruncateAtColumn(e.Value, col, width-5)
	col += screen.DrawString(col, row, value, valueStyle)

	if e.Collapsible() {
		marker := " [-]"
		if v.model.At(idx).Collapsed() {
			marker = " [+]"
		}
		screen.DrawString(col, row, marker, markerStyle)
	}
}

// Breadcrumb returns the path of the current entry, each segment prefixed
// with ">"
func (v *JSONView) Breadcrumb() string {
	idx := v.Current()
	if idx == model.Invalid {
		return ""
	}
	var sb strings.Builder
	for _, segment := range v.model.Path(idx) {
		sb.WriteString(">")
		sb.WriteString(segment)
	}
	return sb.String()
}

// RenderBreadcrumb draws the path of the current entry on row y
func (v *JSONView) RenderBreadcrumb(screen *Screen, y int) {
	style := screen.BreadcrumbStyle()
	screen.FillRow(0, y, style)
	screen.DrawString(0, y, TruncateWithEllipsis(v.Breadcrumb(), screen.GetWidth()), style)
}

// Status returns the status line for a screen with the given number of
// entry rows: first and last line shown, total lines and the document name
func (v *JSONView) Status(rows int) string {
	first := v.model.At(v.top).Entry.LineNum
	last := v.model.At(v.LastVisible(rows)).Entry.LineNum
	return fmt.Sprintf("%d-%d/%d - %s", first, last, v.model.Tail(), v.name)
}

// RenderStatus draws the status line on row y
func (v *JSONView) RenderStatus(screen *Screen, y, rows int) {
	style := screen.StatusStyle()
	screen.FillRow(0, y, style)
	screen.DrawString(0, y, TruncateWithEllipsis(v.Status(rows), screen.GetWidth()), style)
}
