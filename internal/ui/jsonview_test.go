package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-jsonviewer/internal/model"
	"github.com/pstuifzand/tui-jsonviewer/internal/theme"
)

// Entry indices:
//
//	0 {   1 name   2 age   3 tags [   4 "admin"   5 "dev"
//	6 address {   7 city   8 zip   9 active
const person = `{
	"name": "Alice",
	"age": 30,
	"tags": ["admin", "dev"],
	"address": {"city": "Berlin", "zip": null},
	"active": true
}`

func newPersonView(t *testing.T) *JSONView {
	t.Helper()
	m, err := model.Load([]byte(person))
	require.NoError(t, err)
	return NewJSONView(m, "person.json", 2)
}

func newSimScreen(t *testing.T, width, height int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	screen, err := NewScreenFrom(sim, theme.Default())
	require.NoError(t, err)
	sim.SetSize(width, height)
	t.Cleanup(func() { screen.Close() })
	return screen, sim
}

func renderRows(t *testing.T, v *JSONView, width, height int) ([]string, tcell.SimulationScreen) {
	t.Helper()
	screen, sim := newSimScreen(t, width, height)
	screen.Clear()
	v.Render(screen)
	screen.Show()

	cells, w, h := sim.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			cell := cells[y*w+x]
			if len(cell.Runes) == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(cell.Runes[0])
		}
		rows[y] = strings.TrimRight(sb.String(), " ")
	}
	return rows, sim
}

func TestRenderExpandedDocument(t *testing.T) {
	v := newPersonView(t)
	rows, _ := renderRows(t, v, 40, 8)

	assert.Equal(t, []string{
		"{ [-]",
		`  name: "Alice"`,
		"  age: 30",
		"  tags: [ [-]",
		`    "admin"`,
		`    "dev"`,
		">{",
		"1-6/10 - person.json",
	}, rows)
}

func TestRenderCollapsedShowsTildes(t *testing.T) {
	v := newPersonView(t)
	require.True(t, v.Collapse(3))
	require.True(t, v.Collapse(6))

	rows, sim := renderRows(t, v, 40, 10)

	assert.Equal(t, []string{
		"{ [-]",
		`  name: "Alice"`,
		"  age: 30",
		"  tags: [ [+]",
		"  address: { [+]",
		"  active: true",
		"~",
		"~",
		">{",
		"1-10/10 - person.json",
	}, rows)

	cells, w, _ := sim.GetContents()
	_, _, attrs := cells[6*w].Style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold, "tilde rows are bold")
}

func TestRenderTruncatesKeysAndValues(t *testing.T) {
	v := newPersonView(t)
	v.ScrollForward(1)

	rows, _ := renderRows(t, v, 16, 4)

	assert.Equal(t, `  …: "Alice…`, rows[0])
	assert.Equal(t, `  …: 30`, rows[1])
}

func TestRenderNarrowScreenDrawsNothing(t *testing.T) {
	v := newPersonView(t)
	rows, _ := renderRows(t, v, MinimumWidth-1, 6)

	for _, row := range rows {
		assert.Empty(t, row)
	}
}

func TestRenderHighlightAndBreadcrumb(t *testing.T) {
	v := newPersonView(t)
	v.SetHighlight(4)

	rows, sim := renderRows(t, v, 40, 8)
	assert.Equal(t, ">{>tags>[0]", rows[6])

	cells, w, _ := sim.GetContents()
	_, _, attrs := cells[4*w+30].Style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "highlighted row fills the width")
	_, _, attrs = cells[3*w].Style.Decompose()
	assert.Zero(t, attrs&tcell.AttrReverse)
}

func TestScrollStopsAtEnds(t *testing.T) {
	v := newPersonView(t)
	assert.True(t, v.AtTop())
	assert.Equal(t, 0, v.ScrollBackward(3))

	assert.Equal(t, 9, v.ScrollForward(100))
	assert.Equal(t, 9, v.Top())
	assert.True(t, v.AtBottom())
	assert.Equal(t, 0, v.ScrollForward(1))

	assert.Equal(t, 2, v.ScrollBackward(2))
	assert.Equal(t, 7, v.Top())

	v.ScrollToTop()
	assert.Equal(t, 0, v.Top())
	v.ScrollToBottom()
	assert.Equal(t, 9, v.Top())
}

func TestScrollSkipsCollapsedContainers(t *testing.T) {
	v := newPersonView(t)
	v.Collapse(3)

	v.ScrollForward(4)
	assert.Equal(t, 6, v.Top())
	v.ScrollBackward(1)
	assert.Equal(t, 3, v.Top())
}

func TestCollapseAllKeepsTopVisible(t *testing.T) {
	v := newPersonView(t)
	v.ScrollForward(7)
	require.Equal(t, 7, v.Top())

	v.CollapseAll()
	assert.Equal(t, 0, v.Top())
	assert.True(t, v.AtBottom())

	v.ExpandAll()
	assert.Equal(t, 0, v.Top())
	assert.False(t, v.AtBottom())
}

func TestCurrentFollowsHighlight(t *testing.T) {
	v := newPersonView(t)
	assert.Equal(t, 0, v.Current(), "no highlight acts on the top row")

	v.SetHighlight(3)
	assert.Equal(t, 3, v.Current())

	v.Collapse(3)
	v.SetHighlight(4)
	assert.Equal(t, 6, v.Current())

	v.SetHighlight(20)
	assert.Equal(t, model.Invalid, v.Current())
	assert.Empty(t, v.Breadcrumb())

	v.SetHighlight(-5)
	assert.Equal(t, -1, v.Highlight())
}

func TestToggleIgnoresPrimitives(t *testing.T) {
	v := newPersonView(t)
	assert.False(t, v.Toggle(1))
	assert.False(t, v.Toggle(model.Invalid))
	assert.True(t, v.Toggle(6))
	assert.True(t, v.Model().At(6).Collapsed())

	assert.False(t, v.Collapse(6), "already collapsed")
	assert.True(t, v.Expand(6))
	assert.False(t, v.Expand(6))
}

func TestRevealExpandsAndHighlights(t *testing.T) {
	v := newPersonView(t)
	v.CollapseAll()

	v.Reveal(7, 6)
	assert.False(t, v.Model().At(6).Collapsed())
	assert.False(t, v.Model().At(0).Collapsed())
	assert.Equal(t, 0, v.Top(), "visible match does not scroll")
	assert.Equal(t, 5, v.Highlight())
	assert.Equal(t, 7, v.Current())

	v.Reveal(9, 3)
	assert.Equal(t, 9, v.Top())
	assert.Equal(t, 0, v.Highlight())
}

func TestStatusLine(t *testing.T) {
	v := newPersonView(t)
	assert.Equal(t, "1-4/10 - person.json", v.Status(4))

	v.ScrollForward(8)
	assert.Equal(t, "9-10/10 - person.json", v.Status(4))
}
