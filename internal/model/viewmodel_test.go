package model

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-jsonviewer/internal/jsonparse"
)

func mustLoad(t *testing.T, doc string) *ViewModel {
	t.Helper()
	m, err := Load([]byte(doc))
	require.NoError(t, err, "Load(%q)", doc)
	return m
}

// walk returns the visible indices from the first node to the tail
func walk(m *ViewModel) []int {
	var result []int
	for i := 0; i != m.Tail(); i = m.Forward(i) {
		result = append(result, i)
	}
	return result
}

func TestLoadObjectWithArray(t *testing.T) {
	m := mustLoad(t, `{"a": 1, "b": [2, 3]}`)

	require.Equal(t, 5, m.Tail(), spew.Sdump(m.nodes))
	want := []struct {
		kind   Kind
		key    string
		hasKey bool
		value  string
		indent int
		parent int
	}{
		{KindObjectOpen, "", false, "{", 0, Invalid},
		{KindNumber, "a", true, "1", 1, 0},
		{KindArrayOpen, "b", true, "[", 1, 0},
		{KindNumber, "", false, "2", 2, 2},
		{KindNumber, "", false, "3", 2, 2},
	}
	for i, w := range want {
		n := m.At(i)
		assert.Equal(t, w.kind, n.Entry.Kind, "kind of %d", i)
		assert.Equal(t, w.key, n.Entry.Key, "key of %d", i)
		assert.Equal(t, w.hasKey, n.Entry.HasKey, "hasKey of %d", i)
		assert.Equal(t, w.value, n.Entry.Value, "value of %d", i)
		assert.Equal(t, w.indent, n.Entry.Indent, "indent of %d", i)
		assert.Equal(t, w.parent, n.Parent(), "parent of %d", i)
		assert.Equal(t, i+1, n.Entry.LineNum, "line of %d", i)
	}

	assert.Equal(t, 5, m.At(0).Skip(), "root container skips to the tail")
	assert.Equal(t, 5, m.At(2).Skip())
	assert.Equal(t, Invalid, m.At(1).Skip())
	assert.Equal(t, Invalid, m.At(5).Parent())
	assert.Equal(t, 0, m.At(5).Entry.LineNum)
}

func TestCollapseArraySkipsToTail(t *testing.T) {
	m := mustLoad(t, `{"a": 1, "b": [2, 3]}`)

	m.SetCollapse(2)
	assert.True(t, m.At(2).Collapsed())
	assert.Equal(t, 5, m.Forward(2))
	assert.Equal(t, 2, m.Backward(5))
	assert.Equal(t, []int{0, 1, 2}, walk(m))
}

func TestEmptyObject(t *testing.T) {
	m := mustLoad(t, `{}`)

	require.Equal(t, 1, m.Tail())
	assert.Equal(t, 1, m.At(0).Skip())

	before := walk(m)
	m.SetCollapse(0)
	assert.True(t, m.At(0).Collapsed(), "collapsing an empty container still toggles the flag")
	assert.Equal(t, before, walk(m))
	assert.Equal(t, 0, m.Backward(1))
}

func TestNestedArraysBackwardLandsOnOutermost(t *testing.T) {
	m := mustLoad(t, `[[[1]]]`)
	require.Equal(t, 4, m.Tail())

	m.SetCollapse(0)
	assert.Equal(t, []int{0}, walk(m))
	assert.Equal(t, 0, m.Backward(m.Tail()))

	// Inner collapses skip to the same target but stay hidden
	m.SetCollapse(2)
	m.SetCollapse(1)
	assert.Equal(t, 0, m.Backward(m.Tail()))

	m.SetExpand(0)
	assert.Equal(t, []int{0, 1}, walk(m))
	assert.Equal(t, 1, m.Backward(m.Tail()))

	m.SetExpand(1)
	assert.Equal(t, []int{0, 1, 2}, walk(m))
	assert.Equal(t, 2, m.Backward(m.Tail()))
}

func TestSetCollapseIgnoresPrimitivesAndTail(t *testing.T) {
	m := mustLoad(t, `{"a": "x"}`)

	m.SetCollapse(1)
	assert.False(t, m.At(1).Collapsed())
	m.SetCollapse(m.Tail())
	assert.False(t, m.At(m.Tail()).Collapsed())
	assert.False(t, m.Toggle(1))
	assert.Empty(t, m.backSkips)
}

func TestCollapseIsIdempotent(t *testing.T) {
	m := mustLoad(t, `{"a": {"b": [1, 2]}, "c": 3}`)

	m.SetCollapse(1)
	once := walk(m)
	m.SetCollapse(1)
	assert.Equal(t, once, walk(m))
	assert.Len(t, m.backSkips[m.At(1).Skip()], 1)

	m.SetExpand(1)
	m.SetExpand(1)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, walk(m))
	assert.Empty(t, m.backSkips)
}

func TestToggle(t *testing.T) {
	m := mustLoad(t, `[{"a": 1}, 2]`)

	assert.True(t, m.Toggle(1))
	assert.Equal(t, []int{0, 1, 3}, walk(m))
	assert.True(t, m.Toggle(1))
	assert.Equal(t, []int{0, 1, 2, 3}, walk(m))
}

func TestCollapseAllExpandAll(t *testing.T) {
	m := mustLoad(t, `{"a": [1, {"b": 2}], "c": {}}`)

	m.CollapseAll()
	assert.Equal(t, []int{0}, walk(m))
	assert.Equal(t, 0, m.Backward(m.Tail()))

	m.ExpandAll()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, walk(m))
	assert.Empty(t, m.backSkips)
}

func TestPrimitiveRoot(t *testing.T) {
	m := mustLoad(t, `  "hello"  `)

	require.Equal(t, 1, m.Tail())
	assert.Equal(t, KindString, m.At(0).Entry.Kind)
	assert.Equal(t, `"hello"`, m.At(0).Entry.Value)
	assert.Equal(t, []string{"."}, m.Path(0))
}

func TestAncestorsAndExpandAncestors(t *testing.T) {
	m := mustLoad(t, `{"a": {"b": {"c": true}}}`)

	assert.Equal(t, []int{2, 1, 0}, m.Ancestors(3))
	assert.Empty(t, m.Ancestors(0))

	m.CollapseAll()
	assert.True(t, m.ExpandAncestors(3))
	assert.Equal(t, []int{0, 1, 2, 3}, walk(m))
	assert.False(t, m.ExpandAncestors(3))
}

func TestChildIndexAndPath(t *testing.T) {
	m := mustLoad(t, `{"list": [{"x": [1, 2]}, [], "s", {"deep": {"k": null}}]}`)
	// 0 {  1 list  2 {  3 x  4 1  5 2  6 []  7 "s"  8 {  9 deep  10 k  11 tail

	assert.Equal(t, 0, m.ChildIndex(2))
	assert.Equal(t, 1, m.ChildIndex(6))
	assert.Equal(t, 2, m.ChildIndex(7))
	assert.Equal(t, 3, m.ChildIndex(8))
	assert.Equal(t, 1, m.ChildIndex(5))
	assert.Equal(t, -1, m.ChildIndex(0))

	assert.Equal(t, []string{"{", "list", "[3]", "deep", "k"}, m.Path(10))
	assert.Equal(t, []string{"{", "list", "[0]", "x", "[1]"}, m.Path(5))
	assert.Nil(t, m.Path(m.Tail()))
}

func TestKeysAreUnescapedAndValuesRaw(t *testing.T) {
	m := mustLoad(t, `{"a\"b": "c\nd", "n": 1.50E+2}`)

	assert.Equal(t, `a"b`, m.At(1).Entry.Key)
	assert.Equal(t, `"c\nd"`, m.At(1).Entry.Value)
	assert.Equal(t, `1.50E+2`, m.At(2).Entry.Value)
}

func TestEmptyKeyIsStillAKey(t *testing.T) {
	m := mustLoad(t, `{"": 0}`)

	assert.True(t, m.At(1).Entry.HasKey)
	assert.Equal(t, "", m.At(1).Entry.Key)
}

func TestDeepNestingDoesNotRecurse(t *testing.T) {
	const depth = 3000
	doc := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	m := mustLoad(t, doc)

	require.Equal(t, depth, m.Tail())
	assert.Equal(t, depth-1, m.At(depth-1).Entry.Indent)
	for i := 0; i < depth; i++ {
		if m.At(i).Skip() != depth {
			t.Fatalf("node %d skips to %d, want %d", i, m.At(i).Skip(), depth)
		}
	}
}

func TestVeryDeepNestingLoadsInLinearTime(t *testing.T) {
	const depth = 40000
	doc := strings.Repeat(`{"a":`, depth) + "1" + strings.Repeat("}", depth)

	start := time.Now()
	m := mustLoad(t, doc)
	elapsed := time.Since(start)

	require.Equal(t, depth+1, m.Tail())
	assert.Equal(t, depth, m.At(depth).Entry.Indent)
	assert.Equal(t, "1", m.At(depth).Entry.Value)
	assert.Equal(t, depth+1, m.At(0).Skip())
	assert.Equal(t, depth+1, m.At(depth-1).Skip())
	assert.Less(t, elapsed, 5*time.Second, "loading %d levels took %v", depth, elapsed)
}

func TestLoadRecordsSourceSpans(t *testing.T) {
	doc := ` {"a": [1, "x"], "b" : {"c": null}} `
	m := mustLoad(t, doc)

	span := func(idx int) string {
		start, end := m.At(idx).Span()
		return doc[start:end]
	}
	assert.Equal(t, `{"a": [1, "x"], "b" : {"c": null}}`, span(0))
	assert.Equal(t, `[1, "x"]`, span(1))
	assert.Equal(t, `1`, span(2))
	assert.Equal(t, `"x"`, span(3))
	assert.Equal(t, `{"c": null}`, span(4))
	assert.Equal(t, `null`, span(5))

	start, end := m.At(m.Tail()).Span()
	assert.Equal(t, Invalid, start)
	assert.Equal(t, Invalid, end)
}

func TestSkipsAndLineNumbersOnWideDocument(t *testing.T) {
	// many small containers so both passes over the nodes overlap
	var sb strings.Builder
	sb.WriteString("[")
	const n = 20000
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"k": [true]}`)
	}
	sb.WriteString("]")
	m := mustLoad(t, sb.String())

	require.Equal(t, 1+3*n, m.Tail())
	for i := 0; i < n; i++ {
		obj := 1 + 3*i
		if m.At(obj).Skip() != obj+3 || m.At(obj+1).Skip() != obj+3 {
			t.Fatalf("container %d skips to %d/%d, want %d", obj, m.At(obj).Skip(), m.At(obj+1).Skip(), obj+3)
		}
	}
	for i := 0; i < m.Tail(); i++ {
		if m.At(i).Entry.LineNum != i+1 {
			t.Fatalf("node %d has line %d", i, m.At(i).Entry.LineNum)
		}
	}
}

func TestBuildFromValueTreeHasNoSpans(t *testing.T) {
	root, err := jsonparse.Parse([]byte(`[1]`))
	require.NoError(t, err)
	m, err := Build(root)
	require.NoError(t, err)

	start, _ := m.At(1).Span()
	assert.Equal(t, Invalid, start)
}

func TestLoadInvalidJSON(t *testing.T) {
	for _, doc := range []string{"", "{", `{"a":}`, "[1 2]"} {
		_, err := Load([]byte(doc))
		assert.ErrorIs(t, err, ErrMalformedDocument, "Load(%q)", doc)
		assert.ErrorIs(t, err, jsonparse.ErrInvalidJSON, "Load(%q)", doc)
	}
}

// fakeValue lets tests hand the flattener type tags a real parser never produces
type fakeValue struct {
	typ      jsonparse.Type
	raw      string
	members  []jsonparse.Member
	elements []jsonparse.Value
}

func (v fakeValue) Type() jsonparse.Type        { return v.typ }
func (v fakeValue) Raw() string                 { return v.raw }
func (v fakeValue) Members() []jsonparse.Member { return v.members }
func (v fakeValue) Elements() []jsonparse.Value { return v.elements }

func TestBuildRejectsUnknownType(t *testing.T) {
	root := fakeValue{typ: jsonparse.Object, members: []jsonparse.Member{
		{Key: "ok", Value: fakeValue{typ: jsonparse.Number, raw: "1"}},
		{Key: "bad", Value: fakeValue{typ: jsonparse.Unknown, raw: "?"}},
	}}

	m, err := Build(root)
	assert.Nil(t, m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDocument))
	assert.Contains(t, err.Error(), "unknown")
}

func TestBuildRejectsMissingValue(t *testing.T) {
	root := fakeValue{typ: jsonparse.Array, elements: []jsonparse.Value{nil}}

	_, err := Build(root)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestBuildTrimsRawTokens(t *testing.T) {
	root := fakeValue{typ: jsonparse.Array, elements: []jsonparse.Value{
		fakeValue{typ: jsonparse.Number, raw: " \t42\r\n"},
		fakeValue{typ: jsonparse.String, raw: "\v\"x\" "},
	}}

	m, err := Build(root)
	require.NoError(t, err)
	assert.Equal(t, "42", m.At(1).Entry.Value)
	assert.Equal(t, "\v\"x\"", m.At(2).Entry.Value, "only JSON whitespace is trimmed")
}

func TestAtOutOfRangePanics(t *testing.T) {
	m := mustLoad(t, `[1]`)

	assert.Panics(t, func() { m.At(-1) })
	assert.Panics(t, func() { m.At(m.Tail() + 1) })
	assert.NotPanics(t, func() { m.At(m.Tail()) })
	assert.Equal(t, Invalid, m.Backward(0))
}

func TestDump(t *testing.T) {
	m := mustLoad(t, `{"a": 1, "b": [2, 3]}`)
	m.SetCollapse(2)

	var buf bytes.Buffer
	require.NoError(t, m.Dump(&buf))

	want := "LINE: { (skip to 5)\n" +
		"LINE:   a: 1\n" +
		"LINE:   b: [ (skip to 5) [COLLAPSED]\n"
	assert.Equal(t, want, buf.String())
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind        Kind
		name        string
		collapsible bool
	}{
		{KindObjectOpen, "object", true},
		{KindArrayOpen, "array", true},
		{KindString, "string", false},
		{KindNumber, "number", false},
		{KindBoolean, "boolean", false},
		{KindNull, "null", false},
		{Kind(99), "unknown", false},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.name)
		}
		if got := tt.kind.Collapsible(); got != tt.collapsible {
			t.Errorf("Kind(%d).Collapsible() = %v, want %v", tt.kind, got, tt.collapsible)
		}
	}
}
