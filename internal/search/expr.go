package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/tui-jsonviewer/internal/model"
)

// FilterExpr represents a filter expression that can match entries of a view model
type FilterExpr interface {
	Matches(m *model.ViewModel, idx int) bool
	String() string // For debug output
}

// Field selects which part of an entry a text expression looks at
type Field int

const (
	FieldAny Field = iota // key or value
	FieldKey
	FieldValue
)

func (f Field) String() string {
	switch f {
	case FieldKey:
		return "key"
	case FieldValue:
		return "value"
	default:
		return "any"
	}
}

// fieldTexts returns the texts of e selected by field. A keyless entry has
// no key text.
func fieldTexts(e model.Entry, field Field) []string {
	switch field {
	case FieldKey:
		if e.HasKey {
			return []string{e.Key}
		}
		return nil
	case FieldValue:
		return []string{e.Value}
	default:
		if e.HasKey {
			return []string{e.Key, e.Value}
		}
		return []string{e.Value}
	}
}

// TextExpr matches entries whose key or value contains the search term (case-insensitive)
type TextExpr struct {
	term  string
	field Field
}

func NewTextExpr(term string, field Field) *TextExpr {
	return &TextExpr{term: strings.ToLower(term), field: field}
}

func (e *TextExpr) Matches(m *model.ViewModel, idx int) bool {
	for _, text := range fieldTexts(m.At(idx).Entry, e.field) {
		if strings.Contains(strings.ToLower(text), e.term) {
			return true
		}
	}
	return false
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%s, %q)", e.field, e.term)
}

// FuzzyExpr matches entries whose key or value fuzzy-matches the search term (case-insensitive)
type FuzzyExpr struct {
	term  string
	field Field
}

func NewFuzzyExpr(term string, field Field) *FuzzyExpr {
	return &FuzzyExpr{term: strings.ToLower(term), field: field}
}

func (e *FuzzyExpr) Matches(m *model.ViewModel, idx int) bool {
	for _, text := range fieldTexts(m.At(idx).Entry, e.field) {
		if fuzzy.MatchFold(e.term, text) {
			return true
		}
	}
	return false
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%s, %q)", e.field, e.term)
}

// RegexExpr matches entries whose key or value matches a regular expression pattern
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %v", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(m *model.ViewModel, idx int) bool {
	for _, text := range fieldTexts(m.At(idx).Entry, FieldAny) {
		if e.re.MatchString(text) {
			return true
		}
	}
	return false
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// AndExpr matches if both left and right match
type AndExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(m *model.ViewModel, idx int) bool {
	return e.left.Matches(m, idx) && e.right.Matches(m, idx)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("(and %s %s)", e.left.String(), e.right.String())
}

// OrExpr matches if either left or right matches
type OrExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(m *model.ViewModel, idx int) bool {
	return e.left.Matches(m, idx) || e.right.Matches(m, idx)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("(or %s %s)", e.left.String(), e.right.String())
}

// NotExpr matches if the wrapped expression does not match
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(m *model.ViewModel, idx int) bool {
	return !e.expr.Matches(m, idx)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("(not %s)", e.expr.String())
}

// KindFilter matches entries of one JSON kind
type KindFilter struct {
	kind model.Kind
}

var kindNames = map[string]model.Kind{
	"object":  model.KindObjectOpen,
	"array":   model.KindArrayOpen,
	"string":  model.KindString,
	"number":  model.KindNumber,
	"boolean": model.KindBoolean,
	"bool":    model.KindBoolean,
	"null":    model.KindNull,
}

func NewKindFilter(name string) (*KindFilter, error) {
	kind, ok := kindNames[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown type: %s", name)
	}
	return &KindFilter{kind: kind}, nil
}

func (e *KindFilter) Matches(m *model.ViewModel, idx int) bool {
	return m.At(idx).Entry.Kind == e.kind
}

func (e *KindFilter) String() string {
	return fmt.Sprintf("type(%s)", e.kind)
}

// DepthFilter matches entries at specific depth levels
type DepthFilter struct {
	op    ComparisonOp
	value int
}

func NewDepthFilter(op ComparisonOp, value string) (*DepthFilter, error) {
	var depth int
	_, err := fmt.Sscanf(value, "%d", &depth)
	if err != nil {
		return nil, fmt.Errorf("invalid depth value: %s", value)
	}
	return &DepthFilter{op: op, value: depth}, nil
}

func (e *DepthFilter) Matches(m *model.ViewModel, idx int) bool {
	return compare(m.At(idx).Entry.Indent, e.op, e.value)
}

func (e *DepthFilter) String() string {
	return fmt.Sprintf("depth(%s%d)", e.op, e.value)
}

// ParentFilter matches entries whose enclosing container matches the wrapped expression
type ParentFilter struct {
	expr FilterExpr
}

func NewParentFilter(expr FilterExpr) *ParentFilter {
	return &ParentFilter{expr: expr}
}

func (e *ParentFilter) Matches(m *model.ViewModel, idx int) bool {
	p := m.At(idx).Parent()
	return p != model.Invalid && e.expr.Matches(m, p)
}

func (e *ParentFilter) String() string {
	return fmt.Sprintf("parent(%s)", e.expr.String())
}

func compare(left int, op ComparisonOp, right int) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	case OpGreater:
		return left > right
	case OpGreaterEqual:
		return left >= right
	case OpLess:
		return left < right
	case OpLessEqual:
		return left <= right
	default:
		return false
	}
}
