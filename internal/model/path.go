package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-jsonviewer/internal/jsonparse"
)

// Steps returns the hops from the root down to idx: a key for each object
// member and a position for each array element
func (m *ViewModel) Steps(idx int) []jsonparse.Step {
	if m.IsTail(idx) {
		return nil
	}
	chain := append([]int{idx}, m.Ancestors(idx)...)
	steps := make([]jsonparse.Step, 0, len(chain)-1)
	for i := len(chain) - 2; i >= 0; i-- {
		n := m.nodes[chain[i]]
		if n.Entry.HasKey {
			steps = append(steps, jsonparse.Step{Key: n.Entry.Key})
		} else {
			steps = append(steps, jsonparse.Step{Index: m.ChildIndex(chain[i]), Array: true})
		}
	}
	return steps
}

// JQPath formats the location of idx the way jq does, such as .address.city,
// .tags[0] or .["a b"]. Other keys are quoted as JSON strings. The root is ".".
func (m *ViewModel) JQPath(idx int) string {
	var sb strings.Builder
	for _, step := range m.Steps(idx) {
		switch {
		case step.Array:
			sb.WriteString("[" + strconv.Itoa(step.Index) + "]")
		case isIdentifier(step.Key):
			sb.WriteString("." + step.Key)
		default:
			sb.WriteString("[" + quoteKey(step.Key) + "]")
		}
	}
	path := sb.String()
	if !strings.HasPrefix(path, ".") {
		path = "." + path
	}
	return path
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// quoteKey writes s as a JSON string literal
func quoteKey(s string) string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Source returns the source text of the value at idx in data, the document
// the model was loaded from. Nodes without a recorded span are looked up by
// path, which finds the first member when a key repeats.
func (m *ViewModel) Source(idx int, data []byte) (string, bool) {
	if m.IsTail(idx) {
		return "", false
	}
	if start, end := m.At(idx).Span(); start >= 0 && end >= start && end <= len(data) {
		return string(data[start:end]), true
	}
	return jsonparse.RawAt(data, m.Steps(idx))
}
