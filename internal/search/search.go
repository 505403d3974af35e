// Package search finds entries of a view model that match a query
package search

import (
	"github.com/pstuifzand/tui-jsonviewer/internal/model"
)

// Next returns the first matching index after from, wrapping around to the
// start of the document. from itself is checked last, so a single match is
// found again. A from outside the document starts at the first entry.
// Returns model.Invalid when nothing matches.
func Next(m *model.ViewModel, from int, expr FilterExpr) int {
	n := m.Tail()
	if n == 0 {
		return model.Invalid
	}
	start := from
	if from < 0 || from >= n {
		start = n - 1
	}
	for step := 1; step <= n; step++ {
		idx := (start + step) % n
		if expr.Matches(m, idx) {
			return idx
		}
	}
	return model.Invalid
}

// Prev returns the first matching index before from, wrapping around to the
// end of the document. A from outside the document starts at the last entry.
func Prev(m *model.ViewModel, from int, expr FilterExpr) int {
	n := m.Tail()
	if n == 0 {
		return model.Invalid
	}
	start := from
	if from < 0 || from >= n {
		start = 0
	}
	for step := 1; step <= n; step++ {
		idx := (start - step + n) % n
		if expr.Matches(m, idx) {
			return idx
		}
	}
	return model.Invalid
}

// All returns every matching index in document order
func All(m *model.ViewModel, expr FilterExpr) []int {
	var matches []int
	for i := 0; i < m.Tail(); i++ {
		if expr.Matches(m, i) {
			matches = append(matches, i)
		}
	}
	return matches
}
