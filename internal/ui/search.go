package ui

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-jsonviewer/internal/model"
	"github.com/pstuifzand/tui-jsonviewer/internal/search"
)

// Search is the `/` prompt. Matches are recomputed as the query is typed,
// and the last accepted query stays available for n and N.
type Search struct {
	*Prompt
	model      *model.ViewModel
	opts       search.Options
	typed      search.FilterExpr // expression of the input being typed
	expr       search.FilterExpr // last accepted expression
	query      string
	matches    []int // matches of the typed input
	accepted   []int
	parseError string
}

// NewSearch creates a search over m
func NewSearch(m *model.ViewModel, opts search.Options) *Search {
	return &Search{
		Prompt: NewPrompt("/"),
		model:  m,
		opts:   opts,
	}
}

// SetOptions changes how plain terms match and updates the accepted query
func (s *Search) SetOptions(opts search.Options) {
	s.opts = opts
	if s.query == "" {
		return
	}
	if expr, err := search.ParseQuery(s.query, opts); err == nil {
		s.expr = expr
		s.accepted = search.All(s.model, expr)
	}
}

// Options returns the current matching options
func (s *Search) Options() search.Options {
	return s.opts
}

// HandleKey edits the query. It reports accepted when Enter confirmed a
// query that parses; the prompt is closed whenever done is set.
func (s *Search) HandleKey(ev *tcell.EventKey) (accepted, done bool) {
	text, done := s.Prompt.HandleKey(ev)
	if !done {
		s.update(s.Prompt.Input())
		return false, false
	}
	if text == "" {
		return false, true
	}
	if err := s.Accept(text); err != nil {
		return false, true
	}
	return true, true
}

// Accept parses query and makes it the query used by n and N
func (s *Search) Accept(query string) error {
	s.update(query)
	if s.parseError != "" {
		return errors.New(s.parseError)
	}
	s.query = query
	s.expr = s.typed
	s.accepted = s.matches
	return nil
}

func (s *Search) update(query string) {
	s.typed = nil
	s.matches = nil
	s.parseError = ""

	expr, err := search.ParseQuery(query, s.opts)
	if err != nil {
		if !errors.Is(err, search.ErrEmptyQuery) {
			s.parseError = err.Error()
		}
		return
	}
	s.typed = expr
	s.matches = search.All(s.model, expr)
}

// Query returns the last accepted query
func (s *Search) Query() string {
	return s.query
}

// Expr returns the last accepted expression, or nil
func (s *Search) Expr() search.FilterExpr {
	return s.expr
}

// Next returns the first match after idx, wrapping
func (s *Search) Next(idx int) int {
	if s.expr == nil {
		return model.Invalid
	}
	return search.Next(s.model, idx, s.expr)
}

// Prev returns the first match before idx, wrapping
func (s *Search) Prev(idx int) int {
	if s.expr == nil {
		return model.Invalid
	}
	return search.Prev(s.model, idx, s.expr)
}

// MatchCount returns the number of entries matching the accepted query
func (s *Search) MatchCount() int {
	return len(s.accepted)
}

// Position returns the 1-based position of idx among the matches of the
// accepted query, or 0 when idx does not match
func (s *Search) Position(idx int) int {
	pos := sort.SearchInts(s.accepted, idx)
	if pos < len(s.accepted) && s.accepted[pos] == idx {
		return pos + 1
	}
	return 0
}

// Render draws the prompt with the match count of the typed query
func (s *Search) Render(screen *Screen, y int) {
	s.Prompt.Render(screen, y)

	var info string
	switch {
	case s.parseError != "":
		info = " (error: " + s.parseError + ")"
	case s.typed == nil:
		return
	case len(s.matches) == 0:
		info = " (no matches)"
	default:
		info = fmt.Sprintf(" (%d matches)", len(s.matches))
	}

	width := screen.GetWidth()
	if StringWidth(info) > width/2 {
		info = TruncateWithEllipsis(info, width/2)
	}
	screen.DrawString(width-StringWidth(info), y, info, screen.SearchMatchStyle())
}
