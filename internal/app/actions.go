package app

import (
	"fmt"
	"log"

	"github.com/pstuifzand/tui-jsonviewer/internal/jsonparse"
	"github.com/pstuifzand/tui-jsonviewer/internal/model"
)

func (a *App) lineDown() {
	if a.view.AtBottom() {
		a.screen.Beep()
		return
	}
	a.view.ScrollForward(1)
}

func (a *App) lineUp() {
	if a.view.AtTop() {
		a.screen.Beep()
		return
	}
	a.view.ScrollBackward(1)
}

func (a *App) scrollDown(n int) {
	if a.view.AtBottom() {
		a.screen.Beep()
		return
	}
	a.view.ScrollForward(max(n, 1))
}

func (a *App) scrollUp(n int) {
	if a.view.AtTop() {
		a.screen.Beep()
		return
	}
	a.view.ScrollBackward(max(n, 1))
}

func (a *App) pageDown()     { a.scrollDown(a.entryRows()) }
func (a *App) pageUp()       { a.scrollUp(a.entryRows()) }
func (a *App) halfPageDown() { a.scrollDown(a.entryRows() / 2) }
func (a *App) halfPageUp()   { a.scrollUp(a.entryRows() / 2) }

func (a *App) goTop() {
	a.view.ScrollToTop()
}

func (a *App) goBottom() {
	a.view.ScrollToBottom()
}

func (a *App) collapseCurrent() {
	if !a.view.Collapse(a.view.Current()) {
		a.screen.Beep()
	}
}

func (a *App) expandCurrent() {
	if !a.view.Expand(a.view.Current()) {
		a.screen.Beep()
	}
}

func (a *App) toggleCurrent() {
	if !a.view.Toggle(a.view.Current()) {
		a.screen.Beep()
	}
}

func (a *App) collapseAll() {
	a.view.CollapseAll()
	a.SetStatus("Collapsed everything")
}

func (a *App) expandAll() {
	a.view.ExpandAll()
	a.SetStatus("Expanded everything")
}

// currentToTop scrolls so the current entry is on the first row
func (a *App) currentToTop() {
	idx := a.view.Current()
	if idx == model.Invalid {
		a.screen.Beep()
		return
	}
	a.view.Reveal(idx, 1)
}

// gotoLine shows the entry with the 1-based line number on the first row,
// expanding whatever hides it
func (a *App) gotoLine(line int) error {
	m := a.view.Model()
	if line < 1 || line > m.Tail() {
		return fmt.Errorf("line %d is outside 1-%d", line, m.Tail())
	}
	a.view.Reveal(line-1, 1)
	return nil
}

// jumpTo reveals a search match, or posts notFound when there is none
func (a *App) jumpTo(idx int, notFound string) {
	if idx == model.Invalid {
		a.screen.Beep()
		a.SetError(notFound)
		return
	}
	a.view.Reveal(idx, a.entryRows())
	if total := a.search.MatchCount(); total > 0 {
		a.SetStatus(fmt.Sprintf("Match %d of %d", a.search.Position(idx), total))
	}
}

func (a *App) nextMatch() {
	if a.search.Expr() == nil {
		a.SetError("No previous search")
		return
	}
	a.jumpTo(a.search.Next(a.view.Current()), "Pattern not found: "+a.search.Query())
}

func (a *App) prevMatch() {
	if a.search.Expr() == nil {
		a.SetError("No previous search")
		return
	}
	a.jumpTo(a.search.Prev(a.view.Current()), "Pattern not found: "+a.search.Query())
}

func (a *App) copyValue() {
	idx := a.view.Current()
	if idx == model.Invalid {
		a.screen.Beep()
		return
	}
	a.copyToClipboard(a.valueText(idx), "value")
}

func (a *App) copyPath() {
	idx := a.view.Current()
	if idx == model.Invalid {
		a.screen.Beep()
		return
	}
	a.copyToClipboard(a.view.Model().JQPath(idx), "path")
}

func (a *App) copyToClipboard(text, what string) {
	if err := a.copyText(text); err != nil {
		a.SetError(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	log.Printf("Copied %s of %d bytes", what, len(text))
	a.SetStatus("Copied " + what)
}

// valueText returns what y copies: the decoded text of a string, the token
// of other primitives, and the raw source of a whole container
func (a *App) valueText(idx int) string {
	m := a.view.Model()
	e := m.At(idx).Entry
	switch {
	case e.Kind == model.KindString:
		return jsonparse.StringValue(e.Value)
	case !e.Collapsible():
		return e.Value
	}
	raw, ok := m.Source(idx, a.doc.Data)
	if !ok {
		return e.Value
	}
	return raw
}
