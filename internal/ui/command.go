package ui

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// historySize is the number of inputs a prompt remembers
const historySize = 50

// Prompt is a one-line input drawn over the breadcrumb row, used for `:`
// commands and `/` searches
type Prompt struct {
	prefix    string
	active    bool
	input     []rune
	cursorPos int
	history   *History
}

// NewPrompt creates an inactive prompt shown after prefix
func NewPrompt(prefix string) *Prompt {
	return &Prompt{
		prefix:  prefix,
		history: NewHistory(historySize),
	}
}

// Start activates the prompt with empty input
func (p *Prompt) Start() {
	p.active = true
	p.input = p.input[:0]
	p.cursorPos = 0
	p.history.Reset()
}

// Stop deactivates the prompt
func (p *Prompt) Stop() {
	p.active = false
	p.history.Reset()
}

// IsActive returns whether the prompt is taking input
func (p *Prompt) IsActive() bool {
	return p.active
}

// Input returns the current input with surrounding spaces removed
func (p *Prompt) Input() string {
	return strings.TrimSpace(string(p.input))
}

// SetInput replaces the input and moves the cursor to its end
func (p *Prompt) SetInput(s string) {
	p.input = []rune(s)
	p.cursorPos = len(p.input)
}

// History returns the inputs submitted so far
func (p *Prompt) History() *History {
	return p.history
}

// DeleteWordBackwards deletes the word before the cursor
func (p *Prompt) DeleteWordBackwards() {
	pos := p.cursorPos
	for pos > 0 && unicode.IsSpace(p.input[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(p.input[pos-1]) {
		pos--
	}
	p.input = append(p.input[:pos], p.input[p.cursorPos:]...)
	p.cursorPos = pos
}

// HandleKey edits the input. It returns done once the prompt closes, with
// the submitted text on Enter and an empty string when cancelled.
func (p *Prompt) HandleKey(ev *tcell.EventKey) (submitted string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		p.Stop()
		return "", true
	case tcell.KeyEnter:
		text := p.Input()
		p.history.Add(text)
		p.Stop()
		return text, true
	case tcell.KeyUp:
		if prev, ok := p.history.Previous(string(p.input)); ok {
			p.SetInput(prev)
		}
	case tcell.KeyDown:
		if next, ok := p.history.Next(); ok {
			p.SetInput(next)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.cursorPos > 0 {
			p.input = append(p.input[:p.cursorPos-1], p.input[p.cursorPos:]...)
			p.cursorPos--
		} else if len(p.input) == 0 {
			p.Stop()
			return "", true
		}
	case tcell.KeyDelete:
		if p.cursorPos < len(p.input) {
			p.input = append(p.input[:p.cursorPos], p.input[p.cursorPos+1:]...)
		}
	case tcell.KeyLeft:
		if p.cursorPos > 0 {
			p.cursorPos--
		}
	case tcell.KeyRight:
		if p.cursorPos < len(p.input) {
			p.cursorPos++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.cursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.cursorPos = len(p.input)
	case tcell.KeyCtrlW:
		p.DeleteWordBackwards()
	case tcell.KeyCtrlU:
		p.input = append(p.input[:0], p.input[p.cursorPos:]...)
		p.cursorPos = 0
	case tcell.KeyCtrlK:
		p.input = p.input[:p.cursorPos]
	case tcell.KeyRune:
		p.input = append(p.input[:p.cursorPos], append([]rune{ev.Rune()}, p.input[p.cursorPos:]...)...)
		p.cursorPos++
	}
	return "", false
}

// Render draws the prompt on row y and returns the column after the cursor
func (p *Prompt) Render(screen *Screen, y int) int {
	textStyle := screen.SearchTextStyle()
	cursorStyle := screen.SearchCursorStyle()
	width := screen.GetWidth()

	screen.FillRow(0, y, textStyle)
	x := screen.DrawString(0, y, p.prefix, screen.SearchLabelStyle())

	for i, r := range p.input {
		if x >= width {
			break
		}
		style := textStyle
		if i == p.cursorPos {
			style = cursorStyle
		}
		screen.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	if p.cursorPos >= len(p.input) && x < width {
		screen.SetCell(x, y, ' ', cursorStyle)
		x++
	}
	return x
}
