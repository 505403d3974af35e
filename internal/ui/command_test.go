package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func typeText(p *Prompt, text string) {
	for _, r := range text {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestPromptEditing(t *testing.T) {
	p := NewPrompt(":")
	p.Start()
	typeText(p, "set fuzzy")
	assert.Equal(t, "set fuzzy", p.Input())

	p.HandleKey(key(tcell.KeyCtrlW))
	assert.Equal(t, "set", p.Input())

	p.HandleKey(key(tcell.KeyHome))
	typeText(p, "x")
	assert.Equal(t, "xset ", string(p.input))

	p.HandleKey(key(tcell.KeyDelete))
	assert.Equal(t, "xet ", string(p.input))

	p.HandleKey(key(tcell.KeyEnd))
	p.HandleKey(key(tcell.KeyBackspace2))
	assert.Equal(t, "xet", string(p.input))

	p.HandleKey(key(tcell.KeyLeft))
	p.HandleKey(key(tcell.KeyCtrlK))
	assert.Equal(t, "xe", string(p.input))

	p.HandleKey(key(tcell.KeyCtrlU))
	assert.Empty(t, p.Input())
}

func TestPromptHandlesWideRunes(t *testing.T) {
	p := NewPrompt("/")
	p.Start()
	typeText(p, "日本")
	p.HandleKey(key(tcell.KeyLeft))
	typeText(p, "x")
	assert.Equal(t, "日x本", p.Input())
}

func TestPromptSubmitAndCancel(t *testing.T) {
	p := NewPrompt(":")
	p.Start()
	typeText(p, " quit ")
	text, done := p.HandleKey(key(tcell.KeyEnter))
	assert.True(t, done)
	assert.Equal(t, "quit", text)
	assert.False(t, p.IsActive())
	assert.Equal(t, []string{"quit"}, p.History().Entries())

	p.Start()
	typeText(p, "abc")
	text, done = p.HandleKey(key(tcell.KeyEscape))
	assert.True(t, done)
	assert.Empty(t, text)

	p.Start()
	_, done = p.HandleKey(key(tcell.KeyBackspace2))
	assert.True(t, done, "backspace on empty input closes the prompt")
}

func TestPromptHistoryKeys(t *testing.T) {
	p := NewPrompt(":")
	for _, cmd := range []string{"one", "two"} {
		p.Start()
		typeText(p, cmd)
		p.HandleKey(key(tcell.KeyEnter))
	}

	p.Start()
	typeText(p, "th")
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "two", p.Input())
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "one", p.Input())
	p.HandleKey(key(tcell.KeyDown))
	p.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, "th", p.Input())
}

func TestPromptRender(t *testing.T) {
	screen, _ := newSimScreen(t, 20, 3)
	p := NewPrompt(":")
	p.Start()
	typeText(p, "help")

	assert.Equal(t, 6, p.Render(screen, 1), "prefix, input and cursor")
}
