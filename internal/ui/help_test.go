package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testBinding struct {
	key, desc string
	seq       map[rune]string
}

func (b testBinding) GetKey() string         { return b.key }
func (b testBinding) GetDescription() string { return b.desc }

type testPendingBinding struct {
	testBinding
}

func (b testPendingBinding) GetSequences() map[rune]string { return b.seq }

func TestHelpListsSequencesInOrder(t *testing.T) {
	h := NewHelpScreen()
	h.SetKeybindings([]KeyBindingInfo{
		testBinding{key: "j", desc: "Down"},
		testPendingBinding{testBinding{key: "z", desc: "Fold", seq: map[rune]string{'o': "Open", 'c': "Close"}}},
	})

	lines := h.GetKeybindings()
	assert.Equal(t, "  j        - Down", lines[0])
	assert.Equal(t, "  z        - Fold", lines[1])
	assert.Equal(t, "    zc     - Close", lines[2])
	assert.Equal(t, "    zo     - Open", lines[3])
}

func TestHelpToggleAndScroll(t *testing.T) {
	h := NewHelpScreen()
	assert.False(t, h.IsVisible())

	h.Toggle()
	assert.True(t, h.IsVisible())
	h.Scroll(2)
	assert.Equal(t, 2, h.Offset())
	h.Scroll(-10)
	assert.Equal(t, 0, h.Offset())
	h.Scroll(100)
	assert.Equal(t, len(h.lines)-1, h.Offset())

	h.Toggle()
	assert.False(t, h.IsVisible())

	h.ShowLines("Messages", []string{"a"})
	assert.True(t, h.IsVisible())
	assert.Equal(t, "Messages", h.title)
}

func TestHelpRender(t *testing.T) {
	screen, sim := newSimScreen(t, 30, 8)
	h := NewHelpScreen()
	h.ShowLines("Messages", []string{"hello"})
	h.Render(screen)
	screen.Show()

	cells, w, _ := sim.GetContents()
	assert.Equal(t, '┌', cells[1*w+2].Runes[0])
	assert.Equal(t, 'h', cells[4*w+4].Runes[0])
	assert.Equal(t, '└', cells[5*w+2].Runes[0])
}
