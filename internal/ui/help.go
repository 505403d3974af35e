package ui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// PendingKeyBindingInfo represents a prefix key and the keys that may follow it
type PendingKeyBindingInfo interface {
	KeyBindingInfo
	GetSequences() map[rune]string
}

// HelpScreen is an overlay box listing keybindings, or any other lines
// such as the message log
type HelpScreen struct {
	visible     bool
	title       string
	keybindings []KeyBindingInfo
	lines       []string
	offset      int
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the keybindings to display
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// Toggle shows the keybindings, or hides the overlay when it is visible
func (h *HelpScreen) Toggle() {
	if h.visible {
		h.Hide()
		return
	}
	h.ShowLines("Keybindings", h.GetKeybindings())
}

// ShowLines opens the overlay with a title and arbitrary content
func (h *HelpScreen) ShowLines(title string, lines []string) {
	h.visible = true
	h.title = title
	h.lines = lines
	h.offset = 0
}

// Hide closes the overlay
func (h *HelpScreen) Hide() {
	h.visible = false
	h.offset = 0
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Scroll moves the content by delta lines, clamped to the content
func (h *HelpScreen) Scroll(delta int) {
	h.offset = min(max(h.offset+delta, 0), max(len(h.lines)-1, 0))
}

// Offset returns the index of the first content line shown
func (h *HelpScreen) Offset() int {
	return h.offset
}

// GetKeybindings returns a formatted list of keybindings
func (h *HelpScreen) GetKeybindings() []string {
	var result []string

	for _, kb := range h.keybindings {
		result = append(result, fmt.Sprintf("  %-8s - %s", kb.GetKey(), kb.GetDescription()))

		pkb, ok := kb.(PendingKeyBindingInfo)
		if !ok {
			continue
		}
		sequences := pkb.GetSequences()
		keys := make([]rune, 0, len(sequences))
		for r := range sequences {
			keys = append(keys, r)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, r := range keys {
			result = append(result, fmt.Sprintf("    %s%c     - %s", pkb.GetKey(), r, sequences[r]))
		}
	}

	result = append(result, "")
	result = append(result, "Mouse:")
	result = append(result, "  Click    - Toggle a container")
	result = append(result, "  Move     - Highlight a row")
	result = append(result, "  Wheel    - Scroll")

	return result
}

// Render draws the overlay box over the whole screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	width, height := screen.Size()
	for y := 0; y < height; y++ {
		screen.FillRow(0, y, contentStyle)
	}

	startY := 1
	startX := 2
	boxWidth := width - 4
	boxHeight := height - 2
	if boxWidth < 4 || boxHeight < 4 {
		return
	}

	h.horizontalBorder(screen, startX, startY, boxWidth, '┌', '┐', borderStyle)

	title := fmt.Sprintf(" %s (? or Esc to close) ", h.title)
	screen.SetCell(startX, startY+1, '│', borderStyle)
	screen.DrawStringLimited(startX+2, startY+1, title, boxWidth-3, titleStyle)
	screen.SetCell(startX+boxWidth-1, startY+1, '│', borderStyle)

	h.horizontalBorder(screen, startX, startY+2, boxWidth, '├', '┤', borderStyle)

	y := startY + 3
	for i := h.offset; i < len(h.lines) && y < startY+boxHeight-1; i++ {
		screen.SetCell(startX, y, '│', borderStyle)
		screen.DrawString(startX+2, y, TruncateWithEllipsis(h.lines[i], boxWidth-4), contentStyle)
		screen.SetCell(startX+boxWidth-1, y, '│', borderStyle)
		y++
	}

	h.horizontalBorder(screen, startX, y, boxWidth, '└', '┘', borderStyle)
}

func (h *HelpScreen) horizontalBorder(screen *Screen, x, y, width int, left, right rune, style tcell.Style) {
	screen.SetCell(x, y, left, style)
	for i := 1; i < width-1; i++ {
		screen.SetCell(x+i, y, '─', style)
	}
	screen.SetCell(x+width-1, y, right, style)
}
