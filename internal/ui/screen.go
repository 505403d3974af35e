package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-jsonviewer/internal/model"
	"github.com/pstuifzand/tui-jsonviewer/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates and initializes a terminal screen with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initializes an existing tcell screen, such as a simulation screen
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// Sync redraws every cell, used after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the number of
// columns used. Wide characters take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	col := x
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(col, y, r, style)
		col += w
	}
	return col - x
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	return s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// FillRow paints the row from x to the right edge
func (s *Screen) FillRow(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Beep rings the terminal bell
func (s *Screen) Beep() {
	_ = s.tcellScreen.Beep()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// HasMouse returns true if mouse is supported
func (s *Screen) HasMouse() bool {
	return s.tcellScreen.HasMouse()
}

// EnableMouse enables mouse clicks, the wheel and motion reporting
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse(tcell.MouseMotionEvents)
}

// DisableMouse stops mouse reporting
func (s *Screen) DisableMouse() {
	s.tcellScreen.DisableMouse()
}

// DefaultStyle returns the default terminal style
func DefaultStyle() tcell.Style {
	return tcell.StyleDefault
}

// StyleBold returns a bold style
func StyleBold() tcell.Style {
	return tcell.StyleDefault.Bold(true)
}

// Theme-aware style methods

// KeyStyle returns the style for object member keys
func (s *Screen) KeyStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Key)
}

// ValueStyle returns the style for a value of the given kind
func (s *Screen) ValueStyle(kind model.Kind) tcell.Style {
	c := s.Theme.Colors
	switch kind {
	case model.KindString:
		return theme.ColorToStyle(c.String)
	case model.KindNumber:
		return theme.ColorToStyle(c.Number)
	case model.KindBoolean:
		return theme.ColorToStyle(c.Boolean)
	case model.KindNull:
		return theme.ColorToStyle(c.Null)
	default:
		return theme.ColorToStyle(c.Bracket)
	}
}

// MarkerStyle returns the style for the [+] and [-] markers
func (s *Screen) MarkerStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Marker)
}

// TildeStyle returns the style for rows past the end of the document
func (s *Screen) TildeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Tilde).Bold(true)
}

// SelectedStyle returns the style for the highlighted row
func (s *Screen) SelectedStyle() tcell.Style {
	return s.Theme.SelectedStyle()
}

// BreadcrumbStyle returns the style for the breadcrumb row
func (s *Screen) BreadcrumbStyle() tcell.Style {
	return s.Theme.StatusStyle().Foreground(s.Theme.Colors.Breadcrumb)
}

// StatusStyle returns the style for the status bar
func (s *Screen) StatusStyle() tcell.Style {
	return s.Theme.StatusStyle()
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return s.Theme.StatusStyle().Foreground(s.Theme.Colors.StatusMessage)
}

// StatusErrorStyle returns the style for error messages in the status bar
func (s *Screen) StatusErrorStyle() tcell.Style {
	return s.Theme.StatusStyle().Foreground(s.Theme.Colors.StatusError)
}

// SearchLabelStyle returns the style for the search and command prompts
func (s *Screen) SearchLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchLabel)
}

// SearchTextStyle returns the style for prompt input
func (s *Screen) SearchTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchText)
}

// SearchCursorStyle returns the style for the prompt cursor
func (s *Screen) SearchCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchText).Reverse(true)
}

// SearchMatchStyle returns the style for the match counter
func (s *Screen) SearchMatchStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchMatch)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}
