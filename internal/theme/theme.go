package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Entry colors
	Key     tcell.Color
	String  tcell.Color
	Number  tcell.Color
	Boolean tcell.Color
	Null    tcell.Color
	Bracket tcell.Color
	Marker  tcell.Color
	Tilde   tcell.Color

	// Highlighted row
	SelectedText       tcell.Color
	SelectedBackground tcell.Color

	// Bottom rows
	Breadcrumb       tcell.Color
	StatusText       tcell.Color
	StatusBackground tcell.Color
	StatusMessage    tcell.Color
	StatusError      tcell.Color

	// Search prompt
	SearchLabel tcell.Color
	SearchText  tcell.Color
	SearchMatch tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults. The highlighted
// row and the status bar are drawn in reverse video by the view when their
// colors are left at the default.
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			Key:                tcell.ColorDefault,
			String:             tcell.ColorDefault,
			Number:             tcell.ColorDefault,
			Boolean:            tcell.ColorDefault,
			Null:               tcell.ColorDefault,
			Bracket:            tcell.ColorDefault,
			Marker:             tcell.ColorDefault,
			Tilde:              tcell.ColorDefault,
			SelectedText:       tcell.ColorDefault,
			SelectedBackground: tcell.ColorDefault,
			Breadcrumb:         tcell.ColorDefault,
			StatusText:         tcell.ColorDefault,
			StatusBackground:   tcell.ColorDefault,
			StatusMessage:      tcell.ColorDefault,
			StatusError:        tcell.ColorDefault,
			SearchLabel:        tcell.ColorDefault,
			SearchText:         tcell.ColorDefault,
			SearchMatch:        tcell.ColorDefault,
			HelpBackground:     tcell.ColorDefault,
			HelpBorder:         tcell.ColorDefault,
			HelpTitle:          tcell.ColorDefault,
			HelpContent:        tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Key:                HexToColor("#7aa2f7"), // Blue
			String:             HexToColor("#9ece6a"), // Green
			Number:             HexToColor("#ff9e64"), // Orange
			Boolean:            HexToColor("#bb9af7"), // Magenta
			Null:               HexToColor("#565f89"), // Comment gray
			Bracket:            HexToColor("#c0caf5"), // Light gray-blue
			Marker:             HexToColor("#7dcfff"), // Cyan
			Tilde:              HexToColor("#565f89"),
			SelectedText:       HexToColor("#c0caf5"),
			SelectedBackground: HexToColor("#283457"), // Selection blue
			Breadcrumb:         HexToColor("#7dcfff"),
			StatusText:         HexToColor("#c0caf5"),
			StatusBackground:   HexToColor("#1f2335"), // Darker background
			StatusMessage:      HexToColor("#9ece6a"),
			StatusError:        HexToColor("#f7768e"), // Red
			SearchLabel:        HexToColor("#bb9af7"),
			SearchText:         HexToColor("#c0caf5"),
			SearchMatch:        HexToColor("#e0af68"), // Yellow
			HelpBackground:     HexToColor("#1a1b26"), // Dark background
			HelpBorder:         HexToColor("#7dcfff"),
			HelpTitle:          HexToColor("#bb9af7"),
			HelpContent:        HexToColor("#c0caf5"),
		},
	}
}

// SelectedStyle is the style of the highlighted row
func (t *Theme) SelectedStyle() tcell.Style {
	if t.Colors.SelectedBackground == tcell.ColorDefault {
		return tcell.StyleDefault.Reverse(true)
	}
	return ColorPairToStyle(t.Colors.SelectedText, t.Colors.SelectedBackground)
}

// StatusStyle is the style of the status bar
func (t *Theme) StatusStyle() tcell.Style {
	if t.Colors.StatusBackground == tcell.ColorDefault {
		return tcell.StyleDefault.Reverse(true)
	}
	return ColorPairToStyle(t.Colors.StatusText, t.Colors.StatusBackground)
}
