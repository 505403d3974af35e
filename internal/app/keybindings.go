package app

import (
	"github.com/pstuifzand/tui-jsonviewer/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding as shown in the help overlay
func (kb *KeyBinding) GetKey() string {
	if kb.Key == ' ' {
		return "Space"
	}
	return string(kb.Key)
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// PendingKeyBinding represents a prefix key that waits for a second key
type PendingKeyBinding struct {
	Prefix      rune
	Description string
	Sequences   map[rune]KeyBinding
}

// GetKey returns the prefix key
func (pkb *PendingKeyBinding) GetKey() string {
	return string(pkb.Prefix)
}

// GetDescription returns the description
func (pkb *PendingKeyBinding) GetDescription() string {
	return pkb.Description
}

// GetSequences returns a map of second key to description for display in help
func (pkb *PendingKeyBinding) GetSequences() map[rune]string {
	result := make(map[rune]string, len(pkb.Sequences))
	for key, binding := range pkb.Sequences {
		result[key] = binding.Description
	}
	return result
}

// InitializeKeybindings sets up the single-key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{Key: 'j', Description: "Scroll down one line", Handler: (*App).lineDown},
		{Key: 'k', Description: "Scroll up one line", Handler: (*App).lineUp},
		{Key: 'f', Description: "Page down", Handler: (*App).pageDown},
		{Key: ' ', Description: "Page down", Handler: (*App).pageDown},
		{Key: 'b', Description: "Page up", Handler: (*App).pageUp},
		{Key: 'd', Description: "Half page down", Handler: (*App).halfPageDown},
		{Key: 'u', Description: "Half page up", Handler: (*App).halfPageUp},
		{Key: 'g', Description: "Go to the first line", Handler: (*App).goTop},
		{Key: 'G', Description: "Go to the last line", Handler: (*App).goBottom},
		{Key: 'h', Description: "Collapse the current entry", Handler: (*App).collapseCurrent},
		{Key: 'l', Description: "Expand the current entry", Handler: (*App).expandCurrent},
		{Key: '-', Description: "Collapse everything", Handler: (*App).collapseAll},
		{Key: '+', Description: "Expand everything", Handler: (*App).expandAll},
		{Key: '=', Description: "Expand everything", Handler: (*App).expandAll},
		{Key: 'y', Description: "Copy the current value", Handler: (*App).copyValue},
		{Key: 'Y', Description: "Copy the current path", Handler: (*App).copyPath},
		{Key: '/', Description: "Search", Handler: func(app *App) {
			app.search.Start()
		}},
		{Key: 'n', Description: "Next match", Handler: (*App).nextMatch},
		{Key: 'N', Description: "Previous match", Handler: (*App).prevMatch},
		{Key: ':', Description: "Command line", Handler: func(app *App) {
			app.command.Start()
		}},
		{Key: '?', Description: "Toggle this help", Handler: func(app *App) {
			app.help.Toggle()
		}},
		{Key: 'q', Description: "Quit", Handler: (*App).Quit},
	}
}

// InitializePendingKeybindings sets up the prefix keys
func (a *App) InitializePendingKeybindings() []PendingKeyBinding {
	return []PendingKeyBinding{
		{
			Prefix:      'z',
			Description: "Fold... (z + key)",
			Sequences: map[rune]KeyBinding{
				'a': {Key: 'a', Description: "Toggle the current entry", Handler: (*App).toggleCurrent},
				'o': {Key: 'o', Description: "Open the current entry", Handler: (*App).expandCurrent},
				'c': {Key: 'c', Description: "Close the current entry", Handler: (*App).collapseCurrent},
				'M': {Key: 'M', Description: "Close everything", Handler: (*App).collapseAll},
				'R': {Key: 'R', Description: "Open everything", Handler: (*App).expandAll},
				'z': {Key: 'z', Description: "Scroll the current entry to the top", Handler: (*App).currentToTop},
			},
		},
	}
}

// helpEntries lists the bindings for the help overlay
func (a *App) helpEntries() []ui.KeyBindingInfo {
	entries := make([]ui.KeyBindingInfo, 0, len(a.keybindings)+len(a.pendingKeybindings))
	for i := range a.keybindings {
		entries = append(entries, &a.keybindings[i])
	}
	for i := range a.pendingKeybindings {
		entries = append(entries, &a.pendingKeybindings[i])
	}
	return entries
}

// GetKeybindingByKey returns a keybinding for a given key
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == key {
			return &a.keybindings[i]
		}
	}
	return nil
}

// GetPendingKeyBindingByPrefix returns a pending keybinding for a prefix key
func (a *App) GetPendingKeyBindingByPrefix(prefix rune) *PendingKeyBinding {
	for i := range a.pendingKeybindings {
		if a.pendingKeybindings[i].Prefix == prefix {
			return &a.pendingKeybindings[i]
		}
	}
	return nil
}

// IsPendingKeyPrefix checks if a key is a pending key prefix
func (a *App) IsPendingKeyPrefix(key rune) bool {
	return a.GetPendingKeyBindingByPrefix(key) != nil
}
