// Package history stores the search and command prompt histories between
// sessions.
package history

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// File names of the histories kept by the viewer
const (
	SearchFile  = "search.toml"
	CommandFile = "command.toml"
)

// Manager loads and saves prompt histories as TOML files in one directory
type Manager struct {
	dir string
}

// historyFile is the layout of a history file on disk
type historyFile struct {
	Entries []string `toml:"entries"`
}

// NewManager returns a manager for ~/.local/share/tui-jsonviewer/history
func NewManager() (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(filepath.Join(home, ".local", "share", "tui-jsonviewer", "history")), nil
}

// NewManagerAt returns a manager for dir. The directory is created on the
// first save.
func NewManagerAt(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the directory holding the history files
func (m *Manager) Dir() string {
	return m.dir
}

// Load reads the entries of a history file, oldest first. A missing file
// gives no entries. A corrupted file is logged and treated as empty.
func (m *Manager) Load(name string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var hf historyFile
	if err := toml.Unmarshal(data, &hf); err != nil {
		log.Printf("Ignoring unreadable history %s: %v", name, err)
		return nil, nil
	}
	return hf.Entries, nil
}

// Save replaces a history file with entries
func (m *Manager) Save(name string, entries []string) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(historyFile{Entries: entries})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.dir, name), data, 0o644)
}
