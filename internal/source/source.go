// Package source loads the bytes of a JSON document from a file, standard
// input or the system clipboard
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

// ErrEmptyInput is returned when a source yields no data at all
var ErrEmptyInput = errors.New("empty input")

// Display names for sources that have no file name
const (
	StdinName     = "<STDIN>"
	ClipboardName = "<CLIPBOARD>"
)

// Overridden in tests
var (
	stdin           io.Reader              = os.Stdin
	stdinIsTerminal func() bool            = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	readClipboard   func() (string, error) = clipboard.ReadAll
	writeClipboard  func(string) error     = clipboard.WriteAll
)

// Document is the raw content of a source together with the name shown in
// the status bar
type Document struct {
	Name string
	Data []byte
}

// Open picks the source the way the viewer does on startup: the file when a
// path is given, otherwise standard input when it is not a terminal,
// otherwise the clipboard. forceClipboard skips straight to the clipboard.
func Open(path string, forceClipboard bool) (*Document, error) {
	switch {
	case forceClipboard:
		return ReadClipboard()
	case path != "":
		return ReadFile(path)
	case !stdinIsTerminal():
		return ReadStdin()
	default:
		return ReadClipboard()
	}
}

// ReadFile reads the whole file at path
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return newDocument(filepath.Base(path), data)
}

// ReadStdin reads standard input until EOF
func ReadStdin() (*Document, error) {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return newDocument(StdinName, data)
}

// ReadClipboard reads the current text content of the system clipboard
func ReadClipboard() (*Document, error) {
	text, err := readClipboard()
	if err != nil {
		return nil, fmt.Errorf("failed to read clipboard: %w", err)
	}
	return newDocument(ClipboardName, []byte(text))
}

// Copy places text on the system clipboard
func Copy(text string) error {
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

func newDocument(name string, data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyInput)
	}
	return &Document{Name: name, Data: data}, nil
}
