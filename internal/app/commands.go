package app

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-jsonviewer/internal/search"
)

// parseCommand splits a command line into words. Single and double quotes
// group words, and a backslash escapes the next character.
func parseCommand(input string) []string {
	var parts []string
	var current strings.Builder
	inWord := false
	var quote rune

	for i := 0; i < len(input); {
		r := rune(input[i])
		if r >= 0x80 {
			// multi-byte runes are never separators or quotes
			end := i + 1
			for end < len(input) && input[end]&0xC0 == 0x80 {
				end++
			}
			current.WriteString(input[i:end])
			inWord = true
			i = end
			continue
		}
		i++

		switch {
		case r == '\\' && i < len(input):
			current.WriteByte(input[i])
			inWord = true
			i++
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}
	args := parts[1:]

	if line, err := strconv.Atoi(parts[0]); err == nil {
		if err := a.gotoLine(line); err != nil {
			a.SetError(err.Error())
		}
		return
	}

	switch parts[0] {
	case "q", "quit", "q!", "quit!":
		a.quit = true
	case "collapse":
		a.collapseAll()
	case "expand":
		a.expandAll()
	case "search":
		a.searchCommand(strings.Join(args, " "))
	case "theme":
		a.themeCommand(args)
	case "set":
		a.setCommand(args)
	case "dump":
		a.dumpCommand(args)
	case "messages":
		a.help.ShowLines("Messages", a.messages.Lines())
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetError("Unknown command: " + parts[0])
	}
}

func (a *App) searchCommand(query string) {
	if err := a.search.Accept(query); err != nil {
		a.SetError(fmt.Sprintf("Invalid search %q: %v", query, err))
		return
	}
	a.search.History().Add(query)
	a.jumpTo(a.search.Next(a.view.Current()), "Pattern not found: "+query)
}

func (a *App) themeCommand(args []string) {
	if len(args) != 1 {
		a.SetError("Usage: theme <name>")
		return
	}
	t, err := a.loadTheme(args[0])
	if t != nil {
		a.screen.Theme = t
	}
	if err != nil {
		a.SetError(err.Error())
		return
	}
	a.SetStatus("Theme " + args[0])
}

func (a *App) setCommand(args []string) {
	if len(args) == 0 {
		a.SetError("Usage: set fuzzy|nofuzzy|mouse|nomouse|indent <n>")
		return
	}
	switch args[0] {
	case "fuzzy", "nofuzzy":
		a.cfg.FuzzySearch = args[0] == "fuzzy"
		a.search.SetOptions(search.Options{Fuzzy: a.cfg.FuzzySearch})
	case "mouse":
		a.cfg.Mouse = true
		a.screen.EnableMouse()
	case "nomouse":
		a.cfg.Mouse = false
		a.screen.DisableMouse()
		a.view.SetHighlight(-1)
	case "indent":
		if len(args) != 2 {
			a.SetError("Usage: set indent <n>")
			return
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 || n > 16 {
			a.SetError("Indent must be a number from 0 to 16")
			return
		}
		a.cfg.IndentWidth = n
		a.view.SetIndentWidth(n)
	default:
		a.SetError("Unknown option: " + args[0])
		return
	}
	a.SetStatus("set " + strings.Join(args, " "))
}

// dumpCommand writes the debug listing of the visible entries to a file
func (a *App) dumpCommand(args []string) {
	if len(args) != 1 {
		a.SetError("Usage: dump <file>")
		return
	}
	if err := writeDump(a, args[0]); err != nil {
		a.SetError(err.Error())
		return
	}
	log.Printf("Wrote dump to %s", args[0])
	a.SetStatus("Wrote " + args[0])
}

func writeDump(a *App, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dump file: %w", err)
	}
	if err := a.view.Model().Dump(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write dump: %w", err)
	}
	return f.Close()
}
