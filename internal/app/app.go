package app

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-jsonviewer/internal/config"
	"github.com/pstuifzand/tui-jsonviewer/internal/history"
	"github.com/pstuifzand/tui-jsonviewer/internal/model"
	"github.com/pstuifzand/tui-jsonviewer/internal/search"
	"github.com/pstuifzand/tui-jsonviewer/internal/source"
	"github.com/pstuifzand/tui-jsonviewer/internal/theme"
	"github.com/pstuifzand/tui-jsonviewer/internal/ui"
)

// App is the main application controller
type App struct {
	screen             *ui.Screen
	doc                *source.Document
	cfg                *config.Config
	view               *ui.JSONView
	search             *ui.Search
	command            *ui.Prompt
	help               *ui.HelpScreen
	messages           *ui.MessageLogger
	history            *history.Manager
	keybindings        []KeyBinding
	pendingKeybindings []PendingKeyBinding
	pendingKey         rune // prefix waiting for its second key, 0 if none
	mouseHeld          bool // left button is down, drags do not toggle again
	quit               bool
	debugMode          bool
	copyText           func(string) error
	loadTheme          func(string) (*theme.Theme, error)
}

// NewApp opens the terminal and creates an App showing doc
func NewApp(doc *source.Document, m *model.ViewModel, cfg *config.Config, t *theme.Theme) (*App, error) {
	screen, err := ui.NewScreen(t)
	if err != nil {
		return nil, err
	}
	return New(screen, doc, m, cfg), nil
}

// New creates an App drawing on an initialized screen
func New(screen *ui.Screen, doc *source.Document, m *model.ViewModel, cfg *config.Config) *App {
	a := &App{
		screen:    screen,
		doc:       doc,
		cfg:       cfg,
		view:      ui.NewJSONView(m, doc.Name, cfg.IndentWidth),
		search:    ui.NewSearch(m, search.Options{Fuzzy: cfg.FuzzySearch}),
		command:   ui.NewPrompt(":"),
		help:      ui.NewHelpScreen(),
		messages:  ui.NewMessageLogger(100),
		copyText:  source.Copy,
		loadTheme: theme.LoadThemeOrDefault,
	}
	a.keybindings = a.InitializeKeybindings()
	a.pendingKeybindings = a.InitializePendingKeybindings()
	a.help.SetKeybindings(a.helpEntries())

	if cfg.Mouse {
		screen.EnableMouse()
	}
	return a
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleRawEvent(ev)
			a.render()
		case <-ticker.C:
			a.render()
		}
	}

	return nil
}

// SetHistoryManager restores the search and command histories from hm and
// saves them back there when the app closes
func (a *App) SetHistoryManager(hm *history.Manager) {
	a.history = hm
	for name, h := range a.histories() {
		entries, err := hm.Load(name)
		if err != nil {
			log.Printf("Failed to load history %s: %v", name, err)
			continue
		}
		h.Load(entries)
	}
}

func (a *App) histories() map[string]*ui.History {
	return map[string]*ui.History{
		history.SearchFile:  a.search.History(),
		history.CommandFile: a.command.History(),
	}
}

func (a *App) saveHistories() {
	if a.history == nil {
		return
	}
	for name, h := range a.histories() {
		if err := a.history.Save(name, h.Entries()); err != nil {
			log.Printf("Failed to save history %s: %v", name, err)
		}
	}
}

// Close saves the prompt histories and closes the screen
func (a *App) Close() error {
	a.saveHistories()
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// render draws the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	a.view.Render(a.screen)

	width, height := a.screen.Size()
	if width >= ui.MinimumWidth && height >= 2 {
		switch {
		case a.command.IsActive():
			a.command.Render(a.screen, height-2)
		case a.search.IsActive():
			a.search.Render(a.screen, height-2)
		}
		a.renderStatusMessage(height - 1)
	}

	a.help.Render(a.screen)
	a.screen.Show()
}

// renderStatusMessage draws the pending prefix or the newest message at the
// right end of the status bar
func (a *App) renderStatusMessage(y int) {
	text, style := "", a.screen.StatusMessageStyle()
	if a.pendingKey != 0 {
		text = string(a.pendingKey) + "-"
	} else if msg, ok := a.messages.Current(); ok {
		text = msg.Text
		if msg.IsError {
			style = a.screen.StatusErrorStyle()
		}
	}
	if text == "" {
		return
	}

	width := a.screen.GetWidth()
	status := ui.StringWidth(a.view.Status(ui.EntryRows(a.screen.GetHeight())))
	room := width - status - 2
	if room <= 0 {
		return
	}
	text = ui.TruncateWithEllipsis(text, room)
	a.screen.DrawString(width-ui.StringWidth(text), y, text, style)
}

// handleRawEvent dispatches one terminal event
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventMouse:
		if !a.help.IsVisible() && !a.command.IsActive() && !a.search.IsActive() {
			a.handleMouse(ev)
		}
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.command.IsActive() {
		if cmd, done := a.command.HandleKey(ev); done {
			a.handleCommand(cmd)
		}
		return
	}

	if a.search.IsActive() {
		query := a.search.Input()
		accepted, done := a.search.HandleKey(ev)
		switch {
		case accepted:
			a.jumpTo(a.search.Next(a.view.Current()), "Pattern not found: "+a.search.Query())
		case done && query != "" && ev.Key() == tcell.KeyEnter:
			a.SetError(fmt.Sprintf("Invalid search %q", query))
		}
		return
	}

	if a.help.IsVisible() {
		a.handleHelpKey(ev)
		return
	}

	a.handleKeypress(ev)
}

func (a *App) handleHelpKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.help.Hide()
	case tcell.KeyDown:
		a.help.Scroll(1)
	case tcell.KeyUp:
		a.help.Scroll(-1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q':
			a.help.Hide()
		case 'j':
			a.help.Scroll(1)
		case 'k':
			a.help.Scroll(-1)
		}
	}
}

// handleKeypress handles a single keypress over the document
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	if a.pendingKey != 0 {
		prefix := a.pendingKey
		a.pendingKey = 0
		if ev.Key() == tcell.KeyEscape {
			return
		}
		if pkb := a.GetPendingKeyBindingByPrefix(prefix); pkb != nil && ev.Key() == tcell.KeyRune {
			if kb, ok := pkb.Sequences[ev.Rune()]; ok {
				kb.Handler(a)
				return
			}
		}
		a.screen.Beep()
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		a.Quit()
	case tcell.KeyDown, tcell.KeyEnter:
		a.lineDown()
	case tcell.KeyUp:
		a.lineUp()
	case tcell.KeyPgDn:
		a.pageDown()
	case tcell.KeyPgUp:
		a.pageUp()
	case tcell.KeyCtrlD:
		a.halfPageDown()
	case tcell.KeyCtrlU:
		a.halfPageUp()
	case tcell.KeyHome:
		a.goTop()
	case tcell.KeyEnd:
		a.goBottom()
	case tcell.KeyLeft:
		a.collapseCurrent()
	case tcell.KeyRight:
		a.expandCurrent()
	case tcell.KeyTab:
		a.toggleCurrent()
	case tcell.KeyEscape:
		a.view.SetHighlight(-1)
	case tcell.KeyCtrlL:
		a.screen.Sync()
	case tcell.KeyRune:
		r := ev.Rune()
		if a.IsPendingKeyPrefix(r) {
			a.pendingKey = r
			return
		}
		if kb := a.GetKeybindingByKey(r); kb != nil {
			kb.Handler(a)
		}
	}
}

// handleMouse toggles containers on a left press, follows motion with the
// highlight and scrolls on the wheel
func (a *App) handleMouse(ev *tcell.EventMouse) {
	_, y := ev.Position()
	rows := a.entryRows()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.view.ScrollBackward(a.cfg.ScrollLines)
	case buttons&tcell.WheelDown != 0:
		a.view.ScrollForward(a.cfg.ScrollLines)
	case y >= rows:
		a.view.SetHighlight(-1)
	case buttons&tcell.Button1 != 0:
		a.view.SetHighlight(y)
		if !a.mouseHeld {
			a.mouseHeld = true
			a.view.Toggle(a.view.RowIndex(y))
		}
	default:
		a.view.SetHighlight(y)
	}
	if buttons&tcell.Button1 == 0 {
		a.mouseHeld = false
	}
}

// entryRows returns how many entries fit on the screen
func (a *App) entryRows() int {
	return ui.EntryRows(a.screen.GetHeight())
}

// SetStatus posts an informational status message
func (a *App) SetStatus(msg string) {
	a.messages.Info(msg)
}

// SetError posts an error status message and logs it
func (a *App) SetError(msg string) {
	log.Printf("%s", msg)
	a.messages.Error(msg)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}
