package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/pstuifzand/tui-jsonviewer/internal/app"
	"github.com/pstuifzand/tui-jsonviewer/internal/config"
	"github.com/pstuifzand/tui-jsonviewer/internal/export"
	"github.com/pstuifzand/tui-jsonviewer/internal/history"
	"github.com/pstuifzand/tui-jsonviewer/internal/model"
	"github.com/pstuifzand/tui-jsonviewer/internal/search"
	"github.com/pstuifzand/tui-jsonviewer/internal/source"
	"github.com/pstuifzand/tui-jsonviewer/internal/theme"
)

const version = "0.1.0"

var cli struct {
	File      string           `arg:"" optional:"" help:"JSON file to view. Reads standard input or the clipboard when omitted."`
	Clipboard bool             `help:"Read the document from the clipboard." short:"c"`
	Theme     string           `help:"Color theme, overriding the config file." short:"t"`
	NoMouse   bool             `help:"Disable mouse support."`
	Dump      bool             `help:"Print the entry listing and exit without opening the terminal."`
	LogFile   string           `help:"Write a debug log to this file." type:"path"`
	Debug     bool             `help:"Show key events in the status bar."`
	Find      string           `help:"Print the entries matching a search query and exit." short:"f"`
	Format    string           `help:"Output format for --find: text, fields, json or jsonl." default:"text" enum:"text,fields,json,jsonl"`
	Fields    string           `help:"Comma separated fields for --find: line, path, kind, key, value, depth."`
	Version   kong.VersionFlag `help:"Show version information." short:"v"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("tjv"),
		kong.Description("A terminal viewer for JSON documents."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	closeLog, err := setupLogging(cli.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// setupLogging sends the log to path, or discards it when path is empty
func setupLogging(path string) (func(), error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	logFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	log.SetOutput(logFile)
	return func() { logFile.Close() }, nil
}

func run() error {
	doc, err := source.Open(cli.File, cli.Clipboard)
	if err != nil {
		return err
	}

	start := time.Now()
	m, err := model.Load(doc.Data)
	if err != nil {
		if errors.Is(err, model.ErrMalformedDocument) {
			return fmt.Errorf("%s is not a valid JSON document: %w", doc.Name, err)
		}
		return err
	}
	log.Printf("Loaded %s: %d bytes, %d entries in %v", doc.Name, len(doc.Data), m.Tail(), time.Since(start))

	if cli.Dump {
		return m.Dump(os.Stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cli.Find != "" {
		return find(m, doc.Data, cfg)
	}
	if cli.Theme != "" {
		cfg.Theme = cli.Theme
	}
	if cli.NoMouse {
		cfg.Mouse = false
	}

	t, themeErr := theme.LoadThemeOrDefault(cfg.Theme)

	application, err := app.NewApp(doc, m, cfg, t)
	if err != nil {
		return err
	}
	application.SetDebugMode(cli.Debug)
	if hm, err := history.NewManager(); err != nil {
		log.Printf("Prompt history disabled: %v", err)
	} else {
		application.SetHistoryManager(hm)
	}
	if themeErr != nil {
		application.SetError(themeErr.Error())
	}

	return application.Run()
}

// find prints the entries matching the --find query
func find(m *model.ViewModel, data []byte, cfg *config.Config) error {
	expr, err := search.ParseQuery(cli.Find, search.Options{Fuzzy: cfg.FuzzySearch})
	if err != nil {
		return fmt.Errorf("invalid query %q: %w", cli.Find, err)
	}
	format, err := export.ParseFormatFlag(cli.Format)
	if err != nil {
		return err
	}

	matches := search.All(m, expr)
	log.Printf("Query %s matched %d entries", expr, len(matches))
	out, err := export.NewFormatter(m, data).FormatMatches(matches, format, export.ParseFieldsFlag(cli.Fields))
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Println(out)
	}
	return nil
}
