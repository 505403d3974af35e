// Command generate-test-file writes a large nested JSON document for trying
// the viewer on big inputs.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/pstuifzand/tui-jsonviewer/internal/model"
)

var cli struct {
	Nodes  int    `help:"Number of values to generate." default:"1000"`
	Output string `help:"Output file path." short:"o" default:"large_test.json" type:"path"`
	Depth  int    `help:"Maximum nesting depth." default:"3"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("generate-test-file"),
		kong.Description("Generate a large JSON document."),
		kong.UsageOnError(),
	)

	if cli.Nodes < 1 {
		fmt.Fprintf(os.Stderr, "nodes must be at least 1\n")
		os.Exit(1)
	}

	dir := filepath.Dir(cli.Output)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create directory: %v\n", err)
			os.Exit(1)
		}
	}

	g := &generator{remaining: cli.Nodes, maxDepth: cli.Depth}
	if err := g.writeFile(cli.Output); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write file: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(cli.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read back file: %v\n", err)
		os.Exit(1)
	}

	m, err := model.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generated document does not load: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated document with %d entries\n", m.Tail())
	fmt.Printf("Saved to: %s\n", cli.Output)
	fmt.Printf("File size: %.2f MB\n", float64(len(data))/(1024*1024))
}

// generator emits values until remaining reaches zero, alternating objects
// and arrays by depth
type generator struct {
	remaining int
	maxDepth  int
	counter   int
}

func (g *generator) writeFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	g.writeObject(w, 0)
	w.WriteString("\n")
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (g *generator) writeObject(w *bufio.Writer, depth int) {
	g.remaining--
	w.WriteString("{\n")
	n := g.childCount(depth)
	for i := 0; i < n && g.remaining > 0; i++ {
		if i > 0 {
			w.WriteString(",\n")
		}
		indent(w, depth+1)
		w.WriteString(strconv.Quote(g.key(i)))
		w.WriteString(": ")
		g.writeValue(w, depth+1)
	}
	w.WriteString("\n")
	indent(w, depth)
	w.WriteString("}")
}

func (g *generator) writeArray(w *bufio.Writer, depth int) {
	g.remaining--
	w.WriteString("[\n")
	n := g.childCount(depth)
	for i := 0; i < n && g.remaining > 0; i++ {
		if i > 0 {
			w.WriteString(",\n")
		}
		indent(w, depth+1)
		g.writeValue(w, depth+1)
	}
	w.WriteString("\n")
	indent(w, depth)
	w.WriteString("]")
}

func (g *generator) writeValue(w *bufio.Writer, depth int) {
	g.counter++
	if depth < g.maxDepth && g.counter%4 == 0 {
		if depth%2 == 0 {
			g.writeObject(w, depth)
		} else {
			g.writeArray(w, depth)
		}
		return
	}

	g.remaining--
	switch g.counter % 5 {
	case 0:
		w.WriteString(strconv.Itoa(g.counter))
	case 1:
		w.WriteString(strconv.FormatBool(g.counter%2 == 0))
	case 2:
		w.WriteString("null")
	default:
		w.WriteString(strconv.Quote(description(g.counter)))
	}
}

// childCount spreads the remaining values over the levels still available
func (g *generator) childCount(depth int) int {
	if depth == 0 {
		return g.remaining
	}
	if depth >= g.maxDepth-1 {
		return 5
	}
	return 3
}

func (g *generator) key(i int) string {
	categories := []string{
		"task", "note", "idea", "bug", "feature", "enhancement",
		"documentation", "refactor", "test", "optimization",
	}
	return fmt.Sprintf("%s_%d", categories[(g.counter+i)%len(categories)], g.counter+i)
}

func description(index int) string {
	descriptions := []string{
		"Core functionality",
		"User interface",
		"Performance improvement",
		"Bug fix",
		"New capability",
		"API integration",
		"Data validation",
		"Error handling",
		"Caching layer",
		"Configuration",
	}
	return fmt.Sprintf("%s #%d", descriptions[index%len(descriptions)], index)
}

func indent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString("  ")
	}
}
