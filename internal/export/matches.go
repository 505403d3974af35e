// Package export formats search matches for printing outside the terminal UI
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-jsonviewer/internal/jsonparse"
	"github.com/pstuifzand/tui-jsonviewer/internal/model"
)

// OutputFormat specifies how matches are written
type OutputFormat int

const (
	OutputFormatText OutputFormat = iota
	OutputFormatFields
	OutputFormatJSON
	OutputFormatJSONL
)

// defaultFields are used by the structured formats when no fields are given
var defaultFields = []string{"line", "path", "kind", "value"}

// Formatter writes matches of one document
type Formatter struct {
	model *model.ViewModel
	data  []byte
}

// NewFormatter creates a formatter for the view model m built from data
func NewFormatter(m *model.ViewModel, data []byte) *Formatter {
	return &Formatter{model: m, data: data}
}

// FormatMatches formats the entries at matches, one match per line except
// for the JSON array format
func (f *Formatter) FormatMatches(matches []int, format OutputFormat, fields []string) (string, error) {
	if len(matches) == 0 {
		return "", nil
	}
	if len(fields) == 0 {
		fields = defaultFields
	}
	for _, field := range fields {
		if !isField(field) {
			return "", fmt.Errorf("unknown field: %s (valid fields: %s)", field, strings.Join(allFields, ", "))
		}
	}

	switch format {
	case OutputFormatFields:
		return f.formatFields(matches, fields), nil
	case OutputFormatJSON:
		return f.formatJSON(matches, fields)
	case OutputFormatJSONL:
		return f.formatJSONL(matches, fields)
	default:
		return f.formatText(matches), nil
	}
}

// formatText writes "line:path: value" per match
func (f *Formatter) formatText(matches []int) string {
	lines := make([]string, 0, len(matches))
	for _, idx := range matches {
		e := f.model.At(idx).Entry
		lines = append(lines, fmt.Sprintf("%d:%s: %s", e.LineNum, f.model.JQPath(idx), e.Value))
	}
	return strings.Join(lines, "\n")
}

// formatFields writes the requested fields tab separated
func (f *Formatter) formatFields(matches []int, fields []string) string {
	lines := make([]string, 0, len(matches))
	for _, idx := range matches {
		values := make([]string, 0, len(fields))
		for _, field := range fields {
			values = append(values, f.fieldText(idx, field))
		}
		lines = append(lines, strings.Join(values, "\t"))
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) formatJSON(matches []int, fields []string) (string, error) {
	result := make([]map[string]any, 0, len(matches))
	for _, idx := range matches {
		result = append(result, f.object(idx, fields))
	}
	data, err := json.MarshalIndent(result, "", "  ")
	return string(data), err
}

func (f *Formatter) formatJSONL(matches []int, fields []string) (string, error) {
	lines := make([]string, 0, len(matches))
	for _, idx := range matches {
		data, err := json.Marshal(f.object(idx, fields))
		if err != nil {
			return "", err
		}
		lines = append(lines, string(data))
	}
	return strings.Join(lines, "\n"), nil
}

var allFields = []string{"line", "path", "kind", "key", "value", "depth"}

func isField(name string) bool {
	for _, f := range allFields {
		if f == name {
			return true
		}
	}
	return false
}

// object returns the fields of one match for the JSON formats. Values keep
// their JSON form; a container value is its whole source text.
func (f *Formatter) object(idx int, fields []string) map[string]any {
	e := f.model.At(idx).Entry
	obj := make(map[string]any, len(fields))
	for _, field := range fields {
		switch field {
		case "line":
			obj[field] = e.LineNum
		case "depth":
			obj[field] = e.Indent
		case "value":
			obj[field] = json.RawMessage(f.rawValue(idx))
		default:
			obj[field] = f.fieldText(idx, field)
		}
	}
	return obj
}

// fieldText returns a field as plain text
func (f *Formatter) fieldText(idx int, field string) string {
	e := f.model.At(idx).Entry
	switch field {
	case "line":
		return strconv.Itoa(e.LineNum)
	case "path":
		return f.model.JQPath(idx)
	case "kind":
		return e.Kind.String()
	case "key":
		return e.Key
	case "depth":
		return strconv.Itoa(e.Indent)
	case "value":
		if e.Kind == model.KindString {
			return jsonparse.StringValue(e.Value)
		}
		return e.Value
	}
	return ""
}

func (f *Formatter) rawValue(idx int) string {
	e := f.model.At(idx).Entry
	if !e.Collapsible() {
		return e.Value
	}
	if raw, ok := f.model.Source(idx, f.data); ok {
		return raw
	}
	return "null"
}

// ParseFormatFlag parses the --format flag
func ParseFormatFlag(flagValue string) (OutputFormat, error) {
	switch strings.ToLower(flagValue) {
	case "", "text":
		return OutputFormatText, nil
	case "fields":
		return OutputFormatFields, nil
	case "json":
		return OutputFormatJSON, nil
	case "jsonl":
		return OutputFormatJSONL, nil
	default:
		return OutputFormatText, fmt.Errorf("invalid format: %s (valid options: text, fields, json, jsonl)", flagValue)
	}
}

// ParseFieldsFlag splits the --fields flag into field names
func ParseFieldsFlag(flagValue string) []string {
	if flagValue == "" {
		return nil
	}
	var fields []string
	for _, field := range strings.Split(flagValue, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
