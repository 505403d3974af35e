package jsonparse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Item describes a value as Walk reaches it
type Item struct {
	Type   Type
	Key    string // member name, only meaningful when HasKey is set
	HasKey bool
	Raw    string // raw token of a primitive, empty for containers
	Offset int    // byte offset of the value's first character
	End    int    // byte offset just past a primitive, 0 for containers
}

// Handler receives the structure of a document from Walk, in document order
type Handler interface {
	// BeginContainer reports an object or array opening
	BeginContainer(it Item) error
	// Primitive reports a string, number, boolean or null
	Primitive(it Item) error
	// EndContainer reports the close of the innermost open container; end
	// is the offset just past its closing bracket
	EndContainer(end int) error
}

// Walk scans src once and reports every value to h. Input that is not a
// single well-formed JSON document yields ErrInvalidJSON. An error returned
// by h stops the walk and is returned as is.
func Walk(src string, h Handler) error {
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()

	var objects []bool // per open container: whether it is an object
	key, hasKey := "", false
	started := false

	for {
		off := int(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			if !started || len(objects) > 0 {
				return fmt.Errorf("%w: unexpected end of input at offset %d", ErrInvalidJSON, off)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		if started && len(objects) == 0 {
			return fmt.Errorf("%w: data after the document at offset %d", ErrInvalidJSON, off)
		}
		end := int(dec.InputOffset())

		if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
			objects = objects[:len(objects)-1]
			if err := h.EndContainer(end); err != nil {
				return err
			}
			continue
		}
		if n := len(objects); n > 0 && objects[n-1] && !hasKey {
			// the decoder only hands out strings in key position
			key, hasKey = tok.(string), true
			continue
		}

		started = true
		it := Item{Key: key, HasKey: hasKey, Offset: skipSeparators(src, off)}
		key, hasKey = "", false

		if d, ok := tok.(json.Delim); ok {
			it.Type = Array
			if d == '{' {
				it.Type = Object
			}
			objects = append(objects, d == '{')
			err = h.BeginContainer(it)
		} else {
			it.Type = tokenType(tok)
			it.Raw = src[it.Offset:end]
			it.End = end
			err = h.Primitive(it)
		}
		if err != nil {
			return err
		}
	}
}

// skipSeparators returns the offset of the first token character at or
// after off
func skipSeparators(src string, off int) int {
	for off < len(src) {
		switch src[off] {
		case ' ', '\t', '\r', '\n', ',', ':':
			off++
		default:
			return off
		}
	}
	return off
}

func tokenType(tok json.Token) Type {
	switch tok.(type) {
	case string:
		return String
	case json.Number:
		return Number
	case bool:
		return Boolean
	case nil:
		return Null
	}
	return Unknown
}
