package jsonparse

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Step is one hop from a container to one of its children: an object key,
// or an array position when Array is set
type Step struct {
	Key   string
	Index int
	Array bool
}

// RawAt returns the raw text of the value reached from the document root by
// steps. A key shared by several members finds the first of them.
func RawAt(data []byte, steps []Step) (string, bool) {
	if len(steps) == 0 {
		return strings.TrimSpace(string(data)), len(data) > 0
	}
	r := gjson.GetBytes(data, lookupPath(steps))
	return r.Raw, r.Exists()
}

func lookupPath(steps []Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		if s.Array {
			parts[i] = strconv.Itoa(s.Index)
		} else {
			parts[i] = gjson.Escape(s.Key)
		}
	}
	return strings.Join(parts, ".")
}

// StringValue decodes a raw JSON string token. Other tokens are returned as is.
func StringValue(raw string) string {
	r := gjson.Parse(raw)
	if r.Type != gjson.String {
		return raw
	}
	return r.String()
}
