package jsonparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawAt(t *testing.T) {
	data := []byte(` {"a": {"b.c": [10, {"d": "x"}]}, "*": true} `)

	tests := []struct {
		name  string
		steps []Step
		want  string
		found bool
	}{
		{"root", nil, `{"a": {"b.c": [10, {"d": "x"}]}, "*": true}`, true},
		{"object", []Step{{Key: "a"}}, `{"b.c": [10, {"d": "x"}]}`, true},
		{"dotted key", []Step{{Key: "a"}, {Key: "b.c"}}, `[10, {"d": "x"}]`, true},
		{"array element", []Step{{Key: "a"}, {Key: "b.c"}, {Index: 1, Array: true}, {Key: "d"}}, `"x"`, true},
		{"wildcard key", []Step{{Key: "*"}}, `true`, true},
		{"missing", []Step{{Key: "zzz"}}, ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := RawAt(data, tt.steps)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringValue(t *testing.T) {
	assert.Equal(t, `say "hi"`, StringValue(`"say \"hi\""`))
	assert.Equal(t, "é", StringValue(`"é"`))
	assert.Equal(t, "42", StringValue("42"))
	assert.Equal(t, "null", StringValue("null"))
}
