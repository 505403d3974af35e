package jsonparse

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder writes every event as one line
type recorder struct {
	events []string
	failAt int // event number that returns an error, 0 for none
}

func (r *recorder) record(s string) error {
	r.events = append(r.events, s)
	if r.failAt > 0 && len(r.events) == r.failAt {
		return errors.New("stop")
	}
	return nil
}

func (r *recorder) BeginContainer(it Item) error {
	return r.record(fmt.Sprintf("begin %s key=%q@%d", it.Type, it.Key, it.Offset))
}

func (r *recorder) Primitive(it Item) error {
	return r.record(fmt.Sprintf("%s key=%q %s@%d-%d", it.Type, it.Key, it.Raw, it.Offset, it.End))
}

func (r *recorder) EndContainer(end int) error {
	return r.record(fmt.Sprintf("end@%d", end))
}

func TestWalkEvents(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Walk(`{"a": [1, "x\n"], "": null}`, r))

	assert.Equal(t, []string{
		`begin object key=""@0`,
		`begin array key="a"@6`,
		`number key="" 1@7-8`,
		`string key="" "x\n"@10-15`,
		`end@16`,
		`null key="" null@22-26`,
		`end@27`,
	}, r.events)
}

func TestWalkPrimitiveRoot(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Walk("  -2.5e1 \n", r))

	assert.Equal(t, []string{`number key="" -2.5e1@2-8`}, r.events)
}

func TestWalkRejectsInvalidInput(t *testing.T) {
	for _, src := range []string{"", "  ", "[", `{"a":}`, "[1 2]", "1 2", "{} []", `{"a" 1}`} {
		err := Walk(src, &recorder{})
		assert.ErrorIs(t, err, ErrInvalidJSON, "Walk(%q)", src)
	}
}

func TestWalkStopsOnHandlerError(t *testing.T) {
	r := &recorder{failAt: 2}
	err := Walk(`[1, 2, 3]`, r)

	assert.EqualError(t, err, "stop")
	assert.Len(t, r.events, 2)
}

func TestParseDeepDocument(t *testing.T) {
	const depth = 40000
	v, err := Parse([]byte(strings.Repeat("[", depth) + strings.Repeat("]", depth)))
	require.NoError(t, err)

	for i := 0; i < depth-1; i++ {
		elements := v.Elements()
		require.Len(t, elements, 1)
		v = elements[0]
	}
	assert.Equal(t, "[]", v.Raw())
}

func TestParseContainerRaw(t *testing.T) {
	v, err := Parse([]byte(` {"a": {"b": [1, 2]}} `))
	require.NoError(t, err)

	assert.Equal(t, `{"a": {"b": [1, 2]}}`, v.Raw())
	inner := v.Members()[0].Value
	assert.Equal(t, `{"b": [1, 2]}`, inner.Raw())
	assert.Equal(t, `[1, 2]`, inner.Members()[0].Value.Raw())
}
