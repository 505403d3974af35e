package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessageLoggerExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ml := NewMessageLogger(2)
	ml.now = func() time.Time { return now }

	_, ok := ml.Current()
	assert.False(t, ok)

	ml.Info("")
	assert.Zero(t, ml.Count(), "empty messages are ignored")

	ml.Info("copied")
	msg, ok := ml.Current()
	assert.True(t, ok)
	assert.Equal(t, "copied", msg.Text)
	assert.False(t, msg.IsError)

	now = now.Add(MessageTTL)
	_, ok = ml.Current()
	assert.False(t, ok, "message expires")
}

func TestMessageLoggerKeepsNewest(t *testing.T) {
	ml := NewMessageLogger(2)
	ml.Info("one")
	ml.Error("two")
	ml.Info("three")

	msgs := ml.GetMessagesReverse()
	assert.Len(t, msgs, 2)
	assert.Equal(t, "three", msgs[0].Text)
	assert.Equal(t, "two", msgs[1].Text)
	assert.True(t, msgs[1].IsError)

	lines := ml.Lines()
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "! ")
	assert.Contains(t, lines[1], "two")
}
