package ui

import (
	"sync"
	"time"
)

// MessageTTL is how long a status message stays in the status bar
const MessageTTL = 3 * time.Second

// Message is a status message with the time it was posted
type Message struct {
	Text      string
	IsError   bool
	Timestamp time.Time
}

// MessageLogger keeps the last maxSize status messages
type MessageLogger struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
	now      func() time.Time
}

// NewMessageLogger creates a new message logger with the specified max size
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		now:      time.Now,
	}
}

// Info posts an informational message
func (ml *MessageLogger) Info(text string) {
	ml.add(text, false)
}

// Error posts an error message
func (ml *MessageLogger) Error(text string) {
	ml.add(text, true)
}

func (ml *MessageLogger) add(text string, isError bool) {
	if text == "" {
		return
	}

	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, Message{Text: text, IsError: isError, Timestamp: ml.now()})
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Current returns the newest message while it is younger than MessageTTL
func (ml *MessageLogger) Current() (Message, bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if len(ml.messages) == 0 {
		return Message{}, false
	}
	last := ml.messages[len(ml.messages)-1]
	if ml.now().Sub(last.Timestamp) >= MessageTTL {
		return Message{}, false
	}
	return last, true
}

// GetMessagesReverse returns a copy of all messages, newest first
func (ml *MessageLogger) GetMessagesReverse() []Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	result := make([]Message, len(ml.messages))
	for i, msg := range ml.messages {
		result[len(ml.messages)-1-i] = msg
	}
	return result
}

// Lines formats the messages newest first for the overlay
func (ml *MessageLogger) Lines() []string {
	msgs := ml.GetMessagesReverse()
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		prefix := "  "
		if m.IsError {
			prefix = "! "
		}
		lines = append(lines, prefix+m.Timestamp.Format("15:04:05")+" "+m.Text)
	}
	return lines
}

// Count returns the number of messages in the logger
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}
