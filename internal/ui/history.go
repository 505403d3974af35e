package ui

// History keeps previous prompt inputs in memory and lets Up and Down walk
// through them
type History struct {
	entries    []string
	cursor     int // -1 when not navigating
	maxEntries int
	pending    string // input typed before navigation started
}

// NewHistory creates a History holding at most maxEntries inputs
func NewHistory(maxEntries int) *History {
	return &History{cursor: -1, maxEntries: maxEntries}
}

// Add records an input. Empty inputs and repeats of the newest entry are
// ignored; the oldest entries are dropped beyond the limit.
func (h *History) Add(entry string) {
	h.Reset()
	if entry == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}
}

// Load replaces the stored inputs, oldest first, keeping the newest ones
// within the limit
func (h *History) Load(entries []string) {
	h.Reset()
	h.entries = nil
	for _, e := range entries {
		h.Add(e)
	}
}

// Previous steps to an older entry. The first step remembers current so
// Next can restore it.
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor < 0:
		h.pending = current
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps to a newer entry, returning the remembered input after the
// newest one
func (h *History) Next() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		pending := h.pending
		h.Reset()
		return pending, true
	}
	return h.entries[h.cursor], true
}

// Reset ends navigation
func (h *History) Reset() {
	h.cursor = -1
	h.pending = ""
}

// Entries returns a copy of the stored inputs, oldest first
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of stored inputs
func (h *History) Len() int {
	return len(h.entries)
}

// IsNavigating reports whether Previous has been called since the last reset
func (h *History) IsNavigating() bool {
	return h.cursor >= 0
}
