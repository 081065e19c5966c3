package shell

// Direction selects which neighbour of the cursor Recall moves to.
type Direction int

const (
	Older Direction = iota
	Newer
)

// RecallResult tells the editor what to do with its buffer after a recall.
type RecallResult int

const (
	// RecallMiss leaves the buffer untouched. Returned when moving older
	// past the oldest entry.
	RecallMiss RecallResult = iota
	// RecallEntry replaces the buffer with the returned entry.
	RecallEntry
	// RecallBlank clears the buffer. Returned when moving newer past the
	// newest entry.
	RecallBlank
)

// History is a bounded, oldest-first log of command lines with a recall
// cursor. The cursor ranges over [0, Len()]; Len() means "past the newest".
type History struct {
	entries  []string
	capacity int
	cursor   int
}

// NewHistory returns an empty history holding at most capacity entries.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		entries:  make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Append stores line unless it is empty or equal to the newest entry.
// A full history drops its oldest entry first. It reports whether the line
// was stored; the cursor only resets when it was.
func (h *History) Append(line string) bool {
	if line == "" {
		return false
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return false
	}

	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, line)
	h.cursor = len(h.entries)
	return true
}

// Recall moves the cursor one step in dir. Moving older stops at the oldest
// entry; moving newer past the newest parks the cursor at Len() and yields
// RecallBlank.
func (h *History) Recall(dir Direction) (string, RecallResult) {
	candidate := h.cursor - 1
	if dir == Newer {
		candidate = h.cursor + 1
	}

	if candidate >= 0 && candidate < len(h.entries) {
		h.cursor = candidate
		return h.entries[candidate], RecallEntry
	}

	if dir == Newer {
		h.cursor = len(h.entries)
		return "", RecallBlank
	}
	return "", RecallMiss
}

// ResetCursor parks the cursor past the newest entry.
func (h *History) ResetCursor() {
	h.cursor = len(h.entries)
}

// Cursor returns the current recall position.
func (h *History) Cursor() int {
	return h.cursor
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the maximum number of entries.
func (h *History) Capacity() int {
	return h.capacity
}

// Entries returns a copy of the stored lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear drops every entry.
func (h *History) Clear() {
	clear(h.entries)
	h.entries = h.entries[:0]
	h.cursor = 0
}
