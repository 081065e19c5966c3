package shell

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Append(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		lines    []string
		expected []string
	}{
		{
			name:     "keeps order",
			capacity: 5,
			lines:    []string{"ls", "pwd", "echo hi"},
			expected: []string{"ls", "pwd", "echo hi"},
		},
		{
			name:     "empty line is ignored",
			capacity: 5,
			lines:    []string{"ls", "", "pwd"},
			expected: []string{"ls", "pwd"},
		},
		{
			name:     "adjacent duplicate is ignored",
			capacity: 5,
			lines:    []string{"ls", "ls", "pwd", "ls"},
			expected: []string{"ls", "pwd", "ls"},
		},
		{
			name:     "evicts oldest when full",
			capacity: 3,
			lines:    []string{"a", "b", "c", "d"},
			expected: []string{"b", "c", "d"},
		},
		{
			name:     "capacity of one",
			capacity: 1,
			lines:    []string{"a", "b"},
			expected: []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.capacity)
			for _, line := range tt.lines {
				h.Append(line)
			}
			assert.Equal(t, tt.expected, h.Entries())
			assert.Equal(t, h.Len(), h.Cursor())
		})
	}
}

func TestHistory_AppendReportsStored(t *testing.T) {
	h := NewHistory(4)
	assert.False(t, h.Append(""))
	assert.Equal(t, 0, h.Len())
	assert.True(t, h.Append("ls"))
	assert.False(t, h.Append("ls"))
	assert.Equal(t, 1, h.Len())
}

func TestHistory_InvariantsUnderRandomAppends(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	words := []string{"", "ls", "pwd", "cd /tmp", "echo a"}

	h := NewHistory(10)
	for i := 0; i < 2000; i++ {
		h.Append(words[rng.Intn(len(words))])

		entries := h.Entries()
		require.LessOrEqual(t, len(entries), h.Capacity())
		for j := 1; j < len(entries); j++ {
			require.NotEqualf(t, entries[j-1], entries[j], "adjacent duplicate at %d", j)
		}
	}
}

func TestHistory_EvictionShiftsDown(t *testing.T) {
	h := NewHistory(4)
	for i := 0; i < 4; i++ {
		h.Append(fmt.Sprintf("cmd%d", i))
	}
	before := h.Entries()

	h.Append("cmd4")
	after := h.Entries()

	assert.NotContains(t, after, "cmd0")
	assert.Equal(t, before[1:], after[:3])
	assert.Equal(t, "cmd4", after[3])
}

func TestHistory_RecallOlder(t *testing.T) {
	h := NewHistory(10)
	h.Append("one")
	h.Append("two")
	h.Append("three")

	for _, want := range []string{"three", "two", "one"} {
		got, res := h.Recall(Older)
		require.Equal(t, RecallEntry, res)
		assert.Equal(t, want, got)
	}

	// No wraparound at the oldest entry.
	got, res := h.Recall(Older)
	assert.Equal(t, RecallMiss, res)
	assert.Empty(t, got)
	assert.Equal(t, 0, h.Cursor())
}

func TestHistory_RecallNewerEndsBlank(t *testing.T) {
	h := NewHistory(10)
	h.Append("one")
	h.Append("two")

	h.Recall(Older)
	h.Recall(Older)

	got, res := h.Recall(Newer)
	require.Equal(t, RecallEntry, res)
	assert.Equal(t, "two", got)

	got, res = h.Recall(Newer)
	assert.Equal(t, RecallBlank, res)
	assert.Empty(t, got)
	assert.Equal(t, h.Len(), h.Cursor())

	// One more than available still clears instead of resurfacing an entry.
	got, res = h.Recall(Newer)
	assert.Equal(t, RecallBlank, res)
	assert.Empty(t, got)

	// From the blank slot, older yields the newest entry again.
	got, res = h.Recall(Older)
	require.Equal(t, RecallEntry, res)
	assert.Equal(t, "two", got)
}

func TestHistory_RecallEmpty(t *testing.T) {
	h := NewHistory(10)

	_, res := h.Recall(Older)
	assert.Equal(t, RecallMiss, res)

	_, res = h.Recall(Newer)
	assert.Equal(t, RecallBlank, res)
}

func TestHistory_AppendResetsCursor(t *testing.T) {
	h := NewHistory(10)
	h.Append("one")
	h.Append("two")
	h.Recall(Older)
	h.Recall(Older)
	require.Equal(t, 0, h.Cursor())

	h.Append("three")
	assert.Equal(t, 3, h.Cursor())

	got, _ := h.Recall(Older)
	assert.Equal(t, "three", got)
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(3)
	h.Append("one")
	h.Clear()

	assert.Zero(t, h.Len())
	assert.Zero(t, h.Cursor())
	assert.Empty(t, h.Entries())
}
