package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryNewestFirst(t *testing.T) {
	var h History
	assert.Empty(t, h.Recent(5))

	h.add(Entry{Text: "first"})
	h.add(Entry{Text: "second", Correct: true})
	h.add(Entry{Text: "third"})

	assert.Equal(t, []Entry{{Text: "third"}, {Text: "second", Correct: true}}, h.Recent(2))
	assert.Len(t, h.Recent(0), 3)
	assert.Len(t, h.Recent(10), 3)
	assert.Equal(t, "first", h.Recent(0)[2].Text)
}

func TestLargeHistoryStaysOrdered(t *testing.T) {
	const n = 200000
	var h History
	for i := 0; i < n; i++ {
		h.add(Entry{Kind: EntryResult, Text: fmt.Sprint(i)})
	}
	require.Equal(t, n, h.Len())

	recent := h.Recent(3)
	assert.Equal(t, []string{"199999", "199998", "199997"}, []string{recent[0].Text, recent[1].Text, recent[2].Text})

	all := h.Recent(0)
	require.Len(t, all, n)
	assert.Equal(t, "0", all[n-1].Text)
}

func TestRecentReturnsACopy(t *testing.T) {
	var h History
	h.add(Entry{Text: "kept"})
	got := h.Recent(1)
	got[0].Text = "changed"
	assert.Equal(t, "kept", h.Recent(1)[0].Text)
}
