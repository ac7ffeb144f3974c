package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainDayStyles() DayStyles {
	base := lipgloss.NewStyle()
	return DayStyles{
		Heading: base, Row: base, Cursor: base, Done: base, Meta: base,
		Project: base, Area: base, Empty: base, Insight: base,
	}
}

func TestRenderDayEmpty(t *testing.T) {
	withProfile(t, termenv.Ascii)

	out := ansi.Strip(RenderDay(DayViewState{
		InnerW:  40,
		Height:  5,
		Heading: "Sat 1 · 2024-06-01",
		Styles:  plainDayStyles(),
	}))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Sat 1")
	assert.Contains(t, lines[1], EmptyDayText)
}

func TestRenderDayRows(t *testing.T) {
	withProfile(t, termenv.Ascii)

	out := ansi.Strip(RenderDay(DayViewState{
		InnerW:  50,
		Height:  6,
		Heading: "Sat 1",
		Tasks: []DayTaskView{
			{Title: "Draft chapter", Meta: "Book", Project: true},
			{Title: "Gym", Meta: "Areas", Area: true},
			{Title: "Old note", Completed: true},
		},
		Cursor: 1,
		Styles: plainDayStyles(),
	}))
	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[1], "  [ ] Draft chapter  Book"))
	assert.True(t, strings.HasPrefix(lines[2], "> [ ] Gym  Areas"))
	assert.True(t, strings.HasPrefix(lines[3], "  [x] Old note"))
}

func TestRenderDayScrollsToCursor(t *testing.T) {
	withProfile(t, termenv.Ascii)

	tasks := make([]DayTaskView, 10)
	for i := range tasks {
		tasks[i] = DayTaskView{Title: string(rune('a' + i))}
	}
	out := ansi.Strip(RenderDay(DayViewState{
		InnerW: 20, Height: 4, Heading: "h", Tasks: tasks, Cursor: 8, Styles: plainDayStyles(),
	}))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[3], "> [ ] i"))
	assert.True(t, strings.HasPrefix(lines[1], "  [ ] g"))
}

func TestRenderDayInsight(t *testing.T) {
	withProfile(t, termenv.Ascii)

	out := ansi.Strip(RenderDay(DayViewState{
		InnerW:  30,
		Height:  8,
		Heading: "h",
		Tasks:   []DayTaskView{{Title: "one"}},
		Insight: "Heavy Monday, light weekend.",
		Styles:  plainDayStyles(),
	}))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[7], "Heavy Monday, light weekend.")
	assert.Contains(t, lines[1], "one")
}

func TestRenderDayTruncatesLongTitles(t *testing.T) {
	withProfile(t, termenv.Ascii)

	out := ansi.Strip(RenderDay(DayViewState{
		InnerW:  16,
		Height:  2,
		Heading: "h",
		Tasks:   []DayTaskView{{Title: "A very long task title", Meta: "Book"}},
		Styles:  plainDayStyles(),
	}))
	lines := strings.Split(out, "\n")
	assert.Equal(t, 16, lipgloss.Width(lines[1]))
	assert.NotContains(t, lines[1], "Book")
	assert.Contains(t, lines[1], "…")
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		n, cursor, h int
		from, to     int
	}{
		{5, 0, 10, 0, 5},
		{10, 0, 3, 0, 3},
		{10, 2, 3, 0, 3},
		{10, 3, 3, 1, 4},
		{10, 9, 3, 7, 10},
		{10, 42, 3, 7, 10},
		{4, 0, 0, 0, 0},
	}
	for _, tc := range tests {
		from, to := visibleRange(tc.n, tc.cursor, tc.h)
		assert.Equal(t, tc.from, from, "from n=%d cursor=%d h=%d", tc.n, tc.cursor, tc.h)
		assert.Equal(t, tc.to, to, "to n=%d cursor=%d h=%d", tc.n, tc.cursor, tc.h)
	}
}

func TestRenderFooter(t *testing.T) {
	withProfile(t, termenv.Ascii)

	state := FooterViewState{
		InnerW:     20,
		StatusText: "Copied",
		HelpText:   "q quit\n? help",
	}
	out := ansi.Strip(RenderFooter(state))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, FooterHeight(state))
	assert.True(t, strings.HasPrefix(lines[0], "Copied"))
	assert.True(t, strings.HasPrefix(lines[2], "? help"))
	assert.Equal(t, 20, lipgloss.Width(lines[1]))
}

func TestWrapTextToWidths(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		first int
		other int
		want  []string
	}{
		{"fits", "short", 10, 10, []string{"short"}},
		{"breaks at space", "hello big world", 9, 9, []string{"hello big", "world"}},
		{"hard break", "abcdefgh", 3, 3, []string{"abc", "def", "gh"}},
		{"narrower first line", "one two three", 3, 9, []string{"one", "two three"}},
		{"newline", "a\nb", 5, 5, []string{"a", "b"}},
		{"wide runes", "월화수", 4, 4, []string{"월화", "수"}},
		{"zero width", "x", 0, 5, []string{""}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WrapTextToWidths(tc.in, tc.first, tc.other))
		})
	}
}
