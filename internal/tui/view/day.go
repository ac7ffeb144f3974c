package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// EmptyDayText is shown when the selected day has no tasks.
const EmptyDayText = "No tasks for this day"

// DayTaskView is one row of the day list.
type DayTaskView struct {
	Title     string
	Meta      string
	Completed bool
	Project   bool
	Area      bool
}

// DayStyles holds the styles of the day list.
type DayStyles struct {
	Heading lipgloss.Style
	Row     lipgloss.Style
	Cursor  lipgloss.Style
	Done    lipgloss.Style
	Meta    lipgloss.Style
	Project lipgloss.Style
	Area    lipgloss.Style
	Empty   lipgloss.Style
	Insight lipgloss.Style
	Bg      lipgloss.Color
}

// DayViewState holds the content of the day section.
type DayViewState struct {
	InnerW  int
	Height  int
	Heading string
	Tasks   []DayTaskView
	Cursor  int
	Insight string
	Styles  DayStyles
}

// RenderDay renders the selected day's tasks with an optional insight block
// at the bottom. The list scrolls to keep the cursor visible.
func RenderDay(state DayViewState) string {
	if state.Height <= 0 || state.InnerW <= 0 {
		return ""
	}
	s := state.Styles
	lines := []string{s.Heading.Render(ansi.Truncate(state.Heading, state.InnerW, ""))}

	var insight []string
	if state.Insight != "" {
		for _, l := range WrapTextToWidths(state.Insight, state.InnerW, state.InnerW) {
			insight = append(insight, s.Insight.Render(l))
		}
		// Keep at least the heading and one row for the list.
		if room := state.Height - 3; len(insight) > room {
			insight = insight[:max(room, 0)]
		}
	}

	listH := state.Height - len(lines) - len(insight)
	if len(insight) > 0 {
		listH-- // spacer
	}

	if len(state.Tasks) == 0 {
		if listH > 0 {
			lines = append(lines, s.Empty.Render(EmptyDayText))
		}
	} else {
		from, to := visibleRange(len(state.Tasks), state.Cursor, listH)
		for i := from; i < to; i++ {
			lines = append(lines, renderDayRow(state.Tasks[i], i == state.Cursor, state.InnerW, s))
		}
	}

	if len(insight) > 0 {
		for len(lines) < state.Height-len(insight)-1 {
			lines = append(lines, "")
		}
		lines = append(lines, "")
		lines = append(lines, insight...)
	}

	return PlaceBox(state.InnerW, state.Height, lipgloss.Top, strings.Join(lines, "\n"), s.Bg)
}

func renderDayRow(t DayTaskView, selected bool, width int, s DayStyles) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	box := "[ ] "
	if t.Completed {
		box = "[x] "
	}

	title := t.Title
	meta := ""
	if t.Meta != "" {
		meta = "  " + t.Meta
	}
	avail := width - len(marker) - len(box)
	if lipgloss.Width(title)+lipgloss.Width(meta) > avail {
		meta = ""
		title = ansi.Truncate(title, max(avail, 0), "…")
	}

	titleStyle := s.Row
	switch {
	case t.Completed:
		titleStyle = s.Done
	case t.Project:
		titleStyle = s.Project
	case t.Area:
		titleStyle = s.Area
	}
	markerStyle := s.Row
	if selected {
		markerStyle = s.Cursor
		titleStyle = titleStyle.Bold(true)
	}

	row := markerStyle.Render(marker) + s.Row.Render(box) + titleStyle.Render(title)
	if meta != "" {
		row += s.Meta.Render(meta)
	}
	return row
}

// visibleRange returns the [from, to) window of n rows of height h
// that contains cursor.
func visibleRange(n, cursor, h int) (int, int) {
	if h <= 0 {
		return 0, 0
	}
	if n <= h {
		return 0, n
	}
	cursor = min(max(cursor, 0), n-1)
	from := 0
	if cursor >= h {
		from = cursor - h + 1
	}
	return from, from + h
}
