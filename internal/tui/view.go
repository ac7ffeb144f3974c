package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/task"
	"github.com/javiermolinar/weekpulse/internal/tui/view"
)

// View renders the pulse strip, the selected day and the footer.
func (m Model) View() string {
	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		EmptyPlaceholder: "Loading...",
	}
	if m.width > 0 && m.height > 0 {
		state.Content = m.renderAppContent()
	}
	return view.Render(state)
}

func (m Model) renderAppContent() string {
	innerW := m.innerWidth()
	innerH := m.height - 2*appPadY
	if innerW <= 0 || innerH <= 0 {
		return "Terminal too small"
	}

	pulse := m.pulse.View(PulseInput{
		Tasks:    m.tasks,
		Projects: m.projects,
		Selected: m.selected,
		Now:      m.now(),
		Focus:    m.focus,
		Width:    innerW,
	})

	footerState := m.footerViewState(innerW)
	parts := []string{pulse}
	if dayH := innerH - view.PulseHeight() - view.FooterHeight(footerState) - 1; dayH > 0 {
		parts = append(parts,
			m.placeBox(innerW, 1, lipgloss.Top, ""),
			view.RenderDay(m.dayViewState(innerW, dayH)),
		)
	}
	parts = append(parts, view.RenderFooter(footerState))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

// placeBox is a helper to render content in an explicit lipgloss box.
func (m Model) placeBox(w, h int, vAlign lipgloss.Position, content string) string {
	return view.PlaceBox(w, h, vAlign, content, m.styles.colorBg)
}

func (m Model) dayViewState(innerW, height int) view.DayViewState {
	sel := m.selected
	heading := fmt.Sprintf("%s %d · %s", m.names.ShortWeekday(sel.Weekday()), sel.DayOfMonth(), sel)
	if m.loading {
		heading += "  (loading)"
	}

	titles := make(map[string]string, len(m.projects))
	for _, p := range m.projects {
		titles[p.ID] = p.Title
	}

	tasks := m.dayTasks()
	rows := make([]view.DayTaskView, len(tasks))
	for i, t := range tasks {
		rows[i] = view.DayTaskView{
			Title:     t.Title,
			Meta:      taskMeta(t, titles),
			Completed: t.Completed,
			Project:   t.Kind() == task.KindProject,
			Area:      t.Kind() == task.KindArea,
		}
	}

	return view.DayViewState{
		InnerW:  innerW,
		Height:  height,
		Heading: heading,
		Tasks:   rows,
		Cursor:  m.cursor,
		Insight: m.insight,
		Styles:  m.styles.Day,
	}
}

// taskMeta names the project a task belongs to, or its category.
func taskMeta(t *task.Task, projectTitles map[string]string) string {
	if id, ok := t.Project.ID(); ok {
		if title, found := projectTitles[id]; found {
			return title
		}
		return "project " + id
	}
	return string(t.Category)
}

func (m Model) footerViewState(innerW int) view.FooterViewState {
	statusStyle := m.styles.StatusStyle
	status := m.statusMsg
	switch {
	case status != "" && m.err != nil:
		statusStyle = m.styles.ErrorStyle
	case status == "":
		status = fmt.Sprintf("Today %s  ·  Selected %s", dateutil.Today(m.now()), m.selected)
		statusStyle = m.styles.HelpStyle
	}

	return view.FooterViewState{
		InnerW:      innerW,
		StatusText:  status,
		HelpText:    m.help.View(m.keys),
		StatusStyle: statusStyle,
		HelpStyle:   m.styles.HelpStyle,
		Bg:          m.styles.colorBg,
	}
}
