package tui

import (
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.innerWidth()
		return m, nil

	case DateSelectedMsg:
		LogDateSelected(msg.Key, "pulse")
		if msg.Key != m.selected {
			m.cursor = 0
		}
		m.selected = msg.Key
		if i := slices.Index(dateutil.Upcoming(m.now()), msg.Key); i >= 0 {
			m.focus = i
		}
		return m, nil

	case commands.DataLoadedMsg:
		m.tasks = msg.Tasks
		m.projects = msg.Projects
		m.loading = false
		// After midnight the window shifts. A selection that fell out of it
		// moves to today; the focus follows the selection.
		if m.loadedFor != "" && m.loadedFor != msg.Day {
			i := slices.Index(dateutil.Upcoming(m.now()), m.selected)
			if i < 0 {
				m.selected = msg.Day
				m.cursor = 0
				i = 0
			}
			m.focus = i
		}
		m.loadedFor = msg.Day
		if n := len(m.dayTasks()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		LogDataLoaded(msg.Day, len(msg.Tasks), len(msg.Projects))
		return m, nil

	case commands.TaskToggledMsg:
		status := "Reopened"
		if msg.Completed {
			status = "Completed"
		}
		m.statusMsg = status
		m.statusTime = m.now().Add(statusTTL)
		updated, cmd := m.reload()
		return updated, tea.Batch(cmd, clearStatusAfter(statusTTL))

	case commands.InsightMsg:
		m.insight = msg.Text
		m.statusMsg = ""
		return m, nil

	case commands.ClockTickMsg:
		next := commands.ClockTick(clockInterval)
		if today := dateutil.Today(m.now()); !m.loading && m.loadedFor != "" && today != m.loadedFor {
			updated, cmd := m.reload()
			return updated, tea.Batch(cmd, next)
		}
		return m, next

	case commands.ErrMsg:
		LogError("command", msg.Err)
		m.loading = false
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(errorTTL)
		return m, clearStatusAfter(errorTTL)

	case commands.StatusMsgCmd:
		m.err = nil
		m.statusMsg = msg.Msg
		m.statusTime = m.now().Add(statusTTL)
		return m, clearStatusAfter(statusTTL)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil
	}

	return m, nil
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
