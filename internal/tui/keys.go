package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/summary"
	"github.com/javiermolinar/weekpulse/internal/tui/commands"
)

// KeyMap lists every binding of the app.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Day     key.Binding
	Today   key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Reload  key.Binding
	Insight key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev day")),
		Right:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next day")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Day:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7"), key.WithHelp("1-7", "jump to day")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle done")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Insight: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insight")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy pulse")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Select, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Select, k.Day, k.Today},
		{k.Up, k.Down, k.Toggle},
		{k.Reload, k.Insight, k.Copy},
		{k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.focus = max(m.focus-1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.focus = min(m.focus+1, dateutil.PulseDays-1)
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.activate(m.focus)

	case key.Matches(msg, m.keys.Day):
		return m.activate(int(msg.String()[0] - '1'))

	case key.Matches(msg, m.keys.Today):
		return m.activate(0)

	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if n := len(m.dayTasks()); n > 0 {
			m.cursor = min(m.cursor+1, n-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		t := m.currentTask()
		if t == nil || m.repo == nil {
			return m, nil
		}
		return m, commands.ToggleTask(m.repo, t.ID, !t.Completed)

	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.Insight):
		if m.repo == nil {
			return m, nil
		}
		m.statusMsg = "Asking for insight..."
		m.statusTime = m.now().Add(statusTTL)
		return m, commands.Insight(m.config, m.repo, m.now())

	case key.Matches(msg, m.keys.Copy):
		return m, commands.Copy(m.pulseDigest())
	}

	return m, nil
}

// activate delivers the selection event for the tile at index through the
// pulse component and applies it immediately.
func (m Model) activate(index int) (tea.Model, tea.Cmd) {
	msg, ok := m.pulse.Activate(m.now(), index)
	if !ok {
		return m, nil
	}
	m.focus = index
	return m.Update(msg)
}

// handleMouse selects the clicked tile.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse {
		return m, nil
	}
	geo := m.pulseGeometry()
	idx := geo.TileAt(msg.X, msg.Y)
	LogMouse(msg, idx)

	sel, ok := m.pulse.HandleClick(m.now(), geo, msg)
	if !ok {
		return m, nil
	}
	m.focus = idx
	return m.Update(sel)
}

// pulseDigest renders the plain-text pulse for the clipboard.
func (m Model) pulseDigest() string {
	p := summary.BuildPulse(m.now(), m.tasks, m.projects)
	p.Insight = m.insight
	return p.Text(m.names, m.selected)
}
