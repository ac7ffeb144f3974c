package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/locale"
	"github.com/javiermolinar/weekpulse/internal/summary"
	"github.com/javiermolinar/weekpulse/internal/task"
	"github.com/javiermolinar/weekpulse/internal/tui/view"
)

// SelectFunc turns an activated day into the message delivered to the caller.
type SelectFunc func(dateutil.DayKey) tea.Msg

// DateSelectedMsg reports that a pulse tile was activated.
type DateSelectedMsg struct {
	Key dateutil.DayKey
}

// DefaultSelect wraps the key in a DateSelectedMsg.
func DefaultSelect(key dateutil.DayKey) tea.Msg {
	return DateSelectedMsg{Key: key}
}

// PulseInput is everything the strip renders from. The component keeps
// none of it between calls.
type PulseInput struct {
	Tasks    []*task.Task
	Projects []*task.Project
	Selected dateutil.DayKey
	Now      time.Time
	Focus    int // tile index with keyboard focus, -1 for none
	Width    int
}

// WeeklySummary is the 7-day pulse strip. It holds only presentation
// settings: the selected day is owned by the caller and passed in on
// every render.
type WeeklySummary struct {
	names    *locale.Names
	styles   view.PulseStyles
	onSelect SelectFunc
}

// NewWeeklySummary creates the strip. A nil onSelect uses DefaultSelect.
func NewWeeklySummary(names *locale.Names, styles view.PulseStyles, onSelect SelectFunc) WeeklySummary {
	if names == nil {
		names = locale.New(locale.DefaultTag)
	}
	if onSelect == nil {
		onSelect = DefaultSelect
	}
	return WeeklySummary{names: names, styles: styles, onSelect: onSelect}
}

// State computes the view state of the strip from scratch.
func (w WeeklySummary) State(in PulseInput) view.PulseViewState {
	p := summary.BuildPulse(in.Now, in.Tasks, in.Projects)
	tiles := make([]view.TileView, len(p.Days))
	for i, d := range p.Days {
		tiles[i] = view.TileView{
			Weekday: w.names.ShortWeekday(d.Key.Weekday()),
			Day:     d.Key.DayOfMonth(),
			Counts:  d.Summary,
			Variant: summary.Variant(d.Key, in.Selected, p.Today),
			Focused: i == in.Focus,
		}
	}
	return view.PulseViewState{
		InnerW:         in.Width,
		ActiveProjects: p.ActiveProjects,
		Tiles:          tiles,
		Styles:         w.styles,
	}
}

// View renders the strip.
func (w WeeklySummary) View(in PulseInput) string {
	return view.RenderPulse(w.State(in))
}

// Activate returns the selection message for the tile at index.
// Out-of-range indexes produce nothing.
func (w WeeklySummary) Activate(now time.Time, index int) (tea.Msg, bool) {
	keys := dateutil.Upcoming(now)
	if index < 0 || index >= len(keys) {
		return nil, false
	}
	return w.onSelect(keys[index]), true
}

// HandleClick activates the tile under a left-button press.
func (w WeeklySummary) HandleClick(now time.Time, geo view.PulseGeometry, msg tea.MouseMsg) (tea.Msg, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil, false
	}
	return w.Activate(now, geo.TileAt(msg.X, msg.Y))
}
