package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekpulse/internal/tui/theme"
	"github.com/javiermolinar/weekpulse/internal/tui/view"
)

// App padding around all sections.
const (
	appPadX = 1
	appPadY = 0
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg      lipgloss.Color
	colorFg      lipgloss.Color
	colorFgMuted lipgloss.Color
	colorAccent  lipgloss.Color
	colorWarning lipgloss.Color

	Pulse view.PulseStyles
	Day   view.DayStyles

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		colorBg:      p.Bg,
		colorFg:      p.Fg,
		colorFgMuted: p.FgMuted,
		colorAccent:  p.Accent,
		colorWarning: p.Warning,
	}

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	// Tile backgrounds carry the variant; the border color marks focus.
	tile := lipgloss.NewStyle().
		Background(p.TileBg).
		Foreground(p.Fg).
		BorderForeground(p.BgSelection)

	s.Pulse = view.PulseStyles{
		Title:   base.Bold(true).Foreground(p.Accent),
		Label:   base.Foreground(p.FgMuted),
		Active:  base.Bold(true).Foreground(p.Project),
		Default: tile,
		Today: tile.
			Background(p.TodayBg).
			Foreground(p.TextOnToday).
			BorderForeground(p.Today),
		Selected: tile.
			Bold(true).
			Background(p.SelectedBg).
			Foreground(p.TextOnAccent).
			BorderForeground(p.Accent),
		Project:     lipgloss.NewStyle().Foreground(p.Project).Bold(true),
		Area:        lipgloss.NewStyle().Foreground(p.Area).Bold(true),
		Placeholder: lipgloss.NewStyle().Foreground(p.FgMuted),
		FocusBorder: p.Warning,
		Bg:          p.Bg,
	}

	s.Day = view.DayStyles{
		Heading: base.Bold(true).Foreground(p.Accent),
		Row:     base,
		Cursor:  base.Bold(true).Foreground(p.Warning),
		Done:    base.Foreground(p.FgMuted).Strikethrough(true),
		Meta:    base.Foreground(p.FgMuted),
		Project: base.Foreground(p.Project),
		Area:    base.Foreground(p.Area),
		Empty:   base.Italic(true).Foreground(p.FgMuted),
		Insight: base.Italic(true).Foreground(p.Fg),
		Bg:      p.Bg,
	}

	s.StatusStyle = base.Foreground(p.Accent)
	s.ErrorStyle = base.Foreground(p.Warning).Bold(true)
	s.HelpStyle = base.Foreground(p.FgMuted)

	s.AppStyle = lipgloss.NewStyle().
		Background(p.Bg).
		Padding(appPadY, appPadX)

	return s
}
