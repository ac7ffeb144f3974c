package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox places content at the left of a w×h box, aligned vertically by
// vAlign, and fills every blank cell with bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground makes content exactly width×height: short lines are
// filled with bg, long lines are cut, missing lines are added.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	fill := lipgloss.NewStyle().Background(bg)

	lines := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		switch w := lipgloss.Width(line); {
		case w > width:
			out[i] = ansi.Truncate(line, width, "")
		case w < width:
			out[i] = line + fill.Render(strings.Repeat(" ", width-w))
		default:
			out[i] = line
		}
	}
	return strings.Join(out, "\n")
}
