package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterViewState holds the status and help text of the footer.
type FooterViewState struct {
	InnerW      int
	StatusText  string
	HelpText    string
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	Bg          lipgloss.Color
}

// FooterHeight returns the number of lines RenderFooter produces.
func FooterHeight(state FooterViewState) int {
	return 1 + strings.Count(state.HelpText, "\n") + 1
}

// RenderFooter renders the status line followed by the help lines.
func RenderFooter(state FooterViewState) string {
	lines := []string{footerLine(state.InnerW, state.StatusStyle, state.StatusText)}
	for _, l := range strings.Split(state.HelpText, "\n") {
		lines = append(lines, footerLine(state.InnerW, state.HelpStyle, l))
	}
	return PlaceBox(state.InnerW, len(lines), lipgloss.Bottom, strings.Join(lines, "\n"), state.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Render(content)
}
