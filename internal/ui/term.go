package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Project tasks: bold cyan
	colorProject = color.New(color.FgCyan, color.Bold)

	// Area tasks: green
	colorArea = color.New(color.FgGreen)

	// Insight: yellow to make it pop
	colorInsight = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Selected day marker
	colorSelected = color.New(color.FgMagenta, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// stdoutIsTerminal reports whether stdout is an interactive terminal.
func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatProject(s string) string {
	return colorProject.Sprint(s)
}

func formatArea(s string) string {
	return colorArea.Sprint(s)
}

func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatSelected(s string) string {
	return colorSelected.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
