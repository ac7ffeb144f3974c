package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/locale"
	"github.com/javiermolinar/weekpulse/internal/summary"
	"github.com/javiermolinar/weekpulse/internal/task"
)

// shortIDLen is how many ID characters listings show. Commands accept any
// unique prefix.
const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// formatPulse renders the pulse as colored text. With color disabled the
// output matches summary.Pulse.Text without the insight.
func formatPulse(p *summary.Pulse, names *locale.Names, selected dateutil.DayKey) string {
	var sb strings.Builder
	from, to := p.Range()
	sb.WriteString(formatHeader(fmt.Sprintf("7-Day Weekly Pulse (%s to %s)", from, to)))
	fmt.Fprintf(&sb, " | Active Proj: %d\n", p.ActiveProjects)

	for _, d := range p.Days {
		marker := " "
		switch summary.Variant(d.Key, selected, p.Today) {
		case summary.TileSelected:
			marker = formatSelected(">")
		case summary.TileToday:
			marker = formatSelected("*")
		}
		fmt.Fprintf(&sb, "%s %-4s %2d  %s\n", marker, names.ShortWeekday(d.Key.Weekday()), d.Key.DayOfMonth(), formatCounts(d.Summary))
	}
	return sb.String()
}

func formatCounts(s summary.DaySummary) string {
	if s.IsEmpty() {
		return formatMuted(summary.Placeholder)
	}
	parts := make([]string, 0, 2)
	if s.ProjectCount > 0 {
		parts = append(parts, formatProject(fmt.Sprintf("PROJ %d", s.ProjectCount)))
	}
	if s.AreaCount > 0 {
		parts = append(parts, formatArea(fmt.Sprintf("AREAS %d", s.AreaCount)))
	}
	return strings.Join(parts, "  ")
}

// formatTaskRow renders one task for listings.
func formatTaskRow(t *task.Task, projects map[string]*task.Project) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	row := fmt.Sprintf("  %s %s  %s", box, formatMuted(shortID(t.ID)), t.Title)
	if meta := taskMeta(t, projects); meta != "" {
		row += "  " + meta
	}
	return row
}

func taskMeta(t *task.Task, projects map[string]*task.Project) string {
	if id, ok := t.Project.ID(); ok {
		if p, found := projects[id]; found {
			return formatProject(p.Title)
		}
		return formatMuted("project " + shortID(id))
	}
	if t.Category == task.CategoryAreas {
		return formatArea(string(t.Category))
	}
	if t.Category != task.CategoryNone {
		return formatMuted(string(t.Category))
	}
	return ""
}

func projectIndex(projects []*task.Project) map[string]*task.Project {
	m := make(map[string]*task.Project, len(projects))
	for _, p := range projects {
		m[p.ID] = p
	}
	return m
}

// PrintInsightWrapped formats and prints insight text preserving structure.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	text = stripMarkdownCodeBlocks(text)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprintln(w)
			continue
		}

		prefix, content, contentWidth, header := parseInsightLine(trimmed, width)
		if header {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatHeader("  "+content))
			continue
		}
		wrapAndPrint(w, content, prefix, contentWidth)
	}
}

// parseInsightLine returns the prefix, content and wrap width for a line,
// and whether it is a markdown header.
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6

	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true

	case strings.HasPrefix(trimmed, ">"):
		content = strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))
		prefix = "  │ "
		contentWidth = width - 4

	case isNumberedItem(trimmed):
		idx := strings.Index(trimmed, ".")
		prefix = "  " + trimmed[:idx+1] + " "
		content = strings.TrimSpace(trimmed[idx+1:])
		contentWidth = width - len(prefix)
	}

	return prefix, content, contentWidth, isHeader
}

// isNumberedItem checks if a line starts with "N." or "NN.".
func isNumberedItem(s string) bool {
	if len(s) < 3 || s[0] < '1' || s[0] > '9' {
		return false
	}
	if s[1] == '.' {
		return true
	}
	return s[1] >= '0' && s[1] <= '9' && len(s) > 3 && s[2] == '.'
}

func wrapAndPrint(w io.Writer, text, prefix string, width int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	cont := strings.Repeat(" ", runewidth.StringWidth(prefix))
	lead := prefix
	line := ""
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
			line += " " + word
		default:
			fmt.Fprintln(w, formatInsight(lead+line))
			lead = cont
			line = word
		}
	}
	fmt.Fprintln(w, formatInsight(lead+line))
}

// stripMarkdownCodeBlocks removes ``` fences and their contents.
func stripMarkdownCodeBlocks(text string) string {
	var result []string
	inCodeBlock := false
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if !inCodeBlock {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
