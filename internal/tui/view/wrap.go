package view

import "github.com/mattn/go-runewidth"

// WrapTextToWidths wraps text across the provided widths, breaking at spaces
// when possible. The first line may have a different width than the rest.
func WrapTextToWidths(s string, firstWidth, otherWidth int) []string {
	if firstWidth <= 0 || otherWidth <= 0 {
		return []string{""}
	}

	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 4)
	width := firstWidth
	lineStart := 0
	lastSpace := -1
	lineWidth := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			lines = append(lines, string(runes[lineStart:i]))
			lineStart = i + 1
			width = otherWidth
			lastSpace = -1
			lineWidth = 0
			continue
		}
		if r == ' ' {
			lastSpace = i
		}

		w := runewidth.RuneWidth(r)
		if lineWidth > 0 && lineWidth+w > width {
			if lastSpace >= lineStart {
				lines = append(lines, string(runes[lineStart:lastSpace]))
				i = lastSpace
				lineStart = lastSpace + 1
			} else {
				lines = append(lines, string(runes[lineStart:i]))
				lineStart = i
				i--
			}
			width = otherWidth
			lastSpace = -1
			lineWidth = 0
			continue
		}
		lineWidth += w
	}

	lines = append(lines, string(runes[lineStart:]))
	return lines
}
