package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekpulse/internal/summary"
)

// Pulse strip dimensions.
const (
	PulseTitle        = "7-Day Weekly Pulse"
	PulseRangeLabel   = "Next 7 Days"
	PulseHeaderHeight = 1
	TileHeight        = 6 // 4 content lines plus border
	TileGap           = 1
	MinTileWidth      = 7
	compactTileWidth  = 12
)

// TileView is the render input for one day tile.
type TileView struct {
	Weekday string
	Day     int
	Counts  summary.DaySummary
	Variant summary.TileVariant
	Focused bool
}

// PulseStyles holds the styles of the pulse strip.
type PulseStyles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Active      lipgloss.Style
	Default     lipgloss.Style
	Today       lipgloss.Style
	Selected    lipgloss.Style
	Project     lipgloss.Style
	Area        lipgloss.Style
	Placeholder lipgloss.Style
	FocusBorder lipgloss.Color
	Bg          lipgloss.Color
}

// Tile returns the tile style for a variant.
func (s PulseStyles) Tile(v summary.TileVariant) lipgloss.Style {
	switch v {
	case summary.TileSelected:
		return s.Selected
	case summary.TileToday:
		return s.Today
	default:
		return s.Default
	}
}

// PulseViewState holds everything needed to render the strip.
type PulseViewState struct {
	InnerW         int
	ActiveProjects int
	Tiles          []TileView
	Styles         PulseStyles
}

// PulseHeight is the number of lines RenderPulse produces.
func PulseHeight() int {
	return PulseHeaderHeight + TileHeight
}

// TileWidth returns the outer width of each tile for n tiles across innerW.
func TileWidth(innerW, n int) int {
	if n <= 0 {
		return 0
	}
	w := (innerW - TileGap*(n-1)) / n
	return max(w, MinTileWidth)
}

// RenderPulse renders the header and the row of tiles.
func RenderPulse(state PulseViewState) string {
	header := renderPulseHeader(state)
	if len(state.Tiles) == 0 {
		return header
	}

	tileW := TileWidth(state.InnerW, len(state.Tiles))
	gap := gapBlock(TileGap, TileHeight, state.Styles.Bg)

	parts := make([]string, 0, len(state.Tiles)*2)
	for i, t := range state.Tiles {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, renderTile(t, tileW, state.Styles))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return lipgloss.JoinVertical(lipgloss.Left, header, row)
}

func renderPulseHeader(state PulseViewState) string {
	s := state.Styles
	left := s.Title.Render(PulseTitle) + s.Label.Render("  "+PulseRangeLabel)
	right := s.Active.Render("Active Proj: " + strconv.Itoa(state.ActiveProjects))

	space := state.InnerW - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		return ansi.Truncate(left+" "+right, max(state.InnerW, 0), "")
	}
	fill := lipgloss.NewStyle().Background(s.Bg).Render(strings.Repeat(" ", space))
	return left + fill + right
}

func renderTile(t TileView, width int, styles PulseStyles) string {
	style := styles.Tile(t.Variant)
	contentW := max(width-2, 1)
	bg := style.GetBackground()

	lines := TileLines(t, width)
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, contentW, "")
	}

	// Count lines are styled on top of the tile background so their resets
	// do not punch holes in it.
	if !t.Counts.IsEmpty() {
		for i := 2; i < len(lines); i++ {
			switch {
			case strings.HasPrefix(lines[i], projectLabel(width)):
				lines[i] = styles.Project.Background(bg).Render(lines[i])
			case strings.HasPrefix(lines[i], areaLabel(width)):
				lines[i] = styles.Area.Background(bg).Render(lines[i])
			}
		}
	} else {
		lines[2] = styles.Placeholder.Background(bg).Render(lines[2])
	}

	border := style.GetBorderTopForeground()
	if t.Focused {
		border = styles.FocusBorder
	}
	return style.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		BorderBackground(styles.Bg).
		Width(contentW).
		Height(TileHeight - 2).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// TileLines returns the plain text lines of a tile: weekday, day of month,
// then the non-zero counts or the placeholder. Always four lines.
func TileLines(t TileView, width int) []string {
	lines := []string{t.Weekday, strconv.Itoa(t.Day)}
	if t.Counts.IsEmpty() {
		lines = append(lines, summary.Placeholder)
	} else {
		if t.Counts.ProjectCount > 0 {
			lines = append(lines, projectLabel(width)+" "+strconv.Itoa(t.Counts.ProjectCount))
		}
		if t.Counts.AreaCount > 0 {
			lines = append(lines, areaLabel(width)+" "+strconv.Itoa(t.Counts.AreaCount))
		}
	}
	for len(lines) < TileHeight-2 {
		lines = append(lines, "")
	}
	return lines
}

func projectLabel(width int) string {
	if width < compactTileWidth {
		return "P"
	}
	return "PROJ"
}

func areaLabel(width int) string {
	if width < compactTileWidth {
		return "A"
	}
	return "AREAS"
}

func gapBlock(w, h int, bg lipgloss.Color) string {
	line := lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", w))
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// PulseGeometry locates tiles on screen for mouse hit testing.
type PulseGeometry struct {
	X, Y  int // top-left cell of the first tile
	TileW int
	TileH int
	Gap   int
	Count int
}

// NewPulseGeometry computes tile positions for a strip rendered at
// (originX, originY) with the given inner width.
func NewPulseGeometry(originX, originY, innerW, count int) PulseGeometry {
	return PulseGeometry{
		X:     originX,
		Y:     originY + PulseHeaderHeight,
		TileW: TileWidth(innerW, count),
		TileH: TileHeight,
		Gap:   TileGap,
		Count: count,
	}
}

// TileAt returns the index of the tile covering cell (x, y), or -1.
// Gaps between tiles belong to no tile.
func (g PulseGeometry) TileAt(x, y int) int {
	if g.TileW <= 0 || g.Count <= 0 {
		return -1
	}
	if y < g.Y || y >= g.Y+g.TileH || x < g.X {
		return -1
	}
	stride := g.TileW + g.Gap
	rel := x - g.X
	idx := rel / stride
	if idx >= g.Count || rel%stride >= g.TileW {
		return -1
	}
	return idx
}
