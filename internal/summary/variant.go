package summary

import "github.com/javiermolinar/weekpulse/internal/dateutil"

// TileVariant is the visual state of a pulse tile.
type TileVariant int

const (
	TileDefault TileVariant = iota
	TileToday
	TileSelected
)

// String returns the variant name.
func (v TileVariant) String() string {
	switch v {
	case TileSelected:
		return "selected"
	case TileToday:
		return "today"
	default:
		return "default"
	}
}

// Variant picks the tile state for key. Selection takes precedence over today;
// an empty selected key matches nothing.
func Variant(key, selected, today dateutil.DayKey) TileVariant {
	switch {
	case !selected.IsZero() && key == selected:
		return TileSelected
	case key == today:
		return TileToday
	default:
		return TileDefault
	}
}
