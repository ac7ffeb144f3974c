// Package locale resolves a configured language tag to short weekday names.
package locale

import (
	"time"

	"golang.org/x/text/language"
)

// DefaultTag is used when no locale is configured.
const DefaultTag = "en"

var supported = []language.Tag{
	language.English, // first entry is the matcher fallback
	language.Korean,
	language.Spanish,
	language.French,
	language.German,
	language.Japanese,
}

// Sunday-first, matching time.Weekday.
var shortWeekdays = map[language.Tag][7]string{
	language.English:  {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	language.Korean:   {"일", "월", "화", "수", "목", "금", "토"},
	language.Spanish:  {"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	language.French:   {"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
	language.German:   {"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."},
	language.Japanese: {"日", "月", "火", "水", "木", "金", "土"},
}

var matcher = language.NewMatcher(supported)

// Names provides localized weekday names for one resolved language.
type Names struct {
	tag  language.Tag
	week [7]string
}

// New resolves tag (e.g. "ko-KR") against the supported languages.
// Unknown or malformed tags fall back to English.
func New(tag string) *Names {
	if tag == "" {
		tag = DefaultTag
	}
	_, idx, _ := matcher.Match(language.Make(tag))
	base := supported[idx]
	return &Names{tag: base, week: shortWeekdays[base]}
}

// Valid reports whether tag parses as a BCP 47 language tag.
func Valid(tag string) bool {
	_, err := language.Parse(tag)
	return err == nil
}

// Tag returns the resolved language.
func (n *Names) Tag() language.Tag {
	return n.tag
}

// ShortWeekday returns the abbreviated weekday name.
func (n *Names) ShortWeekday(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return n.week[d]
}

// Supported returns the base tags weekpulse has names for.
func Supported() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		out[i] = t.String()
	}
	return out
}
