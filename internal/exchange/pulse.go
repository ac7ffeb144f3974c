package exchange

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/locale"
	"github.com/javiermolinar/weekpulse/internal/summary"
)

// PulseDocument is the JSON form of a weekly pulse.
type PulseDocument struct {
	Today          string           `json:"today"`
	Selected       string           `json:"selected,omitempty"`
	ActiveProjects int              `json:"activeProjects"`
	Days           []PulseDayRecord `json:"days"`
	Insight        string           `json:"insight,omitempty"`
}

// PulseDayRecord is one tile of the pulse.
type PulseDayRecord struct {
	Date         string `json:"date"`
	Weekday      string `json:"weekday"`
	Day          int    `json:"day"`
	ProjectCount int    `json:"projectCount"`
	AreaCount    int    `json:"areaCount"`
	Variant      string `json:"variant"`
}

// NewPulseDocument converts a pulse for JSON output.
func NewPulseDocument(p *summary.Pulse, names *locale.Names, selected dateutil.DayKey) *PulseDocument {
	doc := &PulseDocument{
		Today:          p.Today.String(),
		Selected:       selected.String(),
		ActiveProjects: p.ActiveProjects,
		Days:           make([]PulseDayRecord, 0, len(p.Days)),
		Insight:        p.Insight,
	}
	for _, d := range p.Days {
		doc.Days = append(doc.Days, PulseDayRecord{
			Date:         d.Key.String(),
			Weekday:      names.ShortWeekday(d.Key.Weekday()),
			Day:          d.Key.DayOfMonth(),
			ProjectCount: d.Summary.ProjectCount,
			AreaCount:    d.Summary.AreaCount,
			Variant:      summary.Variant(d.Key, selected, p.Today).String(),
		})
	}
	return doc
}

// EncodePulse writes the pulse as indented JSON.
func EncodePulse(w io.Writer, doc *PulseDocument) error {
	enc := sonic.ConfigStd.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding pulse: %w", err)
	}
	return nil
}
