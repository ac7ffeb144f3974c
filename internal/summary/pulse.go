// Package summary computes the weekly pulse: per-day pending counts over the next seven days.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/llm"
	"github.com/javiermolinar/weekpulse/internal/locale"
	"github.com/javiermolinar/weekpulse/internal/task"
)

// DaySummary holds the pending task counts for one day.
type DaySummary struct {
	ProjectCount int
	AreaCount    int
}

// IsEmpty reports whether neither count is positive.
func (s DaySummary) IsEmpty() bool {
	return s.ProjectCount == 0 && s.AreaCount == 0
}

// Total returns the number of counted tasks.
func (s DaySummary) Total() int {
	return s.ProjectCount + s.AreaCount
}

// SummarizeDay counts the pending project and area tasks dated on key.
// Completed tasks and tasks of other kinds are excluded from both counts.
func SummarizeDay(key dateutil.DayKey, tasks []*task.Task) DaySummary {
	var s DaySummary
	for _, t := range tasks {
		if t == nil || !t.On(key) || !t.IsPending() {
			continue
		}
		switch t.Kind() {
		case task.KindProject:
			s.ProjectCount++
		case task.KindArea:
			s.AreaCount++
		}
	}
	return s
}

// CountActiveProjects returns the number of projects in progress.
func CountActiveProjects(projects []*task.Project) int {
	n := 0
	for _, p := range projects {
		if p != nil && p.IsActive() {
			n++
		}
	}
	return n
}

// DayTasks returns the tasks dated on key, open ones first.
func DayTasks(key dateutil.DayKey, tasks []*task.Task) []*task.Task {
	return task.NewDay(key, tasks).Tasks()
}

// DayPulse is one tile of the pulse.
type DayPulse struct {
	Key     dateutil.DayKey
	Summary DaySummary
}

// Pulse is the seven-day summary starting today.
type Pulse struct {
	Today          dateutil.DayKey
	Days           []DayPulse
	ActiveProjects int
	Insight        string
}

// BuildPulse computes the pulse for the week starting at now's day.
// It recomputes everything from its inputs on every call.
func BuildPulse(now time.Time, tasks []*task.Task, projects []*task.Project) *Pulse {
	keys := dateutil.Upcoming(now)
	p := &Pulse{
		Today:          dateutil.Today(now),
		Days:           make([]DayPulse, len(keys)),
		ActiveProjects: CountActiveProjects(projects),
	}
	for i, key := range keys {
		p.Days[i] = DayPulse{Key: key, Summary: SummarizeDay(key, tasks)}
	}
	return p
}

// Range returns the first and last day keys of the pulse.
func (p *Pulse) Range() (from, to dateutil.DayKey) {
	if len(p.Days) == 0 {
		return p.Today, p.Today
	}
	return p.Days[0].Key, p.Days[len(p.Days)-1].Key
}

// Index returns the position of key in the pulse, or -1.
func (p *Pulse) Index(key dateutil.DayKey) int {
	for i, d := range p.Days {
		if d.Key == key {
			return i
		}
	}
	return -1
}

// Text renders a plain-text digest of the pulse.
func (p *Pulse) Text(names *locale.Names, selected dateutil.DayKey) string {
	var sb strings.Builder
	from, to := p.Range()
	fmt.Fprintf(&sb, "7-Day Weekly Pulse (%s to %s) | Active Proj: %d\n", from, to, p.ActiveProjects)
	for _, d := range p.Days {
		marker := " "
		switch Variant(d.Key, selected, p.Today) {
		case TileSelected:
			marker = ">"
		case TileToday:
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %-4s %2d  %s\n", marker, names.ShortWeekday(d.Key.Weekday()), d.Key.DayOfMonth(), CountsLabel(d.Summary))
	}
	if p.Insight != "" {
		sb.WriteString("\n")
		sb.WriteString(p.Insight)
		sb.WriteString("\n")
	}
	return sb.String()
}

// CountsLabel renders the non-zero counts, or a placeholder dot when both are zero.
func CountsLabel(s DaySummary) string {
	if s.IsEmpty() {
		return Placeholder
	}
	parts := make([]string, 0, 2)
	if s.ProjectCount > 0 {
		parts = append(parts, fmt.Sprintf("PROJ %d", s.ProjectCount))
	}
	if s.AreaCount > 0 {
		parts = append(parts, fmt.Sprintf("AREAS %d", s.AreaCount))
	}
	return strings.Join(parts, "  ")
}

// Placeholder marks a day with nothing pending.
const Placeholder = "·"

// BuildPulseOptions configures the repository-backed pulse builder.
type BuildPulseOptions struct {
	Now            time.Time
	IncludeInsight bool
	Provider       string
	Model          string
	BaseURL        string
}

// BuildPulseFromRepo loads the pulse window and the project list, and optionally adds insight.
func BuildPulseFromRepo(ctx context.Context, repo task.Repository, opts BuildPulseOptions) (*Pulse, []*task.Task, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	keys := dateutil.Upcoming(now)
	tasks, err := repo.ListTasksByDateRange(ctx, keys[0], keys[len(keys)-1])
	if err != nil {
		return nil, nil, fmt.Errorf("fetching tasks: %w", err)
	}
	projects, err := repo.ListProjects(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching projects: %w", err)
	}

	pulse := BuildPulse(now, tasks, projects)

	if opts.IncludeInsight && len(tasks) > 0 {
		if opts.Model == "" {
			return nil, nil, errors.New("model is required for insight")
		}
		client, err := llm.NewClient(opts.Provider, opts.Model, opts.BaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("creating LLM client: %w", err)
		}
		insight, err := Insight(ctx, client, pulse, tasks, projects)
		if err != nil {
			return nil, nil, err
		}
		pulse.Insight = insight
	}

	return pulse, tasks, nil
}

// Insight asks the LLM for a short read of the upcoming week.
func Insight(ctx context.Context, client llm.Client, pulse *Pulse, tasks []*task.Task, projects []*task.Project) (string, error) {
	days := make([]llm.PulseDay, 0, len(pulse.Days))
	for _, d := range pulse.Days {
		day := task.NewDay(d.Key, tasks)
		titles := make([]string, 0, day.Len())
		for _, t := range day.Pending() {
			titles = append(titles, t.Title)
		}
		days = append(days, llm.PulseDay{
			Date:     d.Key.String(),
			Weekday:  d.Key.Weekday().String(),
			Projects: d.Summary.ProjectCount,
			Areas:    d.Summary.AreaCount,
			Pending:  titles,
		})
	}

	active := make([]string, 0, pulse.ActiveProjects)
	for _, p := range projects {
		if p.IsActive() {
			active = append(active, p.Title)
		}
	}

	result, err := llm.NewEvaluator(client).EvaluatePulse(ctx, days, active)
	if err != nil {
		return "", fmt.Errorf("evaluating pulse: %w", err)
	}
	return strings.TrimSpace(result), nil
}
