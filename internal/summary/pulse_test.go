package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/llm"
	"github.com/javiermolinar/weekpulse/internal/locale"
	"github.com/javiermolinar/weekpulse/internal/task"
)

// Saturday.
var testNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

func mkTask(title string, date dateutil.DayKey, cat task.Category, project task.ProjectRef, completed bool) *task.Task {
	return &task.Task{
		ID:        title,
		Title:     title,
		Date:      date,
		Category:  cat,
		Project:   project,
		Completed: completed,
		CreatedAt: testNow,
	}
}

func TestSummarizeDay(t *testing.T) {
	day := dateutil.DayKey("2024-06-01")
	tasks := []*task.Task{
		mkTask("linked", day, task.CategoryResources, task.LinkTo("p1"), false),
		mkTask("area", day, task.CategoryAreas, task.NoProject, false),
		mkTask("done area", day, task.CategoryAreas, task.NoProject, true),
		mkTask("done linked", day, task.CategoryProjects, task.LinkTo("p1"), true),
		mkTask("resource", day, task.CategoryResources, task.NoProject, false),
		mkTask("uncategorized", day, task.CategoryNone, task.NoProject, false),
		mkTask("other day", "2024-06-02", task.CategoryAreas, task.NoProject, false),
		nil,
	}

	got := SummarizeDay(day, tasks)
	assert.Equal(t, DaySummary{ProjectCount: 1, AreaCount: 1}, got)
	assert.Equal(t, 2, got.Total())
	assert.False(t, got.IsEmpty())
}

func TestSummarizeDayLinkedAreaCountsAsProject(t *testing.T) {
	day := dateutil.DayKey("2024-06-01")
	tasks := []*task.Task{
		mkTask("linked area", day, task.CategoryAreas, task.LinkTo("p1"), false),
	}
	assert.Equal(t, DaySummary{ProjectCount: 1}, SummarizeDay(day, tasks))
}

func TestSummarizeDayEmpty(t *testing.T) {
	got := SummarizeDay("2024-06-01", nil)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, Placeholder, CountsLabel(got))
}

func TestCountActiveProjects(t *testing.T) {
	projects := []*task.Project{
		{ID: "a", Title: "A", Status: task.StatusInProgress},
		{ID: "b", Title: "B", Status: task.StatusOnHold},
		{ID: "c", Title: "C", Status: task.StatusInProgress},
		{ID: "d", Title: "D", Status: task.StatusCompleted},
		nil,
	}
	assert.Equal(t, 2, CountActiveProjects(projects))
	assert.Equal(t, 0, CountActiveProjects(nil))
}

func TestBuildPulse(t *testing.T) {
	tasks := []*task.Task{
		mkTask("today area", "2024-06-01", task.CategoryAreas, task.NoProject, false),
		mkTask("tue linked", "2024-06-04", task.CategoryNone, task.LinkTo("p1"), false),
		mkTask("tue area", "2024-06-04", task.CategoryAreas, task.NoProject, false),
		mkTask("past", "2024-05-31", task.CategoryAreas, task.NoProject, false),
		mkTask("beyond", "2024-06-08", task.CategoryAreas, task.NoProject, false),
	}
	projects := []*task.Project{{ID: "p1", Status: task.StatusInProgress}}

	p := BuildPulse(testNow, tasks, projects)

	require.Len(t, p.Days, dateutil.PulseDays)
	assert.Equal(t, dateutil.DayKey("2024-06-01"), p.Today)
	assert.Equal(t, dateutil.DayKey("2024-06-01"), p.Days[0].Key)
	assert.Equal(t, dateutil.DayKey("2024-06-07"), p.Days[6].Key)
	assert.Equal(t, 1, p.ActiveProjects)

	assert.Equal(t, DaySummary{AreaCount: 1}, p.Days[0].Summary)
	assert.Equal(t, DaySummary{ProjectCount: 1, AreaCount: 1}, p.Days[3].Summary)
	for _, i := range []int{1, 2, 4, 5, 6} {
		assert.True(t, p.Days[i].Summary.IsEmpty(), "day %d", i)
	}

	from, to := p.Range()
	assert.Equal(t, dateutil.DayKey("2024-06-01"), from)
	assert.Equal(t, dateutil.DayKey("2024-06-07"), to)
	assert.Equal(t, 3, p.Index("2024-06-04"))
	assert.Equal(t, -1, p.Index("2024-06-08"))
}

func TestBuildPulseIsIdempotent(t *testing.T) {
	tasks := []*task.Task{
		mkTask("a", "2024-06-02", task.CategoryAreas, task.NoProject, false),
	}
	first := BuildPulse(testNow, tasks, nil)
	second := BuildPulse(testNow, tasks, nil)
	assert.Equal(t, first, second)
}

func TestBuildPulseCountsNeverExceedPending(t *testing.T) {
	var tasks []*task.Task
	for i, key := range dateutil.Upcoming(testNow) {
		for j := 0; j <= i; j++ {
			cat := task.CategoryAreas
			if j%3 == 0 {
				cat = task.CategoryResources
			}
			tasks = append(tasks, mkTask("t", key, cat, task.NoProject, j%2 == 1))
		}
	}

	p := BuildPulse(testNow, tasks, nil)
	for _, d := range p.Days {
		pending := 0
		for _, tk := range tasks {
			if tk.On(d.Key) && tk.IsPending() {
				pending++
			}
		}
		assert.LessOrEqual(t, d.Summary.Total(), pending, d.Key.String())
	}
}

func TestVariant(t *testing.T) {
	today := dateutil.DayKey("2024-06-01")

	tests := []struct {
		name     string
		key      dateutil.DayKey
		selected dateutil.DayKey
		want     TileVariant
	}{
		{"selected today", today, today, TileSelected},
		{"today without selection", today, "", TileToday},
		{"today while another is selected", today, "2024-06-03", TileToday},
		{"selected other day", "2024-06-03", "2024-06-03", TileSelected},
		{"plain day", "2024-06-02", "2024-06-03", TileDefault},
		{"plain day without selection", "2024-06-02", "", TileDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Variant(tt.key, tt.selected, today))
		})
	}
}

func TestTileVariantString(t *testing.T) {
	assert.Equal(t, "selected", TileSelected.String())
	assert.Equal(t, "today", TileToday.String())
	assert.Equal(t, "default", TileDefault.String())
}

func TestCountsLabel(t *testing.T) {
	assert.Equal(t, "PROJ 2  AREAS 1", CountsLabel(DaySummary{ProjectCount: 2, AreaCount: 1}))
	assert.Equal(t, "PROJ 3", CountsLabel(DaySummary{ProjectCount: 3}))
	assert.Equal(t, "AREAS 4", CountsLabel(DaySummary{AreaCount: 4}))
	assert.Equal(t, "·", CountsLabel(DaySummary{}))
}

func TestPulseText(t *testing.T) {
	tasks := []*task.Task{
		mkTask("area", "2024-06-03", task.CategoryAreas, task.NoProject, false),
	}
	p := BuildPulse(testNow, tasks, nil)
	p.Insight = "LOAD: light"

	out := p.Text(locale.New("en"), "2024-06-03")
	lines := strings.Split(out, "\n")

	assert.Equal(t, "7-Day Weekly Pulse (2024-06-01 to 2024-06-07) | Active Proj: 0", lines[0])
	assert.Equal(t, "* Sat   1  ·", lines[1])
	assert.Equal(t, "> Mon   3  AREAS 1", lines[3])
	assert.Contains(t, out, "LOAD: light")
}

func TestPulseTextLocalized(t *testing.T) {
	p := BuildPulse(testNow, nil, nil)
	out := p.Text(locale.New("ko"), "")
	assert.Contains(t, out, "토")
}

type fakeRepo struct {
	task.Repository
	tasks    []*task.Task
	projects []*task.Project
	err      error
	from, to dateutil.DayKey
}

func (r *fakeRepo) ListTasksByDateRange(_ context.Context, from, to dateutil.DayKey) ([]*task.Task, error) {
	r.from, r.to = from, to
	if r.err != nil {
		return nil, r.err
	}
	var out []*task.Task
	for _, t := range r.tasks {
		if t.Date >= from && t.Date <= to {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListProjects(context.Context) ([]*task.Project, error) {
	return r.projects, nil
}

func TestBuildPulseFromRepo(t *testing.T) {
	repo := &fakeRepo{
		tasks: []*task.Task{
			mkTask("a", "2024-06-02", task.CategoryAreas, task.NoProject, false),
			mkTask("old", "2024-05-20", task.CategoryAreas, task.NoProject, false),
		},
		projects: []*task.Project{{ID: "p", Status: task.StatusInProgress}},
	}

	p, tasks, err := BuildPulseFromRepo(context.Background(), repo, BuildPulseOptions{Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, dateutil.DayKey("2024-06-01"), repo.from)
	assert.Equal(t, dateutil.DayKey("2024-06-07"), repo.to)
	assert.Len(t, tasks, 1)
	assert.Equal(t, 1, p.ActiveProjects)
	assert.Equal(t, 1, p.Days[1].Summary.AreaCount)
	assert.Empty(t, p.Insight)
}

func TestBuildPulseFromRepoError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("boom")}
	_, _, err := BuildPulseFromRepo(context.Background(), repo, BuildPulseOptions{Now: testNow})
	assert.ErrorContains(t, err, "fetching tasks")
}

func TestBuildPulseFromRepoInsightNeedsModel(t *testing.T) {
	repo := &fakeRepo{tasks: []*task.Task{
		mkTask("a", "2024-06-02", task.CategoryAreas, task.NoProject, false),
	}}
	_, _, err := BuildPulseFromRepo(context.Background(), repo, BuildPulseOptions{Now: testNow, IncludeInsight: true})
	assert.ErrorContains(t, err, "model is required")
}

type stubClient struct {
	prompt string
}

func (c *stubClient) Chat(_ context.Context, messages []llm.Message) (string, error) {
	c.prompt = messages[len(messages)-1].Content
	return "  LOAD: busy Tuesday  \n", nil
}

func TestInsight(t *testing.T) {
	tasks := []*task.Task{
		mkTask("Ship release", "2024-06-04", task.CategoryNone, task.LinkTo("p1"), false),
		mkTask("Finished", "2024-06-04", task.CategoryAreas, task.NoProject, true),
	}
	projects := []*task.Project{
		{ID: "p1", Title: "Launch", Status: task.StatusInProgress},
		{ID: "p2", Title: "Paused", Status: task.StatusOnHold},
	}
	p := BuildPulse(testNow, tasks, projects)

	client := &stubClient{}
	got, err := Insight(context.Background(), client, p, tasks, projects)
	require.NoError(t, err)
	assert.Equal(t, "LOAD: busy Tuesday", got)
	assert.Contains(t, client.prompt, "Active projects (1): Launch")
	assert.Contains(t, client.prompt, "Tuesday 2024-06-04  PROJ 1  AREAS 0")
	assert.Contains(t, client.prompt, "  - Ship release")
	assert.NotContains(t, client.prompt, "Finished")
}

func TestDayTasks(t *testing.T) {
	done := mkTask("done", "2024-06-02", task.CategoryAreas, task.NoProject, true)
	open := mkTask("open", "2024-06-02", task.CategoryAreas, task.NoProject, false)
	other := mkTask("other", "2024-06-03", task.CategoryAreas, task.NoProject, false)

	got := DayTasks("2024-06-02", []*task.Task{done, other, open})
	require.Len(t, got, 2)
	assert.Equal(t, "open", got[0].Title)
	assert.Equal(t, "done", got[1].Title)
}
