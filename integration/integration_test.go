package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/db"
	"github.com/javiermolinar/weekpulse/internal/exchange"
	"github.com/javiermolinar/weekpulse/internal/summary"
	"github.com/javiermolinar/weekpulse/internal/task"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// createTask is a helper to create and insert a task.
func createTask(t *testing.T, repo *db.SQLite, title string, date dateutil.DayKey, category task.Category, project task.ProjectRef) *task.Task {
	t.Helper()
	tsk, err := task.New(title, date, category, project)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if err := repo.CreateTask(context.Background(), tsk); err != nil {
		t.Fatalf("failed to insert task: %v", err)
	}
	return tsk
}

func createProject(t *testing.T, repo *db.SQLite, title string, status task.ProjectStatus) *task.Project {
	t.Helper()
	p, err := task.NewProject(title, status)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	if err := repo.CreateProject(context.Background(), p); err != nil {
		t.Fatalf("failed to insert project: %v", err)
	}
	return p
}

func buildPulse(t *testing.T, repo task.Repository, now time.Time) *summary.Pulse {
	t.Helper()
	p, _, err := summary.BuildPulseFromRepo(context.Background(), repo, summary.BuildPulseOptions{Now: now})
	if err != nil {
		t.Fatalf("failed to build pulse: %v", err)
	}
	return p
}

func TestFullWorkflow(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 15, 0, 0, 0, time.UTC) // Thursday

	book := createProject(t, repo, "Book", task.StatusInProgress)
	createProject(t, repo, "Garden", task.StatusOnHold)

	draft := createTask(t, repo, "Draft chapter", "2025-05-01", task.CategoryNone, task.LinkTo(book.ID))
	createTask(t, repo, "Edit chapter", "2025-05-01", task.CategoryProjects, task.LinkTo(book.ID))
	gym := createTask(t, repo, "Gym", "2025-05-03", task.CategoryAreas, task.NoProject)
	createTask(t, repo, "Read paper", "2025-05-03", task.CategoryResources, task.NoProject)
	createTask(t, repo, "Yesterday", "2025-04-30", task.CategoryAreas, task.NoProject)
	createTask(t, repo, "Next week", "2025-05-08", task.CategoryAreas, task.NoProject)

	// 1. Initial pulse
	p := buildPulse(t, repo, now)
	if len(p.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(p.Days))
	}
	if p.ActiveProjects != 1 {
		t.Errorf("active projects: got %d, want 1", p.ActiveProjects)
	}
	if got := p.Days[0].Summary; got.ProjectCount != 2 || got.AreaCount != 0 {
		t.Errorf("today: got %+v, want 2 projects", got)
	}
	if got := p.Days[2].Summary; got.ProjectCount != 0 || got.AreaCount != 1 {
		t.Errorf("saturday: got %+v, want 1 area (resources do not count)", got)
	}
	for _, i := range []int{1, 3, 4, 5, 6} {
		if !p.Days[i].Summary.IsEmpty() {
			t.Errorf("day %d: expected empty, got %+v", i, p.Days[i].Summary)
		}
	}

	// 2. Completing tasks drops them from the counts
	if err := repo.SetTaskCompleted(ctx, draft.ID, true); err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}
	if err := repo.SetTaskCompleted(ctx, gym.ID, true); err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}
	p = buildPulse(t, repo, now)
	if got := p.Days[0].Summary.ProjectCount; got != 1 {
		t.Errorf("today projects after completion: got %d, want 1", got)
	}
	if !p.Days[2].Summary.IsEmpty() {
		t.Errorf("saturday after completion: got %+v, want empty", p.Days[2].Summary)
	}

	// 3. Project status drives the active count
	if err := repo.SetProjectStatus(ctx, book.ID, task.StatusCompleted); err != nil {
		t.Fatalf("failed to set status: %v", err)
	}
	p = buildPulse(t, repo, now)
	if p.ActiveProjects != 0 {
		t.Errorf("active projects after completion: got %d, want 0", p.ActiveProjects)
	}

	// 4. The next day the window slides
	p = buildPulse(t, repo, now.Add(24*time.Hour))
	from, to := p.Range()
	if from != "2025-05-02" || to != "2025-05-08" {
		t.Errorf("range: got %s..%s", from, to)
	}
	if got := p.Days[6].Summary.AreaCount; got != 1 {
		t.Errorf("last day areas: got %d, want 1", got)
	}
}

func TestPulseFollowsLocalDay(t *testing.T) {
	repo := openRepo(t)
	createTask(t, repo, "Late call", "2025-05-02", task.CategoryAreas, task.NoProject)

	tokyo := time.FixedZone("JST", 9*60*60)
	// 2025-05-01 20:00 UTC is already 2025-05-02 in Tokyo.
	instant := time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)

	utc := buildPulse(t, repo, instant)
	if utc.Today != "2025-05-01" {
		t.Fatalf("utc today: got %s", utc.Today)
	}
	if utc.Days[1].Summary.AreaCount != 1 {
		t.Errorf("utc tomorrow: got %+v, want 1 area", utc.Days[1].Summary)
	}

	jst := buildPulse(t, repo, instant.In(tokyo))
	if jst.Today != "2025-05-02" {
		t.Fatalf("tokyo today: got %s", jst.Today)
	}
	if jst.Days[0].Summary.AreaCount != 1 {
		t.Errorf("tokyo today: got %+v, want 1 area", jst.Days[0].Summary)
	}
}

func TestExportImportPreservesPulse(t *testing.T) {
	src := openRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	book := createProject(t, src, "Book", task.StatusInProgress)
	createTask(t, src, "Draft", "2025-05-02", task.CategoryNone, task.LinkTo(book.ID))
	done := createTask(t, src, "Gym", "2025-05-02", task.CategoryAreas, task.NoProject)
	createTask(t, src, "Walk", "2025-05-04", task.CategoryAreas, task.NoProject)
	if err := src.SetTaskCompleted(ctx, done.ID, true); err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}

	var buf bytes.Buffer
	if err := exchange.Export(ctx, src, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dst := openRepo(t)
	tasks, projects, err := exchange.Import(ctx, dst, &buf)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if tasks != 3 || projects != 1 {
		t.Errorf("imported %d tasks and %d projects, want 3 and 1", tasks, projects)
	}

	want := buildPulse(t, src, now)
	got := buildPulse(t, dst, now)
	for i := range want.Days {
		if want.Days[i] != got.Days[i] {
			t.Errorf("day %d: got %+v, want %+v", i, got.Days[i], want.Days[i])
		}
	}
	if got.ActiveProjects != want.ActiveProjects {
		t.Errorf("active projects: got %d, want %d", got.ActiveProjects, want.ActiveProjects)
	}
}
