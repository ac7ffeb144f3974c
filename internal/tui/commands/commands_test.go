package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/weekpulse/internal/config"
	"github.com/javiermolinar/weekpulse/internal/dateutil"
	"github.com/javiermolinar/weekpulse/internal/task"
)

type fakeRepo struct {
	task.Repository

	tasksByRange func(from, to dateutil.DayKey) ([]*task.Task, error)
	projects     []*task.Project
	projectsErr  error
	completed    map[string]bool
	setErr       error
}

func (f *fakeRepo) ListTasksByDateRange(_ context.Context, from, to dateutil.DayKey) ([]*task.Task, error) {
	if f.tasksByRange == nil {
		return nil, nil
	}
	return f.tasksByRange(from, to)
}

func (f *fakeRepo) ListProjects(context.Context) ([]*task.Project, error) {
	return f.projects, f.projectsErr
}

func (f *fakeRepo) SetTaskCompleted(_ context.Context, id string, completed bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.completed == nil {
		f.completed = map[string]bool{}
	}
	f.completed[id] = completed
	return nil
}

var now = time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

func TestLoadDataUsesPulseWindow(t *testing.T) {
	var gotFrom, gotTo dateutil.DayKey
	repo := &fakeRepo{
		tasksByRange: func(from, to dateutil.DayKey) ([]*task.Task, error) {
			gotFrom, gotTo = from, to
			return []*task.Task{{ID: "a", Date: from}}, nil
		},
		projects: []*task.Project{{ID: "p1", Status: task.StatusInProgress}},
	}

	msg := LoadData(repo, now)()
	loaded, ok := msg.(DataLoadedMsg)
	require.True(t, ok, "got %T", msg)

	assert.Equal(t, dateutil.DayKey("2024-06-01"), gotFrom)
	assert.Equal(t, dateutil.DayKey("2024-06-07"), gotTo)
	assert.Equal(t, dateutil.DayKey("2024-06-01"), loaded.Day)
	assert.Len(t, loaded.Tasks, 1)
	assert.Len(t, loaded.Projects, 1)
}

func TestLoadDataErrors(t *testing.T) {
	boom := errors.New("boom")

	msg := LoadData(&fakeRepo{tasksByRange: func(_, _ dateutil.DayKey) ([]*task.Task, error) {
		return nil, boom
	}}, now)()
	errMsg, ok := msg.(ErrMsg)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, boom)

	msg = LoadData(&fakeRepo{projectsErr: boom}, now)()
	errMsg, ok = msg.(ErrMsg)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, boom)
}

func TestToggleTask(t *testing.T) {
	repo := &fakeRepo{}
	msg := ToggleTask(repo, "a", true)()
	assert.Equal(t, TaskToggledMsg{ID: "a", Completed: true}, msg)
	assert.True(t, repo.completed["a"])

	repo.setErr = task.ErrTaskNotFound
	msg = ToggleTask(repo, "b", true)()
	errMsg, ok := msg.(ErrMsg)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, task.ErrTaskNotFound)
}

func TestInsightWithoutTasks(t *testing.T) {
	cfg := config.Default()
	msg := Insight(cfg, &fakeRepo{}, now)()
	assert.Equal(t, StatusMsgCmd{Msg: "Nothing planned this week"}, msg)
}

func TestCopy(t *testing.T) {
	var got string
	prev := WriteClipboard
	WriteClipboard = func(s string) error {
		got = s
		return nil
	}
	t.Cleanup(func() { WriteClipboard = prev })

	msg := Copy("pulse text")()
	assert.Equal(t, "pulse text", got)
	assert.Equal(t, StatusMsgCmd{Msg: "Copied pulse to clipboard"}, msg)

	WriteClipboard = func(string) error { return errors.New("no clipboard") }
	msg = Copy("x")()
	_, ok := msg.(ErrMsg)
	assert.True(t, ok)
}
