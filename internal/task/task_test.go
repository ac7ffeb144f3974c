package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
)

func TestNew(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		tsk, err := New("  Write tests ", "2025-01-15", CategoryAreas, NoProject)
		require.NoError(t, err)
		assert.Equal(t, "Write tests", tsk.Title)
		assert.Equal(t, dateutil.DayKey("2025-01-15"), tsk.Date)
		assert.Equal(t, CategoryAreas, tsk.Category)
		assert.NotEmpty(t, tsk.ID)
		assert.False(t, tsk.Completed)
		assert.False(t, tsk.CreatedAt.IsZero())
	})

	t.Run("errors", func(t *testing.T) {
		_, err := New(" ", "2025-01-15", CategoryNone, NoProject)
		assert.ErrorIs(t, err, ErrEmptyTitle)

		_, err = New("x", "15/01/2025", CategoryNone, NoProject)
		assert.ErrorIs(t, err, dateutil.ErrInvalidDateFormat)

		_, err = New("x", "2025-01-15", Category("Chores"), NoProject)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})
}

func TestKind(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		project  ProjectRef
		want     Kind
	}{
		{name: "project reference wins over category", category: CategoryAreas, project: LinkTo("p1"), want: KindProject},
		{name: "project without category", project: LinkTo("p1"), want: KindProject},
		{name: "area", category: CategoryAreas, want: KindArea},
		{name: "resource", category: CategoryResources, want: KindOther},
		{name: "uncategorized", want: KindOther},
		{name: "blank reference is absent", category: CategoryAreas, project: LinkTo("  "), want: KindArea},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := &Task{Category: tt.category, Project: tt.project}
			assert.Equal(t, tt.want, tsk.Kind())
		})
	}
}

func TestProjectRef(t *testing.T) {
	id, ok := NoProject.ID()
	assert.False(t, ok)
	assert.Empty(t, id)

	id, ok = LinkTo("p1").ID()
	assert.True(t, ok)
	assert.Equal(t, "p1", id)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("areas")
	require.NoError(t, err)
	assert.Equal(t, CategoryAreas, c)

	c, err = ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryNone, c)

	_, err = ParseCategory("inbox")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"In Progress", "in-progress", "IN_PROGRESS"} {
		st, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, StatusInProgress, st)
	}
	_, err := ParseStatus("done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewProject(t *testing.T) {
	p, err := NewProject("Launch site", "")
	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, p.Status)
	assert.False(t, p.IsActive())

	p, err = NewProject("Launch site", StatusInProgress)
	require.NoError(t, err)
	assert.True(t, p.IsActive())

	_, err = NewProject("", StatusInProgress)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = NewProject("x", ProjectStatus("Paused"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
