package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDay(t *testing.T) {
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	tasks := []*Task{
		{ID: "a", Title: "done first", Date: "2024-06-01", Completed: true, CreatedAt: base},
		{ID: "b", Title: "other day", Date: "2024-06-02", CreatedAt: base},
		{ID: "c", Title: "late", Date: "2024-06-01", CreatedAt: base.Add(2 * time.Hour)},
		nil,
		{ID: "d", Title: "early", Date: "2024-06-01", CreatedAt: base.Add(time.Hour)},
		{ID: "e", Title: "malformed", Date: "June 1", CreatedAt: base},
	}

	day := NewDay("2024-06-01", tasks)
	require.Equal(t, 3, day.Len())

	ids := make([]string, 0, day.Len())
	for _, tsk := range day.Tasks() {
		ids = append(ids, tsk.ID)
	}
	assert.Equal(t, []string{"d", "c", "a"}, ids)

	pending := day.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "d", pending[0].ID)

	assert.Equal(t, "d", day.At(0).ID)
	assert.Nil(t, day.At(3))
	assert.Nil(t, day.At(-1))
}

func TestDayTasksReturnsCopy(t *testing.T) {
	day := NewDay("2024-06-01", []*Task{{ID: "a", Date: "2024-06-01"}})
	got := day.Tasks()
	got[0] = nil
	assert.NotNil(t, day.At(0))
}
