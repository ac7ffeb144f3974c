package task

import (
	"cmp"
	"slices"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
)

// Day holds all tasks dated on a single day.
type Day struct {
	Key   dateutil.DayKey
	tasks []*Task // pending first, then by creation time
}

// NewDay collects the tasks dated on key from a task list.
// Tasks with other or malformed dates are ignored.
func NewDay(key dateutil.DayKey, all []*Task) *Day {
	d := &Day{Key: key, tasks: make([]*Task, 0)}
	for _, t := range all {
		if t != nil && t.On(key) {
			d.tasks = append(d.tasks, t)
		}
	}
	slices.SortStableFunc(d.tasks, func(a, b *Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	})
	return d
}

// Tasks returns a copy of the task slice.
func (d *Day) Tasks() []*Task {
	result := make([]*Task, len(d.tasks))
	copy(result, d.tasks)
	return result
}

// Pending returns only tasks that are not completed.
func (d *Day) Pending() []*Task {
	var result []*Task
	for _, t := range d.tasks {
		if t.IsPending() {
			result = append(result, t)
		}
	}
	return result
}

// Len returns the number of tasks in the day.
func (d *Day) Len() int {
	return len(d.tasks)
}

// At returns the task at index i, or nil when out of range.
func (d *Day) At(i int) *Task {
	if i < 0 || i >= len(d.tasks) {
		return nil
	}
	return d.tasks[i]
}
