package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDays(t *testing.T) {
	t.Run("seven consecutive days starting today", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
		keys := Upcoming(now)

		require.Len(t, keys, PulseDays)
		assert.Equal(t, DayKey("2024-06-01"), keys[0])
		for i := 1; i < len(keys); i++ {
			assert.Equal(t, keys[i-1].AddDays(1), keys[i], "key %d", i)
			assert.Less(t, string(keys[i-1]), string(keys[i]))
		}
		assert.Equal(t, DayKey("2024-06-07"), keys[6])
	})

	t.Run("crosses month and year boundaries", func(t *testing.T) {
		now := time.Date(2024, 12, 29, 23, 59, 0, 0, time.UTC)
		keys := Upcoming(now)
		assert.Equal(t, []DayKey{
			"2024-12-29", "2024-12-30", "2024-12-31",
			"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04",
		}, keys)
	})

	t.Run("leap day", func(t *testing.T) {
		keys := NextDays(time.Date(2024, 2, 28, 8, 0, 0, 0, time.UTC), 3)
		assert.Equal(t, []DayKey{"2024-02-28", "2024-02-29", "2024-03-01"}, keys)
	})

	t.Run("dst transition does not skip a day", func(t *testing.T) {
		loc, err := time.LoadLocation("Europe/Madrid")
		if err != nil {
			t.Skip("tzdata not available")
		}
		now := time.Date(2025, 3, 29, 23, 30, 0, 0, loc)
		keys := Upcoming(now)
		assert.Equal(t, DayKey("2025-03-29"), keys[0])
		assert.Equal(t, DayKey("2025-03-30"), keys[1])
		assert.Equal(t, DayKey("2025-03-31"), keys[2])
	})

	t.Run("non-positive count", func(t *testing.T) {
		assert.Nil(t, NextDays(time.Now(), 0))
	})
}

func TestDayKey(t *testing.T) {
	k, err := ParseKey(" 2024-06-01 ")
	require.NoError(t, err)
	assert.Equal(t, DayKey("2024-06-01"), k)
	assert.Equal(t, 1, k.DayOfMonth())
	assert.Equal(t, time.Saturday, k.Weekday())
	assert.True(t, k.Valid())
	assert.False(t, k.IsZero())

	_, err = ParseKey("06/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	bad := DayKey("not-a-date")
	assert.False(t, bad.Valid())
	assert.Equal(t, 0, bad.DayOfMonth())
	assert.Equal(t, bad, bad.AddDays(3))

	midnight, err := k.Time(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), midnight)

	assert.True(t, DayKey("").IsZero())
}

func TestParseRelativeDate(t *testing.T) {
	// Wednesday
	ref := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  DayKey
		err   error
	}{
		{input: "", want: "2025-01-15"},
		{input: "Today", want: "2025-01-15"},
		{input: "tomorrow", want: "2025-01-16"},
		{input: "next-week", want: "2025-01-22"},
		{input: "friday", want: "2025-01-17"},
		{input: "wednesday", want: "2025-01-22"},
		{input: "next-monday", want: "2025-01-20"},
		{input: "2025-02-01", want: "2025-02-01"},
		{input: "2025-01-01", err: ErrDateInPast},
		{input: "next-someday", err: ErrInvalidDateFormat},
		{input: "soon", err: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, ref)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
