package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecurrencePattern_DateAt_FirstInstanceIsAlwaysStartDate(t *testing.T) {
	patterns := []RecurrencePattern{
		RecurrenceNone,
		RecurrenceDaily,
		RecurrenceEveryThreeDay,
		RecurrenceWeekly,
		RecurrenceBiweekly,
		RecurrenceMonthly,
		RecurrencePattern("desconocida"),
	}

	start := date(2025, time.March, 10)
	for _, pattern := range patterns {
		got, ok := pattern.DateAt(start, 0)
		require.True(t, ok, "pattern %s", pattern)
		assert.Equal(t, start, got, "pattern %s", pattern)
	}
}

func TestRecurrencePattern_DateAt_Intervals(t *testing.T) {
	start := date(2025, time.March, 10)

	tests := []struct {
		name    string
		pattern RecurrencePattern
		i       int
		want    time.Time
	}{
		{"daily i=1", RecurrenceDaily, 1, date(2025, time.March, 11)},
		{"daily i=5", RecurrenceDaily, 5, date(2025, time.March, 15)},
		{"every three days i=2", RecurrenceEveryThreeDay, 2, date(2025, time.March, 16)},
		{"weekly i=1", RecurrenceWeekly, 1, date(2025, time.March, 17)},
		{"weekly i=3", RecurrenceWeekly, 3, date(2025, time.March, 31)},
		{"biweekly i=1", RecurrenceBiweekly, 1, date(2025, time.March, 24)},
		{"monthly i=1", RecurrenceMonthly, 1, date(2025, time.April, 10)},
		{"monthly i=12", RecurrenceMonthly, 12, date(2026, time.March, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.pattern.DateAt(start, tt.i)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecurrencePattern_DateAt_MonthlyNormalizesShortMonths(t *testing.T) {
	// Jan 31 + 1 month lands on Mar 2/3 via time.AddDate normalization.
	got, ok := RecurrenceMonthly.DateAt(date(2025, time.January, 31), 1)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.March, 3), got)
}

func TestRecurrencePattern_DateAt_NoneYieldsNothingPastFirst(t *testing.T) {
	_, ok := RecurrenceNone.DateAt(date(2025, time.March, 10), 1)
	assert.False(t, ok)
}

func TestRecurrencePattern_Expand(t *testing.T) {
	start := date(2025, time.March, 10)

	t.Run("weekly count 4", func(t *testing.T) {
		dates := RecurrenceWeekly.Expand(start, 4)
		require.Len(t, dates, 4)
		for i := 1; i < len(dates); i++ {
			assert.Equal(t, 7*24*time.Hour, dates[i].Sub(dates[i-1]))
		}
	})

	t.Run("none ignores count", func(t *testing.T) {
		dates := RecurrenceNone.Expand(start, 10)
		require.Len(t, dates, 1)
		assert.Equal(t, start, dates[0])
	})

	t.Run("count below one clamps to one", func(t *testing.T) {
		dates := RecurrenceDaily.Expand(start, 0)
		require.Len(t, dates, 1)
		assert.Equal(t, start, dates[0])
	})
}
