package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart_AlwaysMonday(t *testing.T) {
	// 2025-06-02 is a Monday
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		got := WeekStart(d)
		assert.Equal(t, monday, got, "WeekStart(%s)", d.Format("2006-01-02 Mon"))
	}
}

func TestWeekStart_DropsTimeOfDay(t *testing.T) {
	d := time.Date(2025, 6, 4, 15, 42, 7, 0, time.UTC) // Wednesday afternoon
	got := WeekStart(d)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestWeekStart_YearBoundary(t *testing.T) {
	// 2026-01-01 is a Thursday; its week starts Monday 2025-12-29
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), WeekStart(d))
}

func TestWeekEnd(t *testing.T) {
	d := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), WeekEnd(d))
}

func TestWeekDates(t *testing.T) {
	d := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC) // Friday
	dates := WeekDates(d)

	assert.Len(t, dates, 7)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), dates[6])
	for i, date := range dates {
		assert.Equal(t, time.Weekday((1+i)%7), date.Weekday())
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC)
	c := time.Date(2025, 6, 3, 0, 1, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, c))
}
