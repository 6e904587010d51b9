package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebasVLANQ/calendar/internal/model"
)

func ev(id uint64, start, end time.Time) model.Event {
	return model.Event{ID: id, Title: "event", StartTime: start, EndTime: end}
}

func TestComputeGridAlwaysThirtyFiveDays(t *testing.T) {
	months := []Month{
		{2026, time.June},     // June 1 2026 is a Monday
		{2026, time.February}, // 28-day month
		{2026, time.August},   // August 1 2026 is a Saturday
		{2024, time.February}, // leap year
	}
	for _, m := range months {
		grid := ComputeGrid(m, nil)
		assert.Len(t, grid.Days, GridDays, "month %v", m)
	}
}

func TestComputeGridStartsOnSundayBeforeFirst(t *testing.T) {
	// June 1 2026 is a Monday, so the grid starts Sunday May 31.
	grid := ComputeGrid(Month{2026, time.June}, nil)
	require.Len(t, grid.Days, GridDays)
	assert.Equal(t, "2026-05-31", grid.Days[0].Format(DayKeyFormat))
	assert.Equal(t, time.Sunday, grid.Days[0].Weekday())
	// Days are consecutive.
	for i := 1; i < len(grid.Days); i++ {
		assert.Equal(t, grid.Days[i-1].AddDate(0, 0, 1), grid.Days[i])
	}
}

func TestComputeGridFirstIsSunday(t *testing.T) {
	// March 1 2026 is a Sunday; the grid starts on the 1st itself.
	grid := ComputeGrid(Month{2026, time.March}, nil)
	assert.Equal(t, "2026-03-01", grid.Days[0].Format(DayKeyFormat))
}

func TestComputeGridBucketsEventOnEverySpannedDay(t *testing.T) {
	start := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 12, 17, 0, 0, 0, time.UTC)
	grid := ComputeGrid(Month{2026, time.June}, []model.Event{ev(1, start, end)})

	for _, day := range []string{"2026-06-10", "2026-06-11", "2026-06-12"} {
		require.Len(t, grid.EventsByDay[day], 1, "day %s", day)
		assert.Equal(t, uint64(1), grid.EventsByDay[day][0].ID)
	}
	assert.Empty(t, grid.EventsByDay["2026-06-09"])
	assert.Empty(t, grid.EventsByDay["2026-06-13"])
}

func TestComputeGridOnlyStartMonthEventsConsidered(t *testing.T) {
	// An event starting June 29 and ending July 2 shows on its July days
	// in the June view (those cells exist in June's grid) but does not
	// appear at all in the July view, because only events starting in
	// the displayed month are considered.
	start := time.Date(2026, time.June, 29, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.July, 2, 16, 0, 0, 0, time.UTC)
	events := []model.Event{ev(7, start, end)}

	june := ComputeGrid(Month{2026, time.June}, events)
	for _, day := range []string{"2026-06-29", "2026-06-30", "2026-07-01", "2026-07-02"} {
		assert.Len(t, june.EventsByDay[day], 1, "june view day %s", day)
	}

	july := ComputeGrid(Month{2026, time.July}, events)
	assert.Empty(t, july.EventsByDay, "event starting in June is invisible in the July view")
}

func TestComputeGridMidnightBoundaries(t *testing.T) {
	// An event ending at exactly midnight of the next day still counts
	// on that day: membership compares against end-of-day of the end
	// date, and noon of the end date is before it.
	start := time.Date(2026, time.June, 5, 23, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 6, 0, 0, 0, 0, time.UTC)
	grid := ComputeGrid(Month{2026, time.June}, []model.Event{ev(3, start, end)})

	assert.Len(t, grid.EventsByDay["2026-06-05"], 1)
	assert.Len(t, grid.EventsByDay["2026-06-06"], 1)
	assert.Empty(t, grid.EventsByDay["2026-06-07"])
}

func TestComputeGridPreservesEventOrderWithinDay(t *testing.T) {
	day := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	events := []model.Event{
		ev(1, day.Add(9*time.Hour), day.Add(10*time.Hour)),
		ev(2, day.Add(14*time.Hour), day.Add(15*time.Hour)),
	}
	grid := ComputeGrid(Month{2026, time.June}, events)
	require.Len(t, grid.EventsByDay["2026-06-15"], 2)
	assert.Equal(t, uint64(1), grid.EventsByDay["2026-06-15"][0].ID)
	assert.Equal(t, uint64(2), grid.EventsByDay["2026-06-15"][1].ID)
}

func TestMonthNavigation(t *testing.T) {
	m := Month{2026, time.January}
	assert.Equal(t, Month{2025, time.December}, m.Prev())
	assert.Equal(t, Month{2026, time.February}, m.Next())

	dec := Month{2026, time.December}
	assert.Equal(t, Month{2027, time.January}, dec.Next())

	// A full year of Next from January lands back on January.
	cur := m
	for i := 0; i < 12; i++ {
		cur = cur.Next()
	}
	assert.Equal(t, Month{2027, time.January}, cur)
}

func TestEventOnDay(t *testing.T) {
	e := ev(1,
		time.Date(2026, time.June, 10, 22, 30, 0, 0, time.UTC),
		time.Date(2026, time.June, 11, 1, 0, 0, 0, time.UTC))

	noon10 := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)
	noon11 := time.Date(2026, time.June, 11, 12, 0, 0, 0, time.UTC)
	noon12 := time.Date(2026, time.June, 12, 12, 0, 0, 0, time.UTC)

	assert.True(t, EventOnDay(e, noon10))
	assert.True(t, EventOnDay(e, noon11))
	assert.False(t, EventOnDay(e, noon12))
}
