// Package calendar implements the month grid shown by the booking UI:
// a fixed 35-cell layout of consecutive days with events bucketed onto
// every day they touch.  Everything here is pure; callers pass the
// event collection they already hold and no storage access happens.
package calendar

import (
	"time"

	"github.com/SebasVLANQ/calendar/internal/model"
)

// GridDays is the number of cells in the month grid.  The layout is a
// fixed 5 rows of 7 days and is never expanded to 42 cells, even for
// 31-day months starting on a Saturday.
const GridDays = 35

// DayKeyFormat renders a grid day as its map key, e.g. "2026-06-29".
const DayKeyFormat = "2006-01-02"

// Month identifies a displayed (year, month) pair.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf builds a Month from a point in time.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Prev returns the month before m.  Navigation is pure; it never
// refetches events.
func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next returns the month after m.
func (m Month) Next() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Grid is the result of bucketing events into a displayed month.
// Days holds exactly GridDays consecutive calendar days starting from
// the Sunday on or before the 1st.  EventsByDay maps each day's key
// (DayKeyFormat) to the events visible on that day, preserving the
// order in which the events arrived (storage returns them ordered by
// start time ascending).
type Grid struct {
	Days        []time.Time
	EventsByDay map[string][]model.Event
}

// ComputeGrid builds the 35-cell grid for the displayed month and
// assigns each eligible event to every day it spans.  Only events whose
// start time falls inside the displayed month are considered; a
// multi-day event starting in the previous month does not appear on its
// days within this month.  Day membership pins the candidate day to
// noon and compares it against [start-of-day(start), end-of-day(end)]
// so that events near midnight do not shift by a day.
func ComputeGrid(m Month, events []model.Event) Grid {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]time.Time, 0, GridDays)
	for i := 0; i < GridDays; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}

	monthEvents := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.StartTime.Year() == m.Year && ev.StartTime.Month() == m.Month {
			monthEvents = append(monthEvents, ev)
		}
	}

	byDay := make(map[string][]model.Event, GridDays)
	for _, day := range days {
		noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
		for _, ev := range monthEvents {
			if EventOnDay(ev, noon) {
				key := day.Format(DayKeyFormat)
				byDay[key] = append(byDay[key], ev)
			}
		}
	}

	return Grid{Days: days, EventsByDay: byDay}
}

// EventOnDay reports whether the day containing noon falls within the
// event's inclusive [start-of-day(StartTime), end-of-day(EndTime)]
// range.  The caller supplies the candidate day pinned to local noon.
func EventOnDay(ev model.Event, noon time.Time) bool {
	s := ev.StartTime
	startOfDay := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, noon.Location())
	e := ev.EndTime
	endOfDay := time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, 999000000, noon.Location())
	return !noon.Before(startOfDay) && !noon.After(endOfDay)
}
