package calendar

import (
	"time"

	"github.com/SebasVLANQ/calendar/internal/model"
)

// Filter predicates for the admin event list.  Each one is a pure
// function over an in-memory event collection; clearing a filter means
// going back to the original slice, not refetching.

// FilterByDate keeps events whose start time falls on the given
// calendar day.
func FilterByDate(events []model.Event, day time.Time) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		s := ev.StartTime
		if s.Year() == day.Year() && s.Month() == day.Month() && s.Day() == day.Day() {
			out = append(out, ev)
		}
	}
	return out
}

// FilterByMonth keeps events starting in the given (year, month).
func FilterByMonth(events []model.Event, year int, month time.Month) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.StartTime.Year() == year && ev.StartTime.Month() == month {
			out = append(out, ev)
		}
	}
	return out
}

// FilterByYear keeps events starting in the given year.
func FilterByYear(events []model.Event, year int) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.StartTime.Year() == year {
			out = append(out, ev)
		}
	}
	return out
}
