package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SebasVLANQ/calendar/internal/calendar"
	"github.com/SebasVLANQ/calendar/internal/i18n"
	"github.com/SebasVLANQ/calendar/internal/repository"
)

// CalendarHandler serves the month grid: 35 consecutive days with the
// month's events bucketed onto every day they span.
type CalendarHandler struct {
	Events *repository.EventRepo
}

func NewCalendarHandler(events *repository.EventRepo) *CalendarHandler {
	return &CalendarHandler{Events: events}
}

type calendarResp struct {
	Year      int                    `json:"year"`
	Month     int                    `json:"month"`
	MonthName string                 `json:"month_name"`
	Weekdays  []string               `json:"weekdays"`
	Days      []string               `json:"days"`
	Events    map[string][]eventCell `json:"events_by_day"`
	Prev      map[string]int         `json:"prev"`
	Next      map[string]int         `json:"next"`
}

// eventCell is the projection of an event shown inside a day cell.
type eventCell struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Difficulty     string `json:"difficulty"`
	SeatsAvailable int    `json:"seats_available"`
	Status         string `json:"status"`
}

// Grid renders the calendar for ?year=&month=, defaulting to the
// current month. The year/month of the adjacent months are included so
// clients can navigate without date math of their own.
func (h *CalendarHandler) Grid(c echo.Context) error {
	now := time.Now().UTC()
	m := calendar.MonthOf(now)
	if y := c.QueryParam("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil || n < 1970 || n > 9999 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		m.Year = n
	}
	if mo := c.QueryParam("month"); mo != "" {
		n, err := strconv.Atoi(mo)
		if err != nil || n < 1 || n > 12 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month"})
		}
		m.Month = time.Month(n)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	events, err := h.Events.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	grid := calendar.ComputeGrid(m, events)
	lang := reqLang(c)

	days := make([]string, 0, len(grid.Days))
	for _, d := range grid.Days {
		days = append(days, d.Format(calendar.DayKeyFormat))
	}
	byDay := make(map[string][]eventCell, len(grid.EventsByDay))
	for key, evs := range grid.EventsByDay {
		cells := make([]eventCell, 0, len(evs))
		for _, ev := range evs {
			cells = append(cells, eventCell{
				ID:             ev.ID,
				Title:          ev.Title,
				StartTime:      ev.StartTime.UTC().Format(time.RFC3339),
				EndTime:        ev.EndTime.UTC().Format(time.RFC3339),
				Difficulty:     ev.Difficulty,
				SeatsAvailable: ev.SeatsAvailable,
				Status:         ev.Status,
			})
		}
		byDay[key] = cells
	}

	weekdays := make([]string, 0, 7)
	for _, wd := range []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		weekdays = append(weekdays, i18n.T(lang, "calendar.weekdays."+wd))
	}

	prev, next := m.Prev(), m.Next()
	return c.JSON(http.StatusOK, calendarResp{
		Year:      m.Year,
		Month:     int(m.Month),
		MonthName: i18n.T(lang, "calendar.months."+strings.ToLower(m.Month.String())),
		Weekdays:  weekdays,
		Days:      days,
		Events:    byDay,
		Prev:      map[string]int{"year": prev.Year, "month": int(prev.Month)},
		Next:      map[string]int{"year": next.Year, "month": int(next.Month)},
	})
}
